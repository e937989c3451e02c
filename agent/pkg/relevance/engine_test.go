package relevance

import (
	"strings"
	"testing"

	"github.com/malbeclabs/weo/indexer/pkg/weo"
	weotesting "github.com/malbeclabs/weo/utils/pkg/testing"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, searcher Searcher) *Engine {
	t.Helper()
	e, err := NewEngine(EngineConfig{Searcher: searcher})
	require.NoError(t, err)
	return e
}

func TestWEO_Relevance_DefaultOntology(t *testing.T) {
	t.Parallel()

	o := DefaultOntology()
	require.NoError(t, o.Validate())
	require.Equal(t, []string{"NGDP_RPCH", "PCPIPCH", "LUR"}, o.Defaults)
	for _, term := range o.Terms {
		require.Equal(t, strings.ToLower(term.Keyword), term.Keyword)
	}
}

func TestWEO_Relevance_LoadOntology(t *testing.T) {
	t.Parallel()

	t.Run("rejects keyword without codes", func(t *testing.T) {
		t.Parallel()
		_, err := LoadOntology(strings.NewReader("keywords:\n  - keyword: pib\n    codes: []\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), `keyword "pib" has no codes`)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		_, err := LoadOntology(strings.NewReader("keywords:\n  - word: pib\n    codes: [A]\n"))
		require.Error(t, err)
	})

	t.Run("lower-cases keywords", func(t *testing.T) {
		t.Parallel()
		o, err := LoadOntology(strings.NewReader("keywords:\n  - keyword: ' PIB '\n    codes: [A]\n"))
		require.NoError(t, err)
		require.Equal(t, "pib", o.Terms[0].Keyword)
	})
}

func TestWEO_Relevance_Match(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		name     string
		query    string
		contains []string
		size     int
	}{
		{"spanish unemployment", "¿Cómo ha evolucionado el desempleo?", []string{"LUR"}, 1},
		{"english unemployment", "What is the UNEMPLOYMENT rate?", []string{"LUR"}, 1},
		{"accented inflation", "Inflación en los 90", []string{"PCPIPCH"}, 1},
		{"gdp", "PIB nominal", []string{"NGDP_RPCH", "NGDP", "NGDPD"}, 3},
		{"trade", "comercio exterior", []string{"TX_RPCH", "TM_RPCH"}, 2},
		{"dollarization", "efecto de la dolarización", []string{"NGDP_RPCH", "PCPIPCH"}, 2},
		{"nothing", "what's the weather today?", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			codes := e.Match(tt.query)
			require.Len(t, codes, tt.size)
			for _, c := range tt.contains {
				require.Contains(t, codes, c)
			}
		})
	}
}

func TestWEO_Relevance_MatchCapsAtLimit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	codes := e.Match("pib, inflación, desempleo y deuda")
	require.Len(t, codes, DefaultLimit)

	// growth is hit by both "pib" and "crecimiento"
	codes = e.Match("crecimiento del pib y desempleo y poblacion")
	require.Len(t, codes, DefaultLimit)
	require.Equal(t, "NGDP_RPCH", codes[0])
}

func TestWEO_Relevance_MatchIsDeterministic(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	queries := []string{
		"exportaciones e importaciones",
		"desempleo",
		"pib per capita y dolarizacion",
		"balanza de cuenta corriente",
	}
	first := make(map[string][]string)
	for _, q := range queries {
		first[q] = e.Match(q)
	}
	for i := 0; i < 5; i++ {
		for j := len(queries) - 1; j >= 0; j-- {
			q := queries[j]
			require.ElementsMatch(t, first[q], e.Match(q))
		}
	}
}

func TestWEO_Relevance_Relevant(t *testing.T) {
	t.Parallel()

	store, err := weo.NewStore(weo.StoreConfig{Logger: weotesting.NewLogger()})
	require.NoError(t, err)
	e := newTestEngine(t, store)

	t.Run("keyword match ignores fallback", func(t *testing.T) {
		t.Parallel()
		res := e.Relevant("tasa de desempleo", FallbackSearch)
		require.Contains(t, res.Codes, "LUR")
		require.Empty(t, res.Fallback)
	})

	t.Run("headline fallback", func(t *testing.T) {
		t.Parallel()
		res := e.Relevant("háblame de la economía", FallbackHeadline)
		require.Equal(t, []string{"NGDP_RPCH", "PCPIPCH", "LUR"}, res.Codes)
		require.Equal(t, FallbackHeadline, res.Fallback)
	})

	t.Run("search fallback uses metadata", func(t *testing.T) {
		t.Parallel()
		res := e.Relevant("volume of goods", FallbackSearch)
		require.Equal(t, FallbackSearch, res.Fallback)
		require.NotEmpty(t, res.Codes)
		require.LessOrEqual(t, len(res.Codes), DefaultLimit)
	})

	t.Run("search fallback with no hits", func(t *testing.T) {
		t.Parallel()
		res := e.Relevant("zzzz qqqq", FallbackSearch)
		require.Empty(t, res.Codes)
		require.Equal(t, FallbackSearch, res.Fallback)
	})

	t.Run("search fallback without searcher", func(t *testing.T) {
		t.Parallel()
		bare := newTestEngine(t, nil)
		require.Empty(t, bare.Relevant("anything", FallbackSearch).Codes)
	})
}

type fakeSearcher map[string][]weo.SearchResult

func (f fakeSearcher) Search(term string) []weo.SearchResult { return f[term] }

func TestWEO_Relevance_SearchTokens(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, fakeSearcher{
		"account": {{Code: "BCA_NGDPD"}},
		"labor":   {{Code: "LUR"}, {Code: "BCA_NGDPD"}},
		"the":     {{Code: "SHOULD_NOT_MATCH"}},
	})
	require.Equal(t, []string{"BCA_NGDPD", "LUR"}, e.Search("The account, labor?"))
}

func TestWEO_Relevance_ParseFallback(t *testing.T) {
	t.Parallel()

	f, err := ParseFallback("")
	require.NoError(t, err)
	require.Equal(t, FallbackHeadline, f)

	f, err = ParseFallback(" Search ")
	require.NoError(t, err)
	require.Equal(t, FallbackSearch, f)

	_, err = ParseFallback("random")
	require.Error(t, err)
}

func TestWEO_Relevance_NewEngineRejectsNegativeLimit(t *testing.T) {
	t.Parallel()

	_, err := NewEngine(EngineConfig{Limit: -1})
	require.Error(t, err)
}
