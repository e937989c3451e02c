package summary

import (
	"strings"
	"testing"

	"github.com/malbeclabs/weo/indexer/pkg/weo"
	"github.com/stretchr/testify/require"
)

func newIndicator(t *testing.T, info weo.Info, series weo.Series) *weo.Indicator {
	t.Helper()
	stats, ok := weo.ComputeStatistics(series)
	require.True(t, ok)
	return &weo.Indicator{Info: info, Series: series, Stats: stats}
}

func newTestSummarizer(t *testing.T, cfg Config) *Summarizer {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

func TestWEO_Summary_DefaultEras(t *testing.T) {
	t.Parallel()

	eras := DefaultEras()
	require.Equal(t, []Era{
		{Name: "Pre-dolarización", Start: 1995, End: 1999},
		{Name: "Post-dolarización", Start: 2000, End: 2005},
		{Name: "Boom de commodities", Start: 2006, End: 2014},
		{Name: "Crisis y ajuste", Start: 2015, End: 2020},
		{Name: "Recuperación", Start: 2021, End: 2024},
	}, eras)
	require.Equal(t, "Pre-dolarización (1995-1999)", eras[0].Label())
}

func TestWEO_Summary_LoadEras(t *testing.T) {
	t.Parallel()

	_, err := LoadEras(strings.NewReader("eras:\n  - name: Backwards\n    start: 2000\n    end: 1990\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "ends before it starts")

	_, err = LoadEras(strings.NewReader("eras:\n  - start: 2000\n    end: 2001\n"))
	require.Error(t, err)
}

func TestWEO_Summary_NewRejectsNegativeLimits(t *testing.T) {
	t.Parallel()

	_, err := New(Config{RecentYears: -1})
	require.Error(t, err)
}

func TestWEO_Summary_Digest(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, Config{})
	series := weo.Series{
		// 1980s: only two points, left out
		1985: 10, 1986: 20,
		// 1990s: three points, two in Pre-dolarización
		1994: 1, 1996: 2, 1999: 3,
		// 2000s
		2000: 4, 2001: 5, 2002: 6, 2007: 7,
		// 2020s
		2021: 8, 2022: 9, 2023: 10, 2026: 11,
	}
	ind := newIndicator(t, weo.Info{Code: "X", Name: "Example", EstimatesStartAfter: 2023}, series)

	d := s.Digest(ind)
	require.Equal(t, ind.Stats, d.Stats)
	require.Equal(t, ind.Info, d.Info)

	require.Equal(t, []DecadeAverage{
		{Decade: 1990, Mean: 2, Count: 3},
		{Decade: 2000, Mean: 5.5, Count: 4},
		{Decade: 2020, Mean: 9.5, Count: 4},
	}, d.Decades)

	require.Len(t, d.Eras, 4, "Crisis y ajuste has no observations")
	require.Equal(t, "Pre-dolarización", d.Eras[0].Era.Name)
	require.InDelta(t, 2.5, d.Eras[0].Mean, 1e-12)
	require.Equal(t, 2, d.Eras[0].Count)
	require.Equal(t, "Post-dolarización", d.Eras[1].Era.Name)
	require.InDelta(t, 5, d.Eras[1].Mean, 1e-12)
	require.Equal(t, "Boom de commodities", d.Eras[2].Era.Name)
	require.InDelta(t, 7, d.Eras[2].Mean, 1e-12)
	require.Equal(t, "Recuperación", d.Eras[3].Era.Name)
	require.InDelta(t, 9, d.Eras[3].Mean, 1e-12)

	require.Len(t, d.Recent, DefaultRecentYears)
	require.Equal(t, Observation{Year: 2026, Value: 11, Projection: true}, d.Recent[0])
	require.Equal(t, Observation{Year: 2023, Value: 10}, d.Recent[1])
	require.Equal(t, 1996, d.Recent[len(d.Recent)-1].Year)
}

func TestWEO_Summary_DigestShortSeries(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, Config{RecentYears: 5})
	ind := newIndicator(t, weo.Info{Code: "Y"}, weo.Series{1981: 1, 2031: 2})

	d := s.Digest(ind)
	require.Empty(t, d.Decades)
	require.Empty(t, d.Eras)
	require.Equal(t, []Observation{{Year: 2031, Value: 2}, {Year: 1981, Value: 1}}, d.Recent)
}

func TestWEO_Summary_CustomEras(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, Config{Eras: []Era{{Name: "COVID", Start: 2020, End: 2020}}})
	ind := newIndicator(t, weo.Info{Code: "Z"}, weo.Series{2019: 1, 2020: -9, 2021: 9})
	d := s.Digest(ind)
	require.Equal(t, []EraAverage{{Era: Era{Name: "COVID", Start: 2020, End: 2020}, Mean: -9, Count: 1}}, d.Eras)
}

func TestWEO_Summary_RenderContext(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, Config{DescriptionLimit: 10})
	ind := newIndicator(t, weo.Info{
		Code:                "LUR",
		Name:                "Unemployment rate",
		Description:         "Unemployment rate can be defined by either the national definition",
		Units:               "Percent of total labor force",
		Scale:               "Units",
		EstimatesStartAfter: 2024,
	}, weo.Series{2020: 5.346, 2021: 4.68, 2022: 3.8, 2023: 3.57, 2024: 3.38, 2025: 4})

	out := s.RenderContext("Ecuador", s.DigestAll([]*weo.Indicator{ind}))
	require.Contains(t, out, "DATOS ECONÓMICOS DE ECUADOR")
	require.Contains(t, out, "=== INDICADOR: Unemployment rate (LUR) ===")
	require.Contains(t, out, "Descripción: Unemployme...")
	require.Contains(t, out, "Unidades: Percent of total labor force (escala: Units)")
	require.Contains(t, out, "PERÍODO COMPLETO: 2020-2025 (6 observaciones)")
	require.Contains(t, out, "- 2020s: 4.13 promedio (6 obs.)")
	require.Contains(t, out, "- Crisis y ajuste (2015-2020): promedio 5.35")
	require.Contains(t, out, "- Recuperación (2021-2024): promedio 3.8")
	require.Contains(t, out, "2025: 4.00 (proy.), 2024: 3.38")
	require.Contains(t, out, "- Valor actual: 4.00 (2025)")
	require.Contains(t, out, "- Máximo histórico: 5.35")
	require.Contains(t, out, "- Mínimo histórico: 3.38")
}

func TestWEO_Summary_Narrate(t *testing.T) {
	t.Parallel()

	s := newTestSummarizer(t, Config{})

	t.Run("no digests yields the no-information message", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, NoInformation, s.Narrate(nil))
	})

	t.Run("narrates every indicator from its facets", func(t *testing.T) {
		t.Parallel()
		lur := newIndicator(t, weo.Info{Code: "LUR", Name: "Unemployment rate", Units: "Percent"},
			weo.Series{1996: 9.046, 1997: 7.828, 2020: 5.346, 2021: 4.68, 2022: 3.8, 2023: 3.57, 2024: 3.38})
		lp := newIndicator(t, weo.Info{Code: "LP", Name: "Population", Description: "Total population"},
			weo.Series{2022: 17.715})

		out := s.Narrate(s.DigestAll([]*weo.Indicator{lur, lp}))
		require.Contains(t, out, "📊 **Unemployment rate** (LUR)")
		require.Contains(t, out, "**Valor más reciente (2024):** 3.38 Percent")
		require.Contains(t, out, "por debajo del promedio histórico")
		require.Contains(t, out, "- **Pre-dolarización (1995-1999):** 8.44 promedio")
		require.Contains(t, out, "**Promedios por década:** 2020s: 4.16")
		require.Contains(t, out, "- Máximo: 9.05 | Mínimo: 3.38")

		require.Contains(t, out, "📊 **Population** (LP)")
		require.Contains(t, out, "Solo hay una observación disponible")
		require.Contains(t, out, "**Definición:** Total population")
		require.True(t, strings.HasSuffix(out, sourceFooter))
		require.NotContains(t, out, "1990s", "1990s has only two observations")
	})

	t.Run("marks projected latest values", func(t *testing.T) {
		t.Parallel()
		ind := newIndicator(t, weo.Info{Code: "G", Name: "Growth", EstimatesStartAfter: 2023},
			weo.Series{2023: 1.988, 2030: 2.482})
		out := s.Narrate(s.DigestAll([]*weo.Indicator{ind}))
		require.Contains(t, out, "(proyección; datos observados hasta 2023)")
		require.Contains(t, out, "por encima del promedio histórico")
	})
}

func TestWEO_Summary_Truncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "abc", truncate("abc", 3))
	require.Equal(t, "ab...", truncate("abc", 2))
	require.Equal(t, "Pobl...", truncate("Población", 4))
}
