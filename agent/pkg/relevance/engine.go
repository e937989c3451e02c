// Package relevance maps free-text questions to indicator codes using a
// keyword ontology, with a metadata search fallback.
package relevance

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/malbeclabs/weo/indexer/pkg/weo"
)

const DefaultLimit = 3

// Fallback selects what Relevant returns when no keyword matches.
type Fallback string

const (
	FallbackHeadline Fallback = "headline"
	FallbackSearch   Fallback = "search"
)

func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(strings.ToLower(strings.TrimSpace(s))); f {
	case FallbackHeadline, FallbackSearch:
		return f, nil
	case "":
		return FallbackHeadline, nil
	default:
		return "", errors.New("fallback must be 'headline' or 'search'")
	}
}

// Searcher finds indicators by metadata substring. *weo.Store satisfies it.
type Searcher interface {
	Search(term string) []weo.SearchResult
}

type EngineConfig struct {
	Ontology *Ontology
	Limit    int
	// Defaults overrides Ontology.Defaults.
	Defaults []string
	Searcher Searcher
}

func (cfg *EngineConfig) Validate() error {
	if cfg.Ontology == nil {
		cfg.Ontology = DefaultOntology()
	}
	if err := cfg.Ontology.Validate(); err != nil {
		return err
	}
	if cfg.Limit == 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Limit < 0 {
		return errors.New("limit must be positive")
	}
	if len(cfg.Defaults) == 0 {
		cfg.Defaults = cfg.Ontology.Defaults
	}
	return nil
}

// Engine is read-only after construction.
type Engine struct {
	terms    []Term
	limit    int
	defaults []string
	searcher Searcher
}

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		terms:    cfg.Ontology.Terms,
		limit:    cfg.Limit,
		defaults: append([]string(nil), cfg.Defaults...),
		searcher: cfg.Searcher,
	}, nil
}

// Match returns up to Limit codes selected by keywords found in the query.
// Codes hit by more keywords come first; ties keep ontology order. Callers
// should treat the result as a set.
func (e *Engine) Match(query string) []string {
	q := strings.ToLower(query)

	type candidate struct {
		code  string
		hits  int
		first int
	}
	byCode := make(map[string]*candidate)
	var seq int
	for _, t := range e.terms {
		if !strings.Contains(q, t.Keyword) {
			continue
		}
		for _, code := range t.Codes {
			c, ok := byCode[code]
			if !ok {
				c = &candidate{code: code, first: seq}
				byCode[code] = c
				seq++
			}
			c.hits++
		}
	}
	if len(byCode) == 0 {
		return nil
	}

	candidates := make([]*candidate, 0, len(byCode))
	for _, c := range byCode {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hits != candidates[j].hits {
			return candidates[i].hits > candidates[j].hits
		}
		return candidates[i].first < candidates[j].first
	})

	codes := make([]string, 0, min(e.limit, len(candidates)))
	for _, c := range candidates[:min(e.limit, len(candidates))] {
		codes = append(codes, c.code)
	}
	return codes
}

// Result is the outcome of Relevant.
type Result struct {
	Codes []string
	// Fallback is empty when keywords matched.
	Fallback Fallback
}

// Relevant returns keyword matches, or the fallback selection when there are
// none.
func (e *Engine) Relevant(query string, fallback Fallback) Result {
	if codes := e.Match(query); len(codes) > 0 {
		return Result{Codes: codes}
	}
	switch fallback {
	case FallbackSearch:
		return Result{Codes: e.Search(query), Fallback: FallbackSearch}
	default:
		return Result{Codes: e.Defaults(), Fallback: FallbackHeadline}
	}
}

// Defaults returns the headline indicators, capped at Limit.
func (e *Engine) Defaults() []string {
	return append([]string(nil), e.defaults[:min(e.limit, len(e.defaults))]...)
}

// minSearchTokenRunes skips short words such as articles when searching
// token by token.
const minSearchTokenRunes = 4

// Search looks the whole query up in indicator metadata, then each word of at
// least four letters if the whole query matched nothing.
func (e *Engine) Search(query string) []string {
	if e.searcher == nil {
		return nil
	}
	seen := make(map[string]bool)
	var codes []string
	collect := func(results []weo.SearchResult) {
		for _, r := range results {
			if len(codes) == e.limit {
				return
			}
			if !seen[r.Code] {
				seen[r.Code] = true
				codes = append(codes, r.Code)
			}
		}
	}

	collect(e.searcher.Search(query))
	if len(codes) > 0 {
		return codes
	}
	for _, tok := range strings.FieldsFunc(strings.ToLower(query), isSeparator) {
		if utf8.RuneCountInString(tok) < minSearchTokenRunes {
			continue
		}
		collect(e.searcher.Search(tok))
	}
	return codes
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', ',', '.', ';', ':', '?', '¿', '!', '¡', '(', ')', '"', '\'':
		return true
	}
	return false
}
