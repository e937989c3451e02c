package weo

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/malbeclabs/weo/indexer/pkg/metrics"
)

type StoreConfig struct {
	Logger *slog.Logger
	// Raw is the tab-delimited table text. Defaults to the embedded table.
	Raw    string
	Schema *Schema
}

func (cfg *StoreConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Raw == "" {
		cfg.Raw = RawTable()
	}
	if cfg.Schema == nil {
		s := DefaultSchema()
		cfg.Schema = &s
	}
	return nil
}

// Store maps indicator codes to indicators. It is built once and never
// mutated afterwards, so concurrent readers need no locking.
type Store struct {
	log        *slog.Logger
	indicators map[string]*Indicator
	order      []string
	years      []int
}

// NewStore parses the table and builds every indicator with at least one
// observation. An error means the table could not be used at all.
func NewStore(cfg StoreConfig) (_ *Store, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreBuild(time.Since(start), err)
	}()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	table, err := ParseTable(cfg.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	schema, err := cfg.Schema.Bind(table)
	if err != nil {
		return nil, fmt.Errorf("failed to bind schema: %w", err)
	}

	s := &Store{
		log:        cfg.Logger,
		indicators: make(map[string]*Indicator, len(table.Rows)),
	}
	for _, col := range table.YearColumns {
		s.years = append(s.years, col.Year)
	}

	var built, skipped, dropped, duplicates int
	for i, row := range table.Rows {
		code := strings.TrimSpace(schema.field(row, schema.code))
		if code == "" {
			skipped++
			continue
		}
		ind, ok := schema.buildIndicator(row)
		if !ok {
			s.log.Debug("weo/store: dropping indicator with no observations", "code", code, "row", i+2)
			dropped++
			continue
		}
		if _, exists := s.indicators[code]; exists {
			// Later rows win; the code keeps its first position.
			s.log.Warn("weo/store: duplicate indicator code, replacing earlier row", "code", code, "row", i+2)
			duplicates++
		} else {
			s.order = append(s.order, code)
		}
		s.indicators[code] = ind
		built++
	}
	metrics.RecordTableRows("built", built)
	metrics.RecordTableRows("no_code", skipped)
	metrics.RecordTableRows("no_data", dropped)
	metrics.RecordTableRows("duplicate", duplicates)

	s.log.Info("weo/store: built indicator store",
		"indicators", len(s.indicators),
		"yearColumns", len(s.years),
		"droppedEmpty", dropped,
		"skippedRows", skipped,
	)
	return s, nil
}

// Len returns the number of indicators.
func (s *Store) Len() int { return len(s.order) }

// Codes returns indicator codes in table order.
func (s *Store) Codes() []string {
	return append([]string(nil), s.order...)
}

// YearSpan returns the first and last year columns of the source table.
func (s *Store) YearSpan() (int, int) {
	if len(s.years) == 0 {
		return 0, 0
	}
	first, last := s.years[0], s.years[0]
	for _, y := range s.years {
		first = min(first, y)
		last = max(last, y)
	}
	return first, last
}

// IndicatorView is an indicator with its series restricted to a year range.
// Stats always describe the full series.
type IndicatorView struct {
	Info   Info       `json:"info"`
	Series Series     `json:"data"`
	Stats  Statistics `json:"stats"`
	Range  YearRange  `json:"-"`
}

// Get returns the indicator with its series filtered to r.
func (s *Store) Get(code string, r YearRange) (*IndicatorView, bool) {
	ind, ok := s.indicators[code]
	if !ok {
		return nil, false
	}
	return &IndicatorView{
		Info:   ind.Info,
		Series: ind.Series.Between(r),
		Stats:  ind.Stats,
		Range:  r,
	}, true
}

// GetFull returns the unfiltered indicator. Callers must not modify it.
func (s *Store) GetFull(code string) (*Indicator, bool) {
	ind, ok := s.indicators[code]
	return ind, ok
}

// SearchResult is one indicator matched by Search.
type SearchResult struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Units string `json:"units"`
	// Relevance is constant; matches are not ranked.
	Relevance float64 `json:"relevance_score"`
}

const searchRelevance = 1.0

// Search matches term case-insensitively against code, name and description.
func (s *Store) Search(term string) []SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var results []SearchResult
	for _, code := range s.order {
		info := s.indicators[code].Info
		if strings.Contains(strings.ToLower(info.Code), term) ||
			strings.Contains(strings.ToLower(info.Name), term) ||
			strings.Contains(strings.ToLower(info.Description), term) {
			results = append(results, SearchResult{
				Code:      info.Code,
				Name:      info.Name,
				Units:     info.Units,
				Relevance: searchRelevance,
			})
		}
	}
	return results
}

// Summary is a one-line description of an indicator for listings.
type Summary struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Units     string  `json:"units"`
	Scale     string  `json:"scale"`
	Latest    float64 `json:"latest_value"`
	LastYear  int     `json:"last_year"`
	FirstYear int     `json:"first_year"`
}

// List returns a summary of every indicator in table order.
func (s *Store) List() []Summary {
	out := make([]Summary, 0, len(s.order))
	for _, code := range s.order {
		ind := s.indicators[code]
		out = append(out, Summary{
			Code:      code,
			Name:      ind.Info.Name,
			Units:     ind.Info.Units,
			Scale:     ind.Info.Scale,
			Latest:    ind.Stats.Latest,
			LastYear:  ind.Stats.LastYear,
			FirstYear: ind.Stats.FirstYear,
		})
	}
	return out
}

// Country returns the country named by the table, if any indicator carries it.
func (s *Store) Country() string {
	for _, code := range s.order {
		if c := s.indicators[code].Info.Country; c != "" {
			return c
		}
	}
	return ""
}
