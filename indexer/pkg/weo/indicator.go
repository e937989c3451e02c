package weo

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Info is the descriptive metadata of an indicator.
type Info struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Units       string `json:"units"`
	Scale       string `json:"scale"`
	Notes       string `json:"notes"`
	Country     string `json:"country,omitempty"`
	ISO         string `json:"iso,omitempty"`
	// EstimatesStartAfter is the last year of actual data; later years are
	// projections. Zero when the table does not say.
	EstimatesStartAfter int `json:"estimates_start_after,omitempty"`
}

// IsProjection reports whether year is past the last year of actual data.
func (i Info) IsProjection(year int) bool {
	return i.EstimatesStartAfter != 0 && year > i.EstimatesStartAfter
}

// Indicator is one named time series with statistics computed over all of it.
type Indicator struct {
	Info   Info       `json:"info"`
	Series Series     `json:"data"`
	Stats  Statistics `json:"stats"`
}

// newIndicator returns false when the series has no observations.
func newIndicator(info Info, series Series) (*Indicator, bool) {
	stats, ok := ComputeStatistics(series)
	if !ok {
		return nil, false
	}
	return &Indicator{Info: info, Series: series, Stats: stats}, true
}

var missingTokens = map[string]struct{}{
	"n/a":  {},
	"nan":  {},
	"":     {},
	"none": {},
}

// groupedNumber matches numbers written with comma thousands separators.
var groupedNumber = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)

// parseObservation returns false for missing markers and cells that are not
// finite numbers.
func parseObservation(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if _, missing := missingTokens[strings.ToLower(cell)]; missing {
		return 0, false
	}
	if groupedNumber.MatchString(cell) {
		cell = strings.ReplaceAll(cell, ",", "")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// buildIndicator turns one row into an indicator. ok is false when the row has
// no code or no usable observation.
func (b *boundSchema) buildIndicator(r Row) (*Indicator, bool) {
	code := strings.TrimSpace(b.field(r, b.code))
	if code == "" {
		return nil, false
	}

	info := Info{
		Code:        code,
		Name:        strings.TrimSpace(b.field(r, b.name)),
		Description: strings.TrimSpace(b.field(r, b.description)),
		Units:       strings.TrimSpace(b.field(r, b.units)),
		Scale:       strings.TrimSpace(b.field(r, b.scale)),
		Notes:       strings.TrimSpace(b.field(r, b.notes)),
		Country:     strings.TrimSpace(b.field(r, b.country)),
		ISO:         strings.TrimSpace(b.field(r, b.iso)),
	}
	if y, err := strconv.Atoi(strings.TrimSpace(b.field(r, b.estimatesStartAfter))); err == nil {
		info.EstimatesStartAfter = y
	}

	series := make(Series)
	for _, col := range b.years {
		if v, ok := parseObservation(r.Fields[col.Index]); ok {
			series[col.Year] = v
		}
	}

	return newIndicator(info, series)
}
