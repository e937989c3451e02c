package weo

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series is a sparse year to value mapping. A missing year means no
// observation, never zero.
type Series map[int]float64

// Years returns the observed years in ascending order.
func (s Series) Years() []int {
	years := make([]int, 0, len(s))
	for y := range s {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// YearsDesc returns the observed years newest first.
func (s Series) YearsDesc() []int {
	years := s.Years()
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Values returns the observations ordered by year.
func (s Series) Values() []float64 {
	years := s.Years()
	values := make([]float64, len(years))
	for i, y := range years {
		values[i] = s[y]
	}
	return values
}

// Between returns a copy restricted to r.
func (s Series) Between(r YearRange) Series {
	out := make(Series, len(s))
	for y, v := range s {
		if r.Contains(y) {
			out[y] = v
		}
	}
	return out
}

// YearRange is an inclusive year interval. A zero bound is open.
type YearRange struct {
	From int
	To   int
}

func (r YearRange) Contains(year int) bool {
	if r.From != 0 && year < r.From {
		return false
	}
	if r.To != 0 && year > r.To {
		return false
	}
	return true
}

// Statistics summarizes a series. It is only produced by ComputeStatistics so
// it always agrees with the series it was computed from.
type Statistics struct {
	Count     int     `json:"data_points"`
	FirstYear int     `json:"first_year"`
	LastYear  int     `json:"last_year"`
	Latest    float64 `json:"latest_value"`
	Min       float64 `json:"min_value"`
	Max       float64 `json:"max_value"`
	Mean      float64 `json:"mean_value"`
	StdDev    float64 `json:"std_value"`
}

// ComputeStatistics returns false for an empty series.
func ComputeStatistics(s Series) (Statistics, bool) {
	if len(s) == 0 {
		return Statistics{}, false
	}
	years := s.Years()
	values := s.Values()
	mean, std := values[0], 0.0
	if len(values) > 1 {
		mean, std = stat.PopMeanStdDev(values, nil)
	}
	last := years[len(years)-1]
	return Statistics{
		Count:     len(values),
		FirstYear: years[0],
		LastYear:  last,
		Latest:    s[last],
		Min:       floats.Min(values),
		Max:       floats.Max(values),
		Mean:      mean,
		StdDev:    std,
	}, true
}
