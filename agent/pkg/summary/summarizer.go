// Package summary turns indicators into the structured digest used as prompt
// context, and into a deterministic narrative when no generator is available.
package summary

import (
	"errors"
	"sort"

	"github.com/malbeclabs/weo/indexer/pkg/weo"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultRecentYears           = 10
	DefaultMinDecadeObservations = 3
	DefaultDescriptionLimit      = 300
)

type Config struct {
	Eras                  []Era
	RecentYears           int
	MinDecadeObservations int
	DescriptionLimit      int
}

func (cfg *Config) Validate() error {
	if cfg.Eras == nil {
		cfg.Eras = DefaultEras()
	}
	for _, e := range cfg.Eras {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	if cfg.RecentYears == 0 {
		cfg.RecentYears = DefaultRecentYears
	}
	if cfg.MinDecadeObservations == 0 {
		cfg.MinDecadeObservations = DefaultMinDecadeObservations
	}
	if cfg.DescriptionLimit == 0 {
		cfg.DescriptionLimit = DefaultDescriptionLimit
	}
	if cfg.RecentYears < 0 || cfg.MinDecadeObservations < 0 || cfg.DescriptionLimit < 0 {
		return errors.New("summary limits must be positive")
	}
	return nil
}

type Summarizer struct {
	cfg Config
}

func New(cfg Config) (*Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Summarizer{cfg: cfg}, nil
}

// DecadeAverage is the mean over one decade bucket (year/10*10).
type DecadeAverage struct {
	Decade int     `json:"decade"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
}

// EraAverage is the mean over observations inside an era.
type EraAverage struct {
	Era   Era     `json:"era"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// Observation is one year of the recent window.
type Observation struct {
	Year       int     `json:"year"`
	Value      float64 `json:"value"`
	Projection bool    `json:"projection,omitempty"`
}

// IndicatorDigest holds every facet reported for one indicator.
type IndicatorDigest struct {
	Info    weo.Info        `json:"info"`
	Stats   weo.Statistics  `json:"stats"`
	Decades []DecadeAverage `json:"decades"`
	Eras    []EraAverage    `json:"eras"`

	// Recent is newest first.
	Recent []Observation `json:"recent"`
}

// Digest computes the facets of ind. Decades with fewer than
// MinDecadeObservations points and eras with no points are left out.
func (s *Summarizer) Digest(ind *weo.Indicator) IndicatorDigest {
	d := IndicatorDigest{
		Info:  ind.Info,
		Stats: ind.Stats,
	}

	buckets := make(map[int][]float64)
	for y, v := range ind.Series {
		decade := y / 10 * 10
		buckets[decade] = append(buckets[decade], v)
	}
	decades := make([]int, 0, len(buckets))
	for decade := range buckets {
		decades = append(decades, decade)
	}
	sort.Ints(decades)
	for _, decade := range decades {
		values := buckets[decade]
		if len(values) < s.cfg.MinDecadeObservations {
			continue
		}
		d.Decades = append(d.Decades, DecadeAverage{
			Decade: decade,
			Mean:   stat.Mean(values, nil),
			Count:  len(values),
		})
	}

	years := ind.Series.Years()
	for _, era := range s.cfg.Eras {
		var values []float64
		for _, y := range years {
			if era.Contains(y) {
				values = append(values, ind.Series[y])
			}
		}
		if len(values) == 0 {
			continue
		}
		d.Eras = append(d.Eras, EraAverage{
			Era:   era,
			Mean:  stat.Mean(values, nil),
			Count: len(values),
		})
	}

	desc := ind.Series.YearsDesc()
	for _, y := range desc[:min(s.cfg.RecentYears, len(desc))] {
		d.Recent = append(d.Recent, Observation{
			Year:       y,
			Value:      ind.Series[y],
			Projection: ind.Info.IsProjection(y),
		})
	}

	return d
}

// DigestAll digests each indicator in order.
func (s *Summarizer) DigestAll(inds []*weo.Indicator) []IndicatorDigest {
	out := make([]IndicatorDigest, 0, len(inds))
	for _, ind := range inds {
		out = append(out, s.Digest(ind))
	}
	return out
}
