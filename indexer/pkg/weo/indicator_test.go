package weo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWEO_Indicator_ParseObservation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cell  string
		want  float64
		valid bool
	}{
		{"plain number", "3.38", 3.38, true},
		{"negative", "-9.245", -9.245, true},
		{"surrounding whitespace", "  4.68 \t", 4.68, true},
		{"integer", "7", 7, true},
		{"thousands separator", "6,883.33", 6883.33, true},
		{"millions separator", "-1,234,567", -1234567, true},
		{"empty", "", 0, false},
		{"blank", "   ", 0, false},
		{"n/a", "n/a", 0, false},
		{"N/A upper", "N/A", 0, false},
		{"nan", "NaN", 0, false},
		{"none", "None", 0, false},
		{"garbage", "abc", 0, false},
		{"misplaced comma", "12,34", 0, false},
		{"infinity", "inf", 0, false},
		{"negative infinity", "-Infinity", 0, false},
		{"double dash", "--", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, ok := parseObservation(tt.cell)
			require.Equal(t, tt.valid, ok)
			if tt.valid {
				require.InDelta(t, tt.want, v, 1e-9)
			}
		})
	}
}

func TestWEO_Indicator_ComputeStatistics(t *testing.T) {
	t.Parallel()

	t.Run("empty series has no statistics", func(t *testing.T) {
		t.Parallel()
		_, ok := ComputeStatistics(Series{})
		require.False(t, ok)
	})

	t.Run("single observation", func(t *testing.T) {
		t.Parallel()
		stats, ok := ComputeStatistics(Series{2001: 4.5})
		require.True(t, ok)
		require.Equal(t, Statistics{
			Count: 1, FirstYear: 2001, LastYear: 2001,
			Latest: 4.5, Min: 4.5, Max: 4.5, Mean: 4.5, StdDev: 0,
		}, stats)
	})

	t.Run("sparse series", func(t *testing.T) {
		t.Parallel()
		s := Series{1990: 2, 2010: 8, 1985: 4, 2000: 6}
		stats, ok := ComputeStatistics(s)
		require.True(t, ok)
		require.Equal(t, 4, stats.Count)
		require.Equal(t, 1985, stats.FirstYear)
		require.Equal(t, 2010, stats.LastYear)
		require.Equal(t, 8.0, stats.Latest)
		require.Equal(t, 2.0, stats.Min)
		require.Equal(t, 8.0, stats.Max)
		require.InDelta(t, 5.0, stats.Mean, 1e-12)
		// population variance of {2,4,6,8} is 5
		require.InDelta(t, math.Sqrt(5), stats.StdDev, 1e-12)
	})
}

func TestWEO_Indicator_Series(t *testing.T) {
	t.Parallel()

	s := Series{2003: 3, 2001: 1, 2002: 2, 2010: 10}
	require.Equal(t, []int{2001, 2002, 2003, 2010}, s.Years())
	require.Equal(t, []int{2010, 2003, 2002, 2001}, s.YearsDesc())
	require.Equal(t, []float64{1, 2, 3, 10}, s.Values())

	require.Equal(t, Series{2002: 2, 2003: 3}, s.Between(YearRange{From: 2002, To: 2003}))
	require.Equal(t, Series{2003: 3, 2010: 10}, s.Between(YearRange{From: 2003}))
	require.Equal(t, Series{2001: 1, 2002: 2}, s.Between(YearRange{To: 2002}))
	require.Equal(t, s, s.Between(YearRange{}))
	require.Empty(t, s.Between(YearRange{From: 2004, To: 2009}))
}

func TestWEO_Indicator_IsProjection(t *testing.T) {
	t.Parallel()

	require.False(t, Info{}.IsProjection(2030))
	info := Info{EstimatesStartAfter: 2023}
	require.False(t, info.IsProjection(2023))
	require.True(t, info.IsProjection(2024))
}
