package weo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWEO_Table_ParseTable(t *testing.T) {
	t.Parallel()

	t.Run("returns error for blank input", func(t *testing.T) {
		t.Parallel()
		_, err := ParseTable("\n  \n\t\n")
		require.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("returns error for duplicate header names", func(t *testing.T) {
		t.Parallel()
		_, err := ParseTable("code\tname\tcode\n")
		require.ErrorIs(t, err, ErrDuplicateColumn)
	})

	t.Run("skips blank lines and pads short rows", func(t *testing.T) {
		t.Parallel()
		raw := "\n\ncode\tname\t2000\t2001\n\nA\tAlpha\n\r\nB\tBeta\t1\t2\t3\t4\r\n"
		table, err := ParseTable(raw)
		require.NoError(t, err)
		require.Equal(t, []string{"code", "name", "2000", "2001"}, table.Header)
		require.Len(t, table.Rows, 2)

		require.Equal(t, []string{"A", "Alpha", "", ""}, table.Rows[0].Fields)
		require.Equal(t, []string{"B", "Beta", "1", "2"}, table.Rows[1].Fields)

		v, ok := table.Rows[1].Field("2001")
		require.True(t, ok)
		require.Equal(t, "2", v)

		_, ok = table.Rows[1].Field("missing")
		require.False(t, ok)
	})

	t.Run("classifies year columns structurally", func(t *testing.T) {
		t.Parallel()
		raw := "code\t1979\t1980\t2030\t2031\t20a0\t-1990\t 1995\t2005\tEstimates Start After\n"
		table, err := ParseTable(raw)
		require.NoError(t, err)
		require.Empty(t, table.Rows)
		require.Equal(t, []YearColumn{
			{Name: "1980", Year: 1980, Index: 2},
			{Name: "2030", Year: 2030, Index: 3},
			{Name: "2005", Year: 2005, Index: 8},
		}, table.YearColumns)
	})

	t.Run("parses the embedded table", func(t *testing.T) {
		t.Parallel()
		table, err := ParseTable(RawTable())
		require.NoError(t, err)
		require.Len(t, table.YearColumns, MaxYear-MinYear+1)
		require.Len(t, table.Rows, 14)
		for _, r := range table.Rows {
			require.Len(t, r.Fields, len(table.Header))
		}
	})
}
