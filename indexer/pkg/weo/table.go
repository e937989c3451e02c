package weo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MinYear and MaxYear bound the header columns treated as years.
	MinYear = 1980
	MaxYear = 2030
)

var (
	ErrEmptyTable      = errors.New("table has no header row")
	ErrDuplicateColumn = errors.New("duplicate column name in header")
)

// YearColumn is a header column whose name is a year in [MinYear, MaxYear].
type YearColumn struct {
	Name  string
	Year  int
	Index int
}

// Table is a tab-delimited table split into a header and width-normalized rows.
type Table struct {
	Header      []string
	YearColumns []YearColumn
	Rows        []Row

	index map[string]int
}

// Row is one data line. Fields always has the same length as the table header.
type Row struct {
	Fields []string
	table  *Table
}

// Field returns the value of the named column.
func (r Row) Field(name string) (string, bool) {
	i, ok := r.table.index[name]
	if !ok {
		return "", false
	}
	return r.Fields[i], true
}

// Column returns the header index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// ParseTable splits raw into lines, uses the first non-blank line as the header
// and pads or truncates every following line to the header width.
func ParseTable(raw string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		Header: strings.Split(lines[0], "\t"),
	}
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		if _, dup := t.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
		}
		t.index[name] = i
		if year, ok := parseYearColumn(name); ok {
			t.YearColumns = append(t.YearColumns, YearColumn{Name: name, Year: year, Index: i})
		}
	}

	width := len(t.Header)
	t.Rows = make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		switch {
		case len(fields) < width:
			fields = append(fields, make([]string, width-len(fields))...)
		case len(fields) > width:
			fields = fields[:width]
		}
		t.Rows = append(t.Rows, Row{Fields: fields, table: t})
	}

	return t, nil
}

func parseYearColumn(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	if year < MinYear || year > MaxYear {
		return 0, false
	}
	return year, true
}
