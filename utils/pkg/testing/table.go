package weotesting

import (
	"strconv"
	"strings"
)

// MetadataColumns is the WEO header before the year columns.
var MetadataColumns = []string{
	"WEO Country Code",
	"ISO",
	"WEO Subject Code",
	"Country",
	"Subject Descriptor",
	"Subject Notes",
	"Units",
	"Scale",
	"Country/Series-specific Notes",
}

// TableRow describes one indicator row. Values is keyed by year; years not
// present are written as n/a. Raw overrides Values for a year with a literal
// cell.
type TableRow struct {
	Code                string
	Name                string
	Description         string
	Units               string
	Scale               string
	Notes               string
	Values              map[int]float64
	Raw                 map[int]string
	EstimatesStartAfter int
}

// Table builds WEO-shaped tab-delimited text covering years first..last.
type Table struct {
	First int
	Last  int
	Rows  []TableRow
}

func NewTable(first, last int) *Table {
	return &Table{First: first, Last: last}
}

func (t *Table) Add(r TableRow) *Table {
	t.Rows = append(t.Rows, r)
	return t
}

func (t *Table) String() string {
	var sb strings.Builder
	header := append([]string(nil), MetadataColumns...)
	for y := t.First; y <= t.Last; y++ {
		header = append(header, strconv.Itoa(y))
	}
	header = append(header, "Estimates Start After")
	sb.WriteString(strings.Join(header, "\t"))
	sb.WriteString("\n")

	for _, r := range t.Rows {
		fields := []string{"248", "ECU", r.Code, "Ecuador", r.Name, r.Description, r.Units, r.Scale, r.Notes}
		for y := t.First; y <= t.Last; y++ {
			if raw, ok := r.Raw[y]; ok {
				fields = append(fields, raw)
				continue
			}
			if v, ok := r.Values[y]; ok {
				fields = append(fields, strconv.FormatFloat(v, 'f', -1, 64))
				continue
			}
			fields = append(fields, "n/a")
		}
		if r.EstimatesStartAfter != 0 {
			fields = append(fields, strconv.Itoa(r.EstimatesStartAfter))
		} else {
			fields = append(fields, "")
		}
		sb.WriteString(strings.Join(fields, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
