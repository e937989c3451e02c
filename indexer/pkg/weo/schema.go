package weo

import (
	"errors"
	"fmt"
)

var (
	ErrMissingColumn = errors.New("required column missing from header")
	ErrNoYearColumns = errors.New("table has no year columns")
)

// Schema names the designated metadata columns of a WEO table. Code is the
// only required column; the rest read as empty strings when absent.
type Schema struct {
	Code                string
	Name                string
	Description         string
	Units               string
	Scale               string
	Notes               string
	Country             string
	ISO                 string
	EstimatesStartAfter string
}

func DefaultSchema() Schema {
	return Schema{
		Code:                "WEO Subject Code",
		Name:                "Subject Descriptor",
		Description:         "Subject Notes",
		Units:               "Units",
		Scale:               "Scale",
		Notes:               "Country/Series-specific Notes",
		Country:             "Country",
		ISO:                 "ISO",
		EstimatesStartAfter: "Estimates Start After",
	}
}

// boundSchema holds header indexes resolved once per table. -1 marks an
// absent optional column.
type boundSchema struct {
	code                int
	name                int
	description         int
	units               int
	scale               int
	notes               int
	country             int
	iso                 int
	estimatesStartAfter int
	years               []YearColumn
}

// Bind validates the schema against the table header.
func (s Schema) Bind(t *Table) (*boundSchema, error) {
	if s.Code == "" {
		return nil, fmt.Errorf("%w: code column name is empty", ErrMissingColumn)
	}
	code, ok := t.Column(s.Code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, s.Code)
	}
	if len(t.YearColumns) == 0 {
		return nil, ErrNoYearColumns
	}

	optional := func(name string) int {
		if name == "" {
			return -1
		}
		if i, ok := t.Column(name); ok {
			return i
		}
		return -1
	}

	return &boundSchema{
		code:                code,
		name:                optional(s.Name),
		description:         optional(s.Description),
		units:               optional(s.Units),
		scale:               optional(s.Scale),
		notes:               optional(s.Notes),
		country:             optional(s.Country),
		iso:                 optional(s.ISO),
		estimatesStartAfter: optional(s.EstimatesStartAfter),
		years:               t.YearColumns,
	}, nil
}

func (b *boundSchema) field(r Row, i int) string {
	if i < 0 {
		return ""
	}
	return r.Fields[i]
}
