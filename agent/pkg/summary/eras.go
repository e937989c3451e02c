package summary

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed eras.yaml
var defaultEras []byte

// Era is a named closed year interval.
type Era struct {
	Name  string `yaml:"name" json:"name"`
	Start int    `yaml:"start" json:"start"`
	End   int    `yaml:"end" json:"end"`
}

func (e Era) Contains(year int) bool {
	return year >= e.Start && year <= e.End
}

// Label renders the era as "Name (start-end)".
func (e Era) Label() string {
	return fmt.Sprintf("%s (%d-%d)", e.Name, e.Start, e.End)
}

func (e Era) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("era %d-%d has no name", e.Start, e.End)
	}
	if e.End < e.Start {
		return fmt.Errorf("era %q ends before it starts", e.Name)
	}
	return nil
}

// LoadEras decodes a YAML era table.
func LoadEras(r io.Reader) ([]Era, error) {
	var doc struct {
		Eras []Era `yaml:"eras"`
	}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode eras: %w", err)
	}
	for _, e := range doc.Eras {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("invalid era: %w", err)
		}
	}
	return doc.Eras, nil
}

// DefaultEras returns the built-in era table.
func DefaultEras() []Era {
	eras, err := LoadEras(bytes.NewReader(defaultEras))
	if err != nil {
		panic(fmt.Sprintf("summary: embedded eras are invalid: %v", err))
	}
	return eras
}
