package relevance

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed ontology.yaml
var defaultOntology []byte

// Term maps a keyword phrase to the indicator codes it selects.
type Term struct {
	Keyword string   `yaml:"keyword"`
	Codes   []string `yaml:"codes"`
}

// Ontology is the keyword table used to select indicators for a question.
type Ontology struct {
	// Defaults are the headline indicators used when nothing matches.
	Defaults []string `yaml:"defaults"`
	Terms    []Term   `yaml:"keywords"`
}

func (o *Ontology) Validate() error {
	if len(o.Terms) == 0 {
		return errors.New("ontology has no keywords")
	}
	for i, t := range o.Terms {
		if strings.TrimSpace(t.Keyword) == "" {
			return fmt.Errorf("keyword %d is empty", i)
		}
		if len(t.Codes) == 0 {
			return fmt.Errorf("keyword %q has no codes", t.Keyword)
		}
	}
	return nil
}

// LoadOntology decodes a YAML ontology. Keywords are lower-cased so they
// compare against lower-cased questions.
func LoadOntology(r io.Reader) (*Ontology, error) {
	var o Ontology
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		return nil, fmt.Errorf("failed to decode ontology: %w", err)
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ontology: %w", err)
	}
	for i := range o.Terms {
		o.Terms[i].Keyword = strings.ToLower(strings.TrimSpace(o.Terms[i].Keyword))
	}
	return &o, nil
}

// DefaultOntology returns the built-in bilingual ontology.
func DefaultOntology() *Ontology {
	o, err := LoadOntology(bytes.NewReader(defaultOntology))
	if err != nil {
		panic(fmt.Sprintf("relevance: embedded ontology is invalid: %v", err))
	}
	return o
}
