package medclass

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"glucolog/internal/domain"
)

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules decodes a YAML rule table:
//
//	rules:
//	  - class: biguanide
//	    any_of: [metformin]
//
// Every class must belong to the taxonomy, other is implicit and may not be
// listed, and every rule needs at least one term. Terms are lower-cased.
func LoadRules(r io.Reader) ([]Rule, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var f ruleFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("rules: empty document")
		}
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if len(f.Rules) == 0 {
		return nil, errors.New("rules: no rules defined")
	}

	for i := range f.Rules {
		r := &f.Rules[i]
		if !r.Class.Valid() || r.Class == domain.ClassOther {
			return nil, fmt.Errorf("rules[%d]: invalid class %q", i, r.Class)
		}
		if len(r.AllOf)+len(r.AnyOf) == 0 {
			return nil, fmt.Errorf("rules[%d]: no match terms", i)
		}
		if err := normalizeTerms(r.AllOf); err != nil {
			return nil, fmt.Errorf("rules[%d]: all_of: %w", i, err)
		}
		if err := normalizeTerms(r.AnyOf); err != nil {
			return nil, fmt.Errorf("rules[%d]: any_of: %w", i, err)
		}
	}
	return f.Rules, nil
}

// LoadRulesFile reads a rule table from path.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close() //nolint:errcheck
	return LoadRules(f)
}

func normalizeTerms(terms []string) error {
	for i, t := range terms {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("term %d is empty", i)
		}
		terms[i] = strings.ToLower(t)
	}
	return nil
}
