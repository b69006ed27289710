// Package medclass maps free-text medication names to pharmacological
// classes.
//
// Classification is case-insensitive substring matching over an ordered rule
// table: rules are tried top to bottom and the first match wins. A name that
// matches nothing is domain.ClassOther, so Classify is total.
package medclass

import (
	"strings"

	"glucolog/internal/domain"
)

// Rule assigns Class to a name that contains every term in AllOf and, when
// AnyOf is non-empty, at least one term in AnyOf. Terms are lower case.
type Rule struct {
	Class domain.MedicationClass `yaml:"class"`
	AllOf []string               `yaml:"all_of,omitempty"`
	AnyOf []string               `yaml:"any_of,omitempty"`
}

func (r Rule) matches(name string) bool {
	for _, term := range r.AllOf {
		if !strings.Contains(name, term) {
			return false
		}
	}
	if len(r.AnyOf) == 0 {
		return true
	}
	for _, term := range r.AnyOf {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in rule table in precedence order. Insulin is
// split into two rows so basal analogues are tested before the bolus
// fallback.
func DefaultRules() []Rule {
	return []Rule{
		{Class: domain.ClassBiguanide, AnyOf: []string{"metformin"}},
		{Class: domain.ClassSulfonylurea, AnyOf: []string{"glipizide", "glyburide"}},
		{Class: domain.ClassBasalInsulin, AllOf: []string{"insulin"}, AnyOf: []string{"glargine", "detemir"}},
		{Class: domain.ClassBolusInsulin, AllOf: []string{"insulin"}},
		{Class: domain.ClassGLP1Daily, AnyOf: []string{"liraglutide", "exenatide"}},
		{Class: domain.ClassGLP1Weekly, AnyOf: []string{"dulaglutide", "semaglutide"}},
		{Class: domain.ClassSGLT2, AnyOf: []string{"sglt2", "empagliflozin", "dapagliflozin"}},
		{Class: domain.ClassTZD, AnyOf: []string{"pioglitazone", "rosiglitazone"}},
	}
}

// Classifier evaluates a fixed rule table. The zero value classifies
// everything as other; use New or Default.
type Classifier struct {
	rules []Rule
}

// New builds a classifier over a copy of rules.
func New(rules []Rule) *Classifier {
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return &Classifier{rules: cp}
}

// Default returns a classifier over DefaultRules.
func Default() *Classifier {
	return New(DefaultRules())
}

// Rules returns a copy of the rule table.
func (c *Classifier) Rules() []Rule {
	cp := make([]Rule, len(c.rules))
	copy(cp, c.rules)
	return cp
}

// Classify returns the class of the first rule matching name.
func (c *Classifier) Classify(name string) domain.MedicationClass {
	lower := strings.ToLower(name)
	for _, r := range c.rules {
		if r.matches(lower) {
			return r.Class
		}
	}
	return domain.ClassOther
}

// ClassifyAll sets MedClass on every row and returns the same slice.
func (c *Classifier) ClassifyAll(rows []domain.MedicationRow) []domain.MedicationRow {
	for i := range rows {
		rows[i].MedClass = c.Classify(rows[i].MedicationName)
	}
	return rows
}

var defaultClassifier = Default()

// Classify classifies name with the built-in rules.
func Classify(name string) domain.MedicationClass {
	return defaultClassifier.Classify(name)
}

// ClassifyAll classifies rows with the built-in rules.
func ClassifyAll(rows []domain.MedicationRow) []domain.MedicationRow {
	return defaultClassifier.ClassifyAll(rows)
}
