// Package validation turns raw field values into a typed Record, or rejects
// them with every violation found.
package validation

import (
	"fmt"

	"github.com/liamcoop/churn/catalog"
)

// Validator checks raw inputs against a catalog and its business rules.
// It holds no mutable state.
type Validator struct {
	catalog *catalog.Catalog
	rules   *RuleEngine
}

// NewValidator compiles rules against cat
func NewValidator(cat *catalog.Catalog, rules ...Rule) (*Validator, error) {
	engine, err := NewRuleEngine(cat, rules...)
	if err != nil {
		return nil, err
	}
	return &Validator{catalog: cat, rules: engine}, nil
}

// NewChurnValidator returns a validator for the churn catalog and its rules
func NewChurnValidator() (*Validator, error) {
	return NewValidator(catalog.Churn, DefaultRules()...)
}

// Catalog returns the catalog the validator checks against
func (v *Validator) Catalog() *catalog.Catalog {
	return v.catalog
}

// Validate checks every field, then the business rules. It returns either a
// complete Record or a *ValidationError, never both. Keys that are not in the
// catalog are ignored.
func (v *Validator) Validate(raw map[string]any) (Record, error) {
	rec := make(Record, v.catalog.Len())
	var violations []Violation

	for _, f := range v.catalog.Fields() {
		value, bad := coerce(f, raw[f.Name])
		if bad != nil {
			violations = append(violations, *bad)
			continue
		}
		rec[f.Name] = value
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	violations, err := v.rules.Evaluate(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate business rules: %w", err)
	}
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	return rec, nil
}
