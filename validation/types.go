package validation

import (
	"fmt"
	"strings"
)

// Record is a validated input. Every catalog field is present and typed:
// string for choice fields, int for boolean and range fields, float64 for
// free numbers.
type Record map[string]any

// Row returns the values for names, in that order
func (r Record) Row(names []string) []any {
	row := make([]any, len(names))
	for i, name := range names {
		row[i] = r[name]
	}
	return row
}

// Float returns a numeric field as float64
func (r Record) Float(name string) (float64, bool) {
	switch v := r[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// ViolationKind classifies a rejected input
type ViolationKind string

const (
	// FieldConstraint is a single field failing its type, enum or range check
	FieldConstraint ViolationKind = "field_constraint"
	// CrossFieldConsistency is a business rule spanning several fields
	CrossFieldConsistency ViolationKind = "cross_field_consistency"
)

// Violation is one reason an input was rejected
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Field   string        `json:"field,omitempty"`
	Rule    string        `json:"rule,omitempty"`
	Message string        `json:"message"`
}

func (v Violation) String() string {
	if v.Field != "" {
		return v.Field + ": " + v.Message
	}
	return v.Message
}

// ValidationError carries every violation found for one input
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// Rule is a cross-field business rule. Expression is a CEL boolean over the
// catalog fields; Message is a CEL string expression evaluated only when the
// rule fails.
type Rule struct {
	ID         string
	Name       string
	Expression string
	Message    string
}

// DefaultRules returns the business rules of the churn catalog
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:         "charges-consistency",
			Name:       "TotalCharges must cover MonthlyCharges",
			Expression: `TotalCharges >= MonthlyCharges`,
			Message:    `"TotalCharges (" + string(TotalCharges) + ") cannot be less than MonthlyCharges (" + string(MonthlyCharges) + ")."`,
		},
	}
}

func fieldViolation(field, format string, args ...any) Violation {
	return Violation{
		Kind:    FieldConstraint,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}
