package catalog

import (
	"fmt"
	"regexp"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidateFields checks a field table before it becomes a catalog.
// Field names end up as CEL variables, so they follow CEL identifier rules.
func ValidateFields(fields []FieldSpec) error {
	if len(fields) == 0 {
		return fmt.Errorf("catalog cannot be empty, must contain at least one field")
	}

	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if err := validateIdentifier(f.Name); err != nil {
			return fmt.Errorf("invalid field name %q at position %d: %w", f.Name, i, err)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true

		if err := validateField(f); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}

	return nil
}

func validateField(f FieldSpec) error {
	switch f.Kind {
	case KindChoice:
		if len(f.Options) == 0 {
			return fmt.Errorf("choice field must declare at least one option")
		}
		dup := make(map[string]bool, len(f.Options))
		for _, o := range f.Options {
			if dup[o] {
				return fmt.Errorf("duplicate option %q", o)
			}
			dup[o] = true
		}
		def, ok := f.Default.(string)
		if !ok {
			return fmt.Errorf("default %v is not a string", f.Default)
		}
		if !f.Allows(def) {
			return fmt.Errorf("default %q is not %s", def, f.Constraint())
		}

	case KindBoolean, KindRange:
		def, ok := f.Default.(int)
		if !ok {
			return fmt.Errorf("default %v is not an int", f.Default)
		}
		if !f.InBounds(float64(def)) {
			return fmt.Errorf("default %d is not %s", def, f.Constraint())
		}
		if f.Kind == KindRange && f.SliderMax != 0 && float64(def) > f.SliderMax {
			return fmt.Errorf("default %d exceeds slider maximum %g", def, f.SliderMax)
		}

	case KindNumber:
		def, ok := f.Default.(float64)
		if !ok {
			return fmt.Errorf("default %v is not a float64", f.Default)
		}
		if !f.InBounds(def) {
			return fmt.Errorf("default %g is not %s", def, f.Constraint())
		}

	default:
		return fmt.Errorf("unknown kind %s", f.Kind)
	}

	if f.Kind != KindChoice && len(f.Options) > 0 {
		return fmt.Errorf("%s field cannot declare options", f.Kind)
	}
	return nil
}

// validateIdentifier checks a field name: pattern, length 1-100, not reserved
func validateIdentifier(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("identifier cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("identifier length %d exceeds maximum of 100 characters", len(name))
	}

	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$ (start with letter or underscore, followed by letters, digits, or underscores)")
	}

	if isReservedKeyword(name) {
		return fmt.Errorf("cannot use reserved keyword %q as identifier", name)
	}

	return nil
}

// isReservedKeyword checks a name against CEL reserved words
func isReservedKeyword(name string) bool {
	reservedKeywords := map[string]bool{
		// Boolean and null literals
		"true":  true,
		"false": true,
		"null":  true,
		// Control flow
		"if":       true,
		"else":     true,
		"for":      true,
		"while":    true,
		"break":    true,
		"continue": true,
		"return":   true,
		// Declarations
		"var":      true,
		"let":      true,
		"const":    true,
		"function": true,
		// Other keywords
		"in":        true,
		"as":        true,
		"import":    true,
		"package":   true,
		"namespace": true,
		"loop":      true,
		"void":      true,
	}

	return reservedKeywords[name]
}
