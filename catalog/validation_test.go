package catalog

import (
	"strings"
	"testing"
)

// TestValidateFields_Empty verifies an empty table is rejected
func TestValidateFields_Empty(t *testing.T) {
	err := ValidateFields(nil)
	if err == nil {
		t.Error("Expected error for empty field table, got nil")
	}
	if err != nil && !strings.Contains(err.Error(), "empty") {
		t.Errorf("Expected error message about empty catalog, got: %v", err)
	}
}

// TestValidateFields_DuplicateName verifies names are unique
func TestValidateFields_DuplicateName(t *testing.T) {
	err := ValidateFields([]FieldSpec{
		Choice("Partner", SectionProfile, WidgetRadio, "No", "Yes", "No"),
		Choice("Partner", SectionProfile, WidgetRadio, "Yes", "Yes", "No"),
	})
	if err == nil {
		t.Fatal("Expected error for duplicate field name, got nil")
	}
	if !strings.Contains(err.Error(), "Partner") {
		t.Errorf("Expected error message to mention 'Partner', got: %v", err)
	}
}

// TestValidateFields_InvalidIdentifiers verifies names must be CEL identifiers
func TestValidateFields_InvalidIdentifiers(t *testing.T) {
	invalidNames := []string{"", "1tenure", "monthly-charges", "Total Charges", "in", "true", "package", strings.Repeat("a", 101)}

	for _, name := range invalidNames {
		t.Run(name, func(t *testing.T) {
			err := ValidateFields([]FieldSpec{Range(name, SectionProfile, 0, 72, 1)})
			if err == nil {
				t.Errorf("Expected error for field name %q, got nil", name)
			}
		})
	}
}

// TestValidateFields_ValidIdentifiers verifies ordinary names pass
func TestValidateFields_ValidIdentifiers(t *testing.T) {
	validNames := []string{"tenure", "SeniorCitizen", "_private", "field_2", "inbound"}

	for _, name := range validNames {
		if err := ValidateFields([]FieldSpec{Range(name, SectionProfile, 0, 72, 1)}); err != nil {
			t.Errorf("Expected field name %q to pass validation, got error: %v", name, err)
		}
	}
}

// TestValidateFields_ChoiceDefaults verifies a choice default must be an option
func TestValidateFields_ChoiceDefaults(t *testing.T) {
	testCases := []struct {
		name    string
		field   FieldSpec
		wantErr string
	}{
		{"no options", Choice("Contract", SectionBilling, WidgetDropdown, "Monthly"), "at least one option"},
		{"default outside options", Choice("Contract", SectionBilling, WidgetDropdown, "Monthly", "One year", "Two year"), "Monthly"},
		{"duplicate option", Choice("Contract", SectionBilling, WidgetDropdown, "One year", "One year", "One year"), "duplicate option"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFields([]FieldSpec{tc.field})
			if err == nil {
				t.Fatalf("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

// TestValidateFields_NumericDefaults verifies numeric defaults respect bounds and types
func TestValidateFields_NumericDefaults(t *testing.T) {
	testCases := []struct {
		name  string
		field FieldSpec
	}{
		{"negative tenure", Range("tenure", SectionProfile, 0, 72, -1)},
		{"tenure beyond slider", Range("tenure", SectionProfile, 0, 72, 100)},
		{"zero monthly charges", Number("MonthlyCharges", SectionBilling, Bound{Value: 0, Exclusive: true}, 0)},
		{"flag default typed as float", FieldSpec{Name: "SeniorCitizen", Kind: KindBoolean, Min: &Bound{}, Max: &Bound{Value: 1}, Default: 1.0}},
		{"number default typed as int", FieldSpec{Name: "TotalCharges", Kind: KindNumber, Default: 3}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateFields([]FieldSpec{tc.field}); err == nil {
				t.Errorf("Expected error for %s, got nil", tc.name)
			}
		})
	}
}

// TestValidateFields_OptionsOnNumeric verifies only choice fields carry options
func TestValidateFields_OptionsOnNumeric(t *testing.T) {
	f := Range("tenure", SectionProfile, 0, 72, 1)
	f.Options = []string{"1"}

	err := ValidateFields([]FieldSpec{f})
	if err == nil {
		t.Fatal("Expected error for options on a numeric field, got nil")
	}
	if !strings.Contains(err.Error(), "options") {
		t.Errorf("Expected error message about options, got: %v", err)
	}
}
