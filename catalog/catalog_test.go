package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestChurnCatalogOrder(t *testing.T) {
	want := []string{
		"gender", "SeniorCitizen", "Partner", "Dependents", "tenure",
		"PhoneService", "MultipleLines", "InternetService", "OnlineSecurity",
		"OnlineBackup", "DeviceProtection", "TechSupport", "StreamingTV",
		"StreamingMovies", "Contract", "PaperlessBilling", "PaymentMethod",
		"MonthlyCharges", "TotalCharges",
	}

	if diff := cmp.Diff(want, Churn.Names()); diff != "" {
		t.Errorf("Churn.Names() mismatch (-want +got):\n%s", diff)
	}
	if Churn.Len() != 19 {
		t.Errorf("Churn.Len() = %d, want 19", Churn.Len())
	}
}

func TestChurnCatalogSections(t *testing.T) {
	testCases := []struct {
		section Section
		first   string
		count   int
	}{
		{SectionProfile, "gender", 7},
		{SectionServices, "InternetService", 7},
		{SectionBilling, "Contract", 5},
	}

	total := 0
	for _, tc := range testCases {
		t.Run(string(tc.section), func(t *testing.T) {
			fields := Churn.Section(tc.section)
			if len(fields) != tc.count {
				t.Fatalf("Section(%s) has %d fields, want %d", tc.section, len(fields), tc.count)
			}
			if fields[0].Name != tc.first {
				t.Errorf("Section(%s) starts with %s, want %s", tc.section, fields[0].Name, tc.first)
			}
		})
		total += len(Churn.Section(tc.section))
	}

	if total != Churn.Len() {
		t.Errorf("sections cover %d fields, catalog has %d", total, Churn.Len())
	}
}

func TestChurnCatalogConstraints(t *testing.T) {
	tenure, ok := Churn.Lookup("tenure")
	if !ok {
		t.Fatal("tenure not in catalog")
	}
	if !tenure.InBounds(0) || tenure.InBounds(-1) {
		t.Error("tenure should admit 0 and reject -1")
	}
	if !tenure.InBounds(500) {
		t.Error("tenure slider maximum must not be enforced")
	}

	monthly, _ := Churn.Lookup("MonthlyCharges")
	if monthly.InBounds(0) {
		t.Error("MonthlyCharges must be strictly positive")
	}

	total, _ := Churn.Lookup("TotalCharges")
	if !total.InBounds(0) {
		t.Error("TotalCharges should admit 0")
	}

	senior, _ := Churn.Lookup("SeniorCitizen")
	if senior.Kind != KindBoolean || senior.Default != 1 {
		t.Errorf("SeniorCitizen = %v/%v, want boolean defaulting to 1", senior.Kind, senior.Default)
	}

	internet, _ := Churn.Lookup("InternetService")
	if internet.Allows("Cable") {
		t.Error("InternetService should not allow Cable")
	}
}

func TestCatalogIsReadOnly(t *testing.T) {
	fields := Churn.Fields()
	fields[0].Name = "changed"
	fields[0].Options[0] = "changed"

	f, _ := Churn.Lookup("gender")
	f.Options[1] = "changed"

	again, _ := Churn.Lookup("gender")
	if diff := cmp.Diff([]string{"Female", "Male"}, again.Options); diff != "" {
		t.Errorf("catalog was mutated through a copy (-want +got):\n%s", diff)
	}
	if Churn.Names()[0] != "gender" {
		t.Errorf("catalog order was mutated: %v", Churn.Names())
	}
}

func TestCatalogExample(t *testing.T) {
	ex := Churn.Example()

	if len(ex) != Churn.Len() {
		t.Fatalf("Example() has %d keys, want %d", len(ex), Churn.Len())
	}
	if ex["MonthlyCharges"] != 105.65 || ex["TotalCharges"] != 105.65 {
		t.Errorf("unexpected example charges: %v / %v", ex["MonthlyCharges"], ex["TotalCharges"])
	}
	if ex["Contract"] != "Month-to-month" {
		t.Errorf("Example()[Contract] = %v", ex["Contract"])
	}
	if len(Churn.Defaults()) != Churn.Len() {
		t.Errorf("Defaults() length mismatch")
	}
}

func TestFieldSpecJSON(t *testing.T) {
	monthly, _ := Churn.Lookup("MonthlyCharges")

	raw, err := json.Marshal(monthly)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if got["kind"] != "free-number" {
		t.Errorf("kind = %v, want free-number", got["kind"])
	}
	if got["section"] != "Billing" {
		t.Errorf("section = %v, want Billing", got["section"])
	}
	min, ok := got["min"].(map[string]any)
	if !ok || min["exclusive"] != true {
		t.Errorf("min = %v, want exclusive bound", got["min"])
	}
}

func TestConstraintText(t *testing.T) {
	testCases := []struct {
		name string
		want string
	}{
		{"tenure", "an integer >= 0"},
		{"MonthlyCharges", "a number > 0"},
		{"TotalCharges", "a number >= 0"},
		{"SeniorCitizen", "0 or 1"},
		{"Partner", `one of ["Yes" "No"]`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, _ := Churn.Lookup(tc.name)
			if got := f.Constraint(); got != tc.want {
				t.Errorf("Constraint() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCatalogZip(t *testing.T) {
	raw, err := Churn.Zip(Churn.Defaults())
	if err != nil {
		t.Fatalf("Zip() failed: %v", err)
	}
	if diff := cmp.Diff(Churn.Example(), raw); diff != "" {
		t.Errorf("Zip(Defaults()) != Example() (-want +got):\n%s", diff)
	}

	if _, err := Churn.Zip([]any{"Female"}); err == nil {
		t.Error("Zip() should reject a short value list")
	}
}
