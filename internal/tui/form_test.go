package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/prediction"
)

// recordingAnalyzer returns a fixed analysis and keeps the values it got
type recordingAnalyzer struct {
	values []any
	out    adapter.Analysis
}

func (r *recordingAnalyzer) Run(_ context.Context, values ...any) adapter.Analysis {
	r.values = values
	return r.out
}

func newTestModel(t *testing.T, a Analyzer) *Model {
	t.Helper()
	m, err := New(catalog.Churn, a)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "shift+tab":
			msg = tea.KeyMsg{Type: tea.KeyShiftTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestNewStartsWithDefaults(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{})

	want := []any{
		"Female", true, "No", "No", 1, "Yes", "No",
		"Fiber optic", "No", "No", "No", "No", "Yes", "Yes",
		"Month-to-month", "Yes", "Electronic check", "105.65", "105.65",
	}
	got := m.Values()
	if len(got) != len(want) {
		t.Fatalf("Values() has %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] = %#v, want %#v", i, got[i], want[i])
		}
	}

	if len(m.tabs) != 4 {
		t.Errorf("expected 3 sections plus the technical panel, got %d tabs", len(m.tabs))
	}
}

func TestEditingWidgets(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{})

	// gender: cycle to Male
	press(m, "right")
	// SeniorCitizen: toggle off
	press(m, "down", "space")
	// tenure: +2
	press(m, "down", "down", "down", "right", "right")

	values := m.Values()
	if values[0] != "Male" || values[1] != false || values[4] != 3 {
		t.Errorf("Values() = %v", values[:5])
	}

	// slider stops at zero
	press(m, "left", "left", "left", "left", "left")
	if m.Values()[4] != 0 {
		t.Errorf("tenure = %v, want 0", m.Values()[4])
	}
}

func TestEditingNumberField(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{})

	// Billing tab: Contract, PaperlessBilling, PaymentMethod, MonthlyCharges
	press(m, "tab", "tab", "down", "down", "down")
	if in := m.focused(); in == nil || in.spec.Name != "MonthlyCharges" {
		t.Fatalf("focused = %v, want MonthlyCharges", m.focused())
	}

	for i := 0; i < 6; i++ {
		press(m, "backspace")
	}
	press(m, "9", "9", ".", "5")

	if got := m.Values()[17]; got != "99.5" {
		t.Errorf("MonthlyCharges = %#v, want %q", got, "99.5")
	}
}

func TestRunAnalysis(t *testing.T) {
	res := prediction.Result{IsChurner: true, ChurnProbability: 0.83, RiskLevel: prediction.RiskHigh}
	analyzer := &recordingAnalyzer{out: adapter.Analysis{
		ID:     "a-1",
		Text:   adapter.Summary(res),
		Result: &res,
	}}
	m := newTestModel(t, analyzer)

	// move past the seven profile fields onto the run button
	press(m, "up")
	cmd := press(m, "enter")
	if cmd == nil {
		t.Fatal("enter on the run button should start an analysis")
	}
	if again := press(m, "enter"); again != nil {
		t.Error("a second run should not start while one is in flight")
	}

	m.Update(cmd())

	if len(analyzer.values) != catalog.Churn.Len() {
		t.Fatalf("analyzer got %d values", len(analyzer.values))
	}
	if m.Result() == nil || m.Result().Text != "Prediction: Churn (Churning Probability: 83.00%)" {
		t.Fatalf("Result() = %+v", m.Result())
	}
	if !strings.Contains(m.View(), "Prediction: Churn (Churning Probability: 83.00%)") {
		t.Error("View() should show the analysis text")
	}
}

func TestViewShowsWarning(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{out: adapter.Analysis{
		Text: "⚠️ Input Error: TotalCharges (50) cannot be less than MonthlyCharges (100).",
	}})
	m.Update(analysisMsg(m.analyzer.Run(context.Background())))

	view := m.View()
	if !strings.Contains(view, "⚠️ Input Error") {
		t.Errorf("View() missing warning:\n%s", view)
	}
}

func TestTechnicalTab(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{})

	press(m, "shift+tab")
	if m.active != 3 {
		t.Fatalf("active tab = %d, want the technical panel", m.active)
	}
	if m.focused() != nil {
		t.Error("technical panel has no fields")
	}
	if !strings.Contains(m.View(), "Dataset") {
		t.Error("View() should render the technical description")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, &recordingAnalyzer{})

	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q should quit outside text fields")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
