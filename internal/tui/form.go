// Package tui is the terminal version of the churn form. It follows the Elm
// architecture of bubbletea: Update folds key presses into the form state and
// View renders it.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/presentation"
)

// Analyzer runs the form action. *adapter.Form satisfies it.
type Analyzer interface {
	Run(ctx context.Context, values ...any) adapter.Analysis
}

type analysisMsg adapter.Analysis

// input holds the editable state of one catalog field
type input struct {
	spec    catalog.FieldSpec
	option  int  // choice
	on      bool // checkbox
	level   int  // slider
	text    textinput.Model
	sliderN int
}

func newInput(f catalog.FieldSpec) *input {
	in := &input{spec: f}
	switch f.Kind {
	case catalog.KindChoice:
		for i, opt := range f.Options {
			if opt == f.Default {
				in.option = i
			}
		}
	case catalog.KindBoolean:
		in.on = f.Default == 1
	case catalog.KindRange:
		in.level, _ = f.Default.(int)
		in.sliderN = int(f.SliderMax)
	default:
		in.text = textinput.New()
		in.text.Prompt = ""
		in.text.CharLimit = 16
		in.text.Width = 12
		if def, ok := f.Default.(float64); ok {
			in.text.SetValue(strconv.FormatFloat(def, 'f', -1, 64))
		}
	}
	return in
}

// value is what the form adapter receives for this field
func (in *input) value() any {
	switch in.spec.Kind {
	case catalog.KindChoice:
		return in.spec.Options[in.option]
	case catalog.KindBoolean:
		return in.on
	case catalog.KindRange:
		return in.level
	default:
		return in.text.Value()
	}
}

// step moves choice, checkbox and slider values by delta
func (in *input) step(delta int) {
	switch in.spec.Kind {
	case catalog.KindChoice:
		n := len(in.spec.Options)
		in.option = ((in.option+delta)%n + n) % n
	case catalog.KindBoolean:
		in.on = !in.on
	case catalog.KindRange:
		lower := 0
		if in.spec.Min != nil {
			lower = int(in.spec.Min.Value)
		}
		in.level = min(max(in.level+delta, lower), in.sliderN)
	}
}

func (in *input) editable() bool {
	return in.spec.Kind == catalog.KindNumber
}

// tab is one section of fields, or the technical panel when fields is empty
type tab struct {
	title   string
	heading string
	fields  []*input
}

// Model is the bubbletea model of the form
type Model struct {
	analyzer Analyzer
	tabs     []tab
	inputs   []*input // every field in catalog order

	active int // tab index
	cursor int // field index in the active tab; len(fields) is the run button

	result  *adapter.Analysis
	running bool

	overview  string
	technical string
	width     int
}

// New builds the form from the catalog. Markdown is pre-rendered with glamour.
func New(cat *catalog.Catalog, analyzer Analyzer) (*Model, error) {
	m := &Model{analyzer: analyzer, width: 100}

	for _, s := range catalog.Sections {
		text := presentation.Section(s)
		t := tab{title: text.Tab, heading: text.Heading}
		for _, f := range cat.Section(s) {
			t.fields = append(t.fields, newInput(f))
		}
		m.tabs = append(m.tabs, t)
	}
	m.tabs = append(m.tabs, tab{title: presentation.HowItWorksTab})

	// catalog order may interleave sections
	byName := make(map[string]*input)
	for _, t := range m.tabs {
		for _, in := range t.fields {
			byName[in.spec.Name] = in
		}
	}
	for _, name := range cat.Names() {
		m.inputs = append(m.inputs, byName[name])
	}

	var err error
	if m.overview, err = renderMarkdown(presentation.Overview, m.width); err != nil {
		return nil, err
	}
	if m.technical, err = renderMarkdown(presentation.Technical, m.width); err != nil {
		return nil, err
	}
	m.focus()
	return m, nil
}

// Values returns the current field values in catalog order
func (m *Model) Values() []any {
	values := make([]any, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = in.value()
	}
	return values
}

// Result is the last analysis, nil before the first run
func (m *Model) Result() *adapter.Analysis {
	return m.result
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case analysisMsg:
		a := adapter.Analysis(msg)
		m.result = &a
		m.running = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	focused := m.focused()

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "q":
		if focused == nil || !focused.editable() {
			return m, tea.Quit
		}
	case "tab":
		m.switchTab(1)
		return m, nil
	case "shift+tab":
		m.switchTab(-1)
		return m, nil
	case "up", "k":
		if msg.String() == "up" || focused == nil || !focused.editable() {
			m.moveCursor(-1)
			return m, nil
		}
	case "down", "j":
		if msg.String() == "down" || focused == nil || !focused.editable() {
			m.moveCursor(1)
			return m, nil
		}
	case "left", "h":
		if focused != nil && !focused.editable() {
			focused.step(-1)
			return m, nil
		}
	case "right", "l", " ":
		if focused != nil && !focused.editable() {
			focused.step(1)
			return m, nil
		}
	case "enter", "ctrl+r":
		if focused == nil || msg.String() == "ctrl+r" {
			return m, m.analyze()
		}
		m.moveCursor(1)
		return m, nil
	}

	if focused != nil && focused.editable() {
		var cmd tea.Cmd
		focused.text, cmd = focused.text.Update(msg)
		return m, cmd
	}
	return m, nil
}

// focused returns the field under the cursor, nil on the run button or the
// technical panel
func (m *Model) focused() *input {
	fields := m.tabs[m.active].fields
	if m.cursor < len(fields) {
		return fields[m.cursor]
	}
	return nil
}

func (m *Model) switchTab(delta int) {
	m.blur()
	n := len(m.tabs)
	m.active = ((m.active+delta)%n + n) % n
	m.cursor = 0
	m.focus()
}

func (m *Model) moveCursor(delta int) {
	m.blur()
	n := len(m.tabs[m.active].fields) + 1
	m.cursor = ((m.cursor+delta)%n + n) % n
	m.focus()
}

func (m *Model) blur() {
	if in := m.focused(); in != nil && in.editable() {
		in.text.Blur()
	}
}

func (m *Model) focus() {
	if in := m.focused(); in != nil && in.editable() {
		in.text.Focus()
	}
}

// analyze runs the adapter off the update loop
func (m *Model) analyze() tea.Cmd {
	if m.running {
		return nil
	}
	m.running = true
	values := m.Values()
	return func() tea.Msg {
		return analysisMsg(m.analyzer.Run(context.Background(), values...))
	}
}

// Run starts the program on the terminal
func Run(cat *catalog.Catalog, analyzer Analyzer) error {
	m, err := New(cat, analyzer)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
