package webform

import (
	"fmt"
	"html/template"
	"strconv"

	"github.com/liamcoop/churn/adapter"
	"github.com/liamcoop/churn/catalog"
	"github.com/liamcoop/churn/internal/presentation"
	"github.com/liamcoop/churn/prediction"
)

type pageView struct {
	Title         string
	Overview      template.HTML
	Technical     template.HTML
	Guide         template.HTML
	HowItWorksTab string
	ResultLabel   string
	AnalyzeLabel  string
	Sections      []sectionView
	Result        *resultView
}

type sectionView struct {
	ID      string
	Tab     string
	Heading string
	Fields  []fieldView
}

type fieldView struct {
	Name    string
	Widget  string
	Value   string
	Checked bool
	Options []optionView
	Min     string
	Max     string
}

type optionView struct {
	Value    string
	Selected bool
}

type resultView struct {
	ID    string
	Text  string
	Class string
}

// view builds the page from positional values in catalog order
func (h *Handler) view(values []any, a *adapter.Analysis) pageView {
	v := pageView{
		Title:         presentation.Title,
		Overview:      h.overview,
		Technical:     h.technical,
		Guide:         h.guide,
		HowItWorksTab: presentation.HowItWorksTab,
		ResultLabel:   presentation.ResultLabel,
		AnalyzeLabel:  presentation.AnalyzeLabel,
	}

	byName := make(map[string]any, len(values))
	for i, name := range h.catalog.Names() {
		if i < len(values) {
			byName[name] = values[i]
		}
	}

	for _, s := range catalog.Sections {
		text := presentation.Section(s)
		sv := sectionView{ID: string(s), Tab: text.Tab, Heading: text.Heading}
		for _, f := range h.catalog.Section(s) {
			sv.Fields = append(sv.Fields, fieldFor(f, byName[f.Name]))
		}
		v.Sections = append(v.Sections, sv)
	}

	if a != nil {
		v.Result = &resultView{ID: a.ID, Text: a.Text, Class: resultClass(a)}
	}
	return v
}

func fieldFor(f catalog.FieldSpec, value any) fieldView {
	fv := fieldView{Name: f.Name, Widget: string(f.Widget), Value: display(value)}

	switch f.Widget {
	case catalog.WidgetCheckbox:
		fv.Checked = isOn(value)
	case catalog.WidgetSlider:
		if f.Min != nil {
			fv.Min = strconv.FormatFloat(f.Min.Value, 'f', -1, 64)
		}
		fv.Max = strconv.FormatFloat(f.SliderMax, 'f', -1, 64)
	}

	for _, opt := range f.Options {
		fv.Options = append(fv.Options, optionView{Value: opt, Selected: opt == fv.Value})
	}
	return fv
}

func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func isOn(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case int:
		return x != 0
	case string:
		return checked(x)
	default:
		return false
	}
}

func resultClass(a *adapter.Analysis) string {
	switch {
	case a.Failed():
		return "warning"
	case a.Result != nil && a.Result.RiskLevel == prediction.RiskHigh:
		return "high"
	default:
		return "low"
	}
}
