package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// Kind is the closed set of field variants
type Kind int

const (
	KindChoice Kind = iota
	KindBoolean
	KindRange
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindBoolean:
		return "boolean"
	case KindRange:
		return "numeric-range"
	case KindNumber:
		return "free-number"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText renders the kind by name so catalog JSON stays readable
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Widget is a presentation hint for form renderers. Validation never looks at it.
type Widget string

const (
	WidgetDropdown Widget = "dropdown"
	WidgetRadio    Widget = "radio"
	WidgetCheckbox Widget = "checkbox"
	WidgetSlider   Widget = "slider"
	WidgetNumber   Widget = "number"
)

// Section groups fields for presentation only
type Section string

const (
	SectionProfile  Section = "Profile"
	SectionServices Section = "Services"
	SectionBilling  Section = "Billing"
)

// Sections lists the presentation sections in display order
var Sections = []Section{SectionProfile, SectionServices, SectionBilling}

// Bound is one side of a numeric constraint
type Bound struct {
	Value     float64 `json:"value"`
	Exclusive bool    `json:"exclusive,omitempty"`
}

// AdmitsAbove reports whether v satisfies the bound when used as a lower limit
func (b Bound) AdmitsAbove(v float64) bool {
	if b.Exclusive {
		return v > b.Value
	}
	return v >= b.Value
}

// AdmitsBelow reports whether v satisfies the bound when used as an upper limit
func (b Bound) AdmitsBelow(v float64) bool {
	if b.Exclusive {
		return v < b.Value
	}
	return v <= b.Value
}

// FieldSpec describes one input field. Values are never mutated after the
// catalog is built.
type FieldSpec struct {
	Name    string
	Kind    Kind
	Widget  Widget
	Section Section

	// Options is the literal set for choice fields
	Options []string

	// Min and Max are validation bounds for numeric kinds. A nil bound is open.
	Min *Bound
	Max *Bound

	// SliderMax is the upper end of a range widget. It is not enforced.
	SliderMax float64

	// Default is typed the way a validated record stores the field:
	// string for choice, int for boolean and range, float64 for number.
	Default any
}

// Choice builds a choice field
func Choice(name string, section Section, widget Widget, def string, options ...string) FieldSpec {
	return FieldSpec{
		Name:    name,
		Kind:    KindChoice,
		Widget:  widget,
		Section: section,
		Options: options,
		Default: def,
	}
}

// Flag builds a boolean field stored as 0 or 1
func Flag(name string, section Section, def bool) FieldSpec {
	d := 0
	if def {
		d = 1
	}
	return FieldSpec{
		Name:    name,
		Kind:    KindBoolean,
		Widget:  WidgetCheckbox,
		Section: section,
		Min:     &Bound{Value: 0},
		Max:     &Bound{Value: 1},
		Default: d,
	}
}

// Range builds a bounded integer field rendered as a slider
func Range(name string, section Section, lower, sliderMax, def int) FieldSpec {
	return FieldSpec{
		Name:      name,
		Kind:      KindRange,
		Widget:    WidgetSlider,
		Section:   section,
		Min:       &Bound{Value: float64(lower)},
		SliderMax: float64(sliderMax),
		Default:   def,
	}
}

// Number builds a free float field with a lower bound
func Number(name string, section Section, lower Bound, def float64) FieldSpec {
	return FieldSpec{
		Name:    name,
		Kind:    KindNumber,
		Widget:  WidgetNumber,
		Section: section,
		Min:     &lower,
		Default: def,
	}
}

// Integer reports whether validated values of the field are ints
func (f FieldSpec) Integer() bool {
	return f.Kind == KindBoolean || f.Kind == KindRange
}

// Allows reports whether s is one of the declared options
func (f FieldSpec) Allows(s string) bool {
	return slices.Contains(f.Options, s)
}

// InBounds checks v against Min and Max
func (f FieldSpec) InBounds(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if f.Min != nil && !f.Min.AdmitsAbove(v) {
		return false
	}
	if f.Max != nil && !f.Max.AdmitsBelow(v) {
		return false
	}
	return true
}

// Constraint describes the allowed values in words, for error messages
func (f FieldSpec) Constraint() string {
	switch f.Kind {
	case KindChoice:
		return fmt.Sprintf("one of %q", f.Options)
	case KindBoolean:
		return "0 or 1"
	}

	kind := "a number"
	if f.Integer() {
		kind = "an integer"
	}
	switch {
	case f.Min != nil && f.Max != nil:
		return fmt.Sprintf("%s %s %s and %s %s", kind, lowerOp(*f.Min), fmtBound(f.Min.Value), upperOp(*f.Max), fmtBound(f.Max.Value))
	case f.Min != nil:
		return fmt.Sprintf("%s %s %s", kind, lowerOp(*f.Min), fmtBound(f.Min.Value))
	case f.Max != nil:
		return fmt.Sprintf("%s %s %s", kind, upperOp(*f.Max), fmtBound(f.Max.Value))
	}
	return kind
}

func lowerOp(b Bound) string {
	if b.Exclusive {
		return ">"
	}
	return ">="
}

func upperOp(b Bound) string {
	if b.Exclusive {
		return "<"
	}
	return "<="
}

func fmtBound(v float64) string {
	return fmt.Sprintf("%g", v)
}

// MarshalJSON exposes the spec to UI clients
func (f FieldSpec) MarshalJSON() ([]byte, error) {
	type fieldJSON struct {
		Name      string   `json:"name"`
		Kind      Kind     `json:"kind"`
		Widget    Widget   `json:"widget"`
		Section   Section  `json:"section"`
		Options   []string `json:"options,omitempty"`
		Min       *Bound   `json:"min,omitempty"`
		Max       *Bound   `json:"max,omitempty"`
		SliderMax float64  `json:"slider_max,omitempty"`
		Default   any      `json:"default"`
	}
	return json.Marshal(fieldJSON{
		Name:      f.Name,
		Kind:      f.Kind,
		Widget:    f.Widget,
		Section:   f.Section,
		Options:   f.Options,
		Min:       f.Min,
		Max:       f.Max,
		SliderMax: f.SliderMax,
		Default:   f.Default,
	})
}

func (f FieldSpec) clone() FieldSpec {
	c := f
	c.Options = slices.Clone(f.Options)
	if f.Min != nil {
		m := *f.Min
		c.Min = &m
	}
	if f.Max != nil {
		m := *f.Max
		c.Max = &m
	}
	return c
}
