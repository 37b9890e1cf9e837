// Package catalog holds the static, ordered description of every input field
// the churn model is trained on.
//
// The order of the catalog is an external contract: it is the positional order
// of form values and the column order of the frame handed to the model.
package catalog

import (
	"fmt"
)

// Catalog is an ordered, read-only list of field specs
type Catalog struct {
	fields []FieldSpec
	index  map[string]int
}

// New builds a catalog and checks it with ValidateFields
func New(fields ...FieldSpec) (*Catalog, error) {
	if err := ValidateFields(fields); err != nil {
		return nil, err
	}

	c := &Catalog{
		fields: make([]FieldSpec, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		c.fields[i] = f.clone()
		c.index[f.Name] = i
	}
	return c, nil
}

// MustNew is New for static tables; an invalid table is a programming error
func MustNew(fields ...FieldSpec) *Catalog {
	c, err := New(fields...)
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return c
}

// Len returns the number of fields
func (c *Catalog) Len() int {
	return len(c.fields)
}

// Fields returns a copy of every field spec in catalog order
func (c *Catalog) Fields() []FieldSpec {
	out := make([]FieldSpec, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.clone()
	}
	return out
}

// Names returns field names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.fields))
	for i, f := range c.fields {
		names[i] = f.Name
	}
	return names
}

// Lookup returns the spec for name
func (c *Catalog) Lookup(name string) (FieldSpec, bool) {
	i, ok := c.index[name]
	if !ok {
		return FieldSpec{}, false
	}
	return c.fields[i].clone(), true
}

// Section returns the fields of one presentation section, in catalog order
func (c *Catalog) Section(s Section) []FieldSpec {
	var out []FieldSpec
	for _, f := range c.fields {
		if f.Section == s {
			out = append(out, f.clone())
		}
	}
	return out
}

// Example returns the defaults as a raw mapping; it validates cleanly
func (c *Catalog) Example() map[string]any {
	ex := make(map[string]any, len(c.fields))
	for _, f := range c.fields {
		ex[f.Name] = f.Default
	}
	return ex
}

// Defaults returns the defaults positionally, in catalog order
func (c *Catalog) Defaults() []any {
	out := make([]any, len(c.fields))
	for i, f := range c.fields {
		out[i] = f.Default
	}
	return out
}

// Zip pairs positional values with field names in catalog order
func (c *Catalog) Zip(values []any) (map[string]any, error) {
	if len(values) != len(c.fields) {
		return nil, fmt.Errorf("expected %d values, got %d", len(c.fields), len(values))
	}
	out := make(map[string]any, len(values))
	for i, f := range c.fields {
		out[f.Name] = values[i]
	}
	return out, nil
}
