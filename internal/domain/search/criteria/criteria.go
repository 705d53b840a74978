// Package criteria holds the per-request advanced search values.
package criteria

import (
	"strings"

	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Criteria maps advanced search fields to their substring values.
// Blank values are never stored.
type Criteria struct {
	values map[field.Field]string
}

// New builds Criteria from field values, trimming and dropping blanks and
// ignoring fields that are not advanced search fields.
func New(values map[field.Field]string) Criteria {
	c := Criteria{values: make(map[field.Field]string, len(values))}
	for f, v := range values {
		c = c.With(f, v)
	}
	return c
}

// FromParams builds Criteria from request parameters keyed by field name.
// Unrecognized keys are ignored; for repeated keys the first value wins.
func FromParams(params map[string][]string) Criteria {
	c := Criteria{values: make(map[field.Field]string)}
	for name, vs := range params {
		f, ok := field.Parse(name)
		if !ok || len(vs) == 0 {
			continue
		}
		c = c.With(f, vs[0])
	}
	return c
}

// With returns a copy of c with f set to v. A blank v removes f.
func (c Criteria) With(f field.Field, v string) Criteria {
	if _, ok := field.Parse(string(f)); !ok {
		return c
	}
	out := Criteria{values: make(map[field.Field]string, len(c.values)+1)}
	for k, val := range c.values {
		out.values[k] = val
	}
	v = strings.TrimSpace(v)
	if v == "" {
		delete(out.values, f)
		return out
	}
	out.values[f] = v
	return out
}

// Get returns the value for f and whether it is set.
func (c Criteria) Get(f field.Field) (string, bool) {
	v, ok := c.values[f]
	return v, ok
}

// IsEmpty reports whether no field is set.
func (c Criteria) IsEmpty() bool { return len(c.values) == 0 }

// Len returns the number of set fields.
func (c Criteria) Len() int { return len(c.values) }

// Fields returns the set fields in canonical order.
func (c Criteria) Fields() []field.Field {
	out := make([]field.Field, 0, len(c.values))
	for _, f := range field.Advanced() {
		if _, ok := c.values[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Params returns the set values keyed by parameter name, for building
// pagination links that keep the search.
func (c Criteria) Params() map[string]string {
	out := make(map[string]string, len(c.values))
	for f, v := range c.values {
		out[f.String()] = v
	}
	return out
}
