// Package filter describes search predicates as typed clause descriptors.
// Rendering to SQL happens in internal/db; nothing here touches SQL text.
package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogo/internal/domain"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Join is the boolean operator between clauses.
type Join int

// Join operators.
const (
	And Join = iota
	Or
)

func (j Join) String() string {
	if j == Or {
		return "OR"
	}
	return "AND"
}

// Expression is a flat list of clauses combined with a single operator.
type Expression struct {
	join    Join
	clauses []Clause
}

// AllOf returns the AND of one clause per set field of c, in canonical field
// order, each using the field's configured match mode.
func AllOf(c criteria.Criteria) (Expression, error) {
	if c.IsEmpty() {
		return Expression{}, domain.ErrNoCriteriaProvided
	}
	clauses := make([]Clause, 0, c.Len())
	for _, f := range c.Fields() {
		v, _ := c.Get(f)
		cl, err := NewClause(f, field.MatchModeFor(f), v)
		if err != nil {
			return Expression{}, err
		}
		clauses = append(clauses, cl)
	}
	return Expression{join: And, clauses: clauses}, nil
}

// AnyOf returns the OR of contains-match clauses of token over fields.
func AnyOf(token string, fields ...field.Field) (Expression, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Expression{}, domain.ErrEmptyQuery
	}
	if len(fields) == 0 {
		return Expression{}, fmt.Errorf("at least one field is required")
	}
	clauses := make([]Clause, 0, len(fields))
	for _, f := range fields {
		cl, err := NewClause(f, field.Contains, token)
		if err != nil {
			return Expression{}, err
		}
		clauses = append(clauses, cl)
	}
	return Expression{join: Or, clauses: clauses}, nil
}

// Join returns the operator between clauses.
func (e Expression) Join() Join { return e.join }

// Clauses returns the clauses in predicate order.
func (e Expression) Clauses() []Clause { return e.clauses }

// IsEmpty reports whether the expression has no clauses.
func (e Expression) IsEmpty() bool { return len(e.clauses) == 0 }

// Clause matches one field against a value with a match mode.
type Clause struct {
	field field.Field
	mode  field.MatchMode
	value string
}

// NewClause validates and creates a Clause.
func NewClause(f field.Field, mode field.MatchMode, value string) (Clause, error) {
	if f == "" {
		return Clause{}, fmt.Errorf("filter field is required")
	}
	if value == "" {
		return Clause{}, fmt.Errorf("match value is required for field %q", f)
	}
	return Clause{field: f, mode: mode, value: value}, nil
}

// Field returns the matched field.
func (c Clause) Field() field.Field { return c.field }

// Mode returns the match mode.
func (c Clause) Mode() field.MatchMode { return c.mode }

// Value returns the raw search value.
func (c Clause) Value() string { return c.value }

// Pattern returns the LIKE pattern bound for this clause.
// Wildcards inside the value are passed through unescaped, as users of the
// catalog have always been able to type % and _ themselves.
func (c Clause) Pattern() string {
	if c.mode == field.Prefix {
		return c.value + "%"
	}
	return "%" + c.value + "%"
}
