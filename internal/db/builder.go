package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogo/internal/domain/search/filter"
)

// SelectBuilder is a fluent builder for read-only SELECT statements whose
// values are only ever bound through placeholders.
type SelectBuilder struct {
	dialect    Dialect
	columns    []string
	table      string
	conditions []condition
	orderBy    []string
	limit      int
	offset     int
	paged      bool
	err        error
}

const opLike = "LIKE"

// term renders as "column op <placeholder>".
type term struct {
	column string
	op     string
	arg    any
}

// condition is a group of terms joined by one operator.
type condition struct {
	join  string
	terms []term
}

// Select starts building a SELECT of the given columns.
func Select(columns ...string) *SelectBuilder {
	b := &SelectBuilder{dialect: SQLite}
	for _, c := range columns {
		b.checkIdent(c)
	}
	b.columns = append(b.columns, columns...)
	return b
}

// Dialect sets the placeholder and pagination syntax.
func (b *SelectBuilder) Dialect(d Dialect) *SelectBuilder {
	if _, err := ParseDialect(string(d)); err != nil {
		b.fail(err)
	}
	b.dialect = d
	return b
}

// From sets the table.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.checkIdent(table)
	b.table = table
	return b
}

// Match adds the predicate of expr, resolving fields through cols.
// An empty expression adds nothing.
func (b *SelectBuilder) Match(expr filter.Expression, cols Columns) *SelectBuilder {
	if expr.IsEmpty() {
		return b
	}
	c := condition{join: expr.Join().String(), terms: make([]term, 0, len(expr.Clauses()))}
	for _, cl := range expr.Clauses() {
		col, err := cols.Column(cl.Field())
		if err != nil {
			b.fail(err)
			return b
		}
		b.checkIdent(col)
		c.terms = append(c.terms, term{column: col, op: opLike, arg: cl.Pattern()})
	}
	b.conditions = append(b.conditions, c)
	return b
}

// WhereEq adds an equality condition on column.
func (b *SelectBuilder) WhereEq(column string, value any) *SelectBuilder {
	b.checkIdent(column)
	b.conditions = append(b.conditions, condition{
		join:  "AND",
		terms: []term{{column: column, op: "=", arg: value}},
	})
	return b
}

// OrderBy appends ascending sort columns.
func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	for _, c := range columns {
		b.checkIdent(c)
	}
	b.orderBy = append(b.orderBy, columns...)
	return b
}

// Page limits the data statement to limit rows after offset.
func (b *SelectBuilder) Page(limit, offset int) *SelectBuilder {
	if limit <= 0 || offset < 0 {
		b.fail(fmt.Errorf("invalid page window limit=%d offset=%d", limit, offset))
		return b
	}
	b.limit, b.offset, b.paged = limit, offset, true
	return b
}

// Predicate renders the WHERE condition without the keyword, numbering
// placeholders from 1. It returns "" when there is no condition.
func (b *SelectBuilder) Predicate() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	var sb strings.Builder
	args := make([]any, 0)
	n := 1
	for i, c := range b.conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		wrap := len(b.conditions) > 1 && len(c.terms) > 1
		if wrap {
			sb.WriteByte('(')
		}
		for j, t := range c.terms {
			if j > 0 {
				sb.WriteString(" " + c.join + " ")
			}
			ph := b.dialect.Placeholder(n)
			if t.op == opLike {
				sb.WriteString(b.dialect.Like(t.column, ph))
			} else {
				sb.WriteString(t.column + " " + t.op + " " + ph)
			}
			args = append(args, t.arg)
			n++
		}
		if wrap {
			sb.WriteByte(')')
		}
	}
	return sb.String(), args, nil
}

// Build renders the data statement.
func (b *SelectBuilder) Build() (Statement, error) {
	if err := b.validate(); err != nil {
		return Statement{}, err
	}
	if len(b.columns) == 0 {
		return Statement{}, errors.New("select: no columns")
	}
	pred, args, err := b.Predicate()
	if err != nil {
		return Statement{}, err
	}

	parts := []string{"SELECT", strings.Join(b.columns, ", "), "FROM", b.table}
	if pred != "" {
		parts = append(parts, "WHERE", pred)
	}
	if len(b.orderBy) > 0 {
		parts = append(parts, "ORDER BY", strings.Join(b.orderBy, ", "))
	}
	if b.paged {
		if b.dialect == SQLServer && len(b.orderBy) == 0 {
			return Statement{}, errors.New("select: sqlserver pagination requires ORDER BY")
		}
		parts = append(parts, b.dialect.Paginate(b.limit, b.offset))
	}
	return Statement{SQL: strings.Join(parts, " "), Args: args}, nil
}

// BuildCount renders the COUNT(*) statement sharing the data predicate.
func (b *SelectBuilder) BuildCount() (Statement, error) {
	if err := b.validate(); err != nil {
		return Statement{}, err
	}
	pred, args, err := b.Predicate()
	if err != nil {
		return Statement{}, err
	}
	parts := []string{"SELECT COUNT(*) FROM", b.table}
	if pred != "" {
		parts = append(parts, "WHERE", pred)
	}
	return Statement{SQL: strings.Join(parts, " "), Args: args}, nil
}

// MustBuild calls Build and panics on error.
func (b *SelectBuilder) MustBuild() Statement {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *SelectBuilder) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.table == "" {
		return errors.New("select: no table")
	}
	return nil
}

func (b *SelectBuilder) checkIdent(name string) {
	if !ValidIdent(name) {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidIdent, name))
	}
}

// fail records the first error; later calls keep it.
func (b *SelectBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
