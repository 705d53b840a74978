package db

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Statement is SQL text with its ordered bind values.
type Statement struct {
	SQL  string
	Args []any
}

// String returns a debug representation with the bind values appended.
func (s Statement) String() string {
	if len(s.Args) == 0 {
		return s.SQL
	}
	args := make([]string, len(s.Args))
	for i, a := range s.Args {
		args[i] = fmt.Sprintf("%q", fmt.Sprint(a))
	}
	return s.SQL + " [" + strings.Join(args, ", ") + "]"
}

// Columns maps search fields to table columns. Only mapped fields can be
// rendered; the map is the whitelist of identifiers a predicate may use.
type Columns map[field.Field]string

// Column returns the column for f.
func (c Columns) Column(f field.Field) (string, error) {
	col, ok := c[f]
	if !ok || col == "" {
		return "", fmt.Errorf("%w: field %q", ErrUnknownColumn, f)
	}
	return col, nil
}
