package db

import (
	"fmt"
	"regexp"
	"strconv"
)

// Dialect selects placeholder and pagination syntax.
type Dialect string

const (
	// SQLite uses ? placeholders and LIMIT/OFFSET.
	SQLite Dialect = "sqlite"
	// SQLServer uses @pN placeholders and OFFSET/FETCH.
	SQLServer Dialect = "sqlserver"
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(name); d {
	case SQLite, SQLServer:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

// Placeholder returns the bind marker for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == SQLServer {
		return "@p" + strconv.Itoa(n)
	}
	return "?"
}

// FoldFunc is the SQL function SQLite stores register to fold text for
// case-insensitive matching beyond ASCII.
const FoldFunc = "fold"

// Like renders a case-insensitive LIKE of column against placeholder.
// SQL Server catalogs use a case-insensitive collation already.
func (d Dialect) Like(column, placeholder string) string {
	if d == SQLServer {
		return column + " LIKE " + placeholder
	}
	return FoldFunc + "(" + column + ") LIKE " + FoldFunc + "(" + placeholder + ")"
}

// Paginate returns the clause limiting a result to limit rows after offset.
// SQL Server requires the statement to carry an ORDER BY.
func (d Dialect) Paginate(limit, offset int) string {
	if d == SQLServer {
		return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
	}
	return fmt.Sprintf("LIMIT %d OFFSET %d", limit, offset)
}

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidIdent reports whether name is a plain (optionally schema-qualified)
// identifier safe to emit without quoting.
func ValidIdent(name string) bool {
	return identRegex.MatchString(name)
}
