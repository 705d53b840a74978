package sqlite

import (
	"database/sql/driver"

	"golang.org/x/text/cases"
	msqlite "modernc.org/sqlite"

	"github.com/kailas-cloud/catalogo/internal/db"
)

func init() {
	msqlite.MustRegisterDeterministicScalarFunction(db.FoldFunc, 1, fold)
}

// fold applies Unicode case folding to text arguments. NULL stays NULL so
// LIKE over empty legacy columns never matches.
func fold(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return v, nil
	}
}

// Fold returns s case-folded the way stored columns are compared.
func Fold(s string) string {
	return cases.Fold().String(s)
}
