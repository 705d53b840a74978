// Package sqlite opens catalog stores on the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/kailas-cloud/catalogo/internal/db"
	"github.com/kailas-cloud/catalogo/internal/db/sqldb"
)

// DriverName is the database/sql driver name registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Open opens a store for dsn. A bare file path is turned into a file: URI
// with a busy timeout.
func Open(dsn string, opts ...sqldb.Option) (*sqldb.Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: dsn is required")
	}
	store, err := sqldb.Open(DriverName, FileDSN(dsn), db.SQLite, opts...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return store, nil
}

// FileDSN normalizes a path into a file: URI. DSNs that already carry a
// scheme or query string are returned unchanged.
func FileDSN(path string) string {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "?") || path == ":memory:" {
		return path
	}
	return "file:" + path + "?_pragma=busy_timeout(5000)"
}
