package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrRowNotFound    = errors.New("db: row not found")
	ErrInvalidIdent   = errors.New("db: invalid identifier")
	ErrUnknownColumn  = errors.New("db: unknown column")
	ErrUnknownDialect = errors.New("db: unknown dialect")
)

// Op names used for error context and query metrics.
const (
	OpConn   = "CONN"
	OpPing   = "PING"
	OpCount  = "COUNT"
	OpSelect = "SELECT"
	OpGet    = "GET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
