package db

import (
	"context"
	"time"
)

// Store is the database facade used by the composition root.
type Store interface {
	Pinger
	Sessioner
	Dialect() Dialect
	Close() error
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Sessioner hands out scoped database sessions.
type Sessioner interface {
	// WithSession acquires a session, runs fn and releases the session on
	// every exit path, including errors and panics in fn.
	WithSession(ctx context.Context, fn func(Session) error) error
}

// Scanner reads the current row into dest.
type Scanner interface {
	Scan(dest ...any) error
}

// Session runs read-only statements on one connection.
type Session interface {
	// Count runs a statement returning a single integer.
	Count(ctx context.Context, stmt Statement) (int, error)
	// Query runs stmt and calls scan once per row, in order.
	Query(ctx context.Context, stmt Statement, scan func(Scanner) error) error
	// QueryRow scans the first row into dest. Returns ErrRowNotFound when
	// the statement yields no rows.
	QueryRow(ctx context.Context, stmt Statement, dest ...any) error
}
