package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Observer receives the outcome of every statement a session runs.
type Observer interface {
	ObserveQuery(op string, d time.Duration, err error)
}

// PoolConfig holds connection pool limits. Zero values keep the driver defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithObserver reports each statement to o.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observer = o }
}

// WithLogger sets the logger for statement debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store implements db.Store over a database/sql pool.
type Store struct {
	db       *sql.DB
	dialect  db.Dialect
	observer Observer
	logger   *zap.Logger
}

// WithPool applies connection pool limits.
func WithPool(p PoolConfig) Option {
	return func(s *Store) {
		if p.MaxOpenConns > 0 {
			s.db.SetMaxOpenConns(p.MaxOpenConns)
		}
		if p.MaxIdleConns > 0 {
			s.db.SetMaxIdleConns(p.MaxIdleConns)
		}
		if p.ConnMaxLifetime > 0 {
			s.db.SetConnMaxLifetime(p.ConnMaxLifetime)
		}
	}
}

// Open opens a pool for driverName. It does not connect; use Ping or
// WaitForReady.
func Open(driverName, dsn string, dialect db.Dialect, opts ...Option) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	sqlDB, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	return New(sqlDB, dialect, opts...), nil
}

// New wraps an existing pool.
func New(sqlDB *sql.DB, dialect db.Dialect, opts ...Option) *Store {
	s := &Store{db: sqlDB, dialect: dialect, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DB returns the underlying pool.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() db.Dialect { return s.dialect }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.db.PingContext(ctx)
	s.observe(db.OpPing, start, err)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the pool.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

// WaitForReady polls Ping until the database responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err == nil {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.db.PingContext(ctx); err == nil {
				return nil
			}
		}
	}
}

// WithSession pins one pooled connection for the duration of fn.
// The connection returns to the pool when fn returns or panics.
func (s *Store) WithSession(ctx context.Context, fn func(db.Session) error) error {
	start := time.Now()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		s.observe(db.OpConn, start, err)
		return &db.Error{Op: db.OpConn, Err: err}
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			s.logger.Warn("release connection", zap.Error(cerr))
		}
	}()
	return fn(&session{conn: conn, store: s})
}

func (s *Store) observe(op string, start time.Time, err error) {
	if s.observer != nil {
		s.observer.ObserveQuery(op, time.Since(start), err)
	}
}

type session struct {
	conn  *sql.Conn
	store *Store
}

func (c *session) Count(ctx context.Context, stmt db.Statement) (int, error) {
	start := time.Now()
	var n int64
	err := c.conn.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(&n)
	c.store.observe(db.OpCount, start, err)
	c.store.logger.Debug("count", zap.Stringer("stmt", stmt), zap.Int64("n", n), zap.Error(err))
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return int(n), nil
}

func (c *session) Query(ctx context.Context, stmt db.Statement, scan func(db.Scanner) error) error {
	start := time.Now()
	err := c.query(ctx, stmt, scan)
	c.store.observe(db.OpSelect, start, err)
	c.store.logger.Debug("select", zap.Stringer("stmt", stmt), zap.Error(err))
	if err != nil {
		return &db.Error{Op: db.OpSelect, Err: err}
	}
	return nil
}

func (c *session) query(ctx context.Context, stmt db.Statement, scan func(db.Scanner) error) error {
	rows, err := c.conn.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by Query
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
	}
	return rows.Err() //nolint:wrapcheck // wrapped by Query
}

func (c *session) QueryRow(ctx context.Context, stmt db.Statement, dest ...any) error {
	start := time.Now()
	err := c.conn.QueryRowContext(ctx, stmt.SQL, stmt.Args...).Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		c.store.observe(db.OpGet, start, nil)
		return db.ErrRowNotFound
	}
	c.store.observe(db.OpGet, start, err)
	c.store.logger.Debug("get", zap.Stringer("stmt", stmt), zap.Error(err))
	if err != nil {
		return &db.Error{Op: db.OpGet, Err: err}
	}
	return nil
}
