package specimen

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/catalogo/internal/db"
	"github.com/kailas-cloud/catalogo/internal/domain"
	"github.com/kailas-cloud/catalogo/internal/domain/search/request"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	db.Sessioner
	Dialect() db.Dialect
}

// Repo implements usecase/catalog.Repository over one catalog table.
type Repo struct {
	store store
	table string
}

// New creates a specimen repository reading table.
func New(s store, table string) (*Repo, error) {
	if !db.ValidIdent(table) {
		return nil, fmt.Errorf("%w: table %q", db.ErrInvalidIdent, table)
	}
	return &Repo{store: s, table: table}, nil
}

// WithSession runs fn with a reader bound to one database session.
func (r *Repo) WithSession(ctx context.Context, fn func(domspec.Reader) error) error {
	return r.store.WithSession(ctx, func(s db.Session) error { //nolint:wrapcheck // callers wrap with the operation
		return fn(&reader{repo: r, session: s})
	})
}

type reader struct {
	repo    *Repo
	session db.Session
}

// Count returns the number of rows matching the listing predicate.
func (rd *reader) Count(ctx context.Context, l request.Listing) (int, error) {
	stmt, err := rd.repo.listing(l).BuildCount()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	n, err := rd.session.Count(ctx, stmt)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", l.Mode(), err)
	}
	return n, nil
}

// List returns every matching row in listing order.
func (rd *reader) List(ctx context.Context, l request.Listing) ([]domspec.Summary, error) {
	return rd.list(ctx, l, rd.repo.listing(l))
}

// ListPage returns only the page window, pushing LIMIT/OFFSET to the database.
func (rd *reader) ListPage(ctx context.Context, l request.Listing) ([]domspec.Summary, error) {
	p := l.Page()
	if p.Number < 1 {
		return []domspec.Summary{}, nil
	}
	return rd.list(ctx, l, rd.repo.listing(l).Page(p.Size, p.Offset()))
}

func (rd *reader) list(ctx context.Context, l request.Listing, b *db.SelectBuilder) ([]domspec.Summary, error) {
	stmt, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}
	out := make([]domspec.Summary, 0)
	err = rd.session.Query(ctx, stmt, func(row db.Scanner) error {
		s, err := scanSummary(row)
		if err != nil {
			return err
		}
		out = append(out, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", l.Mode(), err)
	}
	return out, nil
}

// Get returns the full record for id.
func (rd *reader) Get(ctx context.Context, id int64) (domspec.Record, error) {
	stmt, err := db.Select(recordColumns...).
		From(rd.repo.table).
		Dialect(rd.repo.store.Dialect()).
		WhereEq("id", id).
		Build()
	if err != nil {
		return domspec.Record{}, fmt.Errorf("build get: %w", err)
	}

	var rec domspec.Record
	dest, fill := recordDest(&rec)
	if err := rd.session.QueryRow(ctx, stmt, dest...); err != nil {
		if errors.Is(err, db.ErrRowNotFound) {
			return domspec.Record{}, domain.ErrNotFound
		}
		return domspec.Record{}, fmt.Errorf("get %d: %w", id, err)
	}
	fill()
	return rec, nil
}

// listing builds the shared SELECT for a listing; count and data
// statements render the same predicate from it.
func (r *Repo) listing(l request.Listing) *db.SelectBuilder {
	order := make([]string, 0, len(l.Order()))
	for _, f := range l.Order() {
		col, _ := Columns.Column(f) // an unmapped field yields "" and fails at Build
		order = append(order, col)
	}
	return db.Select(summaryColumns...).
		From(r.table).
		Dialect(r.store.Dialect()).
		Match(l.Filter(), Columns).
		OrderBy(order...)
}
