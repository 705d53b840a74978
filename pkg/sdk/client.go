package catalogo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/catalogo/internal/db/sqldb"
	"github.com/kailas-cloud/catalogo/internal/db/sqlite"
	"github.com/kailas-cloud/catalogo/internal/db/sqlserver"
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
	specimenrepo "github.com/kailas-cloud/catalogo/internal/repository/specimen"
	"github.com/kailas-cloud/catalogo/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTable            = "Datos"
)

// catalogUseCase is the internal interface for listings and detail lookups.
type catalogUseCase interface {
	ListDefault(ctx context.Context, number int) (page.Result[domspec.Summary], error)
	ListQuick(ctx context.Context, number int) (page.Result[domspec.Summary], error)
	Search(ctx context.Context, token string, number int) (page.Result[domspec.Summary], error)
	SearchAdvanced(ctx context.Context, c criteria.Criteria, number int) (page.Result[domspec.Summary], error)
	GetDetail(ctx context.Context, id string) (domspec.Detail, error)
}

// Client is the catalogo SDK entry point. It is safe for concurrent use.
type Client struct {
	store     *sqldb.Store
	catalog   catalogUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		table:            defaultTable,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.dsn == "" {
		return nil, errors.New("catalogo: database required (use WithSQLite or WithSQLServer)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("catalogo: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (*sqldb.Store, error) {
	switch cfg.driver {
	case "sqlite":
		s, err := sqlite.Open(cfg.dsn)
		if err != nil {
			return nil, fmt.Errorf("catalogo: open sqlite store: %w", err)
		}
		return s, nil
	case "sqlserver":
		s, err := sqlserver.Open(cfg.dsn)
		if err != nil {
			return nil, fmt.Errorf("catalogo: open sqlserver store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("catalogo: unknown driver %q", cfg.driver)
	}
}

func wireClient(store *sqldb.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	repo, err := specimenrepo.New(store, cfg.table)
	if err != nil {
		return nil, fmt.Errorf("catalogo: %w", err)
	}

	svc := catalog.New(repo, nil).
		WithPageSize(cfg.pageSize).
		WithImageSeparator(cfg.imageSeparator)
	if cfg.queryPagination {
		svc = svc.WithPagination(catalog.PaginateQuery)
	}

	return &Client{
		store:     store,
		catalog:   svc,
		healthSvc: healthuc.New(store, svc),
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("catalogo: close: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// List returns page number of every specimen ordered by id.
func (c *Client) List(ctx context.Context, number int) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observePage("list", start, p, err) }()

	res, err := c.catalog.ListDefault(ctx, number)
	if err != nil {
		return Page{}, fmt.Errorf("list: %w", err)
	}
	return pageFromDomain(res), nil
}

// Quick returns page number of every specimen ordered by genus and species.
func (c *Client) Quick(ctx context.Context, number int) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observePage("quick", start, p, err) }()

	res, err := c.catalog.ListQuick(ctx, number)
	if err != nil {
		return Page{}, fmt.Errorf("quick: %w", err)
	}
	return pageFromDomain(res), nil
}

// Search matches token against scientific name, genus and species, and
// department. A blank token returns ErrEmptyQuery.
func (c *Client) Search(ctx context.Context, token string, number int) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observePage("search", start, p, err) }()

	res, err := c.catalog.Search(ctx, token, number)
	if err != nil {
		return Page{}, fmt.Errorf("search: %w", err)
	}
	return pageFromDomain(res), nil
}

// Advanced matches every non-blank criterion. Province matches by prefix,
// every other field by substring. No usable criterion returns
// ErrNoCriteriaProvided.
func (c *Client) Advanced(ctx context.Context, crit Criteria, number int) (p Page, err error) {
	start := time.Now()
	defer func() { c.obs.observePage("advanced", start, p, err) }()

	values := make(map[field.Field]string, len(crit))
	for f, v := range crit {
		values[field.Field(f)] = v
	}
	res, err := c.catalog.SearchAdvanced(ctx, criteria.New(values), number)
	if err != nil {
		return Page{}, fmt.Errorf("advanced: %w", err)
	}
	return pageFromDomain(res), nil
}

// Specimen returns the full record with the given id, or ErrNotFound.
func (c *Client) Specimen(ctx context.Context, id int64) (s Specimen, err error) {
	start := time.Now()
	defer func() { c.obs.observe("specimen", start, err) }()

	d, err := c.catalog.GetDetail(ctx, strconv.FormatInt(id, 10))
	if err != nil {
		return Specimen{}, fmt.Errorf("specimen %d: %w", id, err)
	}
	return specimenFromDomain(d), nil
}
