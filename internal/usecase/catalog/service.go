package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/domain"
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	"github.com/kailas-cloud/catalogo/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogo/internal/domain/search/mode"
	"github.com/kailas-cloud/catalogo/internal/domain/search/request"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
	logpkg "github.com/kailas-cloud/catalogo/internal/logger"
)

// Operation names used in query errors and logs.
const (
	OpListDefault    = "list_default"
	OpListQuick      = "list_quick"
	OpSearch         = "search"
	OpSearchAdvanced = "search_advanced"
	OpGetDetail      = "get_detail"
	OpProbe          = "probe"
)

// Pagination selects where the page window is cut.
type Pagination string

const (
	// PaginateMemory counts matches, fetches every matching row and slices
	// the page in memory.
	PaginateMemory Pagination = "memory"
	// PaginateQuery counts matches and fetches only the page rows.
	PaginateQuery Pagination = "query"
)

// ParsePagination validates a pagination strategy name. Empty means memory.
func ParsePagination(s string) (Pagination, error) {
	switch p := Pagination(s); p {
	case "":
		return PaginateMemory, nil
	case PaginateMemory, PaginateQuery:
		return p, nil
	default:
		return "", fmt.Errorf("unknown pagination %q (want memory or query)", s)
	}
}

// Service serves the catalog listings and the specimen detail.
type Service struct {
	repo           Repository
	logger         *zap.Logger
	pageSize       int
	imageSeparator string
	pagination     Pagination
}

// New creates a catalog service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:           repo,
		logger:         logger,
		pageSize:       page.DefaultSize,
		imageSeparator: domspec.DefaultImageSeparator,
		pagination:     PaginateMemory,
	}
}

// WithPageSize sets the number of specimens per page.
func (s *Service) WithPageSize(size int) *Service {
	if size > 0 {
		s.pageSize = size
	}
	return s
}

// WithImageSeparator sets the separator between image path segments.
func (s *Service) WithImageSeparator(sep string) *Service {
	if sep != "" {
		s.imageSeparator = sep
	}
	return s
}

// WithPagination sets the pagination strategy.
func (s *Service) WithPagination(p Pagination) *Service {
	if p != "" {
		s.pagination = p
	}
	return s
}

// PageSize returns the configured page size.
func (s *Service) PageSize() int { return s.pageSize }

// ListDefault lists every specimen ordered by id.
func (s *Service) ListDefault(ctx context.Context, number int) (page.Result[domspec.Summary], error) {
	return s.list(ctx, OpListDefault, mode.Default, filter.Expression{}, number)
}

// ListQuick lists every specimen ordered by genus and species.
func (s *Service) ListQuick(ctx context.Context, number int) (page.Result[domspec.Summary], error) {
	return s.list(ctx, OpListQuick, mode.Quick, filter.Expression{}, number)
}

// Search matches token against the scientific name, genus and species,
// and department. A blank token returns domain.ErrEmptyQuery.
func (s *Service) Search(ctx context.Context, token string, number int) (page.Result[domspec.Summary], error) {
	expr, err := filter.AnyOf(token, field.FreeText()...)
	if err != nil {
		return page.Result[domspec.Summary]{}, fmt.Errorf("free-text filter: %w", err)
	}
	return s.list(ctx, OpSearch, mode.FreeText, expr, number)
}

// SearchAdvanced matches every provided criterion. Empty criteria return
// domain.ErrNoCriteriaProvided.
func (s *Service) SearchAdvanced(
	ctx context.Context, c criteria.Criteria, number int,
) (page.Result[domspec.Summary], error) {
	expr, err := filter.AllOf(c)
	if err != nil {
		return page.Result[domspec.Summary]{}, fmt.Errorf("advanced filter: %w", err)
	}
	return s.list(ctx, OpSearchAdvanced, mode.Advanced, expr, number)
}

func (s *Service) list(
	ctx context.Context, op string, m mode.Mode, expr filter.Expression, number int,
) (page.Result[domspec.Summary], error) {
	l, err := request.New(m, expr, page.NewRequest(number, s.pageSize))
	if err != nil {
		return page.Result[domspec.Summary]{}, fmt.Errorf("%s: %w", op, err)
	}

	var (
		items []domspec.Summary
		total int
	)
	err = s.repo.WithSession(ctx, func(r domspec.Reader) error {
		n, err := r.Count(ctx, l)
		if err != nil {
			return err
		}
		total = n

		if s.pagination == PaginateQuery {
			if !l.Page().InRange(n) {
				items = []domspec.Summary{}
				return nil
			}
			items, err = r.ListPage(ctx, l)
			return err
		}

		all, err := r.List(ctx, l)
		if err != nil {
			return err
		}
		items = page.Slice(all, l.Page())
		return nil
	})
	if err != nil {
		return page.Result[domspec.Summary]{}, s.queryError(ctx, op, err)
	}

	return page.NewResult(items, l.Page(), total), nil
}

// GetDetail returns the specimen whose id is idParam. A missing, non-integer
// or unknown id returns domain.ErrNotFound; the first two never reach the
// database.
func (s *Service) GetDetail(ctx context.Context, idParam string) (domspec.Detail, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idParam), 10, 64)
	if err != nil {
		return domspec.Detail{}, domain.ErrNotFound
	}

	var rec domspec.Record
	err = s.repo.WithSession(ctx, func(r domspec.Reader) error {
		got, err := r.Get(ctx, id)
		rec = got
		return err
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domspec.Detail{}, domain.ErrNotFound
	}
	if err != nil {
		return domspec.Detail{}, s.queryError(ctx, OpGetDetail, err)
	}
	return domspec.NewDetail(rec, s.imageSeparator), nil
}

// Probe checks that the catalog table can be counted.
func (s *Service) Probe(ctx context.Context) error {
	l, err := request.New(mode.Default, filter.Expression{}, page.NewRequest(1, s.pageSize))
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	err = s.repo.WithSession(ctx, func(r domspec.Reader) error {
		_, err := r.Count(ctx, l)
		return err
	})
	if err != nil {
		return s.queryError(ctx, OpProbe, err)
	}
	return nil
}

func (s *Service) queryError(ctx context.Context, op string, err error) error {
	logpkg.FromContextOr(ctx, s.logger).Warn("Catalog query failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return domain.NewQueryError(op, err)
}
