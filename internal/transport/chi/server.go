package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catalogo/internal/domain"
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	logpkg "github.com/kailas-cloud/catalogo/internal/logger"
	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

// Query parameters shared by the HTML views and the JSON API.
const (
	pageParam  = "pagina"
	queryParam = "query"
	idParam    = "id"
)

// Catalog serves the listings and the specimen detail.
type Catalog interface {
	ListDefault(ctx context.Context, number int) (page.Result[domspec.Summary], error)
	ListQuick(ctx context.Context, number int) (page.Result[domspec.Summary], error)
	Search(ctx context.Context, token string, number int) (page.Result[domspec.Summary], error)
	SearchAdvanced(ctx context.Context, c criteria.Criteria, number int) (page.Result[domspec.Summary], error)
	GetDetail(ctx context.Context, id string) (domspec.Detail, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options configures the static surface of the server.
type Options struct {
	// StaticDir is served under /static/. Empty disables it.
	StaticDir string
	// ImagesPrefix is prepended to every image segment in the views.
	ImagesPrefix string
	// ImageSeparator splits stored image paths into segments for listing
	// thumbnails. Empty means "/".
	ImageSeparator string
}

// Server serves the catalog HTML views, the JSON API and the operational endpoints.
type Server struct {
	catalog       Catalog
	health        HealthChecker
	views         *views
	staticDir     string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates the HTTP server. It fails when the embedded templates
// do not parse.
func NewServer(catalog Catalog, health HealthChecker, logger *zap.Logger, opts Options) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	v, err := newViews(opts.ImagesPrefix, opts.ImageSeparator)
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	return &Server{
		catalog:       catalog,
		health:        health,
		views:         v,
		staticDir:     opts.StaticDir,
		logger:        logger,
		errorHandlers: apiErrorHandlers(),
	}, nil
}

// Routes mounts every endpoint on a chi router behind mws.
func (s *Server) Routes(mws ...func(http.Handler) http.Handler) http.Handler {
	r := chirouter.NewRouter()
	r.Use(mws...)

	r.Get("/", s.Index)
	r.Get("/busqueda_rapida", s.QuickSearch)
	r.Get("/buscar", s.Search)
	r.Get("/busqueda_avanzada", s.AdvancedSearch)
	r.Get("/especie/{slug}", s.SpecimenDetail)

	r.Route("/api/v1", func(r chirouter.Router) {
		r.Get("/especimenes", s.APIListDefault)
		r.Get("/especimenes/rapida", s.APIListQuick)
		r.Get("/especimenes/{id}", s.APIGetSpecimen)
		r.Get("/buscar", s.APISearch)
		r.Get("/busqueda_avanzada", s.APISearchAdvanced)
	})

	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if s.staticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	}
	return r
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.ListDefault(r.Context(), pageNumber(r))
	if err != nil {
		s.viewError(w, r, msgSearchFailed, err)
		return
	}
	s.renderListing(w, r, listingView{
		Title:   "Inicio",
		Heading: "Catálogo de especímenes",
		Page:    res,
	})
}

// QuickSearch handles GET /busqueda_rapida.
func (s *Server) QuickSearch(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.ListQuick(r.Context(), pageNumber(r))
	if err != nil {
		s.viewError(w, r, msgSearchFailed, err)
		return
	}
	s.renderListing(w, r, listingView{
		Title:   "Búsqueda rápida",
		Heading: "Especímenes por género y especie",
		Page:    res,
	})
}

// Search handles GET /buscar. A blank query redirects to the index.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get(queryParam))
	res, err := s.catalog.Search(r.Context(), token, pageNumber(r))
	if errors.Is(err, domain.ErrEmptyQuery) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		s.viewError(w, r, msgSearchFailed, err)
		return
	}
	s.renderListing(w, r, listingView{
		Title:     "Resultados",
		Heading:   "Resultados de búsqueda",
		Query:     token,
		ShowTotal: true,
		Page:      res,
	})
}

// AdvancedSearch handles GET /busqueda_avanzada. Without criteria it
// renders the empty form.
func (s *Server) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := advancedView{Title: "Búsqueda avanzada", Fields: advancedForm(q)}

	res, err := s.catalog.SearchAdvanced(r.Context(), criteria.FromParams(q), pageNumber(r))
	switch {
	case errors.Is(err, domain.ErrNoCriteriaProvided):
	case err != nil:
		s.viewError(w, r, msgAdvancedFailed, err)
		return
	default:
		view.Results = &listingView{
			ShowTotal: true,
			Page:      res,
			Nav:       newPageNav(r.URL.Path, q, res),
		}
	}
	s.render(w, r, viewAdvanced, view)
}

// SpecimenDetail handles GET /especie/{slug}?id=. The slug is cosmetic;
// lookup uses id only.
func (s *Server) SpecimenDetail(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.GetDetail(r.Context(), r.URL.Query().Get(idParam))
	if err != nil {
		s.viewError(w, r, msgDetailFailed, err)
		return
	}
	title := d.ScientificName
	if title == "" {
		title = "Espécimen"
	}
	s.render(w, r, viewDetail, detailView{Title: title, Detail: d})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

func (s *Server) renderListing(w http.ResponseWriter, r *http.Request, v listingView) {
	v.Nav = newPageNav(r.URL.Path, r.URL.Query(), v.Page)
	s.render(w, r, viewListing, v)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.views.render(w, http.StatusOK, name, data); err != nil {
		s.log(r).Error("render failed", zap.String("view", name), zap.Error(err))
		writeText(w, http.StatusInternalServerError, "internal error")
	}
}

// viewError answers an HTML route failure with plain text, as the views
// have no error page.
func (s *Server) viewError(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeText(w, http.StatusNotFound, msgNotFound)
		return
	}
	s.log(r).Warn("view failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeText(w, http.StatusInternalServerError, failureText(prefix, err))
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	s.log(r).Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.log(r).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func (s *Server) log(r *http.Request) *zap.Logger {
	return logpkg.FromContextOr(r.Context(), s.logger)
}

func pageNumber(r *http.Request) int {
	return page.ParseNumber(r.URL.Query().Get(pageParam))
}
