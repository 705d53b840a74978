package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kailas-cloud/catalogo/internal/domain"
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

// --- Mocks ---

type listCall struct {
	op       string
	number   int
	token    string
	criteria criteria.Criteria
}

type mockCatalog struct {
	items   []domspec.Summary
	total   int
	detail  domspec.Detail
	listErr error
	getErr  error
	calls   []listCall
	gotID   string
}

func (m *mockCatalog) result(number int) page.Result[domspec.Summary] {
	total := m.total
	if total == 0 {
		total = len(m.items)
	}
	return page.NewResult(m.items, page.NewRequest(number, page.DefaultSize), total)
}

func (m *mockCatalog) ListDefault(_ context.Context, number int) (page.Result[domspec.Summary], error) {
	m.calls = append(m.calls, listCall{op: "default", number: number})
	if m.listErr != nil {
		return page.Result[domspec.Summary]{}, m.listErr
	}
	return m.result(number), nil
}

func (m *mockCatalog) ListQuick(_ context.Context, number int) (page.Result[domspec.Summary], error) {
	m.calls = append(m.calls, listCall{op: "quick", number: number})
	if m.listErr != nil {
		return page.Result[domspec.Summary]{}, m.listErr
	}
	return m.result(number), nil
}

func (m *mockCatalog) Search(_ context.Context, token string, number int) (page.Result[domspec.Summary], error) {
	m.calls = append(m.calls, listCall{op: "search", number: number, token: token})
	if strings.TrimSpace(token) == "" {
		return page.Result[domspec.Summary]{}, fmt.Errorf("free-text filter: %w", domain.ErrEmptyQuery)
	}
	if m.listErr != nil {
		return page.Result[domspec.Summary]{}, m.listErr
	}
	return m.result(number), nil
}

func (m *mockCatalog) SearchAdvanced(
	_ context.Context, c criteria.Criteria, number int,
) (page.Result[domspec.Summary], error) {
	m.calls = append(m.calls, listCall{op: "advanced", number: number, criteria: c})
	if c.IsEmpty() {
		return page.Result[domspec.Summary]{}, fmt.Errorf("advanced filter: %w", domain.ErrNoCriteriaProvided)
	}
	if m.listErr != nil {
		return page.Result[domspec.Summary]{}, m.listErr
	}
	return m.result(number), nil
}

func (m *mockCatalog) GetDetail(_ context.Context, id string) (domspec.Detail, error) {
	m.gotID = id
	if m.getErr != nil {
		return domspec.Detail{}, m.getErr
	}
	if id != fmt.Sprint(m.detail.ID) {
		return domspec.Detail{}, domain.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockCatalog) lastCall(t *testing.T) listCall {
	t.Helper()
	if len(m.calls) == 0 {
		t.Fatal("catalog was not called")
	}
	return m.calls[len(m.calls)-1]
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(context.Context) healthuc.Report { return m.report }

// --- Helpers ---

var onca = domspec.Summary{
	ID:             4,
	GenusSpecies:   "Panthera onca",
	ScientificName: "Panthera onca",
	Collectors:     "R. Pérez",
	Country:        "Perú",
	Department:     "Cusco",
	Province:       "La Convención",
	District:       "Echarate",
	ImagePath:      "onca1.jpg/onca2.jpg",
}

func newTestServer(t *testing.T, cat *mockCatalog) *Server {
	t.Helper()
	s, err := NewServer(cat, &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
	}}, nil, Options{ImagesPrefix: "/static/images/"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q:\n%s", want, body)
	}
}

// --- HTML views ---

func TestIndex_RendersDefaultListing(t *testing.T) {
	cat := &mockCatalog{items: []domspec.Summary{onca}, total: 12}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/?pagina=2")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type: got %q", ct)
	}
	if c := cat.lastCall(t); c.op != "default" || c.number != 2 {
		t.Errorf("call: got %+v, want default page 2", c)
	}
	body := rr.Body.String()
	assertContains(t, body, "Catálogo de especímenes")
	assertContains(t, body, `href="/especie/panthera-onca?id=4"`)
	assertContains(t, body, `src="/static/images/onca1.jpg"`)
	assertContains(t, body, "pagina=3")
	assertContains(t, body, `rel="prev"`)
}

func TestIndex_ThumbnailUsesConfiguredSeparator(t *testing.T) {
	row := onca
	row.ImagePath = "onca1.jpg;onca2.jpg"
	cat := &mockCatalog{items: []domspec.Summary{row}, total: 1}
	s, err := NewServer(cat, &mockHealth{}, nil, Options{ImagesPrefix: "/img/", ImageSeparator: ";"})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	rr := get(t, s.Routes(), "/")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	assertContains(t, rr.Body.String(), `src="/img/onca1.jpg"`)
}

func TestIndex_NonNumericPageMeansFirst(t *testing.T) {
	cat := &mockCatalog{items: []domspec.Summary{onca}}
	h := newTestServer(t, cat).Routes()

	get(t, h, "/?pagina=abc")

	if c := cat.lastCall(t); c.number != 1 {
		t.Errorf("page: got %d, want 1", c.number)
	}
}

func TestIndex_OutOfRangePageIsEmpty(t *testing.T) {
	cat := &mockCatalog{total: 12}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/?pagina=0")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	assertContains(t, rr.Body.String(), "No se encontraron especímenes.")
}

func TestIndex_QueryFailure(t *testing.T) {
	cat := &mockCatalog{listErr: domain.NewQueryError("list_default", errors.New("connection refused"))}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if got := rr.Body.String(); got != "Error al realizar la búsqueda: connection refused" {
		t.Errorf("body: got %q", got)
	}
}

func TestQuickSearch(t *testing.T) {
	cat := &mockCatalog{items: []domspec.Summary{onca}}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/busqueda_rapida?pagina=1")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if c := cat.lastCall(t); c.op != "quick" {
		t.Errorf("op: got %q, want quick", c.op)
	}
	assertContains(t, rr.Body.String(), "Panthera onca")
}

func TestSearch_BlankQueryRedirects(t *testing.T) {
	for _, target := range []string{"/buscar", "/buscar?query=", "/buscar?query=%20%20"} {
		t.Run(target, func(t *testing.T) {
			h := newTestServer(t, &mockCatalog{}).Routes()

			rr := get(t, h, target)

			if rr.Code != http.StatusFound {
				t.Fatalf("status: got %d, want 302", rr.Code)
			}
			if loc := rr.Header().Get("Location"); loc != "/" {
				t.Errorf("location: got %q, want /", loc)
			}
		})
	}
}

func TestSearch_EchoesQueryAndTotal(t *testing.T) {
	cat := &mockCatalog{items: []domspec.Summary{onca}, total: 1}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/buscar?query=+onca+")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if c := cat.lastCall(t); c.token != "onca" {
		t.Errorf("token: got %q, want onca", c.token)
	}
	body := rr.Body.String()
	assertContains(t, body, "1 resultado para «onca»")
}

func TestAdvancedSearch_NoCriteriaRendersForm(t *testing.T) {
	cat := &mockCatalog{}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/busqueda_avanzada?familia=&pagina=2")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	assertContains(t, body, `id="advancedForm"`)
	assertContains(t, body, `name="nombre_cientifico"`)
	if strings.Contains(body, `class="results"`) {
		t.Error("empty form must not render results")
	}
}

func TestAdvancedSearch_WithCriteria(t *testing.T) {
	cat := &mockCatalog{items: []domspec.Summary{onca}, total: 6}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/busqueda_avanzada?familia=Felidae&departamento=Cusco&pagina=1")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	c := cat.lastCall(t)
	if v, _ := c.criteria.Get(field.Family); v != "Felidae" {
		t.Errorf("familia: got %q", v)
	}
	if v, _ := c.criteria.Get(field.Department); v != "Cusco" {
		t.Errorf("departamento: got %q", v)
	}
	if c.criteria.Len() != 2 {
		t.Errorf("criteria: got %d fields, want 2", c.criteria.Len())
	}
	body := rr.Body.String()
	assertContains(t, body, `value="Felidae"`)
	assertContains(t, body, `class="results"`)
	assertContains(t, body, "6 resultados")
	assertContains(t, body, "pagina=2")
}

func TestAdvancedSearch_QueryFailure(t *testing.T) {
	cat := &mockCatalog{listErr: domain.NewQueryError("search_advanced", errors.New("timeout"))}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/busqueda_avanzada?pais=Per%C3%BA")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if got := rr.Body.String(); got != "Error al realizar la búsqueda avanzada: timeout" {
		t.Errorf("body: got %q", got)
	}
}

func TestSpecimenDetail(t *testing.T) {
	rec := domspec.Record{ID: 4, ScientificName: "Panthera onca", CommonName: "Jaguar", ImagePath: "a/b/c"}
	cat := &mockCatalog{detail: domspec.NewDetail(rec, "/")}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/especie/cualquier-cosa?id=4")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	if cat.gotID != "4" {
		t.Errorf("id: got %q, want 4", cat.gotID)
	}
	body := rr.Body.String()
	assertContains(t, body, "<title>Panthera onca | Catálogo de especímenes</title>")
	assertContains(t, body, "Jaguar")
	for _, seg := range []string{"a", "b", "c"} {
		assertContains(t, body, `<img data-photo src="/static/images/`+seg+`" alt="`+seg+`">`)
	}
	assertContains(t, body, "<dd>-</dd>")
	for _, id := range []string{
		"viewerContainer", "mainImage", "zoomContainer", "zoomInfo", "cursorIndicator",
		"thumbnailGallery", "fullscreenBtn", "zoomInBtn", "zoomOutBtn", "resetBtn", "prevBtn", "nextBtn",
	} {
		assertContains(t, body, `id="`+id+`"`)
	}
	assertContains(t, body, `<script src="/static/js/viewer.js"></script>`)
}

func TestSpecimenDetail_WithoutImagesHasNoViewer(t *testing.T) {
	rec := domspec.Record{ID: 7, ScientificName: "Puma concolor"}
	cat := &mockCatalog{detail: domspec.NewDetail(rec, "/")}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/especie/puma-concolor?id=7")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	assertContains(t, body, "Sin imágenes.")
	if strings.Contains(body, "data-photo") || strings.Contains(body, `id="viewerContainer"`) {
		t.Error("detail without images must not render the viewer")
	}
}

func TestSpecimenDetail_NotFound(t *testing.T) {
	for _, target := range []string{"/especie/x", "/especie/x?id=abc", "/especie/x?id=99"} {
		t.Run(target, func(t *testing.T) {
			cat := &mockCatalog{detail: domspec.Detail{Record: domspec.Record{ID: 4}}}
			h := newTestServer(t, cat).Routes()

			rr := get(t, h, target)

			if rr.Code != http.StatusNotFound {
				t.Fatalf("status: got %d, want 404", rr.Code)
			}
			if got := rr.Body.String(); got != "Espécimen no encontrado" {
				t.Errorf("body: got %q", got)
			}
		})
	}
}

func TestSpecimenDetail_QueryFailure(t *testing.T) {
	cat := &mockCatalog{getErr: domain.NewQueryError("get_detail", errors.New("connection reset"))}
	h := newTestServer(t, cat).Routes()

	rr := get(t, h, "/especie/x?id=4")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rr.Code)
	}
	if got := rr.Body.String(); got != "Error al obtener la información del espécimen: connection reset" {
		t.Errorf("body: got %q", got)
	}
}

// --- Navigation ---

func TestNewPageNav(t *testing.T) {
	p := page.NewResult([]domspec.Summary{onca}, page.NewRequest(2, 5), 12)
	base := url.Values{"query": {"onca"}, "pagina": {"2"}}

	nav := newPageNav("/buscar", base, p)

	if nav.Prev != "/buscar?pagina=1&query=onca" {
		t.Errorf("prev: got %q", nav.Prev)
	}
	if nav.Next != "/buscar?pagina=3&query=onca" {
		t.Errorf("next: got %q", nav.Next)
	}
	if len(nav.Links) != 3 {
		t.Fatalf("links: got %d, want 3", len(nav.Links))
	}
	if !nav.Links[1].Current || nav.Links[0].Current {
		t.Errorf("current flags: %+v", nav.Links)
	}
	if base.Get("pagina") != "2" {
		t.Error("base values must not be modified")
	}
}

func TestNewPageNav_LastPageHasNoNext(t *testing.T) {
	p := page.NewResult([]domspec.Summary{onca}, page.NewRequest(3, 5), 12)

	nav := newPageNav("/", url.Values{}, p)

	if nav.Next != "" {
		t.Errorf("next: got %q, want none", nav.Next)
	}
	if nav.Prev != "/?pagina=2" {
		t.Errorf("prev: got %q", nav.Prev)
	}
}

// --- Operational ---

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		report healthuc.Report
		want   int
	}{
		{"healthy", healthuc.Report{Status: healthuc.Healthy}, http.StatusOK},
		{"degraded", healthuc.Report{Status: healthuc.Degraded}, http.StatusServiceUnavailable},
		{"unhealthy", healthuc.Report{Status: healthuc.Unhealthy}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewServer(&mockCatalog{}, &mockHealth{report: tt.report}, nil, Options{})
			if err != nil {
				t.Fatal(err)
			}

			rr := get(t, s.Routes(), "/health")

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
			assertContains(t, rr.Body.String(), `"status":"`+string(tt.report.Status)+`"`)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rr := get(t, newTestServer(t, &mockCatalog{}).Routes(), "/metrics")

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "js"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "js", "clean.js"), []byte("// clean"), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewServer(&mockCatalog{}, &mockHealth{}, nil, Options{StaticDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	h := s.Routes()

	rr := get(t, h, "/static/js/clean.js")
	if rr.Code != http.StatusOK || rr.Body.String() != "// clean" {
		t.Errorf("static: got %d %q", rr.Code, rr.Body.String())
	}

	if rr := get(t, h, "/static/js/missing.js"); rr.Code != http.StatusNotFound {
		t.Errorf("missing static: got %d, want 404", rr.Code)
	}
}

func TestStaticFiles_DisabledWithoutDir(t *testing.T) {
	rr := get(t, newTestServer(t, &mockCatalog{}).Routes(), "/static/js/clean.js")

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
}
