package chi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/catalogo/internal/domain/page"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates rendered inside layout.html.
const (
	viewListing  = "listing.html"
	viewAdvanced = "advanced.html"
	viewDetail   = "detail.html"
)

// views holds one parsed template set per page.
type views struct {
	pages          map[string]*template.Template
	imagesPrefix   string
	imageSeparator string
}

func newViews(imagesPrefix, imageSeparator string) (*views, error) {
	if imageSeparator == "" {
		imageSeparator = domspec.DefaultImageSeparator
	}
	v := &views{
		pages:          make(map[string]*template.Template),
		imagesPrefix:   imagesPrefix,
		imageSeparator: imageSeparator,
	}
	funcs := template.FuncMap{
		"imageURL": v.imageURL,
		"thumb":    v.thumb,
		"orDash":   orDash,
	}
	for _, name := range []string{viewListing, viewAdvanced, viewDetail} {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/results.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// render executes a page into a buffer first so template errors never leave
// a half-written 200 response.
func (v *views) render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := v.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

func (v *views) imageURL(segment string) string {
	return v.imagesPrefix + url.PathEscape(segment)
}

// thumb returns the URL of the first image of a listing row, or "".
func (v *views) thumb(s domspec.Summary) string {
	segs := domspec.ImageSegments(s.ImagePath, v.imageSeparator)
	if len(segs) == 0 {
		return ""
	}
	return v.imageURL(segs[0])
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// listingView is the model of listing.html.
type listingView struct {
	Title     string
	Heading   string
	Query     string
	ShowTotal bool
	Page      page.Result[domspec.Summary]
	Nav       pageNav
}

// pageNav holds the pagination links of a listing.
type pageNav struct {
	Prev  string
	Next  string
	Links []pageLink
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

// newPageNav builds links that keep every query parameter of base except
// pagina.
func newPageNav(path string, base url.Values, p page.Result[domspec.Summary]) pageNav {
	link := func(n int) string {
		q := url.Values{}
		for k, vs := range base {
			if k != pageParam {
				q[k] = vs
			}
		}
		q.Set(pageParam, strconv.Itoa(n))
		return path + "?" + q.Encode()
	}

	var nav pageNav
	if p.HasPrev() {
		nav.Prev = link(p.PrevPage())
	}
	if p.HasNext() {
		nav.Next = link(p.NextPage())
	}
	for _, n := range p.Pages() {
		nav.Links = append(nav.Links, pageLink{Number: n, URL: link(n), Current: n == p.CurrentPage})
	}
	return nav
}

// advancedView is the model of advanced.html.
type advancedView struct {
	Title   string
	Fields  []formField
	Results *listingView
}

type formField struct {
	Name  string
	Label string
	Value string
}

var fieldLabels = map[field.Field]string{
	field.Family:         "Familia",
	field.Genus:          "Género",
	field.ScientificName: "Nombre científico",
	field.Collectors:     "Colectores",
	field.Date:           "Fecha de colecta",
	field.Country:        "País",
	field.Department:     "Departamento",
	field.Province:       "Provincia",
	field.District:       "Distrito",
	field.Locality:       "Localidad",
}

func advancedForm(values url.Values) []formField {
	out := make([]formField, 0, len(field.Advanced()))
	for _, f := range field.Advanced() {
		out = append(out, formField{Name: f.String(), Label: fieldLabels[f], Value: values.Get(f.String())})
	}
	return out
}

// detailView is the model of detail.html.
type detailView struct {
	Title  string
	Detail domspec.Detail
}
