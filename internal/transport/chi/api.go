package chi

import (
	"net/http"
	"strings"

	chirouter "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

type summaryResponse struct {
	ID             int64  `json:"id"`
	Slug           string `json:"slug"`
	GenusSpecies   string `json:"genero_especie"`
	ScientificName string `json:"nombre_cientifico"`
	Collectors     string `json:"colectores"`
	CollectionDate string `json:"fecha_colecta"`
	Country        string `json:"pais"`
	Department     string `json:"departamento"`
	Province       string `json:"provincia"`
	District       string `json:"distrito"`
	ImagePath      string `json:"ruta_imagen"`
}

type pageResponse struct {
	Items       []summaryResponse `json:"items"`
	CurrentPage int               `json:"current_page"`
	TotalPages  int               `json:"total_pages"`
	TotalCount  int               `json:"total_count"`
	PageSize    int               `json:"page_size"`
}

type detailResponse struct {
	ID             int64    `json:"id"`
	Slug           string   `json:"slug"`
	ScientificName string   `json:"nombre_cientifico"`
	CommonName     string   `json:"nombre_comun"`
	GenusSpecies   string   `json:"genero_especie"`
	Family         string   `json:"familia"`
	Description    string   `json:"descripcion"`
	DeterminedBy   string   `json:"determinador"`
	Habit          string   `json:"habito"`
	ForestType     string   `json:"tipo_bosque"`
	Ecozone        string   `json:"ecozona"`
	Collectors     string   `json:"colectores"`
	CollectionDate string   `json:"fecha_colecta"`
	Country        string   `json:"pais"`
	Department     string   `json:"departamento"`
	Province       string   `json:"provincia"`
	District       string   `json:"distrito"`
	Locality       string   `json:"localidad"`
	UTMZone        string   `json:"zona_utm"`
	Easting        string   `json:"este"`
	Northing       string   `json:"norte"`
	Altitude       string   `json:"altitud"`
	Images         []string `json:"imagenes"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// APIListDefault handles GET /api/v1/especimenes.
func (s *Server) APIListDefault(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.ListDefault(r.Context(), pageNumber(r))
	s.writePage(w, r, res, err)
}

// APIListQuick handles GET /api/v1/especimenes/rapida.
func (s *Server) APIListQuick(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.ListQuick(r.Context(), pageNumber(r))
	s.writePage(w, r, res, err)
}

// APISearch handles GET /api/v1/buscar.
func (s *Server) APISearch(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get(queryParam))
	res, err := s.catalog.Search(r.Context(), token, pageNumber(r))
	s.writePage(w, r, res, err)
}

// APISearchAdvanced handles GET /api/v1/busqueda_avanzada.
func (s *Server) APISearchAdvanced(w http.ResponseWriter, r *http.Request) {
	res, err := s.catalog.SearchAdvanced(r.Context(), criteria.FromParams(r.URL.Query()), pageNumber(r))
	s.writePage(w, r, res, err)
}

// APIGetSpecimen handles GET /api/v1/especimenes/{id}.
func (s *Server) APIGetSpecimen(w http.ResponseWriter, r *http.Request) {
	d, err := s.catalog.GetDetail(r.Context(), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailToResponse(d))
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, res page.Result[domspec.Summary], err error) {
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(res))
}

func pageToResponse(p page.Result[domspec.Summary]) pageResponse {
	items := make([]summaryResponse, len(p.Items))
	for i, it := range p.Items {
		items[i] = summaryResponse{
			ID:             it.ID,
			Slug:           it.Slug(),
			GenusSpecies:   it.GenusSpecies,
			ScientificName: it.ScientificName,
			Collectors:     it.Collectors,
			CollectionDate: it.CollectionDate,
			Country:        it.Country,
			Department:     it.Department,
			Province:       it.Province,
			District:       it.District,
			ImagePath:      it.ImagePath,
		}
	}
	return pageResponse{
		Items:       items,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
	}
}

func detailToResponse(d domspec.Detail) detailResponse {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return detailResponse{
		ID:             d.ID,
		Slug:           domspec.Slug(d.ScientificName),
		ScientificName: d.ScientificName,
		CommonName:     d.CommonName,
		GenusSpecies:   d.GenusSpecies,
		Family:         d.Family,
		Description:    d.Description,
		DeterminedBy:   d.DeterminedBy,
		Habit:          d.Habit,
		ForestType:     d.ForestType,
		Ecozone:        d.Ecozone,
		Collectors:     d.Collectors,
		CollectionDate: d.CollectionDate,
		Country:        d.Country,
		Department:     d.Department,
		Province:       d.Province,
		District:       d.District,
		Locality:       d.Locality,
		UTMZone:        d.UTMZone,
		Easting:        d.Easting,
		Northing:       d.Northing,
		Altitude:       d.Altitude,
		Images:         images,
	}
}
