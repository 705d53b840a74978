package catalogo

import (
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Field names a column usable in advanced search.
type Field string

// Advanced search fields.
const (
	FieldFamily         Field = Field(field.Family)
	FieldGenus          Field = Field(field.Genus)
	FieldScientificName Field = Field(field.ScientificName)
	FieldCollectors     Field = Field(field.Collectors)
	FieldDate           Field = Field(field.Date)
	FieldCountry        Field = Field(field.Country)
	FieldDepartment     Field = Field(field.Department)
	FieldProvince       Field = Field(field.Province)
	FieldDistrict       Field = Field(field.District)
	FieldLocality       Field = Field(field.Locality)
)

// Criteria maps advanced search fields to substring values.
// Blank values and unknown fields are ignored.
type Criteria map[Field]string

// Summary is one row of a listing.
type Summary struct {
	ID             int64
	Slug           string
	GenusSpecies   string
	ScientificName string
	Collectors     string
	CollectionDate string
	Country        string
	Department     string
	Province       string
	District       string
	ImagePath      string
}

// Page is one page of a listing.
type Page struct {
	Items       []Summary
	CurrentPage int
	TotalPages  int
	TotalCount  int
	PageSize    int
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.CurrentPage >= 1 && p.CurrentPage < p.TotalPages }

// Specimen is a full catalog record.
type Specimen struct {
	ID             int64
	ScientificName string
	CommonName     string
	GenusSpecies   string
	Family         string
	Description    string
	DeterminedBy   string
	Habit          string
	ForestType     string
	Ecozone        string
	Collectors     string
	CollectionDate string
	Country        string
	Department     string
	Province       string
	District       string
	Locality       string
	UTMZone        string
	Easting        string
	Northing       string
	Altitude       string
	ImagePath      string
	// Images are the non-blank segments of ImagePath.
	Images []string
}

func pageFromDomain(p page.Result[domspec.Summary]) Page {
	items := make([]Summary, len(p.Items))
	for i, s := range p.Items {
		items[i] = Summary{
			ID:             s.ID,
			Slug:           s.Slug(),
			GenusSpecies:   s.GenusSpecies,
			ScientificName: s.ScientificName,
			Collectors:     s.Collectors,
			CollectionDate: s.CollectionDate,
			Country:        s.Country,
			Department:     s.Department,
			Province:       s.Province,
			District:       s.District,
			ImagePath:      s.ImagePath,
		}
	}
	return Page{
		Items:       items,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		PageSize:    p.PageSize,
	}
}

func specimenFromDomain(d domspec.Detail) Specimen {
	r := d.Record
	return Specimen{
		ID:             r.ID,
		ScientificName: r.ScientificName,
		CommonName:     r.CommonName,
		GenusSpecies:   r.GenusSpecies,
		Family:         r.Family,
		Description:    r.Description,
		DeterminedBy:   r.DeterminedBy,
		Habit:          r.Habit,
		ForestType:     r.ForestType,
		Ecozone:        r.Ecozone,
		Collectors:     r.Collectors,
		CollectionDate: r.CollectionDate,
		Country:        r.Country,
		Department:     r.Department,
		Province:       r.Province,
		District:       r.District,
		Locality:       r.Locality,
		UTMZone:        r.UTMZone,
		Easting:        r.Easting,
		Northing:       r.Northing,
		Altitude:       r.Altitude,
		ImagePath:      r.ImagePath,
		Images:         d.Images,
	}
}
