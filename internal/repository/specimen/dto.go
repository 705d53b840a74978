package specimen

import (
	"database/sql"
	"fmt"

	"github.com/kailas-cloud/catalogo/internal/db"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Columns maps searchable fields to catalog columns.
var Columns = db.Columns{
	field.Family:         "familia",
	field.Genus:          "genero_especie",
	field.ScientificName: "nombre_cientifico",
	field.Collectors:     "colectores",
	field.Date:           "fecha_colecta",
	field.Country:        "pais",
	field.Department:     "departamento",
	field.Province:       "provincia",
	field.District:       "distrito",
	field.Locality:       "localidad",
	field.GenusSpecies:   "genero_especie",
	field.ID:             "id",
}

var summaryColumns = []string{
	"id", "genero_especie", "nombre_cientifico", "colectores", "fecha_colecta",
	"pais", "departamento", "provincia", "distrito", "image_path",
}

var recordColumns = []string{
	"id", "nombre_cientifico", "nombre_comun", "genero_especie", "familia",
	"descripcion", "determinado_por", "habito", "tipo_bosque", "ecozona",
	"colectores", "fecha_colecta", "pais", "departamento", "provincia",
	"distrito", "localidad", "utm", "este", "norte", "altitud", "image_path",
}

// scanSummary reads one row selected with summaryColumns.
func scanSummary(row db.Scanner) (domspec.Summary, error) {
	var s domspec.Summary
	var ns [9]sql.NullString
	if err := row.Scan(&s.ID, &ns[0], &ns[1], &ns[2], &ns[3], &ns[4], &ns[5], &ns[6], &ns[7], &ns[8]); err != nil {
		return domspec.Summary{}, fmt.Errorf("scan summary: %w", err)
	}
	s.GenusSpecies = ns[0].String
	s.ScientificName = ns[1].String
	s.Collectors = ns[2].String
	s.CollectionDate = ns[3].String
	s.Country = ns[4].String
	s.Department = ns[5].String
	s.Province = ns[6].String
	s.District = ns[7].String
	s.ImagePath = ns[8].String
	return s, nil
}

// recordDest returns scan targets for recordColumns and a function that
// copies them into r once the row has been read.
func recordDest(r *domspec.Record) ([]any, func()) {
	ns := make([]sql.NullString, len(recordColumns)-1)
	dest := make([]any, 0, len(recordColumns))
	dest = append(dest, &r.ID)
	for i := range ns {
		dest = append(dest, &ns[i])
	}
	fill := func() {
		targets := []*string{
			&r.ScientificName, &r.CommonName, &r.GenusSpecies, &r.Family,
			&r.Description, &r.DeterminedBy, &r.Habit, &r.ForestType, &r.Ecozone,
			&r.Collectors, &r.CollectionDate, &r.Country, &r.Department, &r.Province,
			&r.District, &r.Locality, &r.UTMZone, &r.Easting, &r.Northing, &r.Altitude,
			&r.ImagePath,
		}
		for i, t := range targets {
			*t = ns[i].String
		}
	}
	return dest, fill
}
