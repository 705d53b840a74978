// Package sqlitetest provides temp-file SQLite catalog stores for tests.
package sqlitetest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalogo/internal/db/sqldb"
	"github.com/kailas-cloud/catalogo/internal/db/sqlite"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen"
)

// DefaultTable is the catalog table name used by tests.
const DefaultTable = "Datos"

var columns = []string{
	"id", "nombre_cientifico", "nombre_comun", "genero_especie", "familia",
	"descripcion", "determinado_por", "habito", "tipo_bosque", "ecozona",
	"colectores", "fecha_colecta", "pais", "departamento", "provincia",
	"distrito", "localidad", "utm", "este", "norte", "altitud", "image_path",
}

// New returns a store over a fresh temp-file database holding an empty
// catalog table. The store is closed when the test ends.
func New(t testing.TB, opts ...sqldb.Option) *sqldb.Store {
	t.Helper()
	return NewAt(t, filepath.Join(t.TempDir(), "catalog.db"), opts...)
}

// NewAt is New over the database file at path.
func NewAt(t testing.TB, path string, opts ...sqldb.Option) *sqldb.Store {
	t.Helper()
	store, err := sqlite.Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	defs := make([]string, len(columns))
	for i, c := range columns {
		if c == "id" {
			defs[i] = "id INTEGER PRIMARY KEY"
			continue
		}
		defs[i] = c + " TEXT"
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", DefaultTable, strings.Join(defs, ", "))
	_, err = store.DB().ExecContext(context.Background(), ddl)
	require.NoError(t, err)
	return store
}

// Insert writes records into the catalog table. Empty strings are stored
// as NULL, matching sparsely filled legacy rows.
func Insert(t testing.TB, store *sqldb.Store, records ...specimen.Record) {
	t.Helper()
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", DefaultTable, strings.Join(columns, ", "), marks)
	for _, r := range records {
		_, err := store.DB().ExecContext(context.Background(), q, values(r)...)
		require.NoError(t, err)
	}
}

func values(r specimen.Record) []any {
	strs := []string{
		r.ScientificName, r.CommonName, r.GenusSpecies, r.Family,
		r.Description, r.DeterminedBy, r.Habit, r.ForestType, r.Ecozone,
		r.Collectors, r.CollectionDate, r.Country, r.Department, r.Province,
		r.District, r.Locality, r.UTMZone, r.Easting, r.Northing, r.Altitude, r.ImagePath,
	}
	out := make([]any, 0, len(strs)+1)
	out = append(out, r.ID)
	for _, s := range strs {
		if s == "" {
			out = append(out, nil)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Numbered returns n records with ids 1..n and names sorting in id order.
func Numbered(n int) []specimen.Record {
	out := make([]specimen.Record, n)
	for i := range out {
		id := int64(i + 1)
		out[i] = specimen.Record{
			ID:             id,
			ScientificName: fmt.Sprintf("Especie %02d", id),
			GenusSpecies:   fmt.Sprintf("Genero %02d", id),
			Department:     "Cusco",
			ImagePath:      fmt.Sprintf("img/%02d.jpg", id),
		}
	}
	return out
}
