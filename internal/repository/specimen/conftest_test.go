package specimen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/catalogo/internal/db/sqldb"
	"github.com/kailas-cloud/catalogo/internal/db/sqlite/sqlitetest"
	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/criteria"
	"github.com/kailas-cloud/catalogo/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogo/internal/domain/search/mode"
	"github.com/kailas-cloud/catalogo/internal/domain/search/request"
	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

var fauna = []domspec.Record{
	{
		ID: 1, ScientificName: "Panthera onca", GenusSpecies: "Panthera onca", Family: "Felidae",
		Collectors: "Ríos", CollectionDate: "1998-04-02", Country: "Perú", Department: "Cusco",
		Province: "La Convención", District: "Echarati", ImagePath: "a/b/c",
	},
	{
		ID: 2, ScientificName: "Puma concolor", GenusSpecies: "Puma concolor", Family: "Felidae",
		Country: "Perú", Department: "Cusco", Province: "Urubamba", District: "Urubamba",
	},
	{
		ID: 3, ScientificName: "Tremarctos ornatus", GenusSpecies: "Tremarctos ornatus", Family: "Ursidae",
		Country: "Perú", Department: "Puno", Province: "Carabaya", District: "Ollachea",
	},
	{
		ID: 4, ScientificName: "Leopardus pardalis", GenusSpecies: "Leopardus pardalis", Family: "Felidae",
		Country: "Perú", Department: "Oncapampa", Province: "Santa Convención", District: "Quellouno",
	},
}

func newRepo(t *testing.T, records ...domspec.Record) (*Repo, *sqldb.Store) {
	t.Helper()
	store := sqlitetest.New(t)
	sqlitetest.Insert(t, store, records...)
	repo, err := New(store, sqlitetest.DefaultTable)
	require.NoError(t, err)
	return repo, store
}

func unfiltered(t *testing.T, m mode.Mode, number, size int) request.Listing {
	t.Helper()
	l, err := request.New(m, filter.Expression{}, page.NewRequest(number, size))
	require.NoError(t, err)
	return l
}

func advanced(t *testing.T, values map[field.Field]string, number int) request.Listing {
	t.Helper()
	expr, err := filter.AllOf(criteria.New(values))
	require.NoError(t, err)
	l, err := request.New(mode.Advanced, expr, page.NewRequest(number, page.DefaultSize))
	require.NoError(t, err)
	return l
}

func freeText(t *testing.T, token string, number int) request.Listing {
	t.Helper()
	expr, err := filter.AnyOf(token, field.FreeText()...)
	require.NoError(t, err)
	l, err := request.New(mode.FreeText, expr, page.NewRequest(number, page.DefaultSize))
	require.NoError(t, err)
	return l
}

func ids(items []domspec.Summary) []int64 {
	out := make([]int64, len(items))
	for i, s := range items {
		out[i] = s.ID
	}
	return out
}
