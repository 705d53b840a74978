// Package catalogo provides an embeddable Go client for a specimen catalog
// stored in SQLite or SQL Server.
//
// The client runs the same listings and searches as the catalogo web
// service, without HTTP:
//
//	client, _ := catalogo.New(ctx, catalogo.WithSQLite("catalogo.db"))
//	defer client.Close()
//
//	page, _ := client.Search(ctx, "onca", 1)
//	for _, s := range page.Items {
//	    fmt.Println(s.ID, s.ScientificName)
//	}
//
//	res, _ := client.Advanced(ctx, catalogo.Criteria{
//	    catalogo.FieldDepartment: "Cusco",
//	    catalogo.FieldDistrict:   "Urubamba",
//	}, 1)
//
//	specimen, err := client.Specimen(ctx, 42)
//	if errors.Is(err, catalogo.ErrNotFound) {
//	    // ...
//	}
package catalogo
