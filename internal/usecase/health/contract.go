package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogProber checks that the catalog table can be queried.
type CatalogProber interface {
	Probe(ctx context.Context) error
}
