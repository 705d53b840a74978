package specimen

import (
	"context"

	"github.com/kailas-cloud/catalogo/internal/domain/search/request"
)

// Reader reads the catalog within one database session.
type Reader interface {
	// Count returns the number of records matching the listing.
	Count(ctx context.Context, l request.Listing) (int, error)
	// List returns every matching record in listing order.
	List(ctx context.Context, l request.Listing) ([]Summary, error)
	// ListPage returns only the requested page window in listing order.
	ListPage(ctx context.Context, l request.Listing) ([]Summary, error)
	// Get returns one record by id, or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (Record, error)
}
