package catalog

import (
	"context"

	domspec "github.com/kailas-cloud/catalogo/internal/domain/specimen"
)

// Repository opens session-scoped catalog readers.
type Repository interface {
	// WithSession runs fn with a reader bound to one database session and
	// releases the session when fn returns.
	WithSession(ctx context.Context, fn func(domspec.Reader) error) error
}
