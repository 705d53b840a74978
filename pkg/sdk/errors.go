package catalogo

import "github.com/kailas-cloud/catalogo/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound             = domain.ErrNotFound
	ErrNoCriteriaProvided   = domain.ErrNoCriteriaProvided
	ErrEmptyQuery           = domain.ErrEmptyQuery
	ErrQueryExecutionFailed = domain.ErrQueryExecutionFailed
)
