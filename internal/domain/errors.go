package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing or unknown specimen.
	ErrNotFound = errors.New("not found")
	// ErrNoCriteriaProvided signals an advanced search without any recognized field.
	ErrNoCriteriaProvided = errors.New("no search criteria provided")
	// ErrEmptyQuery signals a free-text search with a blank token.
	ErrEmptyQuery = errors.New("empty search query")
	// ErrQueryExecutionFailed signals a database fault during a count or data query.
	ErrQueryExecutionFailed = errors.New("query execution failed")
)

// QueryError wraps ErrQueryExecutionFailed with the failing operation and its cause.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrQueryExecutionFailed.Error(), e.Op, e.Err)
}

// Is matches ErrQueryExecutionFailed so callers can test with errors.Is.
func (e *QueryError) Is(target error) bool { return target == ErrQueryExecutionFailed }

func (e *QueryError) Unwrap() error { return e.Err }

// NewQueryError creates a query execution error for op.
func NewQueryError(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}

// Cause returns the message of the underlying fault, or err's own message
// when it carries no QueryError.
func Cause(err error) string {
	var qe *QueryError
	if errors.As(err, &qe) && qe.Err != nil {
		return qe.Err.Error()
	}
	return err.Error()
}
