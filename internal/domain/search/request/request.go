// Package request holds validated catalog listing requests.
package request

import (
	"fmt"

	"github.com/kailas-cloud/catalogo/internal/domain/page"
	"github.com/kailas-cloud/catalogo/internal/domain/search/filter"
	"github.com/kailas-cloud/catalogo/internal/domain/search/mode"
	"github.com/kailas-cloud/catalogo/internal/domain/specimen/field"
)

// Listing is a validated request for one page of a catalog listing.
type Listing struct {
	mode   mode.Mode
	filter filter.Expression
	page   page.Request
}

// New validates a listing. Filtered modes need a non-empty expression and
// unfiltered modes must not carry one.
func New(m mode.Mode, expr filter.Expression, p page.Request) (Listing, error) {
	if !m.IsValid() {
		return Listing{}, fmt.Errorf("invalid listing mode: %q", m)
	}
	if m.Filtered() && expr.IsEmpty() {
		return Listing{}, fmt.Errorf("listing %q requires a filter", m)
	}
	if !m.Filtered() && !expr.IsEmpty() {
		return Listing{}, fmt.Errorf("listing %q does not accept a filter", m)
	}
	if p.Size <= 0 {
		p = page.NewRequest(p.Number, p.Size)
	}
	return Listing{mode: m, filter: expr, page: p}, nil
}

// Mode returns the listing mode.
func (l Listing) Mode() mode.Mode { return l.mode }

// Filter returns the predicate; empty for unfiltered listings.
func (l Listing) Filter() filter.Expression { return l.filter }

// Page returns the requested page.
func (l Listing) Page() page.Request { return l.page }

// Order returns the sort fields.
func (l Listing) Order() []field.Field { return l.mode.Order() }
