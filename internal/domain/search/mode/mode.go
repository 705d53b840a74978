// Package mode names the catalog listings and their sort orders.
package mode

import "github.com/kailas-cloud/catalogo/internal/domain/specimen/field"

// Mode is a catalog listing.
type Mode string

// Listing modes.
const (
	// Default lists every record by id.
	Default Mode = "default"
	// Quick lists every record by genus and species.
	Quick Mode = "quick"
	// FreeText matches one token against several fields.
	FreeText Mode = "search"
	// Advanced matches every provided field.
	Advanced Mode = "advanced"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Default || m == Quick || m == FreeText || m == Advanced
}

// Filtered reports whether the listing requires a predicate.
func (m Mode) Filtered() bool {
	return m == FreeText || m == Advanced
}

// Order returns the sort fields of the listing, ascending. Name orders end
// with the id so equal names keep a stable position across pages.
func (m Mode) Order() []field.Field {
	switch m {
	case Quick, FreeText:
		return []field.Field{field.GenusSpecies, field.ID}
	case Advanced:
		return []field.Field{field.ScientificName, field.ID}
	default:
		return []field.Field{field.ID}
	}
}

// String returns the mode name used in logs and metrics.
func (m Mode) String() string { return string(m) }
