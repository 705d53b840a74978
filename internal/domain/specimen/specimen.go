// Package specimen holds the read-only catalog record types.
package specimen

import "strings"

// DefaultImageSeparator splits an image path into its segments.
const DefaultImageSeparator = "/"

// Summary is the listing projection of a catalog row.
type Summary struct {
	ID             int64
	GenusSpecies   string
	ScientificName string
	Collectors     string
	CollectionDate string
	Country        string
	Department     string
	Province       string
	District       string
	ImagePath      string
}

// Slug returns the URL segment used in detail links.
func (s Summary) Slug() string { return Slug(s.ScientificName) }

// Record is a full catalog row.
type Record struct {
	ID             int64
	ScientificName string
	CommonName     string
	GenusSpecies   string
	Family         string
	Description    string
	DeterminedBy   string
	Habit          string
	ForestType     string
	Ecozone        string
	Collectors     string
	CollectionDate string
	Country        string
	Department     string
	Province       string
	District       string
	Locality       string
	UTMZone        string
	Easting        string
	Northing       string
	Altitude       string
	ImagePath      string
}

// Detail is a record prepared for the detail view.
type Detail struct {
	Record
	Images []string
}

// NewDetail splits the record's image path on sep.
func NewDetail(r Record, sep string) Detail {
	return Detail{Record: r, Images: ImageSegments(r.ImagePath, sep)}
}

// HasImages reports whether the record has any usable image segment.
func (d Detail) HasImages() bool { return len(d.Images) > 0 }

// ImageSegments splits path on sep, dropping blank segments.
// An empty path yields no segments.
func ImageSegments(path, sep string) []string {
	if sep == "" {
		sep = DefaultImageSeparator
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return []string{}
	}
	parts := strings.Split(path, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
