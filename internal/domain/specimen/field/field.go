// Package field enumerates the specimen attributes that searches can match on.
package field

// Field is a searchable specimen attribute, named by its request parameter.
type Field string

// Advanced search fields, in canonical predicate order.
const (
	Family         Field = "familia"
	Genus          Field = "genero"
	ScientificName Field = "nombre_cientifico"
	Collectors     Field = "colectores"
	Date           Field = "fecha"
	Country        Field = "pais"
	Department     Field = "departamento"
	Province       Field = "provincia"
	District       Field = "distrito"
	Locality       Field = "localidad"
)

// Non-advanced fields.
const (
	// GenusSpecies is matched by free-text search only.
	GenusSpecies Field = "genero_especie"
	// ID is the record key; it only appears in orderings.
	ID Field = "id"
)

var advanced = []Field{
	Family, Genus, ScientificName, Collectors, Date,
	Country, Department, Province, District, Locality,
}

// Advanced returns the advanced search fields in canonical order.
func Advanced() []Field {
	out := make([]Field, len(advanced))
	copy(out, advanced)
	return out
}

// FreeText returns the fields a free-text token is matched against.
func FreeText() []Field {
	return []Field{ScientificName, GenusSpecies, Department}
}

// Parse resolves a request parameter name to an advanced search field.
func Parse(name string) (Field, bool) {
	for _, f := range advanced {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// String returns the request parameter name.
func (f Field) String() string { return string(f) }

// MatchMode is how a search value is turned into a LIKE pattern.
type MatchMode int

const (
	// Contains wraps the value in wildcards on both sides.
	Contains MatchMode = iota
	// Prefix appends a wildcard after the value only.
	Prefix
)

func (m MatchMode) String() string {
	if m == Prefix {
		return "prefix"
	}
	return "contains"
}

// matchModes overrides the default Contains mode per field.
// Province has always been matched as a prefix; the behavior is kept as-is
// until the catalog owners confirm whether contains-match was intended.
var matchModes = map[Field]MatchMode{
	Province: Prefix,
}

// MatchModeFor returns the advanced search match mode for f.
func MatchModeFor(f Field) MatchMode {
	if m, ok := matchModes[f]; ok {
		return m
	}
	return Contains
}
