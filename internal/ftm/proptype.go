package ftm

import "maps"

// EntityType is the name of the one property type whose values are entities.
const EntityType = "entity"

// PropertyType describes the value domain of a property.
type PropertyType struct {
	// Name is the primitive kind, e.g. "country", "date" or "entity".
	Name   string
	Label  string
	Plural string
	// Group clusters types for faceting, may be empty.
	Group string
	// Matchable types are used for identity matching.
	Matchable bool
	// Pivot types are high-value for graph traversal.
	Pivot     bool
	MaxLength int

	values map[string]string
}

func newPropertyType(name string, spec PropertyTypeSpec) *PropertyType {
	return &PropertyType{
		Name:      name,
		Label:     spec.Label,
		Plural:    spec.Plural,
		Group:     spec.Group,
		Matchable: spec.Matchable,
		Pivot:     spec.Pivot,
		MaxLength: spec.MaxLength,
		values:    maps.Clone(spec.Values),
	}
}

// IsEntity reports whether values of this type are entity references.
func (t *PropertyType) IsEntity() bool {
	return t.Name == EntityType
}

// Caption returns the vocabulary label for a raw value. Values outside the
// vocabulary are returned unchanged; empty input yields "".
func (t *PropertyType) Caption(value string) string {
	if value == "" {
		return ""
	}
	if label, ok := t.values[value]; ok {
		return label
	}
	return value
}

// Values returns a copy of the controlled vocabulary, nil for open types.
func (t *PropertyType) Values() map[string]string {
	return maps.Clone(t.values)
}

func (t *PropertyType) String() string {
	return t.Name
}
