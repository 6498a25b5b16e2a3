package ftm

import (
	"bytes"
	"encoding/json"
)

// ModelSpec is the schema and type description published by the data backend.
type ModelSpec struct {
	Schemata map[string]SchemaSpec       `json:"schemata"`
	Types    map[string]PropertyTypeSpec `json:"types"`
}

// SchemaSpec describes one schema as published by the server.
type SchemaSpec struct {
	Label          string                  `json:"label"`
	Plural         string                  `json:"plural"`
	Schemata       []string                `json:"schemata"`
	Extends        []string                `json:"extends"`
	Abstract       bool                    `json:"abstract,omitempty"`
	Hidden         bool                    `json:"hidden,omitempty"`
	Matchable      bool                    `json:"matchable,omitempty"`
	Generated      bool                    `json:"generated,omitempty"`
	Description    string                  `json:"description,omitempty"`
	Edge           *EdgeSpec               `json:"edge,omitempty"`
	TemporalExtent *TemporalExtentSpec     `json:"temporalExtent,omitempty"`
	Featured       []string                `json:"featured,omitempty"`
	Caption        []string                `json:"caption,omitempty"`
	Required       []string                `json:"required,omitempty"`
	Properties     map[string]PropertySpec `json:"properties"`
}

// EdgeSpec marks a schema as a directed relationship between two entities.
type EdgeSpec struct {
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Directed bool     `json:"directed"`
	Label    string   `json:"label,omitempty"`
	Caption  []string `json:"caption"`
	Required bool     `json:"required,omitempty"`
}

// TemporalExtentSpec names the properties bounding a schema's time interval.
type TemporalExtentSpec struct {
	Start []string `json:"start,omitempty"`
	End   []string `json:"end,omitempty"`
}

// PropertySpec describes one property as published by the server.
// Range and Format may be JSON null.
type PropertySpec struct {
	Name        string  `json:"name"`
	QName       string  `json:"qname"`
	Label       string  `json:"label"`
	Type        string  `json:"type"`
	Description string  `json:"description,omitempty"`
	MaxLength   int     `json:"maxLength,omitempty"`
	Stub        bool    `json:"stub,omitempty"`
	Hidden      bool    `json:"hidden,omitempty"`
	Matchable   bool    `json:"matchable,omitempty"`
	Range       *string `json:"range,omitempty"`
	Reverse     string  `json:"reverse,omitempty"`
	Format      *string `json:"format,omitempty"`
}

// PropertyTypeSpec describes a value domain as published by the server.
type PropertyTypeSpec struct {
	Group     string            `json:"group,omitempty"`
	Label     string            `json:"label,omitempty"`
	Plural    string            `json:"plural,omitempty"`
	Matchable bool              `json:"matchable,omitempty"`
	MaxLength int               `json:"maxLength,omitempty"`
	Pivot     bool              `json:"pivot,omitempty"`
	Values    map[string]string `json:"values,omitempty"`
}

// EntityPayload is an entity record as returned by the API.
type EntityPayload struct {
	ID         string                `json:"id"`
	Schema     string                `json:"schema"`
	Caption    string                `json:"caption"`
	Datasets   []string              `json:"datasets"`
	Referents  []string              `json:"referents"`
	Target     bool                  `json:"target"`
	FirstSeen  string                `json:"first_seen,omitempty"`
	LastSeen   string                `json:"last_seen,omitempty"`
	LastChange string                `json:"last_change,omitempty"`
	Properties map[string][]RawValue `json:"properties,omitempty"`
}

// RawValue is a single property value: either a string or a nested entity.
type RawValue struct {
	Text   string
	Entity *EntityPayload
	null   bool
}

// UnmarshalJSON decodes strings and nested entity objects. Other literals
// (numbers, booleans) are kept as their JSON text.
func (v *RawValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*v = RawValue{}
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		v.null = true
		return nil
	case data[0] == '"':
		return json.Unmarshal(data, &v.Text)
	case data[0] == '{':
		v.Entity = new(EntityPayload)
		return json.Unmarshal(data, v.Entity)
	default:
		v.Text = string(data)
		return nil
	}
}

// MarshalJSON encodes the value back into its wire form.
func (v RawValue) MarshalJSON() ([]byte, error) {
	if v.Entity != nil {
		return json.Marshal(v.Entity)
	}
	if v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.Text)
}

// AdjacentPayload is one page of entities related to a subject through a
// single property.
type AdjacentPayload struct {
	Results []*EntityPayload `json:"results"`
	Total   Total            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}

// Total is a result count as reported by the search index. Relation is "eq"
// for exact counts and "gte" for lower bounds.
type Total struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

// HasMore reports whether further pages exist after this one.
func (p *AdjacentPayload) HasMore() bool {
	return p.Offset+len(p.Results) < p.Total.Value
}
