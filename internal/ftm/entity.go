package ftm

import (
	"fmt"
	"slices"
)

// Value is one property value: a scalar string or a reference to another
// entity.
type Value struct {
	text   string
	entity *Entity
}

// StringValue wraps a scalar.
func StringValue(s string) Value {
	return Value{text: s}
}

// EntityValue wraps an entity reference.
func EntityValue(e *Entity) Value {
	return Value{entity: e}
}

// Entity returns the referenced entity, nil for scalar values.
func (v Value) Entity() *Entity {
	return v.entity
}

// IsEntity reports whether the value is an entity reference.
func (v Value) IsEntity() bool {
	return v.entity != nil
}

// String returns the scalar, or the id of a referenced entity.
func (v Value) String() string {
	if v.entity != nil {
		return v.entity.ID
	}
	return v.text
}

// Entity is a data record bound to a Schema. Entities are request-scoped;
// nested entities may be shared between several referencing entities.
type Entity struct {
	ID         string
	Schema     *Schema
	Caption    string
	Datasets   []string
	Referents  []string
	Target     bool
	FirstSeen  string
	LastSeen   string
	LastChange string

	properties map[string][]Value
}

func (p *EntityPayload) bind(m *Model) (*Entity, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no payload", ErrInvalidEntity)
	}
	schema, err := m.Schema(p.Schema)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", p.ID, err)
	}
	e := &Entity{
		ID:         p.ID,
		Schema:     schema,
		Caption:    p.Caption,
		Datasets:   slices.Clone(p.Datasets),
		Referents:  slices.Clone(p.Referents),
		Target:     p.Target,
		FirstSeen:  p.FirstSeen,
		LastSeen:   p.LastSeen,
		LastChange: p.LastChange,
		properties: make(map[string][]Value, len(p.Properties)),
	}
	for name, raws := range p.Properties {
		values := make([]Value, 0, len(raws))
		for _, raw := range raws {
			switch {
			case raw.Entity != nil:
				nested, err := raw.Entity.bind(m)
				if err != nil {
					return nil, fmt.Errorf("entity %q property %q: %w", p.ID, name, err)
				}
				values = append(values, EntityValue(nested))
			case raw.null:
			default:
				values = append(values, StringValue(raw.Text))
			}
		}
		e.properties[name] = values
	}
	return e, nil
}

func (e *Entity) bind(*Model) (*Entity, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: no entity", ErrInvalidEntity)
	}
	return e, nil
}

// Property returns the values of the named property. Properties the schema
// does not declare yield an empty result. The slice must not be modified.
func (e *Entity) Property(name string) []Value {
	if e.Schema.Property(name) == nil {
		return nil
	}
	return e.properties[name]
}

// HasProperty reports whether the entity holds any value for the property.
func (e *Entity) HasProperty(name string) bool {
	return len(e.Property(name)) > 0
}

// First returns the first value of the named property.
func (e *Entity) First(name string) (Value, bool) {
	values := e.Property(name)
	if len(values) == 0 {
		return Value{}, false
	}
	return values[0], true
}

// Strings returns the string form of every value of the named property.
func (e *Entity) Strings(name string) []string {
	values := e.Property(name)
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.String())
	}
	return out
}

// Entities returns the entity references of the named property.
func (e *Entity) Entities(name string) []*Entity {
	var out []*Entity
	for _, v := range e.Property(name) {
		if v.entity != nil {
			out = append(out, v.entity)
		}
	}
	return out
}

// SetProperty appends values to the named property. It is meant for splicing
// separately fetched relationships into a loaded entity and performs no
// de-duplication. It returns false, changing nothing, for properties the
// schema does not declare.
func (e *Entity) SetProperty(name string, values ...Value) bool {
	if e.Schema.Property(name) == nil {
		return false
	}
	if e.properties == nil {
		e.properties = make(map[string][]Value)
	}
	e.properties[name] = append(e.properties[name], values...)
	return true
}

// DisplayProperties returns the schema properties worth showing: neither
// hidden nor stubs. Featured properties come first in their declared order,
// the rest follow ordered by name.
func (e *Entity) DisplayProperties() []*Property {
	featured := e.Schema.FeaturedProperties()
	props := make([]*Property, 0, len(featured))
	seen := make(map[string]struct{}, len(featured))
	for _, prop := range featured {
		seen[prop.Name] = struct{}{}
		if !prop.Hidden && !prop.Stub {
			props = append(props, prop)
		}
	}
	for _, prop := range e.Schema.SortedProperties() {
		if _, ok := seen[prop.Name]; ok || prop.Hidden || prop.Stub {
			continue
		}
		props = append(props, prop)
	}
	return props
}

// TypeValues returns the distinct scalar values of every property of the
// given type, e.g. all countries mentioned by the entity.
func (e *Entity) TypeValues(typeName string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, prop := range e.Schema.SortedProperties() {
		if prop.Type.Name != typeName {
			continue
		}
		for _, v := range e.properties[prop.Name] {
			if v.entity != nil {
				continue
			}
			if _, ok := seen[v.text]; ok {
				continue
			}
			seen[v.text] = struct{}{}
			out = append(out, v.text)
		}
	}
	return out
}

// DisplayCaption returns the payload caption, else the first value of the
// schema's caption properties, else the schema label.
func (e *Entity) DisplayCaption() string {
	if e.Caption != "" {
		return e.Caption
	}
	for _, prop := range e.Schema.CaptionProperties() {
		if v, ok := e.First(prop.Name); ok && v.String() != "" {
			return v.String()
		}
	}
	return e.Schema.Label
}

// Payload converts the entity back into its wire form. An entity already
// being written further up the same path is emitted as its id, so reference
// cycles introduced by SetProperty terminate.
func (e *Entity) Payload() *EntityPayload {
	return e.payload(make(map[*Entity]bool))
}

func (e *Entity) payload(path map[*Entity]bool) *EntityPayload {
	path[e] = true
	defer delete(path, e)
	p := &EntityPayload{
		ID:         e.ID,
		Schema:     e.Schema.Name,
		Caption:    e.Caption,
		Datasets:   slices.Clone(e.Datasets),
		Referents:  slices.Clone(e.Referents),
		Target:     e.Target,
		FirstSeen:  e.FirstSeen,
		LastSeen:   e.LastSeen,
		LastChange: e.LastChange,
		Properties: make(map[string][]RawValue, len(e.properties)),
	}
	for name, values := range e.properties {
		raws := make([]RawValue, 0, len(values))
		for _, v := range values {
			switch {
			case v.entity == nil:
				raws = append(raws, RawValue{Text: v.text})
			case path[v.entity]:
				raws = append(raws, RawValue{Text: v.entity.ID})
			default:
				raws = append(raws, RawValue{Entity: v.entity.payload(path)})
			}
		}
		p.Properties[name] = raws
	}
	return p
}
