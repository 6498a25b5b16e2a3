package ftm

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Model is the registry of all schemata and property types of one model
// description. It is immutable after construction.
type Model struct {
	schemata map[string]*Schema
	types    map[string]*PropertyType
}

// ParseModel decodes a JSON model description and builds a Model from it.
func ParseModel(data []byte) (*Model, error) {
	var spec ModelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, newSchemaError("", "", "decode model description", fmt.Errorf("%w: %v", ErrInvalidModel, err))
	}
	return NewModel(spec)
}

// NewModel builds a Model. Every extends, range and property type name in
// the description must resolve, and inheritance must be acyclic.
func NewModel(spec ModelSpec) (*Model, error) {
	m := &Model{
		schemata: make(map[string]*Schema, len(spec.Schemata)),
		types:    make(map[string]*PropertyType, len(spec.Types)),
	}
	for name, ts := range spec.Types {
		m.types[name] = newPropertyType(name, ts)
	}
	for name, ss := range spec.Schemata {
		m.schemata[name] = newSchema(m, name, ss)
	}
	for _, name := range slices.Sorted(maps.Keys(spec.Schemata)) {
		if err := m.bind(m.schemata[name], spec.Schemata[name]); err != nil {
			return nil, err
		}
	}
	acyclic := make(map[string]bool, len(m.schemata))
	for _, name := range slices.Sorted(maps.Keys(m.schemata)) {
		if err := m.checkCycle(m.schemata[name], make(map[string]bool), acyclic); err != nil {
			return nil, err
		}
	}
	for _, s := range m.schemata {
		s.flatten()
		if len(s.schemata) == 0 {
			s.schemata = append(s.schemata, s.Name)
			for _, parent := range s.Parents() {
				s.schemata = append(s.schemata, parent.Name)
			}
		}
	}
	return m, nil
}

// bind resolves the names a schema refers to and attaches its properties.
func (m *Model) bind(s *Schema, spec SchemaSpec) error {
	for _, parent := range s.extends {
		if _, ok := m.schemata[parent]; !ok {
			return newSchemaError(s.Name, "", fmt.Sprintf("extends %q", parent), ErrUnknownSchema)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(spec.Properties)) {
		ps := spec.Properties[name]
		typ, ok := m.types[ps.Type]
		if !ok {
			return newSchemaError(s.Name, name, fmt.Sprintf("type %q", ps.Type), ErrUnknownType)
		}
		if ps.Range != nil && *ps.Range != "" {
			if _, ok := m.schemata[*ps.Range]; !ok {
				return newSchemaError(s.Name, name, fmt.Sprintf("range %q", *ps.Range), ErrUnknownSchema)
			}
		}
		s.own[name] = newProperty(s, name, ps, typ)
	}
	return nil
}

// checkCycle walks extends depth first. Schemata recorded in acyclic have
// been fully explored already, so each is visited once per model.
func (m *Model) checkCycle(s *Schema, path, acyclic map[string]bool) error {
	if acyclic[s.Name] {
		return nil
	}
	if path[s.Name] {
		return newSchemaError(s.Name, "", "inheritance cycle", ErrInvalidModel)
	}
	path[s.Name] = true
	defer delete(path, s.Name)
	for _, parent := range s.Extends() {
		if err := m.checkCycle(parent, path, acyclic); err != nil {
			return err
		}
	}
	acyclic[s.Name] = true
	return nil
}

// Schema returns the named schema. Unknown or empty names are an error.
func (m *Model) Schema(name string) (*Schema, error) {
	if name == "" {
		return nil, newSchemaError("", "", "empty schema name", ErrUnknownSchema)
	}
	s, ok := m.schemata[name]
	if !ok {
		return nil, newSchemaError(name, "", "", ErrUnknownSchema)
	}
	return s, nil
}

// HasSchema reports whether the model contains the named schema.
func (m *Model) HasSchema(name string) bool {
	_, ok := m.schemata[name]
	return ok
}

// Type returns the named property type. Unknown names are an error.
func (m *Model) Type(name string) (*PropertyType, error) {
	t, ok := m.types[name]
	if !ok {
		return nil, newSchemaError("", "", fmt.Sprintf("type %q", name), ErrUnknownType)
	}
	return t, nil
}

// Types returns all property types ordered by name.
func (m *Model) Types() []*PropertyType {
	types := make([]*PropertyType, 0, len(m.types))
	for _, name := range slices.Sorted(maps.Keys(m.types)) {
		types = append(types, m.types[name])
	}
	return types
}

// Schemata returns all schemata ordered by name.
func (m *Model) Schemata() []*Schema {
	schemata := make([]*Schema, 0, len(m.schemata))
	for _, name := range slices.Sorted(maps.Keys(m.schemata)) {
		schemata = append(schemata, m.schemata[name])
	}
	return schemata
}

// Properties returns every property of every schema, de-duplicated by
// qualified name and ordered by it.
func (m *Model) Properties() []*Property {
	byQName := make(map[string]*Property)
	for _, s := range m.schemata {
		maps.Copy(byQName, s.Properties(true))
	}
	props := make([]*Property, 0, len(byQName))
	for _, qname := range slices.Sorted(maps.Keys(byQName)) {
		props = append(props, byQName[qname])
	}
	return props
}

// EntitySource is anything the model can bind as an Entity: a raw
// *EntityPayload or an already bound *Entity.
type EntitySource interface {
	bind(m *Model) (*Entity, error)
}

// GetEntity binds a payload to this model. An *Entity is returned unchanged.
func (m *Model) GetEntity(src EntitySource) (*Entity, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no payload", ErrInvalidEntity)
	}
	return src.bind(m)
}

// ParseEntity decodes an entity payload and binds it to this model.
func (m *Model) ParseEntity(data []byte) (*Entity, error) {
	var payload EntityPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	return m.GetEntity(&payload)
}
