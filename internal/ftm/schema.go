package ftm

import (
	"maps"
	"slices"
)

// Schema describes one entity type: its own properties, its inheritance and
// the metadata used to display its entities.
type Schema struct {
	model *Model

	Name        string
	Label       string
	Plural      string
	Description string
	Abstract    bool
	Hidden      bool
	Matchable   bool
	Generated   bool
	// Featured lists property names to surface first, in order.
	Featured []string
	// Caption lists property names used to derive a display title.
	Caption  []string
	Required []string

	extends  []string
	schemata []string
	edge     *Edge
	temporal *TemporalExtent
	own      map[string]*Property
	// props is the flattened property map keyed by local name, filled once
	// the whole model has been read.
	props map[string]*Property
	// qprops is keyed by qname and keeps inherited properties that a local
	// declaration of the same name shadows.
	qprops map[string]*Property
}

// Edge holds the relationship roles of an edge schema.
type Edge struct {
	schema *Schema

	Source   string
	Target   string
	Directed bool
	Label    string
	Caption  []string
	Required bool
}

// SourceProperty returns the property holding the edge source.
func (e *Edge) SourceProperty() *Property {
	return e.schema.Property(e.Source)
}

// TargetProperty returns the property holding the edge target.
func (e *Edge) TargetProperty() *Property {
	return e.schema.Property(e.Target)
}

// TemporalExtent names the properties bounding an entity's time interval.
type TemporalExtent struct {
	Start []string
	End   []string
}

func newSchema(model *Model, name string, spec SchemaSpec) *Schema {
	s := &Schema{
		model:       model,
		Name:        name,
		Label:       spec.Label,
		Plural:      spec.Plural,
		Description: spec.Description,
		Abstract:    spec.Abstract,
		Hidden:      spec.Hidden,
		Matchable:   spec.Matchable,
		Generated:   spec.Generated,
		Featured:    slices.Clone(spec.Featured),
		Caption:     slices.Clone(spec.Caption),
		Required:    slices.Clone(spec.Required),
		extends:     slices.Clone(spec.Extends),
		schemata:    slices.Clone(spec.Schemata),
		own:         make(map[string]*Property, len(spec.Properties)),
	}
	if spec.Edge != nil {
		s.edge = &Edge{
			schema:   s,
			Source:   spec.Edge.Source,
			Target:   spec.Edge.Target,
			Directed: spec.Edge.Directed,
			Label:    spec.Edge.Label,
			Caption:  slices.Clone(spec.Edge.Caption),
			Required: spec.Edge.Required,
		}
	}
	if spec.TemporalExtent != nil {
		s.temporal = &TemporalExtent{
			Start: slices.Clone(spec.TemporalExtent.Start),
			End:   slices.Clone(spec.TemporalExtent.End),
		}
	}
	return s
}

// Model returns the model owning this schema.
func (s *Schema) Model() *Model {
	return s.model
}

// Extends returns the direct parents in declared order.
func (s *Schema) Extends() []*Schema {
	parents := make([]*Schema, 0, len(s.extends))
	for _, name := range s.extends {
		if parent, ok := s.model.schemata[name]; ok {
			parents = append(parents, parent)
		}
	}
	return parents
}

// Parents returns every ancestor, breadth-first in the order first
// encountered. The result is not a topological order: with diamond
// inheritance an ancestor may precede a nearer one.
func (s *Schema) Parents() []*Schema {
	seen := make(map[string]struct{})
	var parents []*Schema
	queue := s.Extends()
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		if _, ok := seen[parent.Name]; ok {
			continue
		}
		seen[parent.Name] = struct{}{}
		parents = append(parents, parent)
		queue = append(queue, parent.Extends()...)
	}
	return parents
}

// Children returns every schema that has this one among its ancestors.
// It scans the whole model on each call.
func (s *Schema) Children() []*Schema {
	var children []*Schema
	for _, other := range s.model.Schemata() {
		for _, parent := range other.Parents() {
			if parent.Name == s.Name {
				children = append(children, other)
				break
			}
		}
	}
	return children
}

// Schemata returns the names of this schema and all of its ancestors.
func (s *Schema) Schemata() []string {
	return slices.Clone(s.schemata)
}

// IsA reports whether this schema is, or inherits from, the named schema.
// Unknown names never match.
func (s *Schema) IsA(name string) bool {
	target, ok := s.model.schemata[name]
	if !ok {
		return false
	}
	return slices.Contains(s.schemata, target.Name)
}

// IsAny reports whether IsA holds for at least one of the names.
func (s *Schema) IsAny(names ...string) bool {
	for _, name := range names {
		if s.IsA(name) {
			return true
		}
	}
	return false
}

// Properties returns the inherited and own properties. Keyed by local name,
// own properties shadow inherited ones of the same name and among parents
// the later one in extends wins. Keyed by qname, every ancestor declaration
// is kept, since shadowed and shadowing properties have distinct qnames.
func (s *Schema) Properties(qualified bool) map[string]*Property {
	if qualified {
		return maps.Clone(s.qprops)
	}
	return maps.Clone(s.props)
}

// OwnProperties returns only the properties declared on this schema.
func (s *Schema) OwnProperties() map[string]*Property {
	return maps.Clone(s.own)
}

// Property returns the named property, or nil if neither this schema nor
// any ancestor declares it.
func (s *Schema) Property(name string) *Property {
	return s.props[name]
}

// SortedProperties returns the properties ordered by local name.
func (s *Schema) SortedProperties() []*Property {
	props := make([]*Property, 0, len(s.props))
	for _, name := range slices.Sorted(maps.Keys(s.props)) {
		props = append(props, s.props[name])
	}
	return props
}

// FeaturedProperties resolves Featured, dropping names that do not resolve.
func (s *Schema) FeaturedProperties() []*Property {
	return s.resolve(s.Featured)
}

// CaptionProperties resolves Caption, dropping names that do not resolve.
func (s *Schema) CaptionProperties() []*Property {
	return s.resolve(s.Caption)
}

// RequiredProperties resolves Required, dropping names that do not resolve.
func (s *Schema) RequiredProperties() []*Property {
	return s.resolve(s.Required)
}

func (s *Schema) resolve(names []string) []*Property {
	props := make([]*Property, 0, len(names))
	for _, name := range names {
		if prop := s.Property(name); prop != nil {
			props = append(props, prop)
		}
	}
	return props
}

// IsEdge reports whether the schema represents a relationship.
func (s *Schema) IsEdge() bool {
	return s.edge != nil
}

// Edge returns the relationship roles, nil for non-edge schemata.
func (s *Schema) Edge() *Edge {
	return s.edge
}

// TemporalExtent returns the schema's own temporal extent, else the first
// one found among its parents in extends order, else nil.
func (s *Schema) TemporalExtent() *TemporalExtent {
	if s.temporal != nil {
		return s.temporal
	}
	for _, parent := range s.Extends() {
		if extent := parent.TemporalExtent(); extent != nil {
			return extent
		}
	}
	return nil
}

func (s *Schema) String() string {
	return s.Name
}

// flatten fills props and qprops from the parents' flattened maps. Callers
// guarantee the inheritance graph is acyclic.
func (s *Schema) flatten() {
	if s.props != nil {
		return
	}
	props := make(map[string]*Property)
	qprops := make(map[string]*Property)
	for _, parent := range s.Extends() {
		parent.flatten()
		maps.Copy(props, parent.props)
		maps.Copy(qprops, parent.qprops)
	}
	maps.Copy(props, s.own)
	for _, prop := range s.own {
		qprops[prop.QName] = prop
	}
	s.props = props
	s.qprops = qprops
}
