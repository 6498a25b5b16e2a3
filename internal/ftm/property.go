package ftm

// Property describes one named, typed attribute of a Schema.
type Property struct {
	schema *Schema

	// Name is local to the declaring schema.
	Name string
	// QName is qualified by the declaring schema and unique within a Model.
	QName       string
	Label       string
	Description string
	Format      string
	Type        *PropertyType
	MaxLength   int
	Hidden      bool
	Matchable   bool
	Stub        bool

	rangeName   string
	reverseName string
}

func newProperty(schema *Schema, name string, spec PropertySpec, typ *PropertyType) *Property {
	p := &Property{
		schema:      schema,
		Name:        name,
		QName:       spec.QName,
		Label:       spec.Label,
		Description: spec.Description,
		Type:        typ,
		MaxLength:   spec.MaxLength,
		Hidden:      spec.Hidden,
		Matchable:   spec.Matchable,
		Stub:        spec.Stub,
		reverseName: spec.Reverse,
	}
	if p.QName == "" {
		p.QName = schema.Name + ":" + p.Name
	}
	if spec.Range != nil {
		p.rangeName = *spec.Range
	}
	if spec.Format != nil {
		p.Format = *spec.Format
	}
	return p
}

// Schema returns the schema that declares this property.
func (p *Property) Schema() *Schema {
	return p.schema
}

// Range returns the schema this property points to, or nil when the
// property declares no range. Declared ranges are checked when the Model is
// built, so they always resolve.
func (p *Property) Range() *Schema {
	if p.rangeName == "" {
		return nil
	}
	return p.schema.model.schemata[p.rangeName]
}

// Reverse returns the property on the range schema pointing back at this
// one. It is nil when there is no range or the reverse name does not exist.
func (p *Property) Reverse() *Property {
	rng := p.Range()
	if rng == nil || p.reverseName == "" {
		return nil
	}
	return rng.Property(p.reverseName)
}

// IsEntity reports whether the property holds entity references.
func (p *Property) IsEntity() bool {
	return p.Type != nil && p.Type.IsEntity()
}

func (p *Property) String() string {
	return p.QName
}
