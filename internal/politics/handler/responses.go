package handler

import (
	"everypolitician/internal/ftm"
	"everypolitician/internal/politics"
	"everypolitician/internal/upstream"
	strutil "everypolitician/pkg/platform/strings"
)

// EntityRef is a compact link to another entity.
type EntityRef struct {
	ID      string `json:"id"`
	Schema  string `json:"schema"`
	Caption string `json:"caption"`
}

// ValueResponse is one property value. Entity values carry a reference,
// vocabulary values carry their display caption.
type ValueResponse struct {
	Value   string     `json:"value"`
	Caption string     `json:"caption,omitempty"`
	Entity  *EntityRef `json:"entity,omitempty"`
}

// PropertyRow is one factsheet row.
type PropertyRow struct {
	Name      string          `json:"name"`
	QName     string          `json:"qname"`
	Label     string          `json:"label"`
	Type      string          `json:"type"`
	TypeLabel string          `json:"type_label"`
	Values    []ValueResponse `json:"values"`
}

// EntitySummary is a related entity with its own factsheet, minus the
// property pointing back at the page subject.
type EntitySummary struct {
	EntityRef
	Properties []PropertyRow `json:"properties"`
}

// RelationResponse is one relationship section of an entity page.
type RelationResponse struct {
	Property string          `json:"property"`
	Label    string          `json:"label"`
	Range    string          `json:"range,omitempty"`
	Total    int             `json:"total"`
	Relation string          `json:"relation,omitempty"`
	HasMore  bool            `json:"has_more"`
	Entities []EntitySummary `json:"entities"`
}

// EntityResponse is the entity page payload.
type EntityResponse struct {
	EntityRef
	SchemaLabel string             `json:"schema_label"`
	Datasets    []string           `json:"datasets"`
	Referents   []string           `json:"referents"`
	Target      bool               `json:"target"`
	FirstSeen   string             `json:"first_seen,omitempty"`
	LastSeen    string             `json:"last_seen,omitempty"`
	LastChange  string             `json:"last_change,omitempty"`
	Countries   []ValueResponse    `json:"countries"`
	Properties  []PropertyRow      `json:"properties"`
	Relations   []RelationResponse `json:"relations"`
}

// RelationPageResponse is one page of a relationship.
type RelationPageResponse struct {
	Subject  string          `json:"subject"`
	Property string          `json:"property"`
	Total    int             `json:"total"`
	Relation string          `json:"relation,omitempty"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
	HasMore  bool            `json:"has_more"`
	Entities []EntitySummary `json:"entities"`
}

// PropertyResponse describes a schema property.
type PropertyResponse struct {
	Name        string `json:"name"`
	QName       string `json:"qname"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
	Range       string `json:"range,omitempty"`
	Reverse     string `json:"reverse,omitempty"`
	Format      string `json:"format,omitempty"`
	Declared    string `json:"declared_by"`
	Hidden      bool   `json:"hidden"`
	Matchable   bool   `json:"matchable"`
	Stub        bool   `json:"stub"`
	MaxLength   int    `json:"max_length,omitempty"`
}

// EdgeResponse describes the roles of an edge schema.
type EdgeResponse struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Directed bool   `json:"directed"`
	Label    string `json:"label,omitempty"`
}

// TemporalExtentResponse names the interval bounding properties.
type TemporalExtentResponse struct {
	Start []string `json:"start"`
	End   []string `json:"end"`
}

// SchemaSummary is a schema list entry.
type SchemaSummary struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Plural   string `json:"plural"`
	Abstract bool   `json:"abstract"`
	Hidden   bool   `json:"hidden"`
	Edge     bool   `json:"edge"`
}

// SchemaResponse is the schema documentation payload.
type SchemaResponse struct {
	SchemaSummary
	Description    string                  `json:"description,omitempty"`
	Matchable      bool                    `json:"matchable"`
	Extends        []string                `json:"extends"`
	Parents        []string                `json:"parents"`
	Children       []string                `json:"children"`
	Featured       []string                `json:"featured"`
	Caption        []string                `json:"caption"`
	Required       []string                `json:"required"`
	Edge           *EdgeResponse           `json:"edge_spec,omitempty"`
	TemporalExtent *TemporalExtentResponse `json:"temporal_extent,omitempty"`
	Properties     []PropertyResponse      `json:"properties"`
}

// TypeResponse describes a property type.
type TypeResponse struct {
	Name      string `json:"name"`
	Label     string `json:"label"`
	Plural    string `json:"plural"`
	Group     string `json:"group,omitempty"`
	Matchable bool   `json:"matchable"`
	Pivot     bool   `json:"pivot"`
	Values    int    `json:"values"`
}

// DatasetsResponse wraps the dataset list.
type DatasetsResponse struct {
	Datasets []upstream.Dataset `json:"datasets"`
}

func toRef(e *ftm.Entity) EntityRef {
	return EntityRef{ID: e.ID, Schema: e.Schema.Name, Caption: e.DisplayCaption()}
}

func toValues(prop *ftm.Property, values []ftm.Value) []ValueResponse {
	out := make([]ValueResponse, 0, len(values))
	for _, v := range values {
		resp := ValueResponse{Value: v.String()}
		if adj := v.Entity(); adj != nil {
			ref := toRef(adj)
			resp.Entity = &ref
		} else if caption := prop.Type.Caption(v.String()); caption != v.String() {
			resp.Caption = caption
		}
		out = append(out, resp)
	}
	return out
}

// toRows builds factsheet rows for the displayable properties that hold
// values. skip names a property to leave out.
func toRows(e *ftm.Entity, skip string) []PropertyRow {
	var rows []PropertyRow
	for _, prop := range e.DisplayProperties() {
		if prop.Name == skip {
			continue
		}
		values := e.Property(prop.Name)
		if len(values) == 0 {
			continue
		}
		rows = append(rows, PropertyRow{
			Name:      prop.Name,
			QName:     prop.QName,
			Label:     prop.Label,
			Type:      prop.Type.Name,
			TypeLabel: prop.Type.Label,
			Values:    toValues(prop, values),
		})
	}
	return rows
}

func toSummaries(prop *ftm.Property, entities []*ftm.Entity) []EntitySummary {
	skip := ""
	if reverse := prop.Reverse(); reverse != nil {
		skip = reverse.Name
	}
	out := make([]EntitySummary, 0, len(entities))
	for _, e := range entities {
		out = append(out, EntitySummary{EntityRef: toRef(e), Properties: toRows(e, skip)})
	}
	return out
}

func rangeName(prop *ftm.Property) string {
	if rng := prop.Range(); rng != nil {
		return rng.Name
	}
	return ""
}

// FromEntityResult converts a loaded entity into its page payload.
func FromEntityResult(result *politics.EntityResult) EntityResponse {
	e := result.Entity
	resp := EntityResponse{
		EntityRef:   toRef(e),
		SchemaLabel: e.Schema.Label,
		Datasets:    cleanList(e.Datasets),
		Referents:   cleanList(e.Referents),
		Target:      e.Target,
		FirstSeen:   e.FirstSeen,
		LastSeen:    e.LastSeen,
		LastChange:  e.LastChange,
		Properties:  toRows(e, ""),
		Relations:   make([]RelationResponse, 0, len(result.Relations)),
	}
	countries := e.TypeValues("country")
	resp.Countries = make([]ValueResponse, 0, len(countries))
	if countryType, err := e.Schema.Model().Type("country"); err == nil {
		for _, code := range countries {
			resp.Countries = append(resp.Countries, ValueResponse{Value: code, Caption: countryType.Caption(code)})
		}
	}
	for _, rel := range result.Relations {
		resp.Relations = append(resp.Relations, RelationResponse{
			Property: rel.Property.Name,
			Label:    rel.Property.Label,
			Range:    rangeName(rel.Property),
			Total:    rel.Total,
			Relation: rel.Relation,
			HasMore:  rel.HasMore(),
			Entities: toSummaries(rel.Property, rel.Entities),
		})
	}
	return resp
}

// FromRelationPage converts a relationship page.
func FromRelationPage(page *politics.RelationPage) RelationPageResponse {
	return RelationPageResponse{
		Subject:  page.Subject,
		Property: page.Property.Name,
		Total:    page.Total,
		Relation: page.Relation,
		Limit:    page.Limit,
		Offset:   page.Offset,
		HasMore:  page.HasMore(),
		Entities: toSummaries(page.Property, page.Entities),
	}
}

func toSummary(s *ftm.Schema) SchemaSummary {
	return SchemaSummary{
		Name:     s.Name,
		Label:    s.Label,
		Plural:   s.Plural,
		Abstract: s.Abstract,
		Hidden:   s.Hidden,
		Edge:     s.IsEdge(),
	}
}

func schemaNames(schemata []*ftm.Schema) []string {
	names := make([]string, 0, len(schemata))
	for _, s := range schemata {
		names = append(names, s.Name)
	}
	return names
}

func propertyNames(props []*ftm.Property) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.Name)
	}
	return names
}

// FromSchema converts a schema into its documentation payload.
func FromSchema(s *ftm.Schema) SchemaResponse {
	resp := SchemaResponse{
		SchemaSummary: toSummary(s),
		Description:   s.Description,
		Matchable:     s.Matchable,
		Extends:       schemaNames(s.Extends()),
		Parents:       schemaNames(s.Parents()),
		Children:      schemaNames(s.Children()),
		Featured:      propertyNames(s.FeaturedProperties()),
		Caption:       propertyNames(s.CaptionProperties()),
		Required:      propertyNames(s.RequiredProperties()),
		Properties:    []PropertyResponse{},
	}
	if edge := s.Edge(); edge != nil {
		resp.Edge = &EdgeResponse{Source: edge.Source, Target: edge.Target, Directed: edge.Directed, Label: edge.Label}
	}
	if extent := s.TemporalExtent(); extent != nil {
		resp.TemporalExtent = &TemporalExtentResponse{Start: cleanList(extent.Start), End: cleanList(extent.End)}
	}
	for _, prop := range s.SortedProperties() {
		p := PropertyResponse{
			Name:        prop.Name,
			QName:       prop.QName,
			Label:       prop.Label,
			Description: prop.Description,
			Type:        prop.Type.Name,
			Range:       rangeName(prop),
			Format:      prop.Format,
			Declared:    prop.Schema().Name,
			Hidden:      prop.Hidden,
			Matchable:   prop.Matchable,
			Stub:        prop.Stub,
			MaxLength:   prop.MaxLength,
		}
		if reverse := prop.Reverse(); reverse != nil {
			p.Reverse = reverse.QName
		}
		resp.Properties = append(resp.Properties, p)
	}
	return resp
}

// FromSchemata converts the schema list.
func FromSchemata(schemata []*ftm.Schema) []SchemaSummary {
	out := make([]SchemaSummary, 0, len(schemata))
	for _, s := range schemata {
		out = append(out, toSummary(s))
	}
	return out
}

// FromTypes converts the property type list.
func FromTypes(types []*ftm.PropertyType) []TypeResponse {
	out := make([]TypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, TypeResponse{
			Name:      t.Name,
			Label:     t.Label,
			Plural:    t.Plural,
			Group:     t.Group,
			Matchable: t.Matchable,
			Pivot:     t.Pivot,
			Values:    len(t.Values()),
		})
	}
	return out
}

// cleanList drops blank and repeated identifiers and never returns nil.
func cleanList(s []string) []string {
	out := strutil.DedupeAndTrim(s)
	if out == nil {
		return []string{}
	}
	return out
}
