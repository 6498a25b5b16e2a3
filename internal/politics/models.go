package politics

import "everypolitician/internal/ftm"

// EntityResult is a loaded entity with its relationships spliced in.
type EntityResult struct {
	Entity    *ftm.Entity
	Relations []Relation
}

// Relation describes one relationship property merged into an entity.
// Total counts every adjacent entity upstream; Entities holds the page that
// was fetched.
type Relation struct {
	Property *ftm.Property
	Total    int
	Relation string
	Entities []*ftm.Entity
}

// HasMore reports whether upstream holds more entities than were loaded.
func (r Relation) HasMore() bool {
	return len(r.Entities) < r.Total
}

// RelationPage is one page of a relationship fetched on its own.
type RelationPage struct {
	Subject  string
	Property *ftm.Property
	Entities []*ftm.Entity
	Total    int
	Relation string
	Limit    int
	Offset   int
}

// HasMore reports whether a later page exists.
func (p RelationPage) HasMore() bool {
	return p.Offset+len(p.Entities) < p.Total
}
