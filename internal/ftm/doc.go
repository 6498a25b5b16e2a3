// Package ftm interprets a server-supplied "Follow The Money" schema
// description and gives typed access to entity records without compile-time
// knowledge of the concrete schema.
//
// # Model
//
// A Model is built once from a ModelSpec (usually fetched as JSON) and owns
// every Schema, Property and PropertyType reachable from it:
//
//	model, err := ftm.ParseModel(data)
//	person, err := model.Schema("Person")
//	person.IsA("Thing")          // true
//	person.Property("birthDate") // *Property or nil
//
// A Model is immutable after construction and safe for concurrent use.
//
// # Entities
//
// Entities are request-scoped records bound to a Model. Nested entity
// payloads are wrapped eagerly, so entity-typed values come back as *Entity:
//
//	entity, err := model.GetEntity(payload)
//	for _, v := range entity.Property("holder") {
//	    if other := v.Entity(); other != nil { ... }
//	}
//
// # Errors
//
// Unknown schema or type names are configuration errors and are returned as
// *SchemaError. Absent properties, ranges, reverses and temporal extents are
// data-driven and come back as nil, empty slices or false.
package ftm
