// Package model holds the in-memory domain-model tree: modules, entities,
// attributes, typed relations, functions and enums, linked by parent
// back-references into a single tree rooted at Model.
//
// # Structure
//
// A Model owns top-level Modules and abstract elements (entities and
// enums bound to no module). Modules nest to arbitrary depth and own an
// ordered element list. Entities own their attributes, relations and
// functions:
//
//	m := model.NewModel("shop")
//	sales, _ := m.AddModule("sales")
//	order, _ := sales.AddEntity("Order")
//	order.AddAttribute(model.AttributeDesc{Name: "number", Type: model.TypeString, Unique: true})
//	order.AddRelation(model.RelationDesc{Name: "customer", Rel: model.M2O, Target: "Customer"})
//
// # Contracts
//
// All mutation goes through builder operations. Adds fail with
// DuplicateNameError when a sibling already carries the name and with
// EmptyNameError for blank identifiers; removes fail with NotFoundError.
// Every mutation stamps Metadata timestamps up the ancestor chain.
// Removal detaches the parent pointer and cascades nothing; dangling
// references are reported by the validate package.
//
// # References
//
// Cross-entity links (relation targets, supertypes, enum-typed
// attributes) are Reference values: unresolved by-name until
// Model.Resolve binds them. Resolution is idempotent; unresolved
// references surviving to validation become reported issues.
//
// # Discrimination
//
// Node kinds form a closed set (Kind) and module children a sealed
// Element union, so consumers switch over Kind or use the As* accessors
// instead of open type assertions.
package model
