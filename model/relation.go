package model

import "fmt"

// Rel is the declared cardinality of a relation between two entities.
// M2O and O2M describe the same link from opposite ends; the ownership
// package relies on Inverse to mirror a declaration onto the far side.
type Rel int

// Cardinalities.
const (
	Unk Rel = iota // undeclared
	O2O            // one to one
	O2M            // one to many
	M2O            // many to one
	M2M            // many to many
)

// String returns the short cardinality name, matching the wire form
// ParseRel accepts.
func (r Rel) String() string {
	switch r {
	case O2O:
		return "O2O"
	case O2M:
		return "O2M"
	case M2O:
		return "M2O"
	case M2M:
		return "M2M"
	}
	return "Unknown"
}

// Inverse returns the cardinality seen from the other side of the
// relation: O2O and M2M are self-inverse, O2M and M2O swap.
func (r Rel) Inverse() Rel {
	switch r {
	case O2O:
		return O2O
	case O2M:
		return M2O
	case M2O:
		return O2M
	case M2M:
		return M2M
	}
	return Unk
}

// ParseRel returns the Rel named by s.
func ParseRel(s string) (Rel, error) {
	switch s {
	case "O2O":
		return O2O, nil
	case "O2M":
		return O2M, nil
	case "M2O":
		return M2O, nil
	case "M2M":
		return M2M, nil
	}
	return Unk, fmt.Errorf("model: unknown relation type %q", s)
}

// Relation is a typed, directed link from its owning entity to a target
// entity. The ownership package derives the bidirectional view with
// owner/non-owner sides from these unidirectional declarations.
type Relation struct {
	// Name of the relation. Unique among the entity's relations.
	Name string
	// Rel is the declared cardinality.
	Rel Rel
	// Target references the entity this relation points to.
	Target *Reference[*LocalEntity]
	// Opposite is the name of the navigational property on the target
	// side, when the declaration names one.
	Opposite string
	// Required indicates the relation must be populated.
	Required bool
	// Eager indicates the target should be eagerly loaded by consumers.
	Eager bool
	// Cascade indicates persistence operations cascade over the relation.
	Cascade bool
	// JoinTable is the join-table name for M2M relations.
	JoinTable string

	meta   *Metadata
	entity *LocalEntity
}

// Kind reports the node kind.
func (r *Relation) Kind() Kind { return KindRelation }

// Meta returns the relation metadata.
func (r *Relation) Meta() *Metadata { return r.meta }

// Parent returns the declaring entity.
func (r *Relation) Parent() Node {
	if r.entity == nil {
		return nil
	}
	return r.entity
}

// Entity returns the declaring entity.
func (r *Relation) Entity() *LocalEntity { return r.entity }

// M2M indicates if this relation is a M2M relation.
func (r *Relation) M2M() bool { return r.Rel == M2M }

// M2O indicates if this relation is a M2O relation.
func (r *Relation) M2O() bool { return r.Rel == M2O }

// O2M indicates if this relation is a O2M relation.
func (r *Relation) O2M() bool { return r.Rel == O2M }

// O2O indicates if this relation is a O2O relation.
func (r *Relation) O2O() bool { return r.Rel == O2O }

// SelfReferencing reports whether the relation targets its own entity.
func (r *Relation) SelfReferencing() bool {
	target, ok := r.Target.Get()
	return ok && target == r.entity
}

// Label returns the label of the relation in owner_relation format,
// e.g. "order_customer".
func (r *Relation) Label() string {
	if r.entity == nil {
		return Snake(r.Name)
	}
	return fmt.Sprintf("%s_%s", r.entity.Label(), Snake(r.Name))
}

// Constant returns the generated constant name for the relation.
func (r *Relation) Constant() string {
	return "Relation" + Pascal(r.Name)
}

// clone returns a deep copy of the relation, detached from any entity.
// Resolved targets are carried over by name; Model.clone re-links them.
func (r *Relation) clone() *Relation {
	c := &Relation{
		Name:      r.Name,
		Rel:       r.Rel,
		Opposite:  r.Opposite,
		Required:  r.Required,
		Eager:     r.Eager,
		Cascade:   r.Cascade,
		JoinTable: r.JoinTable,
		meta:      r.meta.clone(),
	}
	if r.Target != nil {
		c.Target = NewReference[*LocalEntity](r.Target.Name())
	}
	return c
}
