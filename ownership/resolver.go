// Package ownership derives the bidirectional relation-ownership map
// from the unidirectional relation declarations of a model.
//
// Each declared relation yields exactly two entries, one per participant
// (both on the same key for self-referencing relations). The owner side
// is the one that would hold the foreign key, or the join table for
// many-to-many relations: a declared O2M flips ownership to the target
// (the "many" side, recorded there as an owning M2O); O2O, M2O and M2M
// keep the declaring side as owner. The non-owning mirrored entry
// carries the inverse cardinality and is purely navigational.
package ownership

import "github.com/DaviAlvarenga01/module-doc-lib-sub000/model"

// Entry is one side of a resolved relation.
type Entry struct {
	// Source is the relation declaration this entry was derived from.
	Source *model.Relation
	// Target is the entity on the other side.
	Target *model.LocalEntity
	// Rel is the cardinality seen from this side.
	Rel model.Rel
	// Owner reports whether this side holds the foreign key or join
	// table. Exactly one of the two mirrored entries is owning.
	Owner bool
}

// Map associates every entity with its resolved relation entries, in
// declaration order of the underlying relations.
type Map map[*model.LocalEntity][]Entry

// Resolve builds the ownership map for the given entities. Relations
// whose target reference is unresolved are skipped; the validate
// package reports those separately.
func Resolve(entities []*model.LocalEntity) Map {
	m := make(Map, len(entities))
	for _, ent := range entities {
		for _, rel := range ent.Relations {
			target, ok := rel.Target.Get()
			if !ok {
				continue
			}
			switch rel.Rel {
			case model.O2M:
				// The target is the "many" side and conceptually holds
				// the foreign key, so ownership flips to it.
				m[target] = append(m[target], Entry{Source: rel, Target: ent, Rel: model.M2O, Owner: true})
				m[ent] = append(m[ent], Entry{Source: rel, Target: target, Rel: model.O2M, Owner: false})
			default:
				m[ent] = append(m[ent], Entry{Source: rel, Target: target, Rel: rel.Rel, Owner: true})
				m[target] = append(m[target], Entry{Source: rel, Target: ent, Rel: rel.Rel.Inverse(), Owner: false})
			}
		}
	}
	return m
}

// ResolveModel builds the ownership map for every entity of the model.
func ResolveModel(m *model.Model) Map {
	return Resolve(m.Entities())
}

// RelationsFor returns the resolved entries of an entity.
func (m Map) RelationsFor(e *model.LocalEntity) []Entry {
	return m[e]
}

// OwnedRelationsFor returns the entries where the entity is the owning
// side.
func (m Map) OwnedRelationsFor(e *model.LocalEntity) []Entry {
	var out []Entry
	for _, entry := range m[e] {
		if entry.Owner {
			out = append(out, entry)
		}
	}
	return out
}

// RelationBetween returns the first entry on a's list whose target is b.
func (m Map) RelationBetween(a, b *model.LocalEntity) (Entry, bool) {
	for _, entry := range m[a] {
		if entry.Target == b {
			return entry, true
		}
	}
	return Entry{}, false
}

// CircularlyRelated reports whether a relation exists in both directions
// between a and b. Immediately after Resolve this holds for every
// related pair, since each relation is mirrored; the predicate is mainly
// useful when reasoning about declarations before mirroring.
func (m Map) CircularlyRelated(a, b *model.LocalEntity) bool {
	_, ab := m.RelationBetween(a, b)
	_, ba := m.RelationBetween(b, a)
	return ab && ba
}
