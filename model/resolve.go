package model

// Resolve runs the reference-resolution pass: every unresolved reference
// whose name matches a known entity or enum is bound to it. The pass is
// idempotent and never fails; references whose names match nothing are
// left unresolved for the validator to report.
//
// Lookup scope: the declaring entity's own module first (direct children),
// then the whole model. Abstract elements are always in scope.
func (m *Model) Resolve() {
	entities := m.Entities()
	enums := m.Enums()
	byName := make(map[string]*LocalEntity, len(entities))
	for _, ent := range entities {
		if _, ok := byName[ent.Name]; !ok {
			byName[ent.Name] = ent
		}
	}
	enumByName := make(map[string]*EnumX, len(enums))
	for _, en := range enums {
		if _, ok := enumByName[en.Name]; !ok {
			enumByName[en.Name] = en
		}
	}
	for _, ent := range entities {
		resolveEntity(ent, byName, enumByName)
	}
}

func resolveEntity(ent *LocalEntity, byName map[string]*LocalEntity, enumByName map[string]*EnumX) {
	if ref := ent.SuperType; ref != nil && !ref.IsResolved() {
		if target := lookupEntity(ent, ref.Name(), byName); target != nil {
			ref.Resolve(target)
		}
	}
	for _, rel := range ent.Relations {
		if rel.Target == nil || rel.Target.IsResolved() {
			continue
		}
		if target := lookupEntity(ent, rel.Target.Name(), byName); target != nil {
			rel.Target.Resolve(target)
		}
	}
	for _, attr := range ent.Attributes {
		if attr.Enum == nil || attr.Enum.IsResolved() {
			continue
		}
		if en := lookupEnum(ent, attr.Enum.Name(), enumByName); en != nil {
			attr.Enum.Resolve(en)
		}
	}
}

// lookupEntity prefers a sibling in the declaring entity's module over
// the global name table.
func lookupEntity(from *LocalEntity, name string, byName map[string]*LocalEntity) *LocalEntity {
	if mod := from.Module(); mod != nil {
		if sib := mod.FindEntity(name); sib != nil {
			return sib
		}
	}
	return byName[name]
}

// lookupEnum prefers a sibling in the declaring entity's module over the
// global name table.
func lookupEnum(from *LocalEntity, name string, enumByName map[string]*EnumX) *EnumX {
	if mod := from.Module(); mod != nil {
		if sib := mod.FindEnum(name); sib != nil {
			return sib
		}
	}
	return enumByName[name]
}
