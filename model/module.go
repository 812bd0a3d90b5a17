package model

import "strings"

// Module is a named namespace owning an ordered list of elements:
// entities, enums and nested modules at arbitrary depth.
type Module struct {
	// Name of the module. Unique among its container's elements.
	Name string
	// Elements are the direct children, in declaration order.
	Elements []Element

	meta   *Metadata
	parent Node // *Model or *Module
}

// Kind reports the node kind.
func (m *Module) Kind() Kind { return KindModule }

// Meta returns the module metadata.
func (m *Module) Meta() *Metadata { return m.meta }

// Parent returns the owning Model or Module.
func (m *Module) Parent() Node { return m.parent }

// QualifiedName returns the dot-separated module path from the root,
// e.g. "shop.billing".
func (m *Module) QualifiedName() string {
	var parts []string
	for cur := Node(m); cur != nil; cur = cur.Parent() {
		if mod, ok := cur.(*Module); ok {
			parts = append(parts, mod.Name)
		}
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Empty reports whether the module has no elements.
func (m *Module) Empty() bool { return len(m.Elements) == 0 }

// Find returns the direct child element with the given name, or nil.
func (m *Module) Find(name string) Element {
	for _, el := range m.Elements {
		if NameOf(el) == name {
			return el
		}
	}
	return nil
}

// FindModule returns the direct child module with the given name, or nil.
func (m *Module) FindModule(name string) *Module {
	if sub, ok := AsModule(m.Find(name)); ok {
		return sub
	}
	return nil
}

// FindEntity returns the direct child entity with the given name, or nil.
func (m *Module) FindEntity(name string) *LocalEntity {
	if ent, ok := AsEntity(m.Find(name)); ok {
		return ent
	}
	return nil
}

// FindEnum returns the direct child enum with the given name, or nil.
func (m *Module) FindEnum(name string) *EnumX {
	if en, ok := AsEnum(m.Find(name)); ok {
		return en
	}
	return nil
}

// AddModule creates a nested module. It fails with EmptyNameError on a
// blank name and DuplicateNameError if any sibling has the same name.
func (m *Module) AddModule(name string) (*Module, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindModule)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindModule, name)
	}
	sub := &Module{Name: name, meta: newMetadata(), parent: m}
	m.Elements = append(m.Elements, sub)
	touch(m)
	return sub, nil
}

// AddEntity creates an entity in the module. It fails with EmptyNameError
// on a blank name and DuplicateNameError if any sibling has the same name.
func (m *Module) AddEntity(name string) (*LocalEntity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindEntity)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindEntity, name)
	}
	ent := &LocalEntity{Name: name, meta: newMetadata(), parent: m}
	m.Elements = append(m.Elements, ent)
	touch(m)
	return ent, nil
}

// AddEnum creates an enum in the module. It fails with EmptyNameError on
// a blank name and DuplicateNameError if any sibling has the same name.
func (m *Module) AddEnum(name string, values ...string) (*EnumX, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindEnum)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindEnum, name)
	}
	en := &EnumX{Name: name, Values: append([]string(nil), values...), meta: newMetadata(), parent: m}
	m.Elements = append(m.Elements, en)
	touch(m)
	return en, nil
}

// Adopt re-parents an existing module under m. It fails with
// DuplicateNameError if a sibling has the same name, and with
// OwnAncestorError if child is m itself or one of m's ancestors, which
// would cut a cycle into the containment tree.
func (m *Module) Adopt(child *Module) error {
	if m.Find(child.Name) != nil {
		return NewDuplicateNameError(m.Name, KindModule, child.Name)
	}
	for cur := Node(m); cur != nil; cur = cur.Parent() {
		if cur == Node(child) {
			return &OwnAncestorError{Name: child.Name}
		}
	}
	detachElement(child)
	child.parent = m
	m.Elements = append(m.Elements, child)
	touch(m)
	return nil
}

// Remove removes the direct child element with the given name and
// detaches its parent pointer. It fails with NotFoundError when absent.
// Nothing else is deleted: references that now dangle are reported by
// the validator, not cleaned up here.
func (m *Module) Remove(name string) error {
	for i, el := range m.Elements {
		if NameOf(el) == name {
			clearParent(el)
			m.Elements = append(m.Elements[:i], m.Elements[i+1:]...)
			touch(m)
			return nil
		}
	}
	return NewNotFoundError(m.Name, KindInvalid, name)
}

// Entities returns all entities of the module, including those of nested
// modules at any depth. Direct entities come first, then nested modules
// in declaration order. The traversal uses an explicit worklist so deeply
// nested models cannot exhaust the stack.
func (m *Module) Entities() []*LocalEntity {
	var out []*LocalEntity
	queue := []*Module{m}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, el := range cur.Elements {
			switch el := el.(type) {
			case *LocalEntity:
				out = append(out, el)
			case *Module:
				queue = append(queue, el)
			}
		}
	}
	return out
}

// Enums returns all enums of the module, including those of nested
// modules at any depth.
func (m *Module) Enums() []*EnumX {
	var out []*EnumX
	queue := []*Module{m}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, el := range cur.Elements {
			switch el := el.(type) {
			case *EnumX:
				out = append(out, el)
			case *Module:
				queue = append(queue, el)
			}
		}
	}
	return out
}

// Modules returns all nested modules, including transitive ones.
func (m *Module) Modules() []*Module {
	var out []*Module
	queue := []*Module{m}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, el := range cur.Elements {
			if sub, ok := el.(*Module); ok {
				out = append(out, sub)
				queue = append(queue, sub)
			}
		}
	}
	return out
}

// Statistics counts the nodes of the module subtree. The module itself
// is not counted; nested modules are.
func (m *Module) Statistics() Statistics {
	var s Statistics
	s.Modules = len(m.Modules())
	for _, ent := range m.Entities() {
		s.Entities++
		s.Attributes += len(ent.Attributes)
		s.Relations += len(ent.Relations)
		s.Functions += len(ent.Functions)
	}
	s.Enums = len(m.Enums())
	return s
}

// Clone returns a deep copy of the module subtree, detached from any
// parent. References are carried by name and stay unresolved; cloning
// through Model.Clone additionally re-links the resolved ones.
func (m *Module) Clone() *Module { return m.clone() }

// clone returns a deep copy of the module subtree, detached from any
// parent.
func (m *Module) clone() *Module {
	c := &Module{Name: m.Name, meta: m.meta.clone()}
	type frame struct {
		src *Module
		dst *Module
	}
	stack := []frame{{src: m, dst: c}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, el := range f.src.Elements {
			switch el := el.(type) {
			case *Module:
				sub := &Module{Name: el.Name, meta: el.meta.clone(), parent: f.dst}
				f.dst.Elements = append(f.dst.Elements, sub)
				stack = append(stack, frame{src: el, dst: sub})
			case *LocalEntity:
				ce := el.clone()
				ce.parent = f.dst
				f.dst.Elements = append(f.dst.Elements, ce)
			case *EnumX:
				cn := el.clone()
				cn.parent = f.dst
				f.dst.Elements = append(f.dst.Elements, cn)
			}
		}
	}
	return c
}

// detachElement removes el from its current parent's element list, if any.
func detachElement(el Element) {
	switch p := el.Parent().(type) {
	case *Module:
		for i, sib := range p.Elements {
			if sib == el {
				p.Elements = append(p.Elements[:i], p.Elements[i+1:]...)
				break
			}
		}
	case *Model:
		p.detach(el)
	}
	clearParent(el)
}

// clearParent nils the parent pointer of a detached element.
func clearParent(el Element) {
	switch el := el.(type) {
	case *Module:
		el.parent = nil
	case *LocalEntity:
		el.parent = nil
	case *EnumX:
		el.parent = nil
	}
}
