package model

import "strings"

// Config carries the model-wide settings consumers (code generators)
// read. The validator reports a missing Config as an error.
type Config struct {
	// Version of the model format.
	Version string
	// Repository is the canonical location of the modeled project.
	Repository string
	// Options are free-form generator settings.
	Options map[string]string
}

// clone returns an independently allocated copy of the config.
func (c *Config) clone() *Config {
	if c == nil {
		return nil
	}
	cc := &Config{Version: c.Version, Repository: c.Repository}
	if c.Options != nil {
		cc.Options = make(map[string]string, len(c.Options))
		for k, v := range c.Options {
			cc.Options[k] = v
		}
	}
	return cc
}

// Model is the root of the tree. It owns the top-level modules and the
// abstract elements (entities and enums bound to no module).
type Model struct {
	// Name of the model.
	Name string
	// Config are the model-wide settings.
	Config *Config
	// TopModules are the top-level modules, in declaration order.
	TopModules []*Module
	// AbstractElements are entities and enums owned directly by the
	// model, in declaration order.
	AbstractElements []Element

	meta *Metadata
}

// NewModel creates a named model root.
func NewModel(name string) *Model {
	return &Model{Name: name, meta: newMetadata()}
}

// Kind reports the node kind.
func (m *Model) Kind() Kind { return KindModel }

// Meta returns the model metadata.
func (m *Model) Meta() *Metadata { return m.meta }

// Parent returns nil: the model is the tree root.
func (m *Model) Parent() Node { return nil }

// SetConfig attaches the model configuration.
func (m *Model) SetConfig(c *Config) {
	m.Config = c
	touch(m)
}

// AddModule creates a top-level module. It fails with EmptyNameError on
// a blank name and DuplicateNameError if a top-level module or abstract
// element already has the name.
func (m *Model) AddModule(name string) (*Module, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindModule)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindModule, name)
	}
	mod := &Module{Name: name, meta: newMetadata(), parent: m}
	m.TopModules = append(m.TopModules, mod)
	touch(m)
	return mod, nil
}

// AddAbstractEntity creates an entity owned directly by the model,
// outside any module. Such entities usually serve as shared supertypes.
func (m *Model) AddAbstractEntity(name string) (*LocalEntity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindEntity)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindEntity, name)
	}
	ent := &LocalEntity{Name: name, Abstract: true, meta: newMetadata(), parent: m}
	m.AbstractElements = append(m.AbstractElements, ent)
	touch(m)
	return ent, nil
}

// AddAbstractEnum creates an enum owned directly by the model.
func (m *Model) AddAbstractEnum(name string, values ...string) (*EnumX, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewEmptyNameError(m.Name, KindEnum)
	}
	if m.Find(name) != nil {
		return nil, NewDuplicateNameError(m.Name, KindEnum, name)
	}
	en := &EnumX{Name: name, Values: append([]string(nil), values...), meta: newMetadata(), parent: m}
	m.AbstractElements = append(m.AbstractElements, en)
	touch(m)
	return en, nil
}

// Find returns the top-level module or abstract element with the given
// name, or nil.
func (m *Model) Find(name string) Element {
	for _, mod := range m.TopModules {
		if mod.Name == name {
			return mod
		}
	}
	for _, el := range m.AbstractElements {
		if NameOf(el) == name {
			return el
		}
	}
	return nil
}

// FindModule returns the top-level module with the given name, or nil.
func (m *Model) FindModule(name string) *Module {
	for _, mod := range m.TopModules {
		if mod.Name == name {
			return mod
		}
	}
	return nil
}

// Remove removes the top-level module or abstract element with the given
// name, detaching its parent pointer. It fails with NotFoundError when
// absent. Dangling references left behind are the caller's concern; the
// validator reports them.
func (m *Model) Remove(name string) error {
	for i, mod := range m.TopModules {
		if mod.Name == name {
			mod.parent = nil
			m.TopModules = append(m.TopModules[:i], m.TopModules[i+1:]...)
			touch(m)
			return nil
		}
	}
	for i, el := range m.AbstractElements {
		if NameOf(el) == name {
			clearParent(el)
			m.AbstractElements = append(m.AbstractElements[:i], m.AbstractElements[i+1:]...)
			touch(m)
			return nil
		}
	}
	return NewNotFoundError(m.Name, KindInvalid, name)
}

// detach removes an abstract element from the model without touching
// timestamps. Used by re-parenting.
func (m *Model) detach(el Element) {
	for i, cur := range m.AbstractElements {
		if cur == el {
			m.AbstractElements = append(m.AbstractElements[:i], m.AbstractElements[i+1:]...)
			return
		}
	}
}

// Modules returns every module of the model, nested ones included.
func (m *Model) Modules() []*Module {
	var out []*Module
	for _, mod := range m.TopModules {
		out = append(out, mod)
		out = append(out, mod.Modules()...)
	}
	return out
}

// Entities returns every entity of the model: abstract elements first,
// then module entities, nested modules included.
func (m *Model) Entities() []*LocalEntity {
	var out []*LocalEntity
	for _, el := range m.AbstractElements {
		if ent, ok := AsEntity(el); ok {
			out = append(out, ent)
		}
	}
	for _, mod := range m.TopModules {
		out = append(out, mod.Entities()...)
	}
	return out
}

// Enums returns every enum of the model, nested modules included.
func (m *Model) Enums() []*EnumX {
	var out []*EnumX
	for _, el := range m.AbstractElements {
		if en, ok := AsEnum(el); ok {
			out = append(out, en)
		}
	}
	for _, mod := range m.TopModules {
		out = append(out, mod.Enums()...)
	}
	return out
}

// Statistics are the node counts of a model tree.
type Statistics struct {
	Modules    int
	Entities   int
	Attributes int
	Relations  int
	Functions  int
	Enums      int
}

// Statistics counts the nodes of the model.
func (m *Model) Statistics() Statistics {
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

// Clone returns a deep copy of the model: a structurally identical tree
// sharing no mutable state with the source. References that were
// resolved in the source are re-linked to their counterparts inside the
// clone; unresolved references stay unresolved.
func (m *Model) Clone() *Model {
	c := &Model{
		Name:   m.Name,
		Config: m.Config.clone(),
		meta:   m.meta.clone(),
	}
	for _, mod := range m.TopModules {
		cm := mod.clone()
		cm.parent = c
		c.TopModules = append(c.TopModules, cm)
	}
	for _, el := range m.AbstractElements {
		switch el := el.(type) {
		case *LocalEntity:
			ce := el.clone()
			ce.parent = c
			c.AbstractElements = append(c.AbstractElements, ce)
		case *EnumX:
			cn := el.clone()
			cn.parent = c
			c.AbstractElements = append(c.AbstractElements, cn)
		}
	}
	// Node clones carry references by name only. Walk source and clone
	// side by side and re-resolve exactly the references that were
	// resolved in the source.
	srcEnts, dstEnts := m.Entities(), c.Entities()
	for i := range srcEnts {
		relinkEntity(srcEnts[i], dstEnts[i], c)
	}
	return c
}

// relinkEntity restores the resolution state of dst's references to
// mirror src, resolving against the cloned tree.
func relinkEntity(src, dst *LocalEntity, root *Model) {
	if src.SuperType.IsResolved() {
		if target, ok := src.SuperType.Get(); ok {
			if ct := findEntityByPath(root, target); ct != nil {
				dst.SuperType.Resolve(ct)
			}
		}
	}
	for i, rel := range src.Relations {
		if !rel.Target.IsResolved() {
			continue
		}
		if target, ok := rel.Target.Get(); ok {
			if ct := findEntityByPath(root, target); ct != nil {
				dst.Relations[i].Target.Resolve(ct)
			}
		}
	}
	for i, attr := range src.Attributes {
		if !attr.Enum.IsResolved() {
			continue
		}
		if target, ok := attr.Enum.Get(); ok {
			if ct := findEnumByPath(root, target); ct != nil {
				dst.Attributes[i].Enum.Resolve(ct)
			}
		}
	}
}

// findEntityByPath locates the clone counterpart of an entity by its
// tree path.
func findEntityByPath(root *Model, src *LocalEntity) *LocalEntity {
	path := PathOf(src)
	for _, ent := range root.Entities() {
		if PathOf(ent) == path {
			return ent
		}
	}
	return nil
}

// findEnumByPath locates the clone counterpart of an enum by its tree
// path, so same-named enums in sibling modules cannot cross-link.
func findEnumByPath(root *Model, src *EnumX) *EnumX {
	path := PathOf(src)
	for _, en := range root.Enums() {
		if PathOf(en) == path {
			return en
		}
	}
	return nil
}
