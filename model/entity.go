package model

import "strings"

// LocalEntity is a business class owned by a module: an ordered set of
// attributes, relations and functions, with optional single inheritance
// through SuperType.
type LocalEntity struct {
	// Name of the entity. Unique among its container's elements.
	Name string
	// Abstract marks the entity as non-instantiable.
	Abstract bool
	// SuperType references the parent entity, if any (single inheritance).
	SuperType *Reference[*LocalEntity]
	// Attributes, Relations and Functions are the entity members, each
	// list ordered by declaration and independently name-unique.
	Attributes []*Attribute
	Relations  []*Relation
	Functions  []*FunctionEntity

	meta   *Metadata
	parent Node // *Module, or *Model for abstract elements
}

// AttributeDesc describes an attribute to be added to an entity.
type AttributeDesc struct {
	Name string
	// Type is the primitive type. Leave zero and set Enum for enum-typed
	// attributes.
	Type DataType
	// Enum is the name of the EnumX providing the value set.
	Enum   string
	Unique bool
	Blank  bool
	Min    *int
	Max    *int
}

// RelationDesc describes a relation to be added to an entity.
type RelationDesc struct {
	Name string
	Rel  Rel
	// Target is the target entity name. Ignored when TargetEntity is set.
	Target string
	// TargetEntity binds the relation to an already known entity,
	// producing a resolved reference.
	TargetEntity *LocalEntity
	Opposite     string
	Required     bool
	Eager        bool
	Cascade      bool
	JoinTable    string
}

// FunctionDesc describes a function to be added to an entity.
type FunctionDesc struct {
	Name     string
	Params   []Parameter
	Response string
}

// Kind reports the node kind.
func (e *LocalEntity) Kind() Kind { return KindEntity }

// Meta returns the entity metadata.
func (e *LocalEntity) Meta() *Metadata { return e.meta }

// Parent returns the owning Module, or the Model for abstract elements.
func (e *LocalEntity) Parent() Node { return e.parent }

// Module returns the owning module, or nil for abstract elements held
// directly by the Model.
func (e *LocalEntity) Module() *Module {
	m, _ := e.parent.(*Module)
	return m
}

// Label returns the snake_case label of the entity, e.g. "order_item".
func (e *LocalEntity) Label() string { return Snake(e.Name) }

// Receiver returns the receiver name for generated methods.
func (e *LocalEntity) Receiver() string {
	return strings.ToLower(e.Name[:1])
}

// Empty reports whether the entity declares no attributes and no relations.
func (e *LocalEntity) Empty() bool {
	return len(e.Attributes) == 0 && len(e.Relations) == 0
}

// AddAttribute adds an attribute described by desc. It fails with
// EmptyNameError on a blank name and DuplicateNameError if an attribute
// with the same name exists.
func (e *LocalEntity) AddAttribute(desc AttributeDesc) (*Attribute, error) {
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return nil, NewEmptyNameError(e.Name, KindAttribute)
	}
	if e.FindAttribute(name) != nil {
		return nil, NewDuplicateNameError(e.Name, KindAttribute, name)
	}
	a := &Attribute{
		Name:   name,
		Type:   desc.Type,
		Unique: desc.Unique,
		Blank:  desc.Blank,
		Min:    desc.Min,
		Max:    desc.Max,
		meta:   newMetadata(),
		entity: e,
	}
	if desc.Enum != "" {
		a.Type = TypeInvalid
		a.Enum = NewReference[*EnumX](desc.Enum)
	}
	e.Attributes = append(e.Attributes, a)
	touch(e)
	return a, nil
}

// AddRelation adds a relation described by desc. It fails with
// EmptyNameError on a blank name and DuplicateNameError if a relation
// with the same name exists.
func (e *LocalEntity) AddRelation(desc RelationDesc) (*Relation, error) {
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return nil, NewEmptyNameError(e.Name, KindRelation)
	}
	if e.FindRelation(name) != nil {
		return nil, NewDuplicateNameError(e.Name, KindRelation, name)
	}
	r := &Relation{
		Name:      name,
		Rel:       desc.Rel,
		Opposite:  desc.Opposite,
		Required:  desc.Required,
		Eager:     desc.Eager,
		Cascade:   desc.Cascade,
		JoinTable: desc.JoinTable,
		meta:      newMetadata(),
		entity:    e,
	}
	switch {
	case desc.TargetEntity != nil:
		r.Target = ResolvedReference(desc.TargetEntity)
	default:
		r.Target = NewReference[*LocalEntity](desc.Target)
	}
	e.Relations = append(e.Relations, r)
	touch(e)
	return r, nil
}

// AddFunction adds a function described by desc. It fails with
// EmptyNameError on a blank name and DuplicateNameError if a function
// with the same name exists.
func (e *LocalEntity) AddFunction(desc FunctionDesc) (*FunctionEntity, error) {
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return nil, NewEmptyNameError(e.Name, KindFunction)
	}
	if e.FindFunction(name) != nil {
		return nil, NewDuplicateNameError(e.Name, KindFunction, name)
	}
	f := &FunctionEntity{
		Name:     name,
		Params:   append([]Parameter(nil), desc.Params...),
		Response: desc.Response,
		meta:     newMetadata(),
		entity:   e,
	}
	e.Functions = append(e.Functions, f)
	touch(e)
	return f, nil
}

// SetSuperType points the entity at its parent type by name.
func (e *LocalEntity) SetSuperType(name string) {
	e.SuperType = NewReference[*LocalEntity](name)
	touch(e)
}

// FindAttribute returns the attribute with the given name, or nil.
func (e *LocalEntity) FindAttribute(name string) *Attribute {
	for _, a := range e.Attributes {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// FindRelation returns the relation with the given name, or nil.
func (e *LocalEntity) FindRelation(name string) *Relation {
	for _, r := range e.Relations {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// FindFunction returns the function with the given name, or nil.
func (e *LocalEntity) FindFunction(name string) *FunctionEntity {
	for _, f := range e.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// RemoveAttribute removes the attribute with the given name. It fails
// with NotFoundError when absent. No cascade: references held elsewhere
// are left for the validator to report.
func (e *LocalEntity) RemoveAttribute(name string) error {
	for i, a := range e.Attributes {
		if a.Name == name {
			a.entity = nil
			e.Attributes = append(e.Attributes[:i], e.Attributes[i+1:]...)
			touch(e)
			return nil
		}
	}
	return NewNotFoundError(e.Name, KindAttribute, name)
}

// RemoveRelation removes the relation with the given name. It fails with
// NotFoundError when absent.
func (e *LocalEntity) RemoveRelation(name string) error {
	for i, r := range e.Relations {
		if r.Name == name {
			r.entity = nil
			e.Relations = append(e.Relations[:i], e.Relations[i+1:]...)
			touch(e)
			return nil
		}
	}
	return NewNotFoundError(e.Name, KindRelation, name)
}

// RemoveFunction removes the function with the given name. It fails with
// NotFoundError when absent.
func (e *LocalEntity) RemoveFunction(name string) error {
	for i, f := range e.Functions {
		if f.Name == name {
			f.entity = nil
			e.Functions = append(e.Functions[:i], e.Functions[i+1:]...)
			touch(e)
			return nil
		}
	}
	return NewNotFoundError(e.Name, KindFunction, name)
}

// Clone returns a deep copy of the entity and its members, detached
// from any parent. References are carried by name and stay unresolved;
// cloning through Model.Clone additionally re-links the resolved ones.
func (e *LocalEntity) Clone() *LocalEntity { return e.clone() }

// clone returns a deep copy of the entity and its members, detached from
// any parent. References are carried by name; Model.clone re-links the
// ones that were resolved in the source.
func (e *LocalEntity) clone() *LocalEntity {
	c := &LocalEntity{
		Name:     e.Name,
		Abstract: e.Abstract,
		meta:     e.meta.clone(),
	}
	if e.SuperType != nil {
		c.SuperType = NewReference[*LocalEntity](e.SuperType.Name())
	}
	for _, a := range e.Attributes {
		ca := a.clone()
		ca.entity = c
		c.Attributes = append(c.Attributes, ca)
	}
	for _, r := range e.Relations {
		cr := r.clone()
		cr.entity = c
		c.Relations = append(c.Relations, cr)
	}
	for _, f := range e.Functions {
		cf := f.clone()
		cf.entity = c
		c.Functions = append(c.Functions, cf)
	}
	return c
}
