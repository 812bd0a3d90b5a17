package model

// Kind discriminates the node types of the model tree. Every node reports
// its kind through the Node interface, which keeps consumers on a closed
// set of cases instead of open-ended type assertions.
type Kind int

// Node kinds.
const (
	KindInvalid Kind = iota
	KindModel
	KindModule
	KindEntity
	KindEnum
	KindAttribute
	KindRelation
	KindFunction
)

// String returns the kind name.
func (k Kind) String() string {
	s := "Invalid"
	switch k {
	case KindModel:
		s = "Model"
	case KindModule:
		s = "Module"
	case KindEntity:
		s = "Entity"
	case KindEnum:
		s = "Enum"
	case KindAttribute:
		s = "Attribute"
	case KindRelation:
		s = "Relation"
	case KindFunction:
		s = "Function"
	}
	return s
}

// Node is implemented by every element of the model tree.
type Node interface {
	// Kind reports the node kind.
	Kind() Kind
	// Meta returns the node metadata. Never nil for nodes created
	// through builder operations.
	Meta() *Metadata
	// Parent returns the owning node, or nil for the root Model.
	Parent() Node
}

// Element is a direct child of a Module or an abstract element of the
// Model: a nested Module, a LocalEntity, or an EnumX. The interface is
// sealed; no types outside this package satisfy it.
type Element interface {
	Node
	isElement()
}

func (m *Module) isElement()      {}
func (e *LocalEntity) isElement() {}
func (e *EnumX) isElement()       {}

// AsModule reports whether the element is a nested Module.
func AsModule(e Element) (*Module, bool) {
	m, ok := e.(*Module)
	return m, ok
}

// AsEntity reports whether the element is a LocalEntity.
func AsEntity(e Element) (*LocalEntity, bool) {
	ent, ok := e.(*LocalEntity)
	return ent, ok
}

// AsEnum reports whether the element is an EnumX.
func AsEnum(e Element) (*EnumX, bool) {
	en, ok := e.(*EnumX)
	return en, ok
}

// NameOf returns the name of any node in the tree.
func NameOf(n Node) string {
	switch v := n.(type) {
	case *Model:
		return v.Name
	case *Module:
		return v.Name
	case *LocalEntity:
		return v.Name
	case *EnumX:
		return v.Name
	case *Attribute:
		return v.Name
	case *Relation:
		return v.Name
	case *FunctionEntity:
		return v.Name
	}
	return ""
}

// PathOf returns the slash-separated path of a node from the root Model,
// e.g. "shop/billing/Invoice/number". It walks parent pointers with an
// explicit loop, never recursion.
func PathOf(n Node) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.Parent() {
		parts = append(parts, NameOf(cur))
	}
	// Reverse in place.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += "/" + p
	}
	return out
}
