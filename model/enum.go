package model

// EnumX is a named set of literal values usable as an attribute type.
type EnumX struct {
	// Name of the enum. Unique among its container's elements.
	Name string
	// Values are the literal values, in declaration order.
	Values []string

	meta   *Metadata
	parent Node // *Model or *Module
}

// Kind reports the node kind.
func (e *EnumX) Kind() Kind { return KindEnum }

// Meta returns the enum metadata.
func (e *EnumX) Meta() *Metadata { return e.meta }

// Parent returns the owning Module, or the Model for abstract enums.
func (e *EnumX) Parent() Node { return e.parent }

// Label returns the snake_case label of the enum.
func (e *EnumX) Label() string { return Snake(e.Name) }

// Has reports whether the enum declares the given literal value.
func (e *EnumX) Has(value string) bool {
	for _, v := range e.Values {
		if v == value {
			return true
		}
	}
	return false
}

// AddValue appends a literal value. Re-adding an existing value is a no-op.
func (e *EnumX) AddValue(value string) {
	if e.Has(value) {
		return
	}
	e.Values = append(e.Values, value)
	touch(e)
}

// clone returns a deep copy of the enum, detached from any parent.
func (e *EnumX) clone() *EnumX {
	return &EnumX{
		Name:   e.Name,
		Values: append([]string(nil), e.Values...),
		meta:   e.meta.clone(),
	}
}
