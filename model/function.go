package model

// Parameter is a named, typed input of a FunctionEntity.
type Parameter struct {
	// Name of the parameter.
	Name string
	// Type is the printable parameter type.
	Type string
}

// FunctionEntity is an operation exposed by a LocalEntity: a name, an
// ordered parameter list and a response type.
type FunctionEntity struct {
	// Name of the function. Unique among the entity's functions.
	Name string
	// Params are the declared parameters, in order.
	Params []Parameter
	// Response is the printable response type. Empty means none.
	Response string

	meta   *Metadata
	entity *LocalEntity
}

// Kind reports the node kind.
func (f *FunctionEntity) Kind() Kind { return KindFunction }

// Meta returns the function metadata.
func (f *FunctionEntity) Meta() *Metadata { return f.meta }

// Parent returns the owning entity.
func (f *FunctionEntity) Parent() Node {
	if f.entity == nil {
		return nil
	}
	return f.entity
}

// Entity returns the owning entity.
func (f *FunctionEntity) Entity() *LocalEntity { return f.entity }

// MethodName returns the PascalCase method name for generated code.
func (f *FunctionEntity) MethodName() string { return Pascal(f.Name) }

// clone returns a deep copy of the function, detached from any entity.
func (f *FunctionEntity) clone() *FunctionEntity {
	return &FunctionEntity{
		Name:     f.Name,
		Params:   append([]Parameter(nil), f.Params...),
		Response: f.Response,
		meta:     f.meta.clone(),
	}
}
