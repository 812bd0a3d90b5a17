package model

// Reference points at another node of the tree. It is either unresolved,
// holding only the target name, or resolved, holding the target itself.
// Resolution is a distinct, idempotent pass (see Model.Resolve); a
// reference that is still unresolved when validation runs is reported as
// a referential-integrity issue, never silently ignored.
type Reference[T Node] struct {
	name     string
	target   T
	resolved bool
}

// NewReference creates an unresolved reference to the given name.
func NewReference[T Node](name string) *Reference[T] {
	return &Reference[T]{name: name}
}

// ResolvedReference creates a reference already bound to its target.
func ResolvedReference[T Node](target T) *Reference[T] {
	return &Reference[T]{name: NameOf(target), target: target, resolved: true}
}

// Name returns the referenced name. It is available in both states.
func (r *Reference[T]) Name() string {
	return r.name
}

// IsResolved reports whether the reference is bound to a target.
func (r *Reference[T]) IsResolved() bool {
	return r != nil && r.resolved
}

// Get returns the target and whether the reference is resolved.
func (r *Reference[T]) Get() (T, bool) {
	if r == nil || !r.resolved {
		var zero T
		return zero, false
	}
	return r.target, true
}

// Resolve binds the reference to the given target. Resolving an already
// resolved reference to the same target is a no-op; rebinding replaces
// the target.
func (r *Reference[T]) Resolve(target T) {
	r.target = target
	r.resolved = true
}
