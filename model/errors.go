package model

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for builder mutation failures.
var (
	// ErrDuplicateName indicates that a sibling with the same name already exists.
	ErrDuplicateName = errors.New("model: duplicate name")
	// ErrEmptyName indicates a blank or whitespace-only identifier.
	ErrEmptyName = errors.New("model: empty name")
	// ErrNotFound indicates that no child with the requested name exists.
	ErrNotFound = errors.New("model: not found")
	// ErrOwnAncestor indicates an attachment that would make a node its own ancestor.
	ErrOwnAncestor = errors.New("model: node cannot become its own ancestor")
)

// DuplicateNameError is returned when an add-operation targets a container
// that already holds a sibling with the given name.
type DuplicateNameError struct {
	Container string // name of the container (module, entity)
	Kind      Kind   // kind of the rejected child
	Name      string
}

// Error implements the error interface.
func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("model: %s %q redeclared in %q", kindLabel(e.Kind), e.Name, e.Container)
}

// Is reports whether the target matches the sentinel error for DuplicateNameError.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// NewDuplicateNameError creates a new DuplicateNameError.
func NewDuplicateNameError(container string, kind Kind, name string) *DuplicateNameError {
	return &DuplicateNameError{Container: container, Kind: kind, Name: name}
}

// EmptyNameError is returned when an add-operation receives a blank or
// whitespace-only identifier.
type EmptyNameError struct {
	Container string
	Kind      Kind
}

// Error implements the error interface.
func (e *EmptyNameError) Error() string {
	return fmt.Sprintf("model: empty name for %s in %q", kindLabel(e.Kind), e.Container)
}

// Is reports whether the target matches the sentinel error for EmptyNameError.
func (e *EmptyNameError) Is(target error) bool {
	return target == ErrEmptyName
}

// NewEmptyNameError creates a new EmptyNameError.
func NewEmptyNameError(container string, kind Kind) *EmptyNameError {
	return &EmptyNameError{Container: container, Kind: kind}
}

// NotFoundError is returned by remove- and lookup-operations when no child
// with the requested name exists in the container.
type NotFoundError struct {
	Container string
	Kind      Kind
	Name      string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model: %s %q not found in %q", kindLabel(e.Kind), e.Name, e.Container)
}

// Is reports whether the target matches the sentinel error for NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(container string, kind Kind, name string) *NotFoundError {
	return &NotFoundError{Container: container, Kind: kind, Name: name}
}

// OwnAncestorError is returned when adopting a module would create a cycle
// in the containment tree.
type OwnAncestorError struct {
	Name string
}

// Error implements the error interface.
func (e *OwnAncestorError) Error() string {
	return fmt.Sprintf("model: module %q cannot be adopted by its own descendant", e.Name)
}

// Is reports whether the target matches the sentinel error for OwnAncestorError.
func (e *OwnAncestorError) Is(target error) bool {
	return target == ErrOwnAncestor
}

// kindLabel returns the lowercase kind name, with a generic fallback for
// operations that accept any element kind.
func kindLabel(k Kind) string {
	if k == KindInvalid {
		return "element"
	}
	return strings.ToLower(k.String())
}

// IsDuplicateNameError reports whether the error is a DuplicateNameError.
func IsDuplicateNameError(err error) bool {
	var dupErr *DuplicateNameError
	return errors.As(err, &dupErr)
}

// IsEmptyNameError reports whether the error is an EmptyNameError.
func IsEmptyNameError(err error) bool {
	var emptyErr *EmptyNameError
	return errors.As(err, &emptyErr)
}

// IsNotFoundError reports whether the error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return errors.As(err, &nfErr)
}
