package model

import (
	"time"

	"github.com/google/uuid"
)

// Metadata carries the descriptive and audit information attached to every
// node of the tree. Builders stamp CreatedAt/ModifiedAt on creation and
// touch ModifiedAt up the ancestor chain on every mutation.
type Metadata struct {
	// ID is a stable identifier assigned at creation time.
	ID uuid.UUID
	// Description is free-form documentation text.
	Description string
	// Tags are free-form labels.
	Tags []string
	// Author of the node.
	Author string
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time
	// ModifiedAt is the last mutation timestamp.
	ModifiedAt time.Time
}

// now is swappable in tests for deterministic timestamps.
var now = time.Now

// newMetadata returns metadata stamped for a freshly created node.
func newMetadata() *Metadata {
	ts := now()
	return &Metadata{
		ID:         uuid.New(),
		CreatedAt:  ts,
		ModifiedAt: ts,
	}
}

// clone returns an independently allocated copy of the metadata.
func (m *Metadata) clone() *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	if m.Tags != nil {
		c.Tags = append([]string(nil), m.Tags...)
	}
	return &c
}

// touch updates the ModifiedAt timestamp of the node and all its ancestors.
func touch(n Node) {
	ts := now()
	for cur := n; cur != nil; cur = cur.Parent() {
		if meta := cur.Meta(); meta != nil {
			meta.ModifiedAt = ts
		}
	}
}
