// Package export converts the live model tree to a plain, cycle-free
// value form and back.
//
// FromModel strips all parent back-references, producing a value tree
// safe for any encoder; JSON, YAML and MessagePack codecs are provided.
// Build reconstructs a live tree, re-establishing parent pointers and
// re-linking the references the export recorded as resolved. It never
// resolves what the export left unresolved - run model.Model.Resolve
// explicitly for that.
package export
