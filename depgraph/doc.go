// Package depgraph provides the generic directed dependency graph used
// for module and entity ordering.
//
// Vertices are string ids registered with AddVertex (idempotent); an
// edge (from, to) added with AddEdge records that from depends on to.
// TopologicalSort returns a dependency-before-dependent ordering or a
// CycleError, and ContainsCycle reconstructs a concrete offending cycle
// for reporting. Mermaid and MarkdownTable render convenience reports
// over the sorted graph; both degrade to a fixed sentinel string when
// the graph is cyclic.
//
// A detected cycle is never advisory: callers requesting an order must
// treat it as a blocking error, since no valid processing order exists.
package depgraph
