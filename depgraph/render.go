package depgraph

import (
	"fmt"
	"strings"
)

// CycleSentinel is emitted by the renderers instead of a diagram or
// table when the graph contains a dependency cycle.
const CycleSentinel = "(dependency cycle detected - no diagram available)"

// Mermaid renders the graph as Mermaid flowchart text, vertices in
// topological order. When the graph is cyclic it returns CycleSentinel.
func (g *Graph) Mermaid() string {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return CycleSentinel
	}
	var b strings.Builder
	b.WriteString("graph TD\n")
	for _, id := range sorted {
		v := g.vertices[id]
		label := v.ID
		if v.Description != "" {
			label = fmt.Sprintf("%s<br/>%s", v.ID, v.Description)
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", mermaidID(id), label)
	}
	for _, from := range sorted {
		for _, to := range g.deps[from] {
			fmt.Fprintf(&b, "    %s --> %s\n", mermaidID(from), mermaidID(to))
		}
	}
	return b.String()
}

// MarkdownTable renders a dependency summary as a Markdown table,
// vertices in topological order. When the graph is cyclic it returns
// CycleSentinel.
func (g *Graph) MarkdownTable() string {
	sorted, err := g.TopologicalSort()
	if err != nil {
		return CycleSentinel
	}
	var b strings.Builder
	b.WriteString("| Vertex | Description | Depends on | Actors |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, id := range sorted {
		v := g.vertices[id]
		deps := strings.Join(g.deps[id], ", ")
		if deps == "" {
			deps = "-"
		}
		actors := strings.Join(v.Actors, ", ")
		if actors == "" {
			actors = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", v.ID, v.Description, deps, actors)
	}
	return b.String()
}

// mermaidID strips the characters Mermaid treats as syntax from a
// vertex id.
func mermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', '-', '[', ']', '(', ')', '"', '{', '}':
			return '_'
		}
		return r
	}, id)
}
