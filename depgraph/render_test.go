package depgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMermaid(t *testing.T) {
	g := New()
	g.AddVertex("sales", "Sales module")
	g.AddVertex("billing", "")
	require.NoError(t, g.AddEdge("billing", "sales"))

	out := g.Mermaid()
	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `sales["sales<br/>Sales module"]`)
	assert.Contains(t, out, "billing --> sales")
}

func TestMermaidEscapesIDs(t *testing.T) {
	g := New()
	g.AddVertex("shop.sales", "")
	out := g.Mermaid()
	assert.Contains(t, out, "shop_sales")
}

func TestMarkdownTable(t *testing.T) {
	g := New()
	g.AddVertex("sales", "Sales module", "backoffice")
	g.AddVertex("billing", "Billing")
	require.NoError(t, g.AddEdge("billing", "sales"))

	out := g.MarkdownTable()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "| Vertex | Description | Depends on | Actors |", lines[0])
	// Topological order: the dependency row comes first.
	assert.Contains(t, lines[2], "| sales |")
	assert.Contains(t, lines[2], "backoffice")
	assert.Contains(t, lines[3], "| billing |")
	assert.Contains(t, lines[3], "sales")
}

func TestRenderCycleSentinel(t *testing.T) {
	g := New()
	g.AddVertex("a", "")
	g.AddVertex("b", "")
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "a"))

	assert.Equal(t, CycleSentinel, g.Mermaid())
	assert.Equal(t, CycleSentinel, g.MarkdownTable())
}
