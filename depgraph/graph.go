package depgraph

// Vertex is a node of the dependency graph: a stable string id with a
// human-readable description and free-form actor labels. Description and
// actors feed the rendered reports only; correctness depends on ids alone.
type Vertex struct {
	ID          string
	Description string
	Actors      []string
}

// Graph is a directed dependency graph over string vertex ids. An edge
// (from, to) means "from depends on to". Iteration over vertices and
// edges is deterministic: insertion order.
type Graph struct {
	vertices map[string]*Vertex
	order    []string
	// deps[v] lists the vertices v depends on, in insertion order.
	deps map[string][]string
	// dependents[v] lists the vertices that depend on v.
	dependents map[string][]string
	edges      map[[2]string]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		vertices:   make(map[string]*Vertex),
		deps:       make(map[string][]string),
		dependents: make(map[string][]string),
		edges:      make(map[[2]string]struct{}),
	}
}

// AddVertex registers a vertex. Re-adding an existing id is a no-op; the
// original description and actors are kept.
func (g *Graph) AddVertex(id, description string, actors ...string) {
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = &Vertex{ID: id, Description: description, Actors: append([]string(nil), actors...)}
	g.order = append(g.order, id)
}

// Vertex returns the vertex with the given id, or nil.
func (g *Graph) Vertex(id string) *Vertex {
	return g.vertices[id]
}

// Vertices returns the registered vertices in insertion order.
func (g *Graph) Vertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.vertices[id])
	}
	return out
}

// Len returns the number of registered vertices.
func (g *Graph) Len() int { return len(g.order) }

// AddEdge records that from depends on to. It fails with
// UnknownVertexError if either endpoint was never registered. Duplicate
// edges are ignored.
func (g *Graph) AddEdge(from, to string) error {
	if _, ok := g.vertices[from]; !ok {
		return &UnknownVertexError{ID: from}
	}
	if _, ok := g.vertices[to]; !ok {
		return &UnknownVertexError{ID: to}
	}
	key := [2]string{from, to}
	if _, ok := g.edges[key]; ok {
		return nil
	}
	g.edges[key] = struct{}{}
	g.deps[from] = append(g.deps[from], to)
	g.dependents[to] = append(g.dependents[to], from)
	return nil
}

// Deps returns the vertices id depends on, in insertion order.
func (g *Graph) Deps(id string) []string {
	return append([]string(nil), g.deps[id]...)
}

// Dependents returns the vertices that depend on id, in insertion order.
func (g *Graph) Dependents(id string) []string {
	return append([]string(nil), g.dependents[id]...)
}

// TopologicalSort returns an ordering of all vertices such that every
// dependency appears before its dependents: for each edge (from, to),
// to precedes from. It fails with a CycleError when the edge set
// contains a cycle, since no valid order exists then. Ties are broken
// by vertex insertion order, making the result deterministic.
func (g *Graph) TopologicalSort() ([]string, error) {
	// Kahn's algorithm on the dependency orientation: a vertex is ready
	// once all vertices it depends on have been emitted.
	pending := make(map[string]int, len(g.order))
	for _, id := range g.order {
		pending[id] = len(g.deps[id])
	}
	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if pending[id] == 0 {
			queue = append(queue, id)
		}
	}
	out := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		for _, dep := range g.dependents[id] {
			pending[dep]--
			if pending[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}
	if len(out) < len(g.order) {
		return nil, &CycleError{Cycle: g.ContainsCycle()}
	}
	return out, nil
}

// ContainsCycle looks for a dependency cycle and returns it as an
// ordered list of vertex ids whose first and last elements are equal,
// or nil when the graph is acyclic. This is the concrete counterpart to
// the pass/fail answer of TopologicalSort.
func (g *Graph) ContainsCycle() []string {
	const (
		white = iota // unvisited
		gray         // on the current traversal stack
		black        // fully explored
	)
	color := make(map[string]int, len(g.order))
	parent := make(map[string]string, len(g.order))

	type frame struct {
		id   string
		next int
	}
	for _, start := range g.order {
		if color[start] != white {
			continue
		}
		stack := []frame{{id: start}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := g.deps[f.id]
			if f.next < len(deps) {
				next := deps[f.next]
				f.next++
				switch color[next] {
				case white:
					color[next] = gray
					parent[next] = f.id
					stack = append(stack, frame{id: next})
				case gray:
					// Found a back edge f.id -> next. Reconstruct the
					// cycle by walking the parent map from f.id back to
					// next.
					cycle := []string{next}
					for cur := f.id; cur != next; cur = parent[cur] {
						cycle = append(cycle, cur)
					}
					cycle = append(cycle, next)
					// The parent walk produced the path reversed;
					// restore traversal order.
					for i, j := 1, len(cycle)-2; i < j; i, j = i+1, j-1 {
						cycle[i], cycle[j] = cycle[j], cycle[i]
					}
					return cycle
				}
			} else {
				color[f.id] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	return nil
}
