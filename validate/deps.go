package validate

import (
	"github.com/DaviAlvarenga01/module-doc-lib-sub000/depgraph"
	"github.com/DaviAlvarenga01/module-doc-lib-sub000/model"
)

// moduleDeps is the result of the cross-module dependency analysis:
// per-module dependency and dependent sets keyed by qualified module
// name, plus the modules flagged as circular.
type moduleDeps struct {
	order      []string            // qualified names, declaration order
	deps       map[string][]string // module -> modules it depends on
	dependents map[string][]string // module -> modules depending on it
	circular   []string
}

// analyzeModules scans every entity's relations and supertype reference
// and registers a module dependency whenever the resolved target lives
// in a different module.
func analyzeModules(m *model.Model) *moduleDeps {
	d := &moduleDeps{
		deps:       make(map[string][]string),
		dependents: make(map[string][]string),
	}
	modules := m.Modules()
	for _, mod := range modules {
		d.order = append(d.order, mod.QualifiedName())
	}
	seen := make(map[[2]string]struct{})
	record := func(from, to *model.Module) {
		if from == nil || to == nil || from == to {
			return
		}
		key := [2]string{from.QualifiedName(), to.QualifiedName()}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		d.deps[key[0]] = append(d.deps[key[0]], key[1])
		d.dependents[key[1]] = append(d.dependents[key[1]], key[0])
	}
	for _, mod := range modules {
		for _, ent := range mod.Entities() {
			// Nested entities belong to their direct module, not mod.
			owner := ent.Module()
			if owner != mod {
				continue
			}
			for _, rel := range ent.Relations {
				if target, ok := rel.Target.Get(); ok {
					record(owner, target.Module())
				}
			}
			if ref := ent.SuperType; ref != nil {
				if target, ok := ref.Get(); ok {
					record(owner, target.Module())
				}
			}
		}
	}
	d.circular = d.findCircular()
	return d
}

// findCircular flags every module sitting on a dependency cycle, using
// an iterative DFS with a recursion-stack marker over the per-module
// dependency edges.
func (d *moduleDeps) findCircular() []string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(d.order))
	onCycle := make(map[string]struct{})
	parent := make(map[string]string)

	type frame struct {
		id   string
		next int
	}
	for _, start := range d.order {
		if color[start] != white {
			continue
		}
		stack := []frame{{id: start}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			deps := d.deps[f.id]
			if f.next < len(deps) {
				next := deps[f.next]
				f.next++
				switch color[next] {
				case white:
					color[next] = gray
					parent[next] = f.id
					stack = append(stack, frame{id: next})
				case gray:
					// Back edge: every module from next up to f.id is
					// on the cycle.
					onCycle[next] = struct{}{}
					for cur := f.id; cur != next; cur = parent[cur] {
						onCycle[cur] = struct{}{}
					}
				}
			} else {
				color[f.id] = black
				stack = stack[:len(stack)-1]
			}
		}
	}
	var out []string
	for _, id := range d.order {
		if _, ok := onCycle[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// ModuleDependencies returns, for each module (qualified name), the
// modules it depends on. Run must have completed.
func (r *Runner) ModuleDependencies() map[string][]string {
	r.ensureDeps()
	out := make(map[string][]string, len(r.deps.deps))
	for k, v := range r.deps.deps {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ModuleDependents returns, for each module (qualified name), the
// modules that depend on it.
func (r *Runner) ModuleDependents() map[string][]string {
	r.ensureDeps()
	out := make(map[string][]string, len(r.deps.dependents))
	for k, v := range r.deps.dependents {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// CircularModules returns the qualified names of modules flagged as
// circularly dependent.
func (r *Runner) CircularModules() []string {
	r.ensureDeps()
	return append([]string(nil), r.deps.circular...)
}

// Graph builds a depgraph.Graph over the per-module dependency sets.
// Vertex descriptions carry the module descriptions from metadata.
func (r *Runner) Graph() *depgraph.Graph {
	r.ensureDeps()
	g := depgraph.New()
	byName := make(map[string]*model.Module)
	for _, mod := range r.model.Modules() {
		byName[mod.QualifiedName()] = mod
	}
	for _, qname := range r.deps.order {
		desc := ""
		var actors []string
		if mod := byName[qname]; mod != nil && mod.Meta() != nil {
			desc = mod.Meta().Description
			actors = mod.Meta().Tags
		}
		g.AddVertex(qname, desc, actors...)
	}
	for _, from := range r.deps.order {
		for _, to := range r.deps.deps[from] {
			// Endpoints are registered above; AddEdge cannot fail here.
			_ = g.AddEdge(from, to)
		}
	}
	return g
}

// ModuleOrder returns the topological processing order of the model's
// modules: dependencies before dependents. If the prior analysis flagged
// any module as circular the call fails fast with a CycleError before
// attempting a sort, ends the run in the Failed state, and no order is
// produced; a deterministic order is impossible.
func (r *Runner) ModuleOrder() ([]string, error) {
	r.ensureDeps()
	if len(r.deps.circular) > 0 {
		r.state = StateFailed
		g := r.Graph()
		return nil, &depgraph.CycleError{Cycle: g.ContainsCycle()}
	}
	order, err := r.Graph().TopologicalSort()
	if err != nil {
		r.state = StateFailed
		return nil, err
	}
	return order, nil
}

// ensureDeps lazily runs the cross-module analysis for callers that ask
// for ordering data without a full Run.
func (r *Runner) ensureDeps() {
	if r.deps == nil {
		r.deps = analyzeModules(r.model)
	}
}
