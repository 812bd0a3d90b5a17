package validate

import (
	"fmt"

	"github.com/DaviAlvarenga01/module-doc-lib-sub000/model"
)

// State is the phase of a validation run. A run always terminates at
// StateDone whether or not issues were found; only ModuleOrder can end
// in StateFailed, and only on a genuine dependency cycle.
type State int

// Run states.
const (
	StateIdle State = iota
	StateScanningModel
	StateScanningEntities
	StateScanningModules
	StateDone
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanningModel:
		return "Scanning(model)"
	case StateScanningEntities:
		return "Scanning(entity)"
	case StateScanningModules:
		return "Scanning(cross-module)"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	}
	return "Invalid"
}

// Runner walks a model tree and collects validation issues: structural
// problems at the model level, referential and heuristic problems at
// the entity level, and cross-module dependency problems. Checks report
// and continue; nothing short of a requested ordering ever fails.
type Runner struct {
	model  *model.Model
	policy *Policy
	state  State
	issues []Issue
	deps   *moduleDeps
}

// Option configures a Runner.
type Option func(*Runner)

// WithPolicy replaces the default sensitive-attribute policy.
func WithPolicy(p *Policy) Option {
	return func(r *Runner) { r.policy = p }
}

// NewRunner creates a validation runner over the given model.
func NewRunner(m *model.Model, opts ...Option) *Runner {
	r := &Runner{model: m, policy: DefaultPolicy(), state: StateIdle}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current run state.
func (r *Runner) State() State { return r.state }

// Issues returns the findings collected so far.
func (r *Runner) Issues() []Issue { return r.issues }

// Run executes the three scan phases in order and returns all collected
// issues. Running again restarts from a clean slate.
func (r *Runner) Run() []Issue {
	r.issues = nil
	r.deps = nil

	r.state = StateScanningModel
	r.scanModel()
	r.state = StateScanningEntities
	for _, ent := range r.model.Entities() {
		r.scanEntity(ent)
	}
	r.state = StateScanningModules
	r.deps = analyzeModules(r.model)
	for _, qname := range r.deps.circular {
		r.report(Issue{
			Severity: SeverityError,
			Code:     CodeCircularDependency,
			Path:     qname,
			Message:  fmt.Sprintf("module %q participates in a circular dependency", qname),
		})
	}
	r.state = StateDone
	return r.issues
}

func (r *Runner) report(i Issue) {
	r.issues = append(r.issues, i)
}

// scanModel performs the model-level checks: configuration presence,
// empty modules and duplicate sibling names.
func (r *Runner) scanModel() {
	if r.model.Config == nil {
		r.report(Issue{
			Severity: SeverityError,
			Code:     CodeMissingConfig,
			Path:     r.model.Name,
			Message:  "model has no configuration",
		})
	}
	r.checkSiblings(r.model.Name, topLevelElements(r.model))
	for _, mod := range r.model.Modules() {
		if mod.Empty() {
			r.report(Issue{
				Severity: SeverityWarning,
				Code:     CodeEmptyModule,
				Path:     model.PathOf(mod),
				Message:  fmt.Sprintf("module %q has no elements", mod.Name),
			})
		}
		r.checkSiblings(model.PathOf(mod), mod.Elements)
	}
}

// checkSiblings reports duplicate names among a container's direct
// children. Builders refuse duplicates, but imported or hand-assembled
// trees may carry them.
func (r *Runner) checkSiblings(path string, elements []model.Element) {
	seen := make(map[string]struct{}, len(elements))
	for _, el := range elements {
		name := model.NameOf(el)
		if _, ok := seen[name]; ok {
			r.report(Issue{
				Severity: SeverityError,
				Code:     CodeDuplicateName,
				Path:     path,
				Message:  fmt.Sprintf("duplicate element name %q", name),
			})
			continue
		}
		seen[name] = struct{}{}
	}
}

// scanEntity performs the entity-level checks: emptiness, duplicate
// member names, unresolved references and the sensitive-data heuristic.
func (r *Runner) scanEntity(ent *model.LocalEntity) {
	path := model.PathOf(ent)
	if ent.Empty() && !ent.Abstract {
		r.report(Issue{
			Severity: SeverityWarning,
			Code:     CodeEmptyEntity,
			Path:     path,
			Message:  fmt.Sprintf("entity %q has no attributes and no relations", ent.Name),
		})
	}
	r.checkMemberNames(path, "attribute", attributeNames(ent))
	r.checkMemberNames(path, "relation", relationNames(ent))
	r.checkMemberNames(path, "function", functionNames(ent))

	if ref := ent.SuperType; ref != nil && !ref.IsResolved() {
		r.report(Issue{
			Severity: SeverityError,
			Code:     CodeUnresolvedReference,
			Path:     path,
			Message:  fmt.Sprintf("supertype %q cannot be resolved", ref.Name()),
		})
	}
	for _, rel := range ent.Relations {
		if rel.Target == nil || !rel.Target.IsResolved() {
			name := ""
			if rel.Target != nil {
				name = rel.Target.Name()
			}
			r.report(Issue{
				Severity: SeverityError,
				Code:     CodeUnresolvedReference,
				Path:     path + "/" + rel.Name,
				Message:  fmt.Sprintf("relation target %q cannot be resolved", name),
			})
		}
	}
	for _, attr := range ent.Attributes {
		if attr.Enum != nil && !attr.Enum.IsResolved() {
			r.report(Issue{
				Severity: SeverityError,
				Code:     CodeUnresolvedReference,
				Path:     path + "/" + attr.Name,
				Message:  fmt.Sprintf("enum %q cannot be resolved", attr.Enum.Name()),
			})
		}
		if r.policy.Matches(attr.Name) {
			r.report(Issue{
				Severity: SeverityWarning,
				Code:     CodeSensitiveAttribute,
				Path:     path + "/" + attr.Name,
				Message:  fmt.Sprintf("attribute %q looks like sensitive data; review compliance requirements", attr.Name),
			})
		}
	}
}

func (r *Runner) checkMemberNames(path, kind string, names []string) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			r.report(Issue{
				Severity: SeverityError,
				Code:     CodeDuplicateName,
				Path:     path,
				Message:  fmt.Sprintf("duplicate %s name %q", kind, name),
			})
			continue
		}
		seen[name] = struct{}{}
	}
}

func topLevelElements(m *model.Model) []model.Element {
	out := make([]model.Element, 0, len(m.TopModules)+len(m.AbstractElements))
	for _, mod := range m.TopModules {
		out = append(out, mod)
	}
	out = append(out, m.AbstractElements...)
	return out
}

func attributeNames(e *model.LocalEntity) []string {
	out := make([]string, len(e.Attributes))
	for i, a := range e.Attributes {
		out[i] = a.Name
	}
	return out
}

func relationNames(e *model.LocalEntity) []string {
	out := make([]string, len(e.Relations))
	for i, r := range e.Relations {
		out[i] = r.Name
	}
	return out
}

func functionNames(e *model.LocalEntity) []string {
	out := make([]string, len(e.Functions))
	for i, f := range e.Functions {
		out[i] = f.Name
	}
	return out
}
