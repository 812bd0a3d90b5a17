// Package validate walks a model tree and surfaces structural,
// referential and heuristic problems as collected issues.
//
// A Runner performs three scan phases in a fixed order - model-level
// checks (configuration presence, empty modules, duplicate sibling
// names), entity-level checks (empty entities, duplicate member names,
// unresolved references, sensitive-attribute heuristic) and the
// cross-module dependency analysis. Run always completes; findings are
// returned as Issue values graded error or warning, never as errors.
//
// The one exception is ModuleOrder: when the dependency analysis flags
// circular modules, no deterministic processing order exists and the
// call fails fast with a depgraph.CycleError.
//
// The sensitive-attribute list is a configurable Policy (Portuguese and
// English names by default) matched case- and diacritic-insensitively;
// it can be replaced programmatically or loaded from YAML.
package validate
