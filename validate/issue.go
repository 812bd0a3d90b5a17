package validate

import "fmt"

// Severity grades a reported issue.
type Severity int

// Issue severities.
const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Issue codes. Stable short strings usable by tooling.
const (
	CodeMissingConfig       = "missing-config"
	CodeEmptyModule         = "empty-module"
	CodeDuplicateName       = "duplicate-name"
	CodeEmptyEntity         = "empty-entity"
	CodeUnresolvedReference = "unresolved-reference"
	CodeSensitiveAttribute  = "sensitive-attribute"
	CodeCircularDependency  = "circular-dependency"
)

// Issue is a single structural or heuristic finding. Issues are
// collected, never thrown: a validation run always completes regardless
// of what it finds.
type Issue struct {
	Severity Severity
	// Code is a stable machine-readable identifier.
	Code string
	// Path locates the offending node, e.g. "shop/billing/Invoice/cpf".
	Path string
	// Message is the human-readable description.
	Message string
}

// String renders the issue in "severity path: message [code]" form.
func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s [%s]", i.Severity, i.Path, i.Message, i.Code)
}

// Errors filters the issues down to error severity.
func Errors(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Warnings filters the issues down to warning severity.
func Warnings(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			out = append(out, i)
		}
	}
	return out
}
