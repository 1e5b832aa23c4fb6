// Package issues provides a unified issue type for generation problems.
package issues

import (
	"fmt"

	"github.com/oasbind/oasbind/internal/severity"
)

// Issue represents a single problem found while modeling or emitting an
// operation. Issues never abort a run by themselves; the generator decides
// based on severity counts.
type Issue struct {
	// Path is the document path to the problematic node
	// (e.g., "paths./search.get.parameters.pagesize")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Operation is the binding name of the affected operation, when known
	Operation string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	if i.Operation != "" {
		return fmt.Sprintf("%s %s [%s]: %s", symbol, i.Path, i.Operation, i.Message)
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Path, i.Message)
}
