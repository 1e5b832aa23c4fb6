// Package severity defines the shared severity scale for generation issues.
package severity

// Severity indicates the severity level of an issue.
type Severity string

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo Severity = "info"
	// SeverityWarning indicates shapes that did not generate precisely
	SeverityWarning Severity = "warning"
	// SeverityError indicates validation errors
	SeverityError Severity = "error"
	// SeverityCritical indicates features that cannot be generated at all
	SeverityCritical Severity = "critical"
)

// IsValid reports whether s is one of the defined severity levels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityError, SeverityCritical:
		return true
	}
	return false
}
