package binderrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrFormat indicates the input document could not be parsed or is
	// missing a required top-level section.
	ErrFormat = errors.New("format error")

	// ErrReference indicates a schema reference failed to resolve.
	ErrReference = errors.New("reference error")

	// ErrCircularReference indicates a circular schema reference was detected.
	// Cycles degrade to opaque placeholders during generation; this sentinel
	// exists for callers that resolve references directly.
	ErrCircularReference = errors.New("circular reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// FormatError represents a failure to parse an interface description document,
// or a document missing one of the required top-level sections (paths, the
// reusable schema table, servers).
type FormatError struct {
	// Path is the file path or source identifier
	Path string
	// Section is the required document section that is missing or invalid
	// (e.g., "paths", "components.schemas", "servers"). Empty for raw
	// deserialization failures.
	Section string
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *FormatError) Error() string {
	msg := "format error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Section != "" {
		msg += " at " + e.Section
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// ReferenceError represents a failure to resolve a schema reference.
// Dangling references (a name not present in the reusable schema table) are
// the only fatal case; circular references degrade gracefully and set
// IsCircular when surfaced directly.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsCircular is true if this error is due to a circular reference
	IsCircular bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	if target == ErrCircularReference && e.IsCircular {
		return true
	}
	return false
}

// ConfigError represents an invalid generator configuration or input option.
type ConfigError struct {
	// Option is the offending option name
	Option string
	// Message describes the problem
	Message string
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += ": " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewFormatError creates a FormatError for a missing required section.
func NewFormatError(path, section, message string) *FormatError {
	return &FormatError{Path: path, Section: section, Message: message}
}

// WrapParseFailure creates a FormatError wrapping a deserialization failure.
func WrapParseFailure(path string, cause error) *FormatError {
	return &FormatError{Path: path, Message: "cannot parse document", Cause: cause}
}

// NewDanglingRefError creates a ReferenceError for a reference whose target
// name is not present in the reusable schema table.
func NewDanglingRefError(ref string) *ReferenceError {
	return &ReferenceError{Ref: ref, Message: fmt.Sprintf("no schema named %q in the document", refName(ref))}
}

// refName returns the final path segment of a reference string.
func refName(ref string) string {
	for i := len(ref) - 1; i >= 0; i-- {
		if ref[i] == '/' {
			return ref[i+1:]
		}
	}
	return ref
}
