// Package parser loads interface description documents into typed
// SpecDocument trees and resolves internal schema references.
//
// The entry point is Parser, created with New:
//
//	p := parser.New()
//	result, err := p.Parse("api.yaml")
//	if err != nil {
//	    // The document is structurally unusable (see binderrors.FormatError).
//	}
//	doc := result.Document
//
// Parse accepts YAML or JSON; the format is detected from content. A document
// missing one of the required top-level sections (paths, components.schemas,
// servers) fails with a binderrors.FormatError before any downstream work
// happens.
//
// RefResolver dereferences #/components/schemas/... references into concrete
// schema trees. Reference cycles are broken by substituting an opaque
// placeholder at the cycle point and recording a warning; only a dangling
// reference (a name absent from the schema table) is an error.
//
// Callers should treat a returned SpecDocument as read-only: it is owned by a
// single generation run and never mutated after load.
package parser
