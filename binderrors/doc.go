// Package binderrors provides structured error types for oasbind.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of errors and implement appropriate recovery strategies.
//
// # Error Categories
//
//   - FormatError: unparsable documents and missing required sections
//   - ReferenceError: dangling schema references
//   - ConfigError: invalid generator configuration or input options
//
// Schema shapes the generator cannot model precisely are deliberately NOT
// errors: they degrade to opaque types and are reported as warnings on the
// generation result, so a single awkward operation never fails a whole run.
//
// # Usage with errors.Is
//
//	result, err := parser.New().Parse("api.yaml")
//	if err != nil {
//	    if errors.Is(err, binderrors.ErrFormat) {
//	        // The document is structurally unusable; nothing was generated.
//	    }
//	}
package binderrors
