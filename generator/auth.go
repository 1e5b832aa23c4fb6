// This file implements credential annotation: deciding, per operation, which
// header carries the configured credential in the generated client.

package generator

import (
	"fmt"
	"sort"

	"github.com/oasbind/oasbind/internal/issues"
	"github.com/oasbind/oasbind/internal/severity"
	"github.com/oasbind/oasbind/parser"
)

// AuthAnnotation tells the emitter how an operation attaches the client
// credential to an outgoing request.
type AuthAnnotation struct {
	// SchemeName is the security scheme name from the document.
	SchemeName string
	// HeaderName is the request header carrying the credential.
	HeaderName string
	// Prefix is prepended to the credential value, e.g. "Bearer ".
	Prefix string
}

// authBinder annotates operation models with credential handling derived from
// the document's security schemes. Unsupported schemes degrade to
// unauthenticated calls with a warning; an explicit empty security list on an
// operation disables authentication silently.
type authBinder struct {
	doc      *parser.SpecDocument
	addIssue func(issues.Issue)

	// warned dedupes per-scheme warnings across operations
	warned map[string]bool
}

func newAuthBinder(doc *parser.SpecDocument, addIssue func(issues.Issue)) *authBinder {
	return &authBinder{doc: doc, addIssue: addIssue, warned: make(map[string]bool)}
}

// Annotate sets the Auth field on every model.
func (ab *authBinder) Annotate(models []*OperationModel) {
	for _, model := range models {
		model.Auth = ab.bind(model)
	}
}

func (ab *authBinder) bind(model *OperationModel) *AuthAnnotation {
	requirements := ab.doc.Security
	if model.op != nil && model.op.Security != nil {
		// A present-but-empty list is the documented opt-out, so it wins
		// over the document default without any diagnostic.
		requirements = model.op.Security
	}
	if len(requirements) == 0 {
		return nil
	}

	schemeName := firstSchemeName(requirements)
	if schemeName == "" {
		return nil
	}

	scheme := ab.lookupScheme(schemeName)
	if scheme == nil {
		ab.warnOnce(schemeName, model.Name,
			fmt.Sprintf("security scheme %q is not defined; calls are generated unauthenticated", schemeName))
		return nil
	}

	switch {
	case scheme.Type == "http" && scheme.Scheme == "bearer":
		return &AuthAnnotation{SchemeName: schemeName, HeaderName: "Authorization", Prefix: "Bearer "}
	case scheme.Type == "apiKey" && scheme.In == parser.ParamInHeader:
		return &AuthAnnotation{SchemeName: schemeName, HeaderName: scheme.Name}
	default:
		ab.warnOnce(schemeName, model.Name,
			fmt.Sprintf("security scheme %q (type %q) is not supported; calls are generated unauthenticated",
				schemeName, scheme.Type))
		return nil
	}
}

// firstSchemeName picks the scheme to honor from a requirement list: the
// first requirement entry, and within it the lexicographically first scheme
// name, since requirement entries are unordered maps.
func firstSchemeName(requirements []parser.SecurityRequirement) string {
	for _, requirement := range requirements {
		if len(requirement) == 0 {
			continue
		}
		names := make([]string, 0, len(requirement))
		for name := range requirement {
			names = append(names, name)
		}
		sort.Strings(names)
		return names[0]
	}
	return ""
}

func (ab *authBinder) lookupScheme(name string) *parser.SecurityScheme {
	if ab.doc.Components == nil {
		return nil
	}
	return ab.doc.Components.SecuritySchemes[name]
}

func (ab *authBinder) warnOnce(schemeName, opName, message string) {
	if ab.warned[schemeName] {
		return
	}
	ab.warned[schemeName] = true
	ab.addIssue(issues.Issue{
		Path:      "components.securitySchemes." + schemeName,
		Operation: opName,
		Message:   message,
		Severity:  severity.SeverityWarning,
	})
}
