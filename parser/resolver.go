package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oasbind/oasbind/binderrors"
)

// SchemaRefPrefix is the only reference form the resolver understands:
// a pointer into the document's reusable schema table.
const SchemaRefPrefix = "#/components/schemas/"

// RefResolver resolves schema references against a document's reusable schema
// table. Create one per resolution run; it is not safe for concurrent use.
//
// Reference cycles are a graceful degradation, not an error: when a reference
// already on the current resolution path is revisited, the resolver
// substitutes an opaque placeholder schema at the cycle point and records a
// warning. Only a dangling reference (a name absent from the table) fails.
type RefResolver struct {
	schemas map[string]*Schema
	// resolving tracks refs currently being resolved in the recursion stack
	resolving map[string]bool
	// warned dedupes cycle warnings per ref identity
	warned map[string]bool
	// warnings accumulates cycle degradation messages across Resolve calls
	warnings []string
}

// NewRefResolver creates a resolver over the document's reusable schema table.
// A document without a schema table resolves only ref-free schemas.
func NewRefResolver(doc *SpecDocument) *RefResolver {
	schemas := map[string]*Schema{}
	if doc != nil && doc.Components != nil && doc.Components.Schemas != nil {
		schemas = doc.Components.Schemas
	}
	return &RefResolver{
		schemas:   schemas,
		resolving: make(map[string]bool),
		warned:    make(map[string]bool),
	}
}

// Warnings returns the cycle degradation messages recorded so far, in a
// deterministic order.
func (r *RefResolver) Warnings() []string {
	out := append([]string(nil), r.warnings...)
	sort.Strings(out)
	return out
}

// Resolve returns a fully dereferenced copy of the schema. The input schema
// and the document's schema table are never mutated.
func (r *RefResolver) Resolve(schema *Schema) (*Schema, error) {
	if schema == nil {
		return nil, nil
	}

	if schema.Ref != "" {
		return r.resolveRef(schema.Ref)
	}

	return r.resolveChildren(schema)
}

func (r *RefResolver) resolveRef(ref string) (*Schema, error) {
	if !strings.HasPrefix(ref, SchemaRefPrefix) {
		return nil, &binderrors.ReferenceError{
			Ref:     ref,
			Message: fmt.Sprintf("only %s... references are supported", SchemaRefPrefix),
		}
	}

	name := strings.TrimPrefix(ref, SchemaRefPrefix)
	target, ok := r.schemas[name]
	if !ok {
		return nil, binderrors.NewDanglingRefError(ref)
	}

	// Revisiting a ref already on the resolution path means a cycle;
	// substitute an opaque placeholder instead of recursing further.
	if r.resolving[ref] {
		if !r.warned[ref] {
			r.warned[ref] = true
			r.warnings = append(r.warnings,
				fmt.Sprintf("circular reference %s: substituted an opaque schema at the cycle point", ref))
		}
		return &Schema{Description: target.Description}, nil
	}

	r.resolving[ref] = true
	defer delete(r.resolving, ref)

	return r.Resolve(target)
}

// resolveChildren returns a copy of schema with all nested references
// resolved. The copy is shallow except for the resolved child nodes.
func (r *RefResolver) resolveChildren(schema *Schema) (*Schema, error) {
	out := *schema

	if schema.Items != nil {
		items, err := r.Resolve(schema.Items)
		if err != nil {
			return nil, err
		}
		out.Items = items
	}

	if schema.Properties != nil {
		props := make(map[string]*Schema, len(schema.Properties))
		for name, prop := range schema.Properties {
			resolved, err := r.Resolve(prop)
			if err != nil {
				return nil, err
			}
			props[name] = resolved
		}
		out.Properties = props
	}

	var err error
	if out.AllOf, err = r.resolveList(schema.AllOf); err != nil {
		return nil, err
	}
	if out.AnyOf, err = r.resolveList(schema.AnyOf); err != nil {
		return nil, err
	}
	if out.OneOf, err = r.resolveList(schema.OneOf); err != nil {
		return nil, err
	}

	if sub, ok := schema.AdditionalProperties.(*Schema); ok {
		resolved, rerr := r.Resolve(sub)
		if rerr != nil {
			return nil, rerr
		}
		out.AdditionalProperties = resolved
	}

	return &out, nil
}

func (r *RefResolver) resolveList(schemas []*Schema) ([]*Schema, error) {
	if schemas == nil {
		return nil, nil
	}
	out := make([]*Schema, len(schemas))
	for i, s := range schemas {
		resolved, err := r.Resolve(s)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}
