// This file implements the mapping from resolved schemas to Go types, plus
// the optionality policy applied to operation arguments.

package generator

import (
	"fmt"

	"github.com/oasbind/oasbind/parser"
)

// DefaultPolicy describes how a generated binding represents an argument the
// caller did not supply.
type DefaultPolicy int

const (
	// PolicyRequired means the caller must always supply the value; the
	// argument has no absent state.
	PolicyRequired DefaultPolicy = iota
	// PolicyAbsent means the argument is optional and carried as a pointer;
	// a nil pointer is the absent sentinel and the argument is omitted from
	// the outgoing request entirely.
	PolicyAbsent
)

// typeMapper converts resolved schemas to Go type expressions. Mapping never
// fails: schemas the mapper cannot represent precisely degrade to "any", with
// a warning recorded through report.
type typeMapper struct {
	report func(path, format string, args ...any)
}

// mapSchema returns the Go type expression for a resolved schema. The path
// argument locates the schema in warning messages.
func (m *typeMapper) mapSchema(schema *parser.Schema, path string) string {
	if schema == nil || schema.IsOpaque() {
		return "any"
	}

	// Composition keywords have no single precise Go representation; the
	// binding stays callable with the loosest type that admits every variant.
	if len(schema.OneOf) > 0 || len(schema.AnyOf) > 0 {
		m.report(path, "oneOf/anyOf composition mapped to any")
		return "any"
	}
	if len(schema.AllOf) > 0 {
		m.report(path, "allOf composition mapped to any")
		return "any"
	}

	switch schema.Type {
	case "string":
		return m.mapStringFormat(schema.Format)
	case "integer":
		return m.mapIntegerFormat(schema.Format)
	case "number":
		return m.mapNumberFormat(schema.Format)
	case "boolean":
		return "bool"
	case "array":
		if schema.Items == nil {
			return "[]any"
		}
		return "[]" + m.mapSchema(schema.Items, path+".items")
	case "object":
		return m.mapObject(schema, path)
	case "":
		return "any"
	default:
		m.report(path, "unknown schema type %q mapped to any", schema.Type)
		return "any"
	}
}

func (m *typeMapper) mapStringFormat(format string) string {
	switch format {
	case "byte", "binary":
		return "[]byte"
	default:
		return "string"
	}
}

func (m *typeMapper) mapIntegerFormat(format string) string {
	switch format {
	case "int32":
		return "int32"
	default:
		return "int64"
	}
}

func (m *typeMapper) mapNumberFormat(format string) string {
	switch format {
	case "float":
		return "float32"
	default:
		return "float64"
	}
}

// mapObject maps an object schema. Objects with a uniform value schema map to
// a typed map; anything else maps to map[string]any because the generated
// client is a transport binding, not a model layer.
func (m *typeMapper) mapObject(schema *parser.Schema, path string) string {
	if len(schema.Properties) == 0 {
		if sub, ok := schema.AdditionalProperties.(*parser.Schema); ok && sub != nil {
			return fmt.Sprintf("map[string]%s", m.mapSchema(sub, path+".additionalProperties"))
		}
	}
	return "map[string]any"
}

// argumentType applies the optionality policy to a mapped type: optional
// arguments become pointers so nil can mean absent.
func argumentType(goType string, policy DefaultPolicy) string {
	if policy == PolicyAbsent {
		return "*" + goType
	}
	return goType
}

// zeroValue returns the zero-value expression for a Go type, used when a
// generated method must return early on error.
func zeroValue(goType string) string {
	switch goType {
	case "string":
		return `""`
	case "int", "int32", "int64":
		return "0"
	case "float32", "float64":
		return "0"
	case "bool":
		return "false"
	default:
		return "nil"
	}
}
