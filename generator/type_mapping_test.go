package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oasbind/oasbind/parser"
)

// newTestMapper returns a mapper that records warnings into the returned slice.
func newTestMapper() (*typeMapper, *[]string) {
	var warnings []string
	m := &typeMapper{report: func(path, format string, args ...any) {
		warnings = append(warnings, path+": "+fmt.Sprintf(format, args...))
	}}
	return m, &warnings
}

func TestMapSchema_Primitives(t *testing.T) {
	tests := []struct {
		name     string
		schema   *parser.Schema
		expected string
	}{
		{"string", &parser.Schema{Type: "string"}, "string"},
		{"string byte", &parser.Schema{Type: "string", Format: "byte"}, "[]byte"},
		{"string binary", &parser.Schema{Type: "string", Format: "binary"}, "[]byte"},
		{"string date", &parser.Schema{Type: "string", Format: "date"}, "string"},
		{"integer", &parser.Schema{Type: "integer"}, "int64"},
		{"integer int32", &parser.Schema{Type: "integer", Format: "int32"}, "int32"},
		{"integer int64", &parser.Schema{Type: "integer", Format: "int64"}, "int64"},
		{"number", &parser.Schema{Type: "number"}, "float64"},
		{"number float", &parser.Schema{Type: "number", Format: "float"}, "float32"},
		{"number double", &parser.Schema{Type: "number", Format: "double"}, "float64"},
		{"boolean", &parser.Schema{Type: "boolean"}, "bool"},
		{"untyped", &parser.Schema{}, "any"},
		{"nil", nil, "any"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, warnings := newTestMapper()
			assert.Equal(t, tt.expected, m.mapSchema(tt.schema, "test"))
			assert.Empty(t, *warnings)
		})
	}
}

func TestMapSchema_Arrays(t *testing.T) {
	m, _ := newTestMapper()
	assert.Equal(t, "[]string", m.mapSchema(&parser.Schema{Type: "array", Items: &parser.Schema{Type: "string"}}, "t"))
	assert.Equal(t, "[][]int64", m.mapSchema(&parser.Schema{
		Type:  "array",
		Items: &parser.Schema{Type: "array", Items: &parser.Schema{Type: "integer"}},
	}, "t"))
	assert.Equal(t, "[]any", m.mapSchema(&parser.Schema{Type: "array"}, "t"))
}

func TestMapSchema_Objects(t *testing.T) {
	m, _ := newTestMapper()

	withProps := &parser.Schema{
		Type:       "object",
		Properties: map[string]*parser.Schema{"total": {Type: "integer"}},
	}
	assert.Equal(t, "map[string]any", m.mapSchema(withProps, "t"))

	uniform := &parser.Schema{
		Type:                 "object",
		AdditionalProperties: &parser.Schema{Type: "string"},
	}
	assert.Equal(t, "map[string]string", m.mapSchema(uniform, "t"))

	assert.Equal(t, "map[string]any", m.mapSchema(&parser.Schema{Type: "object"}, "t"))
}

func TestMapSchema_CompositionDegradesToAny(t *testing.T) {
	m, warnings := newTestMapper()

	oneOf := &parser.Schema{OneOf: []*parser.Schema{{Type: "string"}, {Type: "integer"}}}
	assert.Equal(t, "any", m.mapSchema(oneOf, "paths./x.get"))
	assert.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], "oneOf/anyOf")

	allOf := &parser.Schema{AllOf: []*parser.Schema{{Type: "object"}}}
	assert.Equal(t, "any", m.mapSchema(allOf, "t"))
	assert.Len(t, *warnings, 2)
}

func TestMapSchema_UnknownTypeWarns(t *testing.T) {
	m, warnings := newTestMapper()
	assert.Equal(t, "any", m.mapSchema(&parser.Schema{Type: "file"}, "t"))
	assert.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], `unknown schema type "file"`)
}

func TestMapSchema_OpaqueIsAny(t *testing.T) {
	m, warnings := newTestMapper()
	assert.Equal(t, "any", m.mapSchema(&parser.Schema{Description: "cycle placeholder"}, "t"))
	assert.Empty(t, *warnings, "opaque schemas map silently; the resolver already warned")
}

func TestArgumentType(t *testing.T) {
	assert.Equal(t, "string", argumentType("string", PolicyRequired))
	assert.Equal(t, "*string", argumentType("string", PolicyAbsent))
	assert.Equal(t, "*map[string]any", argumentType("map[string]any", PolicyAbsent))
}

func TestZeroValue(t *testing.T) {
	assert.Equal(t, `""`, zeroValue("string"))
	assert.Equal(t, "0", zeroValue("int"))
	assert.Equal(t, "0", zeroValue("int64"))
	assert.Equal(t, "0", zeroValue("float64"))
	assert.Equal(t, "false", zeroValue("bool"))
	assert.Equal(t, "nil", zeroValue("map[string]any"))
	assert.Equal(t, "nil", zeroValue("[]byte"))
	assert.Equal(t, "nil", zeroValue("any"))
}
