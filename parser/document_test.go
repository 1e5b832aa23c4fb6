package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathItem_OperationFor(t *testing.T) {
	get := &Operation{OperationID: "list"}
	post := &Operation{OperationID: "create"}
	item := &PathItem{Get: get, Post: post}

	assert.Same(t, get, item.OperationFor("get"))
	assert.Same(t, post, item.OperationFor("post"))
	assert.Nil(t, item.OperationFor("delete"))
	assert.Nil(t, item.OperationFor("query"))
}

func TestPathItem_OperationCount(t *testing.T) {
	item := &PathItem{
		Get:    &Operation{},
		Put:    &Operation{},
		Delete: &Operation{},
	}
	assert.Equal(t, 3, item.OperationCount())
	assert.Equal(t, 0, (&PathItem{}).OperationCount())
}

func TestMethodOrderCoversAllOperationFields(t *testing.T) {
	item := &PathItem{
		Get: &Operation{}, Put: &Operation{}, Post: &Operation{}, Delete: &Operation{},
		Options: &Operation{}, Head: &Operation{}, Patch: &Operation{}, Trace: &Operation{},
	}
	seen := 0
	for _, method := range MethodOrder {
		if item.OperationFor(method) != nil {
			seen++
		}
	}
	assert.Equal(t, 8, seen)
}

func TestParameter_Key(t *testing.T) {
	p := &Parameter{Name: "corpname", In: ParamInQuery}
	q := &Parameter{Name: "corpname", In: ParamInPath}
	assert.Equal(t, "query:corpname", p.Key())
	assert.NotEqual(t, p.Key(), q.Key(), "same name in different locations must not collide")
}

func TestSchema_IsOpaque(t *testing.T) {
	assert.True(t, (*Schema)(nil).IsOpaque())
	assert.True(t, (&Schema{}).IsOpaque())
	assert.True(t, (&Schema{Description: "unknown structure"}).IsOpaque())
	assert.False(t, (&Schema{Type: "string"}).IsOpaque())
	assert.False(t, (&Schema{Ref: "#/components/schemas/X"}).IsOpaque())
	assert.False(t, (&Schema{Items: &Schema{Type: "string"}}).IsOpaque())
	assert.False(t, (&Schema{OneOf: []*Schema{{Type: "string"}}}).IsOpaque())
}

func TestGetDocumentStats(t *testing.T) {
	doc := &SpecDocument{
		Paths: Paths{
			"/a": &PathItem{Get: &Operation{}, Post: &Operation{}},
			"/b": &PathItem{Get: &Operation{}},
			"/c": nil,
		},
		Components: &Components{
			Schemas: map[string]*Schema{
				"One": {Type: "object"},
				"Two": {Type: "string"},
			},
			SecuritySchemes: map[string]*SecurityScheme{
				"bearerAuth": {Type: "http", Scheme: "bearer"},
			},
		},
	}

	stats := GetDocumentStats(doc)
	assert.Equal(t, 3, stats.PathCount)
	assert.Equal(t, 3, stats.OperationCount)
	assert.Equal(t, 2, stats.SchemaCount)
	assert.Equal(t, 1, stats.SecuritySchemeCount)

	assert.Equal(t, DocumentStats{}, GetDocumentStats(nil))
}

func TestResponses_UnmarshalKeepsWildcardCodes(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /x:
    get:
      responses:
        "2XX":
          description: any success
        default:
          description: fallback
components:
  schemas: {}
`
	result, err := New().ParseBytes([]byte(spec))
	require.NoError(t, err)

	responses := result.Document.Paths["/x"].Get.Responses
	require.NotNil(t, responses)
	assert.Contains(t, responses.Codes, "2XX")
	require.NotNil(t, responses.Default)
	assert.Equal(t, "fallback", responses.Default.Description)
}
