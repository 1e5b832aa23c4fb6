package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasbind/oasbind/binderrors"
)

const validSpecYAML = `
openapi: 3.0.3
info:
  title: Corpus Search API
  version: "1.0"
servers:
  - url: https://api.example.com/
paths:
  /search:
    get:
      operationId: search_corp
      summary: Search a corpus
      parameters:
        - name: corpname
          in: query
          required: true
          schema:
            type: string
        - name: pagesize
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: Search results
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/SearchResult'
components:
  schemas:
    SearchResult:
      type: object
      properties:
        total:
          type: integer
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
security:
  - bearerAuth: []
`

func TestParseBytes_ValidYAML(t *testing.T) {
	p := New()
	result, err := p.ParseBytes([]byte(validSpecYAML))
	require.NoError(t, err)
	require.NotNil(t, result.Document)

	doc := result.Document
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	assert.Equal(t, "Corpus Search API", doc.Info.Title)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com/", doc.Servers[0].URL)
	require.Contains(t, doc.Paths, "/search")

	op := doc.Paths["/search"].Get
	require.NotNil(t, op)
	assert.Equal(t, "search_corp", op.OperationID)
	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "corpname", op.Parameters[0].Name)
	assert.True(t, op.Parameters[0].Required)
	assert.Equal(t, "pagesize", op.Parameters[1].Name)
	assert.False(t, op.Parameters[1].Required)

	require.NotNil(t, op.Responses)
	resp := op.Responses.Codes["200"]
	require.NotNil(t, resp)
	require.Contains(t, resp.Content, "application/json")
	assert.Equal(t, "#/components/schemas/SearchResult", resp.Content["application/json"].Schema.Ref)

	assert.Equal(t, SourceFormatYAML, result.SourceFormat)
	assert.Equal(t, "ParseBytes.yaml", result.SourcePath)
	assert.Equal(t, int64(len(validSpecYAML)), result.SourceSize)
}

func TestParseBytes_ValidJSON(t *testing.T) {
	spec := `{
  "openapi": "3.0.3",
  "info": {"title": "T", "version": "1"},
  "servers": [{"url": "https://api.example.com"}],
  "paths": {"/ping": {"get": {"responses": {"200": {"description": "ok"}}}}},
  "components": {"schemas": {}}
}`
	result, err := New().ParseBytes([]byte(spec))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatJSON, result.SourceFormat)
	assert.Equal(t, "ParseBytes.json", result.SourcePath)
	require.Contains(t, result.Document.Paths, "/ping")
}

func TestParseBytes_Unparsable(t *testing.T) {
	_, err := New().ParseBytes([]byte("openapi: [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, binderrors.ErrFormat)
}

func TestParseBytes_MissingRequiredSections(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		section string
	}{
		{
			name: "missing paths",
			spec: `
openapi: 3.0.3
servers:
  - url: https://api.example.com
components:
  schemas: {}
`,
			section: "paths",
		},
		{
			name: "missing schema table",
			spec: `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /x:
    get:
      responses:
        "200":
          description: ok
`,
			section: "components.schemas",
		},
		{
			name: "missing servers",
			spec: `
openapi: 3.0.3
paths:
  /x:
    get:
      responses:
        "200":
          description: ok
components:
  schemas: {}
`,
			section: "servers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().ParseBytes([]byte(tt.spec))
			require.Error(t, err)
			assert.ErrorIs(t, err, binderrors.ErrFormat)
			assert.Contains(t, err.Error(), tt.section)
		})
	}
}

func TestParseBytes_AllSectionsMissingReportedTogether(t *testing.T) {
	_, err := New().ParseBytes([]byte("openapi: 3.0.3\n"))
	require.Error(t, err)
	for _, section := range []string{"paths", "components.schemas", "servers"} {
		assert.Contains(t, err.Error(), section)
	}
}

func TestParseBytes_ValidationDisabled(t *testing.T) {
	p := New()
	p.ValidateStructure = false
	result, err := p.ParseBytes([]byte("openapi: 3.0.3\n"))
	require.NoError(t, err)
	assert.NotNil(t, result.Document)
}

func TestParse_File(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte(validSpecYAML), 0o600))

	result, err := New().Parse(specPath)
	require.NoError(t, err)
	assert.Equal(t, specPath, result.SourcePath)
	assert.Equal(t, "Corpus Search API", result.Document.Info.Title)
	assert.GreaterOrEqual(t, result.LoadTime.Nanoseconds(), int64(0))
}

func TestParse_FileNotFound(t *testing.T) {
	_, err := New().Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestParseReader(t *testing.T) {
	result, err := New().ParseReader(strings.NewReader(validSpecYAML))
	require.NoError(t, err)
	assert.Equal(t, "ParseReader.yaml", result.SourcePath)
	assert.Equal(t, "Corpus Search API", result.Document.Info.Title)
}

func TestParseBytes_InvalidStatusCode(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /x:
    get:
      responses:
        banana:
          description: not a status code
components:
  schemas: {}
`
	_, err := New().ParseBytes([]byte(spec))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status code 'banana'")
}

func TestParseBytes_Stats(t *testing.T) {
	result, err := New().ParseBytes([]byte(validSpecYAML))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Stats.PathCount)
	assert.Equal(t, 1, result.Stats.OperationCount)
	assert.Equal(t, 1, result.Stats.SchemaCount)
	assert.Equal(t, 1, result.Stats.SecuritySchemeCount)
}

func TestDetectFormatFromContent(t *testing.T) {
	assert.Equal(t, SourceFormatJSON, detectFormatFromContent([]byte("  {\"a\": 1}")))
	assert.Equal(t, SourceFormatJSON, detectFormatFromContent([]byte("[1]")))
	assert.Equal(t, SourceFormatYAML, detectFormatFromContent([]byte("openapi: 3.0.3")))
	assert.Equal(t, SourceFormatYAML, detectFormatFromContent([]byte("")))
}
