package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oasbind/oasbind/parser"
)

// parserWithoutValidation skips structural validation so emission edge cases
// (like a document with no servers) can be exercised directly.
func parserWithoutValidation(t *testing.T) *parser.Parser {
	t.Helper()
	p := parser.New()
	p.ValidateStructure = false
	return p
}

func TestEmit_HeaderIncludesDocumentInfo(t *testing.T) {
	result := generateFromYAML(t, searchSpecYAML)
	content := string(result.File.Content)

	assert.True(t, strings.HasPrefix(content, "// Code generated by oasbind. DO NOT EDIT.\n"))
	assert.Contains(t, content, "Corpus Search API")
	assert.Contains(t, content, "(version 1.0)")
}

func TestEmit_InfoSuppressed(t *testing.T) {
	result := generateFromYAML(t, searchSpecYAML, WithIncludeInfo(false))
	content := string(result.File.Content)

	assert.True(t, strings.HasPrefix(content, "// Code generated by oasbind. DO NOT EDIT.\n"))
	assert.NotContains(t, content, "Corpus Search API")
}

func TestEmit_ClientBoilerplate(t *testing.T) {
	content := string(generateFromYAML(t, searchSpecYAML).File.Content)

	assert.Contains(t, content, "type Client struct {")
	assert.Contains(t, content, "func NewClient(credential string, opts ...ClientOption) *Client {")
	assert.Contains(t, content, "func WithBaseURL(baseURL string) ClientOption {")
	assert.Contains(t, content, "func WithHTTPClient(client *http.Client) ClientOption {")
	assert.Contains(t, content, "func WithUserAgent(ua string) ClientOption {")
	assert.Contains(t, content, "type APIError struct {")
	assert.Contains(t, content, "BaseURL:    DefaultBaseURL,")
}

func TestEmit_PathParamsBecomeArguments(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /corpora/{corpusId}/docs/{docId}:
    get:
      operationId: get_doc
      parameters:
        - name: corpusId
          in: path
          required: true
          schema:
            type: string
        - name: docId
          in: path
          required: true
          schema:
            type: integer
      responses:
        "200":
          description: ok
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.Contains(t, content, "func (c *Client) GetDoc(ctx context.Context, corpusId string, docId int64) ([]byte, error)")
	assert.Contains(t, content, `fmt.Sprintf("/corpora/%v/docs/%v"`)
	assert.Contains(t, content, "url.PathEscape")
}

func TestEmit_RawResponseWhenNoSchema(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /export:
    get:
      operationId: export_data
      responses:
        "200":
          description: raw bytes
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.Contains(t, content, "func (c *Client) ExportData(ctx context.Context) ([]byte, error)")
	assert.Contains(t, content, "io.ReadAll(resp.Body)")
	assert.NotContains(t, content, "json.NewDecoder")
}

func TestEmit_RequestBody(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /queries:
    post:
      operationId: save_query
      requestBody:
        content:
          application/json:
            schema:
              type: object
      responses:
        "201":
          description: created
          content:
            application/json:
              schema:
                type: object
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.Contains(t, content, "func (c *Client) SaveQuery(ctx context.Context, body map[string]any) (map[string]any, error)")
	assert.Contains(t, content, "json.Marshal(body)")
	assert.Contains(t, content, "bytes.NewReader(bodyData)")
	assert.Contains(t, content, `req.Header.Set("Content-Type", "application/json")`)
}

func TestEmit_HeaderParameters(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /search:
    get:
      operationId: search_corp
      parameters:
        - name: X-Trace
          in: header
          required: true
          schema:
            type: string
        - name: X-Debug
          in: header
          schema:
            type: string
      responses:
        "200":
          description: ok
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.Contains(t, content, "XTrace string")
	assert.Contains(t, content, "XDebug *string")
	assert.Contains(t, content, `req.Header.Set("X-Trace"`)
	assert.Contains(t, content, "if params.XDebug != nil {")
}

func TestEmit_PathParamOrderFollowsTemplate(t *testing.T) {
	// Parameters declared in the reverse of their template order: each value
	// must still land in its own placeholder slot.
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /corpora/{corpusId}/docs/{docId}:
    get:
      operationId: get_doc
      parameters:
        - name: docId
          in: path
          required: true
          schema:
            type: integer
        - name: corpusId
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.Contains(t, content, "func (c *Client) GetDoc(ctx context.Context, docId int64, corpusId string) ([]byte, error)")
	assert.Contains(t, content,
		`fmt.Sprintf("/corpora/%v/docs/%v", url.PathEscape(fmt.Sprintf("%v", corpusId)), url.PathEscape(fmt.Sprintf("%v", docId)))`)
}

func TestEmit_NilParamsRejectedWhenRequired(t *testing.T) {
	content := string(generateFromYAML(t, searchSpecYAML).File.Content)

	// corpname is required, so a nil params struct is an error instead of a
	// silently incomplete request.
	assert.Contains(t, content, "if params == nil {")
	assert.Contains(t, content, `return nil, fmt.Errorf("SearchCorp: params must not be nil")`)
	assert.Contains(t, content, `query.Set("corpname", fmt.Sprintf("%v", params.Corpname))`)
}

func TestEmit_AllOptionalParamsAllowNil(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /search:
    get:
      operationId: search
      parameters:
        - name: pagesize
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: ok
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)

	assert.NotContains(t, content, "params must not be nil")
	assert.Contains(t, content, "if params != nil {")
	assert.Contains(t, content, "if params.Pagesize != nil {")
}

func TestEmit_FallbackBaseURL(t *testing.T) {
	p := parserWithoutValidation(t)
	result, err := p.ParseBytes([]byte("openapi: 3.0.3\npaths: {}\n"))
	require.NoError(t, err)

	genResult, err := New().GenerateParsed(*result)
	require.NoError(t, err)
	assert.Contains(t, string(genResult.File.Content), `const DefaultBaseURL = "http://localhost"`)
}

func TestEmit_MethodDocCarriesParameterDescriptions(t *testing.T) {
	content := string(generateFromYAML(t, searchSpecYAML).File.Content)

	assert.Contains(t, content, "// SearchCorp Search a corpus")
	assert.Contains(t, content, "// GET /search")
	assert.Contains(t, content, "//   - corpname (query): Corpus name")
	assert.Contains(t, content, "//   - pagesize (query, optional): Results per page")
}

func TestEmit_DeprecatedOperation(t *testing.T) {
	spec := `
openapi: 3.0.3
servers:
  - url: https://api.example.com
paths:
  /old:
    get:
      operationId: old_op
      deprecated: true
      responses:
        "200":
          description: ok
components:
  schemas: {}
`
	content := string(generateFromYAML(t, spec).File.Content)
	assert.Contains(t, content, "// Deprecated: This operation is deprecated.")
}
