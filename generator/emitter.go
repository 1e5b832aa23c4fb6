// This file implements the code emitter: it renders operation models into a
// single self-contained client source file. Emission is pure string assembly
// over a bytes.Buffer; the result is then gofmt-formatted with import fixing.

package generator

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/oasbind/oasbind/internal/issues"
	"github.com/oasbind/oasbind/internal/severity"
	"github.com/oasbind/oasbind/parser"
)

// fallbackBaseURL is used when the document declares no servers while
// structural validation is disabled.
const fallbackBaseURL = "http://localhost"

// codeEmitter renders a parsed document plus its operation models into one
// generated source file.
type codeEmitter struct {
	doc         *parser.SpecDocument
	packageName string
	sourcePath  string
	includeInfo bool
	addIssue    func(issues.Issue)
}

func newCodeEmitter(doc *parser.SpecDocument, packageName, sourcePath string, includeInfo bool, addIssue func(issues.Issue)) *codeEmitter {
	return &codeEmitter{
		doc:         doc,
		packageName: packageName,
		sourcePath:  sourcePath,
		includeInfo: includeInfo,
		addIssue:    addIssue,
	}
}

// Emit renders the full client file and formats it. Formatting failure is
// not fatal: the unformatted source is returned with a warning so the caller
// can still inspect the artifact.
func (e *codeEmitter) Emit(models []*OperationModel) []byte {
	var buf bytes.Buffer

	e.writeHeader(&buf)
	e.writeBaseURL(&buf)
	writeErrorType(&buf)
	e.writeClientTypes(&buf)
	for _, model := range models {
		writeParamsStruct(&buf, model)
		e.writeOperation(&buf, model)
	}

	formatted, err := imports.Process("client.go", buf.Bytes(), nil)
	if err != nil {
		e.addIssue(issues.Issue{
			Path:     "emit",
			Message:  fmt.Sprintf("generated code could not be formatted: %v", err),
			Severity: severity.SeverityWarning,
		})
		return buf.Bytes()
	}
	return formatted
}

func (e *codeEmitter) writeHeader(buf *bytes.Buffer) {
	buf.WriteString("// Code generated by oasbind. DO NOT EDIT.\n")
	if e.sourcePath != "" {
		fmt.Fprintf(buf, "// Source: %s\n", filepath.Base(e.sourcePath))
	}
	buf.WriteString("\n")

	if e.includeInfo && e.doc.Info != nil {
		if e.doc.Info.Title != "" {
			fmt.Fprintf(buf, "// Package %s is a client for %s", e.packageName, e.doc.Info.Title)
			if e.doc.Info.Version != "" {
				fmt.Fprintf(buf, " (version %s)", e.doc.Info.Version)
			}
			buf.WriteString(".\n")
			if e.doc.Info.Description != "" {
				fmt.Fprintf(buf, "//\n// %s\n", cleanDescription(e.doc.Info.Description))
			}
		}
	}
	fmt.Fprintf(buf, "package %s\n\n", e.packageName)

	// goimports prunes what an individual document does not need.
	buf.WriteString("import (\n")
	buf.WriteString("\t\"bytes\"\n")
	buf.WriteString("\t\"context\"\n")
	buf.WriteString("\t\"encoding/json\"\n")
	buf.WriteString("\t\"fmt\"\n")
	buf.WriteString("\t\"io\"\n")
	buf.WriteString("\t\"net/http\"\n")
	buf.WriteString("\t\"net/url\"\n")
	buf.WriteString("\t\"strings\"\n")
	buf.WriteString(")\n\n")
}

// writeBaseURL emits the DefaultBaseURL constant from the first declared
// server, trailing slash trimmed so path concatenation cannot double it.
func (e *codeEmitter) writeBaseURL(buf *bytes.Buffer) {
	baseURL := fallbackBaseURL
	if len(e.doc.Servers) > 0 && e.doc.Servers[0] != nil && e.doc.Servers[0].URL != "" {
		baseURL = strings.TrimSuffix(e.doc.Servers[0].URL, "/")
	}
	buf.WriteString("// DefaultBaseURL is the first server URL declared by the source document.\n")
	fmt.Fprintf(buf, "const DefaultBaseURL = %q\n\n", baseURL)
}

func writeErrorType(buf *bytes.Buffer) {
	buf.WriteString("// APIError is returned when the service responds with a status >= 400.\n")
	buf.WriteString("type APIError struct {\n")
	buf.WriteString("\tStatusCode int\n")
	buf.WriteString("\tBody       []byte\n")
	buf.WriteString("}\n\n")
	buf.WriteString("func (e *APIError) Error() string {\n")
	buf.WriteString("\treturn fmt.Sprintf(\"api error: status %d\", e.StatusCode)\n")
	buf.WriteString("}\n\n")
}

func (e *codeEmitter) writeClientTypes(buf *bytes.Buffer) {
	buf.WriteString("// Client is the API client.\n")
	buf.WriteString("type Client struct {\n")
	buf.WriteString("\t// BaseURL is the base URL for API requests.\n")
	buf.WriteString("\tBaseURL string\n")
	buf.WriteString("\t// HTTPClient is the HTTP client to use for requests.\n")
	buf.WriteString("\tHTTPClient *http.Client\n")
	buf.WriteString("\t// UserAgent is the User-Agent header value for requests.\n")
	buf.WriteString("\tUserAgent string\n\n")
	buf.WriteString("\tcredential string\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// ClientOption is a function that configures a Client.\n")
	buf.WriteString("type ClientOption func(*Client)\n\n")

	buf.WriteString("// NewClient creates a new API client. The credential is attached to\n")
	buf.WriteString("// authenticated requests as declared by the source document.\n")
	buf.WriteString("func NewClient(credential string, opts ...ClientOption) *Client {\n")
	buf.WriteString("\tc := &Client{\n")
	buf.WriteString("\t\tBaseURL:    DefaultBaseURL,\n")
	buf.WriteString("\t\tHTTPClient: http.DefaultClient,\n")
	buf.WriteString("\t\tcredential: credential,\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\tfor _, opt := range opts {\n")
	buf.WriteString("\t\topt(c)\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn c\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// WithBaseURL overrides the server URL declared by the document.\n")
	buf.WriteString("func WithBaseURL(baseURL string) ClientOption {\n")
	buf.WriteString("\treturn func(c *Client) {\n")
	buf.WriteString("\t\tc.BaseURL = strings.TrimSuffix(baseURL, \"/\")\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// WithHTTPClient sets the HTTP client.\n")
	buf.WriteString("func WithHTTPClient(client *http.Client) ClientOption {\n")
	buf.WriteString("\treturn func(c *Client) {\n")
	buf.WriteString("\t\tc.HTTPClient = client\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")

	buf.WriteString("// WithUserAgent sets the User-Agent header value.\n")
	buf.WriteString("func WithUserAgent(ua string) ClientOption {\n")
	buf.WriteString("\treturn func(c *Client) {\n")
	buf.WriteString("\t\tc.UserAgent = ua\n")
	buf.WriteString("\t}\n")
	buf.WriteString("}\n\n")
}

// writeParamsStruct writes the query and header parameter struct for one
// operation, when it has any.
func writeParamsStruct(buf *bytes.Buffer, model *OperationModel) {
	if !model.HasParamsStruct() {
		return
	}
	fmt.Fprintf(buf, "// %s contains parameters for %s.\n", model.ParamsStructName(), model.Name)
	fmt.Fprintf(buf, "type %s struct {\n", model.ParamsStructName())
	for _, param := range append(append([]BoundParam{}, model.QueryParams...), model.HeaderParams...) {
		if param.Description != "" {
			fmt.Fprintf(buf, "\t// %s\n", cleanDescription(param.Description))
		}
		tag := param.Name
		if param.Policy == PolicyAbsent {
			tag += ",omitempty"
		}
		fmt.Fprintf(buf, "\t%s %s `json:%q`\n", param.FieldName, argumentType(param.GoType, param.Policy), tag)
	}
	buf.WriteString("}\n\n")
}

func (e *codeEmitter) writeOperation(buf *bytes.Buffer, model *OperationModel) {
	responseType := model.ResponseType
	if responseType == "" {
		responseType = "[]byte"
	}

	writeMethodDoc(buf, model)
	writeMethodSignature(buf, model, responseType)
	writeParamsGuard(buf, model, responseType)
	writeURLBuilding(buf, model)
	writeQueryStringBuilding(buf, model)
	writeRequestCreation(buf, model, responseType)
	writeRequestHeaders(buf, model)
	writeRequestExecution(buf, responseType)
	writeErrorResponseHandling(buf, responseType)
	writeResponseParsing(buf, model, responseType)
}

// writeMethodDoc writes the documentation comment for a client method,
// including a parameter summary when descriptions are available.
func writeMethodDoc(buf *bytes.Buffer, model *OperationModel) {
	switch {
	case model.Summary != "":
		buf.WriteString(formatMultilineComment(model.Summary, model.Name, ""))
	case model.Description != "":
		buf.WriteString(formatMultilineComment(model.Description, model.Name, ""))
	default:
		fmt.Fprintf(buf, "// %s calls %s %s\n", model.Name, model.Method, model.Path)
	}
	fmt.Fprintf(buf, "//\n// %s %s\n", model.Method, model.Path)

	var documented []BoundParam
	for _, p := range append(append(append([]BoundParam{}, model.PathParams...), model.QueryParams...), model.HeaderParams...) {
		if p.Description != "" {
			documented = append(documented, p)
		}
	}
	if len(documented) > 0 {
		buf.WriteString("//\n// Parameters:\n")
		for _, p := range documented {
			optional := ""
			if p.Policy == PolicyAbsent {
				optional = ", optional"
			}
			fmt.Fprintf(buf, "//   - %s (%s%s): %s\n", p.Name, p.In, optional, cleanDescription(p.Description))
		}
	}
	if model.Deprecated {
		buf.WriteString("//\n// Deprecated: This operation is deprecated.\n")
	}
}

func writeMethodSignature(buf *bytes.Buffer, model *OperationModel, responseType string) {
	args := []string{"ctx context.Context"}
	for _, p := range model.PathParams {
		args = append(args, fmt.Sprintf("%s %s", p.VarName, p.GoType))
	}
	if model.HasParamsStruct() {
		args = append(args, fmt.Sprintf("params *%s", model.ParamsStructName()))
	}
	if model.BodyType != "" {
		args = append(args, fmt.Sprintf("body %s", model.BodyType))
	}
	fmt.Fprintf(buf, "func (c *Client) %s(%s) (%s, error) {\n", model.Name, strings.Join(args, ", "), responseType)
}

// hasRequiredStructParams reports whether the params struct carries any
// required field, which makes a nil struct pointer an error at call time.
func hasRequiredStructParams(model *OperationModel) bool {
	for _, param := range append(append([]BoundParam{}, model.QueryParams...), model.HeaderParams...) {
		if param.Policy == PolicyRequired {
			return true
		}
	}
	return false
}

// writeParamsGuard rejects a nil params struct when the operation declares
// required query or header parameters, so a required value can never be
// silently dropped from the request.
func writeParamsGuard(buf *bytes.Buffer, model *OperationModel, responseType string) {
	if !hasRequiredStructParams(model) {
		return
	}
	buf.WriteString("\tif params == nil {\n")
	fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"%s: params must not be nil\")\n", zeroValue(responseType), model.Name)
	buf.WriteString("\t}\n")
}

// writeURLBuilding fills the path template. Sprintf arguments follow the
// placeholder order of the template, not the declaration order of the
// parameters, so each value lands in its own slot.
func writeURLBuilding(buf *bytes.Buffer, model *OperationModel) {
	buf.WriteString("\tpath := ")
	placeholders := pathPlaceholders(model.Path)
	if len(model.PathParams) > 0 && len(placeholders) > 0 {
		varByName := make(map[string]string, len(model.PathParams))
		for _, p := range model.PathParams {
			varByName[p.Name] = p.VarName
		}
		pathTemplate := model.Path
		for _, name := range placeholders {
			pathTemplate = strings.Replace(pathTemplate, "{"+name+"}", "%v", 1)
		}
		fmt.Fprintf(buf, "fmt.Sprintf(%q", pathTemplate)
		for _, name := range placeholders {
			buf.WriteString(", url.PathEscape(fmt.Sprintf(\"%v\", " + varByName[name] + "))")
		}
		buf.WriteString(")\n")
	} else {
		fmt.Fprintf(buf, "%q\n", model.Path)
	}
}

// writeQueryStringBuilding writes query assembly. Optional parameters are
// checked against their nil sentinel so absent values never reach the wire.
func writeQueryStringBuilding(buf *bytes.Buffer, model *OperationModel) {
	if len(model.QueryParams) == 0 {
		return
	}
	buf.WriteString("\tquery := make(url.Values)\n")
	if hasRequiredStructParams(model) {
		// The nil guard already ran; params is known non-nil here.
		for _, param := range model.QueryParams {
			if param.Policy == PolicyRequired {
				fmt.Fprintf(buf, "\tquery.Set(%q, fmt.Sprintf(\"%%v\", params.%s))\n", param.Name, param.FieldName)
			} else {
				fmt.Fprintf(buf, "\tif params.%s != nil {\n", param.FieldName)
				fmt.Fprintf(buf, "\t\tquery.Set(%q, fmt.Sprintf(\"%%v\", *params.%s))\n", param.Name, param.FieldName)
				buf.WriteString("\t}\n")
			}
		}
	} else {
		buf.WriteString("\tif params != nil {\n")
		for _, param := range model.QueryParams {
			fmt.Fprintf(buf, "\t\tif params.%s != nil {\n", param.FieldName)
			fmt.Fprintf(buf, "\t\t\tquery.Set(%q, fmt.Sprintf(\"%%v\", *params.%s))\n", param.Name, param.FieldName)
			buf.WriteString("\t\t}\n")
		}
		buf.WriteString("\t}\n")
	}
	buf.WriteString("\tif len(query) > 0 {\n")
	buf.WriteString("\t\tpath += \"?\" + query.Encode()\n")
	buf.WriteString("\t}\n")
}

func writeRequestCreation(buf *bytes.Buffer, model *OperationModel, responseType string) {
	if model.BodyType != "" {
		buf.WriteString("\tbodyData, err := json.Marshal(body)\n")
		buf.WriteString("\tif err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"marshal request body: %%w\", err)\n", zeroValue(responseType))
		buf.WriteString("\t}\n")
		fmt.Fprintf(buf, "\treq, err := http.NewRequestWithContext(ctx, %q, c.BaseURL+path, bytes.NewReader(bodyData))\n", model.Method)
	} else {
		fmt.Fprintf(buf, "\treq, err := http.NewRequestWithContext(ctx, %q, c.BaseURL+path, nil)\n", model.Method)
	}
	buf.WriteString("\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"create request: %%w\", err)\n", zeroValue(responseType))
	buf.WriteString("\t}\n")
}

func writeRequestHeaders(buf *bytes.Buffer, model *OperationModel) {
	if model.BodyType != "" {
		buf.WriteString("\treq.Header.Set(\"Content-Type\", \"application/json\")\n")
	}
	buf.WriteString("\treq.Header.Set(\"Accept\", \"application/json\")\n")
	buf.WriteString("\tif c.UserAgent != \"\" {\n")
	buf.WriteString("\t\treq.Header.Set(\"User-Agent\", c.UserAgent)\n")
	buf.WriteString("\t}\n")
	if model.Auth != nil {
		if model.Auth.Prefix != "" {
			fmt.Fprintf(buf, "\treq.Header.Set(%q, %q+c.credential)\n", model.Auth.HeaderName, model.Auth.Prefix)
		} else {
			fmt.Fprintf(buf, "\treq.Header.Set(%q, c.credential)\n", model.Auth.HeaderName)
		}
	}
	guarded := hasRequiredStructParams(model)
	for _, param := range model.HeaderParams {
		switch {
		case param.Policy == PolicyRequired:
			// The nil guard already ran; params is known non-nil here.
			fmt.Fprintf(buf, "\treq.Header.Set(%q, fmt.Sprintf(\"%%v\", params.%s))\n", param.Name, param.FieldName)
		case guarded:
			fmt.Fprintf(buf, "\tif params.%s != nil {\n", param.FieldName)
			fmt.Fprintf(buf, "\t\treq.Header.Set(%q, fmt.Sprintf(\"%%v\", *params.%s))\n", param.Name, param.FieldName)
			buf.WriteString("\t}\n")
		default:
			fmt.Fprintf(buf, "\tif params != nil && params.%s != nil {\n", param.FieldName)
			fmt.Fprintf(buf, "\t\treq.Header.Set(%q, fmt.Sprintf(\"%%v\", *params.%s))\n", param.Name, param.FieldName)
			buf.WriteString("\t}\n")
		}
	}
}

func writeRequestExecution(buf *bytes.Buffer, responseType string) {
	buf.WriteString("\tresp, err := c.HTTPClient.Do(req)\n")
	buf.WriteString("\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"execute request: %%w\", err)\n", zeroValue(responseType))
	buf.WriteString("\t}\n")
	buf.WriteString("\tdefer resp.Body.Close()\n")
}

func writeErrorResponseHandling(buf *bytes.Buffer, responseType string) {
	buf.WriteString("\tif resp.StatusCode >= 400 {\n")
	buf.WriteString("\t\terrBody, _ := io.ReadAll(resp.Body)\n")
	fmt.Fprintf(buf, "\t\treturn %s, &APIError{StatusCode: resp.StatusCode, Body: errBody}\n", zeroValue(responseType))
	buf.WriteString("\t}\n")
}

// writeResponseParsing decodes a declared JSON response into its mapped type;
// without one the raw payload bytes are returned.
func writeResponseParsing(buf *bytes.Buffer, model *OperationModel, responseType string) {
	if model.ResponseType == "" {
		buf.WriteString("\tdata, err := io.ReadAll(resp.Body)\n")
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString("\t\treturn nil, fmt.Errorf(\"read response: %w\", err)\n")
		buf.WriteString("\t}\n")
		buf.WriteString("\treturn data, nil\n")
	} else {
		fmt.Fprintf(buf, "\tvar result %s\n", responseType)
		buf.WriteString("\tif err := json.NewDecoder(resp.Body).Decode(&result); err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"decode response: %%w\", err)\n", zeroValue(responseType))
		buf.WriteString("\t}\n")
		buf.WriteString("\treturn result, nil\n")
	}
	buf.WriteString("}\n\n")
}
