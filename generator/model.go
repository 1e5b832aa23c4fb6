// This file implements the construction of operation models: the intermediate
// representation between a parsed document and emitted client code. Each model
// carries everything the emitter needs for one callable binding, with names
// already converted and collisions already settled.

package generator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oasbind/oasbind/binderrors"
	"github.com/oasbind/oasbind/internal/httputil"
	"github.com/oasbind/oasbind/internal/issues"
	"github.com/oasbind/oasbind/internal/severity"
	"github.com/oasbind/oasbind/parser"
)

// BoundParam is one operation argument, ready for emission.
type BoundParam struct {
	// Name is the wire name used in the outgoing request.
	Name string
	// FieldName is the exported Go field name inside the params struct.
	FieldName string
	// VarName is the camelCase Go argument name, used for path parameters
	// that become positional method arguments.
	VarName string
	// In is the parameter location: path, query, or header.
	In string
	// GoType is the mapped Go type before the optionality policy is applied.
	GoType string
	// Policy determines how an absent value is represented.
	Policy      DefaultPolicy
	Description string
}

// OperationModel is the emission-ready description of one callable binding.
type OperationModel struct {
	// Name is the unique exported Go method name for this binding.
	Name string
	// Method is the upper-case HTTP method.
	Method string
	// Path is the path template exactly as declared in the document.
	Path        string
	Summary     string
	Description string
	Deprecated  bool

	PathParams   []BoundParam
	QueryParams  []BoundParam
	HeaderParams []BoundParam

	// BodyType is the mapped Go type of the request body, or "" when the
	// operation carries none.
	BodyType        string
	BodyDescription string

	// ResponseType is the mapped Go type of the declared success response,
	// or "" when the binding returns the raw payload bytes.
	ResponseType string

	// Auth is the credential annotation, or nil for an unauthenticated call.
	Auth *AuthAnnotation

	op *parser.Operation
}

// ParamsStructName returns the name of the generated params struct, which
// exists only when the operation has query or header parameters.
func (m *OperationModel) ParamsStructName() string {
	return m.Name + "Params"
}

// HasParamsStruct reports whether the binding takes a params struct argument.
func (m *OperationModel) HasParamsStruct() bool {
	return len(m.QueryParams) > 0 || len(m.HeaderParams) > 0
}

// modelBuilder walks a parsed document in deterministic order and produces
// one OperationModel per declared operation.
type modelBuilder struct {
	doc      *parser.SpecDocument
	resolver *parser.RefResolver
	mapper   *typeMapper
	addIssue func(issues.Issue)

	usedNames map[string]bool
}

func newModelBuilder(doc *parser.SpecDocument, addIssue func(issues.Issue)) *modelBuilder {
	b := &modelBuilder{
		doc:       doc,
		resolver:  parser.NewRefResolver(doc),
		addIssue:  addIssue,
		usedNames: make(map[string]bool),
	}
	b.mapper = &typeMapper{report: func(path, format string, args ...any) {
		b.warn(path, format, args...)
	}}
	return b
}

func (b *modelBuilder) warn(path, format string, args ...any) {
	b.addIssue(issues.Issue{
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
		Severity: severity.SeverityWarning,
	})
}

// Build produces models for every operation in the document, ordered by
// lexicographic path then fixed method order. The order, together with
// deterministic collision numbering, makes repeated runs byte-identical.
func (b *modelBuilder) Build() ([]*OperationModel, error) {
	if b.doc == nil {
		return nil, nil
	}

	paths := make([]string, 0, len(b.doc.Paths))
	for path := range b.doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var models []*OperationModel
	for _, path := range paths {
		item := b.doc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range parser.MethodOrder {
			op := item.OperationFor(method)
			if op == nil {
				continue
			}
			model, err := b.buildOperation(path, method, op, item.Parameters)
			if err != nil {
				return nil, err
			}
			models = append(models, model)
		}
	}

	// Cycle degradations surface as warnings on the run, not per operation.
	for _, msg := range b.resolver.Warnings() {
		b.addIssue(issues.Issue{
			Path:     "components.schemas",
			Message:  msg,
			Severity: severity.SeverityWarning,
		})
	}

	return models, nil
}

func (b *modelBuilder) buildOperation(path, method string, op *parser.Operation, pathParams []*parser.Parameter) (*OperationModel, error) {
	opPath := fmt.Sprintf("paths.%s.%s", path, method)

	model := &OperationModel{
		Name:        b.bindingName(op, path, method),
		Method:      strings.ToUpper(method),
		Path:        path,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		op:          op,
	}

	for _, param := range mergeParameters(pathParams, op.Parameters) {
		bound, skip, err := b.buildParam(param, opPath, model.Name)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		switch bound.In {
		case parser.ParamInPath:
			model.PathParams = append(model.PathParams, bound)
		case parser.ParamInHeader:
			model.HeaderParams = append(model.HeaderParams, bound)
		default:
			model.QueryParams = append(model.QueryParams, bound)
		}
	}

	if err := validatePathParams(model); err != nil {
		return nil, err
	}
	if err := b.buildRequestBody(model, op, opPath, method); err != nil {
		return nil, err
	}
	if err := b.buildResponse(model, op, opPath); err != nil {
		return nil, err
	}

	return model, nil
}

// bindingName picks the Go method name for an operation: the declared
// operation identifier when present, otherwise a name derived from the HTTP
// method and path template. Either way the result is made unique by appending
// the smallest unused integer suffix, starting at 2.
func (b *modelBuilder) bindingName(op *parser.Operation, path, method string) string {
	var name string
	if op.OperationID != "" {
		name = toTypeName(op.OperationID)
	}
	if name == "" || !isValidIdentifier(name) {
		name = methodNameFromPathMethod(path, method)
	}
	return b.uniqueName(name)
}

func (b *modelBuilder) uniqueName(base string) string {
	if !b.usedNames[base] {
		b.usedNames[base] = true
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if !b.usedNames[candidate] {
			b.usedNames[candidate] = true
			return candidate
		}
	}
}

// mergeParameters combines path-level and operation-level parameter lists.
// An operation-level parameter with the same name and location overrides the
// path-level one in place, keeping the path-level position so signatures stay
// stable when only the override set changes.
func mergeParameters(pathLevel, opLevel []*parser.Parameter) []*parser.Parameter {
	merged := make([]*parser.Parameter, 0, len(pathLevel)+len(opLevel))
	index := make(map[string]int, len(pathLevel))

	for _, p := range pathLevel {
		if p == nil {
			continue
		}
		index[p.Key()] = len(merged)
		merged = append(merged, p)
	}
	for _, p := range opLevel {
		if p == nil {
			continue
		}
		if at, ok := index[p.Key()]; ok {
			merged[at] = p
			continue
		}
		index[p.Key()] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

func (b *modelBuilder) buildParam(param *parser.Parameter, opPath, opName string) (BoundParam, bool, error) {
	paramPath := fmt.Sprintf("%s.parameters.%s", opPath, param.Name)

	if param.In == parser.ParamInCookie {
		b.addIssue(issues.Issue{
			Path:      paramPath,
			Operation: opName,
			Message:   fmt.Sprintf("cookie parameter %q is not supported and was skipped", param.Name),
			Severity:  severity.SeverityWarning,
		})
		return BoundParam{}, true, nil
	}

	schema, err := b.resolver.Resolve(param.Schema)
	if err != nil {
		return BoundParam{}, false, err
	}

	in := param.In
	if in == "" {
		in = parser.ParamInQuery
	}

	policy := PolicyAbsent
	// Path parameters are positional in both the template and the signature,
	// so they are always required.
	if param.Required || in == parser.ParamInPath {
		policy = PolicyRequired
	}

	return BoundParam{
		Name:        param.Name,
		FieldName:   toFieldName(param.Name),
		VarName:     toParamName(param.Name),
		In:          in,
		GoType:      b.mapper.mapSchema(schema, paramPath),
		Policy:      policy,
		Description: param.Description,
	}, false, nil
}

func (b *modelBuilder) buildRequestBody(model *OperationModel, op *parser.Operation, opPath, method string) error {
	if op.RequestBody == nil {
		return nil
	}
	if !httputil.MethodHasBody(method) {
		b.addIssue(issues.Issue{
			Path:      opPath,
			Operation: model.Name,
			Message:   fmt.Sprintf("request body on %s is not supported and was ignored", model.Method),
			Severity:  severity.SeverityWarning,
		})
		return nil
	}

	media := jsonMediaType(op.RequestBody.Content)
	if media == nil {
		b.addIssue(issues.Issue{
			Path:      opPath + ".requestBody",
			Operation: model.Name,
			Message:   "request body declares no JSON content; body typed as any",
			Severity:  severity.SeverityWarning,
		})
		model.BodyType = "any"
		model.BodyDescription = op.RequestBody.Description
		return nil
	}

	schema, err := b.resolver.Resolve(media.Schema)
	if err != nil {
		return err
	}
	model.BodyType = b.mapper.mapSchema(schema, opPath+".requestBody")
	model.BodyDescription = op.RequestBody.Description
	return nil
}

// buildResponse picks the declared success response: 200 first, then 201,
// then a 2XX wildcard, then the default response. Without one the binding
// returns the raw payload bytes.
func (b *modelBuilder) buildResponse(model *OperationModel, op *parser.Operation, opPath string) error {
	if op.Responses == nil {
		return nil
	}

	var response *parser.Response
	for _, code := range []string{"200", "201"} {
		if r := op.Responses.Codes[code]; r != nil {
			response = r
			break
		}
	}
	if response == nil {
		codes := make([]string, 0, len(op.Responses.Codes))
		for code := range op.Responses.Codes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if httputil.IsSuccessCode(code) {
				response = op.Responses.Codes[code]
				break
			}
		}
	}
	if response == nil {
		response = op.Responses.Default
	}
	if response == nil {
		return nil
	}

	media := jsonMediaType(response.Content)
	if media == nil || media.Schema == nil {
		return nil
	}

	schema, err := b.resolver.Resolve(media.Schema)
	if err != nil {
		return err
	}
	model.ResponseType = b.mapper.mapSchema(schema, opPath+".responses")
	return nil
}

// jsonMediaType returns the JSON media type entry from a content table,
// accepting structured-syntax suffixes like application/problem+json.
func jsonMediaType(content map[string]*parser.MediaType) *parser.MediaType {
	if content == nil {
		return nil
	}
	if mt, ok := content["application/json"]; ok {
		return mt
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		base, _, _ := strings.Cut(key, ";")
		if strings.HasSuffix(strings.TrimSpace(base), "+json") {
			return content[key]
		}
	}
	return nil
}

// validatePathParams confirms every placeholder in the path template has a
// matching path parameter; a mismatch produces generated code that cannot
// fill the template, so it is fatal.
func validatePathParams(model *OperationModel) error {
	declared := make(map[string]bool, len(model.PathParams))
	for _, p := range model.PathParams {
		declared[p.Name] = true
	}
	for _, placeholder := range pathPlaceholders(model.Path) {
		if !declared[placeholder] {
			return &binderrors.FormatError{
				Path:    model.Path,
				Section: "parameters",
				Message: fmt.Sprintf("path placeholder {%s} has no matching path parameter", placeholder),
			}
		}
	}
	return nil
}

func pathPlaceholders(path string) []string {
	var out []string
	rest := path
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			return out
		}
		closing := strings.Index(rest[open:], "}")
		if closing < 0 {
			return out
		}
		out = append(out, rest[open+1:open+closing])
		rest = rest[open+closing+1:]
	}
}
