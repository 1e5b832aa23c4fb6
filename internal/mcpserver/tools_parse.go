package mcpserver

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasbind/oasbind/parser"
)

type parseInput struct {
	Spec specInput `json:"spec" jsonschema:"The interface description document to parse"`
}

type parseSummaryServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type parseSummaryOperation struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type parseOutput struct {
	Version             string                  `json:"version"`
	Title               string                  `json:"title,omitempty"`
	Description         string                  `json:"description,omitempty"`
	Format              string                  `json:"format"`
	PathCount           int                     `json:"path_count"`
	OperationCount      int                     `json:"operation_count"`
	SchemaCount         int                     `json:"schema_count"`
	SecuritySchemeCount int                     `json:"security_scheme_count"`
	Servers             []parseSummaryServer    `json:"servers,omitempty"`
	Operations          []parseSummaryOperation `json:"operations,omitempty"`
}

func handleParse(_ context.Context, _ *mcp.CallToolRequest, input parseInput) (*mcp.CallToolResult, parseOutput, error) {
	result, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), parseOutput{}, nil
	}

	doc := result.Document
	output := parseOutput{
		Version:             doc.OpenAPI,
		Format:              string(result.SourceFormat),
		PathCount:           result.Stats.PathCount,
		OperationCount:      result.Stats.OperationCount,
		SchemaCount:         result.Stats.SchemaCount,
		SecuritySchemeCount: result.Stats.SecuritySchemeCount,
	}
	if doc.Info != nil {
		output.Title = doc.Info.Title
		output.Description = doc.Info.Description
	}

	for _, s := range doc.Servers {
		if s != nil {
			output.Servers = append(output.Servers, parseSummaryServer{
				URL:         s.URL,
				Description: s.Description,
			})
		}
	}

	// Same deterministic order the generator emits in.
	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, method := range parser.MethodOrder {
			op := item.OperationFor(method)
			if op == nil {
				continue
			}
			output.Operations = append(output.Operations, parseSummaryOperation{
				Method:      method,
				Path:        path,
				OperationID: op.OperationID,
				Summary:     op.Summary,
				Deprecated:  op.Deprecated,
			})
		}
	}

	return nil, output, nil
}
