package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasbind/oasbind/generator"
)

type generateInput struct {
	Spec        specInput `json:"spec"                   jsonschema:"The interface description document to generate bindings from"`
	PackageName string    `json:"package_name,omitempty" jsonschema:"Go package name for generated code (default: api)"`
	OutputName  string    `json:"output_name,omitempty"  jsonschema:"Artifact file name (default: generated_client.go)"`
	OutputDir   string    `json:"output_dir,omitempty"   jsonschema:"Directory to write the artifact to; omit to return the source inline"`
	Strict      bool      `json:"strict,omitempty"       jsonschema:"Treat warnings as fatal and withhold the artifact"`
}

type generateIssueInfo struct {
	Severity  string `json:"severity"`
	Path      string `json:"path,omitempty"`
	Operation string `json:"operation,omitempty"`
	Message   string `json:"message"`
}

type generateOutput struct {
	Success             bool                `json:"success"`
	PackageName         string              `json:"package_name"`
	FileName            string              `json:"file_name"`
	FileSize            int                 `json:"file_size"`
	GeneratedOperations int                 `json:"generated_operations"`
	WarningCount        int                 `json:"warning_count"`
	CriticalCount       int                 `json:"critical_count"`
	Issues              []generateIssueInfo `json:"issues,omitempty"`
	OutputDir           string              `json:"output_dir,omitempty"`
	Content             string              `json:"content,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	opts := []generator.Option{
		generator.WithParsed(*parseResult),
		generator.WithStrictMode(input.Strict),
	}
	if input.PackageName != "" {
		opts = append(opts, generator.WithPackageName(input.PackageName))
	}
	if input.OutputName != "" {
		opts = append(opts, generator.WithOutputName(input.OutputName))
	}

	result, err := generator.GenerateWithOptions(opts...)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	output := generateOutput{
		Success:             result.Success,
		PackageName:         result.PackageName,
		FileName:            result.File.Name,
		FileSize:            len(result.File.Content),
		GeneratedOperations: result.GeneratedOperations,
		WarningCount:        result.WarningCount,
		CriticalCount:       result.CriticalCount,
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, generateIssueInfo{
			Severity:  string(issue.Severity),
			Path:      issue.Path,
			Operation: issue.Operation,
			Message:   issue.Message,
		})
	}

	if input.OutputDir != "" {
		if err := result.WriteFile(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated file: %w", err)), generateOutput{}, nil
		}
		output.OutputDir = input.OutputDir
	} else {
		output.Content = string(result.File.Content)
	}

	return nil, output, nil
}
