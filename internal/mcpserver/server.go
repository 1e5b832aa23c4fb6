// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes oasbind capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oasbind/oasbind"
)

const serverInstructions = `oasbind MCP server — parses interface description documents and generates deterministic Go client bindings.

Tools:
- parse: structural summary of a document (title, servers, path/operation/schema counts, operation list)
- generate: produce the client binding artifact, inline or written to a directory

Documents are provided as either a file path or inline content (JSON or YAML).`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasbind", Version: oasbind.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "parse",
		Description: "Parse an interface description document. Returns a structural summary: title, version, servers, path/operation/schema counts, and the list of operations with their derived binding names.",
	}, handleParse)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate Go client bindings from an interface description document. Output is deterministic: repeated runs over the same document are byte-identical. Set output_dir to write the artifact to disk, otherwise the generated source is returned inline.",
	}, handleGenerate)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
