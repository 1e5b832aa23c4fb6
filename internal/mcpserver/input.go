package mcpserver

import (
	"fmt"
	"strings"

	"github.com/oasbind/oasbind/parser"
)

// maxInlineSize caps inline content so a misbehaving client cannot feed the
// server arbitrarily large documents.
const maxInlineSize = 4 << 20

// specInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an interface description file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// resolve parses the document from whichever input was provided.
func (s specInput) resolve() (*parser.ParseResult, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if s.Content != "" {
		if len(s.Content) > maxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead",
				len(s.Content), maxInlineSize)
		}
		return parser.New().ParseReader(strings.NewReader(s.Content))
	}
	return parser.New().Parse(s.File)
}
