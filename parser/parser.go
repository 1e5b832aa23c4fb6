package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/oasbind/oasbind/binderrors"
)

// Parser handles interface description parsing
type Parser struct {
	// ValidateStructure determines whether required top-level sections
	// (paths, components.schemas, servers) are checked after parsing.
	// Generation input must pass this validation, so it defaults to on.
	ValidateStructure bool
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
)

// ParseResult contains the parsed document and metadata.
//
// Callers should treat ParseResult as read-only after parsing: the Document is
// owned by a single generation run and shared structurally with any resolved
// schema trees derived from it.
type ParseResult struct {
	// SourcePath is the input source path the document was read from.
	// If the source was not a file path, this is the name of the method
	// ending in '.yaml' or '.json' based on the detected format.
	SourcePath string
	// SourceFormat is the format of the source data (JSON or YAML)
	SourceFormat SourceFormat
	// Document is the parsed document tree
	Document *SpecDocument
	// Warnings contains non-fatal issues encountered during parsing
	Warnings []string
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Parse parses the interface description document at the given file path.
func (p *Parser) Parse(specPath string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", specPath, err)
	}
	loadTime := time.Since(start)

	result, err := p.parseBytes(data, specPath)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// ParseReader parses an interface description document from a reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read input: %w", err)
	}
	loadTime := time.Since(start)

	result, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	result.SourcePath = "ParseReader." + string(result.SourceFormat)
	result.LoadTime = loadTime
	return result, nil
}

// ParseBytes parses an interface description document already held in memory.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	result, err := p.parseBytes(data, "")
	if err != nil {
		return nil, err
	}
	result.SourcePath = "ParseBytes." + string(result.SourceFormat)
	return result, nil
}

func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	result := &ParseResult{
		SourcePath:   sourcePath,
		SourceFormat: detectFormatFromContent(data),
		SourceSize:   int64(len(data)),
		Warnings:     make([]string, 0),
	}

	var doc SpecDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, binderrors.WrapParseFailure(sourcePath, err)
	}
	result.Document = &doc

	p.log().Debugf("parsed %s document (%d bytes)", result.SourceFormat, result.SourceSize)

	if p.ValidateStructure {
		if err := p.validateStructure(&doc, sourcePath); err != nil {
			return nil, err
		}
	}

	result.Stats = GetDocumentStats(&doc)
	return result, nil
}

// validateStructure checks the required top-level sections of a document.
// All missing sections are reported together so a caller sees the full
// shape of the problem in one pass.
func (p *Parser) validateStructure(doc *SpecDocument, sourcePath string) error {
	var errs []error

	if len(doc.Paths) == 0 {
		errs = append(errs, binderrors.NewFormatError(sourcePath, "paths",
			"document declares no paths; at least one path item is required"))
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		errs = append(errs, binderrors.NewFormatError(sourcePath, "components.schemas",
			"reusable schema table is missing"))
	}
	if len(doc.Servers) == 0 {
		errs = append(errs, binderrors.NewFormatError(sourcePath, "servers",
			"at least one server base URL is required"))
	}

	return errors.Join(errs...)
}

// detectFormatFromContent detects whether data is JSON or YAML by inspecting
// the first non-whitespace byte. JSON documents begin with '{' or '[';
// everything else is treated as YAML (of which JSON is a subset anyway).
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}
