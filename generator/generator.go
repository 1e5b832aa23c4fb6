// Package generator turns parsed interface descriptions into deterministic,
// strongly typed Go client bindings. The output is a single self-contained
// source file: one exported method per declared operation, a params struct
// per operation with query or header parameters, and credential handling
// derived from the document's security schemes.
//
// Generation is deterministic: the same parsed document always produces
// byte-identical output, because operations are emitted in lexicographic path
// order with a fixed method order and name collisions are numbered in
// encounter order.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oasbind/oasbind/binderrors"
	"github.com/oasbind/oasbind/internal/fileutil"
	"github.com/oasbind/oasbind/internal/issues"
	"github.com/oasbind/oasbind/internal/severity"
	"github.com/oasbind/oasbind/parser"
)

// DefaultOutputName is the artifact file name used when none is configured.
const DefaultOutputName = "generated_client.go"

// GenerateIssue is a non-fatal diagnostic produced during generation.
type GenerateIssue = issues.Issue

// GeneratedFile represents the generated artifact.
type GeneratedFile struct {
	// Name is the file name (without directory path)
	Name string
	// Content is the file content
	Content []byte
}

// GenerateResult contains the results of a generation operation.
type GenerateResult struct {
	// File is the single generated artifact
	File GeneratedFile
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat parser.SourceFormat
	// SourcePath is the path the source document was loaded from
	SourcePath string
	// PackageName is the Go package name used in generation
	PackageName string
	// Issues contains all generation issues in the order they were found
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the source document
	Stats parser.DocumentStats
	// GeneratedOperations is the count of callable bindings generated
	GeneratedOperations int
}

// HasWarnings returns true if any warnings were recorded.
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

func (r *GenerateResult) addIssue(issue issues.Issue) {
	r.Issues = append(r.Issues, issue)
}

// WriteFile writes the generated artifact into outputDir atomically: the
// content lands in a temp file first and is renamed into place, so a crash
// mid-write never leaves a truncated artifact behind.
func (r *GenerateResult) WriteFile(outputDir string) error {
	path := filepath.Join(outputDir, r.File.Name)
	if err := fileutil.WriteFileAtomic(path, r.File.Content, fileutil.ReadableByAll); err != nil {
		return fmt.Errorf("generator: failed to write %s: %w", r.File.Name, err)
	}
	return nil
}

// Generator generates Go client bindings from interface descriptions.
type Generator struct {
	// PackageName is the package name for the generated code
	PackageName string
	// OutputName is the artifact file name
	OutputName string
	// StrictMode treats warnings as fatal
	StrictMode bool
	// IncludeInfo includes document title and version in the generated
	// header and keeps info-severity issues in the result; disabling it
	// suppresses both
	IncludeInfo bool
}

// New creates a new Generator instance with default settings.
func New() *Generator {
	return &Generator{
		PackageName: "api",
		OutputName:  DefaultOutputName,
		StrictMode:  false,
		IncludeInfo: true,
	}
}

// Option is a function that configures a generate operation.
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation.
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	parsed   *parser.ParseResult

	packageName string
	outputName  string
	strictMode  bool
	includeInfo bool
}

// WithFilePath specifies a file path as the input source.
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithParsed specifies a parsed ParseResult as the input source.
func WithParsed(result parser.ParseResult) Option {
	return func(cfg *generateConfig) error {
		cfg.parsed = &result
		return nil
	}
}

// WithPackageName specifies the Go package name for generated code.
// Default: "api"
func WithPackageName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &binderrors.ConfigError{Option: "package name", Message: "cannot be empty"}
		}
		if !isValidPackageName(name) {
			return &binderrors.ConfigError{Option: "package name", Message: fmt.Sprintf("%q is not a valid Go package name", name)}
		}
		cfg.packageName = name
		return nil
	}
}

// WithOutputName specifies the artifact file name.
// Default: "generated_client.go"
func WithOutputName(name string) Option {
	return func(cfg *generateConfig) error {
		if name == "" {
			return &binderrors.ConfigError{Option: "output name", Message: "cannot be empty"}
		}
		if strings.ContainsAny(name, `/\`) {
			return &binderrors.ConfigError{Option: "output name", Message: "must be a bare file name"}
		}
		cfg.outputName = name
		return nil
	}
}

// WithStrictMode makes warnings fatal: generation fails and no artifact is
// produced when any warning was recorded.
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithIncludeInfo controls informational output: the document title and
// version in the generated file header, and info-severity issues in the
// result. Disabling it suppresses both.
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.includeInfo = enabled
		return nil
	}
}

// GenerateWithOptions generates client bindings using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("api.yaml"),
//	    generator.WithPackageName("sketchengine"),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	g := New()
	if cfg.packageName != "" {
		g.PackageName = cfg.packageName
	}
	if cfg.outputName != "" {
		g.OutputName = cfg.outputName
	}
	g.StrictMode = cfg.strictMode
	g.IncludeInfo = cfg.includeInfo

	if cfg.parsed != nil {
		return g.GenerateParsed(*cfg.parsed)
	}
	return g.Generate(*cfg.filePath)
}

func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{includeInfo: true}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.filePath == nil && cfg.parsed == nil {
		return nil, &binderrors.ConfigError{Option: "input", Message: "an input source is required: use WithFilePath or WithParsed"}
	}
	if cfg.filePath != nil && cfg.parsed != nil {
		return nil, &binderrors.ConfigError{Option: "input", Message: "only one input source may be set"}
	}
	return cfg, nil
}

// Generate parses the source document at specPath and generates bindings.
func (g *Generator) Generate(specPath string) (*GenerateResult, error) {
	parseResult, err := parser.New().Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to parse source document: %w", err)
	}
	return g.GenerateParsed(*parseResult)
}

// GenerateParsed generates bindings from an already-parsed document.
//
// Reference failures (dangling refs, placeholder mismatches) abort generation
// and no artifact is produced. Warnings do not abort unless StrictMode is on;
// with StrictMode the result still carries the issues but the artifact is
// withheld.
func (g *Generator) GenerateParsed(parseResult parser.ParseResult) (*GenerateResult, error) {
	startTime := time.Now()

	result := &GenerateResult{
		SourceFormat: parseResult.SourceFormat,
		SourcePath:   parseResult.SourcePath,
		PackageName:  g.PackageName,
		Issues:       make([]GenerateIssue, 0),
		LoadTime:     parseResult.LoadTime,
		SourceSize:   parseResult.SourceSize,
		Stats:        parseResult.Stats,
	}
	if result.PackageName == "" {
		result.PackageName = "api"
	}

	doc := parseResult.Document
	if doc == nil {
		return nil, fmt.Errorf("generator: parse result carries no document")
	}

	builder := newModelBuilder(doc, result.addIssue)
	models, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("generator: failed to build operation models: %w", err)
	}

	newAuthBinder(doc, result.addIssue).Annotate(models)

	outputName := g.OutputName
	if outputName == "" {
		outputName = DefaultOutputName
	}

	emitter := newCodeEmitter(doc, result.PackageName, parseResult.SourcePath, g.IncludeInfo, result.addIssue)
	content := emitter.Emit(models)

	result.GeneratedOperations = len(models)
	result.GenerateTime = time.Since(startTime)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	result.File = GeneratedFile{Name: outputName, Content: content}

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != severity.SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}

	return result, nil
}

func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case severity.SeverityInfo:
			result.InfoCount++
		case severity.SeverityWarning:
			result.WarningCount++
		case severity.SeverityError, severity.SeverityCritical:
			result.CriticalCount++
		}
	}
}

// isValidPackageName reports whether name is a usable Go package name:
// lower-case letters, digits, and underscores, starting with a letter.
func isValidPackageName(name string) bool {
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return name != "" && !goReservedWords[name]
}
