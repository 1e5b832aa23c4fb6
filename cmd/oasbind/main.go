package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oasbind/oasbind"
	"github.com/oasbind/oasbind/generator"
	"github.com/oasbind/oasbind/internal/mcpserver"
	"github.com/oasbind/oasbind/parser"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("oasbind v%s\n", oasbind.Version())
	case "help", "-h", "--help":
		printUsage()
	case "generate":
		if err := handleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := handleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := handleMCP(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// generateFlags contains flags for the generate command
type generateFlags struct {
	output      string
	packageName string
	outputName  string
	strict      bool
	quiet       bool
}

func setupGenerateFlags() (*flag.FlagSet, *generateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &generateFlags{}

	fs.StringVar(&flags.output, "o", ".", "output directory for the generated file")
	fs.StringVar(&flags.output, "output", ".", "output directory for the generated file")
	fs.StringVar(&flags.packageName, "p", "api", "Go package name for generated code")
	fs.StringVar(&flags.packageName, "package", "api", "Go package name for generated code")
	fs.StringVar(&flags.outputName, "name", generator.DefaultOutputName, "artifact file name")
	fs.BoolVar(&flags.strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.quiet, "q", false, "suppress the issue listing")
	fs.BoolVar(&flags.quiet, "quiet", false, "suppress the issue listing")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasbind generate [flags] <file|->\n\n")
		_, _ = fmt.Fprintf(output, "Generate Go client bindings from an interface description.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasbind generate api.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasbind generate -o ./client -p sketchengine api.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasbind generate --strict api.yaml\n")
		_, _ = fmt.Fprintf(output, "  cat api.yaml | oasbind generate -\n")
	}

	return fs, flags
}

func handleGenerate(args []string) error {
	fs, flags := setupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, or '-' for stdin")
	}

	specPath := fs.Arg(0)

	g := generator.New()
	g.PackageName = flags.packageName
	g.OutputName = flags.outputName
	g.StrictMode = flags.strict

	var result *generator.GenerateResult
	var err error
	if specPath == "-" {
		parseResult, parseErr := parser.New().ParseReader(os.Stdin)
		if parseErr != nil {
			return fmt.Errorf("parsing stdin: %w", parseErr)
		}
		result, err = g.GenerateParsed(*parseResult)
	} else {
		result, err = g.Generate(specPath)
	}

	if result != nil && !flags.quiet {
		printIssues(result)
	}
	if err != nil {
		return err
	}

	if err := result.WriteFile(flags.output); err != nil {
		return err
	}

	fmt.Printf("Generated %d operation(s) into %s (package %s)\n",
		result.GeneratedOperations, result.File.Name, result.PackageName)
	if result.WarningCount > 0 {
		fmt.Printf("Completed with %d warning(s)\n", result.WarningCount)
	}
	return nil
}

// printIssues reports generation issues on stderr so they never mix with
// machine-readable output.
func printIssues(result *generator.GenerateResult) {
	for _, issue := range result.Issues {
		fmt.Fprintf(os.Stderr, "  %s\n", issue.String())
	}
}

// parseCmdFlags contains flags for the parse command
type parseCmdFlags struct {
	noValidate bool
}

func setupParseFlags() (*flag.FlagSet, *parseCmdFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &parseCmdFlags{}

	fs.BoolVar(&flags.noValidate, "no-validate", false, "skip structural validation during parsing")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: oasbind parse [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Parse and summarize an interface description document.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  oasbind parse api.yaml\n")
		_, _ = fmt.Fprintf(output, "  oasbind parse --no-validate draft.yaml\n")
	}

	return fs, flags
}

func handleParse(args []string) error {
	fs, flags := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path")
	}

	p := parser.New()
	p.ValidateStructure = !flags.noValidate

	result, err := p.Parse(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	fmt.Printf("Interface Description Parser\n")
	fmt.Printf("============================\n\n")
	fmt.Printf("oasbind version: %s\n", oasbind.Version())
	fmt.Printf("Document: %s\n", result.SourcePath)
	fmt.Printf("Format: %s\n", result.SourceFormat)
	fmt.Printf("Source Size: %d bytes\n", result.SourceSize)
	fmt.Printf("Paths: %d\n", result.Stats.PathCount)
	fmt.Printf("Operations: %d\n", result.Stats.OperationCount)
	fmt.Printf("Schemas: %d\n", result.Stats.SchemaCount)
	fmt.Printf("Security Schemes: %d\n", result.Stats.SecuritySchemeCount)
	fmt.Printf("Load Time: %v\n", result.LoadTime)

	if len(result.Warnings) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
	}
	return nil
}

func handleMCP() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

func printUsage() {
	fmt.Println(`oasbind - deterministic Go client bindings from interface descriptions

Usage:
  oasbind <command> [options]

Commands:
  generate    Generate Go client bindings from a document
  parse       Parse and summarize a document
  mcp         Run as an MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasbind generate api.yaml
  oasbind generate -o ./client -p sketchengine api.yaml
  oasbind parse api.yaml

Run 'oasbind <command> --help' for more information on a command.`)
}
