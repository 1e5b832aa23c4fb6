// Package oasbind generates Go client bindings from OpenAPI-style interface
// description documents.
//
// oasbind reads a YAML or JSON description of a remote service (servers, paths,
// reusable schemas, security schemes), builds a normalized model of every
// operation, and emits a single self-contained Go source file exposing one
// method per operation on a constructible client.
//
// The two main packages are:
//
//   - parser: loads a description document into a typed SpecDocument and
//     resolves internal schema references, breaking reference cycles.
//   - generator: builds operation models from a parsed document and emits the
//     client source, written atomically to the output path.
//
// A generation run is a single sequential pass: load, resolve and build, emit.
// Structural problems in the input abort the run before any output is written;
// shapes the generator cannot model precisely degrade to opaque types and are
// reported as warnings, so the rest of the document still produces usable
// bindings. Output is byte-for-byte reproducible for unchanged input.
//
// The cmd/oasbind command wraps both packages behind a small CLI and an MCP
// (Model Context Protocol) stdio server.
package oasbind
