// This file implements name conversion from interface description identifiers
// to valid Go identifiers, including reserved word escaping, PascalCase and
// camelCase conversion, and description formatting.

package generator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxDescriptionLength is the maximum length for descriptions in Go comments
// before truncation. This keeps generated code readable and prevents
// excessively long comment lines.
const maxDescriptionLength = 200

// titleCaser capitalizes the first rune of a word without lowering the rest,
// so acronym-style names like "CQL" survive conversion.
var titleCaser = cases.Title(language.English, cases.NoLower)

// goReservedWords contains Go reserved keywords that cannot be used as
// identifiers. Only actual keywords are listed, not predeclared identifiers
// like "error", because those can be shadowed.
var goReservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// escapeReservedWord checks if a name is a Go reserved keyword and escapes it
// by appending an underscore if necessary. The check is case-insensitive
// because PascalCase names like "Range" or "Type" should still be escaped.
func escapeReservedWord(name string) string {
	if goReservedWords[strings.ToLower(name)] {
		return name + "_"
	}
	return name
}

// toTypeName converts an interface description name to a valid exported Go
// identifier (PascalCase). It splits on non-alphanumeric characters, ensures
// the name starts with a letter, and escapes Go reserved words.
func toTypeName(s string) string {
	if s == "" {
		return "Type"
	}

	var parts []string
	var current strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	var result strings.Builder
	for _, part := range parts {
		first, _ := utf8.DecodeRuneInString(part)
		if unicode.IsLetter(first) {
			result.WriteString(titleCaser.String(part))
		} else {
			result.WriteString(part)
		}
	}

	name := result.String()
	if name == "" {
		return "Type"
	}

	// Ensure starts with a letter
	if !unicode.IsLetter(rune(name[0])) {
		name = "T" + name
	}

	return escapeReservedWord(name)
}

// toFieldName converts a parameter or property name to a valid Go field name
// (PascalCase).
func toFieldName(s string) string {
	return toTypeName(s)
}

// toParamName converts a parameter name to a valid Go argument name
// (camelCase).
func toParamName(s string) string {
	name := toTypeName(s)
	if len(name) > 0 {
		name = strings.ToLower(name[:1]) + name[1:]
	} else {
		name = "param"
	}
	return escapeReservedWord(name)
}

// isValidIdentifier reports whether s is usable verbatim as an exported Go
// identifier: letters, digits, and underscores only, starting with an
// uppercase letter, and not a reserved word.
func isValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return !goReservedWords[strings.ToLower(s)]
}

// methodNameFromPathMethod derives a binding name from an HTTP method and a
// path template when no operation identifier is declared. Path parameter
// braces become "By" word boundaries: GET /corpora/{corpusId} -> GetCorporaByCorpusId.
func methodNameFromPathMethod(path, method string) string {
	pathPart := path
	pathPart = strings.ReplaceAll(pathPart, "/", " ")
	pathPart = strings.ReplaceAll(pathPart, "{", "By ")
	pathPart = strings.ReplaceAll(pathPart, "}", "")
	return toTypeName(method + " " + pathPart)
}

// formatMultilineComment formats a description as multi-line Go comments,
// with methodName prefixed on the first line. Text without newlines becomes a
// single-line comment.
func formatMultilineComment(text, methodName, indent string) string {
	if text == "" {
		return ""
	}

	var buf strings.Builder
	lines := strings.Split(text, "\n")

	firstLine := strings.TrimSpace(lines[0])
	buf.WriteString(indent)
	buf.WriteString("// ")
	buf.WriteString(methodName)
	if firstLine != "" {
		buf.WriteString(" ")
		buf.WriteString(firstLine)
	}
	buf.WriteString("\n")

	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line != "" {
			buf.WriteString(indent)
			buf.WriteString("// ")
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// cleanDescription prepares a description for use in a single-line Go comment.
// It removes newlines, trims whitespace, and truncates long descriptions at a
// rune boundary.
func cleanDescription(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.TrimSpace(s)
	if len(s) > maxDescriptionLength {
		runes := []rune(s)
		if len(runes) > maxDescriptionLength-3 {
			s = string(runes[:maxDescriptionLength-3]) + "..."
		}
	}
	return s
}
