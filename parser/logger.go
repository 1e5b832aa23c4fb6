package parser

// Logger is the optional debug logging hook for the parser.
// Implementations must be safe for use from a single goroutine; the parser
// never logs concurrently.
type Logger interface {
	Debugf(format string, args ...any)
}

// NopLogger discards all log output. It is used when no Logger is configured.
type NopLogger struct{}

// Debugf implements Logger by discarding the message.
func (NopLogger) Debugf(string, ...any) {}
