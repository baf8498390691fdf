package pgb

import (
	"fmt"
)

/*
Receives failed queries for diagnostics. The params are already formatted and,
if the logger implements `ParamSanitizer`, sanitized. The conn identifies the
connection that ran the query, if known. Implementations must support
concurrent use.
*/
type Logger interface {
	LogQueryError(text string, params string, conn string)
}

/*
Optional extension for `Logger`. If implemented, `LogError` passes the query
arguments through it before formatting, for example to mask passwords.
*/
type ParamSanitizer interface {
	SanitizeParams([]any) []any
}

/*
Reports a failed query to the logger, sanitizing the arguments if the logger
implements `ParamSanitizer`. Nil logger is a nop.
*/
func LogError(log Logger, text string, args []any, conn string) {
	if log == nil {
		return
	}

	sanitizer, _ := log.(ParamSanitizer)
	if sanitizer != nil {
		args = sanitizer.SanitizeParams(args)
	}

	log.LogQueryError(text, fmt.Sprintf(`%#v`, args), conn)
}

/*
Implemented by `*log.Logger` from the standard library. Used by `StdLogger`.
*/
type Printer interface {
	Printf(format string, args ...any)
}

/*
Implements `Logger` by printing to a `Printer` such as `*log.Logger`. When
`.Sanitize` is set, it's used to sanitize query arguments before printing.
*/
type StdLogger struct {
	Printer  Printer
	Sanitize func([]any) []any
}

// Implement `Logger`.
func (self StdLogger) LogQueryError(text string, params string, conn string) {
	if self.Printer == nil {
		return
	}
	if conn == `` {
		self.Printer.Printf(`[pgb] query failed: %v; params: %v`, text, params)
		return
	}
	self.Printer.Printf(`[pgb] query failed on conn %v: %v; params: %v`, conn, text, params)
}

// Implement `ParamSanitizer`.
func (self StdLogger) SanitizeParams(args []any) []any {
	if self.Sanitize == nil {
		return args
	}
	return self.Sanitize(args)
}

/*
Sanitizer for `StdLogger.Sanitize` which hides all argument values while
keeping their count and types visible.
*/
func MaskParams(args []any) []any {
	if args == nil {
		return nil
	}
	out := make([]any, len(args))
	for ind, val := range args {
		out[ind] = fmt.Sprintf(`<%T>`, val)
	}
	return out
}
