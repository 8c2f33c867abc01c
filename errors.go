package vinex

import "github.com/vinex/vinex/internal/core"

// SyntaxError reports a malformed pattern. Code identifies the violation
// programmatically; Offset is the byte position in the pattern source
// where it was detected.
type SyntaxError struct {
	pattern string
	err     *core.CompileError
}

func (e *SyntaxError) Error() string {
	return "vinex: " + e.err.Error() + " in pattern " + quotePattern(e.pattern)
}

// Unwrap exposes the underlying *core.CompileError so callers can
// errors.As down to the parser's error code.
func (e *SyntaxError) Unwrap() error { return e.err }

// Code returns the underlying parser error code.
func (e *SyntaxError) Code() core.ErrCode { return e.err.Code }

// Offset returns the byte offset in the pattern source where the error
// was detected.
func (e *SyntaxError) Offset() int { return e.err.Offset }

func quotePattern(s string) string {
	if len(s) > 60 {
		s = s[:57] + "..."
	}
	return "`" + s + "`"
}
