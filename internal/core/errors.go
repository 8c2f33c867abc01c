package core

import "strconv"

// ErrCode enumerates the compile-time error codes from spec.md §4.4.
type ErrCode int

const (
	BOGESC ErrCode = iota // bogus escape sequence
	HEXESC                // malformed \x escape
	EMPCLA                // empty character class
	BADRAN                // range endpoints out of order
	BADQAN                // malformed quantifier
	BADINT                // malformed {n,m} interval
	UNBBRA                // unterminated [
	UNBPAR                // unterminated (
	QUEPAR                // unrecognized (?X construct
	NAMEXT                // duplicate group name
	GRPDIG                // group name starts with a digit
	NOTREP                // quantifier with nothing to repeat
	BADREF                // backreference/subroutine to unknown group
	NERROR                // internal/unclassified error
)

var errCodeText = map[ErrCode]string{
	BOGESC: "bogus escape sequence",
	HEXESC: "malformed hexadecimal escape",
	EMPCLA: "empty character class",
	BADRAN: "range out of order",
	BADQAN: "malformed quantifier",
	BADINT: "malformed repetition interval",
	UNBBRA: "unterminated bracket expression",
	UNBPAR: "unterminated group",
	QUEPAR: "unrecognized (? construct",
	NAMEXT: "duplicate group name",
	GRPDIG: "group name starts with a digit",
	NOTREP: "nothing to repeat",
	BADREF: "reference to a nonexistent group",
	NERROR: "internal parser error",
}

func (e ErrCode) String() string {
	if s, ok := errCodeText[e]; ok {
		return s
	}
	return "unknown error"
}

// CompileError is the error type returned by the parser. It carries a
// programmatically distinguishable Code plus the byte offset in the
// pattern source where the error was detected.
type CompileError struct {
	Code   ErrCode
	Offset int
}

func (e *CompileError) Error() string {
	return "core: " + e.Code.String() + " at offset " + strconv.Itoa(e.Offset)
}

func newCompileError(code ErrCode, offset int) *CompileError {
	return &CompileError{Code: code, Offset: offset}
}
