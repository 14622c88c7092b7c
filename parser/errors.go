package parser

import "fmt"

// ErrKind classifies parse failures.
type ErrKind int

const (
	// ErrUnexpectedChar means the lookahead matched no grammar alternative.
	ErrUnexpectedChar ErrKind = iota
	// ErrExpectedLiteral means a required literal token was absent.
	ErrExpectedLiteral
	// ErrUnterminatedString means a string literal was not closed before EOF.
	ErrUnterminatedString
	// ErrInvalidNumber means a malformed numeric literal (bad sign or decimal).
	ErrInvalidNumber
	// ErrExpectedIdentifier means an identifier was expected where none could be read.
	ErrExpectedIdentifier
	// ErrUnexpectedEOF means a structural close was expected but input ran out.
	ErrUnexpectedEOF
	// ErrMaxDepth means container nesting exceeded the recursion bound.
	ErrMaxDepth
)

var errKindNames = map[ErrKind]string{
	ErrUnexpectedChar:     "unexpected character",
	ErrExpectedLiteral:    "expected literal",
	ErrUnterminatedString: "unterminated string",
	ErrInvalidNumber:      "invalid number",
	ErrExpectedIdentifier: "expected identifier",
	ErrUnexpectedEOF:      "unexpected end of input",
	ErrMaxDepth:           "max depth exceeded",
}

func (k ErrKind) String() string {
	if name, ok := errKindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// ParseError is the error type for all parse failures. Every error
// carries the line, column, and byte offset of the failure point.
type ParseError struct {
	Kind    ErrKind
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func errorf(kind ErrKind, pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
