package parser

import (
	"bytes"
	"strings"
)

// Scanner is a byte cursor over in-memory Bring source. It owns the
// position state (offset, line, column) for one parse session and
// provides the primitive navigation the grammar is built on. A Scanner
// must not be shared across concurrent parses.
type Scanner struct {
	src  []byte
	pos  int // current byte offset
	line int // current line (1-based)
	col  int // current column (1-based)
}

// NewScanner creates a Scanner positioned at the start of src.
func NewScanner(src []byte) *Scanner {
	return &Scanner{src: src, line: 1, col: 1}
}

// Pos returns the current source position.
func (s *Scanner) Pos() Position {
	return Position{Line: s.line, Column: s.col, Offset: s.pos}
}

// AtEnd reports whether the cursor is at or past the end of input.
func (s *Scanner) AtEnd() bool {
	return s.pos >= len(s.src)
}

// Peek returns the character at the cursor without consuming it, or 0
// at end of input.
func (s *Scanner) Peek() byte {
	if s.AtEnd() {
		return 0
	}
	return s.src[s.pos]
}

// Advance consumes and returns the current character, updating line and
// column. A newline increments the line and resets the column to 1.
// Advancing at end of input is a no-op returning 0.
func (s *Scanner) Advance() byte {
	if s.AtEnd() {
		return 0
	}
	ch := s.src[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

// MatchLiteral consumes lit if the remaining input starts with it,
// advancing line/column per character. Otherwise the cursor is untouched.
func (s *Scanner) MatchLiteral(lit string) bool {
	if !bytes.HasPrefix(s.src[s.pos:], []byte(lit)) {
		return false
	}
	for i := 0; i < len(lit); i++ {
		s.Advance()
	}
	return true
}

// ExpectLiteral is MatchLiteral that fails with an ExpectedLiteral error
// when the input does not start with lit.
func (s *Scanner) ExpectLiteral(lit string) error {
	if s.MatchLiteral(lit) {
		return nil
	}
	if s.AtEnd() {
		return errorf(ErrExpectedLiteral, s.Pos(), "expected %q, got end of input", lit)
	}
	return errorf(ErrExpectedLiteral, s.Pos(), "expected %q, got %q", lit, s.Peek())
}

// SkipWhitespace consumes a maximal run of spaces, tabs, carriage
// returns, and newlines.
func (s *Scanner) SkipWhitespace() {
	for !s.AtEnd() {
		switch s.Peek() {
		case ' ', '\t', '\r', '\n':
			s.Advance()
		default:
			return
		}
	}
}

// SkipComment consumes a # comment through the end of the line. The
// newline itself is left for the next whitespace skip. The cursor must
// be on the '#'.
func (s *Scanner) SkipComment() {
	for !s.AtEnd() && s.Peek() != '\n' {
		s.Advance()
	}
}

// ReadString reads a quoted string literal. The opener is either " or '
// and the closer must match it. Recognized escapes are \n, \t, \r, \\,
// \", and \'; any other escaped character passes through unchanged.
func (s *Scanner) ReadString() (string, error) {
	pos := s.Pos()
	quote := s.Advance()

	var sb strings.Builder
	for {
		if s.AtEnd() {
			return "", errorf(ErrUnterminatedString, pos, "unterminated string")
		}
		ch := s.Advance()
		if ch == quote {
			return sb.String(), nil
		}
		if ch == '\\' {
			if s.AtEnd() {
				return "", errorf(ErrUnterminatedString, pos, "unterminated string escape")
			}
			esc := s.Advance()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			default:
				// Unknown escapes pass through as the escaped character.
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(ch)
	}
}

// ReadNumber reads a numeric literal: optional leading '-', one or more
// digits, and an optional '.' followed by one or more digits. It returns
// the raw literal text and whether it contained a decimal point.
func (s *Scanner) ReadNumber() (string, bool, error) {
	start := s.pos

	if s.Peek() == '-' {
		s.Advance()
		if !isDigit(s.Peek()) {
			return "", false, errorf(ErrInvalidNumber, s.Pos(), "expected digit after '-'")
		}
	}

	for isDigit(s.Peek()) {
		s.Advance()
	}

	isFloat := false
	if s.Peek() == '.' {
		s.Advance()
		if !isDigit(s.Peek()) {
			return "", false, errorf(ErrInvalidNumber, s.Pos(), "expected digit after '.'")
		}
		isFloat = true
		for isDigit(s.Peek()) {
			s.Advance()
		}
	}

	return string(s.src[start:s.pos]), isFloat, nil
}

// ReadIdentifier reads an identifier: [A-Za-z_][A-Za-z0-9_]*.
func (s *Scanner) ReadIdentifier() (string, error) {
	if !isIdentStart(s.Peek()) {
		return "", errorf(ErrExpectedIdentifier, s.Pos(), "expected identifier")
	}
	start := s.pos
	for isIdentPart(s.Peek()) {
		s.Advance()
	}
	return string(s.src[start:s.pos]), nil
}

// matchKeyword consumes word only when it is followed by a non-identifier
// character, so identifiers like "trueish" or "schemaVersion" are not
// split.
func (s *Scanner) matchKeyword(word string) bool {
	if !bytes.HasPrefix(s.src[s.pos:], []byte(word)) {
		return false
	}
	if s.pos+len(word) < len(s.src) && isIdentPart(s.src[s.pos+len(word)]) {
		return false
	}
	return s.MatchLiteral(word)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
