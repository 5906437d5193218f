// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

import "go4.org/mem"

// scanOne classifies and consumes the single value token beginning at or
// after pos in buf, skipping leading whitespace. It returns the token and the
// offset just past it.
//
// Structural punctuation ("}", "]", ",", ":") is not a value token, and is
// handled by the parser before scanOne is called. For an object or array only
// the open delimiter is consumed.
//
// In case of error, scanOne returns the offset where the error was detected
// and a non-Success code; the caller must not record a token.
func scanOne(buf []byte, pos int) (Token, int, Code) {
	pos = skipSpace(buf, pos)
	if pos >= len(buf) {
		return Token{}, pos, UnexpectedEnd
	}

	switch ch := buf[pos]; {
	case ch == '{':
		return Token{Type: Object, Offset: pos}, pos + 1, Success
	case ch == '[':
		return Token{Type: Array, Offset: pos}, pos + 1, Success
	case ch == '"':
		return scanString(buf, pos)
	case isNumStart(ch):
		return scanNumber(buf, pos)
	case ch == 't':
		return scanLiteral(buf, pos, litTrue, Boolean, BadBoolean)
	case ch == 'f':
		return scanLiteral(buf, pos, litFalse, Boolean, BadBoolean)
	case ch == 'n':
		return scanLiteral(buf, pos, litNull, Null, Syntax)
	case isAlpha(ch):
		return Token{}, pos, Syntax
	default:
		return Token{}, pos, InvalidCharacter
	}
}

var (
	litTrue  = mem.S("true")
	litFalse = mem.S("false")
	litNull  = mem.S("null")
)

// scanString scans a quoted string whose open quote is at buf[pos].
// Escapes are checked for well-formedness but not decoded.
func scanString(buf []byte, pos int) (Token, int, Code) {
	start := pos + 1
	for i := start; i < len(buf); i++ {
		switch ch := buf[i]; {
		case ch == '"':
			if i-start > MaxStringLen {
				return Token{}, start + MaxStringLen, MaxStringLenExceeded
			}
			return Token{Type: String, Offset: start, Length: i - start}, i + 1, Success
		case ch == '\\':
			n := escapeLen(buf[i+1:])
			if n == 0 {
				return Token{}, i, BadString
			}
			i += n
		case ch < ' ':
			return Token{}, i, BadString
		}
	}
	return Token{}, len(buf), BadString
}

// escapeLen reports the number of bytes of a valid escape sequence at the
// front of rest, not counting the backslash, or 0 if rest does not begin with
// a valid escape.
func escapeLen(rest []byte) int {
	if len(rest) == 0 {
		return 0
	}
	switch rest[0] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		return 1
	case 'u':
		if len(rest) < 5 {
			return 0
		}
		for _, ch := range rest[1:5] {
			if !isHexDigit(ch) {
				return 0
			}
		}
		return 5
	}
	return 0
}

// scanNumber scans a number at buf[pos]: an optional minus sign followed by
// digits with at most one decimal point, which may be neither the first nor the
// last byte of the digits.
func scanNumber(buf []byte, pos int) (Token, int, Code) {
	i := pos
	if buf[i] == '-' {
		i++
	}
	if i == len(buf) || !isDigit(buf[i]) {
		return Token{}, i, BadNumber
	}
	var dots int
	for ; i < len(buf); i++ {
		if ch := buf[i]; ch == '.' {
			dots++
			if dots > 1 {
				return Token{}, i, BadNumber
			}
		} else if !isDigit(ch) {
			break
		}
	}
	if buf[i-1] == '.' {
		return Token{}, i, BadNumber
	}
	return Token{Type: Number, Offset: pos, Length: i - pos}, i, Success
}

// scanLiteral matches the constant want at buf[pos]. The constant must end at
// a word boundary.
func scanLiteral(buf []byte, pos int, want mem.RO, typ Type, fail Code) (Token, int, Code) {
	end := pos + want.Len()
	if !mem.HasPrefix(mem.B(buf[pos:]), want) || (end < len(buf) && isWordByte(buf[end])) {
		return Token{}, pos, fail
	}
	return Token{Type: typ, Offset: pos, Length: want.Len()}, end, Success
}

func skipSpace(buf []byte, pos int) int {
	for pos < len(buf) && isSpace(buf[pos]) {
		pos++
	}
	return pos
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isAlpha(ch byte) bool    { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isWordByte(ch byte) bool { return isAlpha(ch) || isDigit(ch) || ch == '_' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
