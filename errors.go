// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

import (
	"errors"
	"fmt"
)

// Code is a stable numeric error code reported by the parser. A Code
// satisfies the error interface so that errors.Is can match a *SyntaxError
// against the code it carries.
type Code int

// Constants defining the valid Code values. The numeric values are stable.
const (
	Success              Code = iota // no error
	InvalidCharacter                 // byte cannot begin any JSON value
	Syntax                           // malformed document structure
	Overflow                         // array or object has too many elements
	UnexpectedEnd                    // input ended inside a value
	MaxTokensExceeded                // token table is full
	MaxStringLenExceeded             // string or key is too long
	BadPointer                       // parser is not bound to a buffer
	BadNumber                        // malformed number
	BadObject                        // malformed object
	BadString                        // malformed or unterminated string
	BadArray                         // malformed array
	BadBoolean                       // malformed true or false
	NullParserObj                    // nil parser
	InvalidTypeEnum                  // type argument out of range
	NoFreeSpace                      // nesting stack is full
	ParsingFailed                    // parse failed for an unspecified reason

	numCodes
)

var codeStr = [...]string{
	Success:              "success",
	InvalidCharacter:     "invalid character",
	Syntax:               "syntax error",
	Overflow:             "too many elements",
	UnexpectedEnd:        "unexpected end of input",
	MaxTokensExceeded:    "too many tokens",
	MaxStringLenExceeded: "string too long",
	BadPointer:           "no input buffer",
	BadNumber:            "invalid number",
	BadObject:            "invalid object",
	BadString:            "invalid string",
	BadArray:             "invalid array",
	BadBoolean:           "invalid boolean",
	NullParserObj:        "nil parser",
	InvalidTypeEnum:      "invalid type",
	NoFreeSpace:          "nesting too deep",
	ParsingFailed:        "parsing failed",
}

func (c Code) String() string {
	if c < 0 || c >= numCodes {
		return fmt.Sprintf("code %d", int(c))
	}
	return codeStr[c]
}

// Error satisfies the error interface.
func (c Code) Error() string { return c.String() }

// CodeOf reports the Code associated with err. It returns Success if err ==
// nil, the code carried by err if there is one, and ParsingFailed otherwise.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ParsingFailed
}

// Errors reported by the lookup methods. These are returned without wrapping,
// so they may be compared directly.
var (
	// ErrNotFound indicates that the requested key is not present.
	ErrNotFound = errors.New("key not found")

	// ErrTypeMismatch indicates that a value exists but does not have the
	// requested type.
	ErrTypeMismatch = errors.New("value type mismatch")

	// ErrNotReady indicates that the parser does not hold a successfully
	// parsed document.
	ErrNotReady = errors.New("parser not ready")
)

// SyntaxError is the concrete type of errors reported by Parse for malformed
// or oversized input.
type SyntaxError struct {
	Offset int  // byte offset in the input where the error was detected
	Code   Code // the reason for the failure

	src []byte
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %v", e.Location(), e.Offset, e.Code)
}

// Unwrap supports error wrapping. The result is the Code of the error.
func (e *SyntaxError) Unwrap() error { return e.Code }

// Location reports the line and column where the error was detected.
func (e *SyntaxError) Location() LineCol { return lineCol(e.src, e.Offset) }
