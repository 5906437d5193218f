// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

// Type is the type of a value token in the JSON grammar.
type Type byte

// Constants defining the valid Type values.
const (
	Undefined Type = iota // zero value, never emitted
	Object                // open brace "{"
	Array                 // open bracket "["
	String                // quoted string
	Number                // number: digits with an optional fraction
	Boolean               // constant: true or false
	Null                  // constant: null

	numTypes
)

var typeStr = [...]string{
	Undefined: "undefined",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Number:    "number",
	Boolean:   "boolean",
	Null:      "null",
}

func (t Type) String() string {
	if t >= numTypes {
		return "invalid type"
	}
	return typeStr[t]
}

// Valid reports whether t is one of the enumerated types other than
// Undefined.
func (t Type) Valid() bool { return t > Undefined && t < numTypes }

// A Token is a typed reference to a span of the input buffer. A token never
// owns or copies input data.
//
// For a String the span excludes the enclosing quotation marks. For an
// Object or Array, Offset is the position of the open delimiter and Length is
// always zero; the extent of a container is implied by the depth of the tokens
// that follow it.
type Token struct {
	Type   Type
	Offset int
	Length int
}

// Span returns the span of input covered by t.
func (t Token) Span() Span { return Span{Pos: t.Offset, End: t.Offset + t.Length} }

// tokenMeta records structural facts about a token that do not belong in the
// token itself.
type tokenMeta struct {
	key    Span  // the key of an object member, quotes excluded
	member bool  // whether key is set
	depth  uint8 // 0 for the top-level value
}
