// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson_test

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/okjson"
	"github.com/google/go-cmp/cmp"
)

func tokenTypes(p *okjson.Parser) []okjson.Type {
	var out []okjson.Type
	for _, tok := range p.Tokens() {
		out = append(out, tok.Type)
	}
	return out
}

const (
	tObject = okjson.Object
	tArray  = okjson.Array
	tString = okjson.String
	tNumber = okjson.Number
	tBool   = okjson.Boolean
	tNull   = okjson.Null
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  []okjson.Type
	}{
		// Scalars
		{`42`, []okjson.Type{tNumber}},
		{` -3.5 `, []okjson.Type{tNumber}},
		{`"hello"`, []okjson.Type{tString}},
		{`true`, []okjson.Type{tBool}},
		{"\n\tfalse\r\n", []okjson.Type{tBool}},
		{`null`, []okjson.Type{tNull}},

		// Empty containers
		{`{}`, []okjson.Type{tObject}},
		{`[]`, []okjson.Type{tArray}},
		{` { } `, []okjson.Type{tObject}},

		// Scenarios
		{`{"key": 42}`, []okjson.Type{tObject, tNumber}},
		{`[1, 2, 3]`, []okjson.Type{tArray, tNumber, tNumber, tNumber}},

		// Mixed
		{`{"a": true, "b":[null, 1, 0.5]}`, []okjson.Type{
			tObject, tBool, tArray, tNull, tNumber, tNumber,
		}},
		{`[{"x": "y"}, [], {}, [[false]]]`, []okjson.Type{
			tArray, tObject, tString, tArray, tObject, tArray, tArray, tBool,
		}},
		{`{"": "", "\"": "\u0041"}`, []okjson.Type{tObject, tString, tString}},
	}
	for _, test := range tests {
		p := okjson.New([]byte(test.input))
		if err := p.Parse(); err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, tokenTypes(p)); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
		if p.Len() != len(test.want) {
			t.Errorf("Input: %#q: Len is %d, want %d", test.input, p.Len(), len(test.want))
		}
	}
}

func TestParse_tokenSpans(t *testing.T) {
	const input = `{"name": "okjson", "n": [-1.5, true, null]}`
	p := okjson.MustParse([]byte(input))

	want := []okjson.Token{
		{Type: okjson.Object, Offset: 0},
		{Type: okjson.String, Offset: 10, Length: 6},
		{Type: okjson.Array, Offset: 24},
		{Type: okjson.Number, Offset: 25, Length: 4},
		{Type: okjson.Boolean, Offset: 31, Length: 4},
		{Type: okjson.Null, Offset: 37, Length: 4},
	}
	if diff := cmp.Diff(want, p.Tokens()); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
	for _, tok := range p.Tokens() {
		if end := tok.Offset + tok.Length; end > len(input) {
			t.Errorf("Token %+v extends past the input (%d > %d)", tok, end, len(input))
		}
	}
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		input  string
		want   okjson.Code
		offset int
	}{
		// Empty and truncated documents
		{``, okjson.UnexpectedEnd, 0},
		{`   `, okjson.UnexpectedEnd, 3},
		{`{`, okjson.UnexpectedEnd, 1},
		{`[1, 2`, okjson.UnexpectedEnd, 5},
		{`{"a"`, okjson.UnexpectedEnd, 4},
		{`{"a":`, okjson.UnexpectedEnd, 5},
		{`{"a":1,`, okjson.UnexpectedEnd, 7},
		{`[[[]]`, okjson.UnexpectedEnd, 5},

		// Keys
		{`{key: 42}`, okjson.Syntax, 1},
		{`{42: "key"}`, okjson.Syntax, 1},
		{`{"a":1, b:2}`, okjson.Syntax, 8},

		// Objects
		{`{"a" 1}`, okjson.BadObject, 5},
		{`{"a":1 "b":2}`, okjson.BadObject, 7},
		{`{"a":1,}`, okjson.BadObject, 7},
		{`{"a":}`, okjson.BadObject, 5},
		{`{"a":1]`, okjson.BadObject, 6},

		// Arrays
		{`[1 2]`, okjson.BadArray, 3},
		{`[1,]`, okjson.BadArray, 3},
		{`[,1]`, okjson.BadArray, 1},
		{`[1}`, okjson.BadArray, 2},
		{`[:]`, okjson.BadArray, 1},

		// Top level
		{`}`, okjson.Syntax, 0},
		{`]`, okjson.Syntax, 0},
		{`1 2`, okjson.Syntax, 2},
		{`{} []`, okjson.Syntax, 3},
		{`"a",`, okjson.Syntax, 3},

		// Literals
		{`1.`, okjson.BadNumber, 2},
		{`[1.]`, okjson.BadNumber, 3},
		{`{"x": 1.2.3}`, okjson.BadNumber, 9},
		{`[-]`, okjson.BadNumber, 2},
		{`[tru]`, okjson.BadBoolean, 1},
		{`[falsey]`, okjson.BadBoolean, 1},
		{`{"a": nil}`, okjson.Syntax, 6},
		{`{"a": @}`, okjson.InvalidCharacter, 6},
		{`"abc`, okjson.BadString, 4},
		{`["a\x"]`, okjson.BadString, 3},
	}
	for _, test := range tests {
		p := okjson.New([]byte(test.input))
		err := p.Parse()
		if err == nil {
			t.Errorf("Parse %#q: got nil error, want %v", test.input, test.want)
			continue
		}
		if got := okjson.CodeOf(err); got != test.want {
			t.Errorf("Parse %#q: got code %v (%d), want %v (%d)", test.input, got, got, test.want, test.want)
		}
		if !errors.Is(err, test.want) {
			t.Errorf("Parse %#q: errors.Is(%v, %v) is false", test.input, err, test.want)
		}
		var serr *okjson.SyntaxError
		if !errors.As(err, &serr) {
			t.Errorf("Parse %#q: got %T, want *SyntaxError", test.input, err)
		} else if serr.Offset != test.offset {
			t.Errorf("Parse %#q: error offset is %d, want %d", test.input, serr.Offset, test.offset)
		}
		if p.Len() != 0 || p.Tokens() != nil {
			t.Errorf("Parse %#q: tokens are readable after failure", test.input)
		}
	}
}

func TestParse_limits(t *testing.T) {
	array := func(n int) string {
		elts := make([]string, n)
		for i := range elts {
			elts[i] = fmt.Sprint(i)
		}
		return "[" + strings.Join(elts, ",") + "]"
	}
	object := func(n int) string {
		mems := make([]string, n)
		for i := range mems {
			mems[i] = fmt.Sprintf("%q:%d", fmt.Sprint("k", i), i)
		}
		return "{" + strings.Join(mems, ",") + "}"
	}
	nested := func(n int) string {
		return strings.Repeat("[", n) + strings.Repeat("]", n)
	}
	str := func(n int) string { return `"` + strings.Repeat("s", n) + `"` }

	tests := []struct {
		name  string
		input string
		want  okjson.Code
	}{
		{"MaxArraySize", array(okjson.MaxArraySize), okjson.Success},
		{"MaxArraySize+1", array(okjson.MaxArraySize + 1), okjson.Overflow},
		{"MaxObjectSize", object(okjson.MaxObjectSize), okjson.Success},
		{"MaxObjectSize+1", object(okjson.MaxObjectSize + 1), okjson.Overflow},
		{"MaxDepth", nested(okjson.MaxDepth), okjson.Success},
		{"MaxDepth+1", nested(okjson.MaxDepth + 1), okjson.NoFreeSpace},
		{"MaxStringLen", str(okjson.MaxStringLen), okjson.Success},
		{"MaxStringLen+1", str(okjson.MaxStringLen + 1), okjson.MaxStringLenExceeded},
		{"LongKey", `{` + str(okjson.MaxStringLen+1) + `: 1}`, okjson.MaxStringLenExceeded},

		// The outer array plus two inner arrays of n and m elements make n+m+3 tokens.
		{"MaxTokens", "[" + array(okjson.MaxArraySize) + "," + array(okjson.MaxTokens-okjson.MaxArraySize-3) + "]", okjson.Success},
		{"MaxTokens+1", "[" + array(okjson.MaxArraySize) + "," + array(okjson.MaxTokens-okjson.MaxArraySize-2) + "]", okjson.MaxTokensExceeded},
		{"ManyArrays", "[" + strings.Repeat(array(okjson.MaxArraySize)+",", 2) + "[]]", okjson.MaxTokensExceeded},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := okjson.New([]byte(test.input))
			err := p.Parse()
			if got := okjson.CodeOf(err); got != test.want {
				t.Errorf("Parse: got %v, want %v", got, test.want)
			}
			if err == nil && p.Len() > okjson.MaxTokens {
				t.Errorf("Parse: got %d tokens, limit is %d", p.Len(), okjson.MaxTokens)
			}
		})
	}
}

func TestParse_objectTokens(t *testing.T) {
	// An object of N scalar members has N+1 tokens, and an array of N scalar
	// elements has N+1 tokens.
	for n := 0; n <= okjson.MaxObjectSize; n++ {
		var obj, arr strings.Builder
		obj.WriteString("{")
		arr.WriteString("[")
		for i := range n {
			if i > 0 {
				obj.WriteString(", ")
				arr.WriteString(", ")
			}
			fmt.Fprintf(&obj, `"m%d": %d`, i, i)
			fmt.Fprintf(&arr, `"e%d"`, i)
		}
		obj.WriteString("}")
		arr.WriteString("]")

		for _, input := range []string{obj.String(), arr.String()} {
			p := okjson.New([]byte(input))
			if err := p.Parse(); err != nil {
				t.Errorf("Parse %#q: unexpected error: %v", input, err)
			} else if p.Len() != n+1 {
				t.Errorf("Parse %#q: got %d tokens, want %d", input, p.Len(), n+1)
			}
		}
	}
}

func TestParse_restart(t *testing.T) {
	p := okjson.New([]byte(`{"a": [1, 2, {"b": null}], "c": "d"}`))
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse 1: unexpected error: %v", err)
	}
	first := append([]okjson.Token(nil), p.Tokens()...)

	if err := p.Parse(); err != nil {
		t.Fatalf("Parse 2: unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, p.Tokens()); diff != "" {
		t.Errorf("Tokens after restart: (-first, +second)\n%s", diff)
	}

	// Rebinding resets the parser.
	if err := p.Init([]byte(`[true]`)); err != nil {
		t.Fatalf("Init: unexpected error: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Len after Init: got %d, want 0", p.Len())
	}
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse 3: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]okjson.Type{tArray, tBool}, tokenTypes(p)); diff != "" {
		t.Errorf("Tokens after Init: (-want, +got)\n%s", diff)
	}
}

func TestParse_contract(t *testing.T) {
	var nilp *okjson.Parser
	if err := nilp.Init([]byte(`1`)); err != okjson.NullParserObj {
		t.Errorf("Init(nil parser): got %v, want %v", err, okjson.NullParserObj)
	}
	if err := nilp.Parse(); err != okjson.NullParserObj {
		t.Errorf("Parse(nil parser): got %v, want %v", err, okjson.NullParserObj)
	}

	var p okjson.Parser
	if err := p.Parse(); err != okjson.BadPointer {
		t.Errorf("Parse(unbound): got %v, want %v", err, okjson.BadPointer)
	}
	if err := p.Init(nil); err != okjson.BadPointer {
		t.Errorf("Init(nil buffer): got %v, want %v", err, okjson.BadPointer)
	}
	if err := p.Parse(); err != okjson.BadPointer {
		t.Errorf("Parse(nil buffer): got %v, want %v", err, okjson.BadPointer)
	}
	if got := okjson.CodeOf(p.Parse()); got != okjson.BadPointer {
		t.Errorf("CodeOf: got %v, want %v", got, okjson.BadPointer)
	}
}

func TestMustParse(t *testing.T) {
	p := okjson.MustParse([]byte(`[1]`))
	if p.Len() != 2 {
		t.Errorf("MustParse: got %d tokens, want 2", p.Len())
	}
	mtest.MustPanic(t, func() { okjson.MustParse([]byte(`{key: 42}`)) })
}

func TestSyntaxError(t *testing.T) {
	p := okjson.New([]byte("{\n  \"a\": 1.,\n}"))
	err := p.Parse()
	var serr *okjson.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if got, want := serr.Location(), (okjson.LineCol{Line: 2, Column: 9}); got != want {
		t.Errorf("Location: got %v, want %v", got, want)
	}
	const wantMsg = "at 2:9 (offset 11): invalid number"
	if got := err.Error(); got != wantMsg {
		t.Errorf("Error: got %q, want %q", got, wantMsg)
	}
}

func TestCodes(t *testing.T) {
	// Code values are stable.
	want := []okjson.Code{
		okjson.Success, okjson.InvalidCharacter, okjson.Syntax, okjson.Overflow,
		okjson.UnexpectedEnd, okjson.MaxTokensExceeded, okjson.MaxStringLenExceeded,
		okjson.BadPointer, okjson.BadNumber, okjson.BadObject, okjson.BadString,
		okjson.BadArray, okjson.BadBoolean, okjson.NullParserObj, okjson.InvalidTypeEnum,
		okjson.NoFreeSpace, okjson.ParsingFailed,
	}
	for i, c := range want {
		if int(c) != i {
			t.Errorf("Code %v: got value %d, want %d", c, int(c), i)
		}
	}
	if got := okjson.CodeOf(nil); got != okjson.Success {
		t.Errorf("CodeOf(nil): got %v, want %v", got, okjson.Success)
	}
	if got := okjson.CodeOf(errors.New("other")); got != okjson.ParsingFailed {
		t.Errorf("CodeOf(other): got %v, want %v", got, okjson.ParsingFailed)
	}
	if got := okjson.CodeOf(fmt.Errorf("wrapped: %w", okjson.BadArray)); got != okjson.BadArray {
		t.Errorf("CodeOf(wrapped): got %v, want %v", got, okjson.BadArray)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	lg := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p := okjson.New([]byte(`[1, 2]`))
	p.SetLogger(lg)
	if err := p.Parse(); err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	p.Init([]byte(`[1,]`))
	if err := p.Parse(); err == nil {
		t.Fatal("Parse: got nil error, want failure")
	}

	out := buf.String()
	for _, want := range []string{
		`msg="parse complete" tokens=3`,
		`msg="parse failed" code=11`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Log output missing %q:\n%s", want, out)
		}
	}
}
