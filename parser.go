// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

import "log/slog"

// Capacity limits of a Parser. A document that exceeds any of these limits is
// rejected by Parse; it is never silently truncated.
const (
	MaxTokens     = 32 // maximum number of value tokens in a document
	MaxStringLen  = 64 // maximum length in bytes of a string or key
	MaxArraySize  = 16 // maximum number of elements in one array
	MaxObjectSize = 16 // maximum number of members in one object
	MaxDepth      = 8  // maximum nesting depth of objects and arrays
)

type state byte

const (
	idle     state = iota // bound to a buffer, not yet parsed
	scanning              // parse in progress
	complete              // parse succeeded; tokens are readable
	failed                // parse failed; tokens are not readable
)

// expect records what the parser requires next from the input.
type expect byte

const (
	wantValue        expect = iota // any value
	wantValueOrClose               // any value or "]"
	wantKeyOrClose                 // a key string or "}"
	wantKey                        // a key string
	wantColon                      // ":"
	wantCommaOrClose               // "," or the close of the current container
	wantEnd                        // end of input
)

// A frame records an open object or array on the nesting stack.
type frame struct {
	kind  Type // Object or Array
	count int  // members or elements seen so far
}

// A Parser tokenizes a single JSON document held in memory, and resolves
// lookups against the resulting tokens. All storage used by a Parser is
// allocated with it; parsing and lookups do not allocate.
//
// The zero value is ready for use once bound to a buffer by Init. A Parser
// must not be used concurrently by multiple goroutines; concurrent parses
// must use separate Parser values.
type Parser struct {
	buf   []byte
	pos   int // cursor
	state state
	ntok  int
	toks  [MaxTokens]Token
	meta  [MaxTokens]tokenMeta
	stack [MaxDepth]frame
	depth int
	key   Span // pending member key
	log   *slog.Logger
}

// New constructs a new Parser bound to buf.
func New(buf []byte) *Parser {
	p := new(Parser)
	p.Init(buf)
	return p
}

// MustParse constructs a Parser for buf and parses it, and panics if parsing
// fails. It is intended for use in tests and with constant input.
func MustParse(buf []byte) *Parser {
	p := New(buf)
	if err := p.Parse(); err != nil {
		panic("okjson: " + err.Error())
	}
	return p
}

// Init binds p to buf and resets its cursor and tokens. It reports
// NullParserObj if p == nil, and BadPointer if buf == nil; a non-nil empty
// buffer is accepted, and will fail to parse.
//
// The buffer is retained by p and must not be modified while p or any view
// derived from it is in use.
func (p *Parser) Init(buf []byte) error {
	if p == nil {
		return NullParserObj
	}
	p.reset()
	p.buf = buf
	if buf == nil {
		return BadPointer
	}
	return nil
}

// SetLogger sets the logger used to report parse outcomes. If lg == nil,
// diagnostics are discarded, which is the default.
func (p *Parser) SetLogger(lg *slog.Logger) { p.log = lg }

func (p *Parser) reset() {
	p.pos = 0
	p.ntok = 0
	p.depth = 0
	p.key = Span{}
	p.state = idle
}

// Parse tokenizes the buffer bound to p. It returns nil on success; otherwise
// it returns NullParserObj, BadPointer, or a *SyntaxError whose Code describes
// the failure. Parse may be called repeatedly; each call starts over from the
// beginning of the buffer.
//
// The input must contain exactly one JSON value, optionally surrounded by
// whitespace.
func (p *Parser) Parse() error {
	if p == nil {
		return NullParserObj
	} else if p.buf == nil {
		p.state = failed
		return BadPointer
	}
	p.reset()
	p.state = scanning
	if code := p.run(); code != Success {
		p.state = failed
		if p.log != nil {
			p.log.Debug("parse failed", "code", int(code), "error", code, "offset", p.pos)
		}
		return &SyntaxError{Offset: p.pos, Code: code, src: p.buf}
	}
	p.state = complete
	if p.log != nil {
		p.log.Debug("parse complete", "tokens", p.ntok, "bytes", len(p.buf))
	}
	return nil
}

// run drives the scanner over the buffer. On failure, p.pos is left at the
// offset where the error was detected.
func (p *Parser) run() Code {
	want := wantValue
	for {
		p.pos = skipSpace(p.buf, p.pos)
		if p.pos >= len(p.buf) {
			if want == wantEnd {
				return Success
			}
			return UnexpectedEnd
		}
		ch := p.buf[p.pos]

		switch want {
		case wantEnd:
			return Syntax

		case wantValueOrClose:
			if ch == ']' {
				p.pos++
				want = p.pop()
				continue
			}
			fallthrough

		case wantValue:
			if isPunct(ch) {
				return p.misplaced(ch)
			}
			if code := p.countMember(); code != Success {
				return code
			}
			tok, next, code := scanOne(p.buf, p.pos)
			if code != Success {
				p.pos = next
				return code
			}
			if p.ntok == MaxTokens {
				return MaxTokensExceeded
			}
			switch tok.Type {
			case Object, Array:
				if p.depth == MaxDepth {
					return NoFreeSpace
				}
				p.push(tok)
				p.stack[p.depth] = frame{kind: tok.Type}
				p.depth++
				if tok.Type == Object {
					want = wantKeyOrClose
				} else {
					want = wantValueOrClose
				}
			default:
				p.push(tok)
				want = p.afterValue()
			}
			p.pos = next

		case wantKeyOrClose:
			if ch == '}' {
				p.pos++
				want = p.pop()
				continue
			}
			fallthrough

		case wantKey:
			if ch == '}' {
				return BadObject // trailing comma
			} else if ch != '"' {
				return Syntax
			}
			tok, next, code := scanString(p.buf, p.pos)
			if code != Success {
				p.pos = next
				return code
			}
			p.key = tok.Span()
			p.pos = next
			want = wantColon

		case wantColon:
			if ch != ':' {
				return BadObject
			}
			p.pos++
			want = wantValue

		case wantCommaOrClose:
			top := p.stack[p.depth-1].kind
			switch {
			case ch == ',':
				p.pos++
				if top == Object {
					want = wantKey
				} else {
					want = wantValue
					if p.closesNext(']') {
						return BadArray // trailing comma
					}
				}
			case ch == '}' && top == Object, ch == ']' && top == Array:
				p.pos++
				want = p.pop()
			case top == Object:
				return BadObject
			default:
				return BadArray
			}
		}
	}
}

// push appends tok to the token table with its structural metadata.
// The caller is responsible for checking capacity.
func (p *Parser) push(tok Token) {
	m := tokenMeta{depth: uint8(p.depth)}
	if p.depth > 0 && p.stack[p.depth-1].kind == Object {
		m.key, m.member = p.key, true
	}
	p.toks[p.ntok] = tok
	p.meta[p.ntok] = m
	p.ntok++
}

// countMember records that a value is about to be added to the innermost open
// container, and reports Overflow if that would exceed its limit.
func (p *Parser) countMember() Code {
	if p.depth == 0 {
		return Success
	}
	f := &p.stack[p.depth-1]
	f.count++
	if (f.kind == Array && f.count > MaxArraySize) || (f.kind == Object && f.count > MaxObjectSize) {
		return Overflow
	}
	return Success
}

// pop closes the innermost container and returns the next expectation.
func (p *Parser) pop() expect {
	p.depth--
	return p.afterValue()
}

// afterValue returns the expectation following a complete value.
func (p *Parser) afterValue() expect {
	if p.depth == 0 {
		return wantEnd
	}
	return wantCommaOrClose
}

// closesNext reports whether the next non-space byte after the cursor is ch.
func (p *Parser) closesNext(ch byte) bool {
	i := skipSpace(p.buf, p.pos)
	return i < len(p.buf) && p.buf[i] == ch
}

// misplaced returns the error code for punctuation found where a value was
// required.
func (p *Parser) misplaced(ch byte) Code {
	if p.depth == 0 {
		return Syntax
	}
	if p.stack[p.depth-1].kind == Object {
		return BadObject
	}
	return BadArray
}

func isPunct(ch byte) bool { return ch == '}' || ch == ']' || ch == ',' || ch == ':' }

// Len reports the number of tokens in the document. It returns 0 unless the
// most recent call to Parse succeeded.
func (p *Parser) Len() int {
	if p == nil || p.state != complete {
		return 0
	}
	return p.ntok
}

// Tokens returns the tokens of the document in input order, or nil unless the
// most recent call to Parse succeeded. The slice aliases storage inside p and
// is only valid until the next call to Init or Parse.
func (p *Parser) Tokens() []Token {
	if p == nil || p.state != complete {
		return nil
	}
	return p.toks[:p.ntok]
}

// Input returns the buffer bound to p.
func (p *Parser) Input() []byte { return p.buf }
