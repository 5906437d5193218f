package okjson

import (
	"bytes"
	"fmt"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// lineCol computes the line and column of offset pos in src. Offsets past the
// end of src are clamped to the end.
func lineCol(src []byte, pos int) LineCol {
	pos = min(max(pos, 0), len(src))
	head := src[:pos]
	line := bytes.Count(head, []byte("\n"))
	col := pos
	if i := bytes.LastIndexByte(head, '\n'); i >= 0 {
		col = pos - i - 1
	}
	return LineCol{Line: line + 1, Column: col}
}

func locate(src []byte, s Span) Location {
	return Location{Span: s, First: lineCol(src, s.Pos), Last: lineCol(src, s.End)}
}
