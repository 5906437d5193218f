// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

import (
	"iter"

	"go4.org/mem"
)

// A View is a read-only reference to a single value token of a parsed
// document. A View borrows the input buffer of its Parser: it is valid only
// until the next call to Init or Parse, and only as long as the input buffer
// is not modified. The zero View is invalid and reports type Undefined.
type View struct {
	p   *Parser
	idx int
}

// IsValid reports whether v refers to a token.
func (v View) IsValid() bool { return v.p != nil }

// Token returns the token referenced by v.
func (v View) Token() Token {
	if v.p == nil {
		return Token{}
	}
	return v.p.toks[v.idx]
}

// Type returns the type of the value referenced by v.
func (v View) Type() Type { return v.Token().Type }

// Index reports the position of the token in the token table.
func (v View) Index() int { return v.idx }

// Key returns the key of v if it is an object member, or nil.
// The result aliases the input buffer.
func (v View) Key() []byte {
	if v.p == nil || !v.p.meta[v.idx].member {
		return nil
	}
	k := v.p.meta[v.idx].key
	return v.p.buf[k.Pos:k.End]
}

// Bytes returns the undecoded text of v. For a string the quotation marks
// are excluded. For an object or array the result is the open delimiter
// alone. The result aliases the input buffer.
func (v View) Bytes() []byte {
	if v.p == nil {
		return nil
	}
	t := v.p.toks[v.idx]
	switch t.Type {
	case Object, Array:
		return v.p.buf[t.Offset : t.Offset+1]
	}
	return v.p.buf[t.Offset : t.Offset+t.Length]
}

// Mem returns a read-only view of the text of v.
func (v View) Mem() mem.RO { return mem.B(v.Bytes()) }

// Location reports the location of v in the input.
func (v View) Location() Location {
	if v.p == nil {
		return Location{}
	}
	t := v.p.toks[v.idx]
	sp := t.Span()
	if t.Type == Object || t.Type == Array {
		sp.End = sp.Pos + 1
	}
	return locate(v.p.buf, sp)
}

// AsString returns v as a string, or ErrTypeMismatch.
func (v View) AsString() (StringView, error) {
	if v.Type() != String {
		return StringView{}, ErrTypeMismatch
	}
	return StringView{v}, nil
}

// AsNumber returns v as a number, or ErrTypeMismatch.
func (v View) AsNumber() (NumberView, error) {
	if v.Type() != Number {
		return NumberView{}, ErrTypeMismatch
	}
	return NumberView{v}, nil
}

// AsBoolean returns v as a Boolean, or ErrTypeMismatch.
func (v View) AsBoolean() (BoolView, error) {
	if v.Type() != Boolean {
		return BoolView{}, ErrTypeMismatch
	}
	return BoolView{v}, nil
}

// AsArray returns v as an array, or ErrTypeMismatch.
func (v View) AsArray() (ArrayView, error) {
	if v.Type() != Array {
		return ArrayView{}, ErrTypeMismatch
	}
	return ArrayView{v}, nil
}

// AsObject returns v as an object, or ErrTypeMismatch.
func (v View) AsObject() (ObjectView, error) {
	if v.Type() != Object {
		return ObjectView{}, ErrTypeMismatch
	}
	return ObjectView{v}, nil
}

// children calls f with the index of each direct child of the container at
// v, in order, until f returns false.
func (v View) children(f func(int) bool) {
	if v.p == nil {
		return
	}
	d := v.p.meta[v.idx].depth
	for i := v.idx + 1; i < v.p.ntok; i++ {
		cd := v.p.meta[i].depth
		if cd <= d {
			return
		} else if cd == d+1 && !f(i) {
			return
		}
	}
}

// numChildren reports the number of direct children of the container at v.
func (v View) numChildren() int {
	var n int
	v.children(func(int) bool { n++; return true })
	return n
}

// A StringView is a View of a string value.
type StringView struct{ View }

// Len reports the length in bytes of the undecoded string.
func (s StringView) Len() int { return s.Token().Length }

// Equal reports whether the undecoded text of s is exactly str.
func (s StringView) Equal(str string) bool { return s.Mem().Equal(mem.S(str)) }

// A NumberView is a View of a number value.
type NumberView struct{ View }

// Int64 parses the text of n as a base-10 integer.
func (n NumberView) Int64() (int64, error) { return mem.ParseInt(n.Mem(), 10, 64) }

// Float64 parses the text of n as a floating-point value.
func (n NumberView) Float64() (float64, error) { return mem.ParseFloat(n.Mem(), 64) }

// A BoolView is a View of a true or false value.
type BoolView struct{ View }

// Value reports the truth value of b.
func (b BoolView) Value() bool { return b.p != nil && b.p.buf[b.Token().Offset] == 't' }

// An ArrayView is a View of an array value.
type ArrayView struct{ View }

// Len reports the number of elements in a.
func (a ArrayView) Len() int { return a.numChildren() }

// At returns the element of a at offset i. Negative offsets count from the end
// of the array. It reports ErrNotFound if i is out of range.
func (a ArrayView) At(i int) (View, error) {
	if i < 0 {
		i += a.Len()
	}
	var out View
	n := 0
	a.children(func(j int) bool {
		if n == i {
			out = View{p: a.p, idx: j}
			return false
		}
		n++
		return true
	})
	if out.p == nil {
		return View{}, ErrNotFound
	}
	return out, nil
}

// Elements returns a sequence of the index and value of each element of a.
func (a ArrayView) Elements() iter.Seq2[int, View] {
	return func(yield func(int, View) bool) {
		n := 0
		a.children(func(j int) bool {
			ok := yield(n, View{p: a.p, idx: j})
			n++
			return ok
		})
	}
}

// An ObjectView is a View of an object value.
type ObjectView struct{ View }

// Len reports the number of members in o.
func (o ObjectView) Len() int { return o.numChildren() }

// Find returns the value of the member of o whose key exactly matches key,
// without decoding escapes. If there are several such members, Find returns
// the first. It reports ErrNotFound if no member matches.
func (o ObjectView) Find(key string) (View, error) {
	want := mem.S(key)
	var out View
	o.children(func(j int) bool {
		k := o.p.meta[j].key
		if mem.B(o.p.buf[k.Pos:k.End]).Equal(want) {
			out = View{p: o.p, idx: j}
			return false
		}
		return true
	})
	if out.p == nil {
		return View{}, ErrNotFound
	}
	return out, nil
}

// Members returns a sequence of the key and value of each member of o. The
// keys alias the input buffer.
func (o ObjectView) Members() iter.Seq2[[]byte, View] {
	return func(yield func([]byte, View) bool) {
		o.children(func(j int) bool {
			v := View{p: o.p, idx: j}
			return yield(v.Key(), v)
		})
	}
}
