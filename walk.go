// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package okjson

// A Handler handles events from walking a parsed document. If a method
// reports an error, the walk stops and that error is returned to the caller.
// Walk ensures objects and arrays are correctly balanced.
//
// The View passed to each method is subject to the usual lifetime rules: it
// borrows the input buffer of the parser. For a value that is a member of an
// object, the View's Key method reports the member key.
type Handler interface {
	// Begin a new object, whose open brace is at v.
	BeginObject(v View) error

	// End the object opened at v.
	EndObject(v View) error

	// Begin a new array, whose open bracket is at v.
	BeginArray(v View) error

	// End the array opened at v.
	EndArray(v View) error

	// Report a scalar value (string, number, Boolean, or null) at v.
	Value(v View) error
}

// Walk traverses the tokens of the parsed document in input order and delivers
// events to h. It reports ErrNotReady if p does not hold a parsed document.
// Walk does not allocate; containers are tracked on a fixed-size stack.
func (p *Parser) Walk(h Handler) error {
	root, err := p.Root()
	if err != nil {
		return err
	}

	var stk [MaxDepth]int
	var sp int
	closeTop := func() error {
		sp--
		v := View{p: p, idx: stk[sp]}
		if v.Type() == Object {
			return h.EndObject(v)
		}
		return h.EndArray(v)
	}

	for i := root.idx; i < p.ntok; i++ {
		d := int(p.meta[i].depth)
		for sp > d {
			if err := closeTop(); err != nil {
				return err
			}
		}
		v := View{p: p, idx: i}
		switch v.Type() {
		case Object:
			err = h.BeginObject(v)
			stk[sp] = i
			sp++
		case Array:
			err = h.BeginArray(v)
			stk[sp] = i
			sp++
		default:
			err = h.Value(v)
		}
		if err != nil {
			return err
		}
	}
	for sp > 0 {
		if err := closeTop(); err != nil {
			return err
		}
	}
	return nil
}
