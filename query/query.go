// Package query implements structural queries over parsed JSON documents.
//
// A query describes a path through the structure of a JSON value, such as an
// object member or an array element. Evaluating a query against a view of a
// parsed document traverses the structure described by the query and returns
// a view of the resulting value. Queries never copy the input.
//
// The simplest query is for a "path", a sequence of object keys and/or array
// indices that describes a path from the root of a JSON value. For example,
// given the JSON value:
//
//	[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]
//
// the query
//
//	query.Path(1, "c", "d")
//
// yields a view of the value "true".
package query

import (
	"errors"
	"fmt"

	"github.com/creachadair/okjson"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root okjson.View, q Query) (okjson.View, error) {
	return q.eval(root)
}

// Each evaluates q against each element of the array at root, and returns the
// resulting values in order. It fails if root is not an array, or if q fails
// for any element.
func Each(root okjson.View, q Query) ([]okjson.View, error) {
	arr, err := root.AsArray()
	if err != nil {
		return nil, fmt.Errorf("got %v, want array", root.Type())
	}
	var out []okjson.View
	for i, elt := range arr.Elements() {
		v, err := q.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// A Query describes a traversal of a JSON value.
type Query interface {
	eval(okjson.View) (okjson.View, error)
}

// Path traverses a sequence of nested object keys or array indices from the
// root.  If no keys are specified, the root is returned. Each key must be a
// string, an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic("invalid path element")
	}
}

// Key selects the value of the named member of an object.
func Key(name string) Query { return objKey(name) }

// Index selects the element at offset n of an array. Negative offsets select
// from the end of the array.
func Index(n int) Query { return nthQuery(n) }

type objKey string

func (o objKey) eval(v okjson.View) (okjson.View, error) {
	obj, err := v.AsObject()
	if err != nil {
		return okjson.View{}, fmt.Errorf("got %v, want object", v.Type())
	}
	mem, err := obj.Find(string(o))
	if err != nil {
		return okjson.View{}, fmt.Errorf("key %q not found", o)
	}
	return mem, nil
}

type nthQuery int

func (nq nthQuery) eval(v okjson.View) (okjson.View, error) {
	arr, err := v.AsArray()
	if err != nil {
		return okjson.View{}, fmt.Errorf("got %v, want array", v.Type())
	}
	elt, err := arr.At(int(nq))
	if err != nil {
		return okjson.View{}, fmt.Errorf("index %d out of range (0..%d)", nq, arr.Len())
	}
	return elt, nil
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v okjson.View) (okjson.View, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return okjson.View{}, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives.  The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v okjson.View) (okjson.View, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return okjson.View{}, errors.New("no matching alternatives")
}

// Is is a query that selects its input if it has type t, and fails otherwise.
func Is(t okjson.Type) Query { return isQuery(t) }

type isQuery okjson.Type

func (q isQuery) eval(v okjson.View) (okjson.View, error) {
	if v.Type() != okjson.Type(q) {
		return okjson.View{}, fmt.Errorf("got %v, want %v", v.Type(), okjson.Type(q))
	}
	return v, nil
}

// Exists reports whether q succeeds when evaluated against root. The arguments
// have the same constraints as Path.
func Exists(root okjson.View, keys ...any) bool {
	_, err := Path(keys...).eval(root)
	return err == nil
}
