// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package jwcc supports parsing JSON With Commas and Comments (JWCC) as
// defined by https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// The okjson parser accepts only strict JSON. The functions in this package
// rewrite JWCC input into strict JSON of the same length, replacing comments
// and trailing commas with spaces, so that offsets and line numbers reported
// by the parser still refer to the original text.
package jwcc

import (
	"bytes"

	"github.com/creachadair/okjson"
	"github.com/tailscale/hujson"
)

// Standardize returns a copy of src with comments and trailing commas
// replaced by whitespace. The input is not modified. It reports an error if
// src is not valid JWCC.
func Standardize(src []byte) ([]byte, error) {
	return hujson.Standardize(bytes.Clone(src))
}

// Parse standardizes src and parses the result with a new okjson.Parser.
// The parser is bound to the standardized copy, not to src.
func Parse(src []byte) (*okjson.Parser, error) {
	std, err := Standardize(src)
	if err != nil {
		return nil, err
	}
	p := okjson.New(std)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return p, nil
}
