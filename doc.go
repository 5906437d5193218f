// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package okjson implements a bounded-memory JSON tokenizer and value lookup.
//
// # Parsing
//
// A Parser holds a fixed-capacity table of tokens for a single JSON document
// held in memory. Bind a parser to a buffer with Init (or New), then call
// Parse:
//
//	p := okjson.New(input)
//	if err := p.Parse(); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// Parse does not allocate. A document that exceeds the limits MaxTokens,
// MaxStringLen, MaxArraySize, MaxObjectSize, or MaxDepth is rejected rather
// than truncated. The error reports a stable numeric Code, which can be
// recovered with CodeOf or matched with errors.Is:
//
//	if errors.Is(err, okjson.MaxTokensExceeded) {
//	   log.Print("Document too large")
//	}
//
// # Tokens
//
// Each value in the input (object, array, string, number, Boolean, or null)
// produces one Token, in input order. Object keys and structural punctuation
// do not produce tokens; the key of each member is recorded alongside its
// value. For example, the input
//
//	{"key": [1, 2]}
//
// produces the tokens Object, Array, Number, Number.
//
// # Lookup
//
// The Get methods resolve a key among the members of the top-level object and
// return a typed View of the value. A View borrows the input buffer; it does
// not copy text, and is invalidated by modifying the buffer or calling Init or
// Parse again.
//
//	n, err := p.GetNumber("count")
//	if err == okjson.ErrNotFound {
//	   log.Print("No count")
//	} else if err == okjson.ErrTypeMismatch {
//	   log.Print("Count is not a number")
//	}
//
// Nested values are reached through the ArrayView and ObjectView types, or
// with the query package.
//
// Numbers consist of an optional minus sign and decimal digits with at most
// one decimal point. String escapes are checked but not decoded.
package okjson
