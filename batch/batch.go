// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package batch parses multiple independent JSON documents concurrently.
//
// Each document is parsed by its own okjson.Parser on a bounded pool of
// worker goroutines. No parser is shared between goroutines.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/creachadair/okjson"
	"github.com/panjf2000/ants/v2"
)

// Options control the behavior of Parse. A nil *Options is ready for use and
// provides default values.
type Options struct {
	// The maximum number of documents to parse concurrently.
	// If zero, use runtime.NumCPU().
	Workers int

	// If set, each parser is given this logger.
	Logger *slog.Logger
}

func (o *Options) workers() int {
	if o == nil || o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o *Options) logger() *slog.Logger {
	if o == nil {
		return nil
	}
	return o.Logger
}

// A Result is the outcome of parsing one document.
type Result struct {
	Index  int            // position of the document in the input
	Parser *okjson.Parser // the parser bound to the document
	Err    error          // nil on success
}

// Parse parses each of docs with a separate parser and returns the results in
// the same order as the input. An error in one document does not affect the
// others; per-document errors are reported in the Err field of each Result.
//
// If ctx ends before all documents are started, the remaining documents are
// not parsed and their results report the context error. Parse itself
// reports an error only if the worker pool could not be started.
func Parse(ctx context.Context, docs [][]byte, opts *Options) ([]Result, error) {
	out := make([]Result, len(docs))
	if len(docs) == 0 {
		return out, nil
	}
	pool, err := ants.NewPool(min(opts.workers(), len(docs)))
	if err != nil {
		return nil, fmt.Errorf("start worker pool: %w", err)
	}
	defer pool.Release()

	lg := opts.logger()
	var wg sync.WaitGroup
	for i, doc := range docs {
		out[i] = Result{Index: i, Parser: okjson.New(doc)}
		if err := ctx.Err(); err != nil {
			out[i].Err = err
			continue
		}
		r := &out[i]
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			r.Parser.SetLogger(lg)
			r.Err = r.Parser.Parse()
		}); err != nil {
			wg.Done()
			r.Err = fmt.Errorf("submit document %d: %w", i, err)
		}
	}
	wg.Wait()
	return out, nil
}
