// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Program okjson parses JSON documents with a bounded-memory parser and
// prints their tokens or selected values.
//
// Usage:
//
//	okjson [flags] [file ...]
//
// With no files, okjson reads a single document from standard input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/creachadair/okjson"
	"github.com/creachadair/okjson/batch"
	"github.com/creachadair/okjson/jwcc"
	"github.com/creachadair/okjson/query"
	"golang.org/x/sync/errgroup"
)

var (
	keyName    = flag.String("key", "", "Print the value of this top-level key")
	keyType    = flag.String("type", "token", "Required type of the -key value (string, number, boolean, array, object, null, token)")
	pathExpr   = flag.String("path", "", `Print the value at this path (e.g., "a.b[0]")`)
	showTokens = flag.Bool("tokens", false, "Print the token outline of each document")
	allowJWCC  = flag.Bool("jwcc", false, "Accept comments and trailing commas")
	numWorkers = flag.Int("workers", 0, "Number of concurrent parsers (0 means one per CPU)")
	verbose    = flag.Bool("v", false, "Enable verbose logging")
)

var typeNames = map[string]okjson.Type{
	"string":  okjson.String,
	"number":  okjson.Number,
	"boolean": okjson.Boolean,
	"array":   okjson.Array,
	"object":  okjson.Object,
	"null":    okjson.Null,
	"token":   okjson.Undefined,
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(flag.Args(), lg); err != nil {
		lg.Error("okjson failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, lg *slog.Logger) error {
	typ, ok := typeNames[*keyType]
	if !ok {
		return fmt.Errorf("unknown -type %q", *keyType)
	}
	var pq query.Query
	if *pathExpr != "" {
		q, err := query.ParsePath(*pathExpr)
		if err != nil {
			return err
		}
		pq = q
	}

	names, docs, err := readInputs(args)
	if err != nil {
		return err
	}
	if *allowJWCC {
		for i, doc := range docs {
			std, err := jwcc.Standardize(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", names[i], err)
			}
			docs[i] = std
		}
	}

	res, err := batch.Parse(context.Background(), docs, &batch.Options{
		Workers: *numWorkers,
		Logger:  lg,
	})
	if err != nil {
		return err
	}

	var nfail int
	for i, r := range res {
		if err := report(os.Stdout, names[i], r, typ, pq); err != nil {
			fmt.Fprintf(os.Stdout, "%s: %v\n", names[i], err)
			nfail++
		}
	}
	if nfail != 0 {
		return fmt.Errorf("%d of %d documents failed", nfail, len(res))
	}
	return nil
}

func readInputs(args []string) (names []string, docs [][]byte, _ error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{"<stdin>"}, [][]byte{data}, nil
	}
	docs = make([][]byte, len(args))
	var g errgroup.Group
	g.SetLimit(8)
	for i, path := range args {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			docs[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return args, docs, nil
}

func report(w io.Writer, name string, r batch.Result, typ okjson.Type, pq query.Query) error {
	if r.Err != nil {
		return r.Err
	}
	p := r.Parser
	if *showTokens {
		fmt.Fprintf(w, "%s:\n", name)
		if err := p.Walk(&outliner{w: w}); err != nil {
			return err
		}
	}
	if *keyName != "" {
		var v okjson.View
		var err error
		if typ == okjson.Undefined {
			v, err = p.GetToken(*keyName)
		} else {
			v, err = p.Get(*keyName, typ)
		}
		if err != nil {
			return fmt.Errorf("key %q: %w", *keyName, err)
		}
		fmt.Fprintf(w, "%s: %s %s\n", name, v.Type(), valueText(v))
	}
	if pq != nil {
		root, err := p.Root()
		if err != nil {
			return err
		}
		v, err := query.Eval(root, pq)
		if err != nil {
			return fmt.Errorf("path %q: %w", *pathExpr, err)
		}
		fmt.Fprintf(w, "%s: %s %s\n", name, v.Type(), valueText(v))
	}
	if !*showTokens && *keyName == "" && pq == nil {
		fmt.Fprintf(w, "%s: ok (%d tokens)\n", name, p.Len())
	}
	return nil
}

// valueText renders the text of v for display. Containers are summarized by
// their size, since their tokens do not record their extent.
func valueText(v okjson.View) string {
	switch v.Type() {
	case okjson.String:
		return `"` + string(v.Bytes()) + `"`
	case okjson.Array:
		a, _ := v.AsArray()
		return fmt.Sprintf("[%d elements]", a.Len())
	case okjson.Object:
		o, _ := v.AsObject()
		return fmt.Sprintf("{%d members}", o.Len())
	default:
		return string(v.Bytes())
	}
}

// outliner is an okjson.Handler that prints an indented outline of the tokens
// of a document.
type outliner struct {
	w     io.Writer
	depth int
}

func (o *outliner) indent() string { return strings.Repeat("  ", o.depth+1) }

func (o *outliner) line(v okjson.View, text string) {
	if key := v.Key(); key != nil {
		fmt.Fprintf(o.w, "%s%q: %s\n", o.indent(), key, text)
	} else {
		fmt.Fprintf(o.w, "%s%s\n", o.indent(), text)
	}
}

func (o *outliner) BeginObject(v okjson.View) error { o.line(v, "{"); o.depth++; return nil }
func (o *outliner) EndObject(okjson.View) error { return o.close("}") }
func (o *outliner) BeginArray(v okjson.View) error { o.line(v, "["); o.depth++; return nil }
func (o *outliner) EndArray(okjson.View) error { return o.close("]") }

func (o *outliner) Value(v okjson.View) error {
	o.line(v, fmt.Sprintf("%s %s", v.Type(), valueText(v)))
	return nil
}

func (o *outliner) close(text string) error {
	o.depth--
	if o.depth < 0 {
		return errors.New("unbalanced outline")
	}
	fmt.Fprintf(o.w, "%s%s\n", o.indent(), text)
	return nil
}
