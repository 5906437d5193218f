package query

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/*
Grammar:

  expr = [root] [name] steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = "[" INDEX "]"
  step = "[" "'" QTEXT "'" "]"
  name = WORD

  WORD = RE `[^.\[\]]+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+`
*/

// ParsePath parses s as a path expression and returns an equivalent Path
// query. A path is a sequence of member names separated by periods, with
// array offsets or quoted member names in square brackets, for example:
//
//	items[0].name
//	$.config['log level']
//
// The leading "$" denoting the root is optional.
func ParsePath(s string) (Query, error) {
	keys, err := parseSteps(strings.TrimPrefix(s, "$"))
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", s, err)
	}
	return Path(keys...), nil
}

func parseSteps(s string) ([]any, error) {
	var keys []any

	// A leading name does not require a period.
	if m := wordRE.FindString(s); m != "" {
		keys = append(keys, m)
		s = s[len(m):]
	}
	for s != "" {
		key, rest, err := parseStep(s)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		s = rest
	}
	return keys, nil
}

func parseStep(s string) (_ any, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		m := wordRE.FindString(t)
		if m == "" {
			return nil, s, errors.New("invalid .name")
		}
		return m, t[len(m):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		var key any
		if m := indexRE.FindString(t); m != "" {
			n, err := strconv.Atoi(m)
			if err != nil {
				return nil, s, fmt.Errorf("invalid index: %w", err)
			}
			key, t = n, t[len(m):]
		} else if m := quoteRE.FindStringSubmatch(t); m != nil {
			key, t = m[1], t[len(m[0]):]
		} else {
			return nil, s, errors.New("invalid subscript")
		}
		u, ok := strings.CutPrefix(t, "]")
		if !ok {
			return nil, t, errors.New("missing close bracket")
		}
		return key, u, nil
	}
	return nil, s, errors.New("invalid path step")
}

var (
	wordRE  = regexp.MustCompile(`^[^.\[\]]+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)
