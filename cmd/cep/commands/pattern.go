package commands

import (
	"fmt"
	"strings"

	"github.com/arlojames/cepgraph/cep/pattern"
)

// parsePatternFlag parses a flat "OP(type,type,...)" spec into a Query.
// This is deliberately minimal: spec.md §1 scopes full query-text
// parsing out of the core as an external collaborator, so the harness
// only needs enough syntax to drive the demo/CLI use case, not a
// general pattern-query language.
func parsePatternFlag(spec string, window int64, fixedCount, strict bool) (*pattern.Query, error) {
	spec = strings.TrimSpace(spec)
	open := strings.Index(spec, "(")
	if open < 0 || !strings.HasSuffix(spec, ")") {
		return nil, fmt.Errorf("pattern must look like SEQ(A,B,C) or AND(A,B), got %q", spec)
	}
	op := strings.ToUpper(strings.TrimSpace(spec[:open]))
	body := spec[open+1 : len(spec)-1]
	types := strings.Split(body, ",")
	if len(types) < 2 {
		return nil, fmt.Errorf("pattern needs at least two event types, got %q", spec)
	}
	for i, t := range types {
		types[i] = strings.TrimSpace(t)
		if types[i] == "" {
			return nil, fmt.Errorf("pattern has an empty event type: %q", spec)
		}
	}

	members := make([]pattern.Member, len(types))
	order := make([]pattern.Identifier, len(types))
	for i, t := range types {
		id := pattern.Identifier(i)
		members[i] = pattern.NewLeaf(t, id)
		order[i] = id
	}

	var operator pattern.Operator
	switch op {
	case "SEQ":
		operator = pattern.Seq{Order: order, Strict: strict}
	case "AND":
		operator = pattern.And{}
	default:
		return nil, fmt.Errorf("unknown operator %q (want SEQ or AND)", op)
	}

	root := pattern.Composite(operator, members...)
	return &pattern.Query{
		Pattern:          root,
		Window:           window,
		FixedCountWindow: fixedCount,
	}, nil
}
