package engine

import (
	"fmt"

	"github.com/arlojames/cepgraph/cep/pattern"
)

// BuildLeftDeep implements the LeftDeepTreeInitializer (spec.md §4.6):
// it only accepts a flat pattern (a single operator directly over
// leaves, no nesting) and cascades EventNodes pairwise left to right,
// each new inner node re-parameterized with the same operator kind as
// the query's top operator. Conditions are promoted to the earliest
// inner node whose subtree already carries every identifier they need
// (this spec's resolution of the "replicated vs. exactly earliest"
// open question — see spec.md §9).
func BuildLeftDeep(q *pattern.Query) (*Graph, error) {
	if err := pattern.Validate(q); err != nil {
		return nil, err
	}
	if !isFlatPattern(q.Pattern) {
		return nil, fmt.Errorf("cep/engine: left-deep initializer requires a flat pattern, got nested operators")
	}

	byID := make(map[pattern.Identifier]string, len(q.Pattern.Members))
	for _, m := range q.Pattern.Members {
		byID[m.Identifier] = m.Pattern.EventType
	}

	var order []pattern.Identifier
	switch op := q.Pattern.Operator.(type) {
	case pattern.Seq:
		order = op.Order
	default:
		for _, m := range q.Pattern.Members {
			order = append(order, m.Identifier)
		}
	}

	type leafEvent struct {
		id        pattern.Identifier
		eventType string
	}
	events := make([]leafEvent, len(order))
	for i, id := range order {
		events[i] = leafEvent{id: id, eventType: byID[id]}
	}

	g := NewGraph(q.Window, q.FixedCountWindow)
	pending := append([]pattern.Condition(nil), q.Conditions...)

	leafConds := make(map[pattern.Identifier][]pattern.Condition)
	var composite []pattern.Condition
	for _, c := range pending {
		if len(c.Identifiers) == 1 {
			leafConds[c.Identifiers[0]] = append(leafConds[c.Identifiers[0]], c)
			continue
		}
		composite = append(composite, c)
	}
	pending = composite

	parent := g.addEventNode(events[0].eventType, events[0].id, leafConds[events[0].id])
	present := map[pattern.Identifier]bool{events[0].id: true}

	nextSynthID := pattern.Identifier(-1)
	for i := 1; i < len(events); i++ {
		right := g.addEventNode(events[i].eventType, events[i].id, leafConds[events[i].id])
		present[events[i].id] = true

		var subOp pattern.Operator
		switch op := q.Pattern.Operator.(type) {
		case pattern.Seq:
			subOp = pattern.Seq{Order: append([]pattern.Identifier(nil), order[:i+1]...), Strict: op.Strict}
		default:
			subOp = pattern.And{}
		}

		promoted, rest := promoteConditions(pending, present)
		pending = rest

		newParent := g.addConditionNode(subOp, nextSynthID, promoted)
		nextSynthID--

		g.setParent(parent, newParent)
		g.setParent(right, newParent)
		g.addChild(newParent, parent)
		g.addChild(newParent, right)

		parent = newParent
	}
	g.setRoot(parent)
	return g, nil
}

// promoteConditions splits pending into the subset whose identifiers
// are entirely covered by present, and the rest.
func promoteConditions(pending []pattern.Condition, present map[pattern.Identifier]bool) (promoted, rest []pattern.Condition) {
	for _, c := range pending {
		covered := true
		for _, id := range c.Identifiers {
			if !present[id] {
				covered = false
				break
			}
		}
		if covered {
			promoted = append(promoted, c)
		} else {
			rest = append(rest, c)
		}
	}
	return promoted, rest
}

func isFlatPattern(p *pattern.EventPattern) bool {
	if p.IsLeaf() {
		return false
	}
	for _, m := range p.Members {
		if !m.Pattern.IsLeaf() {
			return false
		}
	}
	return true
}
