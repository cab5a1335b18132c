package engine

import "github.com/arlojames/cepgraph/cep/pattern"

// BuildNested constructs a graph directly mirroring a pattern's own
// operator-expression tree (spec.md §4.6, "Manual/Nested builder"),
// unlike BuildLeftDeep it accepts arbitrarily nested SEQ/AND
// expressions. Each leaf and each nested sub-pattern keeps the
// identifier declared on its Member, so an outer operator's Order can
// name a nested sub-pattern's slot directly — the same way the source's
// EventTypeOrPatternAndIdentifier wraps both leaves and sub-patterns.
// Conditions are promoted bottom-up: a post-order walk means a
// condition is attached at a node only if no descendant's smaller
// subtree already covered it, which is exactly "the earliest node where
// all of a condition's identifiers are present" (spec.md §9).
func BuildNested(q *pattern.Query) (*Graph, error) {
	if err := pattern.Validate(q); err != nil {
		return nil, err
	}

	g := NewGraph(q.Window, q.FixedCountWindow)
	pending := append([]pattern.Condition(nil), q.Conditions...)

	// build returns the node index for p and the set of leaf
	// identifiers p's subtree covers (used only to decide condition
	// promotion — never a composite's own identifier).
	var build func(p *pattern.EventPattern, nodeID pattern.Identifier) (int, map[pattern.Identifier]bool)
	build = func(p *pattern.EventPattern, nodeID pattern.Identifier) (int, map[pattern.Identifier]bool) {
		if p.IsLeaf() {
			ids := map[pattern.Identifier]bool{nodeID: true}
			promoted, rest := promoteConditions(pending, ids)
			pending = rest
			idx := g.addEventNode(p.EventType, nodeID, promoted)
			return idx, ids
		}

		childIdxs := make([]int, len(p.Members))
		union := map[pattern.Identifier]bool{}
		for i, m := range p.Members {
			idx, ids := build(m.Pattern, m.Identifier)
			childIdxs[i] = idx
			for id := range ids {
				union[id] = true
			}
		}

		promoted, rest := promoteConditions(pending, union)
		pending = rest

		nodeIdx := g.addConditionNode(p.Operator, nodeID, promoted)
		for _, c := range childIdxs {
			g.setParent(c, nodeIdx)
			g.addChild(nodeIdx, c)
		}
		return nodeIdx, union
	}

	root, _ := build(q.Pattern, 0)
	g.setRoot(root)
	return g, nil
}
