package engine

import (
	"github.com/arlojames/cepgraph/cep"
	"github.com/arlojames/cepgraph/cep/pattern"
	"github.com/arlojames/cepgraph/cep/result"
)

type nodeKind int

const (
	eventNodeKind nodeKind = iota
	conditionNodeKind
)

// node is the single arena element backing both EventNode and
// ConditionNode (spec.md §9, "parent back-references in a tree"):
// rather than nodes pointing to each other, the graph owns a flat slice
// and every reference — parent, children — is an index into it.
type node struct {
	kind nodeKind

	parent int // index into graph.nodes, -1 for the root
	buffer Buffer
	window int64

	conditions []pattern.Condition

	// EventNode fields.
	eventType  string
	identifier pattern.Identifier

	// ConditionNode fields.
	children   []int
	combinator Combinator
	nodeID     pattern.Identifier
}

func newEventNode(eventType string, id pattern.Identifier, window int64, conditions []pattern.Condition) *node {
	return &node{
		kind:       eventNodeKind,
		parent:     -1,
		buffer:     NewBuffer(),
		window:     window,
		conditions: conditions,
		eventType:  eventType,
		identifier: id,
	}
}

func newConditionNode(op pattern.Operator, nodeID pattern.Identifier, window int64, conditions []pattern.Condition) *node {
	return &node{
		kind:       conditionNodeKind,
		parent:     -1,
		buffer:     NewBuffer(),
		window:     window,
		conditions: conditions,
		combinator: NewCombinator(op),
		nodeID:     nodeID,
	}
}

// evalConditions runs every condition attached to this node against a
// candidate partial result, short-circuiting on the first failure or
// error. A predicate error is reported to the caller rather than
// panicking, so the engine can isolate it to this one candidate
// (spec.md §7, "Predicate / operator exceptions").
func evalConditions(conditions []pattern.Condition, pr *result.PartialResult) (bool, error) {
	if len(conditions) == 0 {
		return true, nil
	}
	events := pr.CompletelyUnpack()
	for _, c := range conditions {
		ok, err := c.Eval(events)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// wrapLeafEvent builds the unary partial result an EventNode produces
// when an incoming event matches its type (spec.md §4.3).
func wrapLeafEvent(n *node, ev *cep.Event) *result.PartialResult {
	return result.WrapEvent(n.identifier, ev)
}
