package engine

import (
	"fmt"
	"sort"

	"github.com/arlojames/cepgraph/cep"
	"github.com/arlojames/cepgraph/cep/pattern"
	"github.com/arlojames/cepgraph/cep/result"
)

// OutputSink is the core's one exposed external interface (spec.md §6):
// a place to hand finished matches to, plus whether the engine should
// drain the root after every event or only once at end of stream.
type OutputSink interface {
	Emit(matches [][]*cep.Event) error
	Incremental() bool
}

// Graph is the PatternQueryGraph (spec.md §3): a rooted tree of
// EventNode/ConditionNode values, arena-allocated in a single slice so
// that parent references are plain indices rather than pointers
// (spec.md §9, "parent back-references in a tree"). A Graph is built
// once by a GraphInitializer and then driven purely through HandleEvent.
type Graph struct {
	nodes  []*node
	root   int
	leaves []int

	window           int64
	fixedCountWindow bool
	sink             OutputSink

	steps      int64
	errorCount int64
}

// NewGraph allocates an empty graph for one query's window parameters.
// Builders populate nodes/root/leaves via addEventNode/addConditionNode.
func NewGraph(window int64, fixedCountWindow bool) *Graph {
	return &Graph{window: window, fixedCountWindow: fixedCountWindow, root: -1}
}

func (g *Graph) addEventNode(eventType string, id pattern.Identifier, conditions []pattern.Condition) int {
	n := newEventNode(eventType, id, g.window, conditions)
	g.nodes = append(g.nodes, n)
	idx := len(g.nodes) - 1
	g.leaves = append(g.leaves, idx)
	return idx
}

func (g *Graph) addConditionNode(op pattern.Operator, nodeID pattern.Identifier, conditions []pattern.Condition) int {
	n := newConditionNode(op, nodeID, g.window, conditions)
	g.nodes = append(g.nodes, n)
	return len(g.nodes) - 1
}

func (g *Graph) setParent(child, parent int) {
	g.nodes[child].parent = parent
}

func (g *Graph) addChild(parent, child int) {
	g.nodes[parent].children = append(g.nodes[parent].children, child)
}

func (g *Graph) setRoot(idx int) {
	g.root = idx
}

// SetSink binds the output sink this graph's root drains into.
func (g *Graph) SetSink(sink OutputSink) {
	g.sink = sink
}

// FixedCountWindow reports whether this graph measures its window in
// event ticks rather than timestamp units.
func (g *Graph) FixedCountWindow() bool {
	return g.fixedCountWindow
}

// Steps returns the number of ConditionNode evaluations performed so
// far — a coarse cost counter used by benchmarking harnesses.
func (g *Graph) Steps() int64 { return g.steps }

// Errors returns the number of predicate/operator evaluation failures
// observed so far.
func (g *Graph) Errors() int64 { return g.errorCount }

// HandleEvent routes one event to every leaf of this graph whose event
// type matches, then cascades any accepted partial results upward
// (spec.md §4.3/§4.4). It returns the first error encountered. A
// predicate error isolates the single candidate it came from; a sink
// failure ends that leaf's cascade at the root (see ErrSinkWrite).
// Either way the remaining matching leaves are still processed.
func (g *Graph) HandleEvent(ev *cep.Event) error {
	var firstErr error
	for _, leafIdx := range g.leaves {
		leaf := g.nodes[leafIdx]
		if leaf.eventType != ev.Type() {
			continue
		}
		pr := wrapLeafEvent(leaf, ev)
		ok, err := evalConditions(leaf.conditions, pr)
		if err != nil {
			g.errorCount++
			firstErr = firstErrOf(firstErr, fmt.Errorf("%w: %v", ErrPredicate, err))
			continue
		}
		if !ok {
			continue
		}
		leaf.buffer.Add(pr)
		if leaf.parent < 0 {
			continue
		}
		if err := g.deliver(leaf.parent, leafIdx, pr); err != nil {
			firstErr = firstErrOf(firstErr, err)
		}
	}
	return firstErr
}

type arrival struct {
	nodeIdx     int
	diffuserIdx int
	pr          *result.PartialResult
}

// deliver implements ConditionNode.try_add_partial_result (spec.md
// §4.4) iteratively: a work-list of arrivals, rather than recursive
// calls, carries results up through however many ancestors accept them,
// which is what spec.md §9 asks for to avoid deep call stacks on tall
// trees.
func (g *Graph) deliver(nodeIdx, diffuserIdx int, pr *result.PartialResult) error {
	queue := []arrival{{nodeIdx, diffuserIdx, pr}}
	var firstErr error
	for len(queue) > 0 {
		a := queue[0]
		queue = queue[1:]
		n := g.nodes[a.nodeIdx]
		currentTime := a.pr.StartTime

		siblingBuffers := make([][]*result.PartialResult, 0, len(n.children))
		for _, childIdx := range n.children {
			if childIdx == a.diffuserIdx {
				continue
			}
			child := g.nodes[childIdx]
			siblingBuffers = append(siblingBuffers, child.buffer.RelevantResults(currentTime, child.window, child.kind == eventNodeKind))
		}

		g.steps++
		candidates := n.combinator.NewResults(siblingBuffers, a.pr, n.nodeID)
		for _, candidate := range candidates {
			if candidate.EndTime-candidate.StartTime > n.window {
				continue
			}
			ok, err := evalConditions(n.conditions, candidate)
			if err != nil {
				g.errorCount++
				firstErr = firstErrOf(firstErr, fmt.Errorf("%w: %v", ErrPredicate, err))
				continue
			}
			if !ok {
				continue
			}
			n.buffer.Add(candidate)
			if n.parent >= 0 {
				queue = append(queue, arrival{n.parent, a.nodeIdx, candidate})
			}
		}

		if a.nodeIdx == g.root && g.sink != nil && g.sink.Incremental() {
			drained := n.buffer.PopAll()
			if err := g.sink.Emit(unpackMatches(drained)); err != nil {
				return firstErrOf(firstErr, fmt.Errorf("%w: %v", ErrSinkWrite, err))
			}
		}
	}
	return firstErr
}

// RootMatches returns every match currently buffered at the root,
// unpacked to ordered event lists, without draining the buffer.
func (g *Graph) RootMatches() [][]*cep.Event {
	if g.root < 0 {
		return nil
	}
	return unpackMatches(g.nodes[g.root].buffer.Iterate())
}

// Clear resets every node's buffer and the step/error counters, for
// harnesses that rerun the same graph against a fresh event stream.
func (g *Graph) Clear() {
	for _, n := range g.nodes {
		n.buffer.Clear()
	}
	g.steps = 0
	g.errorCount = 0
}

// unpackMatches converts completed partial results into the ordered
// event lists an OutputSink consumes, sorted by identifier so output is
// deterministic regardless of map iteration order.
func unpackMatches(prs []*result.PartialResult) [][]*cep.Event {
	out := make([][]*cep.Event, 0, len(prs))
	for _, pr := range prs {
		events := pr.CompletelyUnpack()
		ids := make([]pattern.Identifier, 0, len(events))
		for id := range events {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		ordered := make([]*cep.Event, len(ids))
		for i, id := range ids {
			ordered[i] = events[id]
		}
		out = append(out, ordered)
	}
	return out
}

func firstErrOf(existing, candidate error) error {
	if existing != nil {
		return existing
	}
	return candidate
}
