package engine

import (
	"github.com/arlojames/cepgraph/cep/pattern"
	"github.com/arlojames/cepgraph/cep/result"
)

// Combinator is a pure operator combinator (spec.md §4.2): given the
// in-window buffers of every sibling other than the diffuser, the
// diffuser's own newly arrived result, and the node's identifier, it
// returns every new partial result the node can build this round.
type Combinator interface {
	NewResults(siblingBuffers [][]*result.PartialResult, diffuser *result.PartialResult, nodeID pattern.Identifier) []*result.PartialResult
	Name() string
}

// NewCombinator maps a pattern operator tag to its engine-side
// combinator.
func NewCombinator(op pattern.Operator) Combinator {
	switch o := op.(type) {
	case pattern.And:
		return andCombinator{}
	case pattern.Seq:
		return seqCombinator{order: o.Order, strict: o.Strict}
	default:
		panic("cep/engine: unknown operator " + op.String())
	}
}

// cartesianProduct returns every combination with one element taken
// from each input list, in list order. An empty input list yields no
// combinations at all (a sibling with nothing in-window blocks every
// candidate this round, same as the source).
func cartesianProduct(lists [][]*result.PartialResult) [][]*result.PartialResult {
	if len(lists) == 0 {
		return nil
	}
	combos := [][]*result.PartialResult{{}}
	for _, list := range lists {
		if len(list) == 0 {
			return nil
		}
		next := make([][]*result.PartialResult, 0, len(combos)*len(list))
		for _, combo := range combos {
			for _, item := range list {
				grown := make([]*result.PartialResult, len(combo), len(combo)+1)
				copy(grown, combo)
				next = append(next, append(grown, item))
			}
		}
		combos = next
	}
	return combos
}

// combine runs the common procedure from spec.md §4.2 common to every
// operator: Cartesian product, per-tuple combination, and invariant I2's
// duplicate-event rejection. accept is consulted only for tuples that
// already passed the duplicate check, and receives the already-combined
// candidate — its Unpack/CompletelyUnpack carry the same event multiset
// a per-component check would, so there is no need to re-derive it from
// the raw tuple.
func combine(siblingBuffers [][]*result.PartialResult, diffuser *result.PartialResult, operator string, nodeID pattern.Identifier, accept func(*result.PartialResult) bool) []*result.PartialResult {
	lists := make([][]*result.PartialResult, 0, len(siblingBuffers)+1)
	lists = append(lists, siblingBuffers...)
	lists = append(lists, []*result.PartialResult{diffuser})

	var out []*result.PartialResult
	for _, combo := range cartesianProduct(lists) {
		candidate := result.Combine(combo, operator, nodeID)
		if candidate.HasDuplicateEvent() {
			continue
		}
		if accept(candidate) {
			out = append(out, candidate)
		}
	}
	return out
}

// andCombinator implements unordered co-occurrence: every non-duplicate
// tuple is accepted.
type andCombinator struct{}

func (andCombinator) Name() string { return "AND" }

func (c andCombinator) NewResults(siblingBuffers [][]*result.PartialResult, diffuser *result.PartialResult, nodeID pattern.Identifier) []*result.PartialResult {
	return combine(siblingBuffers, diffuser, c.Name(), nodeID, func(*result.PartialResult) bool { return true })
}

// seqCombinator implements ordered sequence. order names the
// identifiers in the desired temporal order; it is a property of the
// operator, not of which child currently holds which identifier — a
// child may hold an identifier the order places anywhere, so the check
// re-sorts at evaluation time via Unpack rather than relying on
// positional layout, descending through any component whose identifier
// is not itself in order.
type seqCombinator struct {
	order  []pattern.Identifier
	strict bool
}

func (c seqCombinator) Name() string {
	if c.strict {
		return "STRICT_SEQ"
	}
	return "SEQ"
}

func (c seqCombinator) NewResults(siblingBuffers [][]*result.PartialResult, diffuser *result.PartialResult, nodeID pattern.Identifier) []*result.PartialResult {
	return combine(siblingBuffers, diffuser, c.Name(), nodeID, func(candidate *result.PartialResult) bool {
		want := make(map[pattern.Identifier]bool, len(c.order))
		for _, id := range c.order {
			want[id] = true
		}
		// Results of left-deep intermediate nodes sit under a synthetic
		// identifier outside order; open them so the identifiers they
		// hold are visible to the ordering check.
		unpacked := make(map[pattern.Identifier]*result.PartialResult, len(c.order))
		stack := []*result.PartialResult{candidate}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for k, p := range top.Unpack() {
				if want[k] {
					unpacked[k] = p
				} else if !p.IsEventWrapper() {
					stack = append(stack, p)
				}
			}
		}
		parts := make([]*result.PartialResult, len(c.order))
		for i, id := range c.order {
			p, ok := unpacked[id]
			if !ok {
				return false
			}
			parts[i] = p
		}
		for i := 0; i+1 < len(parts); i++ {
			if c.strict {
				if !(parts[i].EndTime < parts[i+1].StartTime) {
					return false
				}
			} else if parts[i].EndTime > parts[i+1].StartTime {
				return false
			}
		}
		return true
	})
}
