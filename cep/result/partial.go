// Package result implements the PartialResult algebra (spec.md §4.1):
// the in-progress-match value that flows upward through a pattern-query
// graph, with its two-level unpacking that makes nested SEQ(A, B,
// AND(C, D))-style patterns work.
package result

import (
	"github.com/arlojames/cepgraph/cep"
	"github.com/arlojames/cepgraph/cep/pattern"
)

// component is the value half of a PartialResult's identifier map: it
// is either a raw leaf event, or an opaque nested PartialResult
// produced by some operator node further down the tree. Exactly one
// field is set.
type component struct {
	event  *cep.Event
	result *PartialResult
}

func (c component) startTime() int64 {
	if c.event != nil {
		return c.event.Timestamp
	}
	return c.result.StartTime
}

func (c component) endTime() int64 {
	if c.event != nil {
		return c.event.Timestamp
	}
	return c.result.EndTime
}

// PartialResult is a set of events assembled so far, tagged by operator
// provenance and a node identifier (spec.md §3). StartTime/EndTime are
// the min/max over its constituent events' timestamps (invariant I1 is
// enforced by the engine, which checks EndTime-StartTime against the
// node's window before keeping a result).
type PartialResult struct {
	Components map[pattern.Identifier]component
	StartTime  int64
	EndTime    int64

	// Operator is the kind tag of the node that produced this result
	// ("" for a bare event wrapper). Used to decide, in Combine, whether
	// a child is inserted opaquely or flattened — see spec.md §4.1.
	Operator string
	// NodeID is this result's own identifier: the leaf's event
	// identifier for an event wrapper, or the producing node's
	// identifier for a composite.
	NodeID pattern.Identifier
}

// WrapEvent builds a unary partial result from a single event
// (spec.md §4.1, "Event wrapping").
func WrapEvent(id pattern.Identifier, ev *cep.Event) *PartialResult {
	return &PartialResult{
		Components: map[pattern.Identifier]component{id: {event: ev}},
		StartTime:  ev.Timestamp,
		EndTime:    ev.Timestamp,
		NodeID:     id,
	}
}

// IsEventWrapper reports whether this result directly wraps a single
// event, as opposed to being the output of some operator.
func (pr *PartialResult) IsEventWrapper() bool {
	if pr.Operator != "" || len(pr.Components) != 1 {
		return false
	}
	for _, c := range pr.Components {
		return c.event != nil
	}
	return false
}

// Combine builds a new partial result from a tuple of child partial
// results plus the originating operator tag and node identifier
// (spec.md §4.1, "Combination"). A child produced by an inner operator
// node (or a bare event wrapper) is inserted opaquely, keyed by its own
// identifier, preserving operator provenance for the two-level
// unpacking nested patterns rely on. A child that is a plain, untagged
// composite instead has its component map flattened directly in.
func Combine(children []*PartialResult, operator string, nodeID pattern.Identifier) *PartialResult {
	merged := make(map[pattern.Identifier]component, len(children)*2)
	for _, child := range children {
		if child.Operator != "" || child.IsEventWrapper() {
			merged[child.NodeID] = component{result: child}
			continue
		}
		for k, v := range child.Components {
			merged[k] = v
		}
	}
	start, end := spanOf(merged)
	return &PartialResult{Components: merged, StartTime: start, EndTime: end, Operator: operator, NodeID: nodeID}
}

func spanOf(components map[pattern.Identifier]component) (start, end int64) {
	first := true
	for _, c := range components {
		s, e := c.startTime(), c.endTime()
		if first {
			start, end = s, e
			first = false
			continue
		}
		if s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}
	return start, end
}

// Unpack returns a map keyed by the identifiers of the immediate
// compositional children, stopping at operator boundaries (spec.md
// §4.1). A raw leaf event found directly in this result's component map
// (as in an event wrapper's own map) is re-wrapped so every value is a
// *PartialResult.
func (pr *PartialResult) Unpack() map[pattern.Identifier]*PartialResult {
	out := make(map[pattern.Identifier]*PartialResult, len(pr.Components))
	for k, c := range pr.Components {
		if c.result != nil {
			out[k] = c.result
			continue
		}
		out[k] = WrapEvent(k, c.event)
	}
	return out
}

// CompletelyUnpack recursively descends through every nested
// PartialResult, returning a map from event identifier to raw event.
// This is what conditions use to read event attributes directly,
// regardless of how deeply the identifier sits inside nested operators.
func (pr *PartialResult) CompletelyUnpack() map[pattern.Identifier]*cep.Event {
	out := make(map[pattern.Identifier]*cep.Event, len(pr.Components))
	pr.completelyUnpackInto(out)
	return out
}

func (pr *PartialResult) completelyUnpackInto(out map[pattern.Identifier]*cep.Event) {
	for k, c := range pr.Components {
		if c.event != nil {
			out[k] = c.event
			continue
		}
		c.result.completelyUnpackInto(out)
	}
}

// HasDuplicateEvent reports whether this result's completely-unpacked
// events contain the same underlying event more than once, by its
// ingestion-assigned ID (invariant I2). This replaces the source's
// attribute-tuple hashing with a stable event ID, as spec.md's design
// notes recommend, avoiding spurious collisions between distinct events
// that happen to carry identical payloads.
func (pr *PartialResult) HasDuplicateEvent() bool {
	seen := make(map[uint64]bool)
	for _, ev := range pr.CompletelyUnpack() {
		if seen[ev.ID] {
			return true
		}
		seen[ev.ID] = true
	}
	return false
}
