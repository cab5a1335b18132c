package engine

import "github.com/arlojames/cepgraph/cep/result"

// Buffer is the per-node memory model (spec.md §4.5): a container of
// partial results with a window-pruning read operation. Every node in a
// graph owns exactly one.
type Buffer interface {
	Add(pr *result.PartialResult)
	Iterate() []*result.PartialResult
	PopAll() []*result.PartialResult
	// RelevantResults prunes out-of-window results as a side effect and
	// returns what remains in-window. sortedHint selects the pruning
	// strategy: true for buffers whose insertion order is monotone in
	// start_time (EventNode leaves), false otherwise (ConditionNode
	// inner buffers, where a late cross-product can produce an earlier
	// start_time than an already-buffered result).
	RelevantResults(now, window int64, sortedHint bool) []*result.PartialResult
	Clear()
}

// sliceBuffer is the only Buffer implementation the engine needs: a
// flat, append-only slice, matching the source's ListWrapper.
type sliceBuffer struct {
	items []*result.PartialResult
}

// NewBuffer constructs an empty Buffer.
func NewBuffer() Buffer {
	return &sliceBuffer{}
}

func (b *sliceBuffer) Add(pr *result.PartialResult) {
	b.items = append(b.items, pr)
}

func (b *sliceBuffer) Iterate() []*result.PartialResult {
	return b.items
}

func (b *sliceBuffer) PopAll() []*result.PartialResult {
	popped := b.items
	b.items = nil
	return popped
}

func (b *sliceBuffer) Clear() {
	b.items = nil
}

func (b *sliceBuffer) RelevantResults(now, window int64, sortedHint bool) []*result.PartialResult {
	if sortedHint {
		b.items = pruneSortedTail(b.items, now, window)
		return b.items
	}
	b.items = pruneUnsorted(b.items, now, window)
	return b.items
}

// pruneSortedTail implements the amortized tail-scan described in
// spec.md §4.5: walk backward from the newest entry while it is still
// in-window, and cut there. The first out-of-window entry the scan meets
// and everything older than it are discarded, so what remains is
// exactly the in-window suffix.
func pruneSortedTail(items []*result.PartialResult, now, window int64) []*result.PartialResult {
	i := len(items)
	for i > 0 && now-items[i-1].StartTime <= window {
		i--
	}
	return items[i:]
}

// pruneUnsorted keeps exactly the results within window, scanning every
// entry since insertion order carries no guarantee here.
func pruneUnsorted(items []*result.PartialResult, now, window int64) []*result.PartialResult {
	kept := items[:0]
	for _, pr := range items {
		if now-pr.StartTime <= window {
			kept = append(kept, pr)
		}
	}
	return kept
}
