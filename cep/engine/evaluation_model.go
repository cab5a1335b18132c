package engine

import (
	"fmt"

	"github.com/arlojames/cepgraph/cep"
	"github.com/arlojames/cepgraph/cep/pattern"
)

// BuildGraph picks a GraphInitializer strategy for a query (spec.md
// §4.6): flat patterns go through the left-deep cascade, nested ones
// through the builder that mirrors their operator tree directly.
func BuildGraph(q *pattern.Query) (*Graph, error) {
	if isFlatPattern(q.Pattern) {
		return BuildLeftDeep(q)
	}
	return BuildNested(q)
}

// EvaluationModel is the orchestrator (spec.md §4.7): it owns one graph
// per submitted query and broadcasts every ingested event to all of
// them. Queries do not share sub-expressions with each other.
type EvaluationModel struct {
	graphs []*Graph
}

// NewEvaluationModel returns an orchestrator with no queries loaded.
func NewEvaluationModel() *EvaluationModel {
	return &EvaluationModel{}
}

// SetQueries builds one graph per query, binding its root to the
// corresponding sink, discarding whatever was previously loaded.
// Malformed queries are rejected individually — per spec.md §7 a
// rejected query does not stop the others from loading.
func (m *EvaluationModel) SetQueries(queries []*pattern.Query, sinks []OutputSink) error {
	if len(sinks) != 0 && len(sinks) != len(queries) {
		return fmt.Errorf("cep/engine: %d queries but %d sinks", len(queries), len(sinks))
	}
	graphs := make([]*Graph, 0, len(queries))
	var firstErr error
	for i, q := range queries {
		g, err := BuildGraph(q)
		if err != nil {
			firstErr = firstErrOf(firstErr, fmt.Errorf("cep/engine: query %d rejected: %w", i, err))
			continue
		}
		if len(sinks) != 0 {
			g.SetSink(sinks[i])
		}
		graphs = append(graphs, g)
	}
	m.graphs = graphs
	return firstErr
}

// HandleEvent routes one event to every graph (spec.md §4.7). counter
// is the monotonically increasing ingestion sequence number; graphs
// configured with a fixed-count window see a per-graph shadow event
// whose timestamp is overwritten with counter, so "window = k events"
// behaves as "window = k ticks" without mutating the shared original
// event (spec.md §9's fixed-count open question, resolved in
// SPEC_FULL.md §5 — the source mutates the event in place, which this
// implementation cannot do since the same event may feed a sibling
// graph with a real time window).
func (m *EvaluationModel) HandleEvent(ev *cep.Event, counter int64) error {
	var firstErr error
	for _, g := range m.graphs {
		e := ev
		if g.FixedCountWindow() {
			e = ev.WithTimestamp(counter)
		}
		if err := g.HandleEvent(e); err != nil {
			firstErr = firstErrOf(firstErr, err)
		}
	}
	return firstErr
}

// Results returns each graph's root matches, fully unpacked, in query
// order.
func (m *EvaluationModel) Results() [][][]*cep.Event {
	out := make([][][]*cep.Event, len(m.graphs))
	for i, g := range m.graphs {
		out[i] = g.RootMatches()
	}
	return out
}

// Clear resets every graph's buffers, for harnesses that rerun the same
// queries against a fresh stream.
func (m *EvaluationModel) Clear() {
	for _, g := range m.graphs {
		g.Clear()
	}
}

// Graphs exposes the loaded graphs directly, for callers (metrics
// collectors, benchmarking harnesses) that need per-query step/error
// counters rather than just matches.
func (m *EvaluationModel) Graphs() []*Graph {
	return m.graphs
}
