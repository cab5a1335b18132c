// Package sink holds the OutputSink collaborators consumed behind
// spec.md §6's "exposed — OutputSink" interface
// (cep/engine.OutputSink: Emit + Incremental). The core is agnostic to
// everything in this package; it only ever calls through that
// interface.
package sink

import (
	"github.com/arlojames/cepgraph/cep"
)

// Memory is the non-incremental reference sink (spec.md §6): it simply
// accumulates every batch of matches handed to it and returns them on
// demand, matching original_source's TrivialOutputInterface. It is the
// natural sink for a harness that only reads EvaluationModel.Results()
// at end of stream and never needs incremental drains.
type Memory struct {
	matches [][]*cep.Event
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Emit appends matches to the accumulated set.
func (m *Memory) Emit(matches [][]*cep.Event) error {
	m.matches = append(m.matches, matches...)
	return nil
}

// Incremental always reports false, so the engine never drains the root
// into a Memory sink. The engine has no end-of-stream drain either:
// Memory holds only what a caller passes to Emit itself, and the root's
// matches stay readable through Graph.RootMatches.
func (m *Memory) Incremental() bool { return false }

// Matches returns every match accumulated so far, in emit order.
func (m *Memory) Matches() [][]*cep.Event {
	return m.matches
}
