package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlojames/cepgraph/cep/result"
)

func prAt(start int64) *result.PartialResult {
	return &result.PartialResult{StartTime: start, EndTime: start}
}

func TestSortedPruneKeepsInWindowSuffix(t *testing.T) {
	b := NewBuffer()
	for _, ts := range []int64{0, 5, 9} {
		b.Add(prAt(ts))
	}
	relevant := b.RelevantResults(10, 3, true)
	// now=10, window=3: scanning backward from ts=9 (in window) to
	// ts=5 (out of window, 10-5=5>3) stops the cut there; ts=5 and
	// everything older are discarded.
	assert.Len(t, relevant, 1)
	assert.Equal(t, int64(9), relevant[0].StartTime)
}

func TestSortedPruneKeepsEverythingInWindow(t *testing.T) {
	b := NewBuffer()
	for _, ts := range []int64{0, 5, 9} {
		b.Add(prAt(ts))
	}
	relevant := b.RelevantResults(10, 10, true)
	assert.Len(t, relevant, 3)
}

func TestUnsortedPruneFiltersStrictly(t *testing.T) {
	b := NewBuffer()
	// Out-of-order start_time, as an inner node's buffer may see.
	for _, ts := range []int64{9, 0, 5} {
		b.Add(prAt(ts))
	}
	relevant := b.RelevantResults(10, 3, false)
	assert.Len(t, relevant, 1)
	assert.Equal(t, int64(9), relevant[0].StartTime)
}

func TestPopAllEmptiesBuffer(t *testing.T) {
	b := NewBuffer()
	b.Add(prAt(1))
	b.Add(prAt(2))
	popped := b.PopAll()
	assert.Len(t, popped, 2)
	assert.Empty(t, b.Iterate())
}

func TestClearEmptiesBuffer(t *testing.T) {
	b := NewBuffer()
	b.Add(prAt(1))
	b.Clear()
	assert.Empty(t, b.Iterate())
}
