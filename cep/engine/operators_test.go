package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlojames/cepgraph/cep/pattern"
	"github.com/arlojames/cepgraph/cep/result"
)

func TestAndCombinatorAcceptsNonDuplicateTuple(t *testing.T) {
	s := testSchema(t)
	a := result.WrapEvent(0, mkEvent(t, s, 1, 1, "A", 0))
	b := result.WrapEvent(1, mkEvent(t, s, 2, 2, "B", 0))

	c := andCombinator{}
	out := c.NewResults([][]*result.PartialResult{{b}}, a, -1)
	assert.Len(t, out, 1)
}

func TestAndCombinatorRejectsDuplicateEvent(t *testing.T) {
	s := testSchema(t)
	shared := mkEvent(t, s, 1, 1, "A", 0)
	a := result.WrapEvent(0, shared)
	b := result.WrapEvent(1, shared)

	c := andCombinator{}
	out := c.NewResults([][]*result.PartialResult{{b}}, a, -1)
	assert.Empty(t, out)
}

func TestSeqCombinatorAcceptsInOrderAndRejectsOutOfOrder(t *testing.T) {
	s := testSchema(t)
	a := result.WrapEvent(0, mkEvent(t, s, 1, 1, "A", 0))
	bEarly := result.WrapEvent(1, mkEvent(t, s, 2, 0, "B", 0)) // starts before a
	bLate := result.WrapEvent(1, mkEvent(t, s, 3, 5, "B", 0))

	c := seqCombinator{order: []pattern.Identifier{0, 1}}

	accepted := c.NewResults([][]*result.PartialResult{{bLate}}, a, -1)
	assert.Len(t, accepted, 1)

	rejected := c.NewResults([][]*result.PartialResult{{bEarly}}, a, -1)
	assert.Empty(t, rejected)
}

func TestSeqAllowsEqualTimestampsStrictSeqDoesNot(t *testing.T) {
	s := testSchema(t)
	a := result.WrapEvent(0, mkEvent(t, s, 1, 5, "A", 0))
	b := result.WrapEvent(1, mkEvent(t, s, 2, 5, "B", 0))

	seq := seqCombinator{order: []pattern.Identifier{0, 1}, strict: false}
	assert.Len(t, seq.NewResults([][]*result.PartialResult{{b}}, a, -1), 1)

	strict := seqCombinator{order: []pattern.Identifier{0, 1}, strict: true}
	assert.Empty(t, strict.NewResults([][]*result.PartialResult{{b}}, a, -1))
}

func TestSeqReordersByOperatorOrderNotChildLayout(t *testing.T) {
	s := testSchema(t)
	// Identifier 1 arrives earlier in time than identifier 0, but the
	// operator's declared order is [0, 1] — SEQ must still check
	// 0-before-1 by identifier, not by which argument is the diffuser.
	idOne := result.WrapEvent(1, mkEvent(t, s, 1, 1, "B", 0))
	idZero := result.WrapEvent(0, mkEvent(t, s, 2, 5, "A", 0))

	c := seqCombinator{order: []pattern.Identifier{0, 1}}
	out := c.NewResults([][]*result.PartialResult{{idOne}}, idZero, -1)
	assert.Empty(t, out, "identifier 1 (t=1) precedes identifier 0 (t=5), violating declared order")
}
