package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlojames/cepgraph/cep"
)

func noop(map[Identifier]*cep.Event) (bool, error) { return true, nil }

func TestValidateAcceptsWellFormedSeq(t *testing.T) {
	p := Composite(Seq{Order: []Identifier{0, 1, 2}},
		NewLeaf("A", 0), NewLeaf("B", 1), NewLeaf("C", 2))
	q := &Query{Pattern: p, Window: 10}
	assert.NoError(t, Validate(q))
}

func TestValidateAcceptsNestedSeqOverAnd(t *testing.T) {
	p := Composite(Seq{Order: []Identifier{0, 1, 2}},
		NewLeaf("A", 0), NewLeaf("B", 1),
		NewComposite(2, And{}, NewLeaf("C", 3), NewLeaf("D", 4)))
	q := &Query{Pattern: p, Window: 10}
	assert.NoError(t, Validate(q))
}

func TestValidateRejectsIdentifierCollision(t *testing.T) {
	p := Composite(And{}, NewLeaf("A", 0), NewLeaf("B", 0))
	err := Validate(&Query{Pattern: p})
	assert.True(t, errors.Is(err, ErrIdentifierCollision))
}

func TestValidateRejectsIdentifierCollisionAcrossNesting(t *testing.T) {
	p := Composite(And{}, NewLeaf("A", 0),
		NewComposite(1, And{}, NewLeaf("C", 0), NewLeaf("D", 2)))
	err := Validate(&Query{Pattern: p})
	assert.True(t, errors.Is(err, ErrIdentifierCollision))
}

func TestValidateRejectsSeqOrderNotPermutation(t *testing.T) {
	p := Composite(Seq{Order: []Identifier{0, 1, 5}}, NewLeaf("A", 0), NewLeaf("B", 1))
	err := Validate(&Query{Pattern: p})
	assert.True(t, errors.Is(err, ErrSeqOrderInvalid))
}

func TestValidateRejectsSeqOrderWrongLength(t *testing.T) {
	p := Composite(Seq{Order: []Identifier{0}}, NewLeaf("A", 0), NewLeaf("B", 1))
	err := Validate(&Query{Pattern: p})
	assert.True(t, errors.Is(err, ErrSeqOrderInvalid))
}

func TestValidateRejectsUnknownConditionIdentifier(t *testing.T) {
	p := Composite(And{}, NewLeaf("A", 0), NewLeaf("B", 1))
	q := &Query{Pattern: p, Conditions: []Condition{NewCondition(noop, 0, 7)}}
	err := Validate(q)
	assert.True(t, errors.Is(err, ErrUnknownIdentifier))
}

func TestValidateRejectsArityMismatch(t *testing.T) {
	p := &EventPattern{Operator: And{}, Members: []Member{NewLeaf("A", 0)}}
	err := Validate(&Query{Pattern: p})
	assert.True(t, errors.Is(err, ErrOperatorArity))
}
