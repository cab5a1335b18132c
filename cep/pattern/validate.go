package pattern

import (
	"errors"
	"fmt"
)

// Error kinds detected at graph build (spec.md §7, "Malformed pattern").
// Each is a sentinel so callers can errors.Is against it; the wrapping
// message carries the offending detail.
var (
	ErrIdentifierCollision = errors.New("cep/pattern: identifier used more than once in pattern")
	ErrUnknownIdentifier   = errors.New("cep/pattern: condition references an identifier not in the pattern")
	ErrSeqOrderInvalid     = errors.New("cep/pattern: seq order is not a permutation of its node's member identifiers")
	ErrOperatorArity       = errors.New("cep/pattern: operator has fewer than two members")
)

// Validate checks a Query against the malformed-pattern rules in
// spec.md §7 and returns a descriptive, wrapped error on the first
// violation found. A query that validates satisfies invariants I4–I6.
func Validate(q *Query) error {
	if err := validateIdentifiers(q.Pattern); err != nil {
		return err
	}
	if err := validateArityAndOrder(q.Pattern); err != nil {
		return err
	}
	leaves := map[Identifier]bool{}
	for _, id := range q.Pattern.LeafIdentifiers() {
		leaves[id] = true
	}
	for _, cond := range q.Conditions {
		for _, id := range cond.Identifiers {
			if !leaves[id] {
				return fmt.Errorf("%w: %d", ErrUnknownIdentifier, id)
			}
		}
	}
	return nil
}

// validateIdentifiers enforces I6: every identifier in the pattern —
// leaf or nested sub-pattern slot — is unique, since both end up as
// keys in the same PartialResult component map.
func validateIdentifiers(p *EventPattern) error {
	seen := map[Identifier]bool{}
	var walk func(*EventPattern) error
	walk = func(n *EventPattern) error {
		if n.IsLeaf() {
			return nil
		}
		for _, m := range n.Members {
			if seen[m.Identifier] {
				return fmt.Errorf("%w: %d", ErrIdentifierCollision, m.Identifier)
			}
			seen[m.Identifier] = true
			if err := walk(m.Pattern); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(p)
}

func validateArityAndOrder(p *EventPattern) error {
	if p.IsLeaf() {
		return nil
	}
	if len(p.Members) < 2 {
		return fmt.Errorf("%w: operator %s", ErrOperatorArity, p.Operator)
	}
	if seq, ok := p.Operator.(Seq); ok {
		want := map[Identifier]bool{}
		for _, m := range p.Members {
			want[m.Identifier] = true
		}
		if len(seq.Order) != len(want) {
			return fmt.Errorf("%w: order has %d identifiers, node has %d members", ErrSeqOrderInvalid, len(seq.Order), len(want))
		}
		seenInOrder := map[Identifier]bool{}
		for _, id := range seq.Order {
			if !want[id] || seenInOrder[id] {
				return fmt.Errorf("%w: %d", ErrSeqOrderInvalid, id)
			}
			seenInOrder[id] = true
		}
	}
	for _, m := range p.Members {
		if err := validateArityAndOrder(m.Pattern); err != nil {
			return err
		}
	}
	return nil
}
