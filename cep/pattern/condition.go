package pattern

import (
	"fmt"

	"github.com/arlojames/cepgraph/cep"
)

// Condition is a predicate identified by an ordered list of event
// identifiers (spec.md §3): at evaluation time the engine hands Func a
// partial result's completely-unpacked event map, keyed by identifier,
// after checking that every identifier in Identifiers is present.
//
// Attribute access: Func may close over column indices obtained once
// from cep.Schema.IndexOf and read cep.Event.Values directly, or look
// attributes up by name through cep.Event.Attr / MustAttr, which
// resolve the name against the event's schema on every call (MustAttr
// panics on a name the schema lacks).
type Condition struct {
	Identifiers []Identifier
	Func        func(events map[Identifier]*cep.Event) (bool, error)
}

// NewCondition builds a Condition from an ordered identifier list and a
// predicate function.
func NewCondition(fn func(events map[Identifier]*cep.Event) (bool, error), ids ...Identifier) Condition {
	return Condition{Identifiers: ids, Func: fn}
}

// Eval resolves this condition's identifiers out of events and invokes
// Func. It returns an error if an identifier the condition declared is
// missing from events — that indicates the condition was attached to a
// node whose subtree doesn't yet observe all of its identifiers
// (invariant I5 violation) or invalid engine wiring.
func (c Condition) Eval(events map[Identifier]*cep.Event) (bool, error) {
	for _, id := range c.Identifiers {
		if _, ok := events[id]; !ok {
			return false, fmt.Errorf("cep/pattern: condition identifier %d not present in partial result", id)
		}
	}
	return c.Func(events)
}
