package pattern

import "fmt"

// Operator is the tagged variant spec.md's design notes call for in
// place of the source's class-identity dispatch: And and Seq (whose
// Strict flag selects the strict-sequence variant) are the only
// implementations, and cep/engine dispatches on concrete type rather
// than testing a dynamic type tag.
//
// Extension point (spec.md §4.2): OR and Kleene-star plug in by adding
// a new concrete type here and a matching case in
// cep/engine.NewCombinator; nothing else changes.
type Operator interface {
	fmt.Stringer
	operator()
}

// And accepts every non-duplicate combination of its children's
// buffered results; it imposes no ordering constraint.
type And struct{}

func (And) operator() {}
func (And) String() string {
	return "AND"
}

// Seq accepts combinations whose components, looked up by Order and
// projected to (start_time, end_time), are non-decreasing: for every
// consecutive pair, end_time(i) <= start_time(i+1). Order is a property
// of the operator, not of the children's tree layout (spec.md §4.2) —
// a child node may hold an identifier anywhere in Order.
type Seq struct {
	Order  []Identifier
	Strict bool // true selects StrictSeq semantics: end_time(i) < start_time(i+1)
}

func (Seq) operator() {}
func (s Seq) String() string {
	if s.Strict {
		return fmt.Sprintf("STRICT-SEQ%v", s.Order)
	}
	return fmt.Sprintf("SEQ%v", s.Order)
}
