package pattern

// EventPattern is an expression tree over event types composed with
// operators (spec.md §3). A node is either a leaf (one event-type
// occurrence, EventType set) or a composite (an Operator applied to
// Members, themselves possibly leaves or nested composites — this is
// what lets SEQ and AND nest, e.g. SEQ(A, B, AND(C, D))).
type EventPattern struct {
	EventType string
	Operator  Operator
	Members   []Member
}

// Member glues an operand — a leaf event type or a nested sub-pattern —
// to the identifier a condition or a SEQ order uses to refer to it.
// Nested sub-patterns carry their own identifier the same way a leaf
// does, so an outer SEQ can order against an inner AND as a single
// timestamped unit.
type Member struct {
	Identifier Identifier
	Pattern    *EventPattern
}

// Leaf builds a single event-type occurrence.
func Leaf(eventType string) *EventPattern {
	return &EventPattern{EventType: eventType}
}

// Composite applies an operator to two or more members.
func Composite(op Operator, members ...Member) *EventPattern {
	return &EventPattern{Operator: op, Members: members}
}

// NewLeaf is a convenience for building a leaf member directly.
func NewLeaf(eventType string, id Identifier) Member {
	return Member{Identifier: id, Pattern: Leaf(eventType)}
}

// NewComposite is a convenience for building a nested sub-pattern
// member directly.
func NewComposite(id Identifier, op Operator, members ...Member) Member {
	return Member{Identifier: id, Pattern: Composite(op, members...)}
}

// IsLeaf reports whether this node is a single event-type occurrence.
func (p *EventPattern) IsLeaf() bool {
	return p.Operator == nil
}

// LeafIdentifiers returns every leaf identifier reachable from this
// pattern, depth-first. Conditions only ever resolve against raw
// events, so this is the set their identifiers must be drawn from.
func (p *EventPattern) LeafIdentifiers() []Identifier {
	if p.IsLeaf() {
		return nil
	}
	var out []Identifier
	for _, m := range p.Members {
		if m.Pattern.IsLeaf() {
			out = append(out, m.Identifier)
		} else {
			out = append(out, m.Pattern.LeafIdentifiers()...)
		}
	}
	return out
}

// AllIdentifiers returns every identifier reachable from this pattern —
// both leaf occurrences and nested sub-pattern slots — depth-first.
// Invariant I6 requires these to be pairwise distinct, since leaf and
// composite identifiers share one PartialResult component-map
// namespace.
func (p *EventPattern) AllIdentifiers() []Identifier {
	if p.IsLeaf() {
		return nil
	}
	var out []Identifier
	for _, m := range p.Members {
		out = append(out, m.Identifier)
		out = append(out, m.Pattern.AllIdentifiers()...)
	}
	return out
}
