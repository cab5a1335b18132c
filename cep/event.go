package cep

import (
	"fmt"
	"strings"
)

// Schema is the static attribute layout shared by every Event parsed
// from one source: an ordered attribute-name list plus the indices of
// the designated timestamp and type columns.
//
// Re-architecture note: the source resolved attributes by name at
// predicate-call time through a dict lookup (Python's __getattr__).
// Here events carry a shared *Schema and a parallel value slice;
// looking a name up once at query-build time yields a column index,
// and every later access is a slice index, not a map probe.
type Schema struct {
	Names     []string
	TimeIndex int
	TypeIndex int
}

// NewSchema builds a Schema, locating the timestamp and type columns by
// name. It returns an error if either name is absent — a malformed
// schema is a build-time error, not a runtime one.
func NewSchema(names []string, timeAttr, typeAttr string) (*Schema, error) {
	s := &Schema{Names: append([]string(nil), names...), TimeIndex: -1, TypeIndex: -1}
	for i, n := range s.Names {
		if n == timeAttr {
			s.TimeIndex = i
		}
		if n == typeAttr {
			s.TypeIndex = i
		}
	}
	if s.TimeIndex < 0 {
		return nil, fmt.Errorf("cep: schema has no timestamp attribute %q", timeAttr)
	}
	if s.TypeIndex < 0 {
		return nil, fmt.Errorf("cep: schema has no type attribute %q", typeAttr)
	}
	return s, nil
}

// IndexOf returns the column index of an attribute name, or -1 if the
// schema does not carry it.
func (s *Schema) IndexOf(name string) int {
	for i, n := range s.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Event is an immutable attribute record: a shared schema plus a value
// vector, a monotonic ingestion-assigned ID, and the timestamp it was
// stamped with (normally schema.TimeIndex's value, but see
// EvaluationModel's fixed-count-window shadowing).
//
// Event is never mutated after construction. The same *Event may be
// referenced by many PartialResults at once.
type Event struct {
	Schema    *Schema
	Values    []Value
	ID        uint64
	Timestamp int64
}

// NewEvent builds an Event from a schema and a parallel value slice.
// The timestamp is read out of Values at schema.TimeIndex and coerced
// to int64 (see coerceTimestamp) so window arithmetic never deals with
// mixed numeric types.
func NewEvent(schema *Schema, values []Value, id uint64) (*Event, error) {
	if len(values) != len(schema.Names) {
		return nil, fmt.Errorf("cep: event has %d values, schema wants %d", len(values), len(schema.Names))
	}
	ts, ok := coerceTimestamp(values[schema.TimeIndex])
	if !ok {
		return nil, fmt.Errorf("cep: timestamp attribute %q is not numeric: %v", schema.Names[schema.TimeIndex], values[schema.TimeIndex])
	}
	return &Event{Schema: schema, Values: append([]Value(nil), values...), ID: id, Timestamp: ts}, nil
}

func coerceTimestamp(v Value) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// WithTimestamp returns a shallow copy of the event with its timestamp
// (and the corresponding attribute slot) replaced. Used exclusively by
// fixed-count-window graphs, which need each graph to see its own
// per-event counter without mutating the event other graphs observe —
// see SPEC_FULL.md §5 on the fixed-count "shadow" event.
func (e *Event) WithTimestamp(ts int64) *Event {
	values := append([]Value(nil), e.Values...)
	values[e.Schema.TimeIndex] = ts
	return &Event{Schema: e.Schema, Values: values, ID: e.ID, Timestamp: ts}
}

// Type returns the event's type tag.
func (e *Event) Type() string {
	v := e.Values[e.Schema.TypeIndex]
	if s, ok := v.(string); ok {
		return s
	}
	return formatValue(v)
}

// Attr looks up an attribute by name.
func (e *Event) Attr(name string) (Value, bool) {
	idx := e.Schema.IndexOf(name)
	if idx < 0 {
		return nil, false
	}
	return e.Values[idx], true
}

// MustAttr looks up an attribute by name, panicking if absent. Intended
// for use inside condition closures built against a known schema, where
// a missing attribute is a programming error, not a runtime condition.
func (e *Event) MustAttr(name string) Value {
	v, ok := e.Attr(name)
	if !ok {
		panic(fmt.Sprintf("cep: event has no attribute %q", name))
	}
	return v
}

// String renders the event as comma-joined attribute values, matching
// the original's __str__ (used by the marker-line file sink).
func (e *Event) String() string {
	parts := make([]string, len(e.Values))
	for i, v := range e.Values {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ",")
}
