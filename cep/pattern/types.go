// Package pattern is the exposed query-submission surface: event
// patterns, operators, conditions, and the window/flags that make up a
// pattern query (spec.md §6, "Exposed — query submission").
//
// Everything here is plain, immutable data. The behavior that turns a
// Query into running matches lives in cep/engine, which builds a graph
// from these values and never mutates them.
package pattern

// Identifier names one slot in a pattern: one event-type occurrence, or
// one sub-pattern. Identifiers are integers, unique within a pattern
// (invariant I6) — a leaf and a nested sub-pattern share the same
// identifier namespace, since both end up as keys in the same
// PartialResult component map.
type Identifier int
