// Package cep defines the event model shared by every pattern-query
// engine component: the attribute schema, the event record, and value
// comparison.
package cep

import "fmt"

// Value is anything an event attribute can hold. Like the teacher's
// Datom value, we lean on interface{} with a small closed set of
// concrete Go types rather than a tagged union.
//
// Valid underlying types: int64, float64, string, bool.
type Value interface{}

// CompareValues orders two attribute values. Numeric types are compared
// numerically (mixed int64/float64 is promoted to float64); strings and
// bools compare within their own kind. Values of incomparable kinds
// return 0, which predicates treat as "not ordered" rather than panic.
func CompareValues(a, b Value) int {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			switch {
			case as < bs:
				return -1
			case as > bs:
				return 1
			default:
				return 0
			}
		}
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			if ab == bb {
				return 0
			}
			if !ab && bb {
				return -1
			}
			return 1
		}
	}
	return 0
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// ValuesEqual reports whether two attribute values represent the same
// datum, for use by equality predicates. (The duplicate-event check for
// invariant I2 compares event IDs instead; see result.HasDuplicateEvent.)
func ValuesEqual(a, b Value) bool {
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return af == bf
		}
	}
	return a == b
}

func formatValue(v Value) string {
	return fmt.Sprintf("%v", v)
}
