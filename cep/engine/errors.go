package engine

import "errors"

// ErrPredicate wraps a condition's own error (spec.md §7, "Predicate /
// operator exceptions"): the engine isolates the failure to the single
// candidate partial result that triggered it and continues.
var ErrPredicate = errors.New("cep/engine: predicate evaluation failed")

// ErrSinkWrite wraps an incremental sink's emit failure (spec.md §7,
// "Sink I/O failure"). The cascade that triggered the drain is aborted
// at the root; nodes below the root keep whatever they already
// inserted this invocation.
var ErrSinkWrite = errors.New("cep/engine: output sink failed")
