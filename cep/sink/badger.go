package sink

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/arlojames/cepgraph/cep"
)

// Badger is a durable sink backed by BadgerDB: every emitted match is
// written as one key/value pair, keyed by a monotonically increasing
// sequence number, value-encoded the same way File serializes a match
// (comma-joined attributes, one event per line). Grounded on the
// teacher's datalog/storage/badger_store.go — same
// badger.DefaultOptions/db.Update(txn.Set) shape, repurposed from
// datom storage to an append-only match log.
//
// This sink only ever persists *completed, emitted* matches — never a
// node's in-flight partial-result buffer — so it does not cross
// spec.md §1's Non-goal of persisting partial state across restarts.
type Badger struct {
	db  *badger.DB
	seq uint64
}

// OpenBadger opens (or creates) a BadgerDB at path as a match log.
func OpenBadger(path string) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("cep/sink: opening badger match log: %w", err)
	}
	return &Badger{db: db}, nil
}

// Emit persists each match under its own sequential key.
func (b *Badger) Emit(matches [][]*cep.Event) error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, match := range matches {
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, b.seq)
			b.seq++
			if err := txn.Set(key, []byte(encodeMatch(match))); err != nil {
				return fmt.Errorf("cep/sink: writing match to badger: %w", err)
			}
		}
		return nil
	})
}

// Incremental reports true: the durable log is meant to persist
// matches as they are produced.
func (b *Badger) Incremental() bool { return true }

// Close releases the underlying database handle.
func (b *Badger) Close() error {
	return b.db.Close()
}

// Count returns how many matches have been persisted so far.
func (b *Badger) Count() uint64 { return b.seq }

func encodeMatch(match []*cep.Event) string {
	lines := make([]string, len(match))
	for i, ev := range match {
		lines[i] = ev.String()
	}
	return strings.Join(lines, "\n")
}
