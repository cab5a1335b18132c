// Package ingest is the EventSource collaborator (spec.md §6): it turns
// lines of comma-separated tokens into *cep.Event values and hands them
// to the engine together with a monotonically increasing counter.
//
// The core treats this package as an external collaborator behind a
// narrow pull interface — spec.md §1 explicitly scopes "CSV-like line
// parsing" and "external file sorting by timestamp" out of the
// evaluation core. Grounded on original_source/processor.py's
// get_event_from_line (token coercion) and original_source/file_sort.py
// (external merge sort), reworked in the teacher's Go idiom
// (bufio.Scanner line source, container/heap k-way merge).
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arlojames/cepgraph/cep"
)

// Source is the EventSource interface the engine's ingestion loop pulls
// from (spec.md §6): a pull iterator yielding one event at a time with
// its ingestion-order counter.
type Source interface {
	// Next returns the next event and its counter, or io.EOF once
	// exhausted.
	Next() (*cep.Event, int64, error)
}

// LineSource reads one event per line from an io.Reader: comma-separated
// tokens, each coerced to int64 if all-digit, else float64 if
// parseable, else left as a string — matching
// original_source/processor.py's convert_value exactly. Column names
// and the timestamp/type column positions are fixed by schema at
// construction.
type LineSource struct {
	schema  *cep.Schema
	scanner *bufio.Scanner
	counter int64
	nextID  uint64
}

// NewLineSource wraps r as a LineSource against schema. Callers
// typically obtain r from a file already run through Sort (or one
// already known to be time-sorted, per spec.md §6's precondition).
func NewLineSource(schema *cep.Schema, r io.Reader) *LineSource {
	return &LineSource{schema: schema, scanner: bufio.NewScanner(r)}
}

// Next parses the next non-empty line into an event. io.EOF is returned
// once the underlying reader is exhausted.
func (s *LineSource) Next() (*cep.Event, int64, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ev, err := s.parseLine(line)
		if err != nil {
			return nil, 0, err
		}
		counter := s.counter
		s.counter++
		return ev, counter, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("cep/ingest: reading line source: %w", err)
	}
	return nil, 0, io.EOF
}

func (s *LineSource) parseLine(line string) (*cep.Event, error) {
	tokens := strings.Split(line, ",")
	if len(tokens) != len(s.schema.Names) {
		return nil, fmt.Errorf("cep/ingest: line has %d columns, schema wants %d: %q", len(tokens), len(s.schema.Names), line)
	}
	values := make([]cep.Value, len(tokens))
	for i, tok := range tokens {
		values[i] = coerceToken(tok)
	}
	id := s.nextID
	s.nextID++
	return cep.NewEvent(s.schema, values, id)
}

// coerceToken mirrors processor.py's convert_value: an all-digit token
// becomes an int64, else a token parseable as a float becomes a
// float64, else the token is left as a string.
func coerceToken(tok string) cep.Value {
	if isAllDigits(tok) {
		if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return n
		}
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return f
	}
	return tok
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
