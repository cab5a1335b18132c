package sink

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/arlojames/cepgraph/cep"
)

// markerOpen and markerClose bracket one serialized match, one event
// per line, matching spec.md §6's file-appender sink exactly:
// " ###result### " ... " ### ".
const (
	markerOpen  = " ###result### "
	markerClose = " ### "
)

// File is the incremental reference sink (spec.md §6): it serializes
// each match as it is drained from the root, one event per line between
// markerOpen/markerClose, and is intended for an engine driven with
// incremental draining (Incremental() returns true).
type File struct {
	w      io.Writer
	closer io.Closer
}

// NewFile wraps an already-open writer as a File sink. The caller owns
// w's lifecycle.
func NewFile(w io.Writer) *File {
	return &File{w: w}
}

// OpenFile creates (or truncates) path and returns a File sink that
// owns the resulting handle; call Close when ingestion finishes.
func OpenFile(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("cep/sink: opening match file: %w", err)
	}
	return &File{w: bufio.NewWriter(f), closer: f}, nil
}

// Emit appends every match to the underlying writer as a marker block.
func (f *File) Emit(matches [][]*cep.Event) error {
	for _, match := range matches {
		if _, err := fmt.Fprint(f.w, markerOpen); err != nil {
			return fmt.Errorf("cep/sink: writing match marker: %w", err)
		}
		for _, ev := range match {
			if _, err := fmt.Fprintln(f.w, ev.String()); err != nil {
				return fmt.Errorf("cep/sink: writing match event: %w", err)
			}
		}
		if _, err := fmt.Fprint(f.w, markerClose); err != nil {
			return fmt.Errorf("cep/sink: writing match marker: %w", err)
		}
	}
	if bw, ok := f.w.(*bufio.Writer); ok {
		if err := bw.Flush(); err != nil {
			return fmt.Errorf("cep/sink: flushing match file: %w", err)
		}
	}
	return nil
}

// Incremental always reports true: File is meant to stream matches out
// as they are produced rather than buffer them until end of stream.
func (f *File) Incremental() bool { return true }

// Close releases the underlying file handle, if OpenFile created it.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
