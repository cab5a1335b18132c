package ingest

import (
	"bufio"
	"container/heap"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Sort performs a stable external merge sort of in's lines by the
// integer value of column timeIndex, writing the result to out.
// Grounded on original_source/file_sort.py's batch_sort/merge: split
// the input into chunkSize-line chunks, sort each chunk in memory and
// spill it to a temp file, then k-way merge the chunk files with a
// heap. Matches spec.md §6's "external file sorter" collaborator —
// not part of the core's correctness surface beyond the precondition
// that its output is time-sorted.
func Sort(in io.Reader, out io.Writer, timeIndex int, chunkSize int) error {
	if chunkSize <= 0 {
		chunkSize = 32000
	}
	chunkFiles, err := splitSortedChunks(in, timeIndex, chunkSize)
	defer func() {
		for _, f := range chunkFiles {
			os.Remove(f)
		}
	}()
	if err != nil {
		return err
	}
	return mergeChunks(chunkFiles, out, timeIndex)
}

// SortFile is the file-path convenience form original_source/file_sort.py
// exposes as sort_file: read inputPath, write the time-sorted result to
// outputPath.
func SortFile(inputPath, outputPath string, timeIndex int) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("cep/ingest: opening input for sort: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cep/ingest: creating sorted output: %w", err)
	}
	defer out.Close()

	return Sort(in, out, timeIndex, 0)
}

func splitSortedChunks(in io.Reader, timeIndex, chunkSize int) ([]string, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var chunkFiles []string
	lines := make([]string, 0, chunkSize)
	flush := func() error {
		if len(lines) == 0 {
			return nil
		}
		sortLinesByKey(lines, timeIndex)
		f, err := os.CreateTemp("", "cep-sort-chunk-*")
		if err != nil {
			return fmt.Errorf("cep/ingest: creating sort chunk: %w", err)
		}
		w := bufio.NewWriter(f)
		for _, l := range lines {
			if _, err := w.WriteString(l); err != nil {
				f.Close()
				return err
			}
			if _, err := w.WriteString("\n"); err != nil {
				f.Close()
				return err
			}
		}
		if err := w.Flush(); err != nil {
			f.Close()
			return err
		}
		name := f.Name()
		f.Close()
		chunkFiles = append(chunkFiles, name)
		lines = lines[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == chunkSize {
			if err := flush(); err != nil {
				return chunkFiles, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return chunkFiles, fmt.Errorf("cep/ingest: scanning input for sort: %w", err)
	}
	if err := flush(); err != nil {
		return chunkFiles, err
	}
	return chunkFiles, nil
}

// sortLinesByKey sorts lines by the integer value of their timeIndex'th
// comma-separated column, stably — matching batch_sort's list.sort,
// which Python guarantees is stable.
func sortLinesByKey(lines []string, timeIndex int) {
	sort.SliceStable(lines, func(i, j int) bool {
		return lineKey(lines[i], timeIndex) < lineKey(lines[j], timeIndex)
	})
}

func lineKey(line string, timeIndex int) int64 {
	cols := strings.Split(line, ",")
	if timeIndex >= len(cols) {
		return 0
	}
	n, _ := strconv.ParseInt(strings.TrimSpace(cols[timeIndex]), 10, 64)
	return n
}

// chunkCursor is one open chunk file in the k-way merge heap.
type chunkCursor struct {
	index   int // chunk position in input order, breaks key ties
	scanner *bufio.Scanner
	file    *os.File
	line    string
	key     int64
	ok      bool
}

type mergeHeap []*chunkCursor

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	return h[i].key < h[j].key || (h[i].key == h[j].key && h[i].index < h[j].index)
}
func (h mergeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *mergeHeap) Push(x interface{}) { *h = append(*h, x.(*chunkCursor)) }
func (h *mergeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func mergeChunks(chunkFiles []string, out io.Writer, timeIndex int) error {
	cursors := make([]*chunkCursor, 0, len(chunkFiles))
	defer func() {
		for _, c := range cursors {
			c.file.Close()
		}
	}()

	for i, name := range chunkFiles {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("cep/ingest: reopening sort chunk: %w", err)
		}
		c := &chunkCursor{index: i, scanner: bufio.NewScanner(f), file: f}
		c.scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		c.advance(timeIndex)
		if c.ok {
			cursors = append(cursors, c)
		} else {
			f.Close()
		}
	}

	h := mergeHeap(cursors)
	heap.Init(&h)

	w := bufio.NewWriter(out)
	for h.Len() > 0 {
		top := h[0]
		if _, err := w.WriteString(top.line); err != nil {
			return err
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
		top.advance(timeIndex)
		if top.ok {
			heap.Fix(&h, 0)
		} else {
			heap.Pop(&h)
		}
	}
	return w.Flush()
}

func (c *chunkCursor) advance(timeIndex int) {
	if c.scanner.Scan() {
		c.line = c.scanner.Text()
		c.key = lineKey(c.line, timeIndex)
		c.ok = true
		return
	}
	c.ok = false
}
