package sink

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/arlojames/cepgraph/cep"
)

// Console is an incremental sink that renders each match as a small
// table, one column per event headed by its event type, under a
// "match[tag]" label printed in green when color is enabled — grounded
// on the teacher's
// datalog/annotations/output.go (color-coded, latency-prefixed event
// formatting) and datalog/executor/table_formatter.go (tablewriter
// rendering of tuples), repurposed here to render CEP matches instead
// of Datalog relations.
type Console struct {
	w        io.Writer
	useColor bool
	queryTag string
}

// NewConsole returns a Console sink writing to w, tagging every match
// with queryTag (so a harness running several queries can tell their
// output apart) and enabling color when w is an *os.File whose
// descriptor is 1 or 2 (stdout or stderr).
func NewConsole(w io.Writer, queryTag string) *Console {
	if w == nil {
		w = os.Stdout
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isTerminal(f)
	}
	return &Console{w: w, useColor: useColor, queryTag: queryTag}
}

// Emit renders every match as a one-row table of type:value cells.
func (c *Console) Emit(matches [][]*cep.Event) error {
	for _, match := range matches {
		label := fmt.Sprintf("match[%s]", c.queryTag)
		if c.useColor {
			label = color.GreenString(label)
		}
		fmt.Fprintln(c.w, label)

		headers := make([]string, len(match))
		row := make([]string, len(match))
		for i, ev := range match {
			headers[i] = ev.Type()
			row[i] = ev.String()
		}

		table := tablewriter.NewTable(c.w)
		table.Header(headers)
		table.Append(row)
		table.Render()
	}
	return nil
}

// Incremental reports true: a console sink exists to show matches as
// the stream is processed, not to replay them all at the end.
func (c *Console) Incremental() bool { return true }

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return fd == uintptr(1) || fd == uintptr(2)
}
