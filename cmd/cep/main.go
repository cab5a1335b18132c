// Command cep is a harness that wires cep/ingest, cep/engine, and
// cep/sink together. Query submission (spec.md §6, "exposed — query
// submission") is a Go-level API; the harness builds one flat query per
// run from the minimal "SEQ(A,B,C)" / "AND(A,B)" text of its --pattern
// flag and reads events from the file named by --data. Nested patterns
// and conditions are not expressible through the CLI.
package main

import (
	"os"

	"github.com/arlojames/cepgraph/cmd/cep/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
