package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arlojames/cepgraph/cep/ingest"
)

var (
	sortInput     string
	sortOutput    string
	sortTimeIndex int
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Externally sort an event file by its timestamp column",
	Long: `sort runs the external merge sort collaborator spec.md §6
describes as a precondition of the engine: it is not part of the
engine's correctness surface, just a way to produce a time-sorted file
for "cep run" to consume.`,
	RunE: sortE,
}

func init() {
	sortCmd.Flags().StringVar(&sortInput, "in", "", "input file path (required)")
	sortCmd.Flags().StringVar(&sortOutput, "out", "", "sorted output file path (required)")
	sortCmd.Flags().IntVar(&sortTimeIndex, "time-index", 0, "zero-based column index of the timestamp")
	_ = sortCmd.MarkFlagRequired("in")
	_ = sortCmd.MarkFlagRequired("out")
}

func sortE(cmd *cobra.Command, args []string) error {
	if err := ingest.SortFile(sortInput, sortOutput, sortTimeIndex); err != nil {
		return fmt.Errorf("cmd/cep: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sorted %s -> %s by column %d\n", sortInput, sortOutput, sortTimeIndex)
	return nil
}
