// Package commands is the cobra command tree for the cep harness,
// grounded on the teacher's own cmd/datalog/main.go flag wiring and
// moolen-spectre's cmd/spectre/commands package split (a rootCmd that
// registers subcommands, HandleError for user-facing failures).
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cep",
	Short: "Complex event processing engine",
	Long: `cep consumes a time-sorted, comma-separated event file and
reports every match of its pattern queries against a sliding time
window.`,
}

// Execute runs the command tree, returning any error after printing it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sortCmd)
}

// HandleError prints err prefixed with msg and exits, matching
// moolen-spectre's commands.HandleError.
func HandleError(err error, msg string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
		os.Exit(1)
	}
}
