// Package cli wires supercompact's cobra commands: compact (the core pass)
// and eval (entity-coverage evaluation), both layered over viper-resolved
// SUPERCOMPACT_* configuration.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the top-level "supercompact" command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "supercompact",
		Short:         "Compact AI-coding-agent conversation transcripts to fit a token budget",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompactCmd())
	root.AddCommand(newEvalCmd())
	return root
}

// ExitCode maps a pipeline error to the process exit code spec.md §6
// defines: 0 success, 2 parse error, 3 I/O error, 4 invalid arguments, 5
// over-budget pinned set (output was still written).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errorKind(err) {
	case kindParse:
		return 2
	case kindIO:
		return 3
	case kindInvalidArgument:
		return 4
	case kindBudgetTooSmall:
		return 5
	default:
		return 1
	}
}
