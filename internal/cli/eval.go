package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/heiervang-technologies/supercompact/internal/evalharness"
	"github.com/heiervang-technologies/supercompact/internal/parser"
	"github.com/heiervang-technologies/supercompact/internal/scorer"
	"github.com/heiervang-technologies/supercompact/internal/selector"
)

func newEvalCmd() *cobra.Command {
	var (
		method       string
		budget       int
		splitRatio   float64
		minRepeatLen int
	)

	cmd := &cobra.Command{
		Use:   "eval <input>",
		Short: "Report entity-coverage of a compaction method against a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return openErrToIoError(args[0], err)
			}
			defer in.Close()

			transcript, err := parser.Parse(in)
			if err != nil {
				return err
			}

			scorerCfg := scorer.DefaultConfig()
			scorerCfg.MinRepeatLen = minRepeatLen
			selCfg := selector.DefaultConfig()

			registry := scorer.NewRegistry()
			report, err := evalharness.Evaluate(transcript, registry, evalharness.Options{
				SplitRatio:   splitRatio,
				Method:       method,
				Budget:       budget,
				ScorerConfig: scorerCfg,
				SelectConfig: selCfg,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&method, "method", "eitf", "scoring method to evaluate")
	flags.IntVar(&budget, "budget", 80000, "token budget applied to the prefix compaction")
	flags.Float64Var(&splitRatio, "split-ratio", evalharness.DefaultSplitRatio, "prefix/suffix split ratio")
	flags.IntVar(&minRepeatLen, "min-repeat-len", 64, "dedup scorer: minimum repeat length counted as 'seen'")

	return cmd
}
