package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/heiervang-technologies/supercompact/internal/config"
	"github.com/heiervang-technologies/supercompact/internal/logger"
	"github.com/heiervang-technologies/supercompact/internal/pipeline"
	"github.com/heiervang-technologies/supercompact/internal/scorer"
	"github.com/heiervang-technologies/supercompact/internal/selector"
)

func newCompactCmd() *cobra.Command {
	v := config.NewViper()

	var (
		output         string
		method         string
		budget         int
		format         string
		shortThreshold int
		minRepeatLen   int
		scoresFile     string
		verbose        bool
	)

	cmd := &cobra.Command{
		Use:   "compact <input>",
		Short: "Compact a rollout log to fit a token budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("method") {
				method = v.GetString("method")
			}
			if !flags.Changed("budget") {
				budget = v.GetInt("budget")
			}
			if !flags.Changed("format") {
				format = v.GetString("format")
			}

			logger.SetVerbose(verbose)

			cfg := config.Compact{
				Input:          args[0],
				Output:         output,
				Method:         method,
				Budget:         budget,
				Format:         format,
				ShortThreshold: shortThreshold,
				MinRepeatLen:   minRepeatLen,
				ScoresFile:     scoresFile,
				Verbose:        verbose,
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			in, err := os.Open(cfg.Input)
			if err != nil {
				return openErrToIoError(cfg.Input, err)
			}
			defer in.Close()

			var out io.Writer = cmd.OutOrStdout()
			if cfg.Output != "" {
				f, err := os.Create(cfg.Output)
				if err != nil {
					return openErrToIoError(cfg.Output, err)
				}
				defer f.Close()
				out = f
			}

			var scoresOut io.Writer
			if cfg.ScoresFile != "" {
				f, err := os.Create(cfg.ScoresFile)
				if err != nil {
					return openErrToIoError(cfg.ScoresFile, err)
				}
				defer f.Close()
				scoresOut = f
			}

			scorerCfg := scorer.DefaultConfig()
			scorerCfg.MinRepeatLen = cfg.MinRepeatLen

			selCfg := selector.DefaultConfig()
			selCfg.ShortThreshold = cfg.ShortThreshold

			pCfg := pipeline.Config{
				Method:         cfg.Method,
				Budget:         cfg.Budget,
				ShortThreshold: cfg.ShortThreshold,
				MinRepeatLen:   cfg.MinRepeatLen,
				Format:         cfg.Format,
				Verbose:        cfg.Verbose,
				ScorerConfig:   scorerCfg,
				SelectorConfig: selCfg,
			}

			registry := scorer.NewRegistry()
			result, runErr := pipeline.Run(in, out, scoresOut, registry, pCfg)
			for _, warn := range result.Warnings {
				logger.DefaultLogger.Warn(warn.Message, "kind", warn.Kind)
			}
			return runErr
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&output, "output", "o", "", "output path (default: stdout)")
	flags.StringVar(&method, "method", "eitf", "scoring method: eitf, setcover, dedup, dry-run (env SUPERCOMPACT_METHOD)")
	flags.IntVar(&budget, "budget", 80000, "token budget for the compacted output (env SUPERCOMPACT_BUDGET)")
	flags.StringVar(&format, "format", "rollout", "output dialect: rollout or summary")
	flags.IntVar(&shortThreshold, "short-threshold", 300, "token count at/below which a system turn is pinned")
	flags.IntVar(&minRepeatLen, "min-repeat-len", 64, "dedup scorer: minimum repeat length counted as 'seen'")
	flags.StringVar(&scoresFile, "scores-file", "", "optional path to write a per-turn scores CSV")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}
