// Package pipeline wires Parser, Tokenizer, EntityExtractor, Scorer,
// Selector, and Emitter into the single linear pass the CLI drives.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
	"github.com/heiervang-technologies/supercompact/internal/emitter"
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/parser"
	"github.com/heiervang-technologies/supercompact/internal/record"
	"github.com/heiervang-technologies/supercompact/internal/scorer"
	"github.com/heiervang-technologies/supercompact/internal/selector"
	"github.com/heiervang-technologies/supercompact/internal/tokenizer"
)

// Config ties together every stage's tunables for one compaction run.
type Config struct {
	Method         string
	Budget         int
	ShortThreshold int
	MinRepeatLen   int
	Format         string // "rollout" or "summary"
	Verbose        bool

	ScorerConfig   scorer.Config
	SelectorConfig selector.Config
}

// Warning is a non-fatal condition surfaced to the caller for logging,
// distinct from the fatal errors that abort a pass outright.
type Warning struct {
	Kind    string
	Message string
}

// Result is everything the CLI needs after a pass completes (or degrades).
type Result struct {
	Transcript      *record.Transcript
	KeptTurns       []*record.Turn
	Scores          map[int]float64
	OverBudget      bool
	DroppedScorable int
	Warnings        []Warning
	PassID          string
	Elapsed         time.Duration
}

// Run executes the full pipeline against r and writes the selected output
// (rollout or summary dialect, per cfg.Format) to w. It returns the pass's
// Result alongside any fatal error; BudgetTooSmallError is not fatal here —
// output is still produced from the degraded (pinned-only) selection, and
// the error is both returned and recorded as a warning so the CLI can map
// it to exit code 5 without losing the write.
func Run(r io.Reader, w io.Writer, scoresWriter io.Writer, registry *scorer.Registry, cfg Config) (Result, error) {
	start := time.Now()
	result := Result{PassID: emitter.NewPassID()}

	transcript, err := parser.Parse(r)
	if err != nil {
		return result, err
	}
	result.Transcript = transcript

	bpe := tokenizer.NewBPECounter()
	if tokErr := tokenizer.Annotate(transcript, bpe); tokErr != nil {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    "tokenizer_fallback",
			Message: cerrors.NewTokenizerError("falling back to heuristic counter", tokErr).Error(),
		})
	}

	scorable := transcript.ScorableTurns(cfg.ShortThreshold)
	idx := entity.BuildIndex(scorable)

	factory, ok := registry.Get(cfg.Method)
	if !ok {
		return result, cerrors.NewInvalidArgument("method", fmt.Sprintf("unknown scorer %q", cfg.Method))
	}
	scoreSlice := factory().Score(scorable, idx, cfg.ScorerConfig)

	scores := make(selector.Scores, len(scorable))
	for i, turn := range scorable {
		scores[turn.Index] = scoreSlice[i]
	}
	result.Scores = scores

	selResult, selErr := selector.Select(transcript, scores, cfg.Budget, cfg.SelectorConfig)
	result.KeptTurns = selResult.KeptTurns
	result.OverBudget = selResult.OverBudget
	result.DroppedScorable = selResult.DroppedScorable

	var budgetErr *cerrors.BudgetTooSmallError
	if selErr != nil {
		if !asBudgetTooSmall(selErr, &budgetErr) {
			return result, selErr
		}
		result.Warnings = append(result.Warnings, Warning{Kind: "over_budget", Message: budgetErr.Error()})
	}

	result.Elapsed = time.Since(start)

	if err := writeOutput(w, transcript, result, cfg); err != nil {
		return result, cerrors.NewIoError("output", "failed to write compacted output", err)
	}

	if scoresWriter != nil {
		if err := emitter.WriteScoresCSV(scoresWriter, transcript.Turns, scores, keptSet(result.KeptTurns)); err != nil {
			return result, cerrors.NewIoError("scores-file", "failed to write scores CSV", err)
		}
	}

	if selErr != nil {
		return result, selErr
	}
	return result, nil
}

func writeOutput(w io.Writer, transcript *record.Transcript, result Result, cfg Config) error {
	if cfg.Format == "summary" {
		return emitter.EmitSummary(w, result.KeptTurns, result.Scores)
	}
	meta := emitter.CompactionMeta{
		Method:  cfg.Method,
		Budget:  cfg.Budget,
		Kept:    len(result.KeptTurns),
		Dropped: result.DroppedScorable,
		Elapsed: result.Elapsed,
	}
	return emitter.EmitRollout(w, transcript, result.KeptTurns, result.PassID, meta)
}

func keptSet(turns []*record.Turn) map[int]bool {
	out := make(map[int]bool, len(turns))
	for _, t := range turns {
		out[t.Index] = true
	}
	return out
}

func asBudgetTooSmall(err error, target **cerrors.BudgetTooSmallError) bool {
	if e, ok := err.(*cerrors.BudgetTooSmallError); ok {
		*target = e
		return true
	}
	return false
}
