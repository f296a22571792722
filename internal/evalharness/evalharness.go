// Package evalharness implements entity-coverage evaluation: split a
// transcript, compact the prefix, and measure how much of the entity
// surface the suffix will need was actually kept.
package evalharness

import (
	"errors"
	"fmt"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
	"github.com/heiervang-technologies/supercompact/internal/scorer"
	"github.com/heiervang-technologies/supercompact/internal/selector"
)

// DefaultSplitRatio is the default prefix/suffix boundary (70% prefix).
const DefaultSplitRatio = 0.70

// Report is the harness's output.
type Report struct {
	Coverage        float64                  `json:"coverage"`
	PerType         map[entity.Type]float64  `json:"per_type"`
	Unrecoverable   int                      `json:"unrecoverable"`
	FutureEntities  int                      `json:"future_entities"`
	CoveredEntities int                      `json:"covered_entities"`
}

// Options configures a single evaluation run.
type Options struct {
	SplitRatio   float64
	Method       string
	Budget       int
	ScorerConfig scorer.Config
	SelectConfig selector.Config
}

// Evaluate splits transcript at SplitRatio by turn index, compacts the
// prefix with the named method, and compares the entities kept in the
// prefix against the entities the suffix's scorable turns reference.
func Evaluate(transcript *record.Transcript, registry *scorer.Registry, opts Options) (Report, error) {
	ratio := opts.SplitRatio
	if ratio <= 0 {
		ratio = DefaultSplitRatio
	}

	prefix, suffix := Split(transcript, ratio)

	factory, ok := registry.Get(opts.Method)
	if !ok {
		return Report{}, fmt.Errorf("evalharness: unknown method %q", opts.Method)
	}

	prefixScorable := prefix.ScorableTurns(opts.SelectConfig.ShortThreshold)
	idx := entity.BuildIndex(prefixScorable)
	scores := factory().Score(prefixScorable, idx, opts.ScorerConfig)

	scoreMap := make(selector.Scores, len(prefixScorable))
	for i, turn := range prefixScorable {
		scoreMap[turn.Index] = scores[i]
	}

	result, err := selector.Select(prefix, scoreMap, opts.Budget, opts.SelectConfig)
	if err != nil && !isBudgetTooSmall(err) {
		return Report{}, err
	}

	keptEntities := make(map[entity.Entity]struct{})
	for _, turn := range result.KeptTurns {
		for e := range entity.Extract(turn.Text) {
			keptEntities[e] = struct{}{}
		}
	}

	originalPrefixEntities := make(map[entity.Entity]struct{})
	for _, turn := range prefix.Turns {
		for e := range entity.Extract(turn.Text) {
			originalPrefixEntities[e] = struct{}{}
		}
	}

	futureEntities := make(map[entity.Entity]struct{})
	suffixScorable := suffix.ScorableTurns(opts.SelectConfig.ShortThreshold)
	for _, turn := range suffixScorable {
		for e := range entity.Extract(turn.Text) {
			futureEntities[e] = struct{}{}
		}
	}

	var covered, total float64
	var coveredCount int
	perTypeCovered := make(map[entity.Type]float64)
	perTypeTotal := make(map[entity.Type]float64)
	for e := range futureEntities {
		w := entity.Weight[e.Type]
		total += w
		perTypeTotal[e.Type] += w
		if _, ok := keptEntities[e]; ok {
			covered += w
			coveredCount++
			perTypeCovered[e.Type] += w
		}
	}

	perType := make(map[entity.Type]float64, len(perTypeTotal))
	for typ, t := range perTypeTotal {
		if t == 0 {
			continue
		}
		perType[typ] = perTypeCovered[typ] / t
	}

	var coverage float64
	if total > 0 {
		coverage = covered / total
	}

	var unrecoverable int
	for e := range originalPrefixEntities {
		if _, ok := keptEntities[e]; !ok {
			unrecoverable++
		}
	}

	return Report{
		Coverage:        coverage,
		PerType:         perType,
		Unrecoverable:   unrecoverable,
		FutureEntities:  len(futureEntities),
		CoveredEntities: coveredCount,
	}, nil
}

// Split partitions transcript's turns at index floor(ratio * len(turns))
// into a prefix and a suffix sub-transcript. Both share the parent's
// underlying Records slice, since turn text (used for everything the
// harness computes) doesn't require re-resolving record spans.
func Split(transcript *record.Transcript, ratio float64) (prefix, suffix *record.Transcript) {
	cut := int(ratio * float64(len(transcript.Turns)))
	if cut < 0 {
		cut = 0
	}
	if cut > len(transcript.Turns) {
		cut = len(transcript.Turns)
	}
	prefix = &record.Transcript{
		Records:          transcript.Records,
		Turns:            transcript.Turns[:cut],
		SessionMetaIndex: transcript.SessionMetaIndex,
	}
	suffix = &record.Transcript{
		Records:          transcript.Records,
		Turns:            transcript.Turns[cut:],
		SessionMetaIndex: -1,
	}
	return prefix, suffix
}

// isBudgetTooSmall reports whether err is a BudgetTooSmallError: the
// harness still has a (degraded, pinned-only) kept set to score in that
// case, so it isn't treated as a hard failure here.
func isBudgetTooSmall(err error) bool {
	var budgetErr *cerrors.BudgetTooSmallError
	return errors.As(err, &budgetErr)
}
