// Package selector implements the turn-selection stage (spec.md §4.5): a
// pin set that must always survive, a budget check that can degrade the
// whole pass, and a recency-adjusted greedy fill for everything else.
package selector

import (
	"sort"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// Config holds the Selector's tunables.
type Config struct {
	// ShortThreshold is the token count at or below which a system turn is
	// pinned outright, and above which it becomes scorable.
	ShortThreshold int
	// RecencyBonus is the additive weight applied to the normalized
	// position of a candidate turn when ranking it for the greedy fill.
	RecencyBonus float64
}

// DefaultConfig returns the documented defaults (short_threshold=300,
// recency bonus=0.15).
func DefaultConfig() Config {
	return Config{ShortThreshold: 300, RecencyBonus: 0.15}
}

// Result is the Selector's output.
type Result struct {
	// KeptTurns holds the turns to emit, in original transcript order.
	KeptTurns []*record.Turn
	// OverBudget is true when the pin set alone already exceeds budget;
	// in that case KeptTurns is exactly the pin set.
	OverBudget bool
	// DroppedScorable counts scorable, unpinned turns that did not make
	// the greedy fill.
	DroppedScorable int
}

// Scores maps a turn's Index to its scorer output. Turns not present (e.g.
// non-scorable turns) are never consulted.
type Scores map[int]float64

// Select runs the four-step algorithm from spec.md §4.5 against transcript,
// given each scorable turn's score and the token budget. It returns a
// BudgetTooSmallError (wrapped as *cerrors.BudgetTooSmallError) when the pin
// set alone exceeds budget; Result is still populated in that case, per the
// "still writes output" contract.
func Select(t *record.Transcript, scores Scores, budget int, cfg Config) (Result, error) {
	pinned := computePinSet(t, cfg.ShortThreshold)

	var pinnedTokens int
	for _, turn := range pinned {
		pinnedTokens += turn.Tokens
	}

	if pinnedTokens > budget {
		kept := make([]*record.Turn, len(pinned))
		copy(kept, pinned)
		sortByIndex(kept)
		return Result{KeptTurns: kept, OverBudget: true}, cerrors.NewBudgetTooSmallError(pinnedTokens, budget)
	}

	pinnedSet := make(map[int]bool, len(pinned))
	for _, turn := range pinned {
		pinnedSet[turn.Index] = true
	}

	n := len(t.Turns)
	candidates := make([]*record.Turn, 0)
	for _, turn := range t.Turns {
		if pinnedSet[turn.Index] {
			continue
		}
		if _, ok := scores[turn.Index]; !ok {
			continue
		}
		candidates = append(candidates, turn)
	}

	adjusted := make(map[int]float64, len(candidates))
	for _, turn := range candidates {
		adjusted[turn.Index] = scores[turn.Index] + cfg.RecencyBonus*recencyFraction(turn.Index, n)
	}

	sort.Slice(candidates, func(a, b int) bool {
		sa, sb := adjusted[candidates[a].Index], adjusted[candidates[b].Index]
		if sa != sb {
			return sa > sb
		}
		return candidates[a].Index > candidates[b].Index
	})

	kept := make([]*record.Turn, len(pinned))
	copy(kept, pinned)
	remaining := budget - pinnedTokens
	var dropped int
	// Strict descending greedy (spec.md §4.5 step 4): stop entirely at the
	// first candidate that doesn't fit rather than skipping it to look for
	// a smaller one further down the list. Everything from that point on
	// counts as dropped.
	for i, turn := range candidates {
		if turn.Tokens > remaining {
			dropped += len(candidates) - i
			break
		}
		kept = append(kept, turn)
		remaining -= turn.Tokens
	}

	sortByIndex(kept)
	return Result{KeptTurns: kept, DroppedScorable: dropped}, nil
}

// computePinSet returns every turn the Selector must keep regardless of
// score: user turns, short system turns, Compacted markers, and the most
// recent scorable system turn.
func computePinSet(t *record.Transcript, shortThreshold int) []*record.Turn {
	var pinned []*record.Turn
	var lastScorable *record.Turn
	for _, turn := range t.Turns {
		switch {
		case turn.IsCompactedMarker:
			pinned = append(pinned, turn)
		case turn.Role == record.RoleUser:
			pinned = append(pinned, turn)
		case turn.Role == record.RoleSystem && turn.Tokens <= shortThreshold:
			pinned = append(pinned, turn)
		case turn.Role == record.RoleSystem:
			lastScorable = turn
		}
	}
	if lastScorable != nil {
		pinned = append(pinned, lastScorable)
	}
	for _, turn := range pinned {
		turn.Pinned = true
	}
	return pinned
}

// recencyFraction is i/(N-1), or 0 when there's only one turn.
func recencyFraction(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func sortByIndex(turns []*record.Turn) {
	sort.Slice(turns, func(a, b int) bool { return turns[a].Index < turns[b].Index })
}
