package tokenizer

import "github.com/heiervang-technologies/supercompact/internal/record"

// Annotate fills in Turn.Tokens for every turn in t using counter. If
// counter reports an error (only BPECounter can), it falls back to the
// heuristic estimator for each turn it could not count and returns the
// first error once,
// so the caller can attach a single TokenizerError warning to the pass
// result rather than one per turn.
func Annotate(t *record.Transcript, counter Counter) error {
	bpe, isBPE := counter.(*BPECounter)
	if !isBPE {
		for _, turn := range t.Turns {
			turn.Tokens = counter.Count(turn.Text)
		}
		return nil
	}

	var firstErr error
	fallback := NewHeuristicCounter()
	for _, turn := range t.Turns {
		n, err := bpe.CountErr(turn.Text)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			n = fallback.Count(turn.Text)
		}
		turn.Tokens = n
	}
	return firstErr
}
