package scorer

import (
	"math"

	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// averageTokens returns the mean token count across turns, or 1 if turns is
// empty (guards against a division by zero that can never actually select
// anything downstream).
func averageTokens(turns []*record.Turn) float64 {
	if len(turns) == 0 {
		return 1
	}
	var sum int
	for _, t := range turns {
		sum += t.Tokens
	}
	return float64(sum) / float64(len(turns))
}

// lengthNorm is the BM25-style length-normalization denominator L(t) from
// spec.md §4.4.1.
func lengthNorm(tokens int, avgTokens float64, cfg Config) float64 {
	return cfg.K1*(1-cfg.B+cfg.B*float64(tokens)/avgTokens) + 1
}

// eitfRaw computes the unnormalized EITF score for every turn:
//
//	raw(t) = sum over e in E(t) of weight(type(e)) * ln(1 + N/df(e))  /  L(t)
func eitfRaw(turns []*record.Turn, idx *entity.Index, cfg Config) []float64 {
	n := len(turns)
	avg := averageTokens(turns)
	raws := make([]float64, len(turns))
	for i, t := range turns {
		raws[i] = entityTermFrequency(t, idx, n) / lengthNorm(t.Tokens, avg, cfg)
	}
	return raws
}

// entityTermFrequency sums weight(type(e)) * ln(1 + N/df(e)) over every
// entity present in turn t's text.
func entityTermFrequency(t *record.Turn, idx *entity.Index, n int) float64 {
	var sum float64
	for e := range idx.TurnEntities(t.Index) {
		df := idx.DocFreq(e)
		if df == 0 {
			continue
		}
		sum += entity.Weight[e.Type] * math.Log1p(float64(n)/float64(df))
	}
	return sum
}

// minMaxNormalize rescales values into [0,1]. A constant input (max == min,
// including the all-zero case) maps every value to 0, matching "a turn with
// no qualifying entities receives score 0" rather than an arbitrary 1.
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out
	}
	span := max - min
	for i, v := range values {
		out[i] = (v - min) / span
	}
	return out
}
