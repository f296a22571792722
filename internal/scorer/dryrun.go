package scorer

import (
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// DryRun is a deterministic, seeded pseudo-random scorer (spec.md §4.4.4)
// used to exercise the selector and emitter without the entity machinery:
// same transcript and same seed always produce the same scores.
type DryRun struct{}

func (DryRun) Score(turns []*record.Turn, _ *entity.Index, cfg Config) []float64 {
	out := make([]float64, len(turns))
	for i, t := range turns {
		out[i] = splitmix64Float(uint64(cfg.Seed) + uint64(t.Index)*0x9E3779B97F4A7C15)
	}
	return out
}

// splitmix64Float runs one SplitMix64 round over x and maps the result into
// [0,1). SplitMix64 is a fixed, dependency-free, well-known generator —
// appropriate here since dry-run scores exist only to be deterministic, not
// to be statistically strong.
func splitmix64Float(x uint64) float64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return float64(z>>11) / float64(1<<53)
}
