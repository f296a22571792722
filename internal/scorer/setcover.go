package scorer

import (
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// SetCover layers an exclusivity bonus on top of the EITF baseline (spec.md
// §4.4.2): turns that are the sole or near-sole carrier of a rare entity
// (df(e) <= SetCoverRareDF) get rewarded, so the selector doesn't keep
// picking high-EITF turns that all cover the same popular entities while
// rare ones go unrecovered.
type SetCover struct{}

func (SetCover) Score(turns []*record.Turn, idx *entity.Index, cfg Config) []float64 {
	base := eitfRaw(turns, idx, cfg)
	boosted := make([]float64, len(turns))
	for i, t := range turns {
		var bonus float64
		for e := range idx.TurnEntities(t.Index) {
			if idx.DocFreq(e) <= cfg.SetCoverRareDF {
				bonus += cfg.SetCoverBonus * entity.Weight[e.Type]
			}
		}
		capped := base[i] + bonus
		// No turn's pre-normalization score may exceed 2x its own EITF
		// baseline; a turn with a zero baseline gets no bonus at all.
		if ceiling := 2 * base[i]; capped > ceiling {
			capped = ceiling
		}
		boosted[i] = capped
	}
	return minMaxNormalize(boosted)
}
