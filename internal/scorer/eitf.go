package scorer

import (
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// EITF is the entity-weighted inverse-turn-frequency scorer (spec.md
// §4.4.1): a BM25-shaped score over entity occurrences rather than words,
// min-max normalized across the scorable turn set.
type EITF struct{}

func (EITF) Score(turns []*record.Turn, idx *entity.Index, cfg Config) []float64 {
	return minMaxNormalize(eitfRaw(turns, idx, cfg))
}
