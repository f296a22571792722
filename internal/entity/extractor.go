package entity

import (
	"strings"

	"github.com/heiervang-technologies/supercompact/internal/record"
)

// trailingPunct is trimmed off every match before it's accepted as an
// entity surface, so trailing sentence punctuation doesn't widen a match.
const trailingPunct = ".,;:)]}'\"`>"

// minSurfaceLen is the shortest surface accepted as an entity.
const minSurfaceLen = 2

// Extract returns the per-turn-unique set of entities found in text.
func Extract(text string) map[Entity]struct{} {
	out := make(map[Entity]struct{})
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			m := text[loc[0]:loc[1]]
			if p.typ == TypeCommand && loc[0] > 0 && (text[loc[0]-1] == '.' || text[loc[0]-1] == '/') {
				// A verb such as "go" that ends a file name or path
				// ("error.go") is not a command.
				continue
			}
			surface := m
			if p.typ != TypeFunction {
				// A function match always ends in "()", which is part of the
				// surface rather than trailing punctuation.
				surface = clean(m)
			}
			if len(surface) < minSurfaceLen {
				continue
			}
			if p.typ == TypeClassName && exceptionSuffixRe.MatchString(surface) {
				// Already owned by the exception type; don't double-count.
				continue
			}
			if !caseSensitive(p.typ) {
				surface = strings.ToLower(surface)
			}
			out[Entity{Type: p.typ, Surface: surface}] = struct{}{}
		}
	}
	return out
}

// clean trims whitespace and trailing punctuation noise from a raw match.
func clean(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, trailingPunct)
}

// Index maps each entity to the set of scorable-turn indices that contain
// it. Built once after extraction (§4.3) and reused by every scorer.
type Index struct {
	turnsByEntity map[Entity]map[int]struct{}
	byTurn        map[int]map[Entity]struct{}
}

// BuildIndex extracts entities from every turn in turns (indexed by each
// turn's own Index field, not its position in the slice) and returns the
// resulting global index.
func BuildIndex(turns []*record.Turn) *Index {
	idx := &Index{
		turnsByEntity: make(map[Entity]map[int]struct{}),
		byTurn:        make(map[int]map[Entity]struct{}),
	}
	for _, turn := range turns {
		ents := Extract(turn.Text)
		idx.byTurn[turn.Index] = ents
		for e := range ents {
			set, ok := idx.turnsByEntity[e]
			if !ok {
				set = make(map[int]struct{})
				idx.turnsByEntity[e] = set
			}
			set[turn.Index] = struct{}{}
		}
	}
	return idx
}

// DocFreq returns df(e): the number of turns containing e.
func (idx *Index) DocFreq(e Entity) int {
	return len(idx.turnsByEntity[e])
}

// TurnEntities returns the entity set extracted from the turn at turnIndex.
func (idx *Index) TurnEntities(turnIndex int) map[Entity]struct{} {
	return idx.byTurn[turnIndex]
}

// AllEntities returns every distinct entity observed across all turns.
func (idx *Index) AllEntities() []Entity {
	out := make([]Entity, 0, len(idx.turnsByEntity))
	for e := range idx.turnsByEntity {
		out = append(out, e)
	}
	return out
}
