package scorer

import (
	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// dedupSentinel separates adjacent turns in the concatenated text fed to
// the suffix automaton, so a match can only run from the tail of one turn
// into the head of the next when that same tail, boundary and head already
// occurred together at an earlier turn boundary.
const dedupSentinel = rune(0)

// Dedup scores turns by how much of their text is content no earlier turn
// already said, using a suffix automaton built once over the concatenation
// of every scorable turn (spec.md §4.4.3). Turns that mostly restate
// material already present earlier in the transcript score low; turns that
// introduce genuinely new substrings score high.
type Dedup struct{}

func (Dedup) Score(turns []*record.Turn, _ *entity.Index, cfg Config) []float64 {
	runes, spans := concatTurns(turns)
	if len(runes) > cfg.MaxDedupChars {
		// Gated off per spec.md §5: too expensive to run, return a zero
		// vector rather than silently skip the scorer entirely.
		return make([]float64, len(turns))
	}

	lpf := longestPreviousFactors(runes)

	raw := make([]float64, len(turns))
	for i, sp := range spans {
		if sp.end == sp.start {
			continue
		}
		var newChars int
		for p := sp.start; p < sp.end; p++ {
			if lpf[p] < cfg.MinRepeatLen {
				newChars++
			}
		}
		raw[i] = float64(newChars) / float64(sp.end-sp.start)
	}
	return minMaxNormalize(raw)
}

type span struct{ start, end int }

// concatTurns lays every turn's text end to end, separated by
// dedupSentinel, and records each turn's rune-index span within the result.
func concatTurns(turns []*record.Turn) ([]rune, []span) {
	spans := make([]span, len(turns))
	var total int
	for _, t := range turns {
		total += len([]rune(t.Text)) + 1
	}
	runes := make([]rune, 0, total)
	for i, t := range turns {
		if i > 0 {
			runes = append(runes, dedupSentinel)
		}
		start := len(runes)
		runes = append(runes, []rune(t.Text)...)
		spans[i] = span{start: start, end: len(runes)}
	}
	return runes, spans
}

// longestPreviousFactors returns, for every position i in runes, the length
// of the longest substring ending at i that already occurred starting at
// some earlier position — the classic "longest previous factor" query,
// computed online with a single-pass Blumer suffix automaton. Because the
// automaton is built incrementally in left-to-right order, "earlier
// position" naturally means "earlier turn" for the concatenation this is
// called on.
func longestPreviousFactors(runes []rune) []int {
	sa := newSuffixAutomaton()
	lpf := make([]int, len(runes))
	v, l := sa.root, 0
	for i, c := range runes {
		for v != sa.root {
			if _, ok := sa.states[v].next[c]; ok {
				break
			}
			v = sa.states[v].link
			l = sa.states[v].length
		}
		if next, ok := sa.states[v].next[c]; ok {
			v = next
			l++
		} else {
			l = 0
		}
		lpf[i] = l
		sa.extend(c)
	}
	return lpf
}

// suffixAutomaton is a standard online (Blumer) suffix automaton: each
// state represents an equivalence class of substrings sharing an endpos
// set, reachable from the root by extending one character at a time.
type suffixAutomaton struct {
	states []samState
	last   int
	root   int
}

type samState struct {
	length int
	link   int
	next   map[rune]int
}

func newSuffixAutomaton() *suffixAutomaton {
	return &suffixAutomaton{
		states: []samState{{length: 0, link: -1, next: make(map[rune]int)}},
		last:   0,
		root:   0,
	}
}

func (sa *suffixAutomaton) extend(c rune) {
	cur := len(sa.states)
	sa.states = append(sa.states, samState{length: sa.states[sa.last].length + 1, link: -1, next: make(map[rune]int)})

	p := sa.last
	for p != -1 {
		if _, ok := sa.states[p].next[c]; ok {
			break
		}
		sa.states[p].next[c] = cur
		p = sa.states[p].link
	}

	switch {
	case p == -1:
		sa.states[cur].link = sa.root
	default:
		q := sa.states[p].next[c]
		if sa.states[p].length+1 == sa.states[q].length {
			sa.states[cur].link = q
		} else {
			clone := len(sa.states)
			cl := sa.states[q]
			cl.length = sa.states[p].length + 1
			cl.next = copyTransitions(sa.states[q].next)
			sa.states = append(sa.states, cl)
			for p != -1 {
				if next, ok := sa.states[p].next[c]; ok && next == q {
					sa.states[p].next[c] = clone
					p = sa.states[p].link
				} else {
					break
				}
			}
			sa.states[q].link = clone
			sa.states[cur].link = clone
		}
	}
	sa.last = cur
}

func copyTransitions(m map[rune]int) map[rune]int {
	out := make(map[rune]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
