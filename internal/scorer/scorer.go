// Package scorer implements the EITF, SetCover, Dedup, and dry-run scorers
// behind a single Scorer interface and a name → constructor Registry.
//
// The registry shape — a string key mapping to a factory function, guarded
// by a mutex — favors a flat set of pluggable strategies selected by name
// over an interface+inheritance hierarchy.
package scorer

import (
	"sync"

	"github.com/heiervang-technologies/supercompact/internal/entity"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

// Config holds the magic constants spec.md §9's Open Question asks to be
// exposed rather than hard-coded, with their documented values locked in as
// defaults.
type Config struct {
	// K1 and B are the EITF length-normalization constants (spec.md
	// §4.4.1).
	K1 float64
	B  float64
	// SetCoverBonus is the additive exclusivity bonus weight for entities
	// with df(e) <= SetCoverRareDF (spec.md §4.4.2).
	SetCoverBonus  float64
	SetCoverRareDF int
	// MinRepeatLen suppresses Dedup matches shorter than this from
	// contributing to "seen" state (spec.md §4.4.3).
	MinRepeatLen int
	// MaxDedupChars gates the suffix automaton: above this many total
	// characters, Dedup returns an all-zero vector instead of paying the
	// O(n) cost (spec.md §5); no warning is recorded for this case.
	MaxDedupChars int
	// Seed seeds the dry-run scorer (spec.md §4.4.4).
	Seed int64
}

// DefaultConfig returns the constants' documented defaults.
func DefaultConfig() Config {
	return Config{
		K1:             1.5,
		B:              0.75,
		SetCoverBonus:  0.20,
		SetCoverRareDF: 2,
		MinRepeatLen:   64,
		MaxDedupChars:  5_000_000,
		Seed:           0,
	}
}

// Scorer assigns a score in [0,1] to each turn in turns, in the same order.
// turns must already be the scorable subset (role system, tokens >
// short_threshold); idx is the global entity index built over that same
// subset.
type Scorer interface {
	Score(turns []*record.Turn, idx *entity.Index, cfg Config) []float64
}

// Factory constructs a Scorer. Scorers are stateless, so most factories
// simply return a shared zero-value instance, but the signature leaves room
// for configuration-driven construction.
type Factory func() Scorer

// Registry maps method names (as used by --method) to Scorer factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a Registry pre-populated with the four built-in
// methods: eitf, setcover, dedup, dry-run.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("eitf", func() Scorer { return EITF{} })
	r.Register("setcover", func() Scorer { return SetCover{} })
	r.Register("dedup", func() Scorer { return Dedup{} })
	r.Register("dry-run", func() Scorer { return DryRun{} })
	return r
}

// Register adds (or replaces) a named scorer factory.
func (r *Registry) Register(method string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[method] = f
}

// Get returns the factory registered for method, if any.
func (r *Registry) Get(method string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[method]
	return f, ok
}
