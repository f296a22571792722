package tokenizer

import (
	"sync"

	tiktoken "github.com/tiktoken-go/tokenizer"
)

// BPECounter counts tokens with a real cl100k_base BPE codec
// (github.com/tiktoken-go/tokenizer), the "BPE-style subword tokenizer
// calibrated against the consumer" spec.md §4.2 expects for production use.
// Codec construction happens once and is reused: the codec is immutable
// after Get, so sharing it across turns needs no locking of its own, but
// construction itself is guarded against concurrent first-use.
type BPECounter struct {
	once  sync.Once
	codec tiktoken.Codec
	err   error
}

// NewBPECounter returns a counter that lazily initializes its codec on
// first use, so constructing one (e.g. at CLI startup) never fails by
// itself — only Count can report a codec error, via CountErr.
func NewBPECounter() *BPECounter {
	return &BPECounter{}
}

func (b *BPECounter) init() {
	b.codec, b.err = tiktoken.Get(tiktoken.Cl100kBase)
}

// Count returns the BPE token count for text, or the byte-length fallback
// (spec.md §7: "1 token ≈ 4 bytes") if the codec failed to initialize.
// Callers that need to know whether the fallback fired should use CountErr.
func (b *BPECounter) Count(text string) int {
	n, err := b.CountErr(text)
	if err != nil {
		return HeuristicCounter{}.Count(text)
	}
	return n
}

// CountErr returns the BPE token count for text, or an error if the codec
// could not be initialized or failed to encode — the caller (the pipeline's
// Tokenizer stage) is responsible for turning that into a TokenizerError and
// falling back to the heuristic estimator, per spec.md §7's propagation
// policy.
func (b *BPECounter) CountErr(text string) (int, error) {
	b.once.Do(b.init)
	if b.err != nil {
		return 0, b.err
	}
	if text == "" {
		return 0, nil
	}
	ids, _, err := b.codec.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
