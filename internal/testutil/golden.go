package testutil

import (
	"encoding/json"
	"strings"
)

// GoldenTranscript builds a small newline-delimited rollout log for tests,
// one JSON object per call to a With* method, in call order.
type GoldenTranscript struct {
	lines []string
}

// NewGoldenTranscript returns an empty builder.
func NewGoldenTranscript() *GoldenTranscript {
	return &GoldenTranscript{}
}

// WithSessionMeta appends a session_meta record.
func (g *GoldenTranscript) WithSessionMeta(version, sessionID string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "session_meta", "version": version, "session_id": sessionID})
}

// WithTurnContext appends a turn_context record.
func (g *GoldenTranscript) WithTurnContext(model, tool string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "turn_context", "model": model, "tool": tool})
}

// WithUserMessage appends a user response_item record.
func (g *GoldenTranscript) WithUserMessage(text string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "response_item", "item_kind": "user_message", "text": text})
}

// WithAssistantMessage appends an assistant response_item record.
func (g *GoldenTranscript) WithAssistantMessage(text string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "response_item", "item_kind": "assistant_message", "text": text})
}

// WithToolCall appends a tool_call response_item record.
func (g *GoldenTranscript) WithToolCall(text string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "response_item", "item_kind": "tool_call", "text": text})
}

// WithToolOutput appends a tool_output response_item record.
func (g *GoldenTranscript) WithToolOutput(text string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": "response_item", "item_kind": "tool_output", "text": text})
}

// WithCompacted appends a prior Compacted marker record.
func (g *GoldenTranscript) WithCompacted(passID, method string, budget, kept, dropped int) *GoldenTranscript {
	return g.withLine(map[string]any{
		"type": "compacted", "pass_id": passID, "method": method,
		"budget": budget, "kept": kept, "dropped": dropped, "elapsed_ms": 0,
	})
}

// WithUnknown appends an opaque record with an unrecognized discriminator.
func (g *GoldenTranscript) WithUnknown(discriminator string) *GoldenTranscript {
	return g.withLine(map[string]any{"type": discriminator, "note": "opaque"})
}

// WithEmptyLine appends a blank line, which the parser must skip.
func (g *GoldenTranscript) WithEmptyLine() *GoldenTranscript {
	g.lines = append(g.lines, "")
	return g
}

func (g *GoldenTranscript) withLine(v map[string]any) *GoldenTranscript {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	g.lines = append(g.lines, string(b))
	return g
}

// String renders the accumulated lines as a newline-delimited log.
func (g *GoldenTranscript) String() string {
	return strings.Join(g.lines, "\n") + "\n"
}
