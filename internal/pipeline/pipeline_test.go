package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
	"github.com/heiervang-technologies/supercompact/internal/scorer"
	"github.com/heiervang-technologies/supercompact/internal/selector"
	"github.com/heiervang-technologies/supercompact/internal/testutil"
)

func defaultConfig(method string, budget int) Config {
	return Config{
		Method:         method,
		Budget:         budget,
		ShortThreshold: 300,
		MinRepeatLen:   64,
		Format:         "rollout",
		ScorerConfig:   scorer.DefaultConfig(),
		SelectorConfig: selector.DefaultConfig(),
	}
}

func TestRun_RolloutRoundTripsRecords(t *testing.T) {
	log := testutil.NewGoldenTranscript().
		WithSessionMeta("1", "sess-1").
		WithUserMessage("please look at internal/parser/parser.go").
		WithAssistantMessage("looking now, saw ENOENT in the logs").
		String()

	var out bytes.Buffer
	registry := scorer.NewRegistry()
	result, err := Run(strings.NewReader(log), &out, nil, registry, defaultConfig("eitf", 100000))
	require.NoError(t, err)
	assert.NotEmpty(t, result.KeptTurns)
	assert.Contains(t, out.String(), "session_meta")
	assert.Contains(t, out.String(), "compacted")
}

func TestRun_SummaryFormat(t *testing.T) {
	log := testutil.NewGoldenTranscript().
		WithSessionMeta("1", "sess-1").
		WithUserMessage("hello there").
		String()

	cfg := defaultConfig("eitf", 100000)
	cfg.Format = "summary"

	var out bytes.Buffer
	registry := scorer.NewRegistry()
	_, err := Run(strings.NewReader(log), &out, nil, registry, cfg)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "[turn 0")
	assert.Contains(t, out.String(), "hello there")
}

func TestRun_UnknownMethodIsInvalidArgument(t *testing.T) {
	log := testutil.NewGoldenTranscript().WithUserMessage("hi").String()
	var out bytes.Buffer
	registry := scorer.NewRegistry()
	_, err := Run(strings.NewReader(log), &out, nil, registry, defaultConfig("nonexistent", 1000))
	require.Error(t, err)
	var invalidArg *cerrors.InvalidArgument
	require.ErrorAs(t, err, &invalidArg)
}

func TestRun_OverBudgetStillWritesOutputAndReturnsError(t *testing.T) {
	builder := testutil.NewGoldenTranscript().WithSessionMeta("1", "sess-1")
	for i := 0; i < 20; i++ {
		builder = builder.WithUserMessage(strings.Repeat("a long user turn that costs real tokens ", 20))
	}
	log := builder.String()

	var out bytes.Buffer
	registry := scorer.NewRegistry()
	_, err := Run(strings.NewReader(log), &out, nil, registry, defaultConfig("eitf", 10))
	require.Error(t, err)
	var budgetErr *cerrors.BudgetTooSmallError
	require.ErrorAs(t, err, &budgetErr)
	assert.NotEmpty(t, out.String())
}

func TestRun_WritesScoresCSVWhenRequested(t *testing.T) {
	log := testutil.NewGoldenTranscript().
		WithSessionMeta("1", "sess-1").
		WithUserMessage("hi").
		WithAssistantMessage(strings.Repeat("discussing internal/parser/parser.go in depth ", 30)).
		String()

	var out, scores bytes.Buffer
	registry := scorer.NewRegistry()
	_, err := Run(strings.NewReader(log), &out, &scores, registry, defaultConfig("eitf", 100000))
	require.NoError(t, err)
	assert.Contains(t, scores.String(), "turn_index,role,tokens,score,kept")
}
