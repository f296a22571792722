// Package emitter serializes a Selector result back out, in either of two
// dialects: rollout (a byte-for-byte round-trip of retained records plus one
// fresh Compacted marker) or summary (a plain-text, prompt-ready rendering).
package emitter

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heiervang-technologies/supercompact/internal/record"
)

// CompactionMeta documents the pass for the fresh Compacted marker record.
type CompactionMeta struct {
	Method  string
	Budget  int
	Kept    int
	Dropped int
	Elapsed time.Duration
}

// compactedFrame is the on-wire shape of a freshly written Compacted record;
// its field order and names mirror record.CompactedPayload.
type compactedFrame struct {
	Type    record.Kind `json:"type"`
	PassID  string      `json:"pass_id"`
	Method  string      `json:"method"`
	Budget  int         `json:"budget"`
	Kept    int         `json:"kept"`
	Dropped int         `json:"dropped"`
	Elapsed int64       `json:"elapsed_ms"`
}

// EmitRollout writes the rollout dialect: the first SessionMeta (if any),
// then every record belonging to a kept turn in original order, then one
// freshly serialized Compacted marker. Every retained record is written
// from its original byte span, so re-running this against the same
// selection produces byte-identical output (the only non-deterministic
// field, PassID, is supplied by the caller rather than generated here, so
// that idempotence is the caller's choice to make).
func EmitRollout(w io.Writer, t *record.Transcript, kept []*record.Turn, passID string, meta CompactionMeta) error {
	bw := bufio.NewWriter(w)

	included := make([]*record.Turn, len(kept))
	copy(included, kept)
	sort.Slice(included, func(a, b int) bool { return included[a].Index < included[b].Index })

	if t.SessionMetaIndex >= 0 {
		if err := writeRaw(bw, t.Records[t.SessionMetaIndex].Raw); err != nil {
			return err
		}
	}

	for _, turn := range included {
		for _, recIdx := range turn.Records {
			if recIdx == t.SessionMetaIndex {
				continue
			}
			if err := writeRaw(bw, t.Records[recIdx].Raw); err != nil {
				return err
			}
		}
	}

	frame := compactedFrame{
		Type:    record.KindCompacted,
		PassID:  passID,
		Method:  meta.Method,
		Budget:  meta.Budget,
		Kept:    meta.Kept,
		Dropped: meta.Dropped,
		Elapsed: meta.Elapsed.Milliseconds(),
	}
	encoded, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if err := writeRaw(bw, encoded); err != nil {
		return err
	}

	return bw.Flush()
}

func writeRaw(w *bufio.Writer, raw json.RawMessage) error {
	if _, err := w.Write(raw); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// NewPassID returns a fresh random pass identifier for a Compacted marker.
func NewPassID() string {
	return uuid.NewString()
}

// EmitSummary writes the summary dialect: kept turns in order, each
// preceded by a one-line header, separated by a blank line.
func EmitSummary(w io.Writer, kept []*record.Turn, scores map[int]float64) error {
	bw := bufio.NewWriter(w)

	sorted := make([]*record.Turn, len(kept))
	copy(sorted, kept)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Index < sorted[b].Index })

	for i, turn := range sorted {
		if i > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		score := scores[turn.Index]
		if _, err := fmt.Fprintf(bw, "[turn %d | score %.4f | tokens %d]\n", turn.Index, score, turn.Tokens); err != nil {
			return err
		}
		if _, err := bw.WriteString(turn.Text); err != nil {
			return err
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteScoresCSV writes a "turn_index,role,tokens,score,kept" table for the
// --scores-file flag, one row per turn in turns; the score column is empty
// for a turn with no entry in scores.
func WriteScoresCSV(w io.Writer, turns []*record.Turn, scores map[int]float64, kept map[int]bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"turn_index", "role", "tokens", "score", "kept"}); err != nil {
		return err
	}
	for _, turn := range turns {
		score, scored := scores[turn.Index]
		scoreStr := ""
		if scored {
			scoreStr = strconv.FormatFloat(score, 'f', 4, 64)
		}
		row := []string{
			strconv.Itoa(turn.Index),
			string(turn.Role),
			strconv.Itoa(turn.Tokens),
			scoreStr,
			strconv.FormatBool(kept[turn.Index]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
