// Package parser reads a newline-delimited rollout log into a canonical
// record.Transcript: ordered records plus the turns grouped from them.
package parser

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/heiervang-technologies/supercompact/internal/cerrors"
	"github.com/heiervang-technologies/supercompact/internal/record"
)

type frame struct {
	Type     record.Kind             `json:"type"`
	ItemKind record.ResponseItemKind `json:"item_kind"`
}

// Parse reads a newline-delimited rollout log from r and returns the parsed
// Transcript. Malformed lines fail the whole pass with a *cerrors.ParseError
// carrying the line number and byte offset; there is no partial recovery.
func Parse(r io.Reader) (*record.Transcript, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	t := &record.Transcript{SessionMetaIndex: -1}

	var offset int64
	line := 0

	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		lineLen := int64(len(raw)) + 1 // account for the newline consumed by Scan

		if len(bytes.TrimSpace(raw)) == 0 {
			offset += lineLen
			continue
		}

		rec, err := parseLine(line, offset, raw)
		if err != nil {
			return nil, err
		}

		idx := len(t.Records)
		t.Records = append(t.Records, rec)

		if rec.Type == record.KindSessionMeta && t.SessionMetaIndex == -1 {
			t.SessionMetaIndex = idx
		}

		offset += lineLen
	}
	if err := scanner.Err(); err != nil {
		return nil, cerrors.NewParseError(line+1, offset, "read error", err)
	}

	group(t)
	return t, nil
}

func parseLine(line int, offset int64, raw []byte) (*record.Record, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, cerrors.NewParseError(line, offset, fmt.Sprintf("malformed framing: %v", err), err)
	}

	rec := &record.Record{
		Line: line,
		Raw:  append(json.RawMessage(nil), raw...),
		Type: f.Type,
	}

	switch f.Type {
	case record.KindSessionMeta:
		var p record.SessionMetaPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, cerrors.NewParseError(line, offset, "malformed session_meta", err)
		}
		rec.SessionMeta = &p
	case record.KindTurnContext:
		var p record.TurnContextPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, cerrors.NewParseError(line, offset, "malformed turn_context", err)
		}
		rec.TurnContext = &p
	case record.KindResponseItem:
		var p record.ResponseItemPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, cerrors.NewParseError(line, offset, "malformed response_item", err)
		}
		rec.ResponseItem = &p
		rec.ItemKind = p.ItemKind
	case record.KindCompacted:
		var p record.CompactedPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, cerrors.NewParseError(line, offset, "malformed compacted", err)
		}
		rec.Compacted = &p
	case record.KindEventMsg:
		// Ephemeral UI state; retained only long enough to be dropped by
		// the grouping pass and never emitted.
	default:
		rec.Type = record.KindOther
	}

	return rec, nil
}

// group walks records in order and assigns each one to a Turn, per spec.md
// §4.1's grouping rules: consecutive ResponseItems of the same role coalesce;
// TurnContext and unknown Other records attach forward to the turn that
// follows them (or, lacking one, to the turn still open when they arrived);
// a Compacted record terminates any open turn and becomes its own pinned,
// one-record turn; SessionMeta and EventMsg never join a turn.
func group(t *record.Transcript) {
	var open *record.Turn
	var pending []int

	closeOpen := func() {
		if open != nil {
			t.Turns = append(t.Turns, open)
			open = nil
		}
	}

	for i, rec := range t.Records {
		switch rec.Type {
		case record.KindSessionMeta, record.KindEventMsg:
			continue

		case record.KindTurnContext, record.KindOther:
			pending = append(pending, i)

		case record.KindCompacted:
			closeOpen()
			recs := append([]int{}, pending...)
			pending = nil
			recs = append(recs, i)
			t.Turns = append(t.Turns, &record.Turn{
				Role:              record.RoleSystem,
				Records:           recs,
				Pinned:            true,
				IsCompactedMarker: true,
			})

		case record.KindResponseItem:
			role := record.RoleSystem
			if rec.ItemKind == record.ResponseItemUser {
				role = record.RoleUser
			}

			if open != nil && open.Role == role {
				open.Records = append(open.Records, pending...)
				pending = nil
				open.Records = append(open.Records, i)
				continue
			}

			closeOpen()
			recs := append([]int{}, pending...)
			pending = nil
			recs = append(recs, i)
			open = &record.Turn{Role: role, Records: recs}
		}
	}
	closeOpen()

	// Trailing TurnContext/Other with nothing to attach forward to: fold
	// into the last turn if one exists, otherwise they are dropped (no
	// turn can represent them; spec.md's non-goals allow dropping
	// intermediate-only records).
	if len(pending) > 0 && len(t.Turns) > 0 {
		last := t.Turns[len(t.Turns)-1]
		last.Records = append(last.Records, pending...)
	}

	for idx, turn := range t.Turns {
		turn.Index = idx
		turn.Text = turnText(t, turn)
	}
}

// turnText concatenates the plain text of every ResponseItem belonging to
// turn, in record order, separated by newlines.
func turnText(t *record.Transcript, turn *record.Turn) string {
	var b bytes.Buffer
	for _, i := range turn.Records {
		rec := t.Records[i]
		if rec.ResponseItem == nil {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(rec.ResponseItem.Text)
	}
	return b.String()
}
