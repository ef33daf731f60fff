package anim

import (
	"encoding/json"
	"math"

	"github.com/milk9111/keyframe/curve"
)

// ClipboardSink is the external byte sink copy/paste goes through. The
// editor wires the system clipboard here; tests use an in-memory buffer.
type ClipboardSink interface {
	WriteClipboard(data []byte) error
	ReadClipboard() ([]byte, error)
}

type clipboardKey struct {
	T        float64  `json:"t"`
	V        float64  `json:"v"`
	Interp   string   `json:"interp"`
	TanIn    *float64 `json:"tan_in,omitempty"`
	TanOut   *float64 `json:"tan_out,omitempty"`
	EaseKind string   `json:"ease_kind,omitempty"`
	EaseMode string   `json:"ease_mode,omitempty"`
	EaseStr  float64  `json:"ease_strength,omitempty"`
}

type clipboardEntry struct {
	TrackID int            `json:"track_id"`
	Keys    []clipboardKey `json:"keys"`
}

type clipboardPayload struct {
	Entries []clipboardEntry `json:"entries"`
}

// CopySelectedKeys serializes the selected keys to the clipboard sink.
// Without a sink or a key selection it is a no-op.
func (e *Engine) CopySelectedKeys() {
	if e.clip == nil {
		return
	}
	payload := clipboardPayload{}
	for _, trackID := range e.selectedKeyTracks() {
		tr := e.tracks[trackID]
		sel := e.selection.keys[trackID]
		entry := clipboardEntry{TrackID: int(trackID)}
		for _, k := range tr.Channel.Keys {
			if _, ok := sel[k.ID]; !ok {
				continue
			}
			entry.Keys = append(entry.Keys, encodeClipboardKey(k))
		}
		if len(entry.Keys) > 0 {
			payload.Entries = append(payload.Entries, entry)
		}
	}
	if len(payload.Entries) == 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_ = e.clip.WriteClipboard(data)
}

// CutSelectedKeys copies the selected keys, then removes them.
func (e *Engine) CutSelectedKeys() {
	e.CopySelectedKeys()
	for trackID, sel := range e.selection.keys {
		for keyID := range sel {
			e.RemoveKey(trackID, keyID)
		}
	}
}

// Paste deserializes the clipboard payload and re-bases the copied keys so
// the earliest one lands on the playhead, assigning fresh ids. Any read or
// decode failure, or a stale track id, silently drops that part.
func (e *Engine) Paste() {
	if e.clip == nil {
		return
	}
	data, err := e.clip.ReadClipboard()
	if err != nil || len(data) == 0 {
		return
	}
	var payload clipboardPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return
	}

	earliest := math.Inf(1)
	for _, entry := range payload.Entries {
		for _, k := range entry.Keys {
			if k.T < earliest {
				earliest = k.T
			}
		}
	}
	if math.IsInf(earliest, 1) {
		return
	}
	shift := e.playhead - earliest

	for _, entry := range payload.Entries {
		tr := e.editableTrack(TrackID(entry.TrackID))
		if tr == nil {
			continue
		}
		for _, ck := range entry.Keys {
			k := decodeClipboardKey(ck)
			k.ID = KeyID(e.allocID())
			k.T += shift
			if k.T < 0 {
				k.T = 0
			}
			e.upsertPastedKey(tr, k)
		}
		tr.Channel.sortKeys()
		tr.Channel.checkSorted()
	}
}

// upsertPastedKey replaces any key already on the exact landing time so a
// paste never produces coincident keys. The replaced key's id leaves the
// selection with it.
func (e *Engine) upsertPastedKey(tr *Track, k Key) {
	for i := range tr.Channel.Keys {
		if math.Abs(tr.Channel.Keys[i].T-k.T) <= timeEpsilon {
			e.DeselectKey(tr.ID, tr.Channel.Keys[i].ID)
			tr.Channel.Keys[i] = k
			return
		}
	}
	tr.Channel.Keys = append(tr.Channel.Keys, k)
}

func (e *Engine) selectedKeyTracks() []TrackID {
	out := make([]TrackID, 0, len(e.selection.keys))
	for id := 1; id <= e.nextID; id++ {
		if sel, ok := e.selection.keys[TrackID(id)]; ok && len(sel) > 0 {
			if _, alive := e.tracks[TrackID(id)]; alive {
				out = append(out, TrackID(id))
			}
		}
	}
	return out
}

func encodeClipboardKey(k Key) clipboardKey {
	ck := clipboardKey{
		T:      k.T,
		V:      k.V,
		Interp: interpName(k.Interp),
		TanIn:  k.TanIn,
		TanOut: k.TanOut,
	}
	if k.SegEase != nil {
		ck.EaseKind = easeKindName(k.SegEase.Kind)
		ck.EaseMode = easeModeName(k.SegEase.Mode)
		ck.EaseStr = k.SegEase.Strength
	}
	return ck
}

func decodeClipboardKey(ck clipboardKey) Key {
	k := Key{
		T:      ck.T,
		V:      ck.V,
		Interp: interpFromName(ck.Interp),
	}
	if ck.TanIn != nil {
		v := *ck.TanIn
		k.TanIn = &v
	}
	if ck.TanOut != nil {
		v := *ck.TanOut
		k.TanOut = &v
	}
	if ck.EaseKind != "" {
		k.SegEase = &SegEase{
			Kind:     easeKindFromName(ck.EaseKind),
			Mode:     easeModeFromName(ck.EaseMode),
			Strength: ck.EaseStr,
		}
	}
	return k
}

func interpName(i Interp) string {
	switch i {
	case InterpStep:
		return "step"
	case InterpBezier:
		return "bezier"
	default:
		return "linear"
	}
}

func interpFromName(s string) Interp {
	switch s {
	case "step":
		return InterpStep
	case "bezier":
		return InterpBezier
	default:
		return InterpLinear
	}
}

func easeKindName(k curve.Kind) string {
	if k == curve.Elastic {
		return "elastic"
	}
	return "bounce"
}

func easeKindFromName(s string) curve.Kind {
	if s == "elastic" {
		return curve.Elastic
	}
	return curve.Bounce
}

func easeModeName(m curve.Mode) string {
	switch m {
	case curve.In:
		return "in"
	case curve.InOut:
		return "in_out"
	default:
		return "out"
	}
}

func easeModeFromName(s string) curve.Mode {
	switch s {
	case "in":
		return curve.In
	case "in_out":
		return curve.InOut
	default:
		return curve.Out
	}
}
