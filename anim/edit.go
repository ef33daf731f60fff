package anim

import (
	"math"

	"github.com/milk9111/keyframe/common"
	"github.com/milk9111/keyframe/curve"
)

const timeEpsilon = 1e-9

// EasingPreset names the canned easings applied by ApplyEasingPreset.
type EasingPreset int

const (
	PresetEaseIn EasingPreset = iota
	PresetEaseOut
	PresetEaseInOut
	PresetBackIn
	PresetBackOut
	PresetBackInOut
	PresetBounce
	PresetElastic
)

// KeyRef addresses one key on one track, e.g. for preset application.
type KeyRef struct {
	Track TrackID
	Key   KeyID
}

func (e *Engine) editableTrack(id TrackID) *Track {
	t := e.tracks[id]
	if t == nil || t.Locked {
		return nil
	}
	return t
}

// InsertKey upserts a key at t (quantized to the engine frame rate) with the
// given value and interpolation. If a key already sits on that frame its
// value and interpolation are overwritten in place. Returns the key id, or
// zero for a stale/locked track.
func (e *Engine) InsertKey(trackID TrackID, t, v float64, interp Interp) KeyID {
	tr := e.editableTrack(trackID)
	if tr == nil {
		return 0
	}
	t = e.quantizeToFrame(t)
	if t < 0 {
		t = 0
	}
	for i := range tr.Channel.Keys {
		k := &tr.Channel.Keys[i]
		if math.Abs(k.T-t) <= timeEpsilon {
			k.V = v
			k.Interp = interp
			k.SegEase = nil
			return k.ID
		}
	}
	k := Key{ID: KeyID(e.allocID()), T: t, V: v, Interp: interp}
	tr.Channel.Keys = append(tr.Channel.Keys, k)
	tr.Channel.sortKeys()
	tr.Channel.checkSorted()
	return k.ID
}

// RemoveKey deletes a key; stale references are no-ops.
func (e *Engine) RemoveKey(trackID TrackID, keyID KeyID) {
	tr := e.editableTrack(trackID)
	if tr == nil {
		return
	}
	i := tr.Channel.keyIndex(keyID)
	if i < 0 {
		return
	}
	tr.Channel.Keys = append(tr.Channel.Keys[:i], tr.Channel.Keys[i+1:]...)
	if sel, ok := e.selection.keys[trackID]; ok {
		delete(sel, keyID)
	}
}

// MoveKey re-times a key (clamped to t >= 0) and re-sorts the channel.
func (e *Engine) MoveKey(trackID TrackID, keyID KeyID, t float64) {
	tr := e.editableTrack(trackID)
	if tr == nil {
		return
	}
	i := tr.Channel.keyIndex(keyID)
	if i < 0 {
		return
	}
	if t < 0 {
		t = 0
	}
	tr.Channel.Keys[i].T = t
	tr.Channel.sortKeys()
	tr.Channel.checkSorted()
}

// SetKeyValue overwrites a key's value.
func (e *Engine) SetKeyValue(trackID TrackID, keyID KeyID, v float64) {
	if k := e.keyAt(trackID, keyID); k != nil {
		k.V = v
	}
}

// SetInterpolation sets the key's interpolation mode. Interpolation and
// segment easing are mutually exclusive, so any segment ease is cleared.
func (e *Engine) SetInterpolation(trackID TrackID, keyID KeyID, interp Interp) {
	if k := e.keyAt(trackID, keyID); k != nil {
		k.Interp = interp
		k.SegEase = nil
	}
}

// SetKeyTangentIn sets the incoming Hermite tangent.
func (e *Engine) SetKeyTangentIn(trackID TrackID, keyID KeyID, tan float64) {
	if k := e.keyAt(trackID, keyID); k != nil {
		k.TanIn = &tan
	}
}

// SetKeyTangentOut sets the outgoing Hermite tangent.
func (e *Engine) SetKeyTangentOut(trackID TrackID, keyID KeyID, tan float64) {
	if k := e.keyAt(trackID, keyID); k != nil {
		k.TanOut = &tan
	}
}

// SetSegmentEase overrides the segment from the key to its successor with a
// procedural curve. The key's tangents no longer apply to that segment.
func (e *Engine) SetSegmentEase(trackID TrackID, keyID KeyID, ease SegEase) {
	if k := e.keyAt(trackID, keyID); k != nil {
		se := ease
		k.SegEase = &se
	}
}

// ClearSegmentEase removes the procedural override from a key's segment.
func (e *Engine) ClearSegmentEase(trackID TrackID, keyID KeyID) {
	if k := e.keyAt(trackID, keyID); k != nil {
		k.SegEase = nil
	}
}

func (e *Engine) keyAt(trackID TrackID, keyID KeyID) *Key {
	tr := e.editableTrack(trackID)
	if tr == nil {
		return nil
	}
	i := tr.Channel.keyIndex(keyID)
	if i < 0 {
		return nil
	}
	return &tr.Channel.Keys[i]
}

// ApplyEasingPreset shapes the segments around each referenced key. Classic
// presets write Bezier tangents on the key and its neighbor in the named
// direction; a missing neighbor makes that half a no-op. Bounce and elastic
// install a segment ease on the key instead and drop the segment's tangents
// so the two shaping mechanisms don't stack.
func (e *Engine) ApplyEasingPreset(refs []KeyRef, preset EasingPreset, strength float64) {
	for _, ref := range refs {
		tr := e.editableTrack(ref.Track)
		if tr == nil {
			continue
		}
		i := tr.Channel.keyIndex(ref.Key)
		if i < 0 {
			continue
		}
		e.applyPresetAt(tr, i, preset, strength)
	}
}

func (e *Engine) applyPresetAt(tr *Track, i int, preset EasingPreset, strength float64) {
	keys := tr.Channel.Keys
	k := &keys[i]

	switch preset {
	case PresetBounce, PresetElastic:
		kind := curve.Bounce
		if preset == PresetElastic {
			kind = curve.Elastic
		}
		k.SegEase = &SegEase{Kind: kind, Mode: curve.Out, Strength: strength}
		k.TanOut = nil
		if i+1 < len(keys) {
			keys[i+1].TanIn = nil
		}
		return
	}

	mult := 1 + 1.5*common.Clamp(strength, 0, 3)
	in := preset == PresetEaseIn || preset == PresetEaseInOut ||
		preset == PresetBackIn || preset == PresetBackInOut
	out := preset == PresetEaseOut || preset == PresetEaseInOut ||
		preset == PresetBackOut || preset == PresetBackInOut
	back := preset == PresetBackIn || preset == PresetBackOut || preset == PresetBackInOut

	k.Interp = InterpBezier
	k.SegEase = nil

	if in && i > 0 {
		prev := &keys[i-1]
		dt := k.T - prev.T
		if dt > timeEpsilon {
			slope := (k.V - prev.V) / dt
			arrive := slope * mult
			depart := slope / mult
			if back {
				depart = -slope * (mult - 1)
			}
			prev.TanOut = &depart
			k.TanIn = &arrive
		}
	}
	if out && i+1 < len(keys) {
		next := &keys[i+1]
		dt := next.T - k.T
		if dt > timeEpsilon {
			slope := (next.V - k.V) / dt
			depart := slope * mult
			arrive := slope / mult
			if back {
				arrive = -slope * (mult - 1)
			}
			k.TanOut = &depart
			next.TanIn = &arrive
		}
	}
}
