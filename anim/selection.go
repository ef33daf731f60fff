package anim

type selectionState struct {
	tracks map[TrackID]struct{}
	keys   map[TrackID]map[KeyID]struct{}
}

// SelectTrack adds a track to the selection. Non-additive selection replaces
// the track set and clears the key dimension.
func (e *Engine) SelectTrack(id TrackID, additive bool) {
	if _, ok := e.tracks[id]; !ok {
		return
	}
	if !additive {
		e.selection.tracks = map[TrackID]struct{}{}
		e.selection.keys = map[TrackID]map[KeyID]struct{}{}
	}
	e.selection.tracks[id] = struct{}{}
}

// SelectKey adds a key to the selection. Non-additive selection replaces the
// key set and clears the track dimension.
func (e *Engine) SelectKey(trackID TrackID, keyID KeyID, additive bool) {
	tr := e.tracks[trackID]
	if tr == nil || tr.Channel.keyIndex(keyID) < 0 {
		return
	}
	if !additive {
		e.selection.tracks = map[TrackID]struct{}{}
		e.selection.keys = map[TrackID]map[KeyID]struct{}{}
	}
	if e.selection.keys[trackID] == nil {
		e.selection.keys[trackID] = map[KeyID]struct{}{}
	}
	e.selection.keys[trackID][keyID] = struct{}{}
}

// DeselectKey removes a single key from the selection.
func (e *Engine) DeselectKey(trackID TrackID, keyID KeyID) {
	if sel, ok := e.selection.keys[trackID]; ok {
		delete(sel, keyID)
		if len(sel) == 0 {
			delete(e.selection.keys, trackID)
		}
	}
}

// ClearSelection empties both selection dimensions.
func (e *Engine) ClearSelection() {
	e.selection.tracks = map[TrackID]struct{}{}
	e.selection.keys = map[TrackID]map[KeyID]struct{}{}
}

// SelectedTracks returns the selected track ids in id order.
func (e *Engine) SelectedTracks() []TrackID {
	out := make([]TrackID, 0, len(e.selection.tracks))
	for id := 1; id <= e.nextID; id++ {
		if _, ok := e.selection.tracks[TrackID(id)]; ok {
			out = append(out, TrackID(id))
		}
	}
	return out
}

// SelectedKeys returns the selected key ids of a track in id order.
func (e *Engine) SelectedKeys(trackID TrackID) []KeyID {
	sel := e.selection.keys[trackID]
	if len(sel) == 0 {
		return nil
	}
	out := make([]KeyID, 0, len(sel))
	for id := 1; id <= e.nextID; id++ {
		if _, ok := sel[KeyID(id)]; ok {
			out = append(out, KeyID(id))
		}
	}
	return out
}

// NudgeSelectedKeys shifts every selected key by dt seconds and dv in value.
// Times clamp to >= 0 and optionally quantize to the frame grid; each
// touched channel is re-sorted.
func (e *Engine) NudgeSelectedKeys(dt, dv float64, snap bool) {
	for trackID, sel := range e.selection.keys {
		tr := e.editableTrack(trackID)
		if tr == nil || len(sel) == 0 {
			continue
		}
		for i := range tr.Channel.Keys {
			k := &tr.Channel.Keys[i]
			if _, ok := sel[k.ID]; !ok {
				continue
			}
			e.nudgeKey(k, dt, dv, snap)
		}
		tr.Channel.sortKeys()
		tr.Channel.checkSorted()
	}
}

// NudgeKeysForTracks shifts every key of the listed tracks (group drag).
func (e *Engine) NudgeKeysForTracks(trackIDs []TrackID, dt, dv float64, snap bool) {
	for _, trackID := range trackIDs {
		tr := e.editableTrack(trackID)
		if tr == nil {
			continue
		}
		for i := range tr.Channel.Keys {
			e.nudgeKey(&tr.Channel.Keys[i], dt, dv, snap)
		}
		tr.Channel.sortKeys()
		tr.Channel.checkSorted()
	}
}

func (e *Engine) nudgeKey(k *Key, dt, dv float64, snap bool) {
	t := k.T + dt
	if snap {
		t = e.quantizeToFrame(t)
	}
	if t < 0 {
		t = 0
	}
	k.T = t
	k.V += dv
}
