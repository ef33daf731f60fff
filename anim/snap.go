package anim

import "math"

// quantizeToFrame rounds t to the nearest frame boundary at the engine fps.
func (e *Engine) quantizeToFrame(t float64) float64 {
	return math.Round(t*e.fps) / e.fps
}

// SnapTime resolves a raw continuous time through the snapping rules:
// frame quantization first, then key magnetism against the candidate times.
// The pixel threshold converts to seconds through the current zoom, so the
// magnet radius tracks how zoomed-in the timeline is. Closest candidate
// wins; ties keep the first found.
func (e *Engine) SnapTime(t float64, candidates []float64) float64 {
	if !e.snap.Enabled {
		return t
	}
	if e.snap.ToFrames {
		t = e.quantizeToFrame(t)
	}
	if e.snap.ToKeys && len(candidates) > 0 {
		threshold := e.snap.ThresholdPx / e.zoom
		best := -1
		bestDist := math.Inf(1)
		for i, c := range candidates {
			d := math.Abs(c - t)
			if d <= threshold && d < bestDist {
				best, bestDist = i, d
			}
		}
		if best >= 0 {
			t = candidates[best]
		}
	}
	return t
}

// keyTimes collects every key time on the listed tracks, excluding the keys
// named in skip (so a dragged key doesn't magnet onto itself).
func (e *Engine) keyTimes(trackIDs []TrackID, skip map[KeyID]struct{}) []float64 {
	var out []float64
	for _, id := range trackIDs {
		t := e.tracks[id]
		if t == nil {
			continue
		}
		for _, k := range t.Channel.Keys {
			if skip != nil {
				if _, ok := skip[k.ID]; ok {
					continue
				}
			}
			out = append(out, k.T)
		}
	}
	return out
}

// Seek moves the playhead to t, funneled through the snapping resolver
// against every key of the active clip, then clamped into the clip window.
func (e *Engine) Seek(t float64) {
	if c := e.active(); c != nil {
		t = e.SnapTime(t, e.keyTimes(c.TrackIDs, nil))
	}
	e.playhead = e.clampToClip(t)
	e.notifyPlayhead(true)
}
