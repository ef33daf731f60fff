package anim

import "math"

// playheadNotifyInterval throttles listener callbacks while playing (~10 Hz)
// so the UI isn't flooded at render rate.
const playheadNotifyInterval = 0.1

// PlaybackState returns the playback driver state.
func (e *Engine) PlaybackState() PlayState { return e.state }

// Play starts playback from the current playhead.
func (e *Engine) Play() {
	if e.active() == nil {
		return
	}
	e.state = Playing
	e.notifyAccum = 0
	e.notifyPlayhead(true)
}

// Pause freezes the playhead in place.
func (e *Engine) Pause() {
	if e.state == Playing {
		e.state = Paused
		e.notifyPlayhead(true)
	}
}

// Stop rewinds the playhead to the clip start.
func (e *Engine) Stop() {
	e.state = Stopped
	if c := e.active(); c != nil {
		e.playhead = c.Start
	}
	e.notifyPlayhead(true)
}

// Tick advances playback by the elapsed real time and applies the sampled
// values. Looping clips wrap with mod arithmetic; non-looping clips clamp to
// the end and drop to Paused. The advanced time is quantized to the frame
// grid so sampling is deterministic regardless of render frame pacing.
func (e *Engine) Tick(delta float64) {
	if e.state != Playing {
		return
	}
	c := e.active()
	if c == nil {
		return
	}

	t := e.playhead + delta*c.Speed
	if t > c.End {
		span := c.End - c.Start
		if c.Loop && span > 0 {
			t = c.Start + math.Mod(t-c.Start, span)
		} else {
			t = c.End
			e.state = Paused
		}
	}
	if t < c.Start {
		t = c.Start
	}
	e.playhead = e.clampToClip(e.quantizeToFrame(t))

	e.ApplySampleAt(e.playhead)

	e.notifyAccum += delta
	if e.state != Playing || e.notifyAccum >= playheadNotifyInterval {
		e.notifyAccum = 0
		e.notifyPlayhead(false)
	}
}

// notifyPlayhead invokes the listener. Immediate notifications (transport
// actions, seeks) bypass the playback throttle.
func (e *Engine) notifyPlayhead(immediate bool) {
	if e.playheadFn == nil {
		return
	}
	if immediate {
		e.notifyAccum = 0
	}
	e.playheadFn(e.playhead)
}
