package anim

import (
	"math"
	"testing"
)

func TestTickLoopWrapsWithModArithmetic(t *testing.T) {
	e := NewEngine()
	id := e.NewClip("loop", 0, 2)
	e.SetClipLoop(id, true)
	e.Seek(1.9)
	e.Play()

	e.Tick(0.3)

	if !approx(e.Playhead(), 0.2) {
		t.Fatalf("expected wrap to 0.2, got %v", e.Playhead())
	}
	if e.PlaybackState() != Playing {
		t.Fatalf("looping playback must stay in Playing")
	}
}

func TestTickClampsAndPausesAtEndWithoutLoop(t *testing.T) {
	e := NewEngine()
	e.NewClip("once", 0, 2)
	e.Seek(1.9)
	e.Play()

	e.Tick(0.3)

	if e.Playhead() != 2.0 {
		t.Fatalf("expected clamp to 2.0, got %v", e.Playhead())
	}
	if e.PlaybackState() != Paused {
		t.Fatalf("expected transition out of Playing, got %v", e.PlaybackState())
	}
}

func TestTickRespectsClipSpeed(t *testing.T) {
	e := NewEngine()
	id := e.NewClip("fast", 0, 10)
	e.SetClipSpeed(id, 2)
	e.Play()

	e.Tick(0.5)

	if !approx(e.Playhead(), 1.0) {
		t.Fatalf("expected playhead 1.0 at 2x speed, got %v", e.Playhead())
	}
}

func TestTickQuantizesToFrameGrid(t *testing.T) {
	e := NewEngine()
	e.NewClip("q", 0, 10)
	e.Play()

	e.Tick(0.517)

	fps := e.FPS()
	frames := e.Playhead() * fps
	if math.Abs(frames-math.Round(frames)) > testEps {
		t.Fatalf("playhead %v is not on the frame grid at %v fps", e.Playhead(), fps)
	}
}

func TestFrameQuantizationIdempotent(t *testing.T) {
	e := NewEngine()
	e.SetFPS(24)
	e.SetSnap(SnapConfig{Enabled: true, ToFrames: true})

	for frame := 0; frame < 200; frame++ {
		t0 := float64(frame) / 24
		if got := e.SnapTime(t0, nil); math.Abs(got-t0) > testEps {
			t.Fatalf("frame %d: snapping an exact frame time changed it: %v -> %v", frame, t0, got)
		}
	}
}

func TestTransportTransitions(t *testing.T) {
	e := NewEngine()
	e.NewClip("c", 1, 5)
	e.Seek(3)

	e.Play()
	if e.PlaybackState() != Playing {
		t.Fatalf("play should enter Playing")
	}

	e.Pause()
	if e.PlaybackState() != Paused || e.Playhead() != 3 {
		t.Fatalf("pause should freeze the playhead, got %v at %v", e.PlaybackState(), e.Playhead())
	}

	e.Stop()
	if e.PlaybackState() != Stopped || e.Playhead() != 1 {
		t.Fatalf("stop should rewind to clip start, got %v at %v", e.PlaybackState(), e.Playhead())
	}

	// Ticking while not playing is inert.
	e.Tick(1)
	if e.Playhead() != 1 {
		t.Fatalf("tick while stopped moved the playhead to %v", e.Playhead())
	}
}

func TestPlayheadNotificationThrottled(t *testing.T) {
	e := NewEngine()
	id := e.NewClip("n", 0, 100)
	e.SetClipLoop(id, true)

	var calls int
	e.SetPlayheadListener(func(float64) { calls++ })

	e.Play()
	calls = 0

	// 60 ticks of one simulated second: the ~10 Hz throttle allows roughly
	// ten callbacks, not sixty.
	for i := 0; i < 60; i++ {
		e.Tick(1.0 / 60.0)
	}
	if calls < 8 || calls > 12 {
		t.Fatalf("expected ~10 notifications for one second of playback, got %d", calls)
	}

	// Transport actions notify immediately.
	calls = 0
	e.Pause()
	e.Seek(2)
	e.Stop()
	if calls != 3 {
		t.Fatalf("expected immediate notifications for transport actions, got %d", calls)
	}
}
