package anim

import (
	"fmt"
	"testing"
)

type recordingSink struct {
	writes []string
	engine *Engine // when set, every write echoes back as an external change
}

func (r *recordingSink) echo(targetID, path string, v float64) {
	if r.engine != nil {
		r.engine.RecordExternalChange(targetID, path, v)
	}
}

func (r *recordingSink) SetTransformComponent(targetID, axisPath string, value float64) {
	r.writes = append(r.writes, fmt.Sprintf("%s:%s=%g", targetID, axisPath, value))
	r.echo(targetID, axisPath, value)
}

func (r *recordingSink) SetModifierSetting(targetID, modifierID, settingPath string, value float64) {
	r.writes = append(r.writes, fmt.Sprintf("%s:mod.%s.%s=%g", targetID, modifierID, settingPath, value))
	r.echo(targetID, "mod."+modifierID+"."+settingPath, value)
}

func (r *recordingSink) SetSimulationParameter(targetID, param string, value float64) {
	r.writes = append(r.writes, fmt.Sprintf("%s:fluid.%s=%g", targetID, param, value))
	r.echo(targetID, "fluid."+param, value)
}

func TestSampleAtMuteAndSoloSemantics(t *testing.T) {
	e := NewEngine()
	e.NewClip("c", 0, 4)
	a := e.EnsureTrack("obj", "position.x")
	b := e.EnsureTrack("obj", "position.y")
	e.InsertKey(a, 0, 1, InterpLinear)
	e.InsertKey(b, 0, 2, InterpLinear)
	e.SetTrackMuted(a, true)

	props := func(samples []Sample) map[string]bool {
		out := map[string]bool{}
		for _, s := range samples {
			out[s.Property.String()] = true
		}
		return out
	}

	t.Run("mute_without_solo", func(t *testing.T) {
		got := props(e.SampleAt(0))
		if got["position.x"] {
			t.Fatalf("muted track A must not sample")
		}
		if !got["position.y"] {
			t.Fatalf("track B must sample")
		}
	})

	t.Run("solo_overrides_mute", func(t *testing.T) {
		e.SetSoloTracks(a)
		got := props(e.SampleAt(0))
		if !got["position.x"] {
			t.Fatalf("soloed track A must sample despite mute")
		}
		if got["position.y"] {
			t.Fatalf("non-solo track B must not sample")
		}
	})
}

func TestSampleAtSkipsEmptyChannels(t *testing.T) {
	e := NewEngine()
	e.NewClip("c", 0, 4)
	e.EnsureTrack("obj", "position.x")
	if got := e.SampleAt(0); len(got) != 0 {
		t.Fatalf("empty channel should produce no samples, got %v", got)
	}
}

func TestApplySampleAtOrdersWritesPerTarget(t *testing.T) {
	e := NewEngine()
	sink := &recordingSink{}
	e.SetSceneSink(sink)
	e.NewClip("c", 0, 4)

	// Created deliberately out of apply order.
	paths := []string{"fluid.emissionRate", "scale.x", "mod.wave.height", "rotation.z", "position.x"}
	for _, p := range paths {
		id := e.EnsureTrack("obj", p)
		e.InsertKey(id, 0, 1, InterpLinear)
	}

	e.ApplySampleAt(0)

	want := []string{
		"obj:position.x=1",
		"obj:rotation.z=1",
		"obj:scale.x=1",
		"obj:mod.wave.height=1",
		"obj:fluid.emissionRate=1",
	}
	if len(sink.writes) != len(want) {
		t.Fatalf("expected %d writes, got %d: %v", len(want), len(sink.writes), sink.writes)
	}
	for i := range want {
		if sink.writes[i] != want[i] {
			t.Fatalf("write %d: expected %q, got %q", i, want[i], sink.writes[i])
		}
	}
}

func TestApplySampleAtBatchesByTarget(t *testing.T) {
	e := NewEngine()
	sink := &recordingSink{}
	e.SetSceneSink(sink)
	e.NewClip("c", 0, 4)

	ax := e.EnsureTrack("a", "position.x")
	bx := e.EnsureTrack("b", "position.x")
	ay := e.EnsureTrack("a", "position.y")
	e.InsertKey(ax, 0, 1, InterpLinear)
	e.InsertKey(bx, 0, 2, InterpLinear)
	e.InsertKey(ay, 0, 3, InterpLinear)

	e.ApplySampleAt(0)

	// Target "a" appears first, and both of its writes stay adjacent.
	want := []string{"a:position.x=1", "a:position.y=3", "b:position.x=2"}
	for i := range want {
		if sink.writes[i] != want[i] {
			t.Fatalf("write %d: expected %q, got %q (all: %v)", i, want[i], sink.writes[i], sink.writes)
		}
	}
}

func TestReentrancyGuardSuppressesAutoRecord(t *testing.T) {
	e := NewEngine()
	sink := &recordingSink{engine: e}
	e.SetSceneSink(sink)
	e.SetAutoKey(true)
	e.NewClip("c", 0, 4)

	id := e.EnsureTrack("obj", "position.x")
	e.InsertKey(id, 0, 1, InterpLinear)
	before := len(mustTrack(t, e, id).Channel.Keys)

	// The sink echoes every write back into RecordExternalChange, exactly
	// like an auto-record observer on the object store would.
	e.ApplySampleAt(0)

	if e.Applying() {
		t.Fatalf("guard must be released after apply")
	}
	if got := len(mustTrack(t, e, id).Channel.Keys); got != before {
		t.Fatalf("programmatic writes must not record keys: %d -> %d", before, got)
	}

	// A genuine user edit outside of apply does record.
	e.Seek(2)
	e.RecordExternalChange("obj", "position.x", 9)
	if got := len(mustTrack(t, e, id).Channel.Keys); got != before+1 {
		t.Fatalf("expected auto-key to insert one key, got %d keys", got)
	}
}

func TestRecordExternalChangeRespectsAutoKeyFlag(t *testing.T) {
	e := NewEngine()
	e.NewClip("c", 0, 4)
	e.RecordExternalChange("obj", "position.x", 1)
	if len(e.Tracks()) != 0 {
		t.Fatalf("auto-key off: no track should be created")
	}

	e.SetAutoKey(true)
	e.RecordExternalChange("obj", "position.x", 1)
	if len(e.Tracks()) != 1 {
		t.Fatalf("auto-key on: expected a lazily created track")
	}
}

func TestExpressionDriverSampling(t *testing.T) {
	e := NewEngine()
	e.NewClip("c", 0, 4)
	id := e.EnsureTrack("obj", "rotation.z")
	e.SetTrackExpression(id, "t * 2 + 1")

	samples := e.SampleAt(1.5)
	if len(samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(samples))
	}
	if !approx(samples[0].Value, 4) {
		t.Fatalf("expected 4 from expression, got %v", samples[0].Value)
	}

	// A broken expression degrades to no sample, not a failure.
	e.SetTrackExpression(id, "this is not tengo ((")
	if got := e.SampleAt(1); len(got) != 0 {
		t.Fatalf("broken expression should produce no samples, got %v", got)
	}
}
