package anim

import "testing"

func TestEnsureTrackUniquePerTargetProperty(t *testing.T) {
	e := NewEngine()
	e.NewClip("main", 0, 5)

	a := e.EnsureTrack("cube", "position.x")
	b := e.EnsureTrack("cube", "position.x")
	c := e.EnsureTrack("cube", "position.y")
	d := e.EnsureTrack("sphere", "position.x")

	if a == 0 || a != b {
		t.Fatalf("same (target, property) must reuse the track: %d vs %d", a, b)
	}
	if c == a || d == a || c == d {
		t.Fatalf("distinct pairs must get distinct tracks: %d %d %d", a, c, d)
	}

	clip, _ := e.Clip(e.ActiveClipID())
	if len(clip.TrackIDs) != 3 {
		t.Fatalf("expected 3 tracks on the active clip, got %d", len(clip.TrackIDs))
	}
}

func TestEnsureTrackCreatesDefaultClip(t *testing.T) {
	e := NewEngine()
	id := e.EnsureTrack("cube", "scale.z")
	if id == 0 {
		t.Fatalf("expected track creation to succeed")
	}
	clip, ok := e.Clip(e.ActiveClipID())
	if !ok {
		t.Fatalf("expected a default clip to exist")
	}
	if len(clip.TrackIDs) != 1 || clip.TrackIDs[0] != id {
		t.Fatalf("default clip should reference the new track")
	}
}

func TestEnsureTrackRejectsMalformedPaths(t *testing.T) {
	e := NewEngine()
	cases := []string{
		"position",
		"velocity.x",
		"mod.only",
		"fluid.unknownParam",
		"",
	}
	for _, path := range cases {
		if id := e.EnsureTrack("cube", path); id != 0 {
			t.Fatalf("path %q: expected zero track id, got %d", path, id)
		}
	}
}

func TestRemoveTracksForTargetCascades(t *testing.T) {
	e := NewEngine()
	e.NewClip("a", 0, 5)
	x1 := e.EnsureTrack("doomed", "position.x")
	x2 := e.EnsureTrack("doomed", "mod.subsurf.levels")
	keep := e.EnsureTrack("keeper", "position.x")

	other := e.NewClip("b", 0, 5)
	e.SetActiveClip(other)
	x3 := e.EnsureTrack("doomed", "fluid.gravityY")

	k := e.InsertKey(x1, 1, 2, InterpLinear)
	e.SelectTrack(x2, true)
	e.SelectKey(x1, k, true)
	e.SetSoloTracks(x1, x3, keep)

	e.RemoveTracksForTarget("doomed")

	for _, id := range []TrackID{x1, x2, x3} {
		if _, ok := e.Track(id); ok {
			t.Fatalf("track %d should be gone", id)
		}
	}
	if _, ok := e.Track(keep); !ok {
		t.Fatalf("unrelated track must survive")
	}
	for _, c := range e.Clips() {
		for _, id := range c.TrackIDs {
			if id == x1 || id == x2 || id == x3 {
				t.Fatalf("clip %q still references removed track %d", c.Name, id)
			}
		}
	}
	for _, id := range e.SelectedTracks() {
		if id != keep {
			t.Fatalf("selection still references removed track %d", id)
		}
	}
	if keys := e.SelectedKeys(x1); keys != nil {
		t.Fatalf("key selection still references removed track")
	}
	solo := e.SoloTracks()
	if len(solo) != 1 || solo[0] != keep {
		t.Fatalf("solo set should only keep %d, got %v", keep, solo)
	}
}

func TestSetFPSClamps(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		in, want float64
	}{
		{60, 60},
		{0, 1},
		{-10, 1},
		{1000, 240},
	}
	for _, c := range cases {
		e.SetFPS(c.in)
		if e.FPS() != c.want {
			t.Fatalf("SetFPS(%v): expected %v, got %v", c.in, c.want, e.FPS())
		}
	}
}

func TestClipRangeAndSpeedClamp(t *testing.T) {
	e := NewEngine()
	id := e.NewClip("c", 2, 1)
	clip, _ := e.Clip(id)
	if clip.Start != 2 || clip.End != 2 {
		t.Fatalf("end < start should clamp end to start, got [%v,%v]", clip.Start, clip.End)
	}

	e.SetClipRange(id, -1, 4)
	clip, _ = e.Clip(id)
	if clip.Start != 0 || clip.End != 4 {
		t.Fatalf("negative start should clamp to 0, got [%v,%v]", clip.Start, clip.End)
	}

	e.SetClipSpeed(id, -2)
	clip, _ = e.Clip(id)
	if clip.Speed <= 0 {
		t.Fatalf("speed must stay positive, got %v", clip.Speed)
	}
}

func TestMarkers(t *testing.T) {
	e := NewEngine()
	a := e.AddMarker(1.5, "hit")
	b := e.AddMarker(-2, "start")

	ms := e.Markers()
	if len(ms) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(ms))
	}
	if ms[1].Time != 0 {
		t.Fatalf("negative marker time should clamp to 0, got %v", ms[1].Time)
	}

	e.MoveMarker(a, 3)
	e.RenameMarker(b, "intro")
	e.RemoveMarker(MarkerID(999))

	ms = e.Markers()
	if ms[0].Time != 3 || ms[1].Label != "intro" {
		t.Fatalf("marker edits not applied: %+v", ms)
	}

	e.RemoveMarker(a)
	if len(e.Markers()) != 1 {
		t.Fatalf("expected 1 marker after removal")
	}
}

func TestSnapshotLoadStateRoundTrip(t *testing.T) {
	e := NewEngine()
	e.NewClip("main", 0, 8)
	id := e.EnsureTrack("cube", "position.x")
	e.InsertKey(id, 1, 2, InterpBezier)
	e.InsertKey(id, 3, -4, InterpLinear)
	e.SetTrackExpression(e.EnsureTrack("cube", "rotation.z"), "t * 2")
	e.AddMarker(2, "mid")
	e.SetFPS(60)
	e.SetView(2.5, -40)
	e.Seek(3)

	snap := e.Snapshot()

	restored := NewEngine()
	restored.LoadState(snap)

	if restored.FPS() != 60 {
		t.Fatalf("fps lost: %v", restored.FPS())
	}
	zoom, pan := restored.View()
	if zoom != 2.5 || pan != -40 {
		t.Fatalf("view lost: %v %v", zoom, pan)
	}
	if restored.Playhead() != 3 {
		t.Fatalf("playhead lost: %v", restored.Playhead())
	}
	tr, ok := restored.Track(id)
	if !ok || len(tr.Channel.Keys) != 2 {
		t.Fatalf("track keys lost")
	}
	if tr.Channel.Keys[0].Interp != InterpBezier {
		t.Fatalf("interp lost")
	}

	// Fresh ids after load must not collide with restored ones.
	newKey := restored.InsertKey(id, 5, 1, InterpLinear)
	for _, k := range tr.Channel.Keys {
		if k.ID == newKey {
			t.Fatalf("id collision after load: %d", newKey)
		}
	}
}
