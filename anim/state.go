package anim

// State is the persisted-state shape of the whole engine: everything needed
// to round-trip a document, including view-only fields. Playback state
// (playing/paused) is deliberately not part of it.
type State struct {
	Clips      []Clip
	Tracks     []Track
	Markers    []Marker
	ActiveClip ClipID
	Playhead   float64
	FPS        float64
	Zoom       float64
	Pan        float64
	Snap       SnapConfig
}

// Snapshot returns a deep-copied snapshot of the engine.
func (e *Engine) Snapshot() State {
	return State{
		Clips:      e.Clips(),
		Tracks:     e.Tracks(),
		Markers:    e.Markers(),
		ActiveClip: e.activeClip,
		Playhead:   e.playhead,
		FPS:        e.fps,
		Zoom:       e.zoom,
		Pan:        e.pan,
		Snap:       e.snap,
	}
}

// LoadState replaces the engine's content with the snapshot. Selection, solo
// and playback reset; ranges are re-clamped; the id counter resumes past the
// highest id seen so fresh ids never collide with loaded ones.
func (e *Engine) LoadState(s State) {
	e.clips = map[ClipID]*Clip{}
	e.clipOrder = nil
	e.tracks = map[TrackID]*Track{}
	e.solo = map[TrackID]struct{}{}
	e.drivers = map[TrackID]*trackDriver{}
	e.ClearSelection()
	e.state = Stopped
	e.nextID = 0

	for i := range s.Clips {
		c := s.Clips[i].clone()
		if c.Start < 0 {
			c.Start = 0
		}
		if c.End < c.Start {
			c.End = c.Start
		}
		if c.Speed < minSpeed {
			c.Speed = minSpeed
		}
		e.clips[c.ID] = &c
		e.clipOrder = append(e.clipOrder, c.ID)
		e.bumpID(int(c.ID))
	}
	for i := range s.Tracks {
		t := s.Tracks[i].clone()
		t.Channel.sortKeys()
		t.Channel.checkSorted()
		e.tracks[t.ID] = &t
		e.bumpID(int(t.ID))
		for _, k := range t.Channel.Keys {
			e.bumpID(int(k.ID))
		}
	}
	e.markers = nil
	for _, m := range s.Markers {
		e.markers = append(e.markers, m)
		e.bumpID(int(m.ID))
	}

	e.activeClip = 0
	if _, ok := e.clips[s.ActiveClip]; ok {
		e.activeClip = s.ActiveClip
	} else if len(e.clipOrder) > 0 {
		e.activeClip = e.clipOrder[0]
	}

	if s.FPS > 0 {
		e.SetFPS(s.FPS)
	} else {
		e.fps = defaultFPS
	}
	if s.Zoom > 0 {
		e.zoom = s.Zoom
	} else {
		e.zoom = defaultZoom
	}
	e.pan = s.Pan
	e.snap = s.Snap
	e.playhead = e.clampToClip(s.Playhead)
}

func (e *Engine) bumpID(id int) {
	if id > e.nextID {
		e.nextID = id
	}
}
