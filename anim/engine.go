package anim

import (
	"github.com/milk9111/keyframe/common"
)

// PlayState is the playback driver state.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

// SnapConfig controls the snapping resolver.
type SnapConfig struct {
	Enabled     bool
	ToFrames    bool
	ToKeys      bool
	ThresholdPx float64
}

const (
	defaultFPS      = 30
	minFPS          = 1
	maxFPS          = 240
	minSpeed        = 0.01
	defaultClipName = "Clip"
	defaultClipEnd  = 10

	// defaultZoom is the timeline scale in pixels per second; the snapping
	// resolver divides the pixel threshold by it.
	defaultZoom = 100
)

// Engine owns the whole animation document: clips, tracks, playback state,
// selection, markers and snapping configuration. It is single-threaded;
// callers drive it from one goroutine.
type Engine struct {
	clips     map[ClipID]*Clip
	clipOrder []ClipID
	tracks    map[TrackID]*Track

	activeClip ClipID
	playhead   float64
	fps        float64
	state      PlayState

	solo      map[TrackID]struct{}
	selection selectionState
	markers   []Marker
	snap      SnapConfig

	// View-only state co-located for persistence; not used by sampling.
	zoom float64
	pan  float64

	autoKey  bool
	applying bool

	sink       SceneSink
	clip       ClipboardSink
	playheadFn func(float64)

	notifyAccum float64
	drivers     map[TrackID]*trackDriver
	nextID      int
}

// NewEngine returns an empty engine with default fps, snapping and view
// state. Sinks are attached separately.
func NewEngine() *Engine {
	return &Engine{
		clips:   map[ClipID]*Clip{},
		tracks:  map[TrackID]*Track{},
		solo:    map[TrackID]struct{}{},
		drivers: map[TrackID]*trackDriver{},
		selection: selectionState{
			tracks: map[TrackID]struct{}{},
			keys:   map[TrackID]map[KeyID]struct{}{},
		},
		fps:  defaultFPS,
		zoom: defaultZoom,
		snap: SnapConfig{Enabled: true, ToFrames: true, ToKeys: true, ThresholdPx: 8},
	}
}

// SetSceneSink attaches the external scene sink that ApplySampleAt writes to.
func (e *Engine) SetSceneSink(s SceneSink) { e.sink = s }

// SetClipboard attaches the external clipboard byte sink.
func (e *Engine) SetClipboard(c ClipboardSink) { e.clip = c }

// SetPlayheadListener registers the throttled playhead notification callback.
func (e *Engine) SetPlayheadListener(fn func(float64)) { e.playheadFn = fn }

func (e *Engine) allocID() int {
	e.nextID++
	return e.nextID
}

// NewClip creates a clip and makes it active. The range is clamped so that
// end >= start >= 0.
func (e *Engine) NewClip(name string, start, end float64) ClipID {
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	c := &Clip{
		ID:    ClipID(e.allocID()),
		Name:  name,
		Start: start,
		End:   end,
		Speed: 1,
	}
	e.clips[c.ID] = c
	e.clipOrder = append(e.clipOrder, c.ID)
	e.activeClip = c.ID
	e.state = Stopped
	e.playhead = c.Start
	return c.ID
}

// SetActiveClip switches the active clip; unknown ids are ignored.
func (e *Engine) SetActiveClip(id ClipID) {
	if _, ok := e.clips[id]; !ok {
		return
	}
	e.activeClip = id
	e.playhead = e.clampToClip(e.playhead)
}

func (e *Engine) active() *Clip {
	return e.clips[e.activeClip]
}

// ActiveClipID returns the id of the active clip, or zero when none exists.
func (e *Engine) ActiveClipID() ClipID { return e.activeClip }

// Clip returns a deep copy of the clip, if it exists.
func (e *Engine) Clip(id ClipID) (Clip, bool) {
	c, ok := e.clips[id]
	if !ok {
		return Clip{}, false
	}
	return c.clone(), true
}

// Clips returns copies of all clips in creation order.
func (e *Engine) Clips() []Clip {
	out := make([]Clip, 0, len(e.clipOrder))
	for _, id := range e.clipOrder {
		out = append(out, e.clips[id].clone())
	}
	return out
}

// SetClipRange clamps and applies a new [start,end] window, re-clamping the
// playhead when the clip is active.
func (e *Engine) SetClipRange(id ClipID, start, end float64) {
	c, ok := e.clips[id]
	if !ok {
		return
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	c.Start, c.End = start, end
	if id == e.activeClip {
		e.playhead = e.clampToClip(e.playhead)
	}
}

// SetClipLoop toggles loop playback for a clip.
func (e *Engine) SetClipLoop(id ClipID, loop bool) {
	if c, ok := e.clips[id]; ok {
		c.Loop = loop
	}
}

// SetClipSpeed applies a playback speed multiplier, clamped to stay positive.
func (e *Engine) SetClipSpeed(id ClipID, speed float64) {
	if c, ok := e.clips[id]; ok {
		if speed < minSpeed {
			speed = minSpeed
		}
		c.Speed = speed
	}
}

// RenameClip sets the clip's display name.
func (e *Engine) RenameClip(id ClipID, name string) {
	if c, ok := e.clips[id]; ok {
		c.Name = name
	}
}

// EnsureTrack returns the track animating (targetID, property), creating it
// lazily and appending it to the active clip. A malformed property path
// returns zero.
func (e *Engine) EnsureTrack(targetID, propertyPath string) TrackID {
	prop, err := ParseProperty(propertyPath)
	if err != nil {
		return 0
	}
	for _, t := range e.tracks {
		if t.TargetID == targetID && t.Property == prop {
			return t.ID
		}
	}
	if e.active() == nil {
		e.NewClip(defaultClipName, 0, defaultClipEnd)
	}
	t := &Track{
		ID:       TrackID(e.allocID()),
		TargetID: targetID,
		Property: prop,
	}
	e.tracks[t.ID] = t
	c := e.active()
	c.TrackIDs = append(c.TrackIDs, t.ID)
	return t.ID
}

func (e *Engine) track(id TrackID) *Track {
	return e.tracks[id]
}

// Track returns a deep copy of the track, if it exists.
func (e *Engine) Track(id TrackID) (Track, bool) {
	t, ok := e.tracks[id]
	if !ok {
		return Track{}, false
	}
	return t.clone(), true
}

// Tracks returns copies of all tracks, ordered by id.
func (e *Engine) Tracks() []Track {
	out := make([]Track, 0, len(e.tracks))
	for id := 1; id <= e.nextID; id++ {
		if t, ok := e.tracks[TrackID(id)]; ok {
			out = append(out, t.clone())
		}
	}
	return out
}

// RemoveTracksForTarget cascades a scene-object deletion: every track bound
// to the target is dropped from the engine, from every clip's track list,
// from the selection and from the solo set.
func (e *Engine) RemoveTracksForTarget(targetID string) {
	removed := map[TrackID]struct{}{}
	for id, t := range e.tracks {
		if t.TargetID == targetID {
			removed[id] = struct{}{}
		}
	}
	if len(removed) == 0 {
		return
	}
	for id := range removed {
		delete(e.tracks, id)
		delete(e.solo, id)
		delete(e.selection.tracks, id)
		delete(e.selection.keys, id)
		delete(e.drivers, id)
	}
	for _, c := range e.clips {
		kept := c.TrackIDs[:0]
		for _, id := range c.TrackIDs {
			if _, gone := removed[id]; !gone {
				kept = append(kept, id)
			}
		}
		c.TrackIDs = kept
	}
}

// SetTrackMuted toggles sampling for a track.
func (e *Engine) SetTrackMuted(id TrackID, muted bool) {
	if t, ok := e.tracks[id]; ok {
		t.Muted = muted
	}
}

// SetTrackLocked toggles key editing for a track.
func (e *Engine) SetTrackLocked(id TrackID, locked bool) {
	if t, ok := e.tracks[id]; ok {
		t.Locked = locked
	}
}

// SetSoloTracks replaces the solo set. Unknown ids are dropped.
func (e *Engine) SetSoloTracks(ids ...TrackID) {
	e.solo = map[TrackID]struct{}{}
	for _, id := range ids {
		if _, ok := e.tracks[id]; ok {
			e.solo[id] = struct{}{}
		}
	}
}

// SoloTracks returns the solo set as a sorted slice.
func (e *Engine) SoloTracks() []TrackID {
	out := make([]TrackID, 0, len(e.solo))
	for id := 1; id <= e.nextID; id++ {
		if _, ok := e.solo[TrackID(id)]; ok {
			out = append(out, TrackID(id))
		}
	}
	return out
}

// FPS returns the engine frame rate used for quantization.
func (e *Engine) FPS() float64 { return e.fps }

// SetFPS clamps the frame rate into [1,240].
func (e *Engine) SetFPS(fps float64) {
	e.fps = common.Clamp(fps, minFPS, maxFPS)
}

// Playhead returns the current evaluation time.
func (e *Engine) Playhead() float64 { return e.playhead }

// AutoKey reports whether external property changes record keys.
func (e *Engine) AutoKey() bool { return e.autoKey }

// SetAutoKey toggles auto-key recording.
func (e *Engine) SetAutoKey(on bool) { e.autoKey = on }

// Snap returns the snapping configuration.
func (e *Engine) Snap() SnapConfig { return e.snap }

// SetSnap replaces the snapping configuration.
func (e *Engine) SetSnap(cfg SnapConfig) { e.snap = cfg }

// View returns the co-located view state (zoom, pan).
func (e *Engine) View() (zoom, pan float64) { return e.zoom, e.pan }

// SetView stores the view state; zoom is kept positive so pixel-to-time
// conversion stays defined.
func (e *Engine) SetView(zoom, pan float64) {
	if zoom <= 0 {
		zoom = defaultZoom
	}
	e.zoom = zoom
	e.pan = pan
}

// AddMarker creates a time-labeled annotation and returns its id.
func (e *Engine) AddMarker(t float64, label string) MarkerID {
	if t < 0 {
		t = 0
	}
	m := Marker{ID: MarkerID(e.allocID()), Time: t, Label: label}
	e.markers = append(e.markers, m)
	return m.ID
}

// MoveMarker re-times a marker, clamped to t >= 0.
func (e *Engine) MoveMarker(id MarkerID, t float64) {
	for i := range e.markers {
		if e.markers[i].ID == id {
			if t < 0 {
				t = 0
			}
			e.markers[i].Time = t
			return
		}
	}
}

// RenameMarker relabels a marker.
func (e *Engine) RenameMarker(id MarkerID, label string) {
	for i := range e.markers {
		if e.markers[i].ID == id {
			e.markers[i].Label = label
			return
		}
	}
}

// RemoveMarker deletes a marker; unknown ids are ignored.
func (e *Engine) RemoveMarker(id MarkerID) {
	for i := range e.markers {
		if e.markers[i].ID == id {
			e.markers = append(e.markers[:i], e.markers[i+1:]...)
			return
		}
	}
}

// Markers returns a copy of all markers.
func (e *Engine) Markers() []Marker {
	return append([]Marker(nil), e.markers...)
}

func (e *Engine) clampToClip(t float64) float64 {
	c := e.active()
	if c == nil {
		if t < 0 {
			return 0
		}
		return t
	}
	return common.Clamp(t, c.Start, c.End)
}
