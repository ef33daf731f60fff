package anim

import (
	"fmt"
	"sort"

	"github.com/milk9111/keyframe/curve"
)

type (
	KeyID    int
	TrackID  int
	ClipID   int
	MarkerID int
)

// Interp selects how the segment leaving a key is interpolated when no
// segment ease overrides it.
type Interp int

const (
	InterpStep Interp = iota
	InterpLinear
	InterpBezier
)

// SegEase overrides the shape of the segment from its key to the next,
// regardless of the key's interpolation mode.
type SegEase struct {
	Kind     curve.Kind
	Mode     curve.Mode
	Strength float64
}

// Key is a single time/value sample. Tangents are optional; when nil the
// evaluator derives them from the chord slope.
type Key struct {
	ID      KeyID
	T       float64
	V       float64
	Interp  Interp
	TanIn   *float64
	TanOut  *float64
	SegEase *SegEase
}

func (k Key) clone() Key {
	out := k
	if k.TanIn != nil {
		v := *k.TanIn
		out.TanIn = &v
	}
	if k.TanOut != nil {
		v := *k.TanOut
		out.TanOut = &v
	}
	if k.SegEase != nil {
		se := *k.SegEase
		out.SegEase = &se
	}
	return out
}

// Channel is the ordered key list owned by a Track. Keys stay sorted
// ascending by T.
type Channel struct {
	Keys []Key
}

func (c *Channel) sortKeys() {
	sort.SliceStable(c.Keys, func(i, j int) bool {
		return c.Keys[i].T < c.Keys[j].T
	})
}

func (c *Channel) keyIndex(id KeyID) int {
	for i := range c.Keys {
		if c.Keys[i].ID == id {
			return i
		}
	}
	return -1
}

// checkSorted panics on an out-of-order channel. Every structural edit
// re-sorts, so a violation here is an implementation bug, not bad input.
func (c *Channel) checkSorted() {
	for i := 1; i < len(c.Keys); i++ {
		if c.Keys[i].T < c.Keys[i-1].T {
			panic(fmt.Sprintf("anim: channel keys unsorted at index %d (%v < %v)", i, c.Keys[i].T, c.Keys[i-1].T))
		}
	}
}

func (c *Channel) clone() Channel {
	out := Channel{Keys: make([]Key, len(c.Keys))}
	for i := range c.Keys {
		out.Keys[i] = c.Keys[i].clone()
	}
	return out
}

// Track animates one scalar property of one external target. Expr, when
// non-empty, is a compiled expression of t that replaces channel evaluation
// during sampling.
type Track struct {
	ID       TrackID
	TargetID string
	Property Property
	Channel  Channel
	Expr     string
	Muted    bool
	Locked   bool
}

func (t *Track) clone() Track {
	out := *t
	out.Channel = t.Channel.clone()
	return out
}

// Clip is a named time window referencing the tracks active for playback.
type Clip struct {
	ID       ClipID
	Name     string
	Start    float64
	End      float64
	Loop     bool
	Speed    float64
	TrackIDs []TrackID
}

func (c *Clip) clone() Clip {
	out := *c
	out.TrackIDs = append([]TrackID(nil), c.TrackIDs...)
	return out
}

// Marker is a time-labeled annotation independent of any clip.
type Marker struct {
	ID    MarkerID
	Time  float64
	Label string
}
