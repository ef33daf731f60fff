// Package document persists animation engine state as YAML and reloads it,
// including a file watcher for live-editing workflows.
package document

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/keyframe/anim"
	"github.com/milk9111/keyframe/curve"
)

type Document struct {
	Clips   []ClipDoc   `yaml:"clips"`
	Tracks  []TrackDoc  `yaml:"tracks"`
	Markers []MarkerDoc `yaml:"markers"`
	View    ViewDoc     `yaml:"view"`
}

type ClipDoc struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name"`
	Start  float64 `yaml:"start"`
	End    float64 `yaml:"end"`
	Loop   bool    `yaml:"loop"`
	Speed  float64 `yaml:"speed"`
	Tracks []int   `yaml:"tracks"`
}

type TrackDoc struct {
	ID       int      `yaml:"id"`
	Target   string   `yaml:"target"`
	Property string   `yaml:"property"`
	Expr     string   `yaml:"expr,omitempty"`
	Muted    bool     `yaml:"muted,omitempty"`
	Locked   bool     `yaml:"locked,omitempty"`
	Keys     []KeyDoc `yaml:"keys"`
}

type KeyDoc struct {
	ID       int      `yaml:"id"`
	T        float64  `yaml:"t"`
	V        float64  `yaml:"v"`
	Interp   string   `yaml:"interp"`
	TanIn    *float64 `yaml:"tan_in,omitempty"`
	TanOut   *float64 `yaml:"tan_out,omitempty"`
	SegEase  string   `yaml:"seg_ease,omitempty"`
	EaseMode string   `yaml:"seg_ease_mode,omitempty"`
	Strength float64  `yaml:"seg_ease_strength,omitempty"`
}

type MarkerDoc struct {
	ID    int     `yaml:"id"`
	Time  float64 `yaml:"time"`
	Label string  `yaml:"label"`
}

type ViewDoc struct {
	Zoom       float64 `yaml:"zoom"`
	Pan        float64 `yaml:"pan"`
	FPS        float64 `yaml:"fps"`
	ActiveClip int     `yaml:"active_clip"`
	Playhead   float64 `yaml:"playhead"`
}

// FromState converts an engine snapshot into the document shape.
func FromState(s anim.State) Document {
	doc := Document{
		View: ViewDoc{
			Zoom:       s.Zoom,
			Pan:        s.Pan,
			FPS:        s.FPS,
			ActiveClip: int(s.ActiveClip),
			Playhead:   s.Playhead,
		},
	}
	for _, c := range s.Clips {
		cd := ClipDoc{
			ID:    int(c.ID),
			Name:  c.Name,
			Start: c.Start,
			End:   c.End,
			Loop:  c.Loop,
			Speed: c.Speed,
		}
		for _, id := range c.TrackIDs {
			cd.Tracks = append(cd.Tracks, int(id))
		}
		doc.Clips = append(doc.Clips, cd)
	}
	for _, t := range s.Tracks {
		td := TrackDoc{
			ID:       int(t.ID),
			Target:   t.TargetID,
			Property: t.Property.String(),
			Expr:     t.Expr,
			Muted:    t.Muted,
			Locked:   t.Locked,
		}
		for _, k := range t.Channel.Keys {
			td.Keys = append(td.Keys, encodeKey(k))
		}
		doc.Tracks = append(doc.Tracks, td)
	}
	for _, m := range s.Markers {
		doc.Markers = append(doc.Markers, MarkerDoc{ID: int(m.ID), Time: m.Time, Label: m.Label})
	}
	return doc
}

// ToState converts the document back into an engine snapshot.
func (d Document) ToState() (anim.State, error) {
	s := anim.State{
		ActiveClip: anim.ClipID(d.View.ActiveClip),
		Playhead:   d.View.Playhead,
		FPS:        d.View.FPS,
		Zoom:       d.View.Zoom,
		Pan:        d.View.Pan,
		Snap:       anim.SnapConfig{Enabled: true, ToFrames: true, ToKeys: true, ThresholdPx: 8},
	}
	for _, cd := range d.Clips {
		c := anim.Clip{
			ID:    anim.ClipID(cd.ID),
			Name:  cd.Name,
			Start: cd.Start,
			End:   cd.End,
			Loop:  cd.Loop,
			Speed: cd.Speed,
		}
		for _, id := range cd.Tracks {
			c.TrackIDs = append(c.TrackIDs, anim.TrackID(id))
		}
		s.Clips = append(s.Clips, c)
	}
	for _, td := range d.Tracks {
		prop, err := anim.ParseProperty(td.Property)
		if err != nil {
			return anim.State{}, fmt.Errorf("document: track %d: %w", td.ID, err)
		}
		t := anim.Track{
			ID:       anim.TrackID(td.ID),
			TargetID: td.Target,
			Property: prop,
			Expr:     td.Expr,
			Muted:    td.Muted,
			Locked:   td.Locked,
		}
		for _, kd := range td.Keys {
			t.Channel.Keys = append(t.Channel.Keys, decodeKey(kd))
		}
		s.Tracks = append(s.Tracks, t)
	}
	for _, md := range d.Markers {
		s.Markers = append(s.Markers, anim.Marker{ID: anim.MarkerID(md.ID), Time: md.Time, Label: md.Label})
	}
	return s, nil
}

// Save writes the engine snapshot to a YAML file.
func Save(filename string, s anim.State) error {
	data, err := yaml.Marshal(FromState(s))
	if err != nil {
		return fmt.Errorf("document: marshal %s: %w", filename, err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("document: write %s: %w", filename, err)
	}
	return nil
}

// Load reads a YAML document file into an engine snapshot.
func Load(filename string) (anim.State, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return anim.State{}, fmt.Errorf("document: load %s: %w", filename, err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return anim.State{}, fmt.Errorf("document: unmarshal %s: %w", filename, err)
	}
	return doc.ToState()
}

func encodeKey(k anim.Key) KeyDoc {
	kd := KeyDoc{
		ID:     int(k.ID),
		T:      k.T,
		V:      k.V,
		Interp: interpName(k.Interp),
		TanIn:  k.TanIn,
		TanOut: k.TanOut,
	}
	if k.SegEase != nil {
		kd.SegEase = easeKindName(k.SegEase.Kind)
		kd.EaseMode = easeModeName(k.SegEase.Mode)
		kd.Strength = k.SegEase.Strength
	}
	return kd
}

func decodeKey(kd KeyDoc) anim.Key {
	k := anim.Key{
		ID:     anim.KeyID(kd.ID),
		T:      kd.T,
		V:      kd.V,
		Interp: interpFromName(kd.Interp),
	}
	if kd.TanIn != nil {
		v := *kd.TanIn
		k.TanIn = &v
	}
	if kd.TanOut != nil {
		v := *kd.TanOut
		k.TanOut = &v
	}
	if kd.SegEase != "" {
		k.SegEase = &anim.SegEase{
			Kind:     easeKindFromName(kd.SegEase),
			Mode:     easeModeFromName(kd.EaseMode),
			Strength: kd.Strength,
		}
	}
	return k
}

func interpName(i anim.Interp) string {
	switch i {
	case anim.InterpStep:
		return "step"
	case anim.InterpBezier:
		return "bezier"
	default:
		return "linear"
	}
}

func interpFromName(s string) anim.Interp {
	switch s {
	case "step":
		return anim.InterpStep
	case "bezier":
		return anim.InterpBezier
	default:
		return anim.InterpLinear
	}
}

func easeKindName(k curve.Kind) string {
	if k == curve.Elastic {
		return "elastic"
	}
	return "bounce"
}

func easeKindFromName(s string) curve.Kind {
	if s == "elastic" {
		return curve.Elastic
	}
	return curve.Bounce
}

func easeModeName(m curve.Mode) string {
	switch m {
	case curve.In:
		return "in"
	case curve.InOut:
		return "in_out"
	default:
		return "out"
	}
}

func easeModeFromName(s string) curve.Mode {
	switch s {
	case "in":
		return curve.In
	case "in_out":
		return curve.InOut
	default:
		return curve.Out
	}
}
