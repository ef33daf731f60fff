package anim

import (
	"fmt"
	"sort"

	"github.com/milk9111/keyframe/driver"
)

// SceneSink receives batched property writes from ApplySampleAt. Each method
// corresponds to one SinkKind.
type SceneSink interface {
	SetTransformComponent(targetID, axisPath string, value float64)
	SetModifierSetting(targetID, modifierID, settingPath string, value float64)
	SetSimulationParameter(targetID, param string, value float64)
}

// Sample is one evaluated track value at a point in time.
type Sample struct {
	TargetID string
	Property Property
	Value    float64
}

type trackDriver struct {
	src  string
	prog *driver.Program
	bad  bool
}

// SetTrackExpression attaches (or clears) a compiled expression of t that
// replaces the track's channel during sampling.
func (e *Engine) SetTrackExpression(trackID TrackID, src string) {
	tr := e.tracks[trackID]
	if tr == nil {
		return
	}
	tr.Expr = src
	delete(e.drivers, trackID)
}

func (e *Engine) driverValue(tr *Track, t float64) (float64, bool) {
	d := e.drivers[tr.ID]
	if d == nil || d.src != tr.Expr {
		d = &trackDriver{src: tr.Expr}
		prog, err := driver.Compile(tr.Expr)
		if err != nil {
			fmt.Printf("anim: track=%d compile expression error: %v\n", tr.ID, err)
			d.bad = true
		} else {
			d.prog = prog
		}
		e.drivers[tr.ID] = d
	}
	if d.bad {
		return 0, false
	}
	v, err := d.prog.Eval(t)
	if err != nil {
		fmt.Printf("anim: track=%d eval expression error: %v\n", tr.ID, err)
		return 0, false
	}
	return v, true
}

// SampleAt evaluates every active track of the active clip at time t
// (clamped into the clip window). Solo, when non-empty, wins over mute.
func (e *Engine) SampleAt(t float64) []Sample {
	c := e.active()
	if c == nil {
		return nil
	}
	t = e.clampToClip(t)

	var out []Sample
	for _, trackID := range c.TrackIDs {
		tr := e.tracks[trackID]
		if tr == nil {
			continue
		}
		if len(e.solo) > 0 {
			if _, ok := e.solo[trackID]; !ok {
				continue
			}
		} else if tr.Muted {
			continue
		}

		var v float64
		var ok bool
		if tr.Expr != "" {
			v, ok = e.driverValue(tr, t)
		} else {
			v, ok = EvaluateChannel(&tr.Channel, t)
		}
		if !ok {
			continue
		}
		out = append(out, Sample{TargetID: tr.TargetID, Property: tr.Property, Value: v})
	}
	return out
}

// ApplySampleAt samples at t and writes the results through the scene sink,
// batched per target and ordered position, rotation, scale, modifier,
// simulation parameter. The re-entrancy guard is held for the whole
// application so an auto-record observer can't mistake these writes for
// user edits.
func (e *Engine) ApplySampleAt(t float64) {
	if e.sink == nil {
		return
	}
	samples := e.SampleAt(t)
	if len(samples) == 0 {
		return
	}

	e.applying = true
	defer func() { e.applying = false }()

	// Group per target, preserving first-seen target order. Within a group
	// the last write per property wins, then writes go out in sink order.
	var targets []string
	grouped := map[string]map[string]Sample{}
	for _, s := range samples {
		g, ok := grouped[s.TargetID]
		if !ok {
			g = map[string]Sample{}
			grouped[s.TargetID] = g
			targets = append(targets, s.TargetID)
		}
		g[s.Property.String()] = s
	}

	for _, target := range targets {
		g := grouped[target]
		batch := make([]Sample, 0, len(g))
		for _, s := range g {
			batch = append(batch, s)
		}
		sort.Slice(batch, func(i, j int) bool {
			oi, oj := batch[i].Property.applyOrder(), batch[j].Property.applyOrder()
			if oi != oj {
				return oi < oj
			}
			return batch[i].Property.String() < batch[j].Property.String()
		})
		for _, s := range batch {
			e.dispatch(s)
		}
	}
}

func (e *Engine) dispatch(s Sample) {
	switch s.Property.Kind {
	case SinkTransform:
		e.sink.SetTransformComponent(s.TargetID, s.Property.String(), s.Value)
	case SinkModifier:
		e.sink.SetModifierSetting(s.TargetID, s.Property.ModifierID, s.Property.Setting, s.Value)
	case SinkSimulation:
		e.sink.SetSimulationParameter(s.TargetID, s.Property.Param, s.Value)
	}
}

// Applying reports whether the engine is inside ApplySampleAt. External
// observers use this to tell programmatic writes from user edits.
func (e *Engine) Applying() bool { return e.applying }

// RecordExternalChange is the auto-record entry point: the scene graph calls
// it whenever a property changes. While the engine itself is applying
// samples, or when auto-key is off, nothing is recorded; otherwise a key is
// inserted at the playhead, creating the track on first use.
func (e *Engine) RecordExternalChange(targetID, propertyPath string, value float64) {
	if e.applying || !e.autoKey {
		return
	}
	trackID := e.EnsureTrack(targetID, propertyPath)
	if trackID == 0 {
		return
	}
	e.InsertKey(trackID, e.playhead, value, InterpLinear)
}
