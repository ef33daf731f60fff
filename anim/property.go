package anim

import (
	"fmt"
	"strings"
)

// SinkKind tags which external sink a property routes to, replacing
// string-prefix matching with an exhaustive dispatch.
type SinkKind int

const (
	SinkTransform SinkKind = iota
	SinkModifier
	SinkSimulation
)

// Property identifies one animatable scalar on an external target.
// Exactly the fields for its Kind are populated.
type Property struct {
	Kind SinkKind

	// SinkTransform
	Component string // "position", "rotation" or "scale"
	Axis      string

	// SinkModifier
	ModifierID string
	Setting    string

	// SinkSimulation
	Param string
}

var simulationParams = map[string]struct{}{
	"emissionRate": {},
	"gravityY":     {},
	"size":         {},
	"speed":        {},
	"damping":      {},
	"bounce":       {},
	"initialVelX":  {},
	"initialVelY":  {},
	"initialVelZ":  {},
}

// ParseProperty parses a path string like "position.x",
// "mod.<modifierId>.<settingPath...>" or "fluid.<param>".
func ParseProperty(path string) (Property, error) {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "position", "rotation", "scale":
		if len(parts) != 2 || parts[1] == "" {
			return Property{}, fmt.Errorf("anim: parse property %q: expected <component>.<axis>", path)
		}
		return Property{Kind: SinkTransform, Component: parts[0], Axis: parts[1]}, nil
	case "mod":
		if len(parts) < 3 || parts[1] == "" || parts[2] == "" {
			return Property{}, fmt.Errorf("anim: parse property %q: expected mod.<modifierId>.<settingPath>", path)
		}
		return Property{Kind: SinkModifier, ModifierID: parts[1], Setting: strings.Join(parts[2:], ".")}, nil
	case "fluid":
		if len(parts) != 2 {
			return Property{}, fmt.Errorf("anim: parse property %q: expected fluid.<param>", path)
		}
		if _, ok := simulationParams[parts[1]]; !ok {
			return Property{}, fmt.Errorf("anim: parse property %q: unknown simulation parameter", path)
		}
		return Property{Kind: SinkSimulation, Param: parts[1]}, nil
	default:
		return Property{}, fmt.Errorf("anim: parse property %q: unknown prefix", path)
	}
}

// String renders the canonical path form.
func (p Property) String() string {
	switch p.Kind {
	case SinkTransform:
		return p.Component + "." + p.Axis
	case SinkModifier:
		return "mod." + p.ModifierID + "." + p.Setting
	case SinkSimulation:
		return "fluid." + p.Param
	}
	return ""
}

// applyOrder ranks properties for per-target write ordering:
// position, rotation, scale, modifier, simulation parameter.
func (p Property) applyOrder() int {
	switch p.Kind {
	case SinkTransform:
		switch p.Component {
		case "position":
			return 0
		case "rotation":
			return 1
		default:
			return 2
		}
	case SinkModifier:
		return 3
	default:
		return 4
	}
}
