// Package driver compiles track expressions: a scalar function of the
// playhead time written in tengo, e.g. "math.sin(t * 6.283) * 0.5". The
// engine caches compiled programs per track and re-evaluates them during
// sampling instead of the track's channel.
package driver

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Program is a compiled expression of t.
type Program struct {
	compiled *tengo.Compiled
}

// Compile wraps the expression into a script with the math module imported
// and t bound, and compiles it once.
func Compile(src string) (*Program, error) {
	script := tengo.NewScript([]byte("math := import(\"math\")\nv := (" + src + ")"))
	script.SetImports(stdlib.GetModuleMap("math"))
	if err := script.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("driver: bind t: %w", err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("driver: compile %q: %w", src, err)
	}
	return &Program{compiled: compiled}, nil
}

// Eval runs the program at time t and returns the resulting scalar.
func (p *Program) Eval(t float64) (float64, error) {
	if err := p.compiled.Set("t", t); err != nil {
		return 0, fmt.Errorf("driver: set t: %w", err)
	}
	if err := p.compiled.Run(); err != nil {
		return 0, fmt.Errorf("driver: run: %w", err)
	}
	v := p.compiled.Get("v")
	switch v.ValueType() {
	case "int":
		return float64(v.Int64()), nil
	case "float":
		return v.Float(), nil
	default:
		return 0, fmt.Errorf("driver: expression produced %s, expected number", v.ValueType())
	}
}
