package anim

import (
	"github.com/milk9111/keyframe/common"
	"github.com/milk9111/keyframe/curve"
)

// EvaluateChannel samples the channel at time t. The second return is false
// only when the channel has no keys. Outside the keyed range the boundary
// key's value is held (no extrapolation).
func EvaluateChannel(c *Channel, t float64) (float64, bool) {
	n := len(c.Keys)
	if n == 0 {
		return 0, false
	}
	if n == 1 || t <= c.Keys[0].T {
		return c.Keys[0].V, true
	}
	if t >= c.Keys[n-1].T {
		return c.Keys[n-1].V, true
	}

	// Bracketing segment: k0.T <= t <= k1.T.
	i := 0
	for ; i < n-1; i++ {
		if t < c.Keys[i+1].T {
			break
		}
	}
	k0, k1 := &c.Keys[i], &c.Keys[i+1]
	dt := k1.T - k0.T
	if dt <= 0 {
		return k0.V, true
	}
	u := common.Clamp01((t - k0.T) / dt)

	if k0.SegEase != nil {
		shaped := curve.Ease(k0.SegEase.Kind, k0.SegEase.Mode, k0.SegEase.Strength, u)
		return common.Lerp(k0.V, k1.V, shaped), true
	}
	if k0.Interp == InterpStep {
		return k0.V, true
	}
	if k0.Interp == InterpBezier || k1.Interp == InterpBezier {
		slope := (k1.V - k0.V) / dt
		m0, m1 := slope, slope
		if k0.TanOut != nil {
			m0 = *k0.TanOut
		}
		if k1.TanIn != nil {
			m1 = *k1.TanIn
		}
		return curve.Hermite(k0.V, m0, k1.V, m1, dt, u), true
	}
	return common.Lerp(k0.V, k1.V, u), true
}
