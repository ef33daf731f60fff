package curve

import (
	"math"

	"github.com/milk9111/keyframe/common"
)

// Kind selects the procedural segment-easing family.
type Kind int

const (
	Bounce Kind = iota
	Elastic
)

// Mode selects which end of the segment the easing shapes.
type Mode int

const (
	In Mode = iota
	Out
	InOut
)

// minPeriod keeps the elastic angular frequency finite; the literal period
// term 0.3+0.2*(1-strength) crosses zero at strength 2.5.
const minPeriod = 0.1

// Ease remaps a local segment parameter x in [0,1] through the named
// procedural curve. Strength is clamped to [0,3].
func Ease(kind Kind, mode Mode, strength, x float64) float64 {
	strength = common.Clamp(strength, 0, 3)
	switch kind {
	case Elastic:
		return elastic(mode, strength, x)
	default:
		return bounce(mode, x)
	}
}

func bounce(mode Mode, x float64) float64 {
	switch mode {
	case In:
		return 1 - bounceOut(1-x)
	case InOut:
		if x < 0.5 {
			return (1 - bounceOut(1-2*x)) / 2
		}
		return (1 + bounceOut(2*x-1)) / 2
	default:
		return bounceOut(x)
	}
}

// bounceOut is the classic four-tier piecewise quadratic.
func bounceOut(x float64) float64 {
	const (
		n1 = 7.5625
		d1 = 2.75
	)
	switch {
	case x < 1/d1:
		return n1 * x * x
	case x < 2/d1:
		x -= 1.5 / d1
		return n1*x*x + 0.75
	case x < 2.5/d1:
		x -= 2.25 / d1
		return n1*x*x + 0.9375
	default:
		x -= 2.625 / d1
		return n1*x*x + 0.984375
	}
}

func elastic(mode Mode, strength, x float64) float64 {
	// The decaying sinusoid does not hit 0/1 exactly; pin the endpoints so
	// segment edges stay continuous.
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	switch mode {
	case In:
		return 1 - elasticOut(1-x, strength, 0.3)
	case InOut:
		if x < 0.5 {
			return (1 - elasticOut(1-2*x, strength, 0.45)) / 2
		}
		return (1 + elasticOut(2*x-1, strength, 0.45)) / 2
	default:
		return elasticOut(x, strength, 0.3)
	}
}

func elasticOut(x, strength, basePeriod float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	period := basePeriod + 0.2*(1-strength)
	if period < minPeriod {
		period = minPeriod
	}
	c := 2 * math.Pi / period
	return math.Pow(2, -10*x)*math.Sin((x-0.075)*c) + 1
}
