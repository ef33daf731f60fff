package driver

import (
	"math"
	"testing"
)

func TestCompileAndEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		t    float64
		want float64
	}{
		{"constant", "3", 0, 3},
		{"linear", "t * 2 + 1", 1.5, 4},
		{"sine", "math.sin(t)", math.Pi / 2, 1},
		{"mixed", "math.floor(t) + 0.5", 2.9, 2.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Compile(c.src)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			got, err := p.Eval(c.t)
			if err != nil {
				t.Fatalf("eval failed: %v", err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestCompileRejectsBadSource(t *testing.T) {
	for _, src := range []string{"((", "t +", "nonexistent(t)"} {
		if _, err := Compile(src); err == nil {
			t.Fatalf("expected compile error for %q", src)
		}
	}
}

func TestEvalRejectsNonNumericResult(t *testing.T) {
	p, err := Compile(`"not a number"`)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if _, err := p.Eval(0); err == nil {
		t.Fatalf("expected an error for a non-numeric expression result")
	}
}

func TestEvalReusableAcrossTimes(t *testing.T) {
	p, err := Compile("t * t")
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	for _, tt := range []float64{0, 1, 2, 3.5} {
		got, err := p.Eval(tt)
		if err != nil {
			t.Fatalf("eval at %v failed: %v", tt, err)
		}
		if math.Abs(got-tt*tt) > 1e-9 {
			t.Fatalf("t=%v: expected %v, got %v", tt, tt*tt, got)
		}
	}
}
