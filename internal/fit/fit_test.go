package fit

import (
	"math"
	"testing"

	"github.com/gogpu/vtrace/internal/geom"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFitStraightLine(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0), geom.Pt(3, 0)}
	tan := geom.Pt(1, 0)
	c, e := Fit(pts, tan, tan)
	if e.MaxSq > 1e-9 {
		t.Errorf("straight line fit error = %v, want ~0", e.MaxSq)
	}
	if !almostEqual(c.P0.Y, 0) || !almostEqual(c.P3.Y, 0) {
		t.Errorf("endpoints drifted off axis: %v", c)
	}
}

func TestFitArcLowError(t *testing.T) {
	// Sample a quarter-circle arc of radius 10 and confirm the fitter
	// finds a cubic within a small error budget.
	const r = 10.0
	pts := make([]geom.Point, 9)
	for i := range pts {
		theta := float64(i) / 8 * math.Pi / 2
		pts[i] = geom.Pt(r*math.Sin(theta), r*(1-math.Cos(theta)))
	}
	tan0 := geom.Pt(1, 0)
	tan3 := geom.Pt(0, 1)
	_, e := Fit(pts, tan0, tan3)
	if e.MaxSq > 0.1 {
		t.Errorf("arc fit squared error = %v, want < 0.1", e.MaxSq)
	}
}

func TestFitEndpointsInterpolated(t *testing.T) {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 2), geom.Pt(2, -1), geom.Pt(4, 3)}
	tan0 := pts[1].Sub(pts[0]).Normalize()
	tan3 := pts[3].Sub(pts[2]).Normalize()
	c, _ := Fit(pts, tan0, tan3)
	if c.P0 != pts[0] {
		t.Errorf("P0 = %v, want %v", c.P0, pts[0])
	}
	if c.P3 != pts[len(pts)-1] {
		t.Errorf("P3 = %v, want %v", c.P3, pts[len(pts)-1])
	}
}

func TestCubicPointEndpoints(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want geom.Point
	}{
		{"start", 0, geom.Pt(0, 0)},
		{"end", 1, geom.Pt(3, 0)},
	}
	c := Cubic{P0: geom.Pt(0, 0), P1: geom.Pt(1, 1), P2: geom.Pt(2, 1), P3: geom.Pt(3, 0)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Point(tt.t); got != tt.want {
				t.Errorf("Point(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestFitRejectsDegenerateCandidates(t *testing.T) {
	// Coincident tangents give the circle solver a zero-angle arc and
	// the fallback/least-squares solvers need to carry the fit on their
	// own without panicking on a division by zero.
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(2, 0)}
	tan := geom.Pt(1, 0)
	c, e := Fit(pts, tan, tan)
	if math.IsNaN(e.MaxSq) || math.IsNaN(c.P1.X) || math.IsNaN(c.P2.X) {
		t.Fatalf("got NaN result: c=%v e=%v", c, e)
	}
}
