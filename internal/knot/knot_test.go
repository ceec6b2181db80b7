package knot

import (
	"math"
	"testing"

	"github.com/gogpu/vtrace/internal/geom"
)

func square() []geom.Point {
	// A dense sampling of a 4x4 square, traced clockwise and closed
	// (first point repeated as last), as the pipeline hands to Fit.
	var pts []geom.Point
	corners := []geom.Point{geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 4), geom.Pt(0, 4)}
	for i := 0; i < len(corners); i++ {
		a, b := corners[i], corners[(i+1)%len(corners)]
		for s := 0; s < 4; s++ {
			t := float64(s) / 4
			pts = append(pts, geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t))
		}
	}
	pts = append(pts, pts[0])
	return pts
}

func lshape() []geom.Point {
	// An L-shape traced densely: a sharp 90-degree turn should be
	// preserved (as a corner) rather than smoothed away when
	// corner_angle is tight enough to catch it.
	var pts []geom.Point
	corners := []geom.Point{
		geom.Pt(0, 0), geom.Pt(4, 0), geom.Pt(4, 2),
		geom.Pt(2, 2), geom.Pt(2, 4), geom.Pt(0, 4),
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		for s := 0; s < 4; s++ {
			t := float64(s) / 4
			pts = append(pts, geom.Pt(a.X+(b.X-a.X)*t, a.Y+(b.Y-a.Y)*t))
		}
	}
	pts = append(pts, pts[0])
	return pts
}

func hasNaN(results []Result) bool {
	for _, r := range results {
		if math.IsNaN(r.Pos.X) || math.IsNaN(r.Pos.Y) {
			return true
		}
	}
	return false
}

func TestFitCyclicSquareStaysWithinBudget(t *testing.T) {
	pts := square()
	results := Fit(pts, Options{ErrorThreshold: 0.2, CornerThreshold: math.Pi / 4})
	if len(results) < 2 {
		t.Fatalf("got %d knots, want at least 2", len(results))
	}
	if hasNaN(results) {
		t.Fatalf("got NaN knot position among %v", results)
	}
}

func TestFitOpenLineReducesToEndpoints(t *testing.T) {
	var pts []geom.Point
	for i := 0; i <= 10; i++ {
		pts = append(pts, geom.Pt(float64(i), 0))
	}
	results := Fit(pts, Options{ErrorThreshold: 0.5, CornerThreshold: math.Pi})
	if len(results) < 2 {
		t.Fatalf("got %d knots, want at least 2", len(results))
	}
	if results[0].Pos != pts[0] {
		t.Errorf("first knot = %v, want %v", results[0].Pos, pts[0])
	}
	if last := results[len(results)-1].Pos; last != pts[len(pts)-1] {
		t.Errorf("last knot = %v, want %v", last, pts[len(pts)-1])
	}
}

func TestFitDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		pts  []geom.Point
	}{
		{"single point", []geom.Point{geom.Pt(0, 0)}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.pts, Options{ErrorThreshold: 1}); got != nil {
				t.Errorf("Fit(%v) = %v, want nil", tt.pts, got)
			}
		})
	}
}

func TestFitLShapeStaysWithinBudget(t *testing.T) {
	pts := lshape()
	results := Fit(pts, Options{ErrorThreshold: 0.1, CornerThreshold: math.Pi / 4})
	if len(results) == 0 {
		t.Fatal("got no knots")
	}
	if hasNaN(results) {
		t.Fatalf("got NaN knot position among %v", results)
	}
}

func TestFitExhaustiveMatchesNonExhaustiveTermination(t *testing.T) {
	// Exhaustive search must terminate too, with the same no-op-refit
	// safeguards as the default path.
	pts := lshape()
	results := Fit(pts, Options{ErrorThreshold: 0.1, CornerThreshold: math.Pi / 4, Exhaustive: true})
	if len(results) == 0 {
		t.Fatal("got no knots")
	}
	if hasNaN(results) {
		t.Fatalf("got NaN knot position among %v", results)
	}
}

func TestFitSharpCornerWithLooseThresholdStillTerminates(t *testing.T) {
	// A loose error threshold lets Phase A bypass almost everything;
	// this exercises Phase B/C on a near-minimal ring without hanging
	// or producing NaN positions.
	pts := lshape()
	results := Fit(pts, Options{ErrorThreshold: 2, CornerThreshold: math.Pi / 6})
	if len(results) < 2 {
		t.Fatalf("got %d knots, want at least 2", len(results))
	}
	if hasNaN(results) {
		t.Fatalf("got NaN knot position among %v", results)
	}
}
