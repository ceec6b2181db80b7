package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestPointAddSub(t *testing.T) {
	a := Pt(1, 2)
	b := Pt(3, 4)
	sum := a.Add(b)
	if !almostEqual(sum.X, 4) || !almostEqual(sum.Y, 6) {
		t.Errorf("Add = %v, want (4,6)", sum)
	}
	diff := b.Sub(a)
	if !almostEqual(diff.X, 2) || !almostEqual(diff.Y, 2) {
		t.Errorf("Sub = %v, want (2,2)", diff)
	}
}

func TestPointDotCross(t *testing.T) {
	a := Pt(1, 0)
	b := Pt(0, 1)
	if got := a.Dot(b); !almostEqual(got, 0) {
		t.Errorf("Dot = %v, want 0", got)
	}
	if got := a.Cross(b); !almostEqual(got, 1) {
		t.Errorf("Cross = %v, want 1", got)
	}
}

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n := p.Normalize()
	if !almostEqual(n.Length(), 1) {
		t.Errorf("Normalize length = %v, want 1", n.Length())
	}
}

func TestPointNormalizeZero(t *testing.T) {
	p := Pt(0, 0)
	n := p.Normalize()
	if n != (Point{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", n)
	}
}

func TestPointIsAlmostZero(t *testing.T) {
	if !Pt(1e-10, 1e-10).IsAlmostZero() {
		t.Error("expected near-zero vector to be almost zero")
	}
	if Pt(1, 1).IsAlmostZero() {
		t.Error("expected (1,1) not to be almost zero")
	}
}

func TestPointMid(t *testing.T) {
	mid := Pt(0, 0).Mid(Pt(4, 2))
	if !almostEqual(mid.X, 2) || !almostEqual(mid.Y, 1) {
		t.Errorf("Mid = %v, want (2,1)", mid)
	}
}

func TestPointProject(t *testing.T) {
	dir := Pt(1, 0)
	p := Pt(3, 4)
	proj := p.Project(dir)
	if !almostEqual(proj.X, 3) || !almostEqual(proj.Y, 0) {
		t.Errorf("Project = %v, want (3,0)", proj)
	}
}

func TestPointLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 10)
	mid := a.Lerp(b, 0.5)
	if !almostEqual(mid.X, 5) || !almostEqual(mid.Y, 5) {
		t.Errorf("Lerp(0.5) = %v, want (5,5)", mid)
	}
}
