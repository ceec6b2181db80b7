package vtrace

import "github.com/gogpu/vtrace/internal/fit"

// Cubic types for 2D curve evaluation.
// Based on the knot-fitting engine's internal fit.Cubic, re-exported here
// so callers of Trace never need to import an internal package.

// CubicKnot is one surviving curve endpoint after fitting: the control
// point entering it, its position, and the control point leaving it. A
// Result's Knots, walked in order and paired consecutively, form the
// cubic Bézier segments of the traced curve.
type CubicKnot struct {
	HandleIn  Point
	Pos       Point
	HandleOut Point
}

// Cubic is a single cubic Bézier segment, as evaluated for point/tangent
// queries or SVG emission.
type Cubic struct {
	P0, P1, P2, P3 Point
}

// CubicBetween builds the Cubic segment connecting two consecutive
// surviving knots.
func CubicBetween(a, b CubicKnot) Cubic {
	return Cubic{P0: a.Pos, P1: a.HandleOut, P2: b.HandleIn, P3: b.Pos}
}

// Point evaluates the curve at parameter t in [0,1].
func (c Cubic) Point(t float64) Point {
	return fit.Cubic{P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}.Point(t)
}

// Tangent evaluates the curve's (unnormalized) tangent at parameter t.
func (c Cubic) Tangent(t float64) Point {
	return fit.Cubic{P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}.Speed(t)
}
