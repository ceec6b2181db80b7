// Package geom implements the 2-D vector primitives shared by every stage
// of the tracing pipeline: extraction, subdivision, simplification and
// curve fitting all operate on the same Point type.
package geom

import "math"

// Eps is the tolerance used throughout the pipeline for "almost zero"
// comparisons on lengths and determinants.
const Eps = 1e-8

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Neg returns the negated vector.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// LengthSquared returns the squared length of the vector.
func (p Point) LengthSquared() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// DistanceSquared returns the squared distance between two points.
func (p Point) DistanceSquared(q Point) float64 {
	return p.Sub(q).LengthSquared()
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if p is (almost) zero length.
func (p Point) Normalize() Point {
	length := p.Length()
	if length < Eps {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// NormalizeWithLength is Normalize but also returns the pre-normalize
// length, avoiding a second sqrt when both are needed.
func (p Point) NormalizeWithLength() (Point, float64) {
	length := p.Length()
	if length < Eps {
		return Point{}, 0
	}
	return Point{X: p.X / length, Y: p.Y / length}, length
}

// IsAlmostZero reports whether p's length is below Eps.
func (p Point) IsAlmostZero() bool {
	return p.LengthSquared() < Eps*Eps
}

// IsFinite reports whether both components are finite.
func (p Point) IsFinite() bool {
	return !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0) &&
		!math.IsNaN(p.X) && !math.IsNaN(p.Y)
}

// Rotate returns the point rotated by angle radians around the origin.
func (p Point) Rotate(angle float64) Point {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point {
	return Point{X: (p.X + q.X) * 0.5, Y: (p.Y + q.Y) * 0.5}
}

// MAdd returns p + q*s (multiply-add), matching madd_vnvn_fl from the
// reference vector-math module.
func (p Point) MAdd(q Point, s float64) Point {
	return Point{X: p.X + q.X*s, Y: p.Y + q.Y*s}
}

// MSub returns p - q*s (multiply-subtract).
func (p Point) MSub(q Point, s float64) Point {
	return Point{X: p.X - q.X*s, Y: p.Y - q.Y*s}
}

// Project returns the projection of p onto the (already normalized)
// direction vector dirNormalized.
func (p Point) Project(dirNormalized Point) Point {
	return dirNormalized.Mul(p.Dot(dirNormalized))
}

// ProjectPlane returns p projected onto the plane whose normal is the
// (already normalized) vector normalNormalized.
func (p Point) ProjectPlane(normalNormalized Point) Point {
	return p.Sub(p.Project(normalNormalized))
}
