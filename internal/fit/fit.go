// Package fit implements the single-cubic least-squares and geometric
// fitting used to replace a run of polygon points with one cubic Bézier
// segment, trying several candidate solvers and picking whichever best
// matches the input points.
package fit

import (
	"math"

	"github.com/gogpu/vtrace/internal/geom"
)

// Cubic is a cubic Bézier curve: p0 is the start anchor, p1/p2 are the
// two control points (handles), p3 is the end anchor.
type Cubic struct {
	P0, P1, P2, P3 geom.Point
}

// Point evaluates the curve at parameter t in [0,1].
func (c Cubic) Point(t float64) geom.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	cc := 3 * mt * t * t
	d := t * t * t
	return geom.Pt(
		a*c.P0.X+b*c.P1.X+cc*c.P2.X+d*c.P3.X,
		a*c.P0.Y+b*c.P1.Y+cc*c.P2.Y+d*c.P3.Y,
	)
}

// Speed evaluates the curve's first derivative (tangent, unnormalized)
// at parameter t.
func (c Cubic) Speed(t float64) geom.Point {
	mt := 1 - t
	return geom.Pt(
		3*mt*mt*(c.P1.X-c.P0.X)+6*mt*t*(c.P2.X-c.P1.X)+3*t*t*(c.P3.X-c.P2.X),
		3*mt*mt*(c.P1.Y-c.P0.Y)+6*mt*t*(c.P2.Y-c.P1.Y)+3*t*t*(c.P3.Y-c.P2.Y),
	)
}

// Acceleration evaluates the curve's second derivative at parameter t.
func (c Cubic) Acceleration(t float64) geom.Point {
	mt := 1 - t
	return geom.Pt(
		6*mt*(c.P2.X-2*c.P1.X+c.P0.X)+6*t*(c.P3.X-2*c.P2.X+c.P1.X),
		6*mt*(c.P2.Y-2*c.P1.Y+c.P0.Y)+6*t*(c.P3.Y-2*c.P2.Y+c.P1.Y),
	)
}

// Error reports the worst point-to-curve squared distance found and the
// polygon-point index at which it occurred.
type Error struct {
	MaxSq float64
	Index int
}

// coordLengths computes the cumulative chord length up to each point,
// used as the initial parameterization for the least-squares and offset
// solvers.
func coordLengths(pts []geom.Point) []float64 {
	u := make([]float64, len(pts))
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
		u[i] = total
	}
	if total > geom.Eps {
		for i := range u {
			u[i] /= total
		}
	}
	return u
}

// bezierBasis evaluates the four cubic Bernstein basis functions at t.
func bezierBasis(t float64) (b0, b1, b2, b3 float64) {
	mt := 1 - t
	b0 = mt * mt * mt
	b1 = 3 * mt * mt * t
	b2 = 3 * mt * t * t
	b3 = t * t * t
	return
}

// solveFallback produces a degenerate-but-valid cubic: control points
// placed a third of the way along the chord from each anchor, used when
// no better candidate is numerically viable.
func solveFallback(p0, p3, tan0, tan3 geom.Point) Cubic {
	chord := p3.Distance(p0) / 3
	return Cubic{
		P0: p0,
		P1: p0.MAdd(tan0, chord),
		P2: p3.MSub(tan3, chord),
		P3: p3,
	}
}

// solveLeastSquares fits control points by minimizing squared distance to
// pts at parameterization u, holding the anchors and tangent directions
// fixed (the classic Bézier least-squares derivation via the normal
// equations for the 2 unknown handle-length scalars).
func solveLeastSquares(pts []geom.Point, u []float64, p0, p3, tan0, tan3 geom.Point) (Cubic, bool) {
	var c00, c01, c11, x0, x1 float64
	for i, t := range u {
		b0, b1, b2, b3 := bezierBasis(t)
		a1 := tan0.Mul(b1)
		a2 := tan3.Mul(b2)
		base := p0.Mul(b0 + b1).Add(p3.Mul(b2 + b3))
		d := pts[i].Sub(base)

		c00 += a1.Dot(a1)
		c01 += a1.Dot(a2)
		c11 += a2.Dot(a2)
		x0 += a1.Dot(d)
		x1 += a2.Dot(d)
	}

	det := c00*c11 - c01*c01
	if math.Abs(det) < 1e-12 {
		return Cubic{}, false
	}
	alpha0 := (x0*c11 - x1*c01) / det
	alpha1 := (c00*x1 - c01*x0) / det

	segLen := p3.Distance(p0)
	minLen := segLen * 1e-6
	if alpha0 < minLen || alpha1 < minLen {
		return Cubic{}, false
	}

	return Cubic{
		P0: p0,
		P1: p0.MAdd(tan0, alpha0),
		P2: p3.MSub(tan3, alpha1),
		P3: p3,
	}, true
}

// cubicArcMagic is the standard quarter-circle Bézier handle factor,
// 4/3·(√2−1), which the circle-based solver scales by the included angle
// to approximate a circular arc's handle length.
const cubicArcMagic = 0.5522847498

// solveCircle approximates the point run with an arc of a circle fitted
// through the chord and tangents, converting the arc to a cubic via the
// standard circle-to-Bézier magic-number handle length.
func solveCircle(p0, p3, tan0, tan3 geom.Point) (Cubic, bool) {
	chord := p3.Sub(p0)
	chordLen := chord.Length()
	if chordLen < geom.Eps {
		return Cubic{}, false
	}
	cosAngle := tan0.Dot(tan3)
	if cosAngle < -1 {
		cosAngle = -1
	}
	if cosAngle > 1 {
		cosAngle = 1
	}
	angle := math.Acos(cosAngle)
	if angle < geom.Eps {
		return Cubic{}, false
	}
	radius := chordLen / (2 * math.Sin(angle/2))
	handleLen := radius * cubicArcMagic * (angle / (math.Pi / 2))
	return Cubic{
		P0: p0,
		P1: p0.MAdd(tan0, handleLen),
		P2: p3.MSub(tan3, handleLen),
		P3: p3,
	}, true
}

// solveOffset measures how far the middle sample of the point run lies
// off the chord, perpendicular to it, then places each handle a third of
// the chord length along its tangent and shifts both handles by 1.5 times
// that offset along the chord normal. The shift is not projected onto
// the tangent directions, so the handles are not kept on the tangent rays.
func solveOffset(pts []geom.Point, p0, p3, tan0, tan3 geom.Point) (Cubic, bool) {
	if len(pts) == 0 {
		return Cubic{}, false
	}
	mid := pts[len(pts)/2]
	chord := p3.Sub(p0)
	chordLen := chord.Length()
	if chordLen < geom.Eps {
		return Cubic{}, false
	}
	chordDir := chord.Div(chordLen)
	normal := geom.Pt(-chordDir.Y, chordDir.X)
	offset := mid.Sub(p0.Mid(p3)).Dot(normal)
	handleLen := chordLen / 3
	h := normal.Mul(offset * 1.5)
	return Cubic{
		P0: p0,
		P1: p0.MAdd(tan0, handleLen).Add(h),
		P2: p3.MSub(tan3, handleLen).Add(h),
		P3: p3,
	}, true
}

// calcError returns the worst squared distance between pts and the
// curve, sampled at parameterization u.
func calcError(c Cubic, pts []geom.Point, u []float64) Error {
	var worst Error
	worst.MaxSq = -1
	for i, t := range u {
		d := c.Point(t).DistanceSquared(pts[i])
		if d > worst.MaxSq {
			worst.MaxSq = d
			worst.Index = i
		}
	}
	return worst
}

// calcErrorLimit is calcError but returns early as soon as the error
// exceeds limitSq, for Fit's non-winning candidates: once a candidate is
// already worse than the current best it doesn't need the exact worst
// point, just a fast proof that it lost.
func calcErrorLimit(c Cubic, pts []geom.Point, u []float64, limitSq float64) Error {
	var worst Error
	worst.MaxSq = -1
	for i, t := range u {
		d := c.Point(t).DistanceSquared(pts[i])
		if d > worst.MaxSq {
			worst.MaxSq = d
			worst.Index = i
		}
		if worst.MaxSq > limitSq {
			return worst
		}
	}
	return worst
}

// reparameterize runs up to maxIterations Newton-Raphson refinements of
// u against curve c, matching the reference fitter's cubic_find_root /
// cubic_reparameterize loop.
func reparameterize(c Cubic, pts []geom.Point, u []float64, maxIterations int) []float64 {
	out := make([]float64, len(u))
	copy(out, u)
	for iter := 0; iter < maxIterations; iter++ {
		for i, t := range out {
			p := c.Point(t)
			speed := c.Speed(t)
			accel := c.Acceleration(t)
			d := p.Sub(pts[i])

			num := d.Dot(speed)
			den := speed.Dot(speed) + d.Dot(accel)
			if math.Abs(den) < geom.Eps {
				continue
			}
			nt := t - num/den
			if nt < 0 {
				nt = 0
			}
			if nt > 1 {
				nt = 1
			}
			out[i] = nt
		}
	}
	return out
}

// Fit tries every candidate cubic solver for the point run pts (with
// fixed tangent directions tan0/tan3 at the endpoints), refines
// parameterization with Newton-Raphson, and returns whichever candidate
// has the lowest worst-case squared error. Per §4.6, only the first
// candidate's error is computed in full; every later candidate uses the
// "limit" short-circuit against the current best so a candidate that is
// already losing stops scanning points early instead of paying for a
// full error pass it can't win.
func Fit(pts []geom.Point, tan0, tan3 geom.Point) (Cubic, Error) {
	p0, p3 := pts[0], pts[len(pts)-1]
	u := coordLengths(pts)

	var best Cubic
	var bestErr Error
	haveBest := false

	consider := func(c Cubic, ok bool) {
		if !ok {
			return
		}
		ru := reparameterize(c, pts, u, 4)
		if !haveBest {
			best, bestErr, haveBest = c, calcError(c, pts, ru), true
			return
		}
		e := calcErrorLimit(c, pts, ru, bestErr.MaxSq)
		if e.MaxSq < bestErr.MaxSq {
			best, bestErr = c, e
		}
	}

	consider(solveFallback(p0, p3, tan0, tan3), true)
	if c, ok := solveCircle(p0, p3, tan0, tan3); ok {
		consider(c, true)
	}
	if c, ok := solveOffset(pts, p0, p3, tan0, tan3); ok {
		consider(c, true)
	}
	if c, ok := solveLeastSquares(pts, u, p0, p3, tan0, tan3); ok {
		consider(c, true)
	}

	return best, bestErr
}
