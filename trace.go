package vtrace

import (
	"errors"

	"github.com/gogpu/vtrace/internal/centerline"
	"github.com/gogpu/vtrace/internal/fit"
	"github.com/gogpu/vtrace/internal/geom"
	"github.com/gogpu/vtrace/internal/knot"
	"github.com/gogpu/vtrace/internal/outline"
	"github.com/gogpu/vtrace/internal/parallel"
	"github.com/gogpu/vtrace/internal/polyutil"
	"github.com/gogpu/vtrace/internal/simplify"
)

// ErrDegeneratePolygon names the condition of a polygon that has
// collapsed below the minimum vertex count any stage can operate on. No
// function in this package returns it: Trace keeps such a polygon in
// Result.Shapes as a Shape with no knots, which WriteSVG skips.
var ErrDegeneratePolygon = errors.New("vtrace: degenerate polygon")

// DebugPassKind selects which intermediate artifacts Trace records:
// polygons in Result.DebugPasses, tangent rays in Result.Tangents.
type DebugPassKind uint8

const (
	// DebugPixel captures each polygon immediately after extraction,
	// before any subdivision or simplification.
	DebugPixel DebugPassKind = 1 << iota
	// DebugPreFit captures each polygon after simplification but before
	// the length-limit subdivision pass that precedes curve fitting.
	DebugPreFit
	// DebugTangent captures the per-knot tangent ray at every surviving
	// knot, for visualizing the fitter's tangent choices. These rays go
	// to Result.Tangents, not Result.DebugPasses.
	DebugTangent
)

// Shape is one traced region: a closed curve (Outline mode) or an open or
// closed polyline of curves (Centerline mode).
type Shape struct {
	Knots  []CubicKnot
	Closed bool
}

// TangentRay is one debug-visualization tangent line at a surviving
// knot's position.
type TangentRay struct {
	Pos, Dir Point
}

// Result is the output of Trace: the fitted shapes plus any requested
// debug-pass artifacts.
type Result struct {
	Shapes []Shape

	// DebugPasses holds intermediate polygons, keyed by DebugPassKind,
	// present only when requested via TraceWithDebug's debugMask.
	DebugPasses map[DebugPassKind][]polyutil.Polygon
	Tangents    []TangentRay
}

// Trace runs the full raster-to-curve pipeline over bm using opts (or
// DefaultParams if none given).
func Trace(bm *Bitmap, opts ...Option) (*Result, error) {
	return TraceWithDebug(bm, 0, opts...)
}

// TraceWithDebug is Trace but also captures the intermediate artifacts
// named by debugMask (an OR of DebugPassKind values) into
// Result.DebugPasses.
func TraceWithDebug(bm *Bitmap, debugMask DebugPassKind, opts ...Option) (*Result, error) {
	p := newParams(opts)

	raw := extract(bm, p)

	res := &Result{}
	if debugMask&DebugPixel != 0 {
		res.DebugPasses = addDebugPass(res.DebugPasses, DebugPixel, raw)
	}

	polys := polyutil.FromInt(raw)
	polys = polyutil.Subdivide(polys)
	polys = fromSimplify(simplify.SimplifyAll(toSimplify(polys), p.SimplifyThreshold))

	if debugMask&DebugPreFit != 0 {
		res.DebugPasses = addDebugPass(res.DebugPasses, DebugPreFit, polys)
	}

	polys = polyutil.Subdivide(polys)
	polys = polyutil.SubdivideToLimit(polys, p.LengthThreshold)

	sizes := make([]int, len(polys))
	for i, poly := range polys {
		sizes[i] = len(poly)
	}

	shapes := make([]Shape, len(polys))
	fitOpts := knot.Options{
		ErrorThreshold:  p.ErrorThreshold,
		CornerThreshold: p.CornerThreshold,
		Exhaustive:      p.Optimize,
	}

	parallel.FitPolygons(sizes, p.Threads, func(i int) {
		results := knot.Fit([]geom.Point(polys[i]), fitOpts)
		isClosed := len(polys[i]) > 0 && polys[i][0] == polys[i][len(polys[i])-1]
		knots := make([]CubicKnot, len(results))
		for j, r := range results {
			knots[j] = CubicKnot{HandleIn: r.HandleIn, Pos: r.Pos, HandleOut: r.HandleOut}
		}
		shapes[i] = Shape{Knots: knots, Closed: isClosed}
	})

	res.Shapes = shapes

	if debugMask&DebugTangent != 0 {
		res.Tangents = collectTangents(shapes)
	}

	return res, nil
}

func extract(bm *Bitmap, p Params) []polyutil.Polygon {
	switch p.Mode {
	case ModeCenterline:
		skel := Skeletonize(bm)
		lines := centerline.Extract(skel)
		out := make([]polyutil.Polygon, len(lines))
		for i, l := range lines {
			out[i] = polyutil.Polygon(l)
		}
		return out
	default:
		polys := outline.Extract(bm, p.TurnPolicy)
		out := make([]polyutil.Polygon, len(polys))
		for i, poly := range polys {
			out[i] = polyutil.Polygon(poly)
		}
		return out
	}
}

func toSimplify(polys []polyutil.Polygon) []simplify.Polygon {
	out := make([]simplify.Polygon, len(polys))
	for i, p := range polys {
		out[i] = simplify.Polygon(p)
	}
	return out
}

func fromSimplify(polys []simplify.Polygon) []polyutil.Polygon {
	out := make([]polyutil.Polygon, len(polys))
	for i, p := range polys {
		out[i] = polyutil.Polygon(p)
	}
	return out
}

func addDebugPass(m map[DebugPassKind][]polyutil.Polygon, kind DebugPassKind, polys []polyutil.Polygon) map[DebugPassKind][]polyutil.Polygon {
	if m == nil {
		m = make(map[DebugPassKind][]polyutil.Polygon)
	}
	cp := make([]polyutil.Polygon, len(polys))
	copy(cp, polys)
	m[kind] = cp
	return m
}

func collectTangents(shapes []Shape) []TangentRay {
	var rays []TangentRay
	for _, s := range shapes {
		for i, k := range s.Knots {
			var next CubicKnot
			if i+1 < len(s.Knots) {
				next = s.Knots[i+1]
			} else if s.Closed && len(s.Knots) > 0 {
				next = s.Knots[0]
			} else {
				continue
			}
			c := fit.Cubic{P0: k.Pos, P1: k.HandleOut, P2: next.HandleIn, P3: next.Pos}
			dir := c.Speed(0).Normalize()
			rays = append(rays, TangentRay{Pos: k.Pos, Dir: dir})
		}
	}
	return rays
}
