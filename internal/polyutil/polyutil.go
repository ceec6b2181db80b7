// Package polyutil implements the polygon-preparation utilities shared by
// every extraction mode before simplification and curve fitting: integer
// to float casting and the two subdivision passes (midpoint, and
// length-limit).
package polyutil

import "github.com/gogpu/vtrace/internal/geom"

// Polygon is a sequence of points. Closed polygons repeat their first
// point as their last element; open polylines do not.
type Polygon []geom.Point

// FromInt widens integer-lattice polygons into float64 polygons. The
// input coordinates from outline/centerline extraction are already
// integral but stored as float64, so this is the identity — it exists so
// callers have one explicit place documenting the int-to-float boundary,
// matching the reference pipeline's own cast step.
func FromInt(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	copy(out, polys)
	return out
}

// Subdivide inserts a midpoint into every edge of every polygon, doubling
// each polygon's vertex count. Used twice in the pipeline: once before
// simplification (to give the quadric simplifier more collapse
// candidates) and once after (to restore resolution before length-limit
// subdivision).
func Subdivide(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = subdivideOne(p)
	}
	return out
}

func subdivideOne(p Polygon) Polygon {
	if len(p) < 2 {
		return p
	}
	out := make(Polygon, 0, len(p)*2-1)
	for i := 0; i < len(p)-1; i++ {
		out = append(out, p[i], p[i].Mid(p[i+1]))
	}
	out = append(out, p[len(p)-1])
	return out
}

// SubdivideToLimit inserts evenly spaced interior points into every edge
// longer than limit, so no single edge handed to the curve fitter spans
// more than approximately limit units. limit <= 0 disables this pass.
func SubdivideToLimit(polys []Polygon, limit float64) []Polygon {
	if limit <= 0 {
		return polys
	}
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = subdivideToLimitOne(p, limit)
	}
	return out
}

func subdivideToLimitOne(p Polygon, limit float64) Polygon {
	if len(p) < 2 {
		return p
	}
	out := make(Polygon, 0, len(p))
	for i := 0; i < len(p)-1; i++ {
		a, b := p[i], p[i+1]
		out = append(out, a)
		segLen := a.Distance(b)
		n := int(segLen / limit)
		if n > 0 {
			for k := 1; k <= n; k++ {
				t := float64(k) / float64(n+1)
				out = append(out, a.Lerp(b, t))
			}
		}
	}
	out = append(out, p[len(p)-1])
	return out
}
