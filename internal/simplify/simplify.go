// Package simplify reduces a polygon's vertex count by repeatedly
// collapsing the edge whose removal introduces the least geometric error,
// measured with per-vertex quadric error metrics in the style of
// Garland-Heckbert mesh simplification adapted to 2-D polylines.
package simplify

import (
	"github.com/gogpu/vtrace/internal/geom"
	"github.com/gogpu/vtrace/internal/heap"
)

// Polygon is a sequence of points; closed polygons repeat their first
// point as their last element.
type Polygon []geom.Point

// quadric is the symmetric 2x2 error matrix plus linear/constant terms
// accumulated from the perpendicular-plane equations of every edge
// touching a vertex: Q = [[a2, ab], [ab, b2]], linear (ac, bc), constant c2.
type quadric struct {
	a2, ab, ac, b2, bc, c2 float64
}

func quadricFromPlane(nx, ny, d float64) quadric {
	return quadric{
		a2: nx * nx, ab: nx * ny, ac: nx * d,
		b2: ny * ny, bc: ny * d, c2: d * d,
	}
}

func (q quadric) add(o quadric) quadric {
	return quadric{
		a2: q.a2 + o.a2, ab: q.ab + o.ab, ac: q.ac + o.ac,
		b2: q.b2 + o.b2, bc: q.bc + o.bc, c2: q.c2 + o.c2,
	}
}

// evaluate returns pᵀQp + 2*linear·p + c2 for point p, the quadric error
// at that position.
func (q quadric) evaluate(p geom.Point) float64 {
	return p.X*p.X*q.a2 + 2*p.X*p.Y*q.ab + 2*p.X*q.ac +
		p.Y*p.Y*q.b2 + 2*p.Y*q.bc + q.c2
}

// optimize solves the 2x2 linear system for the position minimizing this
// quadric's error, falling back to fallback when the system is singular.
func (q quadric) optimize(fallback geom.Point) geom.Point {
	det := q.a2*q.b2 - q.ab*q.ab
	if det < 1e-12 && det > -1e-12 {
		return fallback
	}
	x := (q.ab*q.bc - q.b2*q.ac) / det
	y := (q.ab*q.ac - q.a2*q.bc) / det
	return geom.Pt(x, y)
}

type edge struct {
	v1, v2   int // vertex indices into the working point slice
	prev     int // index of previous edge in the ring (edge index space)
	next     int
	removed  bool
	quadric  quadric
	optPoint geom.Point
	cost     float64
}

// minimumLen is the fewest vertices a simplification result may be
// reduced to: 4 for closed polygons (so the shape remains non-degenerate)
// and 2 for open polylines.
func minimumLen(isCyclic bool) int {
	if isCyclic {
		return 4
	}
	return 2
}

// Simplify collapses edges of p until either no further collapse stays
// within threshold or the polygon reaches its minimum length.
func Simplify(p Polygon, threshold float64) Polygon {
	isCyclic := len(p) > 0 && p[0] == p[len(p)-1]
	pts := []geom.Point(p)
	n := len(pts)
	if isCyclic {
		n--
		pts = pts[:n]
	}
	if n <= minimumLen(isCyclic) {
		return p
	}

	vertexQuadric := make([]quadric, n)
	numEdges := n
	if !isCyclic {
		numEdges = n - 1
	}
	edges := make([]edge, numEdges)

	for i := 0; i < numEdges; i++ {
		j := (i + 1) % n
		a, b := pts[i], pts[j]
		dir := b.Sub(a)
		length := dir.Length()
		var nrm geom.Point
		if length > geom.Eps {
			nrm = geom.Pt(-dir.Y/length, dir.X/length)
		}
		d := -a.Dot(nrm)
		q := quadricFromPlane(nrm.X, nrm.Y, d)
		vertexQuadric[i] = vertexQuadric[i].add(q)
		vertexQuadric[j] = vertexQuadric[j].add(q)
	}

	for i := range edges {
		j := (i + 1) % numEdges
		if !isCyclic {
			j = i + 1
		}
		prev := i - 1
		if prev < 0 {
			prev = numEdges - 1
		}
		if !isCyclic {
			if i == 0 {
				prev = -1
			}
			if i == numEdges-1 {
				j = -1
			}
		}
		edges[i] = edge{v1: i, v2: (i + 1) % n, prev: prev, next: j}
	}

	h := heap.New(func(a, b float64) bool { return a < b })
	handles := make([]heap.Handle, numEdges)

	recost := func(ei int) {
		e := &edges[ei]
		if e.removed {
			return
		}
		q := vertexQuadric[e.v1].add(vertexQuadric[e.v2])
		fallback := pts[e.v1].Mid(pts[e.v2])
		e.optPoint = q.optimize(fallback)
		e.cost = q.evaluate(e.optPoint)
	}

	inserted := make([]bool, numEdges)
	for i := range edges {
		recost(i)
		handles[i] = h.Insert(edges[i].cost, i)
		inserted[i] = true
	}

	remaining := n
	for remaining > minimumLen(isCyclic) {
		key, val, hnd, ok := h.Peek()
		if !ok || key > threshold*threshold {
			break
		}
		ei := val.(int)
		e := &edges[ei]
		if e.removed {
			h.Remove(hnd)
			inserted[ei] = false
			continue
		}
		if e.next < 0 || e.prev < 0 {
			// Edge at an open polyline's end has no collapse partner
			// that keeps both endpoints fixed; skip it permanently.
			h.Remove(hnd)
			inserted[ei] = false
			e.cost = 1e300
			continue
		}

		// Collapse edge ei: merge v2 into v1's slot at the optimized
		// position, remove the edge, and relink its neighbors.
		pts[e.v1] = e.optPoint
		vertexQuadric[e.v1] = vertexQuadric[e.v1].add(vertexQuadric[e.v2])

		next := &edges[e.next]
		next.v1 = e.v1

		h.Remove(hnd)
		inserted[ei] = false
		e.removed = true
		remaining--

		prevIdx := e.prev
		edges[prevIdx].next = e.next
		next.prev = prevIdx

		if inserted[prevIdx] {
			recost(prevIdx)
			h.Update(handles[prevIdx], edges[prevIdx].cost)
		}
		if inserted[e.next] {
			recost(e.next)
			h.Update(handles[e.next], next.cost)
		}
	}

	// Compact surviving vertices by walking the remaining ring starting
	// from any non-removed edge.
	start := -1
	for i := range edges {
		if !edges[i].removed {
			start = i
			break
		}
	}
	if start == -1 {
		return p
	}

	var out Polygon
	seen := make(map[int]bool)
	i := start
	for {
		if !seen[edges[i].v1] {
			out = append(out, pts[edges[i].v1])
			seen[edges[i].v1] = true
		}
		if edges[i].next < 0 {
			out = append(out, pts[edges[i].v2])
			break
		}
		i = edges[i].next
		if i == start {
			break
		}
	}
	if isCyclic {
		out = append(out, out[0])
	}
	return out
}

// SimplifyAll applies Simplify to every polygon in polys.
func SimplifyAll(polys []Polygon, threshold float64) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = Simplify(p, threshold)
	}
	return out
}
