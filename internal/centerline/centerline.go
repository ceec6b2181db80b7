// Package centerline extracts single-pixel-wide skeleton polylines from a
// monochrome bitmap that has already been thinned (see the root package's
// Skeletonize). Unlike outline extraction, the result may contain open
// polylines (dangling skeleton branches) as well as closed loops.
package centerline

import "github.com/gogpu/vtrace/internal/geom"

// direction bits from a foreground pixel toward each of its 8 neighbors.
const (
	dirL = 1 << iota
	dirR
	dirD
	dirU
	dirLD
	dirLU
	dirRD
	dirRU
)

// Bitmap is the minimal foreground/background query surface the
// extractor needs.
type Bitmap interface {
	Width() int
	Height() int
	At(x, y int) bool
}

// Polyline is a sequence of pixel-center points. Closed polylines repeat
// their first point as their last; open polylines (dangling branches) do
// not.
type Polyline []geom.Point

// Extract walks every skeleton branch in bm and returns one polyline per
// branch or loop.
func Extract(bm Bitmap) []Polyline {
	w, h := bm.Width(), bm.Height()
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return bm.At(x, y)
	}

	dirs := make([]uint8, w*h)
	idx := func(x, y int) int { return y*w + x }
	center := func(x, y int) geom.Point { return geom.Pt(float64(x)+0.5, float64(y)+0.5) }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !at(x, y) {
				continue
			}
			var d uint8
			r, l, u, down := at(x+1, y), at(x-1, y), at(x, y-1), at(x, y+1)
			if r {
				d |= dirR
			}
			if l {
				d |= dirL
			}
			if u {
				d |= dirU
			}
			if down {
				d |= dirD
			}
			// Diagonal links are only recorded when no orthogonal link
			// already connects the same pair of pixels, avoiding
			// redundant short-circuit diagonals across an existing
			// orthogonal path.
			if at(x+1, y+1) && !r && !down {
				d |= dirRD
			}
			if at(x+1, y-1) && !r && !u {
				d |= dirRU
			}
			if at(x-1, y+1) && !l && !down {
				d |= dirLD
			}
			if at(x-1, y-1) && !l && !u {
				d |= dirLU
			}
			dirs[idx(x, y)] = d
		}
	}

	neighborCount := func(d uint8) int {
		n := 0
		for _, bit := range []uint8{dirL, dirR, dirD, dirU, dirLD, dirLU, dirRD, dirRU} {
			if d&bit != 0 {
				n++
			}
		}
		return n
	}

	isJunction := func(x, y int) bool {
		return neighborCount(dirs[idx(x, y)]) >= 3
	}

	var lines []Polyline
	visited := make([]bool, w*h)

	consumeEdge := func(x1, y1, x2, y2 int) {
		b1 := bitFor(x2-x1, y2-y1)
		b2 := bitFor(x1-x2, y1-y2)
		dirs[idx(x1, y1)] &^= b1
		dirs[idx(x2, y2)] &^= b2
	}

	walkFrom := func(sx, sy int) Polyline {
		var line Polyline
		x, y := sx, sy
		line = append(line, center(x, y))
		visited[idx(x, y)] = true
		for {
			if isJunction(x, y) {
				break
			}
			d := dirs[idx(x, y)]
			nx, ny, _, ok := firstNeighbor(d, x, y)
			if !ok {
				break
			}
			consumeEdge(x, y, nx, ny)
			x, y = nx, ny
			line = append(line, center(x, y))
			if x == sx && y == sy {
				break
			}
			if isJunction(x, y) {
				break
			}
			visited[idx(x, y)] = true
		}
		return line
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !at(x, y) || isJunction(x, y) || visited[idx(x, y)] {
				continue
			}
			if neighborCount(dirs[idx(x, y)]) == 0 {
				// isolated pixel
				lines = append(lines, Polyline{center(x, y)})
				continue
			}
			forward := walkFrom(x, y)
			if len(forward) < 2 {
				continue
			}
			if forward[len(forward)-1] == center(x, y) {
				// closed loop
				lines = append(lines, forward)
				continue
			}
			// Open branch: extend backward from the start too, then
			// reverse-concatenate so the whole branch is one polyline,
			// matching the bidirectional walk-then-reverse-extend
			// behaviour of the reference centerline tracer.
			backward := walkFrom(x, y)
			full := make(Polyline, 0, len(backward)+len(forward)-1)
			for i := len(backward) - 1; i >= 1; i-- {
				full = append(full, backward[i])
			}
			full = append(full, forward...)
			lines = append(lines, full)
		}
	}
	return lines
}

func bitFor(dx, dy int) uint8 {
	switch {
	case dx == 1 && dy == 0:
		return dirR
	case dx == -1 && dy == 0:
		return dirL
	case dx == 0 && dy == 1:
		return dirD
	case dx == 0 && dy == -1:
		return dirU
	case dx == 1 && dy == 1:
		return dirRD
	case dx == 1 && dy == -1:
		return dirRU
	case dx == -1 && dy == 1:
		return dirLD
	case dx == -1 && dy == -1:
		return dirLU
	}
	return 0
}

var stepOrder = []struct {
	bit    uint8
	dx, dy int
}{
	{dirR, 1, 0}, {dirL, -1, 0}, {dirD, 0, 1}, {dirU, 0, -1},
	{dirRD, 1, 1}, {dirRU, 1, -1}, {dirLD, -1, 1}, {dirLU, -1, -1},
}

// firstNeighbor picks the next step, preferring orthogonal over diagonal
// moves, matching the reference tracer's priority order.
func firstNeighbor(d uint8, x, y int) (nx, ny int, bit uint8, ok bool) {
	for _, s := range stepOrder {
		if d&s.bit != 0 {
			return x + s.dx, y + s.dy, s.bit, true
		}
	}
	return 0, 0, 0, false
}
