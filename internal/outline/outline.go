// Package outline extracts closed boundary polygons from a monochrome
// bitmap by walking the corner lattice between foreground and background
// pixels.
package outline

import "github.com/gogpu/vtrace/internal/geom"

// TurnPolicy resolves the ambiguous 2x2 checkerboard case (diagonally
// opposite foreground pixels meeting at one corner) during boundary
// tracing.
type TurnPolicy int

const (
	// TurnBlack always turns toward the side with foreground pixels.
	TurnBlack TurnPolicy = iota
	// TurnWhite always turns toward the side with background pixels.
	TurnWhite
	// TurnMajority turns toward whichever side has more foreground
	// pixels in a surrounding ring, breaking ties toward white.
	TurnMajority
	// TurnMinority turns toward whichever side has fewer foreground
	// pixels in a surrounding ring, breaking ties toward black.
	TurnMinority
)

// direction bits stamped on each lattice corner, indicating which edge
// directions are still unconsumed boundary steps.
const (
	dirL = 1 << iota
	dirR
	dirD
	dirU
)

// Bitmap is the minimal foreground/background query surface the
// extractor needs.
type Bitmap interface {
	Width() int
	Height() int
	At(x, y int) bool
}

// Polygon is a closed sequence of integer lattice corners, in winding
// order, with the first point repeated as the last element.
type Polygon []geom.Point

// Extract walks every boundary in bm and returns one closed polygon per
// boundary loop (both outer silhouettes and holes).
func Extract(bm Bitmap, policy TurnPolicy) []Polygon {
	w, h := bm.Width(), bm.Height()
	lw := w + 1
	lh := h + 1

	dirs := make([]uint8, lw*lh)
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return bm.At(x, y)
	}

	// Stamp a boundary edge at every corner adjacent to a foreground
	// pixel whose neighbor across that edge is background.
	stepsTotal := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !at(x, y) {
				continue
			}
			// Edges of pixel (x,y), corners (x,y)..(x+1,y+1).
			if !at(x, y-1) { // top edge: corner (x,y) -> (x+1,y), direction R
				dirs[y*lw+x] |= dirR
				stepsTotal++
			}
			if !at(x+1, y) { // right edge: (x+1,y) -> (x+1,y+1), direction D
				dirs[y*lw+x+1] |= dirD
				stepsTotal++
			}
			if !at(x, y+1) { // bottom edge: (x+1,y+1) -> (x,y+1), direction L
				dirs[(y+1)*lw+x+1] |= dirL
				stepsTotal++
			}
			if !at(x-1, y) { // left edge: (x,y+1) -> (x,y), direction U
				dirs[(y+1)*lw+x] |= dirU
				stepsTotal++
			}
		}
	}

	isMajority := func(x, y int) bool {
		for radius := 2; radius <= 4; radius++ {
			blacks, whites := 0, 0
			for dy := -radius + 1; dy <= radius; dy++ {
				for dx := -radius + 1; dx <= radius; dx++ {
					if dx*dx+dy*dy > radius*radius {
						continue
					}
					if at(x+dx, y+dy) {
						blacks++
					} else {
						whites++
					}
				}
			}
			if blacks != whites {
				return blacks > whites
			}
		}
		return false
	}

	var polys []Polygon
	stepsHandled := 0

	for cy := 0; cy < lh && stepsHandled < stepsTotal; cy++ {
		for cx := 0; cx < lw && stepsHandled < stepsTotal; cx++ {
			if dirs[cy*lw+cx]&dirU == 0 {
				continue
			}
			poly, consumed := traceFromCorner(dirs, lw, lh, cx, cy, at, isMajority, policy)
			if len(poly) >= 3 {
				polys = append(polys, poly)
			}
			stepsHandled += consumed
		}
	}
	return polys
}

func traceFromCorner(
	dirs []uint8, lw, lh, startX, startY int,
	at func(x, y int) bool,
	isMajority func(x, y int) bool,
	policy TurnPolicy,
) (Polygon, int) {
	x, y := startX, startY
	dir := uint8(dirU)
	firstDir := uint8(0)
	var poly Polygon
	consumed := 0

	for {
		poly = append(poly, geom.Pt(float64(x), float64(y)))
		avail := dirs[y*lw+x]
		avail &^= reverse(dir)

		next := chooseDir(avail, dir, x, y, at, isMajority, policy)
		if next == 0 {
			break
		}
		if firstDir == 0 {
			firstDir = next
		} else if next == dir {
			// (x,y) lies inside a straight run: merge it away.
			poly = poly[:len(poly)-1]
		}
		dirs[y*lw+x] &^= next
		consumed++

		switch next {
		case dirL:
			x--
		case dirR:
			x++
		case dirD:
			y++
		case dirU:
			y--
		}
		dir = next
		if x == startX && y == startY {
			break
		}
	}
	if x == startX && y == startY && dir == firstDir && len(poly) > 1 {
		// The start corner is itself inside a straight run.
		poly = poly[1:]
	}
	if len(poly) > 0 {
		poly = append(poly, poly[0])
	}
	return poly, consumed
}

func reverse(dir uint8) uint8 {
	switch dir {
	case dirL:
		return dirR
	case dirR:
		return dirL
	case dirU:
		return dirD
	case dirD:
		return dirU
	}
	return 0
}

// chooseDir resolves which of the (up to 3) remaining directions to step
// in next, preferring a straight continuation, then applying the turn
// policy when the corner is ambiguous (diagonal checkerboard).
func chooseDir(
	avail uint8, from uint8, x, y int,
	at func(x, y int) bool,
	isMajority func(x, y int) bool,
	policy TurnPolicy,
) uint8 {
	// Prefer continuing straight, then turning right, then left — the
	// standard boundary-following priority order.
	priority := straightTurnOrder(from)
	var candidates []uint8
	for _, d := range priority {
		if avail&d != 0 {
			candidates = append(candidates, d)
		}
	}
	if len(candidates) == 0 {
		return 0
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	// Ambiguous checkerboard corner: resolve via turn policy.
	switch policy {
	case TurnBlack:
		return candidates[0]
	case TurnWhite:
		return candidates[len(candidates)-1]
	case TurnMajority:
		if isMajority(x, y) {
			return candidates[0]
		}
		return candidates[len(candidates)-1]
	case TurnMinority:
		if isMajority(x, y) {
			return candidates[len(candidates)-1]
		}
		return candidates[0]
	}
	return candidates[0]
}

func straightTurnOrder(from uint8) [3]uint8 {
	switch from {
	case dirR:
		return [3]uint8{dirR, dirU, dirD}
	case dirL:
		return [3]uint8{dirL, dirD, dirU}
	case dirU:
		return [3]uint8{dirU, dirL, dirR}
	case dirD:
		return [3]uint8{dirD, dirR, dirL}
	}
	return [3]uint8{dirR, dirU, dirD}
}
