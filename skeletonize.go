package vtrace

// Skeletonize thins bm's foreground regions to single-pixel-wide
// skeletons using the Zhang-Suen algorithm, a simpler connectivity-
// preserving alternative to the reference implementation's Euler-
// invariant thinning (Lee et al. 1994); either produces a valid input for
// centerline.Extract, and spec.md explicitly permits the substitution.
// Returns a new Bitmap; bm is not modified.
func Skeletonize(bm *Bitmap) *Bitmap {
	cur := bm.Clone()
	for {
		removed1 := thinPass(cur, 1)
		removed2 := thinPass(cur, 2)
		if !removed1 && !removed2 {
			return cur
		}
	}
}

// thinPass runs one Zhang-Suen sub-iteration (step 1 or 2) over cur,
// removing marked pixels in place, and reports whether any pixel changed.
func thinPass(cur *Bitmap, step int) bool {
	w, h := cur.Width(), cur.Height()
	var toClear [][2]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !cur.At(x, y) {
				continue
			}
			p := neighbors(cur, x, y)
			b := countOnes(p)
			if b < 2 || b > 6 {
				continue
			}
			a := countTransitions(p)
			if a != 1 {
				continue
			}
			if step == 1 {
				if p[0]*p[2]*p[4] != 0 {
					continue
				}
				if p[2]*p[4]*p[6] != 0 {
					continue
				}
			} else {
				if p[0]*p[2]*p[6] != 0 {
					continue
				}
				if p[0]*p[4]*p[6] != 0 {
					continue
				}
			}
			toClear = append(toClear, [2]int{x, y})
		}
	}
	for _, xy := range toClear {
		cur.Set(xy[0], xy[1], false)
	}
	return len(toClear) > 0
}

// neighbors returns the 8 neighbors of (x,y) in clockwise order starting
// from north (p0=N, p1=NE, p2=E, p3=SE, p4=S, p5=SW, p6=W, p7=NW), as
// 0/1 ints for the Zhang-Suen formulas.
func neighbors(b *Bitmap, x, y int) [8]int {
	at := func(dx, dy int) int {
		if b.At(x+dx, y+dy) {
			return 1
		}
		return 0
	}
	return [8]int{
		at(0, -1), at(1, -1), at(1, 0), at(1, 1),
		at(0, 1), at(-1, 1), at(-1, 0), at(-1, -1),
	}
}

func countOnes(p [8]int) int {
	n := 0
	for _, v := range p {
		n += v
	}
	return n
}

// countTransitions counts the number of 0->1 transitions in the circular
// sequence p0,p1,...,p7,p0.
func countTransitions(p [8]int) int {
	n := 0
	for i := 0; i < 8; i++ {
		j := (i + 1) % 8
		if p[i] == 0 && p[j] == 1 {
			n++
		}
	}
	return n
}
