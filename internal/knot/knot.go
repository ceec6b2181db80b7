// Package knot implements the incremental curve-fitting engine: given a
// dense polygon, it builds a ring (or chain, for open polylines) of knots
// — candidate curve endpoints — and removes knots that can be dropped
// without the resulting cubic fit exceeding an error budget, then
// promotes sharp tangent changes to corners, then makes a final
// combined refit/remove pass. The survivors, walked in order, are the
// control-point triples handed to the SVG writer.
package knot

import (
	"math"

	"github.com/gogpu/vtrace/internal/fit"
	"github.com/gogpu/vtrace/internal/geom"
	"github.com/gogpu/vtrace/internal/heap"
)

// CornerScale multiplies the error threshold to get the looser tolerance
// a proposed corner split's two sub-fits are validated against: a corner
// is allowed to carry more error than a smooth span would, since it
// exists to preserve a sharp feature rather than to minimize error.
const CornerScale = 2.0

// Knot is one candidate or surviving curve endpoint.
type Knot struct {
	next, prev int
	pos        geom.Point
	tanIn      geom.Point
	tanOut     geom.Point
	isCorner   bool
	noRemove   bool
	removed    bool
}

// Result is one output cubic segment between two surviving knots.
type Result struct {
	HandleIn  geom.Point
	Pos       geom.Point
	HandleOut geom.Point
}

// Options configures the fitting engine.
type Options struct {
	ErrorThreshold  float64
	CornerThreshold float64
	Exhaustive      bool
}

// Fit runs the three-phase knot engine over points (a dense polygon; if
// points[0] == points[len-1] the curve is treated as cyclic) and returns
// the surviving knots as [handleIn, pos, handleOut] triples in order.
func Fit(points []geom.Point, opts Options) []Result {
	isCyclic := len(points) > 1 && points[0] == points[len(points)-1]
	pts := points
	if isCyclic {
		pts = points[:len(points)-1]
	}
	n := len(pts)
	if n < 2 {
		return nil
	}

	knots := make([]Knot, n)
	for i := range knots {
		knots[i].pos = pts[i]
		knots[i].next = (i + 1) % n
		knots[i].prev = (i - 1 + n) % n
		tan := tangentAt(pts, i, n, isCyclic)
		knots[i].tanIn = tan
		knots[i].tanOut = tan
	}
	if !isCyclic {
		knots[0].noRemove = true
		knots[n-1].noRemove = true
		knots[0].prev = -1
		knots[n-1].next = -1
	}

	e := &engine{pts: pts, knots: knots, opts: opts, isCyclic: isCyclic}
	e.phaseRemove()
	e.phaseCorner()
	e.phaseRefitRemove()

	return e.walk()
}

func tangentAt(pts []geom.Point, i, n int, isCyclic bool) geom.Point {
	var prev, next geom.Point
	havePrev, haveNext := false, false
	if isCyclic || i > 0 {
		prev = pts[(i-1+n)%n]
		havePrev = true
	}
	if isCyclic || i < n-1 {
		next = pts[(i+1)%n]
		haveNext = true
	}
	switch {
	case havePrev && haveNext:
		return next.Sub(prev).Normalize()
	case haveNext:
		return next.Sub(pts[i]).Normalize()
	case havePrev:
		return pts[i].Sub(prev).Normalize()
	default:
		return geom.Point{}
	}
}

// engine holds the mutable state threaded through all three phases.
type engine struct {
	pts      []geom.Point
	knots    []Knot
	opts     Options
	isCyclic bool
}

func (e *engine) errThresholdSq() float64 {
	return e.opts.ErrorThreshold * e.opts.ErrorThreshold
}

// span returns the point run from knot a to knot b inclusive, walking
// forward through e.pts using the original dense index range. Because
// knot indices are original polygon indices, this is a contiguous slice
// of e.pts when b >= a; when the span wraps past the end of a cyclic
// ring, it returns a copy joining the tail of e.pts to its head.
func (e *engine) span(a, b int) []geom.Point {
	n := len(e.pts)
	if b >= a {
		return e.pts[a : b+1]
	}
	// wraps around; build an explicit copy
	out := make([]geom.Point, 0, n-a+b+1)
	out = append(out, e.pts[a:]...)
	out = append(out, e.pts[:b+1]...)
	return out
}

func (e *engine) fitBetween(a, b int) (fit.Cubic, fit.Error) {
	return e.fitSpan(a, b, e.knots[a].tanOut, e.knots[b].tanIn)
}

// fitSpan is fitBetween but with the two endpoint tangents passed in
// explicitly, for candidates that aren't committed knot tangents yet
// (a proposed corner split, a proposed refit slot).
func (e *engine) fitSpan(a, b int, tanOutA, tanInB geom.Point) (fit.Cubic, fit.Error) {
	pts := e.span(a, b)
	return fit.Fit(pts, tanOutA, tanInB)
}

// phaseRemove greedily removes whichever live knot contributes the
// smallest increase in fit error, using a min-heap keyed on that knot's
// "cost to remove", until no further removal stays within threshold.
func (e *engine) phaseRemove() {
	h := heap.New(func(a, b float64) bool { return a < b })
	handles := make(map[int]heap.Handle)

	cost := func(i int) (float64, bool) {
		k := &e.knots[i]
		if k.removed || k.noRemove {
			return 0, false
		}
		if k.prev < 0 || k.next < 0 || k.prev == k.next {
			// prev == next: only two knots are left in the ring.
			return 0, false
		}
		_, err := e.fitBetween(k.prev, k.next)
		return err.MaxSq, true
	}

	for i := range e.knots {
		if c, ok := cost(i); ok {
			handles[i] = h.Insert(c, i)
		}
	}

	thresholdSq := e.errThresholdSq()
	for h.Len() > 0 {
		key, val, hnd, ok := h.Peek()
		if !ok || key > thresholdSq {
			break
		}
		i := val.(int)
		h.Remove(hnd)
		delete(handles, i)

		k := &e.knots[i]
		if k.removed || k.noRemove {
			continue
		}
		// Re-validate: neighbors may have changed since insertion.
		c, ok2 := cost(i)
		if !ok2 {
			continue
		}
		if c > thresholdSq {
			continue
		}
		e.removeKnot(i)

		for _, nb := range []int{e.knots[i].prev, e.knots[i].next} {
			if nb < 0 {
				continue
			}
			if c2, ok3 := cost(nb); ok3 {
				if old, present := handles[nb]; present {
					h.Update(old, c2)
				} else {
					handles[nb] = h.Insert(c2, nb)
				}
			}
		}
	}
}

func (e *engine) removeKnot(i int) {
	k := &e.knots[i]
	k.removed = true
	if k.prev >= 0 {
		e.knots[k.prev].next = k.next
	}
	if k.next >= 0 {
		e.knots[k.next].prev = k.prev
	}
}

// cornerCandidate is a proposed corner insertion between two currently
// adjacent live knots: splitting the span at split and giving it two
// independent tangent halves fits both sub-spans at least as well as the
// collapse tolerance allows.
type cornerCandidate struct {
	prev, split, next int
	tanIn, tanOut     geom.Point
	errPrev, errNext  float64
}

// proposeCorner looks for a split point on the span between two adjacent
// live knots, grounded on knot_find_split_point_on_axis: the plane normal
// is the difference between the next knot's incoming tangent and the
// prev knot's outgoing tangent (zero if they already agree, meaning
// there is no divergence to split), and the split candidate is whichever
// interior point deviates furthest from the prev-anchored plane along
// that normal. The two sub-fits that would result from inserting it
// there must both land within (error_threshold*CornerScale)^2 — a looser
// tolerance than the main removal threshold, since a corner candidate is
// allowed to carry more error than a smooth span would.
func (e *engine) proposeCorner(prev, next int, thresholdCos, collapseMaxSq float64) (cornerCandidate, bool) {
	kp, kn := &e.knots[prev], &e.knots[next]
	if kp.tanOut.Dot(kn.tanIn) >= thresholdCos {
		// Tangents haven't diverged past CornerThreshold: too smooth to
		// be worth splitting.
		return cornerCandidate{}, false
	}
	normal := kn.tanIn.Sub(kp.tanOut)
	if normal.IsAlmostZero() {
		return cornerCandidate{}, false
	}
	normal = normal.Normalize()

	span := e.spanIndices(prev, next)
	if len(span) < 3 {
		return cornerCandidate{}, false
	}
	origin := kp.pos
	split, bestDist := -1, 0.0
	for _, idx := range span[1 : len(span)-1] {
		d := math.Abs(e.pts[idx].Sub(origin).Dot(normal))
		if d > bestDist {
			bestDist, split = d, idx
		}
	}
	if split < 0 {
		return cornerCandidate{}, false
	}

	_, errA := e.fitSpan(prev, split, kp.tanOut, kp.tanOut)
	_, errB := e.fitSpan(split, next, kn.tanIn, kn.tanIn)
	if errA.MaxSq > collapseMaxSq || errB.MaxSq > collapseMaxSq {
		return cornerCandidate{}, false
	}
	return cornerCandidate{prev: prev, split: split, next: next, tanIn: kp.tanOut, tanOut: kn.tanIn, errPrev: errA.MaxSq, errNext: errB.MaxSq}, true
}

// phaseCorner makes a single heap-driven pass proposing a corner
// insertion for every pair of adjacent live knots whose tangents have
// diverged, ordered by the worse of the two resulting sub-fit errors
// (smallest first, so the corners whose sub-fits fit best are inserted
// first), and on each
// pop actually inserts the split point as a permanent two-tangent corner
// knot — reviving whichever knot slot proposeCorner picked, since a
// removed slot still holds its original, never-freed position.
func (e *engine) phaseCorner() {
	thresholdCos := math.Cos(e.opts.CornerThreshold)
	collapseMaxSq := e.errThresholdSq() * CornerScale * CornerScale

	h := heap.New(func(a, b float64) bool { return a < b })
	for i := range e.knots {
		k := &e.knots[i]
		if k.removed || k.next < 0 {
			continue
		}
		if c, ok := e.proposeCorner(i, k.next, thresholdCos, collapseMaxSq); ok {
			h.Insert(math.Max(c.errPrev, c.errNext), c)
		}
	}

	for h.Len() > 0 {
		_, val, _, ok := h.PopMin()
		if !ok {
			break
		}
		c := val.(cornerCandidate)
		pk, nk := &e.knots[c.prev], &e.knots[c.next]
		if pk.removed || nk.removed || pk.next != c.next || nk.prev != c.prev {
			// Stale: one of the two knots this candidate bridged has
			// since been touched by an earlier pop.
			continue
		}

		sk := &e.knots[c.split]
		sk.removed = false
		sk.noRemove = true
		sk.isCorner = true
		sk.tanIn, sk.tanOut = c.tanIn, c.tanOut
		sk.prev, sk.next = c.prev, c.next
		pk.next = c.split
		nk.prev = c.split
	}
}

// refitCandidate is a proposed action for mid's live span (prev, next):
// either a free removal (the bypass fit already stays under threshold)
// or a re-anchor to a different interior slot that strictly improves the
// worst-case sub-fit error.
type refitCandidate struct {
	mid         int
	remove      bool
	slot        int
	improvement float64
}

// bestRefitSlot searches the span (prev, next) for an interior knot slot
// to re-anchor mid at, scoring each candidate by the worse of its two
// sub-fit errors. Candidate slots are the original-polygon knot indices
// strictly between prev and next, excluding mid's own slot — re-anchoring
// a knot to the position it already occupies is not a refit, it is a
// no-op, and must never be proposed as one (the span's worst-fit point is
// a fixed geometric property of a span that hasn't changed, so counting
// it as progress is what makes the pass never converge). With Exhaustive
// set every interior point of the span is tried; otherwise only the
// current worst-fit point is, matching the reference engine's default.
func (e *engine) bestRefitSlot(prev, mid, next int, curErr fit.Error, thresholdSq float64) (int, float64) {
	span := e.spanIndices(prev, next)
	if len(span) <= 2 {
		return -1, math.Inf(1)
	}
	candidates := span[1 : len(span)-1]
	if !e.opts.Exhaustive {
		idx := curErr.Index
		if idx < 0 || idx >= len(span) {
			return -1, math.Inf(1)
		}
		candidates = []int{span[idx]}
	}

	bestScore := math.Inf(1)
	bestSlot := -1
	for _, c := range candidates {
		if c == prev || c == next || c == mid {
			continue
		}
		tan := tangentAt(e.pts, c, len(e.pts), e.isCyclic)
		_, errA := e.fitSpan(prev, c, e.knots[prev].tanOut, tan)
		_, errB := e.fitSpan(c, next, tan, e.knots[next].tanIn)
		if errA.MaxSq > thresholdSq || errB.MaxSq > thresholdSq {
			continue
		}
		score := math.Max(errA.MaxSq, errB.MaxSq)
		if score < bestScore {
			bestScore, bestSlot = score, c
		}
	}
	return bestSlot, bestScore
}

// recalcRefit computes the current best action for knot i, or reports
// false if i has nothing left to propose (already removed, pinned, an
// open-curve endpoint, or no removal/refit clears the bar).
func (e *engine) recalcRefit(i int, thresholdSq float64) (refitCandidate, bool) {
	k := &e.knots[i]
	if k.removed || k.noRemove || k.prev < 0 || k.next < 0 || k.prev == k.next {
		return refitCandidate{}, false
	}
	prev, next := k.prev, k.next
	_, curErr := e.fitBetween(prev, next)
	if curErr.MaxSq <= thresholdSq {
		return refitCandidate{mid: i, remove: true}, true
	}

	slot, score := e.bestRefitSlot(prev, i, next, curErr, thresholdSq)
	improvement := curErr.MaxSq - score
	if slot < 0 || improvement <= 0 {
		return refitCandidate{}, false
	}
	return refitCandidate{mid: i, slot: slot, improvement: improvement}, true
}

// applyRefit relinks the ring so slot takes over mid's place between
// prev and next, matching slot's position to its own tangent rather than
// the one mid used to have there.
func (e *engine) applyRefit(prev, mid, next, slot int) {
	e.knots[mid].removed = true
	sk := &e.knots[slot]
	sk.removed = false
	sk.noRemove = false
	sk.prev, sk.next = prev, next
	tan := tangentAt(e.pts, slot, len(e.pts), e.isCyclic)
	sk.tanIn, sk.tanOut = tan, tan
	e.knots[prev].next = slot
	e.knots[next].prev = slot
}

// phaseRefitRemove makes a single heap-driven worklist pass over every
// live, removable knot: a free removal (bypassing it stays under budget)
// is always preferred over a re-anchor, matching USE_REFIT_REMOVE in the
// reference engine (see spec.md §9 — do not invert this preference), so
// removal candidates carry a key below any possible refit improvement.
// Refit candidates are ordered by descending improvement (most negative
// key first) so the most impactful re-anchors apply before smaller ones
// need to be recomputed against a changed neighbor. Popping a candidate
// recalculates only the two knots whose span just changed — never a
// fixpoint rescan of every knot — and a stale pop (topology moved since
// the candidate was queued) is recomputed and requeued rather than
// applied, so nothing is ever double-applied or applied out of date.
func (e *engine) phaseRefitRemove() {
	thresholdSq := e.errThresholdSq()
	h := heap.New(func(a, b float64) bool { return a < b })
	handles := make(map[int]heap.Handle)

	keyFor := func(c refitCandidate) float64 {
		if c.remove {
			return -math.MaxFloat64 / 2
		}
		return -c.improvement
	}

	set := func(i int) {
		if old, ok := handles[i]; ok {
			h.Remove(old)
			delete(handles, i)
		}
		c, ok := e.recalcRefit(i, thresholdSq)
		if !ok {
			return
		}
		handles[i] = h.Insert(keyFor(c), c)
	}

	for i := range e.knots {
		set(i)
	}

	for h.Len() > 0 {
		_, val, hnd, ok := h.Peek()
		if !ok {
			break
		}
		c := val.(refitCandidate)
		i := c.mid
		h.Remove(hnd)
		delete(handles, i)

		fresh, ok := e.recalcRefit(i, thresholdSq)
		if !ok {
			continue
		}
		if fresh.remove != c.remove || fresh.slot != c.slot {
			handles[i] = h.Insert(keyFor(fresh), fresh)
			continue
		}

		k := &e.knots[i]
		prev, next := k.prev, k.next
		if c.remove {
			e.removeKnot(i)
		} else {
			e.applyRefit(prev, i, next, c.slot)
		}

		set(prev)
		set(next)
	}
}

// spanIndices returns the original-polygon indices from a to b inclusive,
// walking forward and, for cyclic curves, wrapping from the last index
// back to 0.
func (e *engine) spanIndices(a, b int) []int {
	n := len(e.pts)
	if b >= a {
		out := make([]int, 0, b-a+1)
		for i := a; i <= b; i++ {
			out = append(out, i)
		}
		return out
	}
	out := make([]int, 0, n-a+b+1)
	for i := a; i < n; i++ {
		out = append(out, i)
	}
	for i := 0; i <= b; i++ {
		out = append(out, i)
	}
	return out
}

// walk returns the surviving knots in ring order as curve-fit triples.
func (e *engine) walk() []Result {
	start := -1
	for i := range e.knots {
		if !e.knots[i].removed {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	var out []Result
	i := start
	for {
		k := &e.knots[i]
		res := Result{Pos: k.pos, HandleIn: k.pos, HandleOut: k.pos}
		if k.prev >= 0 {
			c, _ := e.fitBetween(k.prev, i)
			res.HandleIn = c.P2
		}
		if k.next >= 0 {
			c, _ := e.fitBetween(i, k.next)
			res.HandleOut = c.P1
		}
		out = append(out, res)
		if k.next < 0 {
			break
		}
		i = k.next
		if i == start {
			break
		}
	}
	return out
}
