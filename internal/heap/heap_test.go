package heap

import "testing"

func lessFloat(a, b float64) bool { return a < b }

func TestHeapInsertPopMinOrder(t *testing.T) {
	h := New(lessFloat)
	values := []float64{5, 3, 8, 1, 9, 2}
	for _, v := range values {
		h.Insert(v, v)
	}
	want := []float64{1, 2, 3, 5, 8, 9}
	for _, w := range want {
		k, _, _, ok := h.PopMin()
		if !ok {
			t.Fatalf("expected a value, heap empty early")
		}
		if k != w {
			t.Errorf("PopMin = %v, want %v", k, w)
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHeapHandleStableAcrossOtherRemovals(t *testing.T) {
	h := New(lessFloat)
	ha := h.Insert(10, "a")
	hb := h.Insert(20, "b")
	hc := h.Insert(5, "c")

	h.Remove(hc)

	if h.Value(ha) != "a" {
		t.Errorf("handle a value = %v, want a", h.Value(ha))
	}
	if h.Value(hb) != "b" {
		t.Errorf("handle b value = %v, want b", h.Value(hb))
	}
}

func TestHeapUpdateReorders(t *testing.T) {
	h := New(lessFloat)
	ha := h.Insert(10, "a")
	h.Insert(20, "b")

	h.Update(ha, 30)

	k, v, _, ok := h.PopMin()
	if !ok || v != "b" || k != 20 {
		t.Errorf("PopMin after update = (%v,%v), want (20,b)", k, v)
	}
}

func TestHeapPeekDoesNotRemove(t *testing.T) {
	h := New(lessFloat)
	h.Insert(1, "only")
	_, _, _, ok := h.Peek()
	if !ok {
		t.Fatal("Peek on non-empty heap should succeed")
	}
	if h.Len() != 1 {
		t.Errorf("Len() after Peek = %d, want 1", h.Len())
	}
}

func TestHeapEmptyPop(t *testing.T) {
	h := New(lessFloat)
	_, _, _, ok := h.PopMin()
	if ok {
		t.Error("PopMin on empty heap should report ok=false")
	}
}

func TestHeapReuseFreedSlot(t *testing.T) {
	h := New(lessFloat)
	ha := h.Insert(1, "a")
	h.Remove(ha)
	hb := h.Insert(2, "b")
	if h.Value(hb) != "b" {
		t.Errorf("Value(hb) = %v, want b", h.Value(hb))
	}
}
