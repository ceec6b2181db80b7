package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestExecuteAllRunsEveryTask(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var n int64
	work := make([]func(), 50)
	for i := range work {
		work[i] = func() { atomic.AddInt64(&n, 1) }
	}
	pool.ExecuteAll(work)

	if got := atomic.LoadInt64(&n); got != int64(len(work)) {
		t.Errorf("ran %d tasks, want %d", got, len(work))
	}
}

func TestExecuteAllEmptyWorkReturnsImmediately(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()
	pool.ExecuteAll(nil)
}

func TestFitPolygonsSingleIsSynchronous(t *testing.T) {
	var ran bool
	FitPolygons([]int{10}, 4, func(i int) {
		if i != 0 {
			t.Errorf("got index %d, want 0", i)
		}
		ran = true
	})
	if !ran {
		t.Error("fn should run synchronously for a single polygon")
	}
}

func TestFitPolygonsVisitsEveryIndex(t *testing.T) {
	sizes := []int{3, 50, 1, 20, 8}
	var mu sync.Mutex
	seen := make([]bool, len(sizes))
	FitPolygons(sizes, 4, func(i int) {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})
	for i, ok := range seen {
		if !ok {
			t.Errorf("index %d never visited", i)
		}
	}
}

func TestFitPolygonsZeroSizesReturnsImmediately(t *testing.T) {
	FitPolygons(nil, 4, func(i int) {
		t.Errorf("fn should not run for an empty size list, got index %d", i)
	})
}
