// Package parallel provides a small work-stealing worker pool used to fit
// many independent polygons concurrently: each polygon's knot-fitting run
// touches no shared mutable state, so polygons are simply handed out to
// whichever worker goroutine is free.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted functions across a fixed number of worker
// goroutines, each with its own work queue; an idle worker steals from
// another worker's queue before blocking, matching the reference graphics
// library's internal work-stealing pool.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
	queueSize  int
}

// NewWorkerPool creates a pool with the given number of workers. A
// workers value <= 0 defaults to runtime.GOMAXPROCS(0).
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}
	p := &WorkerPool{
		workers:   workers,
		queueSize: queueSize,
		done:      make(chan struct{}),
	}
	p.workQueues = make([]chan func(), workers)
	for i := range p.workQueues {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	own := p.workQueues[id]
	for {
		select {
		case fn, ok := <-own:
			if !ok {
				return
			}
			fn()
		case <-p.done:
			p.drainQueue(own)
			return
		default:
			if fn, ok := p.steal(id); ok {
				fn()
				continue
			}
			select {
			case fn, ok := <-own:
				if !ok {
					return
				}
				fn()
			case <-p.done:
				p.drainQueue(own)
				return
			}
		}
	}
}

func (p *WorkerPool) steal(myID int) (func(), bool) {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case fn := <-p.workQueues[i]:
			return fn, true
		default:
		}
	}
	return nil, false
}

func (p *WorkerPool) drainQueue(q chan func()) {
	for {
		select {
		case fn := <-q:
			fn()
		default:
			return
		}
	}
}

// ExecuteAll submits every function in work and blocks until all have
// run, distributing them round-robin across worker queues.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		fn := fn
		q := p.workQueues[i%p.workers]
		q <- func() {
			defer wg.Done()
			fn()
		}
	}
	wg.Wait()
}

// ExecuteAsync submits fn to run on some worker without waiting for it to
// complete.
func (p *WorkerPool) ExecuteAsync(fn func()) {
	p.workQueues[0] <- fn
}

// Close stops all workers after their queues drain.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// FitPolygons runs fn(i) for every polygon index, largest polygons first,
// using up to threads workers (0 meaning GOMAXPROCS); results must be
// written by fn into caller-owned storage indexed by i, since fn runs
// concurrently across goroutines with disjoint indices.
func FitPolygons(sizes []int, threads int, fn func(i int)) {
	n := len(sizes)
	if n == 0 {
		return
	}
	if n == 1 {
		fn(0)
		return
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	// Sort ascending by size, then drain from the end (largest first),
	// matching the reference scheduler's load-balancing heuristic: big
	// polygons get started earliest since they take the longest.
	for i := 1; i < n; i++ {
		for j := i; j > 0 && sizes[order[j-1]] > sizes[order[j]]; j-- {
			order[j-1], order[j] = order[j], order[j-1]
		}
	}

	pool := NewWorkerPool(threads)
	defer pool.Close()

	work := make([]func(), n)
	for k := 0; k < n; k++ {
		idx := order[n-1-k]
		work[k] = func() { fn(idx) }
	}
	pool.ExecuteAll(work)
}
