// Package parallel runs row bands of CPU image passes on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed pool of goroutines fed from one queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queue   chan func()
	wg      sync.WaitGroup
	running atomic.Bool
	closeMu sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*4),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for work := range p.queue {
		work()
	}
}

// ExecuteAll runs every work item and waits for all of them. After Close
// the items run on the calling goroutine.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.closeMu.RLock()
	defer p.closeMu.RUnlock()

	if !p.running.Load() {
		for _, fn := range work {
			fn()
		}
		return
	}

	var done sync.WaitGroup
	done.Add(len(work))
	for _, fn := range work {
		p.queue <- func() {
			defer done.Done()
			fn()
		}
	}
	done.Wait()
}

// Rows splits [0, height) into one band per worker, at least minRows tall,
// and runs fn on every band in parallel.
func (p *WorkerPool) Rows(height, minRows int, fn func(y0, y1 int)) {
	bands := Bands(height, p.workers, minRows)
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b[0], b[1]) }
	}
	p.ExecuteAll(work)
}

// Close stops the workers after queued work has finished. Close is safe to
// call multiple times.
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()

	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true until Close is called.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Bands splits [0, height) into at most n contiguous [y0, y1) ranges of at
// least minRows rows each (the last may be shorter when height is small).
func Bands(height, n, minRows int) [][2]int {
	if height <= 0 {
		return nil
	}
	if minRows < 1 {
		minRows = 1
	}
	if n < 1 {
		n = 1
	}
	if maxBands := (height + minRows - 1) / minRows; n > maxBands {
		n = maxBands
	}

	bands := make([][2]int, 0, n)
	step, extra := height/n, height%n
	y := 0
	for i := 0; i < n; i++ {
		h := step
		if i < extra {
			h++
		}
		bands = append(bands, [2]int{y, y + h})
		y += h
	}
	return bands
}
