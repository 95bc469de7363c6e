// Package parallel provides a small bounded worker pool used to run
// independent grammar matches concurrently without spawning one
// goroutine per input.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// ErrPoolShutdown is returned when submitting to a pool that has
// already been shut down.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// Pool is a fixed-size worker pool: maxWorkers goroutines draining one
// shared task channel. Unlike a dynamically-scaling pool, its worker
// count never changes after New, which is the right trade-off for
// BatchMatch: every task is the same shape (run Matches against an
// already-built grammar) and short-lived, so there is nothing to
// measure and scale against.
type Pool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// New creates a pool with maxWorkers goroutines. maxWorkers <= 0 means
// runtime.NumCPU().
func New(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	p := &Pool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		p.workerWg.Add(1)
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	defer p.workerWg.Done()

	for {
		select {
		case task := <-p.taskChan:
			if task != nil {
				task()
			}
		case <-p.shutdownChan:
			return
		}
	}
}

// Submit enqueues task, blocking until there is room in the task
// queue, ctx is done, or the pool is shut down.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	// Shutdown closes taskChan, and a send on a closed channel panics,
	// so a pool that is already shut down is reported before sending.
	select {
	case <-p.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case p.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops every worker and waits for in-flight tasks to drain.
// Safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.shutdownChan)
		close(p.taskChan)
		p.workerWg.Wait()
	})
}

// WorkerCount returns the pool's fixed worker count.
func (p *Pool) WorkerCount() int {
	return p.maxWorkers
}

// QueueDepth returns the number of tasks currently buffered, waiting
// for a free worker.
func (p *Pool) QueueDepth() int {
	return len(p.taskChan)
}
