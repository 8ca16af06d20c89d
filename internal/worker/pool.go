// worker/pool.go
package worker

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool closed")

type Job[T any] func() T

type jobWrapper[T any] struct {
	fn     Job[T]
	result chan T
}

// Pool runs jobs on a fixed set of goroutines. With a single worker it
// behaves as a FIFO single-writer queue: jobs execute one at a time in
// submission order, even when a caller stops waiting for its result.
type Pool[T any] struct {
	jobs chan jobWrapper[T]

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewPool[T any](workerCount int, bufferSize int) *Pool[T] {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool[T]{
		jobs: make(chan jobWrapper[T], bufferSize),
	}

	p.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		// result is buffered so an abandoned job never blocks the worker
		job.result <- job.fn()
	}
}

// Submit enqueues fn and waits for its output. If ctx ends first, Submit
// returns ctx.Err(); the job still runs to completion in the background.
func (p *Pool[T]) Submit(ctx context.Context, fn Job[T]) (T, error) {
	var zero T

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return zero, ErrClosed
	}
	job := jobWrapper[T]{fn: fn, result: make(chan T, 1)}
	select {
	case p.jobs <- job:
	case <-ctx.Done():
		p.mu.RUnlock()
		return zero, ctx.Err()
	}
	p.mu.RUnlock()

	select {
	case out := <-job.result:
		return out, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (p *Pool[T]) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
