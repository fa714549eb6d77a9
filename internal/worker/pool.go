// Package worker provides the bounded concurrency primitives of the
// scan: a job pool for article processing and a per-domain rate limiter
// for candidate page fetches.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job execution produces.
type Result interface {
	GetError() error
}

// Pool executes jobs on a fixed number of workers.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Blocks when the queue is full, which gives the
// dump reader natural backpressure.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
		return
	case p.jobQueue <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it and returns
// the results in completion order.
func (p *Pool) Wait() []Result {
	close(p.jobQueue)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}

	return results
}

// Collect starts a consumer that receives results as jobs complete,
// which keeps Submit from blocking on an unbounded job stream. The
// returned channel closes once every result has been delivered, after
// Close.
func (p *Pool) Collect(fn func(Result)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for result := range p.results {
			fn(result)
		}
		close(done)
	}()
	return done
}

// Close closes the queue and blocks until the workers drain it.
func (p *Pool) Close() {
	close(p.jobQueue)
	p.wg.Wait()
	p.closeResults()
}

// Shutdown cancels running jobs and stops the pool.
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}
