package worker

import (
	"context"
	"sync"
	"sync/atomic"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers. Results arrive in completion
// order; callers that need input order carry an index in the job.
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
	startOnce  sync.Once
	closeOnce  sync.Once
	started    atomic.Bool
}

// NewPool creates a new worker pool with the specified number of workers
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

// Start launches the workers. The results channel closes once every worker
// has exited.
func (p *Pool) Start() {
	p.startOnce.Do(func() {
		p.started.Store(true)
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.worker()
		}
		go func() {
			p.wg.Wait()
			close(p.results)
		}()
	})
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

// Submit queues a job. It blocks while the queue is full and reports false
// once the pool has been shut down.
func (p *Pool) Submit(job Job) bool {
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Close signals that no more jobs will be submitted
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobQueue)
	})
}

// Results streams job results; it is closed after Close once all queued
// jobs have finished, or after Shutdown
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Wait closes the queue and collects every remaining result. Use it when all
// jobs were submitted before the call; otherwise drain Results concurrently.
func (p *Pool) Wait() []Result {
	p.Close()
	if !p.started.Load() {
		return nil
	}

	var results []Result
	for result := range p.results {
		results = append(results, result)
	}
	p.cancelFunc()
	return results
}

// Shutdown cancels in-flight work and stops the workers
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
}
