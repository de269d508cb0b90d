package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs submitted jobs on a fixed number of goroutines. It is used for work that
// may be CPU intensive, such as running independent simulations.
type Pool struct {
	queue chan func()
	jobs  sync.WaitGroup
	once  sync.Once
}

// New starts a Pool with n workers. A non-positive n uses one worker per CPU.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{queue: make(chan func(), n)}
	for range n {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for f := range p.queue {
		p.run(f)
	}
}

func (p *Pool) run(f func()) {
	defer p.jobs.Done()
	defer sentry.Recover()
	f()
}

// Submit queues f, blocking while every worker is busy and the queue is full.
func (p *Pool) Submit(f func()) {
	p.jobs.Add(1)
	p.queue <- f
}

// Wait blocks until every submitted job has returned.
func (p *Pool) Wait() {
	p.jobs.Wait()
}

// Close waits for every submitted job and stops the workers. The Pool must not be
// used after Close.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.Wait()
		close(p.queue)
	})
}
