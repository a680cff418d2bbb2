// Package parallel provides the bounded worker pool that drives loader
// dispatch.
package parallel

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs submitted jobs on a fixed number of goroutines.
//
// Each worker owns a queue and steals from the others when its own queue is
// empty, so one slow fetch does not stall jobs queued behind it. Jobs are
// handed out round-robin in submission order.
//
// WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()
	next    atomic.Uint64

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// pending counts submitted jobs that have not finished.
	pending sync.WaitGroup
	queued  atomic.Int64

	// panicHandler receives values recovered from panicking jobs.
	panicHandler func(any)
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

// SetPanicHandler installs fn to receive panics recovered from jobs.
// Without a handler a panicking job is dropped silently and the worker
// keeps running. Must be called before the first Submit.
func (p *WorkerPool) SetPanicHandler(fn func(any)) {
	p.panicHandler = fn
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case job := <-own:
			p.run(job)
			continue
		case <-p.done:
			p.drain(own)
			return
		default:
		}

		if job := p.steal(id); job != nil {
			p.run(job)
			continue
		}

		select {
		case job := <-own:
			p.run(job)
		case <-p.done:
			p.drain(own)
			return
		}
	}
}

// run executes job and marks it finished even if it panics.
func (p *WorkerPool) run(job func()) {
	if job == nil {
		return
	}
	defer func() {
		p.queued.Add(-1)
		p.pending.Done()
		if r := recover(); r != nil && p.panicHandler != nil {
			p.panicHandler(fmt.Errorf("parallel: job panicked: %v", r))
		}
	}()
	job()
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			p.run(job)
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case job := <-p.queues[i]:
			return job
		default:
		}
	}
	return nil
}

// Submit queues fn and reports whether it was accepted. It blocks while the
// target queue is full and returns false once the pool is closed.
func (p *WorkerPool) Submit(fn func()) bool {
	if fn == nil || !p.running.Load() {
		return false
	}

	p.pending.Add(1)
	p.queued.Add(1)
	q := p.queues[p.next.Add(1)%uint64(p.workers)] //nolint:gosec // workers > 0
	select {
	case q <- fn:
		return true
	case <-p.done:
		p.queued.Add(-1)
		p.pending.Done()
		return false
	}
}

// Wait blocks until every accepted job has finished.
func (p *WorkerPool) Wait() {
	p.pending.Wait()
}

// Close stops accepting work, runs what is already queued and stops the
// workers. Close is idempotent.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()

	// Jobs that raced with Close still run on the caller.
	for _, q := range p.queues {
		p.drain(q)
	}
}

// Workers returns the number of workers.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// QueuedWork returns the number of accepted jobs that have not finished.
func (p *WorkerPool) QueuedWork() int {
	return int(p.queued.Load())
}
