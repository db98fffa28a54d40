package pool

import "sync"

// Pool runs submitted jobs on a fixed number of workers. The queue is
// unbounded: Submit never blocks, excess jobs wait for a free slot.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool
	wg     sync.WaitGroup
}

func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{}
	p.cond = sync.NewCond(&p.mu)
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		f := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		if f != nil {
			f()
		}
	}
}

// Submit enqueues f and reports whether it was accepted. Jobs submitted
// after Close are rejected so callers never wait on work that will not
// run.
func (p *Pool) Submit(f func()) bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return false
	}
	p.queue = append(p.queue, f)
	p.mu.Unlock()
	p.cond.Signal()
	return true
}

// Close stops accepting jobs; already queued jobs still run.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Wait blocks until all workers exit after Close.
func (p *Pool) Wait() {
	p.wg.Wait()
}
