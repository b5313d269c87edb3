// Package worker provides a worker pool for replaying inputs in parallel.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessboard-go/internal/output"
)

// WorkItem is one input to replay: a named transcript and the position it
// starts from.
type WorkItem struct {
	Name  string
	Text  string
	Index int // Original index for ordering
}

// ProcessResult is the outcome of replaying a work item.
type ProcessResult struct {
	Index  int
	Name   string
	Report *output.Report
	Err    error
}

// ProcessFunc is the function signature for processing a work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool manages a pool of workers. The process function runs concurrently on
// every worker, so it must not share mutable state such as a Game.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopFlag    int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a new worker pool with the specified number of workers and buffer size.
func NewPool(numWorkers, bufferSize int, processFunc ProcessFunc) *Pool {
	return NewPoolWithOptions(processFunc, WithWorkers(numWorkers), WithBufferSize(bufferSize))
}

// NewPoolWithOptions creates a new worker pool using functional options.
// Default: 1 worker, buffer size of 10.
func NewPoolWithOptions(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker processes items from the work channel until it is closed.
func (p *Pool) worker() {
	defer p.wg.Done()

	for item := range p.workChan {
		if p.IsStopped() {
			continue // Drain channel without processing
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit submits a work item for processing.
// This may block if the work channel buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// Stop signals workers to stop processing new items.
// Items already in the channel will be drained but not processed.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the work channel and waits for all workers to finish.
// The result channel is closed once every worker is done.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel for reading processed results.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// InOrder calls fn for each result in Index order, starting from 0. Results
// arriving early are held until their predecessors have been seen; any still
// held when results closes (because an index was skipped) are flushed in
// ascending order.
func InOrder(results <-chan ProcessResult, fn func(ProcessResult)) {
	pending := make(map[int]ProcessResult)
	next := 0
	for r := range results {
		pending[r.Index] = r
		for {
			held, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			fn(held)
			next++
		}
	}
	for len(pending) > 0 {
		lowest := -1
		for i := range pending {
			if lowest < 0 || i < lowest {
				lowest = i
			}
		}
		fn(pending[lowest])
		delete(pending, lowest)
	}
}
