// Package statewire is a key-addressed state reactivity engine: it wraps
// plain map[string]any state into stores whose reads register dependencies
// and whose writes re-run exactly the computations that read them.
package statewire

import (
	"log"

	"github.com/cespare/xxhash/v2"
)

const defaultMaxFlushPasses = 100

// ReactiveSystem owns the tracking stack, the batch depth, the flush queue
// and the store registry. All operations on one system must happen on a
// single goroutine; the cooperative single-threaded model is the concurrency
// control, so the system carries no locks.
type ReactiveSystem struct {
	batchDepth int
	flushing   bool

	// active is the execution-context stack: the top entry is the
	// computation currently recording reads. A nil entry pauses tracking.
	active []*Computation

	queue  []*Computation
	queued map[uint64]struct{}

	// stores indexes wrappers by target map identity so wrapping is
	// idempotent without mutating the target.
	stores map[uintptr]*Store

	maxFlushPasses int
	classify       ClassifyFunc
	onError        OnErrorFunc
	warnf          WarnFunc
	warned         map[uint64]struct{}

	nextID uint64
}

// SystemOption configures a ReactiveSystem at creation time.
type SystemOption func(*ReactiveSystem)

// WithMaxFlushPasses overrides the runaway-loop bound on flush passes.
func WithMaxFlushPasses(n int) SystemOption {
	return func(rs *ReactiveSystem) {
		if n > 0 {
			rs.maxFlushPasses = n
		}
	}
}

// WithClassifier sets the default value classifier for stores created on
// this system. Individual stores may still override it.
func WithClassifier(fn ClassifyFunc) SystemOption {
	return func(rs *ReactiveSystem) {
		if fn != nil {
			rs.classify = fn
		}
	}
}

// WithWarnFunc redirects misuse warnings away from the standard logger.
func WithWarnFunc(fn WarnFunc) SystemOption {
	return func(rs *ReactiveSystem) {
		if fn != nil {
			rs.warnf = fn
		}
	}
}

func CreateReactiveSystem(onError OnErrorFunc, opts ...SystemOption) *ReactiveSystem {
	rs := &ReactiveSystem{
		queued:         map[uint64]struct{}{},
		stores:         map[uintptr]*Store{},
		maxFlushPasses: defaultMaxFlushPasses,
		classify:       defaultClassify,
		onError:        onError,
		warnf:          log.Printf,
		warned:         map[uint64]struct{}{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// StartBatch raises the reentrancy depth; writes enqueue instead of flushing
// until the matching EndBatch returns the depth to zero.
func (rs *ReactiveSystem) StartBatch() {
	rs.batchDepth++
}

// EndBatch lowers the depth and drains the flush queue at the outermost
// boundary. Reentrant batching is safe and cheap.
func (rs *ReactiveSystem) EndBatch() {
	rs.batchDepth--
	if rs.batchDepth == 0 {
		rs.flush()
	}
}

func (rs *ReactiveSystem) Batch(fn func()) {
	rs.StartBatch()
	defer rs.EndBatch()
	fn()
}

// BatchValue is Batch for callbacks that produce a value.
func BatchValue[T any](rs *ReactiveSystem, fn func() T) T {
	rs.StartBatch()
	defer rs.EndBatch()
	return fn()
}

// Untracked runs fn with dependency recording paused: reads inside fn do not
// register the enclosing computation.
func (rs *ReactiveSystem) Untracked(fn func()) {
	rs.active = append(rs.active, nil)
	defer func() {
		rs.active = rs.active[:len(rs.active)-1]
	}()
	fn()
}

func (rs *ReactiveSystem) pushActive(c *Computation) {
	rs.active = append(rs.active, c)
}

func (rs *ReactiveSystem) popActive() {
	rs.active = rs.active[:len(rs.active)-1]
}

func (rs *ReactiveSystem) activeComputation() *Computation {
	if len(rs.active) == 0 {
		return nil
	}
	return rs.active[len(rs.active)-1]
}

// enqueue adds a computation to the flush queue in FIFO-of-first-enqueue
// order. Enqueuing a computation that is already pending is a no-op.
func (rs *ReactiveSystem) enqueue(c *Computation) {
	if c.disposed {
		return
	}
	if _, pending := rs.queued[c.id]; pending {
		return
	}
	rs.queued[c.id] = struct{}{}
	rs.queue = append(rs.queue, c)
}

func (rs *ReactiveSystem) maybeFlush() {
	if rs.batchDepth == 0 && !rs.flushing {
		rs.flush()
	}
}

// flush drains the queue in passes. A computation that writes state during
// its own run enqueues work for the next pass; exceeding the pass bound is a
// runaway update loop, which clears the queue so the system stays usable.
func (rs *ReactiveSystem) flush() {
	if rs.flushing {
		return
	}
	rs.flushing = true
	defer func() {
		rs.flushing = false
	}()

	for pass := 0; len(rs.queue) > 0; pass++ {
		if pass >= rs.maxFlushPasses {
			dropped := len(rs.queue)
			rs.queue = nil
			clear(rs.queued)
			rs.reportError(nil, &RunawayError{Passes: pass, Dropped: dropped})
			return
		}

		batch := rs.queue
		rs.queue = nil
		clear(rs.queued)

		for _, c := range batch {
			if c.disposed {
				continue
			}
			c.execute()
		}
	}
}

func (rs *ReactiveSystem) reportError(from *Computation, err error) {
	if rs.onError != nil {
		rs.onError(from, err)
		return
	}
	log.Printf("statewire: %v", err)
}

// warnOnce deduplicates misuse warnings by call site so a hot loop cannot
// flood the log.
func (rs *ReactiveSystem) warnOnce(site string, format string, args ...any) {
	h := xxhash.Sum64String(site)
	if _, seen := rs.warned[h]; seen {
		return
	}
	rs.warned[h] = struct{}{}
	rs.warnf(format, args...)
}

func (rs *ReactiveSystem) newID() uint64 {
	rs.nextID++
	return rs.nextID
}
