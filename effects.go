package statewire

import (
	mapset "github.com/deckarep/golang-set/v2"
)

type computationKind uint8

const (
	kindEffect computationKind = iota
	kindWatch
	kindDerived
)

// Computation is a registered executable unit: an effect body, a watch
// wrapper, or the recompute context of a derived record. It holds the
// forward half of the disposal registry, the set of (store, key) pairs it
// read on its last run.
type Computation struct {
	id    uint64
	rs    *ReactiveSystem
	kind  computationKind
	label string

	fn       func() error
	disposed bool

	// deps is rebuilt from scratch on every run, so a key not read this
	// time is no longer tracked.
	deps map[*Store]mapset.Set[string]

	// rec is set for kindDerived only.
	rec *derivedRecord
}

func newComputation(rs *ReactiveSystem, kind computationKind, label string, fn func() error) *Computation {
	return &Computation{
		id:    rs.newID(),
		rs:    rs,
		kind:  kind,
		label: label,
		fn:    fn,
		deps:  map[*Store]mapset.Set[string]{},
	}
}

// link records the (store, key) pair on both sides of the registry.
func (c *Computation) link(s *Store, key string) {
	keys, ok := c.deps[s]
	if !ok {
		keys = mapset.NewSet[string]()
		c.deps[s] = keys
	}
	keys.Add(key)

	subs, ok := s.deps[key]
	if !ok {
		subs = mapset.NewSet[*Computation]()
		s.deps[key] = subs
	}
	subs.Add(c)
}

// clearDeps removes every trace of the computation from every store it
// touched, in O(dependencies).
func (c *Computation) clearDeps() {
	for s, keys := range c.deps {
		for _, key := range keys.ToSlice() {
			if subs, ok := s.deps[key]; ok {
				subs.Remove(c)
				if subs.IsEmpty() {
					delete(s.deps, key)
				}
			}
		}
		delete(c.deps, s)
	}
}

// execute re-runs the computation body under tracking. The dependency set is
// cleared and rebuilt for this run. Errors and panics are isolated at this
// boundary: they reach onError and the computation stays registered.
func (c *Computation) execute() {
	if c.disposed {
		return
	}
	c.clearDeps()

	rs := c.rs
	rs.pushActive(c)
	defer rs.popActive()
	defer func() {
		if r := recover(); r != nil {
			rs.reportError(c, recoveredError(r))
		}
	}()

	if err := c.fn(); err != nil {
		rs.reportError(c, err)
	}
}

func (c *Computation) dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.clearDeps()
}

func (c *Computation) disposeFunc() DisposeFunc {
	return c.dispose
}

// ID returns the computation's unique identifier within its system.
func (c *Computation) ID() uint64 {
	return c.id
}

// Effect registers fn as a computation, runs it once synchronously while
// recording its reads, and re-runs it whenever any recorded dependency
// changes. The returned disposer is idempotent and may be called from inside
// fn itself.
func Effect(rs *ReactiveSystem, fn func() error) DisposeFunc {
	c := newComputation(rs, kindEffect, "", fn)
	c.execute()
	return c.disposeFunc()
}
