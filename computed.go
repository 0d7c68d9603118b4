package statewire

// derivedRecord is the cache slot behind a computed key: the compute
// function, the last value it produced, and the dirty flag that makes
// recomputation lazy. comp is the tracking context its evaluations run in.
type derivedRecord struct {
	owner   *Store
	key     string
	compute func(*Store) any

	cached    any
	dirty     bool
	computing bool

	comp *Computation
}

// Computed installs fn as a lazy cached value under key. The value is not
// computed until first read, is served from cache while no dependency has
// changed, and is marked dirty (not recomputed) when one has. Defining a
// derived key over an existing raw key shadows the raw value. The returned
// disposer removes the record and re-exposes whatever the target holds.
func Computed(store *Store, key string, fn func(*Store) any) DisposeFunc {
	rs := store.rs

	if old, ok := store.derived[key]; ok {
		old.comp.dispose()
	} else if _, raw := store.target[key]; raw {
		rs.warnOnce("computed-shadow:"+key, "statewire: derived key %q shadows an existing raw value", key)
	}

	rec := &derivedRecord{
		owner:   store,
		key:     key,
		compute: fn,
		dirty:   true,
	}
	rec.comp = newComputation(rs, kindDerived, key, nil)
	rec.comp.rec = rec
	store.derived[key] = rec

	store.trigger(key)
	rs.maybeFlush()

	return func() {
		if store.derived[key] != rec {
			return
		}
		delete(store.derived, key)
		rec.comp.dispose()
		store.trigger(key)
		rs.maybeFlush()
	}
}

// derivedValue serves a read of a derived key: the cached value when clean,
// a recompute under the record's own tracking context when dirty. Reading a
// record that is already mid-compute means the compute function reached
// itself through some chain of derived reads, which aborts the evaluation.
func (s *Store) derivedValue(rec *derivedRecord) any {
	if rec.computing {
		panic(&CycleError{Chain: s.rs.derivedChain(rec.key)})
	}

	s.track(rec.key)

	if !rec.dirty {
		return rec.cached
	}

	rs := s.rs
	c := rec.comp
	c.clearDeps()

	rec.computing = true
	rs.pushActive(c)
	defer func() {
		rs.popActive()
		rec.computing = false
	}()

	rec.cached = rec.compute(s)
	rec.dirty = false
	return rec.cached
}

// derivedChain reconstructs the evaluation path that closed a cycle from the
// derived entries on the active stack, ending at the repeated key.
func (rs *ReactiveSystem) derivedChain(repeated string) []string {
	var chain []string
	for _, c := range rs.active {
		if c != nil && c.kind == kindDerived {
			chain = append(chain, c.label)
		}
	}
	return append(chain, repeated)
}
