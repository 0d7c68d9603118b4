package statewire

import (
	"reflect"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Store wraps a plain map[string]any so that reads register dependencies and
// writes notify exactly the computations that read the written key. The
// target map itself is never mutated by the engine beyond the values the
// caller writes through Set, so ToRaw always yields a plain snapshot.
type Store struct {
	rs     *ReactiveSystem
	target map[string]any

	// deps is the reverse half of the disposal registry: key -> readers.
	deps map[string]mapset.Set[*Computation]

	derived  map[string]*derivedRecord
	children map[string]*Store
	classify ClassifyFunc
}

// StoreOption configures a single store at wrap time.
type StoreOption func(*Store)

// WithStoreClassifier overrides the system classifier for this store and the
// child stores wrapped beneath it.
func WithStoreClassifier(fn ClassifyFunc) StoreOption {
	return func(s *Store) {
		if fn != nil {
			s.classify = fn
		}
	}
}

// Wrap returns the reactive wrapper for v. Wrapping is idempotent: a *Store
// comes back unchanged, and a map that is already wrapped on this system
// yields the existing wrapper. Anything that is not a map[string]any warns
// and returns nil.
func Wrap(rs *ReactiveSystem, v any, opts ...StoreOption) *Store {
	switch t := v.(type) {
	case *Store:
		return t
	case map[string]any:
		return rs.wrap(t, rs.classify, opts...)
	default:
		rs.warnOnce("wrap-non-object", "statewire: Wrap called with %T, want map[string]any", v)
		return nil
	}
}

func (rs *ReactiveSystem) wrap(target map[string]any, classify ClassifyFunc, opts ...StoreOption) *Store {
	if target == nil {
		rs.warnOnce("wrap-nil-map", "statewire: Wrap called with nil map")
		return nil
	}
	id := mapIdentity(target)
	if existing, ok := rs.stores[id]; ok {
		return existing
	}

	s := &Store{
		rs:       rs,
		target:   target,
		deps:     map[string]mapset.Set[*Computation]{},
		derived:  map[string]*derivedRecord{},
		children: map[string]*Store{},
		classify: classify,
	}
	for _, opt := range opts {
		opt(s)
	}
	rs.stores[id] = s
	return s
}

func mapIdentity(m map[string]any) uintptr {
	return reflect.ValueOf(m).Pointer()
}

// Get reads a key, registering it as a dependency of the active computation.
// Composite values (per the store's classifier) are lazily wrapped into
// child stores and cached until the key is overwritten; everything else
// passes through unwrapped.
func (s *Store) Get(key string) any {
	if rec, ok := s.derived[key]; ok {
		return s.derivedValue(rec)
	}

	s.track(key)

	raw, ok := s.target[key]
	if !ok {
		return nil
	}
	if s.classify(raw) == ClassComposite {
		if m, ok := raw.(map[string]any); ok {
			if child, ok := s.children[key]; ok {
				return child
			}
			child := s.rs.wrap(m, s.classify)
			s.children[key] = child
			return child
		}
	}
	return raw
}

// Has reports whether the key exists on the target or as a derived record,
// registering the key as a dependency.
func (s *Store) Has(key string) bool {
	if _, ok := s.derived[key]; ok {
		return true
	}
	s.track(key)
	_, ok := s.target[key]
	return ok
}

// Set writes a key. Writes of a shallow-equal value are no-ops; writes to a
// derived key warn and no-op. The stored value is always the unwrapped raw
// value, so wrappers never leak into the target.
func (s *Store) Set(key string, value any) {
	if _, ok := s.derived[key]; ok {
		s.rs.warnOnce("set-derived:"+key, "statewire: %q is a derived key, writes are ignored", key)
		return
	}

	raw := ToRaw(value)
	old, existed := s.target[key]
	if existed && shallowEqual(old, raw) {
		return
	}

	s.target[key] = raw
	delete(s.children, key)

	s.trigger(key)
	s.rs.maybeFlush()
}

// Delete removes a key from the target and notifies its dependents.
func (s *Store) Delete(key string) {
	if _, ok := s.derived[key]; ok {
		s.rs.warnOnce("delete-derived:"+key, "statewire: %q is a derived key, deletes are ignored", key)
		return
	}
	if _, existed := s.target[key]; !existed {
		return
	}
	delete(s.target, key)
	delete(s.children, key)
	s.trigger(key)
	s.rs.maybeFlush()
}

// Keys returns the target's keys in sorted order, without registering
// dependencies.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.target))
	for key := range s.target {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the underlying target map. Mutating it bypasses the engine;
// pair such mutation with Notify.
func (s *Store) Raw() map[string]any {
	return s.target
}

// track registers (s, key) on the computation currently recording reads.
func (s *Store) track(key string) {
	c := s.rs.activeComputation()
	if c == nil || c.disposed {
		return
	}
	c.link(s, key)
}

// trigger propagates a change at key: dependent derived records are marked
// dirty first (cascading through derived-on-derived chains), then dependent
// computations are enqueued. Disposed readers found along the way are
// dropped from the index.
func (s *Store) trigger(key string) {
	subs, ok := s.deps[key]
	if !ok {
		return
	}
	for _, c := range subs.ToSlice() {
		if c.disposed {
			subs.Remove(c)
			continue
		}
		if c.kind == kindDerived {
			rec := c.rec
			if !rec.dirty {
				rec.dirty = true
				rec.owner.trigger(rec.key)
			}
			continue
		}
		s.rs.enqueue(c)
	}
}

// Notify re-triggers the dependents of the named keys (all keys when none
// are given) without a corresponding write. Callers that mutate state behind
// the wrapper's back, such as in-place slice appends, use this to deliver
// the change.
func (s *Store) Notify(keys ...string) {
	if len(keys) == 0 {
		seen := map[string]struct{}{}
		for key := range s.deps {
			seen[key] = struct{}{}
		}
		for key := range s.derived {
			seen[key] = struct{}{}
		}
		keys = make([]string, 0, len(seen))
		for key := range seen {
			keys = append(keys, key)
		}
		sort.Strings(keys)
	}
	for _, key := range keys {
		if rec, ok := s.derived[key]; ok && !rec.dirty {
			rec.dirty = true
		}
		s.trigger(key)
	}
	s.rs.maybeFlush()
}

// Cleanup disposes every computation registered against any of the store's
// keys, tears down derived records and child wrappers, and unregisters the
// store from the system. The target map is left untouched.
func (s *Store) Cleanup() {
	var all []*Computation
	for _, subs := range s.deps {
		all = append(all, subs.ToSlice()...)
	}
	for _, c := range all {
		if c.kind == kindDerived {
			continue // owned by a derived record, handled below
		}
		c.dispose()
	}

	for key, rec := range s.derived {
		rec.comp.dispose()
		delete(s.derived, key)
	}

	for key, child := range s.children {
		child.Cleanup()
		delete(s.children, key)
	}

	clear(s.deps)
	delete(s.rs.stores, mapIdentity(s.target))
}

// ToRaw unwraps a store back to its plain target map; any other value comes
// back unchanged. Mutating the returned map does not trigger computations.
func ToRaw(v any) any {
	if s, ok := v.(*Store); ok {
		return s.target
	}
	return v
}

// IsReactive reports whether v is a statewire wrapper.
func IsReactive(v any) bool {
	_, ok := v.(*Store)
	return ok
}
