package statewire

// WatchFn runs getter under tracking and invokes cb with (new, old) whenever
// the produced value changes. The first run only records the baseline; cb
// fires on transitions, compared with the same shallow equality writes use.
// cb itself runs untracked, so reads inside it register nothing.
func WatchFn(rs *ReactiveSystem, getter func() any, cb func(newV, oldV any)) DisposeFunc {
	var prev any
	first := true

	c := newComputation(rs, kindWatch, "", nil)
	c.fn = func() error {
		next := getter()
		if first {
			first = false
			prev = next
			return nil
		}
		if shallowEqual(prev, next) {
			return nil
		}
		old := prev
		prev = next
		rs.Untracked(func() {
			cb(next, old)
		})
		return nil
	}
	c.execute()
	return c.disposeFunc()
}

// Watch observes a single key of a store, derived or raw.
func Watch(store *Store, key string, cb func(newV, oldV any)) DisposeFunc {
	return WatchFn(store.rs, func() any {
		return store.Get(key)
	}, cb)
}
