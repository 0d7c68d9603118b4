package statewire

import "reflect"

// DisposeFunc permanently unregisters a computation. Idempotent; safe to call
// from inside the computation's own run.
type DisposeFunc func()

// OnErrorFunc receives every error raised inside a computation body, plus
// engine-level failures such as a runaway flush (from is nil in that case).
type OnErrorFunc func(from *Computation, err error)

// WarnFunc receives non-fatal misuse reports. Defaults to log.Printf.
type WarnFunc func(format string, args ...any)

// ValueClass is the capability assigned to a raw value at wrap time.
type ValueClass uint8

const (
	// ClassOpaque values pass through reads unwrapped. Externally owned
	// handles (timers, sockets, visual-tree nodes) must classify as opaque.
	ClassOpaque ValueClass = iota

	// ClassComposite values are lazily wrapped into child stores on read.
	ClassComposite
)

// ClassifyFunc decides, at wrap time, whether a value read out of a store is
// an opaque pass-through or a composite to wrap recursively. Supplied per
// store so hosts can keep their own handle types out of the engine.
type ClassifyFunc func(v any) ValueClass

func defaultClassify(v any) ValueClass {
	if _, ok := v.(map[string]any); ok {
		return ClassComposite
	}
	return ClassOpaque
}

// shallowEqual is the write no-op test: == for the common scalar types,
// identity for maps, slices, channels, funcs and pointers. Two composites
// with equal contents but different identity are not equal.
func shallowEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Func,
		reflect.Pointer, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type().Comparable() {
		return a == b
	}
	return false
}
