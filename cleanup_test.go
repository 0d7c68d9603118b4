package statewire_test

import (
	"testing"

	"github.com/delaneyj/statewire"
	"github.com/stretchr/testify/assert"
)

// should dispose every computation registered against the store
func TestCleanupDisposesComputations(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"a": 1, "b": 2})

	effectRuns, watchFires := 0, 0
	statewire.Effect(rs, func() error {
		effectRuns++
		s.Get("a")
		return nil
	})
	statewire.Watch(s, "b", func(newV, oldV any) {
		watchFires++
	})

	s.Cleanup()

	s.Set("a", 10)
	s.Set("b", 20)
	assert.Equal(t, 1, effectRuns)
	assert.Equal(t, 0, watchFires)
}

// should tear down derived records on cleanup
func TestCleanupDerived(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"count": 1})

	computes := 0
	statewire.Computed(s, "double", func(s *statewire.Store) any {
		computes++
		return s.GetInt("count") * 2
	})
	assert.Equal(t, 2, s.Get("double"))

	s.Cleanup()

	assert.Nil(t, s.Get("double"))
	assert.Equal(t, 1, computes)
}

// should cascade cleanup into child wrappers
func TestCleanupChildren(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{
		"user": map[string]any{"name": "ada"},
	})

	runs := 0
	user := s.Get("user").(*statewire.Store)
	statewire.Effect(rs, func() error {
		runs++
		user.Get("name")
		return nil
	})

	s.Cleanup()

	user.Set("name", "grace")
	assert.Equal(t, 1, runs)
}

// should leave the target map intact and allow rewrapping
func TestCleanupLeavesTarget(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	target := map[string]any{"n": 7}

	a := statewire.Wrap(rs, target)
	a.Cleanup()
	assert.Equal(t, 7, target["n"])

	b := statewire.Wrap(rs, target)
	assert.NotSame(t, a, b)

	runs := 0
	statewire.Effect(rs, func() error {
		runs++
		b.Get("n")
		return nil
	})
	b.Set("n", 8)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 8, target["n"])
}

// should drop a disposed computation from the dependency index lazily
func TestDisposedReaderDropped(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"n": 1})

	dispose := statewire.Effect(rs, func() error {
		s.Get("n")
		return nil
	})
	dispose()

	s.Set("n", 2)
	s.Set("n", 3)
}
