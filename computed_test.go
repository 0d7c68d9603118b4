package statewire_test

import (
	"testing"

	"github.com/delaneyj/statewire"
	"github.com/stretchr/testify/assert"
)

// should not compute until first read
func TestComputedIsLazy(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"count": 1})

	computes := 0
	statewire.Computed(s, "double", func(s *statewire.Store) any {
		computes++
		return s.GetInt("count") * 2
	})
	assert.Equal(t, 0, computes)

	assert.Equal(t, 2, s.Get("double"))
	assert.Equal(t, 1, computes)
}

// should serve cached value while dependencies are unchanged
func TestComputedCaches(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"count": 1})

	computes := 0
	statewire.Computed(s, "double", func(s *statewire.Store) any {
		computes++
		return s.GetInt("count") * 2
	})

	assert.Equal(t, 2, s.Get("double"))
	assert.Equal(t, 2, s.Get("double"))
	assert.Equal(t, 2, s.Get("double"))
	assert.Equal(t, 1, computes)

	s.Set("count", 3)
	assert.Equal(t, 1, computes)

	assert.Equal(t, 6, s.Get("double"))
	assert.Equal(t, 2, computes)
}

// should recompute chained derived values in dependency order
func TestComputedChain(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"n": 1})

	statewire.Computed(s, "double", func(s *statewire.Store) any {
		return s.GetInt("n") * 2
	})
	statewire.Computed(s, "quad", func(s *statewire.Store) any {
		return s.Get("double").(int) * 2
	})

	var seen []int
	statewire.Effect(rs, func() error {
		seen = append(seen, s.Get("quad").(int))
		return nil
	})

	s.Set("n", 2)
	s.Set("n", 3)
	assert.Equal(t, []int{4, 8, 12}, seen)
}

// should rerun a diamond-shaped graph once per source change
func TestComputedDiamond(t *testing.T) {
	rs := statewire.CreateReactiveSystem(failOnError(t))
	s := statewire.Wrap(rs, map[string]any{"n": 1})

	statewire.Computed(s, "left", func(s *statewire.Store) any {
		return s.GetInt("n") + 1
	})
	statewire.Computed(s, "right", func(s *statewire.Store) any {
		return s.GetInt("n") * 10
	})

	runs := 0
	var last int
	statewire.Effect(rs, func() error {
		runs++
		last = s.Get("left").(int) + s.Get("right").(int)
		return nil
	})
	assert.Equal(t, 1, runs)
	assert.Equal(t, 12, last)

	s.Set("n", 2)
	assert.Equal(t, 2, runs)
	assert.Equal(t, 23, last)
}

// should warn and ignore writes to a derived key
func TestDerivedWriteRejected(t *testing.T) {
	warnings := 0
	rs := statewire.CreateReactiveSystem(failOnError(t),
		statewire.WithWarnFunc(func(format string, args ...any) {
			warnings++
		}))
	s := statewire.Wrap(rs, map[string]any{"count": 1})

	statewire.Computed(s, "double", func(s *statewire.Store) any {
		return s.GetInt("count") * 2
	})

	s.Set("double", 99)
	s.Set("double", 100)
	assert.Equal(t, 2, s.Get("double"))
	assert.Equal(t, 1, warnings)
}

// should abort a cyclic evaluation and keep the system usable
func TestComputedCycleDetection(t *testing.T) {
	var got error
	rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
		got = err
	})
	s := statewire.Wrap(rs, map[string]any{"n": 1})

	statewire.Computed(s, "a", func(s *statewire.Store) any {
		return s.Get("b")
	})
	statewire.Computed(s, "b", func(s *statewire.Store) any {
		return s.Get("a")
	})

	statewire.Effect(rs, func() error {
		s.Get("a")
		return nil
	})

	var cycle *statewire.CycleError
	assert.ErrorAs(t, got, &cycle)
	assert.Equal(t, []string{"a", "b", "a"}, cycle.Chain)

	got = nil
	runs := 0
	statewire.Effect(rs, func() error {
		runs++
		s.Get("n")
		return nil
	})
	s.Set("n", 2)
	assert.NoError(t, got)
	assert.Equal(t, 2, runs)
}

// should detect a derived value that reads itself
func TestComputedSelfCycle(t *testing.T) {
	var got error
	rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
		got = err
	})
	s := statewire.Wrap(rs, map[string]any{})

	statewire.Computed(s, "x", func(s *statewire.Store) any {
		return s.Get("x")
	})

	statewire.Effect(rs, func() error {
		s.Get("x")
		return nil
	})

	var cycle *statewire.CycleError
	assert.ErrorAs(t, got, &cycle)
	assert.Equal(t, []string{"x", "x"}, cycle.Chain)
}

// should retry a failed evaluation on the next read
func TestComputedRecoversAfterFailure(t *testing.T) {
	var got error
	rs := statewire.CreateReactiveSystem(func(from *statewire.Computation, err error) {
		got = err
	})
	s := statewire.Wrap(rs, map[string]any{"n": 0})

	statewire.Computed(s, "risky", func(s *statewire.Store) any {
		n := s.GetInt("n")
		if n == 0 {
			panic("division by zero")
		}
		return 100 / n
	})

	statewire.Effect(rs, func() error {
		s.Get("risky")
		return nil
	})
	assert.ErrorContains(t, got, "division by zero")

	s.Set("n", 4)
	assert.Equal(t, 25, s.Get("risky"))
}

// should re-expose the raw key once the derived record is disposed
func TestComputedDispose(t *testing.T) {
	warnings := 0
	rs := statewire.CreateReactiveSystem(failOnError(t),
		statewire.WithWarnFunc(func(format string, args ...any) {
			warnings++
		}))
	s := statewire.Wrap(rs, map[string]any{"total": 5})

	dispose := statewire.Computed(s, "total", func(s *statewire.Store) any {
		return 0
	})
	assert.Equal(t, 1, warnings)
	assert.Equal(t, 0, s.Get("total"))

	dispose()
	assert.Equal(t, 5, s.Get("total"))
}
