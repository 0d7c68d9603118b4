package statewire

import (
	"fmt"
	"strings"
)

// CycleError reports a derived value that depends, directly or transitively,
// on itself. It aborts the evaluation that closed the loop and propagates to
// whoever triggered the read; the dependency graph itself stays intact.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "statewire: derived dependency cycle: " + strings.Join(e.Chain, " -> ")
}

// RunawayError reports a flush that exceeded its pass bound because
// computations kept writing state that re-enqueued more computations. The
// queue is cleared and the system stays usable.
type RunawayError struct {
	Passes  int
	Dropped int
}

func (e *RunawayError) Error() string {
	return fmt.Sprintf("statewire: runaway update loop: flush exceeded %d passes, dropped %d pending computations", e.Passes, e.Dropped)
}

func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("statewire: computation panic: %v", r)
}
