// Package guard provides the submission guard shared by every create/update
// form and the investment wizard: for one logical submission there is never
// more than one request in flight, and a completed submission cannot be
// re-triggered.
package guard

import "sync"

// State is the lifecycle of a guarded submission.
type State int

const (
	// Idle means no submission has been attempted yet.
	Idle State = iota
	// InFlight means a submission is currently running.
	InFlight
	// Succeeded means the submission completed; further attempts are no-ops.
	Succeeded
	// Failed means the last attempt failed; a retry may begin.
	Failed
)

// String returns a human-readable state name for logs.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Guard serializes one logical submission. The zero value is ready to use.
type Guard struct {
	mu     sync.Mutex
	state  State
	reason error
}

// Begin attempts to take the guard. It succeeds only from Idle or Failed;
// redundant triggers while in flight or after success report false and the
// caller must treat the attempt as a no-op, not queue it.
func (g *Guard) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == InFlight || g.state == Succeeded {
		return false
	}
	g.state = InFlight
	g.reason = nil
	return true
}

// Succeed marks the in-flight submission as completed for good.
func (g *Guard) Succeed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Succeeded
	g.reason = nil
}

// Fail releases the guard with the failure reason so a retry can begin.
func (g *Guard) Fail(reason error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Failed
	g.reason = reason
}

// State returns the current state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Reason returns the failure reason of the last attempt, or nil.
func (g *Guard) Reason() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reason
}
