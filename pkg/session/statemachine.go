package session

import (
	"fmt"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// InvalidStateTransitionError is returned for any transition not in the
// allowed table (§4.6). Closed is absorbing: every transition attempted
// from Closed fails.
type InvalidStateTransitionError struct {
	From State
	To   State
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("session: invalid state transition %s -> %s", e.From, e.To)
}

// allowed enumerates the exact transition table from §4.6. Any pair not
// present here is rejected.
var allowed = map[State]map[State]bool{
	StatePending:   {StatePaired: true, StateClosed: true},
	StatePaired:    {StateActive: true, StateClosed: true},
	StateActive:    {StateSuspended: true, StateClosed: true},
	StateSuspended: {StateActive: true, StateClosed: true},
	StateClosed:    {},
}

// Transition attempts to move s from its current state to to, applying
// the side effects (timestamps) of a successful move. now is the caller's
// clock for testability.
func Transition(s *Session, to State, now time.Time) error {
	if s.State == StateClosed {
		return honeyerr.Wrap(honeyerr.KindState, &InvalidStateTransitionError{From: s.State, To: to},
			"session %s is closed", s.SessionID)
	}
	if !allowed[s.State][to] {
		return honeyerr.Wrap(honeyerr.KindState, &InvalidStateTransitionError{From: s.State, To: to},
			"session %s cannot transition", s.SessionID)
	}
	s.State = to
	s.UpdatedAt = now
	s.LastActivityAt = now
	return nil
}

// ApplyTTLAndIdle is the orchestrator's periodic housekeeping step: it
// closes sessions past their absolute TTL and suspends Active sessions
// whose activity window has lapsed. It never transitions a session
// already Closed, and never extends expires_at (P14).
func ApplyTTLAndIdle(s *Session, now time.Time) {
	if s.State == StateClosed {
		return
	}
	if s.Expired(now) {
		s.State = StateClosed
		s.UpdatedAt = now
		return
	}
	if s.State == StateActive && s.Idle(now) {
		s.State = StateSuspended
		s.UpdatedAt = now
	}
}
