package session

import (
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyid"
)

// DefaultTTL is the absolute session lifetime from creation (§3, §4.6).
const DefaultTTL = 12 * time.Hour

// IdleSuspendWindow is the sliding activity window after which an
// un-touched Active session is treated as Suspended (§4.6).
const IdleSuspendWindow = 30 * time.Minute

// State is one of the five orchestrator states.
type State int

const (
	StatePending State = iota
	StatePaired
	StateActive
	StateSuspended
	StateClosed
)

// String renders the state's name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StatePaired:
		return "Paired"
	case StateActive:
		return "Active"
	case StateSuspended:
		return "Suspended"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Session is a single handshake's authoritative record (§3 Data Model).
type Session struct {
	SessionID          honeyid.SessionId
	DeviceA             honeyid.DeviceId
	DeviceB             honeyid.DeviceId
	State               State
	NegotiatedVersion   string
	SharedKeyID         string // reference into KMS, never the key itself
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ExpiresAt           time.Time
	LastActivityAt      time.Time
}

// Touch refreshes the sliding activity window without extending the
// absolute TTL (P14: expires_at never decreases, and crucially never
// increases past its original value either).
func (s *Session) Touch(now time.Time) {
	s.LastActivityAt = now
	s.UpdatedAt = now
	if s.State == StateSuspended {
		s.State = StateActive
	}
}

// Idle reports whether the session's sliding activity window has lapsed.
func (s *Session) Idle(now time.Time) bool {
	return now.Sub(s.LastActivityAt) > IdleSuspendWindow
}

// Expired reports whether the session's absolute TTL has lapsed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
