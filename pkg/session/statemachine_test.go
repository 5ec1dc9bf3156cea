package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/honeylink/honeylink-core/pkg/session"
)

func newTestSession() *session.Session {
	now := time.Now()
	return &session.Session{
		State:          session.StatePending,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(session.DefaultTTL),
	}
}

func TestTransition_HappyPath(t *testing.T) {
	s := newTestSession()
	now := time.Now()

	require.NoError(t, session.Transition(s, session.StatePaired, now))
	require.Equal(t, session.StatePaired, s.State)

	require.NoError(t, session.Transition(s, session.StateActive, now))
	require.NoError(t, session.Transition(s, session.StateSuspended, now))
	require.NoError(t, session.Transition(s, session.StateActive, now))
	require.NoError(t, session.Transition(s, session.StateClosed, now))
	require.Equal(t, session.StateClosed, s.State)
}

func TestTransition_RejectsInvalidEdge(t *testing.T) {
	s := newTestSession()
	err := session.Transition(s, session.StateActive, time.Now())
	require.Error(t, err)
}

func TestTransition_ClosedIsAbsorbing(t *testing.T) {
	s := newTestSession()
	now := time.Now()
	require.NoError(t, session.Transition(s, session.StateClosed, now))

	err := session.Transition(s, session.StatePaired, now)
	require.Error(t, err)
	require.Equal(t, session.StateClosed, s.State)
}

func TestApplyTTLAndIdle_ExpiresSession(t *testing.T) {
	s := newTestSession()
	s.State = session.StateActive
	past := time.Now().Add(-session.DefaultTTL - time.Hour)
	s.ExpiresAt = past

	session.ApplyTTLAndIdle(s, time.Now())
	require.Equal(t, session.StateClosed, s.State)
}

func TestApplyTTLAndIdle_SuspendsOnIdle(t *testing.T) {
	s := newTestSession()
	s.State = session.StateActive
	s.LastActivityAt = time.Now().Add(-session.IdleSuspendWindow - time.Minute)

	session.ApplyTTLAndIdle(s, time.Now())
	require.Equal(t, session.StateSuspended, s.State)
}

func TestApplyTTLAndIdle_NeverTransitionsFromClosed(t *testing.T) {
	s := newTestSession()
	s.State = session.StateClosed
	session.ApplyTTLAndIdle(s, time.Now())
	require.Equal(t, session.StateClosed, s.State)
}

func TestSession_TouchRevivesFromSuspended(t *testing.T) {
	s := newTestSession()
	s.State = session.StateSuspended
	before := s.ExpiresAt

	s.Touch(time.Now())
	require.Equal(t, session.StateActive, s.State)
	require.Equal(t, before, s.ExpiresAt, "TTL must never extend on touch")
}
