package session

import (
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
	"github.com/honeylink/honeylink-core/pkg/honeyid"
	"github.com/honeylink/honeylink-core/pkg/telemetry"
)

// HandshakeRequest is the inbound request to establish a session (§6:
// "create session" ingress, idempotency-key and bearer-credential
// checked by the caller before reaching the orchestrator).
type HandshakeRequest struct {
	IdempotencyKey string
	DeviceA        honeyid.DeviceId
	DeviceB        honeyid.DeviceId
	ClientVersion  string
	TraceID        string
	TTL            *time.Duration
}

// Orchestrator owns the live session table and drives every state
// transition, TTL/idle housekeeping, idempotent retry handling, and
// version negotiation described in §4.6.
type Orchestrator struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	idem       *IdempotencyStore
	negotiator *VersionNegotiator
	bus        *EventBus
	now        func() time.Time
	recorder   telemetry.SessionRecorder
}

// NewOrchestrator constructs an Orchestrator over a VersionNegotiator.
// now defaults to time.Now; tests may override it for deterministic TTL
// and idempotency behavior. Metrics are discarded until SetRecorder is
// called with a concrete telemetry.SessionRecorder.
func NewOrchestrator(negotiator *VersionNegotiator) *Orchestrator {
	return &Orchestrator{
		sessions:   make(map[string]*Session),
		idem:       NewIdempotencyStore(),
		negotiator: negotiator,
		bus:        NewEventBus(),
		now:        time.Now,
		recorder:   telemetry.NoopRecorder{},
	}
}

// SetClock overrides the orchestrator's time source, for deterministic tests.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// SetRecorder installs rec to receive session lifecycle metrics.
func (o *Orchestrator) SetRecorder(rec telemetry.SessionRecorder) { o.recorder = rec }

// Subscribe registers a new event subscriber.
func (o *Orchestrator) Subscribe() *Subscription { return o.bus.Subscribe() }

// HandshakeResponse is the idempotent-cacheable response snapshot for a
// successful handshake initiation.
type HandshakeResponse struct {
	SessionID         string
	NegotiatedVersion string
	IsFallback        bool
	ExpiresAt         time.Time
}

// Handshake initiates a session between two devices, applying
// idempotent-retry semantics and SemVer negotiation before creating the
// Session in Pending state. A session only reaches Paired once both
// peers are authenticated and a key is derived (driven externally by
// calling MarkPaired); Handshake itself places the session in Pending.
func (o *Orchestrator) Handshake(req HandshakeRequest, fingerprint uint64) (HandshakeResponse, error) {
	now := o.now()

	o.mu.Lock()
	outcome, cached := o.idem.CheckAndStore(req.IdempotencyKey, fingerprint, now)
	o.mu.Unlock()

	switch outcome {
	case OutcomeReplay:
		resp, _ := cached.(HandshakeResponse)
		return resp, nil
	case OutcomeTampered:
		o.recorder.RecordFailure("idempotency_tampered")
		return HandshakeResponse{}, TamperedError(req.IdempotencyKey)
	}

	negotiation, err := o.negotiator.Negotiate(req.ClientVersion)
	if err != nil {
		o.recorder.RecordFailure("version_negotiation_failed")
		o.recorder.RecordEstablishment(o.now().Sub(now), false)
		return HandshakeResponse{}, err
	}

	ttl := DefaultTTL
	if req.TTL != nil {
		ttl = *req.TTL
	}

	sessionID, err := honeyid.NewSessionId()
	if err != nil {
		return HandshakeResponse{}, honeyerr.Wrap(honeyerr.KindInternal, err, "mint session id")
	}

	sess := &Session{
		SessionID:         sessionID,
		DeviceA:           req.DeviceA,
		DeviceB:           req.DeviceB,
		State:             StatePending,
		NegotiatedVersion: negotiation.Negotiated.String(),
		CreatedAt:         now,
		UpdatedAt:         now,
		LastActivityAt:    now,
		ExpiresAt:         now.Add(ttl),
	}

	o.mu.Lock()
	o.sessions[sessionID.String()] = sess
	o.mu.Unlock()

	resp := HandshakeResponse{
		SessionID:         sessionID.String(),
		NegotiatedVersion: sess.NegotiatedVersion,
		IsFallback:        negotiation.IsFallback,
		ExpiresAt:         sess.ExpiresAt,
	}

	o.mu.Lock()
	o.idem.Finalize(req.IdempotencyKey, resp)
	o.mu.Unlock()

	o.recorder.RecordEstablishment(o.now().Sub(now), true)
	return resp, nil
}

// Get returns the live Session for id.
func (o *Orchestrator) Get(id string) (*Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	sess, ok := o.sessions[id]
	if !ok {
		return nil, honeyerr.NotFoundf("session: %s not found", id)
	}
	return sess, nil
}

// MarkPaired transitions a Pending session to Paired once both peers are
// authenticated and a session key has been derived, and emits
// SessionEstablished.
func (o *Orchestrator) MarkPaired(id, sharedKeyID, traceID string) error {
	return o.transitionAndEmit(id, StatePaired, traceID, func(sess *Session) {
		sess.SharedKeyID = sharedKeyID
	}, EventSessionEstablished)
}

// MarkActive transitions a Paired or Suspended session to Active on the
// first data exchange / a heartbeat, emitting SessionStateChanged.
func (o *Orchestrator) MarkActive(id, traceID string) error {
	return o.transitionAndEmit(id, StateActive, traceID, nil, EventSessionStateChanged)
}

// MarkSuspended transitions an Active session to Suspended.
func (o *Orchestrator) MarkSuspended(id, traceID string) error {
	return o.transitionAndEmit(id, StateSuspended, traceID, nil, EventSessionStateChanged)
}

// Close transitions any non-terminal session to Closed, emitting
// SessionClosed.
func (o *Orchestrator) Close(id, traceID string) error {
	return o.transitionAndEmit(id, StateClosed, traceID, nil, EventSessionClosed)
}

func (o *Orchestrator) transitionAndEmit(id string, to State, traceID string, mutate func(*Session), kind EventKind) error {
	now := o.now()

	o.mu.Lock()
	sess, ok := o.sessions[id]
	if !ok {
		o.mu.Unlock()
		return honeyerr.NotFoundf("session: %s not found", id)
	}
	from := sess.State
	if err := Transition(sess, to, now); err != nil {
		o.mu.Unlock()
		o.recorder.RecordStateTransition(from.String(), to.String(), false)
		o.bus.Publish(Event{Kind: EventSessionError, SessionID: id, Timestamp: now, TraceID: traceID, From: from, To: to, Err: err})
		return err
	}
	if mutate != nil {
		mutate(sess)
	}
	o.mu.Unlock()

	o.recorder.RecordStateTransition(from.String(), to.String(), true)
	o.bus.Publish(Event{Kind: kind, SessionID: id, Timestamp: now, TraceID: traceID, From: from, To: to})
	return nil
}

// Touch refreshes a session's sliding activity window, reviving it from
// Suspended to Active if needed, and emits SessionActivity.
func (o *Orchestrator) Touch(id, traceID string) error {
	now := o.now()

	o.mu.Lock()
	sess, ok := o.sessions[id]
	if !ok {
		o.mu.Unlock()
		return honeyerr.NotFoundf("session: %s not found", id)
	}
	if sess.State == StateClosed {
		o.mu.Unlock()
		return honeyerr.Statef("session: %s is closed", id)
	}
	sess.Touch(now)
	o.mu.Unlock()

	o.bus.Publish(Event{Kind: EventSessionActivity, SessionID: id, Timestamp: now, TraceID: traceID})
	return nil
}

// Sweep runs TTL expiry and idle-suspend housekeeping over every live
// session, emitting SessionClosed / SessionStateChanged as appropriate.
// Closed sessions, whether expired here or closed explicitly, stay in the
// table: the orchestrator never removes a session.
func (o *Orchestrator) Sweep() {
	now := o.now()

	o.mu.Lock()
	type change struct {
		id   string
		from State
		to   State
	}
	var changes []change
	for id, sess := range o.sessions {
		from := sess.State
		ApplyTTLAndIdle(sess, now)
		if sess.State != from {
			changes = append(changes, change{id: id, from: from, to: sess.State})
		}
	}
	o.idem.GC(now)
	o.mu.Unlock()

	for _, c := range changes {
		kind := EventSessionStateChanged
		if c.to == StateClosed {
			kind = EventSessionClosed
		}
		o.bus.Publish(Event{Kind: kind, SessionID: c.id, Timestamp: now, From: c.from, To: c.to})
	}
}
