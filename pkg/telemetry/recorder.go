package telemetry

import "time"

// SessionRecorder is called by pkg/session to publish session lifecycle
// metrics. Grounded on original_source's session-orchestrator telemetry
// module (session_establishment_latency_p95 SLI, state-transition
// counters).
type SessionRecorder interface {
	// RecordEstablishment reports how long session establishment took
	// and whether it succeeded, feeding the
	// session_establishment_latency_p95 SLI.
	RecordEstablishment(d time.Duration, success bool)

	// RecordStateTransition reports a state machine move, including
	// failed/rejected transitions (to distinguish churn from genuine
	// progress).
	RecordStateTransition(from, to string, ok bool)

	// RecordActiveSessions reports the current count of non-Closed
	// sessions, for an active-session gauge.
	RecordActiveSessions(count int)

	// RecordFailure reports a session-level failure, tagged by a short
	// machine-readable reason (e.g. "version_negotiation_failed",
	// "idempotency_tampered").
	RecordFailure(reason string)
}

// LinkRecorder is called by pkg/transport to publish per-link quality
// and QoS metrics. Grounded on original_source's transport telemetry
// trait (packet_loss_rate and qos_packet_drop_rate SLIs, link quality,
// FEC changes, WFQ depth).
type LinkRecorder interface {
	// RecordLinkQuality reports an Adapter's observed quality snapshot
	// for the named physical layer (e.g. "quic", "wifi-aware", "ble").
	RecordLinkQuality(layer string, rssiDbm int, lossRate float64, bandwidthBps uint64, rttMs uint32)

	// RecordQoSDrop reports a packet dropped by the WFQ scheduler for
	// the given priority band ("control", "data", "telemetry").
	RecordQoSDrop(priority string)

	// RecordFECChange reports a FEC strategy transition and the reason
	// that triggered it (e.g. "loss_rate_above_threshold").
	RecordFECChange(from, to, reason string)

	// RecordQueueDepth reports the WFQ scheduler's current total queue
	// depth, for a backlog gauge.
	RecordQueueDepth(depth int)

	// RecordThroughput reports bytes transferred in the most recent
	// reporting interval for the named layer.
	RecordThroughput(layer string, bytes uint64)
}

// CryptoRecorder is called by pkg/cryptocore to publish operation
// counters. Grounded on original_source's crypto telemetry trait
// (X25519/AEAD/HKDF/rotation/PoP counters).
type CryptoRecorder interface {
	RecordX25519(d time.Duration, success bool)
	RecordAEADEncrypt(d time.Duration, bytes int, success bool)
	RecordAEADDecrypt(d time.Duration, bytes int, success bool)
	RecordHKDF(d time.Duration, success bool)
	RecordKeyRotation(d time.Duration, success bool)
	RecordPoPGenerate()
	RecordPoPVerify(success bool)
	RecordPoPReplayDetected()
}

// NoopRecorder discards every metric. It satisfies SessionRecorder,
// LinkRecorder, and CryptoRecorder, and is usable as a zero value.
type NoopRecorder struct{}

var (
	_ SessionRecorder = NoopRecorder{}
	_ LinkRecorder    = NoopRecorder{}
	_ CryptoRecorder  = NoopRecorder{}
)

func (NoopRecorder) RecordEstablishment(time.Duration, bool)  {}
func (NoopRecorder) RecordStateTransition(string, string, bool) {}
func (NoopRecorder) RecordActiveSessions(int)                 {}
func (NoopRecorder) RecordFailure(string)                     {}

func (NoopRecorder) RecordLinkQuality(string, int, float64, uint64, uint32) {}
func (NoopRecorder) RecordQoSDrop(string)                                  {}
func (NoopRecorder) RecordFECChange(string, string, string)                {}
func (NoopRecorder) RecordQueueDepth(int)                                  {}
func (NoopRecorder) RecordThroughput(string, uint64)                       {}

func (NoopRecorder) RecordX25519(time.Duration, bool)         {}
func (NoopRecorder) RecordAEADEncrypt(time.Duration, int, bool) {}
func (NoopRecorder) RecordAEADDecrypt(time.Duration, int, bool) {}
func (NoopRecorder) RecordHKDF(time.Duration, bool)           {}
func (NoopRecorder) RecordKeyRotation(time.Duration, bool)    {}
func (NoopRecorder) RecordPoPGenerate()                       {}
func (NoopRecorder) RecordPoPVerify(bool)                     {}
func (NoopRecorder) RecordPoPReplayDetected()                 {}
