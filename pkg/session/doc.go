// Package session implements the HoneyLink Session Orchestrator: the
// five-state handshake machine, its TTL and sliding-activity discipline,
// SemVer version negotiation, idempotent request handling, and the
// lifecycle event bus consumed by telemetry and the transport core.
package session
