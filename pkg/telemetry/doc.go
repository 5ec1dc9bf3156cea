// Package telemetry defines the recorder interfaces the session,
// transport, and crypto layers call into to publish metrics. It is an
// interface-only package: a concrete sink (Prometheus, StatsD, a metrics
// pipeline) is an external collaborator that implements these
// interfaces without this package depending on it. NoopRecorder
// satisfies all three and is the default wiring for tests and for
// callers that don't need metrics.
package telemetry
