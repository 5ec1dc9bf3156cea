// Package policy implements the HoneyLink Policy & Profile Engine: signed
// QoS profile templates, policies instantiated from them for a specific
// stream and device, and a fan-out event bus notifying the session
// orchestrator, transport core, and telemetry of policy lifecycle changes.
package policy
