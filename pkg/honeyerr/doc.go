// Package honeyerr defines the unified error taxonomy shared by every
// HoneyLink package: a fixed set of kinds, a stable ERR_* code per kind, and
// the HTTP status a control-plane handler should answer with.
package honeyerr
