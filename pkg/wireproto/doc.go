// Package wireproto defines the Operation/Status vocabulary HoneyLink uses
// to describe session-plane exchanges, used by the structured event log in
// pkg/honeylog.
package wireproto
