// Package honeyid defines the typed identifiers shared across the HoneyLink
// core: device identifiers, time-ordered session/stream identifiers, and
// W3C trace-context parsing.
package honeyid
