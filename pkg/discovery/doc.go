// Package discovery implements peer discovery for HoneyLink.
//
// A common Protocol contract (start_announcing, stop_announcing,
// start_browsing, stop_browsing, get_devices, is_running) is implemented by
// two transports:
//
//   - Multicast DNS: service type _honeylink._tcp.local, announcing
//     device_type, software version, and QUIC port in its TXT record. A
//     background network-interface watcher re-announces when the set of
//     non-loopback addresses changes.
//   - Low-energy radio beacon: a well-known 128-bit service UUID with
//     device info exposed as a GATT characteristic.
//
// A DiscoveryManager aggregates both protocols under a selection strategy
// and multiplexes their events into a single stream for the session
// orchestrator.
package discovery
