// Package transport provides HoneyLink's link-agnostic Transport Core: the
// Adapter abstraction and the scheduling/selection machinery built on top of
// it, allowing a session to move across QUIC, Wi-Fi Aware, or BLE links
// without the upper layers noticing.
//
// # Transport Core
//
//   - Adapter is implemented once per link technology (QUIC, Wi-Fi Aware,
//     BLE, ...) and exposes packet send/recv plus a link quality sample.
//   - Packet carries a priority in the full 0-7 range the session layer
//     assigns; NewPacket refuses an out-of-range priority at construction.
//   - LinkQualityMetrics.IsGood/IsDegraded implement the good/degraded
//     predicates a hot-swap or FEC decision is judged against.
//   - Registry holds the single active adapter behind an atomic pointer and
//     hot-swaps it under a HotSwapStrategy, with two-round hysteresis to
//     avoid flapping on a transient quality blip.
//   - FECSelector adapts forward-error-correction overhead to observed loss,
//     or forces FECHeavy immediately on a degraded LinkQualityMetrics sample.
//   - WFQScheduler fairly interleaves control/data/telemetry traffic across
//     the three bands a Priority maps into.
//   - RateLimiter enforces a per-address token bucket on orchestrator ingress.
//
// The reliable per-connection byte stream beneath a given Adapter (TLS
// handshake, framing, keep-alive) is link-technology-specific and owned by
// each Adapter implementation, not by this package.
package transport
