package transport

import (
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// Priority is a packet's QoS priority, 0 (highest) through 7 (lowest), per
// §3's Packet data model. NewPacket refuses any value outside this range;
// Band reconciles the finer-grained priority with the WFQScheduler's three
// fixed bands.
type Priority uint8

// MaxPriority is the highest (least urgent) valid Priority value.
const MaxPriority Priority = 7

// Representative priorities for the three WFQ bands. Any value in 0-7 is a
// valid Priority; these are simply the canonical values callers use when
// they mean "the control/data/telemetry band" rather than a specific
// numeric priority.
const (
	PriorityControl   Priority = 0
	PriorityData      Priority = 3
	PriorityTelemetry Priority = 6
)

// Valid reports whether p falls within the 0-7 range §3 mandates.
func (p Priority) Valid() bool {
	return p <= MaxPriority
}

// String returns the priority's representative band name, or its numeric
// value if it doesn't match one of the three canonical priorities exactly.
func (p Priority) String() string {
	switch p {
	case PriorityControl:
		return "CONTROL"
	case PriorityData:
		return "DATA"
	case PriorityTelemetry:
		return "TELEMETRY"
	default:
		return p.Band().String()
	}
}

// Band is one of the WFQScheduler's three fixed priority bands.
type Band uint8

const (
	// BandControl carries session/policy control-plane traffic.
	BandControl Band = iota
	// BandData carries application stream data.
	BandData
	// BandTelemetry carries low-priority observability payloads.
	BandTelemetry
)

// String returns the band name.
func (b Band) String() string {
	switch b {
	case BandControl:
		return "CONTROL"
	case BandData:
		return "DATA"
	case BandTelemetry:
		return "TELEMETRY"
	default:
		return "UNKNOWN"
	}
}

// Band maps the packet's 0-7 priority onto one of the WFQScheduler's three
// bands. The split (0-1 control, 2-5 data, 6-7 telemetry) approximates the
// bands' default 25/60/15 weight distribution across the wider priority
// space; §4.4 only fixes the band count and default weights, not how a
// numeric priority is sorted into them.
func (p Priority) Band() Band {
	switch {
	case p <= 1:
		return BandControl
	case p <= 5:
		return BandData
	default:
		return BandTelemetry
	}
}

// Packet is the unit of data moved across a link-layer Adapter.
type Packet struct {
	// StreamID identifies the logical stream this packet belongs to.
	StreamID string

	// Priority selects the WFQ band and FEC treatment; always 0-7.
	Priority Priority

	// Payload is the packet body, already framed/encrypted by the caller.
	Payload []byte

	// CreatedAt orders packets within a band (FIFO by creation time).
	CreatedAt time.Time
}

// NewPacket constructs a Packet, refusing an out-of-range priority at
// construction time rather than deferring the check to enqueue (§3:
// "Priority out of range is refused at construction time").
func NewPacket(streamID string, priority Priority, payload []byte, createdAt time.Time) (Packet, error) {
	if !priority.Valid() {
		return Packet{}, honeyerr.Validationf("transport: packet priority %d out of range 0-%d", priority, MaxPriority)
	}
	return Packet{
		StreamID:  streamID,
		Priority:  priority,
		Payload:   payload,
		CreatedAt: createdAt,
	}, nil
}

// LinkQualityMetrics summarizes the observed quality of a link-layer Adapter.
type LinkQualityMetrics struct {
	// RssiDbm is the received signal strength in dBm (radio adapters only; 0 if not applicable).
	RssiDbm int

	// SnrDb is the signal-to-noise ratio in dB (radio adapters only; 0 if not applicable).
	SnrDb float64

	// LossRate is the fraction of packets lost in [0, 1].
	LossRate float64

	// BandwidthBps is the estimated available bandwidth in bits per second.
	BandwidthBps uint64

	// LatencyMs is the estimated round-trip latency in milliseconds.
	LatencyMs uint32
}

// IsGood reports whether the link is comfortably healthy: rssi>-70, snr>15,
// and loss<0.05 (§3).
func (m LinkQualityMetrics) IsGood() bool {
	return m.RssiDbm > -70 && m.SnrDb > 15 && m.LossRate < 0.05
}

// IsDegraded reports whether any single metric has crossed into the
// degraded range: rssi<-80, snr<10, or loss>0.15 (§3).
func (m LinkQualityMetrics) IsDegraded() bool {
	return m.RssiDbm < -80 || m.SnrDb < 10 || m.LossRate > 0.15
}
