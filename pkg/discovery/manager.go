package discovery

import (
	"context"
	"sync"
	"time"
)

// Strategy selects which protocol(s) a DiscoveryManager aggregates.
type Strategy struct {
	kind strategyKind
	pref protocolTag
}

type strategyKind int

const (
	strategyAll strategyKind = iota
	strategyPrefer
	strategyOnly
)

type protocolTag int

const (
	protocolMdns protocolTag = iota
	protocolBle
)

// StrategyAll aggregates every registered protocol.
func StrategyAll() Strategy { return Strategy{kind: strategyAll} }

// StrategyPreferMdns browses all protocols but prefers mDNS-sourced peer
// info when the same device is seen on both.
func StrategyPreferMdns() Strategy { return Strategy{kind: strategyPrefer, pref: protocolMdns} }

// StrategyPreferBle prefers BLE-sourced peer info.
func StrategyPreferBle() Strategy { return Strategy{kind: strategyPrefer, pref: protocolBle} }

// StrategyOnlyMdns runs only the mDNS protocol.
func StrategyOnlyMdns() Strategy { return Strategy{kind: strategyOnly, pref: protocolMdns} }

// StrategyOnlyBle runs only the BLE protocol.
func StrategyOnlyBle() Strategy { return Strategy{kind: strategyOnly, pref: protocolBle} }

// DefaultStrategy is Prefer(Mdns), per §4.3.
func DefaultStrategy() Strategy { return StrategyPreferMdns() }

// DiscoveryManager aggregates discovery protocols under a Strategy and
// multiplexes DeviceFound and DeviceLost events onto a single stream for
// the Session Orchestrator. DeviceFound comes from the protocols;
// DeviceLost comes from the peer-cache sweep. No NetworkChanged event is
// emitted: the mDNS interface watcher re-announces on an address change
// without reporting it on this stream.
type DiscoveryManager struct {
	mu       sync.Mutex
	mdns     Protocol
	ble      Protocol
	strategy Strategy
	cache    *PeerCache

	events chan Event
	cancel context.CancelFunc
}

// NewDiscoveryManager constructs a manager over the given mDNS and BLE
// protocol implementations (either may be nil if that transport is
// unavailable) using the default strategy.
func NewDiscoveryManager(mdns, ble Protocol) *DiscoveryManager {
	return &DiscoveryManager{
		mdns:     mdns,
		ble:      ble,
		strategy: DefaultStrategy(),
		cache:    NewPeerCache(2 * time.Minute),
		events:   make(chan Event, 64),
	}
}

// SetStrategy changes the aggregation strategy. It takes effect on the
// next Start call.
func (d *DiscoveryManager) SetStrategy(s Strategy) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.strategy = s
}

func (d *DiscoveryManager) active() []Protocol {
	var out []Protocol
	switch d.strategy.kind {
	case strategyOnly:
		if d.strategy.pref == protocolMdns && d.mdns != nil {
			out = append(out, d.mdns)
		}
		if d.strategy.pref == protocolBle && d.ble != nil {
			out = append(out, d.ble)
		}
	default:
		if d.mdns != nil {
			out = append(out, d.mdns)
		}
		if d.ble != nil {
			out = append(out, d.ble)
		}
	}
	return out
}

// Start begins announcing self and browsing on every protocol the current
// strategy selects, fanning their events into Events().
func (d *DiscoveryManager) Start(ctx context.Context, self LocalPeer) error {
	d.mu.Lock()
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	protocols := d.active()
	d.mu.Unlock()

	for _, p := range protocols {
		if err := p.StartAnnouncing(ctx, self); err != nil {
			return err
		}
		if err := p.StartBrowsing(ctx, d.dispatch); err != nil {
			return err
		}
	}

	go d.watchLost(ctx)
	return nil
}

// dispatch is the onEvent callback handed to every underlying protocol;
// it applies the preference rule for duplicate devices and forwards to
// the manager's multiplexed stream.
func (d *DiscoveryManager) dispatch(ev Event) {
	d.mu.Lock()
	strategy := d.strategy
	d.mu.Unlock()

	if strategy.kind == strategyPrefer {
		preferBle := strategy.pref == protocolBle
		if existing, ok := d.cache.Get(ev.Peer.DeviceID); ok {
			if existing.ViaBLE == preferBle && ev.Peer.ViaBLE != preferBle {
				// Existing entry already matches the preferred source;
				// keep it unless this event IS from the preferred one.
				if ev.Peer.ViaBLE != preferBle {
					return
				}
			}
		}
	}

	d.cache.Put(ev.Peer)
	select {
	case d.events <- ev:
	default:
	}
}

// watchLost periodically sweeps the peer cache for entries that aged out
// and emits DeviceLost for each.
func (d *DiscoveryManager) watchLost(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, lost := range d.cache.Sweep() {
				select {
				case d.events <- Event{Kind: EventDeviceLost, Peer: lost}:
				default:
				}
			}
		}
	}
}

// Events returns the multiplexed event stream.
func (d *DiscoveryManager) Events() <-chan Event { return d.events }

// GetDevices returns the union snapshot across every active protocol.
func (d *DiscoveryManager) GetDevices() map[string]PeerInfo {
	return d.cache.Snapshot()
}

// Stop stops announcing and browsing on every active protocol.
func (d *DiscoveryManager) Stop() error {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	protocols := d.active()
	d.mu.Unlock()

	var firstErr error
	for _, p := range protocols {
		if err := p.StopBrowsing(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := p.StopAnnouncing(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
