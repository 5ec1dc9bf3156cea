package discovery

import (
	"sync"
	"time"
)

// PeerCache is a TTL-swept cache of the most recently observed
// PeerInfo per device id. The DiscoveryManager uses it to compute
// DeviceLost by absence: a peer not refreshed within the TTL is swept out
// and reported lost. Supplements the "peer cache" feature present in the
// original discovery network monitor but dropped from the distilled
// component table.
type PeerCache struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]PeerInfo
}

// NewPeerCache constructs an empty cache with the given entry TTL.
func NewPeerCache(ttl time.Duration) *PeerCache {
	return &PeerCache{ttl: ttl, m: make(map[string]PeerInfo)}
}

// Put inserts or refreshes a peer's entry, stamping LastSeen to now when
// the peer carries no LastSeen of its own.
func (c *PeerCache) Put(peer PeerInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if peer.LastSeen.IsZero() {
		peer.LastSeen = time.Now()
	}
	c.m[peer.DeviceID] = peer
}

// Get returns the cached entry for a device id, if present.
func (c *PeerCache) Get(deviceID string) (PeerInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.m[deviceID]
	return p, ok
}

// Remove deletes the cached entry for a device id.
func (c *PeerCache) Remove(deviceID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, deviceID)
}

// Snapshot returns a copy of every currently cached entry.
func (c *PeerCache) Snapshot() map[string]PeerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]PeerInfo, len(c.m))
	for k, v := range c.m {
		out[k] = v
	}
	return out
}

// Sweep removes and returns every entry whose LastSeen exceeds the TTL.
func (c *PeerCache) Sweep() []PeerInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	var lost []PeerInfo
	for id, p := range c.m {
		if now.Sub(p.LastSeen) > c.ttl {
			lost = append(lost, p)
			delete(c.m, id)
		}
	}
	return lost
}
