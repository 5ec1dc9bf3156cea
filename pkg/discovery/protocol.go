package discovery

import "context"

// LocalPeer is the information a Protocol announces about this host.
type LocalPeer struct {
	DeviceID   string
	Name       string
	DeviceType DeviceType
	Version    string
	Port       uint16
}

// Protocol is the common announce/browse contract every discovery
// transport implements. start_announcing, stop_announcing,
// start_browsing, and stop_browsing are all idempotent: calling a start
// method while already started, or a stop method while already stopped,
// is a no-op that returns nil.
type Protocol interface {
	// StartAnnouncing begins advertising self on this transport.
	StartAnnouncing(ctx context.Context, self LocalPeer) error
	// StopAnnouncing stops advertising self.
	StopAnnouncing() error
	// StartBrowsing begins watching for peers, delivering found peers to
	// onEvent until the context is cancelled or StopBrowsing is called.
	// Lost peers are not reported here; DiscoveryManager derives them.
	StartBrowsing(ctx context.Context, onEvent func(Event)) error
	// StopBrowsing stops watching for peers.
	StopBrowsing() error
	// GetDevices returns a snapshot map from device id to the most
	// recently observed PeerInfo.
	GetDevices() map[string]PeerInfo
	// IsRunning reports whether either announcing or browsing is active.
	IsRunning() bool
}
