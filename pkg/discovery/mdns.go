package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// MDNSProtocol implements Protocol over multicast DNS, service type
// _honeylink._tcp.local. TXT keys follow the discovery wire format (§6):
// id, name, type, ver, port. A background interface watcher diffs the
// active non-loopback addresses and re-announces when the set changes.
type MDNSProtocol struct {
	mu sync.Mutex

	server   *zeroconf.Server
	browseCancel context.CancelFunc
	self     LocalPeer
	running  bool
	browsing bool

	devices map[string]PeerInfo

	watchInterval time.Duration
	lastIfaces    map[string]struct{}
	watchDone     chan struct{}
}

// NewMDNSProtocol constructs an idle MDNSProtocol.
func NewMDNSProtocol() *MDNSProtocol {
	return &MDNSProtocol{
		devices:       make(map[string]PeerInfo),
		watchInterval: 10 * time.Second,
	}
}

func (m *MDNSProtocol) StartAnnouncing(ctx context.Context, self LocalPeer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return nil
	}

	port := int(self.Port)
	if port == 0 {
		port = DefaultQUICPort
	}

	txt := []string{
		TXTKeyID + "=" + self.DeviceID,
		TXTKeyName + "=" + self.Name,
		TXTKeyType + "=" + self.DeviceType.String(),
		TXTKeyVersion + "=" + self.Version,
		TXTKeyPort + "=" + strconv.Itoa(port),
	}

	server, err := zeroconf.Register(self.DeviceID, ServiceType, Domain, port, txt, nil)
	if err != nil {
		return fmt.Errorf("discovery: mdns register: %w", err)
	}

	m.server = server
	m.self = self
	m.running = true
	m.lastIfaces = currentNonLoopbackAddrs()
	m.watchDone = make(chan struct{})
	go m.watchInterfaces()

	return nil
}

func (m *MDNSProtocol) StopAnnouncing() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return nil
	}
	if m.server != nil {
		m.server.Shutdown()
		m.server = nil
	}
	if m.watchDone != nil {
		close(m.watchDone)
		m.watchDone = nil
	}
	m.running = false
	return nil
}

// watchInterfaces polls the host's non-loopback address set and
// re-registers the mDNS service whenever it changes, so peers on a newly
// attached network pick up the announcement.
func (m *MDNSProtocol) watchInterfaces() {
	ticker := time.NewTicker(m.watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.watchDone:
			return
		case <-ticker.C:
			addrs := currentNonLoopbackAddrs()
			m.mu.Lock()
			changed := !sameAddrSet(addrs, m.lastIfaces)
			if changed && m.running && m.server != nil {
				m.lastIfaces = addrs
				self := m.self
				m.server.Shutdown()
				port := int(self.Port)
				if port == 0 {
					port = DefaultQUICPort
				}
				txt := []string{
					TXTKeyID + "=" + self.DeviceID,
					TXTKeyName + "=" + self.Name,
					TXTKeyType + "=" + self.DeviceType.String(),
					TXTKeyVersion + "=" + self.Version,
					TXTKeyPort + "=" + strconv.Itoa(port),
				}
				if server, err := zeroconf.Register(self.DeviceID, ServiceType, Domain, port, txt, nil); err == nil {
					m.server = server
				}
			}
			m.mu.Unlock()
		}
	}
}

func currentNonLoopbackAddrs() map[string]struct{} {
	out := make(map[string]struct{})
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return out
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		out[ipNet.IP.String()] = struct{}{}
	}
	return out
}

func sameAddrSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func (m *MDNSProtocol) StartBrowsing(ctx context.Context, onEvent func(Event)) error {
	m.mu.Lock()
	if m.browsing {
		m.mu.Unlock()
		return nil
	}
	browseCtx, cancel := context.WithCancel(ctx)
	m.browseCancel = cancel
	m.browsing = true
	m.mu.Unlock()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("discovery: mdns resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, 16)
	go func() {
		for entry := range entries {
			peer := peerFromEntry(entry)
			m.mu.Lock()
			m.devices[peer.DeviceID] = peer
			m.mu.Unlock()
			if onEvent != nil {
				onEvent(Event{Kind: EventDeviceFound, Peer: peer})
			}
		}
	}()

	if err := resolver.Browse(browseCtx, ServiceType, Domain, entries); err != nil {
		return fmt.Errorf("discovery: mdns browse: %w", err)
	}
	return nil
}

func peerFromEntry(entry *zeroconf.ServiceEntry) PeerInfo {
	peer := PeerInfo{
		DeviceID: entry.Instance,
		Port:     uint16(entry.Port),
		LastSeen: time.Now(),
	}
	for _, a := range entry.AddrIPv4 {
		peer.Addresses = append(peer.Addresses, a.String())
	}
	for _, a := range entry.AddrIPv6 {
		peer.Addresses = append(peer.Addresses, a.String())
	}
	for _, kv := range entry.Text {
		key, val := splitTXT(kv)
		switch key {
		case TXTKeyID:
			peer.DeviceID = val
		case TXTKeyName:
			peer.Name = val
		case TXTKeyType:
			peer.DeviceType = ParseDeviceType(val)
		case TXTKeyVersion:
			peer.Version = val
		case TXTKeyPort:
			if p, err := strconv.Atoi(val); err == nil {
				peer.Port = uint16(p)
			}
		}
	}
	return peer
}

func splitTXT(kv string) (key, val string) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:]
		}
	}
	return kv, ""
}

func (m *MDNSProtocol) StopBrowsing() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.browsing {
		return nil
	}
	if m.browseCancel != nil {
		m.browseCancel()
	}
	m.browsing = false
	return nil
}

func (m *MDNSProtocol) GetDevices() map[string]PeerInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]PeerInfo, len(m.devices))
	for k, v := range m.devices {
		out[k] = v
	}
	return out
}

func (m *MDNSProtocol) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running || m.browsing
}
