package discovery

import (
	"context"
	"sync"
	"time"
)

// BLEServiceUUID is the well-known 128-bit service UUID HoneyLink peers
// advertise over a low-energy radio beacon.
const BLEServiceUUID = "4e494e4b-4845-4f4e-4559-4c494e4b4244"

// blePeripheral is the process-local simulated GATT peripheral registry
// that BLEBeaconProtocol instances publish to and browse from. There is
// no cgo BLE stack available in this environment, so the beacon is
// modeled as a shared in-process broker behind the same Protocol
// contract the real radio would expose; the byte-tag characteristic
// encoding matches what a real adapter would transmit.
var blePeripheral = struct {
	mu        sync.Mutex
	listeners map[*BLEBeaconProtocol]struct{}
	adverts   map[string]bleAdvert
}{
	listeners: make(map[*BLEBeaconProtocol]struct{}),
	adverts:   make(map[string]bleAdvert),
}

type bleAdvert struct {
	peer PeerInfo
}

// BLECharacteristic is the GATT characteristic payload a beacon exposes:
// device id, name, a one-byte device-type tag, version, and port.
type BLECharacteristic struct {
	DeviceID   string
	Name       string
	DeviceType byte
	Version    string
	Port       uint16
}

// BLEBeaconProtocol implements Protocol over a low-energy radio beacon.
type BLEBeaconProtocol struct {
	mu       sync.Mutex
	self     LocalPeer
	running  bool
	browsing bool
	devices  map[string]PeerInfo

	stopBrowse chan struct{}
}

// NewBLEBeaconProtocol constructs an idle BLEBeaconProtocol.
func NewBLEBeaconProtocol() *BLEBeaconProtocol {
	return &BLEBeaconProtocol{devices: make(map[string]PeerInfo)}
}

func (b *BLEBeaconProtocol) StartAnnouncing(ctx context.Context, self LocalPeer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return nil
	}
	b.self = self
	b.running = true

	blePeripheral.mu.Lock()
	blePeripheral.adverts[self.DeviceID] = bleAdvert{peer: peerFromLocal(self)}
	blePeripheral.mu.Unlock()
	return nil
}

func (b *BLEBeaconProtocol) StopAnnouncing() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return nil
	}
	blePeripheral.mu.Lock()
	delete(blePeripheral.adverts, b.self.DeviceID)
	blePeripheral.mu.Unlock()
	b.running = false
	return nil
}

func (b *BLEBeaconProtocol) StartBrowsing(ctx context.Context, onEvent func(Event)) error {
	b.mu.Lock()
	if b.browsing {
		b.mu.Unlock()
		return nil
	}
	b.browsing = true
	b.stopBrowse = make(chan struct{})
	stop := b.stopBrowse
	b.mu.Unlock()

	blePeripheral.mu.Lock()
	blePeripheral.listeners[b] = struct{}{}
	blePeripheral.mu.Unlock()

	ticker := time.NewTicker(2 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				blePeripheral.mu.Lock()
				adverts := make([]bleAdvert, 0, len(blePeripheral.adverts))
				for id, a := range blePeripheral.adverts {
					if id == b.self.DeviceID {
						continue
					}
					adverts = append(adverts, a)
				}
				blePeripheral.mu.Unlock()

				b.mu.Lock()
				for _, a := range adverts {
					peer := a.peer
					peer.LastSeen = time.Now()
					peer.ViaBLE = true
					prev, known := b.devices[peer.DeviceID]
					b.devices[peer.DeviceID] = peer
					b.mu.Unlock()
					if onEvent != nil && (!known || prev.Addresses == nil) {
						onEvent(Event{Kind: EventDeviceFound, Peer: peer})
					}
					b.mu.Lock()
				}
				b.mu.Unlock()
			}
		}
	}()
	return nil
}

func (b *BLEBeaconProtocol) StopBrowsing() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.browsing {
		return nil
	}
	close(b.stopBrowse)
	b.browsing = false

	blePeripheral.mu.Lock()
	delete(blePeripheral.listeners, b)
	blePeripheral.mu.Unlock()
	return nil
}

func (b *BLEBeaconProtocol) GetDevices() map[string]PeerInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]PeerInfo, len(b.devices))
	for k, v := range b.devices {
		out[k] = v
	}
	return out
}

func (b *BLEBeaconProtocol) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running || b.browsing
}

func peerFromLocal(self LocalPeer) PeerInfo {
	return PeerInfo{
		DeviceID:   self.DeviceID,
		Name:       self.Name,
		DeviceType: self.DeviceType,
		Version:    self.Version,
		Port:       self.Port,
		LastSeen:   time.Now(),
		ViaBLE:     true,
	}
}

// EncodeCharacteristic renders the GATT characteristic payload with the
// one-byte device-type tag in place of the human-readable TXT string.
func EncodeCharacteristic(self LocalPeer) BLECharacteristic {
	return BLECharacteristic{
		DeviceID:   self.DeviceID,
		Name:       self.Name,
		DeviceType: self.DeviceType.Byte(),
		Version:    self.Version,
		Port:       self.Port,
	}
}

// DecodeCharacteristic reconstructs a PeerInfo from a GATT characteristic.
func DecodeCharacteristic(c BLECharacteristic) PeerInfo {
	return PeerInfo{
		DeviceID:   c.DeviceID,
		Name:       c.Name,
		DeviceType: ParseDeviceTypeByte(c.DeviceType),
		Version:    c.Version,
		Port:       c.Port,
		LastSeen:   time.Now(),
		ViaBLE:     true,
	}
}
