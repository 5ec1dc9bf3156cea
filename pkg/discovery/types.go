package discovery

import (
	"errors"
	"time"
)

// ServiceType is the mDNS service type HoneyLink peers announce under.
const ServiceType = "_honeylink._tcp"

// Domain is the mDNS domain.
const Domain = "local."

// DefaultQUICPort is the default QUIC transport port advertised in TXT
// records and used when a PeerInfo carries no explicit port.
const DefaultQUICPort = 7843

// DefaultBrowseTimeout bounds a single browse pass when none is supplied.
const DefaultBrowseTimeout = 10 * time.Second

// TXT record key constants, per the discovery wire format.
const (
	TXTKeyID      = "id"
	TXTKeyName    = "name"
	TXTKeyType    = "type"
	TXTKeyVersion = "ver"
	TXTKeyPort    = "port"
)

// DeviceType classifies the kind of device a peer runs on.
type DeviceType uint8

const (
	DeviceTypeUnknown DeviceType = iota
	DeviceTypeDesktop
	DeviceTypeMobile
	DeviceTypeIoT
	DeviceTypeServer
)

// String renders the TXT record string form of the device type.
func (d DeviceType) String() string {
	switch d {
	case DeviceTypeDesktop:
		return "desktop"
	case DeviceTypeMobile:
		return "mobile"
	case DeviceTypeIoT:
		return "iot"
	case DeviceTypeServer:
		return "server"
	default:
		return "unknown"
	}
}

// Byte renders the one-byte beacon tag form of the device type.
func (d DeviceType) Byte() byte {
	return byte(d)
}

// ParseDeviceType maps a TXT record string back to a DeviceType.
func ParseDeviceType(s string) DeviceType {
	switch s {
	case "desktop":
		return DeviceTypeDesktop
	case "mobile":
		return DeviceTypeMobile
	case "iot":
		return DeviceTypeIoT
	case "server":
		return DeviceTypeServer
	default:
		return DeviceTypeUnknown
	}
}

// ParseDeviceTypeByte maps a one-byte beacon tag back to a DeviceType.
func ParseDeviceTypeByte(b byte) DeviceType {
	switch b {
	case 1:
		return DeviceTypeDesktop
	case 2:
		return DeviceTypeMobile
	case 3:
		return DeviceTypeIoT
	case 4:
		return DeviceTypeServer
	default:
		return DeviceTypeUnknown
	}
}

// PeerInfo is the snapshot of a discovered peer surfaced through
// get_devices and DeviceFound events.
type PeerInfo struct {
	DeviceID   string
	Name       string
	DeviceType DeviceType
	Version    string
	Port       uint16
	Addresses  []string
	LastSeen   time.Time
	ViaBLE     bool
}

// Discovery errors.
var (
	ErrAlreadyRunning = errors.New("discovery: protocol already running")
	ErrNotRunning     = errors.New("discovery: protocol not running")
	ErrBrowseTimeout  = errors.New("discovery: browse timed out")
)

// EventKind classifies a discovery event.
type EventKind int

const (
	EventDeviceFound EventKind = iota
	EventDeviceLost
	EventNetworkChanged
)

// String renders the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventDeviceFound:
		return "DeviceFound"
	case EventDeviceLost:
		return "DeviceLost"
	case EventNetworkChanged:
		return "NetworkChanged"
	default:
		return "Unknown"
	}
}

// Event is a single item on the DiscoveryManager's multiplexed stream.
type Event struct {
	Kind EventKind
	Peer PeerInfo
}
