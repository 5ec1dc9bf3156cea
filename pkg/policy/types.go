package policy

import (
	"encoding/json"
	"time"
)

// FECMode mirrors the transport FEC strategy a profile/policy requests.
type FECMode string

const (
	FECModeNone  FECMode = "none"
	FECModeLight FECMode = "light"
	FECModeHeavy FECMode = "heavy"
)

// PowerProfile is the power-management hint a profile carries through to
// the bound transport adapter.
type PowerProfile string

const (
	PowerUltraLow PowerProfile = "ultra_low"
	PowerLow      PowerProfile = "low"
	PowerNormal   PowerProfile = "normal"
	PowerHigh     PowerProfile = "high"
)

// Profile is a signed, immutable QoS template. "Update" creates a new
// version; "delete" is soft and sets DeprecatedAfter.
type Profile struct {
	ProfileID           string
	ProfileVersion      string // SemVer
	UseCase             string
	LatencyBudgetMs     uint32
	BandwidthFloorMbps  float64
	BandwidthCeilingMbps float64
	FECMode             FECMode
	Priority            uint8 // 0-7
	PowerProfile        PowerProfile
	DeprecatedAfter      *time.Time
	Signature           []byte // Ed25519 over CanonicalBytes()
}

// canonicalProfile is the deterministic field-ordered JSON encoding used
// for signing and signature verification (§6).
type canonicalProfile struct {
	ProfileID            string  `json:"profile_id"`
	ProfileVersion       string  `json:"profile_version"`
	UseCase              string  `json:"use_case"`
	LatencyBudgetMs      uint32  `json:"latency_budget_ms"`
	BandwidthFloorMbps   float64 `json:"bandwidth_floor_mbps"`
	BandwidthCeilingMbps float64 `json:"bandwidth_ceiling_mbps"`
	FECMode              string  `json:"fec_mode"`
	Priority             uint8   `json:"priority"`
	PowerProfile         string  `json:"power_profile"`
	DeprecatedAfter      string  `json:"deprecated_after,omitempty"`
}

// CanonicalBytes renders the deterministic encoding a Profile is signed
// over. Field order is fixed regardless of struct field order so the
// same logical profile always serializes identically.
func (p Profile) CanonicalBytes() ([]byte, error) {
	c := canonicalProfile{
		ProfileID:            p.ProfileID,
		ProfileVersion:       p.ProfileVersion,
		UseCase:              p.UseCase,
		LatencyBudgetMs:      p.LatencyBudgetMs,
		BandwidthFloorMbps:   p.BandwidthFloorMbps,
		BandwidthCeilingMbps: p.BandwidthCeilingMbps,
		FECMode:              string(p.FECMode),
		Priority:             p.Priority,
		PowerProfile:         string(p.PowerProfile),
	}
	if p.DeprecatedAfter != nil {
		c.DeprecatedAfter = p.DeprecatedAfter.UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(c)
}

// Deprecated reports whether the profile has been soft-deleted.
func (p Profile) Deprecated() bool {
	return p.DeprecatedAfter != nil && !p.DeprecatedAfter.After(time.Now())
}

// Policy is a Profile instantiated for a specific stream and device.
type Policy struct {
	PolicyID             string
	ProfileID            string
	StreamID             uint8 // 0-7
	SchemaVersion        string
	LatencyBudgetMs      uint32
	BandwidthFloorMbps   float64
	BandwidthCeilingMbps float64
	FECMode              FECMode
	Priority             uint8
	PowerProfile         PowerProfile
	ExpirationTs         time.Time
	Signature            string
}

// Expired reports whether the policy is no longer authoritative.
func (p Policy) Expired() bool {
	return time.Now().After(p.ExpirationTs)
}
