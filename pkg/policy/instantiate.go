package policy

import (
	"fmt"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
	"github.com/honeylink/honeylink-core/pkg/honeyid"
)

// DefaultPolicyTTLHours is the policy expiration TTL used when the caller
// does not supply one (§4.5).
const DefaultPolicyTTLHours = 12

// CreatePolicyFromProfile instantiates a Policy bound to streamID and
// deviceID from an existing signed Profile. streamID must be in 0..=7;
// any other value is refused as Validation. The returned policy is fully
// validated before it is handed back to the caller.
func CreatePolicyFromProfile(profile Profile, streamID uint8, deviceID honeyid.DeviceId, ttlHours *uint32) (Policy, error) {
	if streamID > 7 {
		return Policy{}, honeyerr.Validationf("policy: stream id %d out of range 0-7", streamID)
	}
	if !deviceID.Valid() {
		return Policy{}, honeyerr.Validationf("policy: invalid device id %q", deviceID)
	}

	ttl := uint32(DefaultPolicyTTLHours)
	if ttlHours != nil {
		ttl = *ttlHours
	}

	policyID, err := honeyid.NewSessionId() // time-ordered id, reused for policy ids
	if err != nil {
		return Policy{}, honeyerr.Wrap(honeyerr.KindInternal, err, "mint policy id")
	}

	policy := Policy{
		PolicyID:             policyID.String(),
		ProfileID:            profile.ProfileID,
		StreamID:             streamID,
		SchemaVersion:        profile.ProfileVersion,
		LatencyBudgetMs:      profile.LatencyBudgetMs,
		BandwidthFloorMbps:   profile.BandwidthFloorMbps,
		BandwidthCeilingMbps: profile.BandwidthCeilingMbps,
		FECMode:              profile.FECMode,
		Priority:             profile.Priority,
		PowerProfile:         profile.PowerProfile,
		ExpirationTs:         time.Now().Add(time.Duration(ttl) * time.Hour),
		Signature:            fmt.Sprintf("policy:%s:device:%s", profile.Signature, deviceID),
	}

	if err := validatePolicy(policy); err != nil {
		return Policy{}, err
	}
	return policy, nil
}

func validatePolicy(p Policy) error {
	if p.StreamID > 7 {
		return honeyerr.Validationf("policy: stream id %d out of range 0-7", p.StreamID)
	}
	if p.PolicyID == "" || p.ProfileID == "" {
		return honeyerr.Validationf("policy: missing policy or profile id")
	}
	if p.ExpirationTs.Before(time.Now()) {
		return honeyerr.Validationf("policy: expiration_ts already in the past")
	}
	return nil
}
