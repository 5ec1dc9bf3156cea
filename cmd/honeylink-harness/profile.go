package main

import (
	"crypto/ed25519"

	"github.com/honeylink/honeylink-core/pkg/cryptocore"
	"github.com/honeylink/honeylink-core/pkg/policy"
)

// signedDemoProfile builds a Profile for useCase and signs it with priv,
// the way a profile-authoring collaborator would before handing it to
// the ProfileStore.
func signedDemoProfile(priv ed25519.PrivateKey, useCase string) (policy.Profile, error) {
	p := policy.Profile{
		ProfileID:            "profile-" + useCase,
		ProfileVersion:       "1.0.0",
		UseCase:              useCase,
		LatencyBudgetMs:      50,
		BandwidthFloorMbps:   1.0,
		BandwidthCeilingMbps: 100.0,
		FECMode:              policy.FECModeLight,
		Priority:             4,
		PowerProfile:         policy.PowerNormal,
	}
	canon, err := p.CanonicalBytes()
	if err != nil {
		return policy.Profile{}, err
	}
	p.Signature = cryptocore.Sign(priv, canon)
	return p, nil
}
