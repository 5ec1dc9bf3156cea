package session

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// DefaultMinVersion and DefaultMaxVersion bound the supported SemVer
// range a server will negotiate (§4.6, §6 versioning.min/max).
const (
	DefaultMinVersion = "1.0.0"
	DefaultMaxVersion = "2.9.99"
)

// VersionNegotiationFailedError is returned when the client's offered
// version falls outside the supported range.
type VersionNegotiationFailedError struct {
	Client string
	Server string
}

func (e *VersionNegotiationFailedError) Error() string {
	return fmt.Sprintf("session: version negotiation failed: client=%s server=%s", e.Client, e.Server)
}

// VersionNegotiator advertises a preferred version within [min, max] and
// negotiates against a client-offered version.
type VersionNegotiator struct {
	min        *semver.Version
	max        *semver.Version
	preferred  *semver.Version
	constraint *semver.Constraints
}

// NewVersionNegotiator builds a negotiator over [min, max] advertising
// preferred as the server's preferred version. preferred need not be
// within range for construction to succeed, but negotiation against a
// client outside [min, max] always fails.
func NewVersionNegotiator(min, max, preferred string) (*VersionNegotiator, error) {
	minV, err := semver.NewVersion(min)
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "parse min version %q", min)
	}
	maxV, err := semver.NewVersion(max)
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "parse max version %q", max)
	}
	prefV, err := semver.NewVersion(preferred)
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "parse preferred version %q", preferred)
	}
	constraint, err := semver.NewConstraint(fmt.Sprintf(">=%s, <=%s", minV, maxV))
	if err != nil {
		return nil, honeyerr.Wrap(honeyerr.KindInternal, err, "build version constraint")
	}
	return &VersionNegotiator{min: minV, max: maxV, preferred: prefV, constraint: constraint}, nil
}

// DefaultVersionNegotiator builds a negotiator over the spec's default
// range, advertising preferred as the server's preferred version.
func DefaultVersionNegotiator(preferred string) (*VersionNegotiator, error) {
	return NewVersionNegotiator(DefaultMinVersion, DefaultMaxVersion, preferred)
}

// Negotiation is the result of a successful negotiation.
type Negotiation struct {
	Negotiated *semver.Version
	IsFallback bool
}

// Negotiate checks clientOffered against the supported range and returns
// min(client, server) per §4.6. It fails with
// VersionNegotiationFailedError if the client falls outside [min, max].
func (n *VersionNegotiator) Negotiate(clientOffered string) (Negotiation, error) {
	client, err := semver.NewVersion(clientOffered)
	if err != nil {
		return Negotiation{}, honeyerr.Wrap(honeyerr.KindValidation, err, "parse client version %q", clientOffered)
	}
	if !n.constraint.Check(client) {
		return Negotiation{}, honeyerr.Wrap(honeyerr.KindState,
			&VersionNegotiationFailedError{Client: clientOffered, Server: n.preferred.String()},
			"client version outside supported range")
	}

	negotiated := n.preferred
	if client.LessThan(n.preferred) {
		negotiated = client
	}
	return Negotiation{
		Negotiated: negotiated,
		IsFallback: negotiated.LessThan(n.preferred),
	}, nil
}
