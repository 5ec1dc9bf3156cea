package policy

import (
	"crypto/ed25519"
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/cryptocore"
	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// ProfileStore is the persistence contract for Profiles. Signature
// verification is mandatory on Create and Update, and again on every
// read-back: a stored profile is never trusted across a process restart
// without re-verification (§4.5).
type ProfileStore interface {
	Create(profile Profile) error
	Update(profile Profile) error
	Delete(profileID string) error
	Get(profileID string) (Profile, error)
	List(useCase string) ([]Profile, error)
}

// MemoryProfileStore is a reader/writer-lock-guarded in-memory
// ProfileStore, the default wiring for the core (persistence to a
// durable backing store is an external collaborator's concern, per
// spec.md's Non-goals).
type MemoryProfileStore struct {
	mu       sync.RWMutex
	byID     map[string]Profile
	signerPK ed25519.PublicKey
}

// NewMemoryProfileStore constructs a store that verifies every profile's
// signature against signerPK.
func NewMemoryProfileStore(signerPK ed25519.PublicKey) *MemoryProfileStore {
	return &MemoryProfileStore{byID: make(map[string]Profile), signerPK: signerPK}
}

func (s *MemoryProfileStore) verify(p Profile) error {
	canon, err := p.CanonicalBytes()
	if err != nil {
		return honeyerr.Wrap(honeyerr.KindInternal, err, "canonicalize profile %s", p.ProfileID)
	}
	if err := cryptocore.Verify(s.signerPK, canon, p.Signature); err != nil {
		return honeyerr.Wrap(honeyerr.KindAuthorization, err, "profile %s signature verification failed", p.ProfileID)
	}
	return nil
}

// Create inserts a brand-new profile. The profile id must not already
// exist.
func (s *MemoryProfileStore) Create(p Profile) error {
	if err := s.verify(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[p.ProfileID]; exists {
		return honeyerr.Conflictf("profile %s already exists", p.ProfileID)
	}
	s.byID[p.ProfileID] = p
	return nil
}

// Update replaces an existing profile with a new signed version. Per
// §4.5 a Profile is immutable once created: "update" always targets a new
// profile_id/profile_version pair. Update requires a fresh valid
// signature and returns NotFound when ProfileID is not already stored.
func (s *MemoryProfileStore) Update(p Profile) error {
	if err := s.verify(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[p.ProfileID]; !exists {
		return honeyerr.NotFoundf("profile %s not found", p.ProfileID)
	}
	s.byID[p.ProfileID] = p
	return nil
}

// Delete soft-deletes a profile by stamping DeprecatedAfter to now.
func (s *MemoryProfileStore) Delete(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byID[profileID]
	if !ok {
		return honeyerr.NotFoundf("profile %s not found", profileID)
	}
	now := time.Now()
	p.DeprecatedAfter = &now
	s.byID[profileID] = p
	return nil
}

// Get returns a profile, re-verifying its signature before returning it.
func (s *MemoryProfileStore) Get(profileID string) (Profile, error) {
	s.mu.RLock()
	p, ok := s.byID[profileID]
	s.mu.RUnlock()
	if !ok {
		return Profile{}, honeyerr.NotFoundf("profile %s not found", profileID)
	}
	if err := s.verify(p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// List returns every profile matching useCase (empty string matches
// all), re-verifying each before inclusion.
func (s *MemoryProfileStore) List(useCase string) ([]Profile, error) {
	s.mu.RLock()
	candidates := make([]Profile, 0, len(s.byID))
	for _, p := range s.byID {
		if useCase == "" || p.UseCase == useCase {
			candidates = append(candidates, p)
		}
	}
	s.mu.RUnlock()

	out := make([]Profile, 0, len(candidates))
	for _, p := range candidates {
		if err := s.verify(p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
