package cryptocore

import (
	"errors"
	"sync"
	"time"
)

// RotationErrors.
var (
	ErrNoCurrentKey    = errors.New("cryptocore: no current key version")
	ErrVersionNotFound  = errors.New("cryptocore: key version not found")
	ErrVersionRetired   = errors.New("cryptocore: key version retired past grace period")
)

// KeyVersion is a monotonically increasing key generation number.
type KeyVersion uint64

// VersionedKey pairs a key scope's generation with its material and the
// deadline until which a superseded version remains acceptable to readers.
type VersionedKey struct {
	Version      KeyVersion
	Key          [32]byte
	CreatedAt    time.Time
	SupersededAt time.Time // zero if still current
}

// RotationManager holds the current and, during the grace period, the
// immediately preceding version of a single key scope. Readers accept
// either; writers always use current.
type RotationManager struct {
	mu          sync.RWMutex
	scope       KeyScope
	graceWindow time.Duration

	current  *VersionedKey
	previous *VersionedKey

	timer *time.Timer
}

// NewRotationManager constructs a manager for scope whose superseded
// versions are accepted for graceWindow after rotation.
func NewRotationManager(scope KeyScope, graceWindow time.Duration) *RotationManager {
	return &RotationManager{scope: scope, graceWindow: graceWindow}
}

// Initialize installs the first key version. It must be called once
// before Current or Lookup are used.
func (r *RotationManager) Initialize(key [32]byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = &VersionedKey{Version: 1, Key: key, CreatedAt: time.Now()}
}

// Rotate installs newKey as the current version, demotes the prior
// current version to previous, and schedules its zeroization after the
// grace window elapses.
func (r *RotationManager) Rotate(newKey [32]byte) (KeyVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return 0, ErrNoCurrentKey
	}

	supersededAt := time.Now()
	r.current.SupersededAt = supersededAt
	retiring := r.current
	r.previous = retiring

	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.graceWindow, func() {
		r.retirePrevious(retiring.Version)
	})

	nextVersion := retiring.Version + 1
	r.current = &VersionedKey{Version: nextVersion, Key: newKey, CreatedAt: supersededAt}
	return nextVersion, nil
}

// retirePrevious zeroes the previous key once its grace window has
// elapsed, provided it hasn't already been superseded by a later rotation.
func (r *RotationManager) retirePrevious(version KeyVersion) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.previous != nil && r.previous.Version == version {
		for i := range r.previous.Key {
			r.previous.Key[i] = 0
		}
		r.previous = nil
	}
}

// Current returns the active key version.
func (r *RotationManager) Current() (VersionedKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return VersionedKey{}, ErrNoCurrentKey
	}
	return *r.current, nil
}

// Lookup returns the key material for version if it is the current
// version or a still-grace-period previous version.
func (r *RotationManager) Lookup(version KeyVersion) (VersionedKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current != nil && r.current.Version == version {
		return *r.current, nil
	}
	if r.previous != nil && r.previous.Version == version {
		return *r.previous, nil
	}
	return VersionedKey{}, ErrVersionNotFound
}
