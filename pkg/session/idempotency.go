package session

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// IdempotencyRetention is how long a cached response snapshot remains
// authoritative for its idempotency key (§3, §6 idempotency.retention_hours).
const IdempotencyRetention = 24 * time.Hour

// Fingerprint computes the 64-bit non-crypto hash of a canonical request
// body used to detect a tampered retry (§3).
func Fingerprint(canonicalBody []byte) uint64 {
	h := fnv.New64a()
	h.Write(canonicalBody)
	return h.Sum64()
}

// idempotencyRecord mirrors §3's IdempotencyRecord.
type idempotencyRecord struct {
	fingerprint uint64
	response    any
	createdAt   time.Time
	expiresAt   time.Time
}

// IdempotencyStore is a check-then-insert, first-writer-wins cache of
// state-changing request responses keyed by client-supplied idempotency
// key (P9).
type IdempotencyStore struct {
	mu      sync.Mutex
	records map[string]*idempotencyRecord
}

// NewIdempotencyStore constructs an empty store.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{records: make(map[string]*idempotencyRecord)}
}

// Outcome classifies how CheckAndStore resolved a request.
type Outcome int

const (
	// OutcomeFirstReceipt means the request was stored for the first time
	// (or its prior record had expired) and should be executed.
	OutcomeFirstReceipt Outcome = iota
	// OutcomeReplay means an identical request was already recorded; the
	// cached response should be returned without re-executing.
	OutcomeReplay
	// OutcomeTampered means the key was reused with a different request
	// fingerprint; a Conflict must be returned and the original record
	// left untouched.
	OutcomeTampered
)

// CheckAndStore looks up key under the store's lock. If no live record
// exists (first receipt, or the prior one expired), it installs a record
// for fingerprint with no response yet and returns OutcomeFirstReceipt and
// nil so the caller can proceed to execute the request and then call
// Finalize with the response. If a live record exists with a matching fingerprint, it
// returns OutcomeReplay and the cached response. A live record with a
// different fingerprint returns OutcomeTampered and leaves the original
// record untouched.
func (s *IdempotencyStore) CheckAndStore(key string, fingerprint uint64, now time.Time) (Outcome, any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if ok && now.After(rec.expiresAt) {
		delete(s.records, key)
		ok = false
	}
	if !ok {
		s.records[key] = &idempotencyRecord{
			fingerprint: fingerprint,
			createdAt:   now,
			expiresAt:   now.Add(IdempotencyRetention),
		}
		return OutcomeFirstReceipt, nil
	}
	if rec.fingerprint != fingerprint {
		return OutcomeTampered, nil
	}
	return OutcomeReplay, rec.response
}

// Finalize attaches the response snapshot to the record created by a
// first-receipt CheckAndStore call.
func (s *IdempotencyStore) Finalize(key string, response any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[key]; ok {
		rec.response = response
	}
}

// GC removes every record whose retention window has elapsed.
func (s *IdempotencyStore) GC(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, rec := range s.records {
		if now.After(rec.expiresAt) {
			delete(s.records, k)
			removed++
		}
	}
	return removed
}

// TamperedError is the error returned by the orchestrator's request
// handler when an idempotency key is replayed with a different body.
func TamperedError(key string) error {
	return honeyerr.Conflictf("session: idempotency key %q reused with a different request body", key)
}
