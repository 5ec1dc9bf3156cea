package transport

import (
	"testing"
	"time"
)

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	r := NewRateLimiter(1, 3)
	now := time.Now()
	r.SetClock(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if err := r.Allow("peer-a"); err != nil {
			t.Fatalf("Allow() call %d: %v", i, err)
		}
	}
	if err := r.Allow("peer-a"); err == nil {
		t.Fatal("expected rate limit error after burst exhausted")
	}
}

func TestRateLimiter_RefillsOverTime(t *testing.T) {
	r := NewRateLimiter(1, 1)
	now := time.Now()
	r.SetClock(func() time.Time { return now })

	if err := r.Allow("peer-b"); err != nil {
		t.Fatalf("Allow(): %v", err)
	}
	if err := r.Allow("peer-b"); err == nil {
		t.Fatal("expected depletion on second immediate call")
	}

	now = now.Add(2 * time.Second)
	if err := r.Allow("peer-b"); err != nil {
		t.Fatalf("Allow() after refill: %v", err)
	}
}

func TestRateLimiter_IndependentPerAddress(t *testing.T) {
	r := NewRateLimiter(1, 1)
	now := time.Now()
	r.SetClock(func() time.Time { return now })

	if err := r.Allow("peer-x"); err != nil {
		t.Fatalf("Allow(peer-x): %v", err)
	}
	if err := r.Allow("peer-y"); err != nil {
		t.Fatalf("Allow(peer-y) should be independent of peer-x: %v", err)
	}
}
