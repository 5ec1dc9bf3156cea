package transport

import (
	"sync"
	"time"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// tokenBucket is a classic token-bucket limiter: tokens refill continuously
// at RequestsPerSecond up to BurstSize, and each request consumes one token.
type tokenBucket struct {
	mu            sync.Mutex
	ratePerSecond float64
	burstSize     float64
	tokens        float64
	lastRefillAt  time.Time
}

func newTokenBucket(ratePerSecond, burstSize float64, now time.Time) *tokenBucket {
	return &tokenBucket{
		ratePerSecond: ratePerSecond,
		burstSize:     burstSize,
		tokens:        burstSize,
		lastRefillAt:  now,
	}
}

func (b *tokenBucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	elapsed := now.Sub(b.lastRefillAt).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.ratePerSecond
		if b.tokens > b.burstSize {
			b.tokens = b.burstSize
		}
		b.lastRefillAt = now
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimiter enforces a per-origin-address token bucket. It is
// authoritative only over orchestrator ingress (handshake/touch/rekey
// requests); it does not gate application stream data, which is governed
// by the WFQScheduler and a peer's own flow control instead.
type RateLimiter struct {
	requestsPerSecond float64
	burstSize         float64
	buckets           sync.Map // map[string]*tokenBucket
	now               func() time.Time
}

// NewRateLimiter returns a limiter with the given per-address rate and burst.
func NewRateLimiter(requestsPerSecond, burstSize float64) *RateLimiter {
	return &RateLimiter{
		requestsPerSecond: requestsPerSecond,
		burstSize:         burstSize,
		now:               time.Now,
	}
}

// SetClock overrides the limiter's time source; used by tests.
func (r *RateLimiter) SetClock(now func() time.Time) {
	r.now = now
}

// Allow consumes one token for originAddr, returning a honeyerr.KindState
// error if the bucket is depleted.
func (r *RateLimiter) Allow(originAddr string) error {
	now := r.now()

	v, _ := r.buckets.LoadOrStore(originAddr, newTokenBucket(r.requestsPerSecond, r.burstSize, now))
	b := v.(*tokenBucket)

	if !b.allow(now) {
		return honeyerr.Statef("transport: rate limit exceeded for %s", originAddr)
	}
	return nil
}
