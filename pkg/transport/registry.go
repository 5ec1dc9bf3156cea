package transport

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// HotSwapStrategy selects how the Registry picks the best candidate adapter
// during its polling loop.
type HotSwapStrategy int

const (
	// HotSwapHighestRssi prefers the adapter reporting the strongest signal.
	HotSwapHighestRssi HotSwapStrategy = iota
	// HotSwapLowestLossRate prefers the adapter reporting the least loss.
	HotSwapLowestLossRate
	// HotSwapHighestBandwidth prefers the adapter reporting the most bandwidth.
	HotSwapHighestBandwidth
	// HotSwapManual disables automatic switching; SetActive is the only way
	// to change the active adapter.
	HotSwapManual
)

// DefaultPollInterval is how often the Registry re-evaluates candidate
// adapters under an automatic HotSwapStrategy.
const DefaultPollInterval = 5 * time.Second

// LinkStateChange describes a completed hot-swap of the active adapter.
type LinkStateChange struct {
	FromType   string
	ToType     string
	DurationMs int64
	Reason     string
}

// Registry holds a single active Adapter behind an atomic pointer so
// senders can keep transmitting through a hot-swap without locking, and
// manages automatic switching between registered candidate adapters.
type Registry struct {
	active   atomic.Pointer[Adapter]
	strategy HotSwapStrategy

	mu         sync.Mutex
	candidates map[string]Adapter
	pollEvery  time.Duration
	hysteresis map[string]int // candidate layer type -> consecutive winning rounds

	events chan LinkStateChange
	cancel context.CancelFunc
}

// NewRegistry returns a Registry with no active adapter and the given strategy.
func NewRegistry(strategy HotSwapStrategy) *Registry {
	return &Registry{
		strategy:   strategy,
		candidates: make(map[string]Adapter),
		pollEvery:  DefaultPollInterval,
		hysteresis: make(map[string]int),
		events:     make(chan LinkStateChange, 16),
	}
}

// Register adds or replaces a candidate adapter by its LayerType.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates[a.LayerType()] = a
}

// SetActive explicitly sets the active adapter, bypassing the polling
// strategy. Always valid, even under HotSwapManual.
func (r *Registry) SetActive(a Adapter) {
	prev := r.Active()
	r.active.Store(&a)
	r.emitSwap(prev, a, "manual")
}

// Active returns the current active adapter, or nil if none is set.
func (r *Registry) Active() Adapter {
	p := r.active.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Events returns the channel of completed hot-swaps.
func (r *Registry) Events() <-chan LinkStateChange {
	return r.events
}

func (r *Registry) emitSwap(prev, next Adapter, reason string) {
	fromType := ""
	if prev != nil {
		fromType = prev.LayerType()
	}
	toType := ""
	if next != nil {
		toType = next.LayerType()
	}
	if fromType == toType {
		return
	}
	select {
	case r.events <- LinkStateChange{FromType: fromType, ToType: toType, DurationMs: time.Now().UnixMilli(), Reason: reason}:
	default:
	}
}

// Start begins the automatic polling loop. A no-op under HotSwapManual.
func (r *Registry) Start(ctx context.Context) {
	if r.strategy == HotSwapManual {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	go r.pollLoop(ctx)
}

// Stop halts the automatic polling loop.
func (r *Registry) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Registry) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evaluate()
		}
	}
}

// evaluate picks the best candidate under the configured strategy and
// hot-swaps to it only after it has won two consecutive polling rounds,
// to avoid flapping on a transient quality blip.
func (r *Registry) evaluate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	best := r.bestCandidate()
	if best == nil {
		return
	}

	for layer := range r.hysteresis {
		if layer != best.LayerType() {
			r.hysteresis[layer] = 0
		}
	}
	r.hysteresis[best.LayerType()]++

	if r.hysteresis[best.LayerType()] < 2 {
		return
	}

	current := r.Active()
	if current != nil && current.LayerType() == best.LayerType() {
		return
	}

	prev := current
	r.active.Store(&best)
	r.emitSwap(prev, best, "hot_swap")
}

func (r *Registry) bestCandidate() Adapter {
	var best Adapter
	var bestScore float64
	first := true

	for _, a := range r.candidates {
		q := a.GetLinkQuality()
		var score float64
		switch r.strategy {
		case HotSwapHighestRssi:
			score = float64(q.RssiDbm)
		case HotSwapLowestLossRate:
			score = -q.LossRate
		case HotSwapHighestBandwidth:
			score = float64(q.BandwidthBps)
		default:
			score = 0
		}
		if first || score > bestScore {
			best = a
			bestScore = score
			first = false
		}
	}
	return best
}
