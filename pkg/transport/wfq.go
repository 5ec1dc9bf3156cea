package transport

import (
	"container/list"
	"sync"

	"github.com/honeylink/honeylink-core/pkg/honeyerr"
)

// Default WFQ band weights (control/data/telemetry), out of 100.
const (
	DefaultControlWeight   = 25
	DefaultDataWeight      = 60
	DefaultTelemetryWeight = 15
)

// MaxQueueDepth is the total number of packets the scheduler will buffer
// across all bands before rejecting further enqueues.
const MaxQueueDepth = 10000

// WFQScheduler is a weighted-fair-queuing scheduler over three fixed
// priority bands. Each band is a FIFO ordered by packet creation time;
// Dequeue performs weighted round-robin across non-empty bands.
type WFQScheduler struct {
	mu      sync.Mutex
	weights [3]int
	bands   [3]*list.List
	credits [3]int
	depth   int
}

// NewWFQScheduler returns a scheduler with the default 25/60/15 weights.
func NewWFQScheduler() *WFQScheduler {
	s := &WFQScheduler{
		weights: [3]int{DefaultControlWeight, DefaultDataWeight, DefaultTelemetryWeight},
	}
	for i := range s.bands {
		s.bands[i] = list.New()
	}
	return s
}

// SetWeights reprograms the band weights, e.g. from a Policy update.
func (s *WFQScheduler) SetWeights(control, data, telemetry int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = [3]int{control, data, telemetry}
}

// Depth returns the total number of packets currently queued across all bands.
func (s *WFQScheduler) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth
}

// Enqueue adds a packet to its band's FIFO, reconciling the packet's 0-7
// Priority down to one of the scheduler's three bands via Priority.Band().
// Returns a honeyerr.KindState error wrapping ErrBufferOverflow once the
// global depth ceiling is reached.
func (s *WFQScheduler) Enqueue(pkt Packet) error {
	if !pkt.Priority.Valid() {
		return honeyerr.Wrap(honeyerr.KindValidation, ErrInvalidPriority, "transport: enqueue packet")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth >= MaxQueueDepth {
		return honeyerr.Wrap(honeyerr.KindState, &ErrBufferOverflow{Depth: s.depth}, "transport: wfq queue full")
	}

	s.bands[pkt.Priority.Band()].PushBack(pkt)
	s.depth++
	return nil
}

// Dequeue selects the next packet to transmit via weighted round-robin
// across non-empty bands, FIFO within a band. Returns false if all bands
// are empty.
func (s *WFQScheduler) Dequeue() (Packet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.depth == 0 {
		return Packet{}, false
	}

	// Replenish credits for any band that has run out, proportional to weight.
	anyNonEmpty := false
	for i := range s.bands {
		if s.bands[i].Len() > 0 {
			anyNonEmpty = true
		}
	}
	if !anyNonEmpty {
		return Packet{}, false
	}

	allDepleted := true
	for i := range s.bands {
		if s.bands[i].Len() > 0 && s.credits[i] > 0 {
			allDepleted = false
			break
		}
	}
	if allDepleted {
		for i := range s.credits {
			if s.bands[i].Len() == 0 {
				continue
			}
			w := s.weights[i]
			if w <= 0 {
				w = 1
			}
			s.credits[i] += w
		}
	}

	for i := range s.bands {
		if s.bands[i].Len() == 0 || s.credits[i] <= 0 {
			continue
		}
		front := s.bands[i].Front()
		s.bands[i].Remove(front)
		s.credits[i]--
		s.depth--
		return front.Value.(Packet), true
	}

	return Packet{}, false
}
