package production

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/comalice/navperf/internal/primitives"
)

// PublishedEvent bundles an event with its delivery metadata.
type PublishedEvent struct {
	Event      primitives.Event
	Seq        uint64
	Generation string
	Timestamp  time.Time
}

// ChannelPublisher forwards events to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch         chan<- PublishedEvent
	generation func() string
	now        func() time.Time

	mu      sync.RWMutex
	closed  bool
	seq     atomic.Uint64
	dropped atomic.Uint64
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
// generation may be nil.
func NewChannelPublisher(ch chan<- PublishedEvent, generation func() string) *ChannelPublisher {
	return &ChannelPublisher{ch: ch, generation: generation, now: time.Now}
}

// Listen publishes evt. Use it as a primitives.Listener.
func (p *ChannelPublisher) Listen(evt primitives.Event) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil
	}
	out := PublishedEvent{Event: evt, Seq: p.seq.Add(1), Timestamp: p.now()}
	if p.generation != nil {
		out.Generation = p.generation()
	}
	select {
	case p.ch <- out:
	default:
		p.dropped.Add(1) // Non-blocking drop
	}
	return nil
}

// Dropped reports how many events were discarded on backpressure.
func (p *ChannelPublisher) Dropped() uint64 {
	return p.dropped.Load()
}

// Close closes the output channel. Later events are ignored.
func (p *ChannelPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.ch)
	}
	return nil
}
