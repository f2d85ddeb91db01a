package testutil

import (
	"sync"

	"github.com/comalice/navperf/internal/primitives"
)

// Recorder is a listener that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []primitives.Event
}

// Listen appends evt. Use it as a primitives.Listener.
func (r *Recorder) Listen(evt primitives.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

// Events returns a copy of the received events.
func (r *Recorder) Events() []primitives.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]primitives.Event(nil), r.events...)
}

// Kinds returns the kind of every received event, in order.
func (r *Recorder) Kinds() []primitives.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]primitives.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind()
	}
	return out
}

// OfKind returns the received events of kind k.
func (r *Recorder) OfKind(k primitives.Kind) []primitives.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []primitives.Event
	for _, e := range r.events {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything received.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
