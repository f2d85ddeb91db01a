package core

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/comalice/navperf/internal/primitives"
)

// Bus is an ordered, synchronous publish/subscribe channel for performance
// events. Publish runs listeners on the caller's goroutine in registration
// order, without holding the bus lock, so a listener may publish or subscribe
// re-entrantly.
type Bus struct {
	mu     sync.Mutex
	subs   []*subscription // copy-on-write; Publish iterates a snapshot
	logger *slog.Logger
}

type subscription struct {
	fn     primitives.Listener
	active atomic.Bool
}

// NewBus creates an empty bus. A nil logger uses slog.Default().
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe registers fn and returns a function that removes exactly that
// registration. The returned function is idempotent.
func (b *Bus) Subscribe(fn primitives.Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s := &subscription{fn: fn}
	s.active.Store(true)

	b.mu.Lock()
	b.subs = append(b.subs, s)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.active.Store(false)
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs = slices.DeleteFunc(slices.Clone(b.subs), func(x *subscription) bool { return x == s })
		})
	}
}

// Publish delivers evt to every active listener.
func (b *Bus) Publish(evt primitives.Event) {
	b.mu.Lock()
	snapshot := b.subs
	b.mu.Unlock()

	for _, s := range snapshot {
		// Skip listeners removed while this dispatch was in progress.
		if !s.active.Load() {
			continue
		}
		b.deliver(s, evt)
	}
}

func (b *Bus) deliver(s *subscription, evt primitives.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("performance listener panicked",
				"kind", evt.Kind(),
				"error", fmt.Sprint(r),
			)
		}
	}()
	if err := s.fn(evt); err != nil {
		b.logger.Error("performance listener failed",
			"kind", evt.Kind(),
			"error", err,
		)
	}
}

// Len reports the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Reset drops every listener. Dispatches already in flight stop delivering
// to them.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.active.Store(false)
	}
	b.subs = nil
}
