package extensibility

import (
	"context"
	"sync"

	"github.com/comalice/navperf/internal/primitives"
)

// ChannelEntrySource feeds native performance entries from a channel into an
// observer. The host platform writes to the channel; the channel should be
// buffered if the platform must not block.
type ChannelEntrySource struct {
	ch <-chan primitives.Entry
}

// NewChannelEntrySource creates a source reading from ch.
func NewChannelEntrySource(ch <-chan primitives.Entry) *ChannelEntrySource {
	return &ChannelEntrySource{ch: ch}
}

// Observe delivers entries to fn on a dedicated goroutine until stop is called
// or the channel closes. stop is idempotent.
func (s *ChannelEntrySource) Observe(fn func(primitives.Entry)) (stop func()) {
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case entry, ok := <-s.ch:
				if !ok {
					return
				}
				select {
				case <-done:
					return
				default:
				}
				fn(entry)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}

// Navigator is the part of the navigation-state holder the pump drives.
type Navigator interface {
	Go(screen string, extra primitives.Detail)
}

// PumpNavigation forwards requests to nav until ctx is done or requests is
// closed. It returns ctx.Err() on cancellation and nil on close.
func PumpNavigation(ctx context.Context, requests <-chan primitives.NavState, nav Navigator) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-requests:
			if !ok {
				return nil
			}
			nav.Go(req.Screen, req.Extra)
		}
	}
}
