package core

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/navperf/internal/primitives"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recorder struct {
	mu     sync.Mutex
	events []primitives.Event
}

func (r *recorder) listen(evt primitives.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recorder) kinds() []primitives.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]primitives.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind()
	}
	return out
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakeObserver struct {
	mu      sync.Mutex
	fns     map[int]func(primitives.Entry)
	next    int
	observe int
	stops   int
}

func (o *fakeObserver) Observe(fn func(primitives.Entry)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fns == nil {
		o.fns = make(map[int]func(primitives.Entry))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.observe++
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if _, ok := o.fns[id]; ok {
			delete(o.fns, id)
			o.stops++
		}
	}
}

func (o *fakeObserver) emit(e primitives.Entry) {
	o.mu.Lock()
	fns := make([]func(primitives.Entry), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(e)
	}
}

type memoryPersister struct {
	saved []primitives.Timeline
}

func (p *memoryPersister) Save(ctx context.Context, tl primitives.Timeline) error {
	p.saved = append(p.saved, tl)
	return nil
}

func (p *memoryPersister) Load(ctx context.Context, generation string) (primitives.Timeline, error) {
	for _, tl := range p.saved {
		if tl.Generation == generation {
			return tl, nil
		}
	}
	return primitives.Timeline{}, ErrMarkNotFound
}

func equalKinds(a, b []primitives.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
