package core

import (
	"sort"
	"sync"
	"time"

	"github.com/comalice/navperf/internal/primitives"
)

// Clock returns the current time. Values from time.Now carry a monotonic
// reading, which is what the store subtracts against.
type Clock func() time.Time

// MarkStore is a table of named timestamps measured from a fixed origin.
// Thread-safe.
type MarkStore struct {
	mu     sync.Mutex
	clock  Clock
	origin time.Time
	marks  map[string]primitives.Mark
}

// NewMarkStore creates an empty store whose origin is clock().
func NewMarkStore(clock Clock) *MarkStore {
	if clock == nil {
		clock = time.Now
	}
	return &MarkStore{
		clock:  clock,
		origin: clock(),
		marks:  make(map[string]primitives.Mark),
	}
}

// Origin returns the wall/monotonic instant every StartTime is relative to.
func (s *MarkStore) Origin() time.Time {
	return s.origin
}

// Now returns milliseconds elapsed since the origin.
func (s *MarkStore) Now() float64 {
	return s.At(s.clock())
}

// At converts t to milliseconds since the origin.
func (s *MarkStore) At(t time.Time) float64 {
	return float64(t.Sub(s.origin).Nanoseconds()) / 1e6
}

// Mark records name at the current time, replacing any earlier mark with the
// same name.
func (s *MarkStore) Mark(name string, detail primitives.Detail) primitives.Mark {
	return s.MarkAt(name, s.Now(), detail)
}

// MarkAt records name at an explicit timestamp.
func (s *MarkStore) MarkAt(name string, startTime float64, detail primitives.Detail) primitives.Mark {
	m := primitives.Mark{
		Name:      name,
		StartTime: startTime,
		Detail:    detail.Clone(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[name] = m
	return m
}

// Get looks up a mark by name.
func (s *MarkStore) Get(name string) (primitives.Mark, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.marks[name]
	return m, ok
}

// Marks returns every mark ordered by StartTime.
func (s *MarkStore) Marks() []primitives.Mark {
	s.mu.Lock()
	out := make([]primitives.Mark, 0, len(s.marks))
	for _, m := range s.marks {
		out = append(out, m)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Clear removes every mark. The origin is kept.
func (s *MarkStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks = make(map[string]primitives.Mark)
}
