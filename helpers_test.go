package navperf

import (
	"io"
	"log/slog"
	"sync"
	"time"
)

type markCall struct {
	screen string
	detail Detail
}

type fakeMarker struct {
	mu     sync.Mutex
	starts []markCall
	ends   []markCall
}

func (m *fakeMarker) MarkNavigationStart(screen string, detail Detail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.starts = append(m.starts, markCall{screen, detail})
}

func (m *fakeMarker) MarkNavigationComplete(screen string, detail Detail) Measure {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ends = append(m.ends, markCall{screen, detail})
	return Measure{Name: "screen-transition:" + screen}
}

func (m *fakeMarker) completions() []markCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]markCall(nil), m.ends...)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 9, 8, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func home() NavState     { return NavState{Screen: "home"} }
func gradeOne() NavState { return NavState{Screen: "gradeOne"} }
func gradeTwo() NavState { return NavState{Screen: "gradeTwo"} }
