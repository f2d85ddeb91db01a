package navperf

import (
	"slices"
	"sync"

	"github.com/comalice/navperf/realtime"
)

// StartMarker is told when a navigation begins.
type StartMarker interface {
	MarkNavigationStart(screen string, detail Detail)
}

// Navigator holds the requested navigation state. Every Go marks the start of
// a navigation and then notifies the registered handlers.
type Navigator struct {
	marker StartMarker

	mu       sync.Mutex
	current  NavState
	handlers []func(NavState)
}

// NewNavigator creates a Navigator positioned on initial. marker may be nil.
func NewNavigator(initial NavState, marker StartMarker) *Navigator {
	return &Navigator{marker: marker, current: initial}
}

// OnNavigate registers fn to receive every requested state.
func (n *Navigator) OnNavigate(fn func(NavState)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, fn)
}

// Go requests navigation to screen.
func (n *Navigator) Go(screen string, extra Detail) {
	next := NavState{Screen: screen}
	if extra != nil {
		next.Extra = extra.Clone()
	}

	n.mu.Lock()
	from := n.current.Screen
	n.mu.Unlock()

	if n.marker != nil {
		n.marker.MarkNavigationStart(screen, Detail{"from": from})
	}

	n.mu.Lock()
	n.current = next
	handlers := slices.Clone(n.handlers)
	n.mu.Unlock()

	for _, fn := range handlers {
		fn(next)
	}
}

// Current returns the last requested state.
func (n *Navigator) Current() NavState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Shell wires a Navigator to a Transitioner, both instrumented by Perf.
type Shell struct {
	Perf        *Performance
	Nav         *Navigator
	Transitions *Transitioner
}

// NewShell creates the navigation shell for an application starting on initial.
func NewShell(initial NavState, perf *Performance, driver realtime.Driver, opts ...TransitionOption) *Shell {
	tr := NewTransitioner(initial, driver, perf, opts...)
	nav := NewNavigator(initial, perf)
	nav.OnNavigate(tr.Request)
	return &Shell{Perf: perf, Nav: nav, Transitions: tr}
}

// Close disposes the Transitioner.
func (s *Shell) Close() {
	s.Transitions.Dispose()
}
