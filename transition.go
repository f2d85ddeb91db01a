package navperf

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/navperf/internal/extensibility"
	"github.com/comalice/navperf/realtime"
)

// DefaultTransitionDuration is the length of the home slide.
const DefaultTransitionDuration = 280 * time.Millisecond

// Phase is the state of the Transitioner.
type Phase int

const (
	Idle Phase = iota
	Animating
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Policy decides how a navigation request is handled.
type Policy interface {
	Decide(prev, next NavState) Decision
}

// CompletionMarker is told when a navigation has settled.
type CompletionMarker interface {
	MarkNavigationComplete(screen string, detail Detail) Measure
}

// ViewState is everything a renderer needs to lay out the current frame.
type ViewState struct {
	DisplayNav    NavState
	Transition    *TransitionState
	Progress      float64
	ViewportWidth float64
}

// TransitionOption configures a Transitioner.
type TransitionOption func(*Transitioner)

// WithHomeScreen sets the screen whose entry and exit slide.
func WithHomeScreen(home string) TransitionOption {
	return func(t *Transitioner) {
		t.policy = extensibility.NewHomeSlidePolicy(home)
	}
}

// WithPolicy replaces the home-slide policy.
func WithPolicy(p Policy) TransitionOption {
	return func(t *Transitioner) {
		t.policy = p
	}
}

// WithDuration sets the slide duration.
func WithDuration(d time.Duration) TransitionOption {
	return func(t *Transitioner) {
		t.duration = d
	}
}

// WithEasing sets the progress curve.
func WithEasing(e realtime.Easing) TransitionOption {
	return func(t *Transitioner) {
		t.easing = e
	}
}

// WithViewportWidth sets the initial viewport width.
func WithViewportWidth(w float64) TransitionOption {
	return func(t *Transitioner) {
		t.width = w
	}
}

// WithOnChange registers the view observer. It runs without the
// Transitioner's lock held, on whichever goroutine changed the state.
func WithOnChange(fn func(ViewState)) TransitionOption {
	return func(t *Transitioner) {
		t.onChange = fn
	}
}

// WithTransitionLogger configures diagnostics logging.
func WithTransitionLogger(logger *slog.Logger) TransitionOption {
	return func(t *Transitioner) {
		t.logger = logger
	}
}

// Transitioner is the navigation transition state machine. It is Idle while
// no slide runs and Animating while one does. Every run carries a token; a
// frame or completion callback whose token is no longer current is ignored,
// so a superseded run can never settle an outdated screen.
type Transitioner struct {
	driver   realtime.Driver
	marker   CompletionMarker
	policy   Policy
	duration time.Duration
	easing   realtime.Easing
	logger   *slog.Logger
	onChange func(ViewState)

	mu       sync.Mutex
	display  NavState
	state    *TransitionState
	progress float64
	width    float64
	token    uint64
	handle   realtime.Handle
	disposed bool
}

// NewTransitioner creates an Idle machine settled on initial. marker may be
// nil when completion should not be measured.
func NewTransitioner(initial NavState, driver realtime.Driver, marker CompletionMarker, opts ...TransitionOption) *Transitioner {
	t := &Transitioner{
		driver:   driver,
		marker:   marker,
		duration: DefaultTransitionDuration,
		easing:   realtime.EaseOutCubic,
		display:  initial,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.policy == nil {
		t.policy = extensibility.NewHomeSlidePolicy(extensibility.DefaultHomeScreen)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Request evaluates a navigation to next. Any running slide is cancelled
// first and progress resets to 0.
func (t *Transitioner) Request(next NavState) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	stale := t.handle
	t.handle = nil
	t.token++
	token := t.token
	t.state = nil
	t.progress = 0

	prev := t.display
	decision := t.policy.Decide(prev, next)
	var ts *TransitionState
	if decision.Kind == Slide {
		ts = &TransitionState{From: prev, To: next, Direction: decision.Direction}
		t.state = ts
	} else {
		t.display = next
	}
	view := t.viewLocked()
	t.mu.Unlock()

	if stale != nil {
		stale.Stop()
	}
	t.logger.Debug("navigation requested",
		"from", prev.Screen,
		"to", next.Screen,
		"decision", decision.Kind.String(),
	)
	t.notify(view)

	switch decision.Kind {
	case Slide:
		t.run(token, ts)
	case Jump:
		t.markComplete(prev, next)
	case Reselect:
	}
}

func (t *Transitioner) run(token uint64, ts *TransitionState) {
	h := t.driver.Start(realtime.Animation{
		Duration: t.duration,
		Easing:   t.easing,
		OnFrame:  func(p float64) { t.frame(token, p) },
		OnDone:   func() { t.finish(token) },
	})

	t.mu.Lock()
	if t.disposed || t.token != token {
		t.mu.Unlock()
		h.Stop()
		return
	}
	t.handle = h
	t.mu.Unlock()

	t.logger.Debug("transition started",
		"from", ts.From.Screen,
		"to", ts.To.Screen,
		"direction", string(ts.Direction),
	)
}

func (t *Transitioner) frame(token uint64, progress float64) {
	t.mu.Lock()
	if t.disposed || t.token != token || t.state == nil {
		t.mu.Unlock()
		return
	}
	t.progress = progress
	view := t.viewLocked()
	t.mu.Unlock()

	t.notify(view)
}

func (t *Transitioner) finish(token uint64) {
	t.mu.Lock()
	if t.disposed || t.token != token || t.state == nil {
		t.mu.Unlock()
		return
	}
	ts := t.state
	t.display = ts.To
	t.state = nil
	t.progress = 0
	t.handle = nil
	view := t.viewLocked()
	t.mu.Unlock()

	t.notify(view)
	t.markComplete(ts.From, ts.To)
}

func (t *Transitioner) markComplete(from, to NavState) {
	if t.marker == nil {
		return
	}
	t.marker.MarkNavigationComplete(to.Screen, Detail{"from": from.Screen})
}

// notify hands view to the observer. A panicking observer is logged and
// never stops the slide from settling.
func (t *Transitioner) notify(view ViewState) {
	if t.onChange == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			t.logger.Error("view observer panicked",
				"screen", view.DisplayNav.Screen,
				"error", fmt.Sprint(rec),
			)
		}
	}()
	t.onChange(view)
}

func (t *Transitioner) viewLocked() ViewState {
	v := ViewState{
		DisplayNav:    t.display,
		Progress:      t.progress,
		ViewportWidth: t.width,
	}
	if t.state != nil {
		ts := *t.state
		v.Transition = &ts
	}
	return v
}

// View returns a snapshot of the current view state.
func (t *Transitioner) View() ViewState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

// Phase reports whether a slide is running.
func (t *Transitioner) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != nil {
		return Animating
	}
	return Idle
}

// DisplayNav returns the settled navigation state.
func (t *Transitioner) DisplayNav() NavState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.display
}

// SetViewportWidth updates the width used for pane offsets.
func (t *Transitioner) SetViewportWidth(w float64) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.width = w
	view := t.viewLocked()
	t.mu.Unlock()

	t.notify(view)
}

// Dispose stops any running slide. Later requests and callbacks are ignored.
// Safe to call more than once.
func (t *Transitioner) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	t.token++
	h := t.handle
	t.handle = nil
	t.mu.Unlock()

	if h != nil {
		h.Stop()
	}
}
