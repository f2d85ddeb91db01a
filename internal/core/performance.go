// Package core provides the timing core: the mark store, the measure engine,
// the event bus and the Performance facade composing them into navigation and
// startup semantics.
//
// A Performance value replaces process-wide timing state. Construct one per
// application run, inject it where marks are written, and call UnsafeReset
// between tests.
package core

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/comalice/navperf/internal/primitives"
)

// Names of the marks, measures and metrics written by Performance.
const (
	NativeLaunchStartMark  = "nativeLaunchStart"
	AppInteractiveMark     = "appInteractive"
	AppStartupMeasure      = "appStartup"
	AppStartupLabel        = "Native Launch → Interactive"
	ScreenTransitionMetric = "screenTransition"

	screenTransitionPrefix = "screen-transition:"
)

// NavigationStartMark is the mark written when navigation to screen begins.
func NavigationStartMark(screen string) string {
	return screenTransitionPrefix + screen + ":start"
}

// NavigationEndMark is the mark written once screen has settled.
func NavigationEndMark(screen string) string {
	return screenTransitionPrefix + screen + ":end"
}

// ScreenTransitionMeasure names the measure spanning a screen's start and end marks.
func ScreenTransitionMeasure(screen string) string {
	return screenTransitionPrefix + screen
}

// Pluggable component interfaces.

// ResourceObserver reports native performance entries (resource timings,
// platform marks). Observe returns a function that detaches fn.
type ResourceObserver interface {
	Observe(fn func(primitives.Entry)) (stop func())
}

// MetricSink receives the named metrics derived from measures.
type MetricSink interface {
	Record(metric primitives.Metric)
}

// Persister stores timeline snapshots.
type Persister interface {
	Save(ctx context.Context, timeline primitives.Timeline) error
	Load(ctx context.Context, generation string) (primitives.Timeline, error)
}

// ErrNoPersister is returned by SaveTimeline when no Persister is configured.
var ErrNoPersister = errors.New("no timeline persister configured")

// Config is the argument to Initialize.
type Config struct {
	// ResourceLogging attaches the configured ResourceObserver and republishes
	// its entries as NativeMark events.
	ResourceLogging bool
	// OnEvent, when set, is subscribed once.
	OnEvent primitives.Listener
}

// Option applies configuration to Performance via functional options pattern.
type Option func(*Performance)

// Performance records marks and measures and republishes them as events.
// Thread-safe; listeners run on the goroutine that wrote the mark.
type Performance struct {
	clock     Clock
	launch    time.Time
	logger    *slog.Logger
	marks     *MarkStore
	measures  *MeasureEngine
	bus       *Bus
	metrics   MetricSink
	observer  ResourceObserver
	persister Persister

	mu                 sync.Mutex
	initialized        bool
	generation         string
	stopObserver       func()
	unsubscribeOnEvent func()
}

// NewPerformance creates a Performance whose origin is now. The platform
// launch mark is recorded immediately.
func NewPerformance(opts ...Option) *Performance {
	p := &Performance{clock: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.marks = NewMarkStore(p.clock)
	if p.launch.IsZero() {
		p.launch = p.marks.Origin()
	}
	p.measures = NewMeasureEngine(p.marks)
	p.bus = NewBus(p.logger)
	if p.metrics == nil {
		p.metrics = NewLogMetricSink(p.logger)
	}
	p.generation = uuid.NewString()
	p.seedLaunchMark()
	return p
}

func (p *Performance) seedLaunchMark() {
	p.marks.MarkAt(NativeLaunchStartMark, p.marks.At(p.launch), primitives.Detail{"source": "platform"})
}

// Initialize applies cfg once. Later calls are no-ops until UnsafeReset.
func (p *Performance) Initialize(cfg Config) {
	p.mu.Lock()
	if p.initialized {
		p.mu.Unlock()
		p.logger.Debug("performance already initialized")
		return
	}
	p.initialized = true
	generation := p.generation
	p.mu.Unlock()

	// Attach outside the lock: an observer may deliver synchronously.
	unsubscribe := p.bus.Subscribe(cfg.OnEvent)
	var stop func()
	if cfg.ResourceLogging {
		if p.observer == nil {
			p.logger.Warn("resource logging requested without a resource observer")
		} else {
			stop = p.observer.Observe(p.publishEntry)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != generation {
		// Reset while attaching.
		unsubscribe()
		if stop != nil {
			stop()
		}
		return
	}
	p.unsubscribeOnEvent = unsubscribe
	p.stopObserver = stop
}

// Initialized reports whether Initialize has run in this generation.
func (p *Performance) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *Performance) publishEntry(entry primitives.Entry) {
	entry.Detail = entry.Detail.Clone()
	p.logger.Debug("native performance entry",
		"name", entry.Name,
		"entry_type", entry.EntryType,
		"duration_ms", entry.Duration,
	)
	p.bus.Publish(primitives.NativeMark{Entry: entry})
}

// MarkNavigationStart records the start of a transition to screen.
func (p *Performance) MarkNavigationStart(screen string, detail primitives.Detail) {
	p.marks.Mark(NavigationStartMark(screen), primitives.Merge(detail, primitives.Detail{
		"screen": screen,
		"phase":  "start",
	}))
	p.bus.Publish(primitives.NavigationStart{Screen: screen, Detail: detail.Clone()})
}

// MarkNavigationComplete records that screen has settled and returns the
// measure from the matching start mark. A missing start mark yields a
// zero-duration measure.
func (p *Performance) MarkNavigationComplete(screen string, detail primitives.Detail) primitives.Measure {
	p.marks.Mark(NavigationEndMark(screen), primitives.Merge(detail, primitives.Detail{
		"screen": screen,
		"phase":  "end",
	}))
	m := p.measure(ScreenTransitionMeasure(screen), NavigationStartMark(screen), NavigationEndMark(screen))

	p.metrics.Record(primitives.Metric{
		Name:     ScreenTransitionMetric,
		Duration: m.Duration,
		Detail:   primitives.Merge(primitives.Detail{"screen": screen, "phase": "end"}, detail),
	})
	p.bus.Publish(primitives.NavigationComplete{
		Screen:  screen,
		Detail:  primitives.Merge(detail, primitives.Detail{"screen": screen}),
		Measure: m,
	})
	return m
}

// MarkAppInteractive records that the app is usable and returns the startup
// measure from the platform launch mark.
func (p *Performance) MarkAppInteractive(detail primitives.Detail) primitives.Measure {
	markDetail := primitives.Merge(detail, primitives.Detail{"phase": "interactive"})
	p.marks.Mark(AppInteractiveMark, markDetail)
	m := p.measure(AppStartupMeasure, NativeLaunchStartMark, AppInteractiveMark)

	p.metrics.Record(primitives.Metric{
		Name:     AppStartupMeasure,
		Duration: m.Duration,
		Label:    AppStartupLabel,
		Detail:   markDetail.Clone(),
	})
	p.bus.Publish(primitives.AppInteractive{Detail: markDetail, Measure: m})
	return m
}

// measure derives and publishes a measure, downgrading a missing mark to a
// warning.
func (p *Performance) measure(name, start, end string) primitives.Measure {
	m, err := p.measures.Measure(name, start, end)
	if err != nil {
		p.logger.Warn("measure recorded without duration",
			"measure", name,
			"error", err,
		)
	}
	p.bus.Publish(primitives.MeasureRecorded{Measure: m})
	return m
}

// Subscribe registers fn for every subsequent event. See Bus.Subscribe.
func (p *Performance) Subscribe(fn primitives.Listener) (unsubscribe func()) {
	return p.bus.Subscribe(fn)
}

// Listeners reports the number of registered listeners.
func (p *Performance) Listeners() int {
	return p.bus.Len()
}

// UnsafeReset returns p to its pristine state: marks, measures, listeners and
// the initialized flag are cleared, the resource observer is detached, the
// platform launch mark is re-seeded and a new generation begins.
func (p *Performance) UnsafeReset() {
	p.mu.Lock()
	stop := p.stopObserver
	p.initialized = false
	p.stopObserver = nil
	p.unsubscribeOnEvent = nil
	p.generation = uuid.NewString()
	p.mu.Unlock()

	if stop != nil {
		stop()
	}
	p.bus.Reset()
	p.measures.Clear()
	p.marks.Clear()
	p.seedLaunchMark()
}

// Generation identifies the current lifecycle generation.
func (p *Performance) Generation() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// Origin returns the instant all timestamps are relative to.
func (p *Performance) Origin() time.Time {
	return p.marks.Origin()
}

// Now returns milliseconds since Origin.
func (p *Performance) Now() float64 {
	return p.marks.Now()
}

// Mark returns the named mark.
func (p *Performance) Mark(name string) (primitives.Mark, bool) {
	return p.marks.Get(name)
}

// Marks returns every mark ordered by time.
func (p *Performance) Marks() []primitives.Mark {
	return p.marks.Marks()
}

// Measures returns every measure of the current generation.
func (p *Performance) Measures() []primitives.Measure {
	return p.measures.Measures()
}

// Timeline snapshots the current generation.
func (p *Performance) Timeline() primitives.Timeline {
	return primitives.Timeline{
		Generation: p.Generation(),
		Origin:     p.marks.Origin(),
		Marks:      p.marks.Marks(),
		Measures:   p.measures.Measures(),
		Timestamp:  p.clock(),
	}
}

// SaveTimeline persists the current timeline with the configured Persister.
func (p *Performance) SaveTimeline(ctx context.Context) error {
	if p.persister == nil {
		return ErrNoPersister
	}
	return p.persister.Save(ctx, p.Timeline())
}
