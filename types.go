package navperf

import (
	"log/slog"
	"time"

	"github.com/comalice/navperf/internal/core"
	"github.com/comalice/navperf/internal/primitives"
)

// Data model.
type (
	Detail          = primitives.Detail
	NavState        = primitives.NavState
	Direction       = primitives.Direction
	TransitionState = primitives.TransitionState
	Decision        = primitives.Decision
	Mark            = primitives.Mark
	Measure         = primitives.Measure
	Entry           = primitives.Entry
	Metric          = primitives.Metric
	Timeline        = primitives.Timeline
)

// Events.
type (
	Event              = primitives.Event
	Kind               = primitives.Kind
	Listener           = primitives.Listener
	NavigationStart    = primitives.NavigationStart
	NavigationComplete = primitives.NavigationComplete
	MeasureRecorded    = primitives.MeasureRecorded
	NativeMark         = primitives.NativeMark
	AppInteractive     = primitives.AppInteractive
)

const (
	KindNavigationStart    = primitives.KindNavigationStart
	KindNavigationComplete = primitives.KindNavigationComplete
	KindMeasure            = primitives.KindMeasure
	KindNativeMark         = primitives.KindNativeMark
	KindAppInteractive     = primitives.KindAppInteractive
)

const (
	Forward  = primitives.Forward
	Backward = primitives.Backward
)

// Decision kinds.
const (
	Reselect = primitives.Reselect
	Jump     = primitives.Jump
	Slide    = primitives.Slide
)

// Performance facade.
type (
	Performance       = core.Performance
	PerformanceConfig = core.Config
	PerformanceOption = core.Option
	ResourceObserver  = core.ResourceObserver
	MetricSink        = core.MetricSink
	Persister         = core.Persister
)

// NewPerformance creates an explicitly owned timing context.
func NewPerformance(opts ...PerformanceOption) *Performance {
	return core.NewPerformance(opts...)
}

// WithClock replaces time.Now as the Performance time source.
func WithClock(clock func() time.Time) PerformanceOption {
	return core.WithClock(clock)
}

// WithLaunchTime sets when the platform launched the process.
func WithLaunchTime(t time.Time) PerformanceOption {
	return core.WithLaunchTime(t)
}

// WithLogger configures the Performance diagnostics logger.
func WithLogger(logger *slog.Logger) PerformanceOption {
	return core.WithLogger(logger)
}

// WithMetricSink configures where derived metrics are recorded.
func WithMetricSink(sink MetricSink) PerformanceOption {
	return core.WithMetricSink(sink)
}

// WithResourceObserver configures the native entry source used when resource
// logging is enabled.
func WithResourceObserver(o ResourceObserver) PerformanceOption {
	return core.WithResourceObserver(o)
}

// WithPersister configures the timeline persister.
func WithPersister(p Persister) PerformanceOption {
	return core.WithPersister(p)
}
