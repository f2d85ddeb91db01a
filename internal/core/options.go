// Options for configuring Performance instances.

package core

import (
	"log/slog"
	"time"
)

// WithClock replaces time.Now as the time source.
func WithClock(clock Clock) Option {
	return func(p *Performance) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLaunchTime sets when the platform launched the process. Defaults to
// the construction time of the Performance.
func WithLaunchTime(t time.Time) Option {
	return func(p *Performance) {
		p.launch = t
	}
}

// WithLogger configures the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Performance) {
		p.logger = logger
	}
}

// WithMetricSink configures where derived metrics are recorded.
func WithMetricSink(sink MetricSink) Option {
	return func(p *Performance) {
		p.metrics = sink
	}
}

// WithResourceObserver configures the native entry source attached by
// Initialize when resource logging is enabled.
func WithResourceObserver(o ResourceObserver) Option {
	return func(p *Performance) {
		p.observer = o
	}
}

// WithPersister configures the timeline persister used by SaveTimeline.
func WithPersister(ps Persister) Option {
	return func(p *Performance) {
		p.persister = ps
	}
}
