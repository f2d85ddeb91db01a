package core

import (
	"log/slog"
	"sync"

	"github.com/comalice/navperf/internal/primitives"
)

// LogMetricSink writes every metric to a structured logger.
type LogMetricSink struct {
	logger *slog.Logger
}

// NewLogMetricSink creates a LogMetricSink. A nil logger uses slog.Default().
func NewLogMetricSink(logger *slog.Logger) *LogMetricSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetricSink{logger: logger}
}

// Record logs m at info level.
func (s *LogMetricSink) Record(m primitives.Metric) {
	attrs := []any{
		"metric", m.Name,
		"duration_ms", m.Duration,
	}
	if m.Label != "" {
		attrs = append(attrs, "label", m.Label)
	}
	if screen := m.Detail.String("screen"); screen != "" {
		attrs = append(attrs, "screen", screen)
	}
	s.logger.Info("performance metric", attrs...)
}

// MemoryMetricSink keeps metrics in memory. Useful for tests and consoles.
type MemoryMetricSink struct {
	mu      sync.Mutex
	metrics []primitives.Metric
}

// Record appends m.
func (s *MemoryMetricSink) Record(m primitives.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

// Metrics returns a copy of everything recorded.
func (s *MemoryMetricSink) Metrics() []primitives.Metric {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]primitives.Metric, len(s.metrics))
	copy(out, s.metrics)
	return out
}
