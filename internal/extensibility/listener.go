package extensibility

import (
	"log/slog"
	"slices"
	"time"

	"github.com/comalice/navperf/internal/primitives"
)

// NewLoggingListener wraps inner and logs every delivery at debug level.
func NewLoggingListener(inner primitives.Listener, logger *slog.Logger) primitives.Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return func(evt primitives.Event) error {
		logger.Debug("delivering performance event", "event", primitives.Describe(evt))
		start := time.Now()
		err := inner(evt)
		logger.Debug("performance event delivered",
			"kind", evt.Kind(),
			"elapsed", time.Since(start),
			"error", err,
		)
		return err
	}
}

// FilterKinds forwards only events whose kind is listed.
func FilterKinds(inner primitives.Listener, kinds ...primitives.Kind) primitives.Listener {
	return func(evt primitives.Event) error {
		if !slices.Contains(kinds, evt.Kind()) {
			return nil
		}
		return inner(evt)
	}
}
