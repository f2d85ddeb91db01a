// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/navperf/internal/core"
	"github.com/comalice/navperf/internal/primitives"
)

// QuietLogger discards all output.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewPerformance returns a Performance that discards logs and metrics.
func NewPerformance() *core.Performance {
	return core.NewPerformance(
		core.WithLogger(QuietLogger()),
		core.WithMetricSink(&core.MemoryMetricSink{}),
	)
}

// Screens returns n screen names, "home" first.
func Screens(n int) []string {
	if n < 1 {
		n = 1
	}
	out := make([]string, n)
	out[0] = "home"
	for i := 1; i < n; i++ {
		out[i] = fmt.Sprintf("screen%d", i)
	}
	return out
}

// GenTimeline creates a timeline with one start/end mark pair and measure
// per screen visit.
func GenTimeline(visits int) primitives.Timeline {
	tl := primitives.Timeline{
		Generation: fmt.Sprintf("bench-%d", visits),
		Origin:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		Timestamp:  time.Date(2026, 2, 1, 10, 5, 0, 0, time.UTC),
	}
	for i := range visits {
		screen := fmt.Sprintf("screen%d", i)
		start := float64(i) * 500
		tl.Marks = append(tl.Marks,
			primitives.Mark{Name: core.NavigationStartMark(screen), StartTime: start, Detail: primitives.Detail{"from": "home"}},
			primitives.Mark{Name: core.NavigationEndMark(screen), StartTime: start + 280},
		)
		tl.Measures = append(tl.Measures, primitives.Measure{
			Name:      core.ScreenTransitionMeasure(screen),
			Start:     core.NavigationStartMark(screen),
			End:       core.NavigationEndMark(screen),
			Duration:  280,
			StartTime: start,
		})
	}
	return tl
}

// GenTimelineYAML marshals GenTimeline(visits).
func GenTimelineYAML(visits int) []byte {
	data, err := yaml.Marshal(GenTimeline(visits))
	if err != nil {
		panic(err)
	}
	return data
}
