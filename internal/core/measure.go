package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/comalice/navperf/internal/primitives"
)

// ErrMarkNotFound is returned (wrapped) when a measure references an unknown mark.
var ErrMarkNotFound = errors.New("mark not found")

// MeasureEngine derives durations between marks and keeps the measures it
// produced for the current generation.
type MeasureEngine struct {
	marks *MarkStore

	mu       sync.Mutex
	measures []primitives.Measure
}

// NewMeasureEngine creates an engine reading from marks.
func NewMeasureEngine(marks *MarkStore) *MeasureEngine {
	return &MeasureEngine{marks: marks}
}

// Measure computes name as the time between the start and end marks. An empty
// end measures up to now.
//
// A missing mark never aborts the measure: the result has zero duration, is
// still recorded, and the returned error wraps ErrMarkNotFound so the caller
// can report it.
func (e *MeasureEngine) Measure(name, start, end string) (primitives.Measure, error) {
	var errs []error

	endTime := e.marks.Now()
	if end != "" {
		if m, ok := e.marks.Get(end); ok {
			endTime = m.StartTime
		} else {
			errs = append(errs, fmt.Errorf("end mark %q: %w", end, ErrMarkNotFound))
		}
	}

	measure := primitives.Measure{
		Name:      name,
		Start:     start,
		End:       end,
		StartTime: endTime,
	}

	startMark, ok := e.marks.Get(start)
	switch {
	case !ok:
		measure.MissingStart = true
		errs = append(errs, fmt.Errorf("start mark %q: %w", start, ErrMarkNotFound))
	case len(errs) == 0:
		measure.StartTime = startMark.StartTime
		measure.Duration = max(0, endTime-startMark.StartTime)
	default:
		measure.StartTime = startMark.StartTime
	}

	e.mu.Lock()
	e.measures = append(e.measures, measure)
	e.mu.Unlock()

	return measure, errors.Join(errs...)
}

// Measures returns a copy of the recorded measures in creation order.
func (e *MeasureEngine) Measures() []primitives.Measure {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]primitives.Measure, len(e.measures))
	copy(out, e.measures)
	return out
}

// Clear drops every recorded measure.
func (e *MeasureEngine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.measures = nil
}
