package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/comalice/navperf/internal/primitives"
)

// InstrumentationName names the tracer used by SpanSink.
const InstrumentationName = "github.com/comalice/navperf"

// SpanSink turns measured events into spans placed on the wall clock at the
// measure's original start time.
type SpanSink struct {
	tracer trace.Tracer
	origin func() time.Time
}

// NewSpanSink creates a sink. A nil tp uses the global provider; origin
// reports the instant measure offsets are relative to.
func NewSpanSink(tp trace.TracerProvider, origin func() time.Time) *SpanSink {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &SpanSink{tracer: tp.Tracer(InstrumentationName), origin: origin}
}

// Listen records evt. Use it as a primitives.Listener.
func (s *SpanSink) Listen(evt primitives.Event) error {
	switch e := evt.(type) {
	case primitives.NavigationComplete:
		attrs := []attribute.KeyValue{
			attribute.String("navperf.screen", e.Screen),
			attribute.String("navperf.from", e.Detail.String("from")),
		}
		s.span(e.Measure, attrs...)
	case primitives.AppInteractive:
		s.span(e.Measure, attribute.String("navperf.initial_screen", e.Detail.String("initialScreen")))
	case primitives.NativeMark:
		at := s.at(e.Entry.StartTime)
		_, span := s.tracer.Start(context.Background(), e.Entry.Name,
			trace.WithTimestamp(at),
			trace.WithAttributes(
				attribute.String("navperf.entry_type", e.Entry.EntryType),
			),
		)
		span.End(trace.WithTimestamp(at.Add(millis(e.Entry.Duration))))
	case primitives.NavigationStart, primitives.MeasureRecorded:
		// Covered by the span of the completing event.
	default:
		return fmt.Errorf("telemetry: unknown event %T", evt)
	}
	return nil
}

func (s *SpanSink) span(m primitives.Measure, attrs ...attribute.KeyValue) {
	start := s.at(m.StartTime)
	attrs = append(attrs,
		attribute.Float64("navperf.duration_ms", m.Duration),
		attribute.Bool("navperf.missing_start", m.MissingStart),
	)
	_, span := s.tracer.Start(context.Background(), m.Name,
		trace.WithTimestamp(start),
		trace.WithAttributes(attrs...),
	)
	span.End(trace.WithTimestamp(start.Add(millis(m.Duration))))
}

func (s *SpanSink) at(ms float64) time.Time {
	return s.origin().Add(millis(ms))
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
