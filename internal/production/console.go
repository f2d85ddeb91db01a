package production

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/comalice/navperf/internal/primitives"
)

// Console writes one localized line per event, the developer-console view of
// the event stream.
type Console struct {
	mu  sync.Mutex
	w   io.Writer
	loc *message.Printer
}

// NewConsole creates a console writing to w with numbers formatted for tag.
func NewConsole(w io.Writer, tag language.Tag) *Console {
	return &Console{w: w, loc: message.NewPrinter(tag)}
}

// Listen writes evt. Use it as a primitives.Listener.
func (c *Console) Listen(evt primitives.Event) error {
	line := c.format(evt)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, line+"\n"); err != nil {
		return fmt.Errorf("write console: %w", err)
	}
	return nil
}

func (c *Console) format(evt primitives.Event) string {
	switch e := evt.(type) {
	case primitives.NavigationStart:
		return c.loc.Sprintf("[perf] → %s (from %s)", e.Screen, orDash(e.Detail.String("from")))
	case primitives.NavigationComplete:
		return c.loc.Sprintf("[perf] ✓ %s in %.1f ms", e.Screen, e.Measure.Duration) + missing(e.Measure)
	case primitives.MeasureRecorded:
		return c.loc.Sprintf("[perf] measure %s = %.1f ms", e.Measure.Name, e.Measure.Duration) + missing(e.Measure)
	case primitives.NativeMark:
		return c.loc.Sprintf("[perf] %s %s %.1f ms", e.Entry.EntryType, e.Entry.Name, e.Entry.Duration)
	case primitives.AppInteractive:
		return c.loc.Sprintf("[perf] interactive after %.1f ms", e.Measure.Duration)
	default:
		return c.loc.Sprintf("[perf] %s", primitives.Describe(evt))
	}
}

func missing(m primitives.Measure) string {
	if m.MissingStart {
		return " (no start mark)"
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
