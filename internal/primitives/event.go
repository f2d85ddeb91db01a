// Event provides the closed set of performance events carried by the bus.
//
// Every variant implements Event through an unexported method, so no package
// outside primitives can add a kind. Consumers switch on the concrete type:
//
//	switch e := evt.(type) {
//	case primitives.NavigationStart:
//	case primitives.NavigationComplete:
//	case primitives.MeasureRecorded:
//	case primitives.NativeMark:
//	case primitives.AppInteractive:
//	}
//
// Events are values; the maps they carry are cloned before publishing and must
// not be modified by listeners.
package primitives

import "fmt"

// Kind is the wire tag of an Event.
type Kind string

const (
	KindNavigationStart    Kind = "navigationStart"
	KindNavigationComplete Kind = "navigationComplete"
	KindMeasure            Kind = "measure"
	KindNativeMark         Kind = "nativeMark"
	KindAppInteractive     Kind = "appInteractive"
)

// Event is a published performance event.
type Event interface {
	Kind() Kind
	isEvent()
}

// Listener receives events. A returned error is logged by the bus and does not
// stop delivery to other listeners.
type Listener func(Event) error

// NavigationStart is published when a screen transition begins.
type NavigationStart struct {
	Screen string `json:"screen"`
	Detail Detail `json:"detail,omitempty"`
}

// NavigationComplete is published once a screen has settled.
type NavigationComplete struct {
	Screen  string  `json:"screen"`
	Detail  Detail  `json:"detail,omitempty"`
	Measure Measure `json:"measure"`
}

// MeasureRecorded is published for every measure the engine derives.
type MeasureRecorded struct {
	Measure Measure `json:"measure"`
}

// NativeMark carries an entry observed from the host platform.
type NativeMark struct {
	Entry Entry `json:"entry"`
}

// AppInteractive is published when startup completes.
type AppInteractive struct {
	Detail  Detail  `json:"detail,omitempty"`
	Measure Measure `json:"measure"`
}

func (NavigationStart) Kind() Kind    { return KindNavigationStart }
func (NavigationComplete) Kind() Kind { return KindNavigationComplete }
func (MeasureRecorded) Kind() Kind    { return KindMeasure }
func (NativeMark) Kind() Kind         { return KindNativeMark }
func (AppInteractive) Kind() Kind     { return KindAppInteractive }

func (NavigationStart) isEvent()    {}
func (NavigationComplete) isEvent() {}
func (MeasureRecorded) isEvent()    {}
func (NativeMark) isEvent()         {}
func (AppInteractive) isEvent()     {}

// Screen returns the screen an event refers to, or "" for kinds without one.
func Screen(evt Event) string {
	switch e := evt.(type) {
	case NavigationStart:
		return e.Screen
	case NavigationComplete:
		return e.Screen
	case MeasureRecorded, NativeMark, AppInteractive:
		return ""
	default:
		panic(fmt.Sprintf("primitives: unknown event %T", evt))
	}
}

// MeasureOf returns the measure carried by evt, if any.
func MeasureOf(evt Event) (Measure, bool) {
	switch e := evt.(type) {
	case NavigationComplete:
		return e.Measure, true
	case MeasureRecorded:
		return e.Measure, true
	case AppInteractive:
		return e.Measure, true
	case NavigationStart, NativeMark:
		return Measure{}, false
	default:
		panic(fmt.Sprintf("primitives: unknown event %T", evt))
	}
}

// Describe renders a one-line summary of evt for logs and consoles.
func Describe(evt Event) string {
	switch e := evt.(type) {
	case NavigationStart:
		return fmt.Sprintf("%s screen=%s", e.Kind(), e.Screen)
	case NavigationComplete:
		return fmt.Sprintf("%s screen=%s duration=%.1fms", e.Kind(), e.Screen, e.Measure.Duration)
	case MeasureRecorded:
		return fmt.Sprintf("%s name=%s duration=%.1fms", e.Kind(), e.Measure.Name, e.Measure.Duration)
	case NativeMark:
		return fmt.Sprintf("%s name=%s type=%s", e.Kind(), e.Entry.Name, e.Entry.EntryType)
	case AppInteractive:
		return fmt.Sprintf("%s duration=%.1fms", e.Kind(), e.Measure.Duration)
	default:
		panic(fmt.Sprintf("primitives: unknown event %T", evt))
	}
}
