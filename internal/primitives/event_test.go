package primitives

import (
	"strings"
	"testing"
)

func TestEvent_Kinds(t *testing.T) {
	cases := []struct {
		evt  Event
		want Kind
	}{
		{NavigationStart{Screen: "home"}, KindNavigationStart},
		{NavigationComplete{Screen: "home"}, KindNavigationComplete},
		{MeasureRecorded{}, KindMeasure},
		{NativeMark{}, KindNativeMark},
		{AppInteractive{}, KindAppInteractive},
	}
	for _, c := range cases {
		if got := c.evt.Kind(); got != c.want {
			t.Errorf("%T.Kind() = %q, want %q", c.evt, got, c.want)
		}
	}
}

func TestScreen(t *testing.T) {
	if got := Screen(NavigationStart{Screen: "gradeOne"}); got != "gradeOne" {
		t.Errorf("Screen(start) = %q, want gradeOne", got)
	}
	if got := Screen(NavigationComplete{Screen: "home"}); got != "home" {
		t.Errorf("Screen(complete) = %q, want home", got)
	}
	if got := Screen(AppInteractive{}); got != "" {
		t.Errorf("Screen(appInteractive) = %q, want empty", got)
	}
}

func TestMeasureOf(t *testing.T) {
	m := Measure{Name: "appStartup", Duration: 12}
	if got, ok := MeasureOf(AppInteractive{Measure: m}); !ok || got.Name != "appStartup" {
		t.Errorf("MeasureOf(appInteractive) = %v, %v", got, ok)
	}
	if _, ok := MeasureOf(NavigationStart{}); ok {
		t.Error("MeasureOf(navigationStart) should report false")
	}
}

func TestDescribe(t *testing.T) {
	got := Describe(NavigationComplete{Screen: "gradeOne", Measure: Measure{Duration: 281.25}})
	if !strings.Contains(got, "navigationComplete") || !strings.Contains(got, "gradeOne") || !strings.Contains(got, "281.2") {
		t.Errorf("Describe() = %q", got)
	}
}
