package testutil

import (
	"testing"
	"time"

	"github.com/comalice/navperf/realtime"
)

func TestManualDriver_AdvanceAndFinish(t *testing.T) {
	d := NewManualDriver()
	var progress []float64
	done := 0
	d.Start(realtime.Animation{
		Duration: 100 * time.Millisecond,
		OnFrame:  func(p float64) { progress = append(progress, p) },
		OnDone:   func() { done++ },
	})

	r := d.Active()
	if r == nil {
		t.Fatal("Active() = nil")
	}
	r.Advance(25 * time.Millisecond)
	r.Finish()
	r.Advance(time.Second)

	if len(progress) != 2 || progress[0] != 0.25 || progress[1] != 1 {
		t.Errorf("progress = %v, want [0.25 1]", progress)
	}
	if done != 1 {
		t.Errorf("done = %d, want 1", done)
	}
	if d.Active() != nil {
		t.Error("finished run still active")
	}
}

func TestManualDriver_StoppedRunIsSilent(t *testing.T) {
	d := NewManualDriver()
	called := false
	h := d.Start(realtime.Animation{
		Duration: 10 * time.Millisecond,
		OnFrame:  func(float64) { called = true },
	})
	h.Stop()
	d.Runs()[0].Finish()

	if called {
		t.Error("stopped run delivered a frame")
	}
}
