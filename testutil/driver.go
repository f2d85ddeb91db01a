// Package testutil provides deterministic doubles for driving transitions in
// tests without a wall clock.
package testutil

import (
	"sync"
	"time"

	"github.com/comalice/navperf/realtime"
)

// ManualDriver is a realtime.Driver whose animations advance only when a test
// calls Advance or Finish. Callbacks run synchronously on the test goroutine.
type ManualDriver struct {
	mu   sync.Mutex
	runs []*ManualRun
}

// NewManualDriver creates a driver with no runs.
func NewManualDriver() *ManualDriver {
	return &ManualDriver{}
}

// Start records a and returns its run. No callback fires until Advance.
func (d *ManualDriver) Start(a realtime.Animation) realtime.Handle {
	if a.Easing == nil {
		a.Easing = realtime.Linear
	}
	r := &ManualRun{anim: a}
	d.mu.Lock()
	d.runs = append(d.runs, r)
	d.mu.Unlock()
	return r
}

// Runs returns every run started so far, oldest first.
func (d *ManualDriver) Runs() []*ManualRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*ManualRun(nil), d.runs...)
}

// Active returns the newest run that is neither stopped nor finished.
func (d *ManualDriver) Active() *ManualRun {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.runs) - 1; i >= 0; i-- {
		if r := d.runs[i]; !r.Stopped() && !r.Finished() {
			return r
		}
	}
	return nil
}

// ManualRun is one animation started on a ManualDriver.
type ManualRun struct {
	anim realtime.Animation

	mu       sync.Mutex
	elapsed  time.Duration
	stopped  bool
	finished bool
}

// Animation returns the animation the run was started with.
func (r *ManualRun) Animation() realtime.Animation {
	return r.anim
}

// Stop marks the run stopped; later Advance calls are no-ops.
func (r *ManualRun) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
}

// Stopped reports whether Stop was called.
func (r *ManualRun) Stopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

// Finished reports whether OnDone has been delivered.
func (r *ManualRun) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

// Advance moves the run forward by d and delivers one frame, plus OnDone when
// the duration has elapsed.
func (r *ManualRun) Advance(d time.Duration) {
	r.mu.Lock()
	if r.stopped || r.finished {
		r.mu.Unlock()
		return
	}
	r.elapsed += d
	t := 1.0
	if r.anim.Duration > 0 {
		t = min(1, float64(r.elapsed)/float64(r.anim.Duration))
	}
	complete := t >= 1
	if complete {
		r.finished = true
	}
	r.mu.Unlock()

	if r.anim.OnFrame != nil {
		r.anim.OnFrame(r.anim.Easing(t))
	}
	if complete && r.anim.OnDone != nil {
		r.anim.OnDone()
	}
}

// Finish advances the run to its end.
func (r *ManualRun) Finish() {
	r.mu.Lock()
	remaining := r.anim.Duration - r.elapsed
	r.mu.Unlock()
	r.Advance(max(remaining, 0))
}
