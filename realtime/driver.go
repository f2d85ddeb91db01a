package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Animation describes one progress run from 0 to 1.
type Animation struct {
	Duration time.Duration
	Easing   Easing // nil: Linear
	OnFrame  func(progress float64)
	OnDone   func()
}

// Handle controls a started animation.
type Handle interface {
	// Stop cancels the animation. Idempotent and safe after completion.
	Stop()
}

// Driver starts animations.
type Driver interface {
	Start(a Animation) Handle
}

// Config configures the frame driver.
type Config struct {
	FrameRate time.Duration    // Frame interval (default: 16.667ms, 60 FPS)
	Clock     func() time.Time // default: time.Now
	Logger    *slog.Logger     // default: slog.Default()
}

// FrameDriver runs animations on fixed-interval ticks.
type FrameDriver struct {
	frameRate time.Duration
	clock     func() time.Time
	logger    *slog.Logger
}

// NewFrameDriver creates a FrameDriver, filling defaults into cfg.
func NewFrameDriver(cfg Config) *FrameDriver {
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = 16667 * time.Microsecond // Default 60 FPS
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &FrameDriver{
		frameRate: cfg.FrameRate,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
	}
}

// FrameRate returns the tick interval.
func (d *FrameDriver) FrameRate() time.Duration {
	return d.frameRate
}

// Start launches a on its own frame loop.
func (d *FrameDriver) Start(a Animation) Handle {
	return d.start(a)
}

func (d *FrameDriver) start(a Animation) *Run {
	if a.Easing == nil {
		a.Easing = Linear
	}
	r := &Run{
		anim:    a,
		clock:   d.clock,
		logger:  d.logger,
		started: d.clock(),
		ticker:  time.NewTicker(d.frameRate),
		stopped: make(chan struct{}),
	}
	r.ctx, r.cancel = context.WithCancel(context.Background())

	go r.loop()

	return r
}

// Run is a single animation started by a FrameDriver.
type Run struct {
	anim    Animation
	clock   func() time.Time
	logger  *slog.Logger
	started time.Time

	ticker  *time.Ticker
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}

	halted atomic.Bool
	frames atomic.Uint64
}

// Stop cancels the run without waiting for the frame goroutine.
func (r *Run) Stop() {
	r.halted.Store(true)
	r.cancel()
}

// Done is closed once the frame goroutine has exited.
func (r *Run) Done() <-chan struct{} {
	return r.stopped
}

// Frames returns the number of frames delivered so far.
func (r *Run) Frames() uint64 {
	return r.frames.Load()
}

// loop is the frame loop goroutine.
func (r *Run) loop() {
	defer close(r.stopped)
	defer r.ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.ticker.C:
			if r.frame() {
				return
			}
		}
	}
}

// frame delivers one frame and reports whether the run is over. A panic in
// OnFrame skips the rest of the animation and still delivers OnDone.
func (r *Run) frame() (finished bool) {
	t := 1.0
	if r.anim.Duration > 0 {
		t = clamp01(float64(r.clock().Sub(r.started)) / float64(r.anim.Duration))
	}

	if r.halted.Load() {
		return true
	}
	r.frames.Add(1)
	if r.anim.OnFrame != nil {
		p := clamp01(r.anim.Easing(t))
		if !r.call("OnFrame", func() { r.anim.OnFrame(p) }) {
			t = 1
		}
	}
	if t < 1 {
		return false
	}

	if !r.halted.CompareAndSwap(false, true) {
		return true
	}
	if r.anim.OnDone != nil {
		r.call("OnDone", r.anim.OnDone)
	}
	return true
}

// call runs fn and reports whether it returned without panicking.
func (r *Run) call(name string, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("animation callback panicked", "callback", name, "error", fmt.Sprint(rec))
			ok = false
		}
	}()
	fn()
	return true
}
