// Package realtime drives animations on a fixed frame clock.
//
// A Driver starts an Animation and hands back a Handle. The FrameDriver runs
// each animation on its own ticker goroutine:
//   - Progress is computed from elapsed wall time, eased, and reported once per frame
//   - OnDone fires exactly once, after a frame reported progress 1
//   - Stop is immediate: once it returns no new callback starts
//
// # Example Usage
//
//	d := realtime.NewFrameDriver(realtime.Config{
//		FrameRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	h := d.Start(realtime.Animation{
//		Duration: 280 * time.Millisecond,
//		Easing:   realtime.EaseOutCubic,
//		OnFrame:  func(p float64) { render(p) },
//		OnDone:   settle,
//	})
//	defer h.Stop()
//
// # Stop Semantics
//
// Stop never waits for the frame goroutine, so it is safe to call from inside
// OnFrame or OnDone, or while holding a lock those callbacks take. A callback
// that was already running when Stop was called finishes; callers that must
// ignore such late callbacks compare a token they captured at Start.
package realtime
