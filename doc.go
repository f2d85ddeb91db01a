// Package navperf instruments an application's startup and screen navigation
// and drives the slide transition shown when navigation leaves or returns to
// the home screen.
//
// The pieces compose as follows:
//
//	perf := navperf.NewPerformance()
//	perf.Initialize(navperf.PerformanceConfig{OnEvent: devConsole})
//	shell := navperf.NewShell(navperf.NavState{Screen: "home"}, perf,
//		realtime.NewFrameDriver(realtime.Config{}))
//	defer shell.Close()
//	perf.MarkAppInteractive(navperf.Detail{"initialScreen": "home"})
//	shell.Nav.Go("gradeOne", nil) // slides forward, then marks completion
//
// Performance records marks and measures and republishes them as typed events.
// Navigator is the navigation-state holder: it marks the start of every
// navigation and forwards the request to the Transitioner, which decides
// whether to slide, runs the animation, and marks completion once the new
// screen has settled. Layout turns the Transitioner's view state into pane
// offsets for a renderer.
package navperf
