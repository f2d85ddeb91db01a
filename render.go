package navperf

import "math"

// Pane is one screen layer positioned horizontally in the viewport.
type Pane struct {
	Nav      NavState
	Offset   float64
	Outgoing bool
}

// CanAnimate reports whether ts can be rendered as a slide: both screens must
// be present and the viewport measured.
func CanAnimate(ts *TransitionState, width float64) bool {
	if ts == nil {
		return false
	}
	if ts.From.Screen == "" || ts.To.Screen == "" {
		return false
	}
	return width > 0 && !math.IsInf(width, 0) && !math.IsNaN(width)
}

// PaneOffsets returns the horizontal offsets of the outgoing and incoming
// panes at progress. Moving forward the outgoing pane exits left and the
// incoming pane enters from the right; backward mirrors both.
func PaneOffsets(dir Direction, progress, width float64) (outgoing, incoming float64) {
	p := min(max(progress, 0), 1)
	if dir == Backward {
		return p * width, (p - 1) * width
	}
	return -p * width, (1 - p) * width
}

// Layout returns the panes to draw for v, outgoing first. When no slide can
// be rendered the settled screen is drawn alone at offset 0.
func Layout(v ViewState) []Pane {
	if !CanAnimate(v.Transition, v.ViewportWidth) {
		return []Pane{{Nav: v.DisplayNav}}
	}
	out, in := PaneOffsets(v.Transition.Direction, v.Progress, v.ViewportWidth)
	return []Pane{
		{Nav: v.Transition.From, Offset: out, Outgoing: true},
		{Nav: v.Transition.To, Offset: in},
	}
}
