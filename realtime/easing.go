package realtime

import "math"

// Easing maps linear progress t in [0,1] to eased progress.
type Easing func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return t
}

// EaseOutCubic decelerates towards the end: 1 - (1-t)^3.
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
