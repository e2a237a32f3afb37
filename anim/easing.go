package anim

import "math"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
// Every easing function keeps the endpoints fixed.
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseInOutCubic accelerates during the first half and decelerates during
// the second half.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func clamp01(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	}
	return t
}
