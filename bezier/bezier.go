/*
Package bezier evaluates Bézier curves by de Casteljau's algorithm.

De Casteljau's algorithm interpolates every adjacent pair of a point list
at parameter t, replacing the list with the shorter list of interpolated
points, until a single point remains. That point lies on the Bézier curve
of the original list. The intermediate lists ("levels") are what the
visualizer draws while sweeping t from 0 to 1, therefore Levels retains
all of them.

All functions of this package are pure. They never panic on malformed input
but fail closed: an empty point list yields no result.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package bezier

import (
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bezier'
func tracer() tracing.Trace {
	return tracing.Select("bezier")
}

// DeCasteljau evaluates the Bézier curve of points at parameter t.
// t is not clamped; callers restrict it to [0,1].
// It returns false if points is empty.
func DeCasteljau(points []casteljau.Point, t float64) (casteljau.Point, bool) {
	if len(points) == 0 {
		tracer().Debugf("de Casteljau called with empty point list")
		return casteljau.Point{}, false
	}
	work := make([]casteljau.Point, len(points))
	copy(work, points)
	for n := len(work); n > 1; n-- {
		for i := 0; i < n-1; i++ {
			work[i] = work[i].Lerp(work[i+1], t)
		}
	}
	return work[0], true
}

// Levels runs de Casteljau's algorithm at parameter t and returns every
// level of the recursion. Level 0 is a copy of points, level k has
// len(points)-k entries, and the last level holds the single curve point.
// It returns nil if points is empty.
func Levels(points []casteljau.Point, t float64) [][]casteljau.Point {
	if len(points) == 0 {
		return nil
	}
	levels := make([][]casteljau.Point, 0, len(points))
	level := make([]casteljau.Point, len(points))
	copy(level, points)
	levels = append(levels, level)
	for len(level) > 1 {
		next := make([]casteljau.Point, len(level)-1)
		for i := range next {
			next[i] = level[i].Lerp(level[i+1], t)
		}
		levels = append(levels, next)
		level = next
	}
	return levels
}

// Curve samples the Bézier curve of points at t = i/steps for i = 0…steps,
// returning steps+1 positions. It returns nil for fewer than 2 points.
// A step count below 1 is treated as 1.
func Curve(points []casteljau.Point, steps int) []casteljau.Point {
	if len(points) < 2 {
		return nil
	}
	if steps < 1 {
		steps = 1
	}
	curve := make([]casteljau.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p, _ := DeCasteljau(points, t)
		curve = append(curve, p)
	}
	tracer().Debugf("sampled Bézier curve of degree %d with %d steps", len(points)-1, steps)
	return curve
}
