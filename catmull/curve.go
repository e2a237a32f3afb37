package catmull

import (
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/bezier"
)

// Interpolate converts the uniform Catmull-Rom segment between p1 and p2 to
// its four Bézier control points:
//
//	b0 = p1
//	b1 = p1 + (p2-p0)/6
//	b2 = p2 - (p3-p1)/6
//	b3 = p2
func Interpolate(p0, p1, p2, p3 casteljau.Point) [4]casteljau.Point {
	return [4]casteljau.Point{
		p1,
		Derived(p0, p1, p2, First),
		Derived(p1, p2, p3, Second),
		p2,
	}
}

// Derived computes a single derived control point p1 ± (p2-p0)/6, adding the
// scaled tangent for First and subtracting it for Second.
func Derived(p0, p1, p2 casteljau.Point, w Which) casteljau.Point {
	v := p2.Sub(p0).Scaled(1.0 / 6.0)
	if w == Second {
		return p1.Sub(v)
	}
	return p1.Add(v)
}

// Curve samples the open Catmull-Rom spline through points. The first and
// last point are duplicated as phantom end points; every segment is
// converted to a Bézier segment by Interpolate and sampled at
// stepsPerSegment parameters t = j/stepsPerSegment, j < stepsPerSegment.
// The last point is appended once at the end.
//
// Curve returns nil for fewer than 2 points. A step count below 1 is
// treated as 1.
func Curve(points []casteljau.Point, stepsPerSegment int) []casteljau.Point {
	if len(points) < 2 {
		return nil
	}
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	padded := make([]casteljau.Point, 0, len(points)+2)
	padded = append(padded, points[0])
	padded = append(padded, points...)
	padded = append(padded, points[len(points)-1])
	segments := len(points) - 1
	curve := make([]casteljau.Point, 0, segments*stepsPerSegment+1)
	for i := 0; i < segments; i++ {
		b := Interpolate(padded[i], padded[i+1], padded[i+2], padded[i+3])
		curve = sampleSegment(curve, b, stepsPerSegment)
	}
	curve = append(curve, points[len(points)-1])
	tracer().Debugf("sampled Catmull-Rom spline: %d segments, %d points", segments, len(curve))
	return curve
}

func sampleSegment(curve []casteljau.Point, b [4]casteljau.Point, steps int) []casteljau.Point {
	for j := 0; j < steps; j++ {
		p, _ := bezier.DeCasteljau(b[:], float64(j)/float64(steps))
		curve = append(curve, p)
	}
	return curve
}
