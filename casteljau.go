/*
Package casteljau implements points and affine transformations for an
interactive visualizer of de Casteljau's algorithm and of Catmull-Rom splines.

Sub-packages build on these types:

	bezier     recursive linear interpolation, Bézier sampling
	catmull    Catmull-Rom splines as chains of Bézier segments
	anim       pausable clocks, frame drivers, the pause state and the animation lock
	animator   step-by-step construction animations
	canvas     control-point editing, the input surface for presenters

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package casteljau

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'casteljau'
func tracer() tracing.Trace {
	return tracing.Select("casteljau")
}

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Point Data Type =======================================================

// Point is a position in 3D space. The visualizer is planar, so Z is
// usually 0, but it is carried through every computation.
type Point struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = Point{}

// XAxis is the unit vector in x-direction. It serves as the direction of
// vectors too short to have one.
var XAxis = Point{X: 1}

// P is a quick notation for constructing a planar point from floats.
func P(x, y float64) Point {
	return Point{X: x, Y: y}
}

// P3 constructs a point from three coordinates.
func P3(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Pretty Stringer for points. The z-part is omitted if it is 0.
func (p Point) String() string {
	if p.Z == 0 {
		return fmt.Sprintf("(%g,%g)", p.X, p.Y)
	}
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scaled returns a new point scaled by factor a.
func (p Point) Scaled(a float64) Point {
	return Point{X: p.X * a, Y: p.Y * a, Z: p.Z * a}
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
// t is not clamped. The endpoints are reproduced exactly.
func (p Point) Lerp(q Point, t float64) Point {
	s := 1 - t
	return Point{
		X: s*p.X + t*q.X,
		Y: s*p.Y + t*q.Y,
		Z: s*p.Z + t*q.Z,
	}
}

// Length is the euclidean length of p, interpreted as a vector.
func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Dist is the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return q.Sub(p).Length()
}

// Normalized returns p scaled to unit length. Vectors of length 0 (within ε)
// have no direction; for them XAxis is returned.
func (p Point) Normalized() Point {
	l := p.Length()
	if Is0(l) {
		tracer().Debugf("normalizing zero-length vector %s, using x-axis", p)
		return XAxis
	}
	return p.Scaled(1 / l)
}

// Zap rounds all parts to Epsilon.
func (p Point) Zap() Point {
	return Point{X: Zap(p.X), Y: Zap(p.Y), Z: Zap(p.Z)}
}

// IsNaN is a predicate: does any part of p hold NaN or ±Inf?
func (p Point) IsNaN() bool {
	for _, f := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return true
		}
	}
	return false
}

// Equal compares two points, tolerating differences below ε.
func (p Point) Equal(q Point) bool {
	return Is0(p.X-q.X) && Is0(p.Y-q.Y) && Is0(p.Z-q.Z)
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming the
// planar part of points. The z-part of a point passes unchanged.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Point) AT {
	m := Identity()
	m.set(0, 2, p.X)
	m.set(1, 2, p.Y)
	return m
}

// Scaling transform. Scale x-part by sx and y-part by sy.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The result applies m first, then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

// Inverse returns the inverse transform. It returns false if m is singular.
func (m AT) Inverse() (AT, bool) {
	a, b, c := m.get(0, 0), m.get(0, 1), m.get(0, 2)
	d, e, f := m.get(1, 0), m.get(1, 1), m.get(1, 2)
	det := a*e - b*d
	if Is0(det) {
		tracer().Errorf("affine transform %s is not invertible", m)
		return nil, false
	}
	inv := Identity()
	inv.set(0, 0, e/det)
	inv.set(0, 1, -b/det)
	inv.set(1, 0, -d/det)
	inv.set(1, 1, a/det)
	inv.set(0, 2, (b*f-c*e)/det)
	inv.set(1, 2, (c*d-a*f)/det)
	return inv, true
}

func (m *AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a point. The argument is unchanged and a new point is returned.
func (m AT) Transform(p Point) Point {
	c := make([]float64, 3)
	c[0] = p.X
	c[1] = p.Y
	c[2] = 1.0
	c = m.multiplyVector(c)
	return Point{X: c[0], Y: c[1], Z: p.Z}
}
