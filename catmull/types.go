package catmull

import (
	"errors"
	"math"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'catmull'
func tracer() tracing.Trace {
	return tracing.Select("catmull")
}

var (
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
	// ErrTooFewKnots indicates path knot count is insufficient for an operation.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrSegmentRange indicates a segment index outside of the path.
	ErrSegmentRange = errors.New("segment index out of range")
)

// unknown marks control points not yet calculated.
var unknown = casteljau.Point{X: math.NaN(), Y: math.NaN(), Z: math.NaN()}

// IsUnknown is a predicate: is c a placeholder for a missing control point?
func IsUnknown(c casteljau.Point) bool {
	return math.IsNaN(c.X)
}

// Path is the concrete type for building Catmull-Rom splines.
// To construct a path, start with Nullpath(), which creates an empty
// path, and then extend it.
type Path struct {
	points   []casteljau.Point // knot i
	cycle    bool              // is this path cyclic ?
	Controls *Controls         // control points to be calculated
}

// Controls collects calculated spline control points. For knot i, the
// post-control is the second Bézier control point of the segment starting
// at i, the pre-control is the third Bézier control point of the segment
// ending at i.
type Controls struct {
	prec  []casteljau.Point // control point i-, to be calculated
	postc []casteljau.Point // control point i+, to be calculated
}

// Which selects one of the two derived control points of a segment.
type Which int

const (
	// First is the post-control of the segment's start knot, b1 = P1 + (P2-P0)/6.
	First Which = iota
	// Second is the pre-control of the segment's end knot, b2 = P2 - (P3-P1)/6.
	Second
)

func (w Which) String() string {
	if w == Second {
		return "second"
	}
	return "first"
}

// Frame is the input of a single derived control point: the point is
// P1 ± (P2-P0)/6, depending on Which. For the second control point of a
// segment, the frame is shifted by one knot, i.e. P0…P2 hold the segment's
// P1…P3.
type Frame struct {
	P0, P1, P2 casteljau.Point
	Knots      [3]int // knot indices of P0, P1, P2 (after boundary clamping)
	Segment    int    // segment the control point belongs to
	Which      Which
}

// Owner is the index of the knot the derived control point is attached to.
func (f Frame) Owner() int {
	return f.Knots[1]
}

// Vector is the tangent vector P2 - P0 the derived point is built from.
func (f Frame) Vector() casteljau.Point {
	return f.P2.Sub(f.P0)
}

// Derived is the control point the frame describes.
func (f Frame) Derived() casteljau.Point {
	return Derived(f.P0, f.P1, f.P2, f.Which)
}
