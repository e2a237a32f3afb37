package catmull

import (
	"fmt"

	"github.com/npillmayer/casteljau"
)

// minFrameKnots is the smallest spline a tangent derivation is shown for.
const minFrameKnots = 4

// ValidateForSolve checks if a path is suitable for finding control points.
func (path *Path) ValidateForSolve() error {
	if path == nil {
		return ErrNilPath
	}
	n := path.N()
	if path.IsCycle() {
		if n < 3 {
			return fmt.Errorf("%w: cycle needs at least 3 knots, got %d", ErrTooFewKnots, n)
		}
	} else if n < 2 {
		return fmt.Errorf("%w: open path needs at least 2 knots, got %d", ErrTooFewKnots, n)
	}
	for i := 0; i < n; i++ {
		if path.points[i].IsNaN() {
			return fmt.Errorf("%w at knot %d", ErrInvalidKnot, i)
		}
	}
	return nil
}

// FindControls finds the Bézier control points of every segment of a
// Catmull-Rom spline given by a skeleton path.
//
// Clients may provide a container for the spline control points. If none
// is provided, i.e. controls == nil, this function will allocate one.
// It validates the path and returns an error for empty/invalid geometry.
func FindControls(path *Path, controls *Controls) (*Controls, error) {
	if err := path.ValidateForSolve(); err != nil {
		return nil, err
	}
	if controls == nil {
		controls = &Controls{}
	}
	for i := 0; i < path.Segments(); i++ {
		b := path.interpolate(i)
		controls.SetPostControl(i, b[1])
		controls.SetPreControl(path.index(i+1), b[2])
	}
	tracer().Debugf("spline controls:\n%s", AsString(path, controls))
	return controls, nil
}

func (path *Path) interpolate(i int) [4]casteljau.Point {
	return Interpolate(path.Z(i-1), path.Z(i), path.Z(i+1), path.Z(i+2))
}

// Segment returns the four Bézier control points of segment i, i.e. the
// segment between knot i and knot i+1.
func (path *Path) Segment(i int) ([4]casteljau.Point, error) {
	if i < 0 || i >= path.Segments() {
		return [4]casteljau.Point{}, fmt.Errorf("%w: %d of %d", ErrSegmentRange, i, path.Segments())
	}
	return path.interpolate(i), nil
}

// Sample samples the whole spline with stepsPerSegment parameters per
// segment. For open paths the result equals Curve(path.Knots(), stepsPerSegment);
// for cycles the spline returns to the first knot.
func (path *Path) Sample(stepsPerSegment int) []casteljau.Point {
	if !path.cycle {
		return Curve(path.points, stepsPerSegment)
	}
	if path.ValidateForSolve() != nil {
		return nil
	}
	if stepsPerSegment < 1 {
		stepsPerSegment = 1
	}
	var curve []casteljau.Point
	for i := 0; i < path.Segments(); i++ {
		curve = sampleSegment(curve, path.interpolate(i), stepsPerSegment)
	}
	return append(curve, path.Z(0))
}

// Frame selects the input of a tangent derivation for a derived control
// point of segment i. For First the frame is (P[i-1], P[i], P[i+1]), for
// Second it is (P[i], P[i+1], P[i+2]). At the ends of an open path the
// missing neighbour is replaced by a repetition of the end knot, exactly as
// the phantom knots of Curve.
//
// Tangent derivations are shown for splines of at least 4 knots only;
// smaller paths are refused with ErrTooFewKnots.
func (path *Path) Frame(i int, w Which) (Frame, error) {
	if path == nil {
		return Frame{}, ErrNilPath
	}
	if path.N() < minFrameKnots {
		return Frame{}, fmt.Errorf("%w: tangent derivation needs %d knots, got %d",
			ErrTooFewKnots, minFrameKnots, path.N())
	}
	if i < 0 || i >= path.Segments() {
		return Frame{}, fmt.Errorf("%w: %d of %d", ErrSegmentRange, i, path.Segments())
	}
	first := i - 1
	if w == Second {
		first = i
	}
	f := Frame{Segment: i, Which: w}
	for k := 0; k < 3; k++ {
		f.Knots[k] = path.index(first + k)
	}
	f.P0, f.P1, f.P2 = path.Z(first), path.Z(first+1), path.Z(first+2)
	tracer().Debugf("frame for %s control of segment %d: knots %v", w, i, f.Knots)
	return f, nil
}
