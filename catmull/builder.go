package catmull

import (
	"github.com/npillmayer/casteljau"
)

func newSkeletonPath(points []casteljau.Point) *Path {
	path := &Path{}
	path.points = make([]casteljau.Point, len(points), len(points)*2)
	copy(path.points, points)
	path.Controls = &Controls{}
	return path
}

// Nullpath creates an empty path, to be extended by subsequent builder
// calls. The following example builds an open path of three knots:
//
//	var path *Path
//	var controls *Controls
//	path = Nullpath().Knot(P(0,0)).Knot(P(3,2)).Knot(P(5,2.5)).End()
//	controls = path.Controls
//
// Calling Cycle() or End() returns a path. Its control point container
// (path.Controls) is empty and to be filled by FindControls.
func Nullpath() *Path {
	return newSkeletonPath(nil)
}

// FromPoints creates an open path with the given knots. The slice is copied.
func FromPoints(points []casteljau.Point) *Path {
	return newSkeletonPath(points)
}

// End an open path. Part of builder functionality.
func (path *Path) End() *Path {
	return path
}

// Cycle closes a cyclic path. Part of builder functionality.
func (path *Path) Cycle() *Path {
	path.cycle = true
	return path
}

// Knot adds a knot to a path. Part of builder functionality.
func (path *Path) Knot(p casteljau.Point) *Path {
	path.points = append(path.points, p)
	return path
}

// IsCycle is a predicate: is this path cyclic?
func (path *Path) IsCycle() bool {
	return path.cycle
}

// N returns the length of this path (knot count).
func (path *Path) N() int {
	return len(path.points)
}

// Segments returns the number of Bézier segments of the spline.
func (path *Path) Segments() int {
	switch {
	case path.N() < 2:
		return 0
	case path.cycle:
		return path.N()
	}
	return path.N() - 1
}

// Z returns the knot at position i. For cyclic paths i is taken modulo N.
// Open paths are padded with phantom knots: indices before the start
// repeat the first knot, indices after the end repeat the last knot.
func (path *Path) Z(i int) casteljau.Point {
	n := path.N()
	if path.cycle {
		i = ((i % n) + n) % n
	} else if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return path.points[i]
}

// index maps i like Z does and returns the resulting knot index.
func (path *Path) index(i int) int {
	n := path.N()
	if path.cycle {
		return ((i % n) + n) % n
	}
	return min(max(i, 0), n-1)
}

// Knots returns a copy of the path's knots.
func (path *Path) Knots() []casteljau.Point {
	k := make([]casteljau.Point, len(path.points))
	copy(k, path.points)
	return k
}
