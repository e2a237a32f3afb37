/*
Package polygon implements control polygons. It is a thin layer on top of
polyclip-go, used for bounding boxes, containment tests and clipping.

The convex-hull property of Bézier curves makes polygons useful for the
visualizer: a Bézier segment lies within the convex hull of its control
points (see Hull), so picking a segment reduces to a containment test.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing"
)

// L traces with key 'polygon'.
func L() tracing.Trace {
	return tracing.Select("polygon")
}

// Polygon is a sequence of knots, either open or closed.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon, to be extended by subsequent builder
// calls:
//
//	pg := NullPolygon().Knot(P(0,0)).Knot(P(1,3)).Knot(P(3,0)).Cycle()
func NullPolygon() *Polygon {
	return &Polygon{}
}

// FromPoints creates an open polygon from a list of points.
func FromPoints(points []casteljau.Point) *Polygon {
	pg := NullPolygon()
	for _, p := range points {
		pg.Knot(p)
	}
	return pg
}

// Box creates a closed rectangular polygon from two opposite corners.
func Box(ll, ur casteljau.Point) *Polygon {
	minx, maxx := min(ll.X, ur.X), max(ll.X, ur.X)
	miny, maxy := min(ll.Y, ur.Y), max(ll.Y, ur.Y)
	return NullPolygon().
		Knot(casteljau.P(minx, miny)).Knot(casteljau.P(maxx, miny)).
		Knot(casteljau.P(maxx, maxy)).Knot(casteljau.P(minx, maxy)).Cycle()
}

// Hull creates the convex hull of a set of points as a closed polygon,
// counter-clockwise. Knots on the hull's edges are dropped. The knot
// sequence of a control polygon may intersect itself; its hull never does.
func Hull(points []casteljau.Point) *Polygon {
	pts := slices.Clone(points)
	slices.SortFunc(pts, func(a, b casteljau.Point) int {
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	if len(pts) < 3 {
		return FromPoints(pts).Cycle()
	}
	turn := func(o, a, b casteljau.Point) float64 { // > 0 for a left turn
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]casteljau.Point, 0, 2*len(pts))
	for _, p := range pts { // lower hull
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- { // upper hull
		p := pts[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return FromPoints(hull[:len(hull)-1]).Cycle()
}

// Knot appends a knot. Part of builder functionality.
func (pg *Polygon) Knot(p casteljau.Point) *Polygon {
	pg.contour.Add(polyclip.Point{X: p.X, Y: p.Y})
	return pg
}

// Cycle closes the polygon. Part of builder functionality.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// End leaves the polygon open. Part of builder functionality.
func (pg *Polygon) End() *Polygon {
	return pg
}

// IsCycle is a predicate: is this polygon closed?
func (pg *Polygon) IsCycle() bool {
	return pg.cycle
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	return len(pg.contour)
}

// Pt returns knot i as a planar point.
func (pg *Polygon) Pt(i int) casteljau.Point {
	p := pg.contour[i]
	return casteljau.P(p.X, p.Y)
}

// BoundingBox returns the lower left and upper right corner of the smallest
// axis-aligned rectangle enclosing all knots. It returns false for an
// empty polygon.
func (pg *Polygon) BoundingBox() (casteljau.Point, casteljau.Point, bool) {
	if pg.N() == 0 {
		return casteljau.Origin, casteljau.Origin, false
	}
	bb := pg.contour.BoundingBox()
	return casteljau.P(bb.Min.X, bb.Min.Y), casteljau.P(bb.Max.X, bb.Max.Y), true
}

// Contains is a predicate: is p inside the area of the polygon?
// Open polygons are treated as if they were closed.
func (pg *Polygon) Contains(p casteljau.Point) bool {
	if pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(polyclip.Point{X: p.X, Y: p.Y})
}

// Overlaps is a predicate: do the bounding boxes of pg and other overlap?
func (pg *Polygon) Overlaps(other *Polygon) bool {
	if pg.N() == 0 || other.N() == 0 {
		return false
	}
	return pg.contour.BoundingBox().Overlaps(other.contour.BoundingBox())
}

// Intersection clips pg with other and returns the closed polygons of the
// common area. Both polygons are treated as closed.
func (pg *Polygon) Intersection(other *Polygon) []*Polygon {
	subject := polyclip.Polygon{pg.contour.Clone()}
	clipping := polyclip.Polygon{other.contour.Clone()}
	result := subject.Construct(polyclip.INTERSECTION, clipping)
	L().Debugf("intersection of %d and %d knots yields %d contours", pg.N(), other.N(), len(result))
	pgs := make([]*Polygon, 0, len(result))
	for _, c := range result {
		pgs = append(pgs, &Polygon{contour: c, cycle: true})
	}
	return pgs
}

// Points returns the knots of pg.
func (pg *Polygon) Points() []casteljau.Point {
	pts := make([]casteljau.Point, pg.N())
	for i := range pts {
		pts[i] = pg.Pt(i)
	}
	return pts
}

// AsString returns a polygon as a (debugging) string, in MetaPost notation.
func AsString(pg *Polygon) string {
	var b strings.Builder
	for i := 0; i < pg.N(); i++ {
		if i > 0 {
			b.WriteString(" -- ")
		}
		p := pg.contour[i]
		fmt.Fprintf(&b, "(%.4g,%.4g)", p.X, p.Y)
	}
	if pg.cycle {
		b.WriteString(" -- cycle")
	}
	return b.String()
}
