// Package catmull deals with Catmull-Rom splines. It finds the Bézier
// control points of every spline segment.
/*

A uniform Catmull-Rom spline passes through all of its knots. Every segment
between knots P1 and P2 is a cubic Bézier curve whose inner control points
are derived from the neighbouring knots by a tangent rule:

   b0 = P1
   b1 = P1 + (P2 - P0)/6
   b2 = P2 - (P3 - P1)/6
   b3 = P2

At the ends of an open spline the missing neighbours are phantom knots,
i.e. repetitions of the first and last knot. Centripetal or chordal
parametrization is not supported.

Usage

Clients may either sample a spline in one go with Curve(points, steps),
or build a skeleton path and find its control points:

   path := Nullpath().Knot(P(0,0)).Knot(P(2,3)).Knot(P(5,3)).Knot(P(3,-1)).End()
   controls, err := FindControls(path, nil)

which returns the control point information of every segment:

  (0,0) .. controls (0.3333,0.5000) and (1.1667,2.5000)
   .. (2,3) .. controls (2.8333,3.5000) and (4.8333,3.6667)
   .. (5,3) .. controls (5.1667,2.3333) and (3.3333,-0.3333)
   .. (3,-1)

For the visualizer, Path.Frame selects the three knots a single derived
control point is built from, honouring the phantom knots at the ends.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package catmull

import "fmt"

// AsString returns
// a path -- optionally including spline control points -- as a (debugging)
// string. The string contains newlines if control point information is present.
// Otherwise it will include the knot coordinates in one line.
//
// The format is not fully equivalent to MetaPost's, but close.
func AsString(path *Path, contr *Controls) string {
	var s string
	for i := 0; i < path.N(); i++ {
		pt := path.Z(i)
		if i > 0 {
			if contr != nil {
				s += fmt.Sprintf(" and %s\n  .. ", ptstring(contr.PreControl(i), true))
			} else {
				s += " .. "
			}
		}
		s += ptstring(pt, false)
		if contr != nil && (i < path.N()-1 || path.IsCycle()) {
			s += fmt.Sprintf(" .. controls %s", ptstring(contr.PostControl(i), true))
		}
	}
	if path.IsCycle() {
		if contr != nil {
			s += fmt.Sprintf(" and %s\n ", ptstring(contr.PreControl(0), true))
		}
		s += " .. cycle"
	}
	return s
}
