package catmull

import (
	"github.com/npillmayer/casteljau"
)

// SetPreControl sets the control point before knot i.
func (ctrls *Controls) SetPreControl(i int, c casteljau.Point) {
	ctrls.prec = extendC(ctrls.prec, i, unknown)
	ctrls.prec[i] = c
}

// SetPostControl sets the control point after knot i.
func (ctrls *Controls) SetPostControl(i int, c casteljau.Point) {
	ctrls.postc = extendC(ctrls.postc, i, unknown)
	ctrls.postc[i] = c
}

// PreControl returns the control point before knot i, or an unknown point
// (see IsUnknown).
func (ctrls *Controls) PreControl(i int) casteljau.Point {
	return getC(ctrls.prec, i, unknown)
}

// PostControl returns the control point after knot i, or an unknown point
// (see IsUnknown).
func (ctrls *Controls) PostControl(i int) casteljau.Point {
	return getC(ctrls.postc, i, unknown)
}

// Control returns the control point selected by w for knot i.
// First selects the post-control, Second the pre-control.
func (ctrls *Controls) Control(i int, w Which) casteljau.Point {
	if w == Second {
		return ctrls.PreControl(i)
	}
	return ctrls.PostControl(i)
}
