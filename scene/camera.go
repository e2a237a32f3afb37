package scene

import (
	"math"

	"github.com/npillmayer/casteljau"
)

// Projector maps world points to screen coordinates.
type Projector interface {
	ProjectToScreen(p casteljau.Point) (x, y float64)
}

// Camera is an orthographic view onto the x/y plane. Screen coordinates
// have their origin at the top left corner of the viewport, with y growing
// downwards. The z-part of world points is ignored.
type Camera struct {
	Width, Height int             // viewport in screen units (pixels, cells)
	Center        casteljau.Point // world point at the center of the viewport
	Zoom          float64         // screen units per world unit
	Aspect        float64         // horizontal stretch, for non-square screen units
}

// NewCamera creates a camera for a viewport of w × h screen units, looking
// at the world origin with zoom 1.
func NewCamera(w, h int) *Camera {
	return &Camera{Width: w, Height: h, Zoom: 1, Aspect: 1}
}

// Transform returns the affine transform from world to screen coordinates.
func (c *Camera) Transform() casteljau.AT {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	center := casteljau.P(c.Center.X, c.Center.Y).Scaled(-1)
	half := casteljau.P(float64(c.Width)/2, float64(c.Height)/2)
	return casteljau.Translation(center).
		Combine(casteljau.Scaling(c.Zoom*aspect, -c.Zoom)).
		Combine(casteljau.Translation(half))
}

// ProjectToScreen maps a world point to screen coordinates.
func (c *Camera) ProjectToScreen(p casteljau.Point) (x, y float64) {
	q := c.Transform().Transform(p)
	return q.X, q.Y
}

// Unproject maps screen coordinates back to a point in the x/y plane.
// It returns false if the camera is degenerate (zoom 0).
func (c *Camera) Unproject(x, y float64) (casteljau.Point, bool) {
	inv, ok := c.Transform().Inverse()
	if !ok {
		return casteljau.Origin, false
	}
	p := inv.Transform(casteljau.P(x, y))
	return p.Zap(), true
}

// Resize changes the viewport, keeping center and zoom.
func (c *Camera) Resize(w, h int) {
	c.Width, c.Height = w, h
}

// Fit centers the camera on the box (lo, hi) and zooms so that the box
// fills the viewport, leaving margin screen units on every side. A box
// without extent just moves the center.
func (c *Camera) Fit(lo, hi casteljau.Point, margin float64) {
	c.Center = lo.Lerp(hi, 0.5)
	c.Center.Z = 0
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	w := float64(c.Width) - 2*margin
	h := float64(c.Height) - 2*margin
	dx, dy := (hi.X-lo.X)*aspect, hi.Y-lo.Y
	zoom := math.Inf(1)
	if !casteljau.Is0(dx) && w > 0 {
		zoom = w / dx
	}
	if !casteljau.Is0(dy) && h > 0 {
		zoom = math.Min(zoom, h/dy)
	}
	if math.IsInf(zoom, 1) {
		tracer().Debugf("camera fit: box without extent, keeping zoom %g", c.Zoom)
		return
	}
	c.Zoom = zoom
	tracer().Debugf("camera fit: center %s, zoom %g", c.Center, c.Zoom)
}
