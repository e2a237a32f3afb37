/*
Package canvas is the input surface of the visualizer. It holds the list
of control points and the derived Catmull-Rom control points, keeps the
static drawing of the curve up to date, and starts construction
animations.

Presenters translate their input events into calls of Canvas methods:

	AddPoint, MovePoint, RemoveLastPoint     edit the control points
	Animate, AnimateTangent                  start construction animations
	TogglePause                              pause or resume every animation

While a construction animation holds the animation lock, edits are
ignored and return ErrLocked. Animation requests are queued.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package canvas

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/animator"
	"github.com/npillmayer/casteljau/bezier"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/casteljau/polygon"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'canvas'
func tracer() tracing.Trace {
	return tracing.Select("canvas")
}

var (
	// ErrLocked is returned for edits while an animation is running.
	ErrLocked = errors.New("animation running, input ignored")
	// ErrNoPoint is returned for control point indices out of range.
	ErrNoPoint = errors.New("no such control point")
	// ErrNoSegment is returned if there is no curve segment to animate.
	ErrNoSegment = errors.New("no curve segment")
)

// Notifier shows short messages to the user.
type Notifier interface {
	Notice(msg string)
}

// Overlay is the formula and notice display of a canvas.
type Overlay interface {
	animator.FormulaDisplay
	Notifier
}

// Canvas is the editable drawing of a curve and its control points.
// All methods must be called on the goroutine driving the scheduler of the
// canvas' animation environment.
type Canvas struct {
	env      *anim.Env
	graph    *scene.Graph
	overlay  Overlay
	opts     *config.Options
	animator *animator.Animator
	mode     config.Mode
	closed   bool
	points   []casteljau.Point
	derived  *DerivedPoints
	curve    []casteljau.Point
	static   []scene.Handle
	// MarkerRadius is the radius of control point markers in world units.
	MarkerRadius float64
}

// New creates an empty canvas drawing into graph.
func New(env *anim.Env, graph *scene.Graph, overlay Overlay, opts *config.Options) *Canvas {
	if opts == nil {
		opts = config.Default()
	}
	c := &Canvas{
		env:          env,
		graph:        graph,
		overlay:      overlay,
		opts:         opts,
		animator:     animator.New(env, graph, overlay, animator.OptionsFrom(opts)),
		mode:         opts.Mode,
		closed:       opts.Closed,
		derived:      NewDerivedPoints(),
		MarkerRadius: 0.1,
	}
	return c
}

// Animator is the animator running the construction animations.
func (c *Canvas) Animator() *animator.Animator {
	return c.animator
}

// Env is the animation environment of the canvas.
func (c *Canvas) Env() *anim.Env {
	return c.env
}

// Mode is the current construction mode.
func (c *Canvas) Mode() config.Mode {
	return c.mode
}

// Closed reports whether Catmull-Rom splines are drawn as closed loops.
func (c *Canvas) Closed() bool {
	return c.closed
}

// Path is the Catmull-Rom skeleton path through the control points. In
// Catmull-Rom mode it is a cycle if the canvas is closed and has at least
// 3 control points.
func (c *Canvas) Path() *catmull.Path {
	path := catmull.FromPoints(c.points)
	if c.closed && c.mode == config.CatmullRom && len(c.points) >= 3 {
		return path.Cycle()
	}
	return path.End()
}

// Locked reports whether a construction animation holds the lock.
func (c *Canvas) Locked() bool {
	return c.env.Lock.Locked()
}

// Points returns a copy of the control points.
func (c *Canvas) Points() []casteljau.Point {
	return append([]casteljau.Point(nil), c.points...)
}

// Curve returns the sampled static curve. It is nil for less than 2
// control points.
func (c *Canvas) Curve() []casteljau.Point {
	return c.curve
}

// Derived returns the derived control points of control point i.
func (c *Canvas) Derived(i int) (DerivedPoint, bool) {
	dp, ok := c.derived.Get(i)
	if !ok {
		return DerivedPoint{}, false
	}
	return *dp, true
}

// DerivedPoints is the map of derived control points.
func (c *Canvas) DerivedPoints() *DerivedPoints {
	return c.derived
}

func (c *Canvas) refuse(op string) error {
	if c.Locked() {
		tracer().Debugf("%s ignored: animation running", op)
		return ErrLocked
	}
	return nil
}

// AddPoint appends a control point.
func (c *Canvas) AddPoint(p casteljau.Point) error {
	if err := c.refuse("add point"); err != nil {
		return err
	}
	c.points = append(c.points, p)
	tracer().Debugf("added control point #%d at %s", len(c.points)-1, p)
	c.changed()
	return nil
}

// MovePoint moves control point i to p.
func (c *Canvas) MovePoint(i int, p casteljau.Point) error {
	if err := c.refuse("move point"); err != nil {
		return err
	}
	if i < 0 || i >= len(c.points) {
		return fmt.Errorf("%w: %d", ErrNoPoint, i)
	}
	c.points[i] = p
	c.changed()
	return nil
}

// RemoveLastPoint removes the most recently added control point together
// with its derived points. On an empty canvas it does nothing.
func (c *Canvas) RemoveLastPoint() error {
	if err := c.refuse("remove point"); err != nil {
		return err
	}
	if len(c.points) == 0 {
		return nil
	}
	c.points = c.points[:len(c.points)-1]
	c.derived.Delete(len(c.points))
	tracer().Debugf("removed control point #%d", len(c.points))
	c.changed()
	return nil
}

// SetMode switches the construction mode. Derived points are discarded.
func (c *Canvas) SetMode(m config.Mode) error {
	if err := c.refuse("mode change"); err != nil {
		return err
	}
	if m == c.mode {
		return nil
	}
	c.mode = m
	c.derived.Clear()
	tracer().Infof("mode is %s", m)
	c.changed()
	return nil
}

// SetClosed opens or closes the Catmull-Rom spline. Bézier curves are
// always open.
func (c *Canvas) SetClosed(closed bool) error {
	if err := c.refuse("close spline"); err != nil {
		return err
	}
	if closed == c.closed {
		return nil
	}
	c.closed = closed
	tracer().Infof("closed = %v", closed)
	c.changed()
	return nil
}

// TogglePause pauses or resumes every animation and returns whether
// animations are paused now. It is never refused.
func (c *Canvas) TogglePause() bool {
	return c.env.State.Toggle()
}

// changed is called after every edit of the control points.
func (c *Canvas) changed() {
	c.animator.ClearTransient()
	c.derived.Recompute(c.Path())
	c.Redraw()
}

// Redraw replaces the static drawing: the curve, the control points and
// the derived points.
func (c *Canvas) Redraw() {
	for _, h := range c.static {
		c.graph.Remove(h)
	}
	c.static = c.static[:0]
	colors := c.opts.Colors
	name := "P"
	if c.mode == config.CatmullRom {
		c.curve = c.Path().Sample(c.opts.CatmullRomSteps)
	} else {
		name = "b"
		c.curve = bezier.Curve(c.points, c.opts.BezierSteps)
		if len(c.points) > 1 {
			c.draw(scene.Line{Points: c.Points(), Color: colors.Polygon.Color})
		}
	}
	if len(c.curve) > 0 {
		c.draw(scene.Line{Points: c.curve, Color: colors.Curve.Color, Width: 2})
	}
	for i, p := range c.points {
		c.draw(scene.Sphere{Center: p, Radius: c.MarkerRadius, Color: colors.Control.Color})
		c.draw(scene.Label{At: p, Text: scene.Subscript(name, i), Color: colors.Control.Color})
	}
	c.derived.Each(func(dp *DerivedPoint) {
		dp.markers = [2]scene.Handle{}
		for k, w := range []catmull.Which{catmull.First, catmull.Second} {
			if p, ok := dp.Get(w); ok {
				dp.markers[k] = c.draw(scene.Sphere{
					Center: p,
					Radius: c.MarkerRadius * 0.8,
					Color:  colors.Derived.Color,
				})
			}
		}
	})
}

func (c *Canvas) draw(p scene.Primitive) scene.Handle {
	h := c.graph.Draw(p)
	c.static = append(c.static, h)
	return h
}

// StoreDerived stores a derived control point and draws its marker. The
// tangent animations of the canvas deliver their results here.
func (c *Canvas) StoreDerived(owner int, which catmull.Which, p casteljau.Point) {
	if owner < 0 || owner >= len(c.points) {
		tracer().Errorf("derived point for missing control point #%d dropped", owner)
		return
	}
	c.derived.Set(owner, which, p)
	c.Redraw()
}

// --- Animations ------------------------------------------------------------

// Animate starts the construction animation of the current mode: the de
// Casteljau sweep for Bézier curves, or the derivation of every derived
// control point for Catmull-Rom splines. The returned channel is closed
// when the (last) animation has completed. Requests are queued behind a
// running animation.
func (c *Canvas) Animate() (<-chan struct{}, error) {
	if c.mode == config.CatmullRom {
		return c.animateSpline()
	}
	done, err := c.animator.Sweep(c.points, nil, c.opts.SweepDuration)
	if err != nil {
		c.notice("Need at least 2 control points for de Casteljau's algorithm")
		return nil, err
	}
	return done, nil
}

func (c *Canvas) animateSpline() (<-chan struct{}, error) {
	path := c.Path()
	var done <-chan struct{}
	for i := 0; i < path.Segments(); i++ {
		for _, w := range []catmull.Which{catmull.First, catmull.Second} {
			f, err := path.Frame(i, w)
			if err != nil {
				return nil, c.refuseFrame(err)
			}
			done = c.animator.Tangent(f, c, c.opts.TangentDuration)
		}
	}
	if done == nil {
		return nil, c.refuseFrame(fmt.Errorf("%w: %d control points", catmull.ErrTooFewKnots, path.N()))
	}
	return done, nil
}

// AnimateTangent starts the derivation of a single derived control point
// of Catmull-Rom segment i.
func (c *Canvas) AnimateTangent(segment int, which catmull.Which) (<-chan struct{}, error) {
	f, err := c.Path().Frame(segment, which)
	if err != nil {
		return nil, c.refuseFrame(err)
	}
	return c.animator.Tangent(f, c, c.opts.TangentDuration), nil
}

func (c *Canvas) refuseFrame(err error) error {
	switch {
	case errors.Is(err, catmull.ErrTooFewKnots):
		c.notice("Need at least 4 control points to derive Catmull-Rom control points")
	case errors.Is(err, catmull.ErrSegmentRange):
		c.notice("No curve segment there")
	}
	tracer().Infof("tangent animation refused: %v", err)
	return err
}

func (c *Canvas) notice(msg string) {
	if c.overlay != nil {
		c.overlay.Notice(msg)
	}
}

// --- Picking ---------------------------------------------------------------

// PointAt returns the index of the control point nearest to p, if it is
// not farther away than radius.
func (c *Canvas) PointAt(p casteljau.Point, radius float64) (int, bool) {
	best, dist := -1, math.Inf(1)
	for i, q := range c.points {
		if d := q.Dist(p); d <= radius && d < dist {
			best, dist = i, d
		}
	}
	return best, best >= 0
}

// SegmentAt returns the Catmull-Rom segment at p: the segment whose
// Bézier control points have p in their convex hull or, failing that, the
// segment passing closest to p, if its hull comes within radius of p.
func (c *Canvas) SegmentAt(p casteljau.Point, radius float64) (int, bool) {
	path := c.Path()
	n := path.Segments()
	if n == 0 {
		return -1, false
	}
	hulls := make([]*polygon.Polygon, n)
	for i := range hulls {
		b, _ := path.Segment(i)
		hulls[i] = polygon.Hull(b[:])
		if hulls[i].Contains(p) {
			return i, true
		}
	}
	r := casteljau.P(radius, radius)
	pick := polygon.Box(p.Sub(r), p.Add(r))
	best, dist := -1, math.Inf(1)
	for i, hull := range hulls {
		near := hull.N() > 2 && hull.Overlaps(pick) && len(hull.Intersection(pick)) > 0
		b, _ := path.Segment(i)
		for _, q := range bezier.Curve(b[:], c.opts.CatmullRomSteps) {
			if d := q.Dist(p); (near || d <= radius) && d < dist {
				best, dist = i, d
			}
		}
	}
	return best, best >= 0
}

// Bounds returns the bounding box of the control points and derived
// points. It returns false for an empty canvas.
func (c *Canvas) Bounds() (casteljau.Point, casteljau.Point, bool) {
	pg := polygon.FromPoints(c.points)
	c.derived.Each(func(dp *DerivedPoint) {
		if dp.HasPre {
			pg.Knot(dp.Pre)
		}
		if dp.HasPost {
			pg.Knot(dp.Post)
		}
	})
	return pg.BoundingBox()
}
