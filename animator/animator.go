/*
Package animator orchestrates the step-by-step construction animations of
the visualizer:

■ Sweep runs de Casteljau's algorithm for t from 0 to 1, showing every
interpolation level and tracing the Bézier curve.

■ Tangent derives a single Bézier control point of a Catmull-Rom segment:
it draws the tangent vector, scales it to 1/6 of its length and moves it to
the knot the control point belongs to.

Both sequences are top-level animations: they acquire the lock of their
animation environment and release it on every exit path, including a
panic in one of the collaborators. Requests arriving while another
sequence runs are queued and start after it has completed.

Animators draw into a Renderer and show formulas on a FormulaDisplay.
Package scene provides implementations of both.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package animator

import (
	"errors"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'animator'
func tracer() tracing.Trace {
	return tracing.Select("animator")
}

// ErrTooFewPoints is returned for a sweep over less than 2 control points.
var ErrTooFewPoints = errors.New("sweep needs at least 2 control points")

// Renderer is the scene graph the animators draw into.
type Renderer interface {
	Draw(p scene.Primitive) scene.Handle
	Update(h scene.Handle, p scene.Primitive) bool
	Remove(h scene.Handle) bool
}

// FormulaDisplay shows a formula next to a world point for a duration.
type FormulaDisplay interface {
	ShowFormula(text string, anchor casteljau.Point, d time.Duration)
}

// DerivedStore receives the control points derived by tangent animations.
// owner is the index of the knot the control point is attached to.
// The store is responsible for the marker of a stored point. Tangent
// animations without a store draw the marker themselves; it stays until
// ClearTransient.
type DerivedStore interface {
	StoreDerived(owner int, which catmull.Which, p casteljau.Point)
}

// Options control the appearance of the animations.
type Options struct {
	Palette         []colorful.Color // markers, cycled by recursion depth
	T, Rest         colorful.Color   // the two parts of a split interpolation line
	Polygon         colorful.Color
	Curve           colorful.Color
	Vector          colorful.Color
	Derived         colorful.Color // markers of derived control points
	CleanupDelay    time.Duration // helper graphics stay this long after a sweep
	FormulaDuration time.Duration
	CurveSteps      int
	MarkerRadius    float64 // world units
}

// OptionsFrom extracts animator options from the visualizer configuration.
func OptionsFrom(c *config.Options) Options {
	palette := make([]colorful.Color, len(c.Palette))
	for i, col := range c.Palette {
		palette[i] = col.Color
	}
	return Options{
		Palette:         palette,
		T:               c.Colors.T.Color,
		Rest:            c.Colors.Rest.Color,
		Polygon:         c.Colors.Polygon.Color,
		Curve:           c.Colors.Curve.Color,
		Vector:          c.Colors.Vector.Color,
		Derived:         c.Colors.Derived.Color,
		CleanupDelay:    c.CleanupDelay,
		FormulaDuration: c.FormulaDuration,
		CurveSteps:      c.BezierSteps,
		MarkerRadius:    0.08,
	}
}

func (o Options) paletteColor(depth int) colorful.Color {
	if len(o.Palette) == 0 {
		return o.T
	}
	return o.Palette[depth%len(o.Palette)]
}

// Animator runs construction animations within an animation environment.
// All methods must be called on the goroutine driving the environment's
// scheduler.
type Animator struct {
	env      *anim.Env
	renderer Renderer
	formulas FormulaDisplay
	opts     Options
	// OnPhase, if set, is called whenever a tangent animation enters a
	// new phase.
	OnPhase   func(p Phase, f catmull.Frame)
	phase     Phase
	leftovers []*leftover
}

// leftover is graphics of a completed sequence, removed either by a
// cleanup delay or by ClearTransient.
type leftover struct {
	handles []scene.Handle
	cleanup *anim.Delay
}

// New creates an animator. formulas may be nil.
func New(env *anim.Env, r Renderer, formulas FormulaDisplay, opts Options) *Animator {
	if opts.CurveSteps < 1 {
		opts.CurveSteps = 100
	}
	return &Animator{
		env:      env,
		renderer: r,
		formulas: formulas,
		opts:     opts,
	}
}

// Env is the animation environment of a.
func (a *Animator) Env() *anim.Env {
	return a.env
}

// Phase is the phase of the currently running tangent animation, or Idle.
func (a *Animator) Phase() Phase {
	return a.phase
}

// ClearTransient removes graphics left over by completed sequences: helper
// graphics waiting for their cleanup delay and the final curve of the last
// sweep. Graphics of a running sequence are not affected.
func (a *Animator) ClearTransient() {
	for _, lo := range a.leftovers {
		lo.cleanup.Clear()
		a.remove(lo.handles)
	}
	a.leftovers = nil
}

// Transient returns the number of leftover graphics handles.
func (a *Animator) Transient() int {
	n := 0
	for _, lo := range a.leftovers {
		n += len(lo.handles)
	}
	return n
}

func (a *Animator) keep(handles []scene.Handle, after time.Duration) {
	lo := &leftover{handles: handles}
	a.leftovers = append(a.leftovers, lo)
	if after < 0 {
		return
	}
	lo.cleanup = a.env.Delay(after, func() {
		a.remove(lo.handles)
		for i, l := range a.leftovers {
			if l == lo {
				a.leftovers = append(a.leftovers[:i], a.leftovers[i+1:]...)
				break
			}
		}
	})
}

func (a *Animator) remove(handles []scene.Handle) {
	for _, h := range handles {
		a.renderer.Remove(h)
	}
}

func (a *Animator) showFormula(text string, anchor casteljau.Point) {
	if a.formulas != nil {
		a.formulas.ShowFormula(text, anchor, a.opts.FormulaDuration)
	}
}

// guard runs fn, turning a panic into a call of abort.
func guard(sequence string, abort func(), fn func()) {
	defer func() {
		if r := recover(); r != nil {
			tracer().Errorf("%s aborted: %v", sequence, r)
			abort()
		}
	}()
	fn()
}
