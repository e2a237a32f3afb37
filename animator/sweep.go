package animator

import (
	"fmt"
	"time"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/bezier"
	"github.com/npillmayer/casteljau/scene"
)

// Sweep animates de Casteljau's algorithm over points for t running from
// 0 to 1 in d. Every frame shows the control polygon, every interpolation
// level with its lines split at the interpolation points, and the part of
// the curve traced so far. onUpdate, if not nil, is called with the current
// t and curve point every frame, and finally with (1, nil).
//
// The sweep waits for the animation lock. The returned channel is closed
// when the sweep has completed or has been aborted. The final curve stays
// in the scene until ClearTransient, the other helper graphics are removed
// after the cleanup delay.
func (a *Animator) Sweep(points []casteljau.Point, onUpdate func(t float64, at *casteljau.Point),
	d time.Duration) (<-chan struct{}, error) {
	//
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	run := &sweepRun{
		a:        a,
		points:   append([]casteljau.Point(nil), points...),
		onUpdate: onUpdate,
		duration: d,
		done:     make(chan struct{}),
	}
	a.env.Lock.Acquire(run.start)
	return run.done, nil
}

type sweepRun struct {
	a        *Animator
	points   []casteljau.Point
	onUpdate func(float64, *casteljau.Point)
	duration time.Duration
	polygon  scene.Handle
	levels   scene.Handle
	trace    scene.Handle
	traced   []casteljau.Point
	driver   *anim.FrameDriver
	done     chan struct{}
	finished bool
}

func (run *sweepRun) start() {
	a := run.a
	tracer().Infof("sweep over %d control points started", len(run.points))
	guard("sweep", run.abort, func() {
		a.ClearTransient()
		run.polygon = a.renderer.Draw(scene.Line{Points: run.points, Color: a.opts.Polygon})
		run.levels = a.renderer.Draw(scene.Group{})
		run.trace = a.renderer.Draw(scene.Line{Color: a.opts.Curve, Width: 2})
		run.driver = a.env.Animate(run.duration, anim.Linear, run.frame, run.complete)
	})
}

func (run *sweepRun) frame(t float64) {
	guard("sweep", run.abort, func() {
		a := run.a
		levels := bezier.Levels(run.points, t)
		a.renderer.Update(run.levels, run.levelGroup(levels, t))
		at := levels[len(levels)-1][0]
		run.traced = append(run.traced, at)
		a.renderer.Update(run.trace, scene.Line{Points: run.traced, Color: a.opts.Curve, Width: 2})
		if run.onUpdate != nil && t < 1 {
			run.onUpdate(t, &at)
		}
	})
}

// levelGroup renders the interpolation levels at t: for every pair of
// adjacent points of a level the line between them, split at the
// interpolation point, and a marker for every point of the deeper levels.
func (run *sweepRun) levelGroup(levels [][]casteljau.Point, t float64) scene.Group {
	opts := run.a.opts
	g := scene.Group{}
	for k := 0; k+1 < len(levels); k++ {
		lvl, next := levels[k], levels[k+1]
		for j := 0; j+1 < len(lvl); j++ {
			q := next[j]
			g.Add(scene.Segment(lvl[j], q, opts.T), scene.Segment(q, lvl[j+1], opts.Rest))
		}
	}
	for k := 1; k < len(levels); k++ {
		radius := opts.MarkerRadius
		if k == len(levels)-1 {
			radius *= 1.5
		}
		for _, p := range levels[k] {
			g.Add(scene.Sphere{Center: p, Radius: radius, Color: opts.paletteColor(k)})
		}
	}
	return g
}

func (run *sweepRun) complete() {
	guard("sweep", run.abort, func() {
		a := run.a
		a.renderer.Remove(run.trace)
		curve := a.renderer.Draw(scene.Line{
			Points: bezier.Curve(run.points, a.opts.CurveSteps),
			Color:  a.opts.Curve,
			Width:  2,
		})
		a.keep([]scene.Handle{curve}, -1)
		if run.onUpdate != nil {
			run.onUpdate(1, nil)
		}
		a.keep([]scene.Handle{run.polygon, run.levels}, a.opts.CleanupDelay)
		run.finish()
		tracer().Infof("sweep completed")
	})
}

// abort removes every graphics of the sweep and ends it.
func (run *sweepRun) abort() {
	if run.finished {
		return
	}
	run.driver.Stop()
	run.a.remove([]scene.Handle{run.polygon, run.levels, run.trace})
	run.finish()
}

func (run *sweepRun) finish() {
	if run.finished {
		return
	}
	run.finished = true
	run.a.env.Lock.Release()
	close(run.done)
}
