package animator

import (
	"fmt"
	"time"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/scene"
)

// Phase is a phase of a tangent animation.
type Phase int8

// Phases of a tangent animation, in order.
const (
	Idle          Phase = iota // no tangent animation running
	DrawingVector              // the vector P2-P0 grows from P0
	Scaling                    // the vector shrinks to 1/6 of its length
	Translating                // the shortened vector moves to P1
	Revealed                   // the derived control point is stored
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case DrawingVector:
		return "drawing-vector"
	case Scaling:
		return "scaling"
	case Translating:
		return "translating"
	case Revealed:
		return "revealed"
	}
	return "?"
}

// Tangent animates the derivation of the control point described by f.
// Each of the phases DrawingVector, Scaling and Translating lasts d; a
// phase starts only after its predecessor has completed, with control
// returning to the scheduler in between. When the last phase completes,
// the derived point is handed to store.
//
// The animation waits for the animation lock. The returned channel is
// closed when the animation has completed or has been aborted.
func (a *Animator) Tangent(f catmull.Frame, store DerivedStore, d time.Duration) <-chan struct{} {
	run := &tangentRun{
		a:        a,
		frame:    f,
		store:    store,
		duration: d,
		done:     make(chan struct{}),
	}
	v := f.Vector()
	run.length = v.Length()
	run.dir = v.Normalized()
	a.env.Lock.Acquire(func() {
		tracer().Infof("tangent animation for %s control of segment %d started", f.Which, f.Segment)
		run.enter(DrawingVector)
	})
	return run.done
}

// tangentRun is the state machine of a single tangent animation. Exactly
// one phase is active at any time; phases advance in the order of their
// declaration.
type tangentRun struct {
	a          *Animator
	frame      catmull.Frame
	store      DerivedStore
	duration   time.Duration
	length     float64         // |P2-P0|
	dir        casteljau.Point // direction of P2-P0, x-axis for zero vectors
	tail, head casteljau.Point // the vector line as currently drawn
	line       scene.Handle
	driver     *anim.FrameDriver
	done       chan struct{}
	finished   bool
}

// enter switches to phase p. The work of a phase is started from a
// zero-delay timer, yielding to the scheduler first.
func (run *tangentRun) enter(p Phase) {
	a := run.a
	a.phase = p
	tracer().Debugf("tangent animation phase %s", p)
	if a.OnPhase != nil {
		guard("tangent animation", run.abort, func() { a.OnPhase(p, run.frame) })
		if run.finished {
			return
		}
	}
	a.env.Scheduler.AfterFunc(0, func() {
		guard("tangent animation", run.abort, run.begin)
	})
}

// begin starts the work of the current phase.
func (run *tangentRun) begin() {
	a, f := run.a, run.frame
	switch a.phase {
	case DrawingVector:
		run.tail, run.head = f.P0, f.P0
		run.line = a.renderer.Draw(run.vectorLine())
		a.showFormula(fmt.Sprintf("v = %s − %s", knot(f.Knots[2]), knot(f.Knots[0])),
			f.P0.Lerp(f.P2, 0.5))
	case Scaling:
		a.showFormula(fmt.Sprintf("v/6 = (%s − %s)/6", knot(f.Knots[2]), knot(f.Knots[0])),
			run.tail.Lerp(run.head, 0.5))
	case Translating:
		op := "+"
		if f.Which == catmull.Second {
			op = "−"
		}
		a.showFormula(fmt.Sprintf("%s %s v/6", knot(f.Knots[1]), op), f.P1)
	case Revealed:
		run.reveal()
		return
	default:
		return
	}
	run.driver = a.env.Animate(run.duration, anim.EaseInOutCubic, run.step, run.next)
}

// step updates the vector line for eased progress t of the current phase.
func (run *tangentRun) step(t float64) {
	guard("tangent animation", run.abort, func() {
		f := run.frame
		switch run.a.phase {
		case DrawingVector:
			run.head = f.P0.Add(run.dir.Scaled(run.length * t))
		case Scaling:
			run.head = f.P0.Add(run.dir.Scaled(run.length * (1 - t*5/6)))
		case Translating:
			from := f.P0
			to := f.P1
			if f.Which == catmull.Second {
				to = f.P1.Sub(run.sixth())
			}
			run.tail = from.Lerp(to, t)
			run.head = run.tail.Add(run.sixth())
		}
		run.a.renderer.Update(run.line, run.vectorLine())
	})
}

func (run *tangentRun) next() {
	if run.finished {
		return
	}
	switch run.a.phase {
	case DrawingVector:
		run.enter(Scaling)
	case Scaling:
		run.enter(Translating)
	case Translating:
		run.enter(Revealed)
	}
}

func (run *tangentRun) reveal() {
	a, f := run.a, run.frame
	a.renderer.Remove(run.line)
	run.line = 0
	p := f.Derived()
	tracer().Infof("derived %s control of segment %d: %s", f.Which, f.Segment, p)
	if run.store != nil {
		run.store.StoreDerived(f.Owner(), f.Which, p)
	} else {
		marker := a.renderer.Draw(scene.Sphere{Center: p, Radius: a.opts.MarkerRadius, Color: a.opts.Derived})
		a.keep([]scene.Handle{marker}, -1)
	}
	run.finish()
}

func (run *tangentRun) sixth() casteljau.Point {
	return run.dir.Scaled(run.length / 6)
}

func (run *tangentRun) vectorLine() scene.Line {
	return scene.Line{
		Points: []casteljau.Point{run.tail, run.head},
		Color:  run.a.opts.Vector,
		Width:  2,
	}
}

func (run *tangentRun) abort() {
	if run.finished {
		return
	}
	run.driver.Stop()
	run.a.renderer.Remove(run.line)
	run.finish()
}

func (run *tangentRun) finish() {
	if run.finished {
		return
	}
	run.finished = true
	run.a.phase = Idle
	run.a.env.Lock.Release()
	close(run.done)
}

func knot(i int) string {
	return scene.Subscript("P", i)
}
