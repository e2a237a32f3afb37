/*
Package term presents a canvas in a terminal, using tcell for output and
for mouse and keyboard input.

Mouse:

	left button      add a control point, or drag an existing one
	right button     derive the Catmull-Rom control point nearest to the pointer

Keys:

	a, Enter         animate
	space            pause / resume
	u, Backspace     remove the last control point
	m                switch between Bézier and Catmull-Rom mode
	c                open or close the Catmull-Rom spline
	f                fit the drawing into the terminal
	q, Esc           quit

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/canvas"
	"github.com/npillmayer/casteljau/catmull"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'term'
func tracer() tracing.Trace {
	return tracing.Select("term")
}

// cellAspect is the height of a terminal cell divided by its width.
const cellAspect = 2

// pickCells is the distance in cells within which the pointer hits a point.
const pickCells = 1.5

// View draws a canvas into a terminal screen and feeds input into it.
type View struct {
	screen   tcell.Screen
	canvas   *canvas.Canvas
	graph    *scene.Graph
	overlay  *scene.Overlay
	camera   *scene.Camera
	dragging int // index of the control point being dragged, or -1
	quit     func()
	text     colorful.Color
	bg       tcell.Color
}

// NewView creates a view. The screen must have been initialized.
func NewView(screen tcell.Screen, c *canvas.Canvas, graph *scene.Graph, overlay *scene.Overlay) *View {
	w, h := screen.Size()
	cam := scene.NewCamera(w, h)
	cam.Aspect = cellAspect
	cam.Zoom = 4
	return &View{
		screen:   screen,
		canvas:   c,
		graph:    graph,
		overlay:  overlay,
		camera:   cam,
		dragging: -1,
		quit:     func() {},
		text:     colorful.Color{R: 0.9, G: 0.9, B: 0.9},
		bg:       tcell.ColorBlack,
	}
}

// Camera is the camera of the view.
func (v *View) Camera() *scene.Camera {
	return v.camera
}

// Run shows the canvas until the user quits or ctx is cancelled. Input
// events are handed to loop, which also drives the redraws.
func (v *View) Run(ctx context.Context, loop *anim.Loop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	v.quit = cancel
	v.screen.EnableMouse()
	v.screen.HideCursor()
	loop.OnTick = func(time.Time) { v.Draw() }
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil { // screen finalized
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			loop.Post(func() { v.HandleEvent(ev) })
		}
	}()
	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Draw renders the scene, the formulas and the status lines.
func (v *View) Draw() {
	w, h := v.screen.Size()
	v.camera.Resize(w, h)
	v.screen.SetStyle(tcell.StyleDefault.Background(v.bg))
	v.screen.Clear()
	p := &painter{screen: v.screen, camera: v.camera, bg: v.bg, w: w, h: h}
	v.graph.Each(func(_ scene.Handle, prim scene.Primitive) {
		p.paint(prim)
	})
	st := p.style(v.text)
	for _, f := range v.overlay.Placed(v.camera) {
		p.text(int(f.X)+2, int(f.Y)-1, f.Text, st)
	}
	if notice := v.overlay.NoticeText(); notice != "" {
		p.text(0, h-2, notice, st.Bold(true))
	}
	p.text(0, h-1, v.status(), st.Reverse(true))
	v.screen.Show()
}

func (v *View) status() string {
	state := "ready"
	switch {
	case v.canvas.Env().State.Paused():
		state = "paused"
	case v.canvas.Locked():
		state = "animating"
	}
	mode := string(v.canvas.Mode())
	if v.canvas.Closed() && v.canvas.Mode() == config.CatmullRom {
		mode += " (closed)"
	}
	return fmt.Sprintf(" %s | %s | %d points | a:animate space:pause u:undo m:mode c:close f:fit q:quit ",
		mode, state, len(v.canvas.Points()))
}

// Fit zooms the camera to the control points.
func (v *View) Fit() {
	lo, hi, ok := v.canvas.Bounds()
	if !ok {
		return
	}
	v.camera.Fit(lo, hi, 3)
}

// HandleEvent feeds an input event into the canvas.
func (v *View) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		v.camera.Resize(w, h)
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
}

func (v *View) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.quit()
		return
	case tcell.KeyEnter:
		v.animate()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.report(v.canvas.RemoveLastPoint())
		return
	case tcell.KeyRune:
	default:
		return
	}
	switch ev.Rune() {
	case 'q':
		v.quit()
	case 'a':
		v.animate()
	case ' ':
		v.canvas.TogglePause()
	case 'u':
		v.report(v.canvas.RemoveLastPoint())
	case 'm':
		mode := config.CatmullRom
		if v.canvas.Mode() == config.CatmullRom {
			mode = config.Bezier
		}
		v.report(v.canvas.SetMode(mode))
	case 'c':
		v.report(v.canvas.SetClosed(!v.canvas.Closed()))
	case 'f':
		v.Fit()
	}
}

func (v *View) animate() {
	if _, err := v.canvas.Animate(); err != nil {
		tracer().Debugf("animate: %v", err)
	}
}

func (v *View) report(err error) {
	if err != nil {
		tracer().Debugf("input: %v", err)
	}
}

func (v *View) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	at, ok := v.camera.Unproject(float64(x)+0.5, float64(y)+0.5)
	if !ok {
		return
	}
	radius := pickCells / v.camera.Zoom
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.Button1 != 0:
		if v.dragging >= 0 {
			v.report(v.canvas.MovePoint(v.dragging, at))
			return
		}
		if i, hit := v.canvas.PointAt(at, radius); hit {
			if !v.canvas.Locked() {
				v.dragging = i
			}
			return
		}
		v.report(v.canvas.AddPoint(at))
		if !v.canvas.Locked() {
			v.dragging = len(v.canvas.Points()) - 1
		}
	case buttons&tcell.Button2 != 0:
		v.dragging = -1
		v.tangentAt(at, radius)
	case buttons == tcell.ButtonNone:
		v.dragging = -1
	}
}

// tangentAt derives the Catmull-Rom control point next to at: the
// post-control of the segment's start knot or the pre-control of its end
// knot, whichever knot is closer.
func (v *View) tangentAt(at casteljau.Point, radius float64) {
	if v.canvas.Locked() {
		tracer().Debugf("tangent request ignored: animation running")
		return
	}
	if v.canvas.Mode() != config.CatmullRom {
		v.overlay.Notice("Control point derivation works in Catmull-Rom mode (press m)")
		return
	}
	segment, ok := v.canvas.SegmentAt(at, 2*radius)
	if !ok {
		segment = -1
	}
	which := catmull.First
	if path := v.canvas.Path(); segment >= 0 {
		if at.Dist(path.Z(segment+1)) < at.Dist(path.Z(segment)) {
			which = catmull.Second
		}
	}
	if _, err := v.canvas.AnimateTangent(segment, which); err != nil {
		tracer().Debugf("tangent: %v", err)
	}
}
