/*
Command casteljau is an interactive visualizer for de Casteljau's algorithm
and for the construction of Catmull-Rom splines from Bézier segments.

Usage:

	casteljau [flags]

Without -snapshot, casteljau runs in the terminal: place control points
with the mouse, press 'a' to animate and space to pause. With -snapshot,
the construction animation for the points given by -points runs headless
on a virtual clock and the final scene is written to a PNG file:

	casteljau -mode catmull-rom -points "0,0 1,2 3,2 4,0" -snapshot spline.png

With -at, the snapshot shows the construction at that point of time,
including the formulas displayed at that moment:

	casteljau -points "0,0 1,2 3,2 4,0" -snapshot sweep.png -at 1.5s

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/anim"
	"github.com/npillmayer/casteljau/canvas"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/casteljau/raster"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/casteljau/term"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'casteljau'
func tracer() tracing.Trace {
	return tracing.Select("casteljau")
}

var traceKeys = []string{
	"casteljau", "bezier", "catmull", "polygon", "anim", "animator",
	"scene", "canvas", "term", "raster", "config",
}

func main() {
	configFile := flag.String("config", "", "YAML options file")
	modeName := flag.String("mode", "", "construction mode [bezier|catmull-rom]")
	pointList := flag.String("points", "", `initial control points, e.g. "0,0 1,2 3,2 4,0"`)
	snapshot := flag.String("snapshot", "", "run the animation headless and write the result to a PNG file")
	size := flag.String("size", "800x600", "snapshot size in pixels")
	at := flag.Duration("at", 0, "snapshot the construction at this time instead of after completion")
	logFile := flag.String("log", "", "write traces to file")
	tlevel := flag.String("trace", "Info", "trace level [Debug|Info|Error]")
	flag.Parse()

	closeLog, err := setupTracing(*logFile, *tlevel, *snapshot != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "casteljau: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	opts, err := loadOptions(*configFile, *modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "casteljau: %v\n", err)
		os.Exit(2)
	}
	points, err := parsePoints(*pointList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "casteljau: %v\n", err)
		os.Exit(2)
	}
	if *snapshot != "" {
		w, h, err := parseSize(*size)
		if err == nil {
			err = runSnapshot(opts, points, *snapshot, w, h, *at)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "casteljau: %v\n", err)
			os.Exit(3)
		}
		return
	}
	if err := runInteractive(opts, points); err != nil {
		fmt.Fprintf(os.Stderr, "casteljau: %v\n", err)
		os.Exit(3)
	}
}

// setupTracing routes traces to a log file. Without a log file, traces are
// discarded while the terminal UI owns the screen, and go to stderr for
// headless runs.
func setupTracing(logFile, level string, headless bool) (func(), error) {
	closer := func() {}
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, err
		}
		log.SetOutput(f)
		closer = func() { f.Close() }
	case headless:
		log.SetOutput(os.Stderr)
	default:
		log.SetOutput(io.Discard)
	}
	for _, key := range traceKeys {
		t := tracing.Select(key)
		switch strings.ToLower(level) {
		case "debug":
			t.SetTraceLevel(tracing.LevelDebug)
		case "info":
			t.SetTraceLevel(tracing.LevelInfo)
		case "error":
			t.SetTraceLevel(tracing.LevelError)
		default:
			return closer, fmt.Errorf("unknown trace level %q", level)
		}
	}
	return closer, nil
}

func loadOptions(configFile, modeName string) (*config.Options, error) {
	opts := config.Default()
	if configFile != "" {
		var err error
		if opts, err = config.LoadFile(configFile); err != nil {
			return nil, err
		}
	}
	if modeName != "" {
		mode, err := config.ParseMode(modeName)
		if err != nil {
			return nil, err
		}
		opts.Mode = mode
	}
	return opts, nil
}

// parsePoints reads a list of "x,y" pairs separated by blanks.
func parsePoints(s string) ([]casteljau.Point, error) {
	var points []casteljau.Point
	for _, pair := range strings.Fields(s) {
		xy := strings.Split(pair, ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("malformed point %q, expected x,y", pair)
		}
		x, err := strconv.ParseFloat(xy[0], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed point %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(xy[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed point %q: %w", pair, err)
		}
		points = append(points, casteljau.P(x, y))
	}
	return points, nil
}

func parseSize(s string) (int, int, error) {
	wh := strings.Split(strings.ToLower(s), "x")
	if len(wh) == 2 {
		w, errw := strconv.Atoi(wh[0])
		h, errh := strconv.Atoi(wh[1])
		if errw == nil && errh == nil && w > 0 && h > 0 {
			return w, h, nil
		}
	}
	return 0, 0, fmt.Errorf("malformed size %q, expected WxH", s)
}

func newCanvas(env *anim.Env, opts *config.Options, points []casteljau.Point) (*canvas.Canvas, *scene.Graph, *scene.Overlay, error) {
	graph := scene.NewGraph()
	overlay := scene.NewOverlay(env)
	c := canvas.New(env, graph, overlay, opts)
	for _, p := range points {
		if err := c.AddPoint(p); err != nil {
			return nil, nil, nil, err
		}
	}
	return c, graph, overlay, nil
}

// runSnapshot animates the construction on a virtual clock and writes the
// scene to a PNG file.
func runSnapshot(opts *config.Options, points []casteljau.Point, path string, w, h int, at time.Duration) error {
	img, _, err := snapshot(opts, points, w, h, at)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	tracer().Infof("snapshot written to %s", path)
	return f.Close()
}

// snapshot renders the construction animation at time at, or after its
// completion and cleanup if at is not positive. Formulas visible at that
// moment are drawn on top and returned.
func snapshot(opts *config.Options, points []casteljau.Point, w, h int, at time.Duration) (*image.RGBA, []scene.Placed, error) {
	sched := anim.NewManualScheduler(time.Now(), time.Second/time.Duration(opts.FrameRate))
	env := anim.NewEnv(sched)
	c, graph, overlay, err := newCanvas(env, opts, points)
	if err != nil {
		return nil, nil, err
	}
	done, err := c.Animate()
	if err != nil {
		return nil, nil, err
	}
	if at > 0 {
		sched.Advance(at)
	} else {
		finished := sched.RunUntil(func() bool {
			select {
			case <-done:
				return true
			default:
				return false
			}
		}, time.Hour)
		if !finished {
			return nil, nil, errors.New("animation did not complete")
		}
		sched.Advance(opts.CleanupDelay)
	}
	cam := scene.NewCamera(w, h)
	if lo, hi, ok := c.Bounds(); ok {
		cam.Fit(lo, hi, 40)
	}
	img := raster.Render(graph, cam, w, h)
	formulas := overlay.Placed(cam)
	raster.DrawFormulas(img, formulas, opts.Colors.Control.Color)
	return img, formulas, nil
}

func runInteractive(opts *config.Options, points []casteljau.Point) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	loop := anim.NewLoop(opts.FrameRate)
	env := anim.NewEnv(loop)
	c, graph, overlay, err := newCanvas(env, opts, points)
	if err != nil {
		return err
	}
	view := term.NewView(screen, c, graph, overlay)
	if len(points) > 0 {
		view.Fit()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return view.Run(ctx, loop)
}
