/*
Package raster renders a scene into an RGBA image, e.g. for PNG snapshots
of a canvas. Lines are stroked and markers are filled with rasterx; labels
and formulas use the fixed 7x13 font of x/image.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'raster'
func tracer() tracing.Trace {
	return tracing.Select("raster")
}

// Background is the colour of an empty image.
var Background = color.RGBA{R: 0x1c, G: 0x1c, B: 0x24, A: 0xff}

// MinMarkerRadius is the smallest radius of a marker in pixels.
const MinMarkerRadius = 3.0

type renderer struct {
	img    *image.RGBA
	camera scene.Camera
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

// Render draws the primitives of g, as seen by cam, into a new image of
// w × h pixels. The camera is not modified; its viewport is taken to be
// the image.
func Render(g *scene.Graph, cam *scene.Camera, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	r := &renderer{
		img:    img,
		camera: *cam,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
	}
	r.camera.Resize(w, h)
	n := 0
	g.Each(func(_ scene.Handle, p scene.Primitive) {
		scene.Walk(p, r.draw)
		n++
	})
	tracer().Debugf("rendered %d primitives into %dx%d image", n, w, h)
	return img
}

// DrawFormulas writes placed formulas into img.
func DrawFormulas(img draw.Image, formulas []scene.Placed, c colorful.Color) {
	for _, f := range formulas {
		text(img, int(f.X)+8, int(f.Y)-8, f.Text, c)
	}
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func (r *renderer) draw(p scene.Primitive) {
	switch x := p.(type) {
	case scene.Line:
		if len(x.Points) < 2 {
			return
		}
		width := math.Max(1, x.Width*1.25)
		r.dasher.Clear()
		r.dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap,
			rasterx.RoundGap, rasterx.ArcClip, nil, 0)
		r.dasher.SetColor(rgba(x.Color))
		for i, q := range x.Points {
			sx, sy := r.camera.ProjectToScreen(q)
			if i == 0 {
				r.dasher.Start(rasterx.ToFixedP(sx, sy))
			} else {
				r.dasher.Line(rasterx.ToFixedP(sx, sy))
			}
		}
		r.dasher.Stop(false)
		r.dasher.Draw()
	case scene.Sphere:
		cx, cy := r.camera.ProjectToScreen(x.Center)
		radius := math.Max(MinMarkerRadius, x.Radius*r.camera.Zoom)
		r.filler.Clear()
		r.filler.SetColor(rgba(x.Color))
		rasterx.AddCircle(cx, cy, radius, r.filler)
		r.filler.Draw()
	case scene.Label:
		lx, ly := r.camera.ProjectToScreen(x.At)
		text(r.img, int(lx)+6, int(ly)-6, x.Text, x.Color)
	}
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// text draws s with its baseline starting at (x,y).
func text(img draw.Image, x, y int, s string, c colorful.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(rgba(c)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(ascii(s))
}

// ascii maps subscript digits and math symbols to the ASCII characters
// the basic font has glyphs for.
func ascii(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '₀' && r <= '₉':
			return '0' + (r - '₀')
		case r == '−':
			return '-'
		}
		return r
	}, s)
}
