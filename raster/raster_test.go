package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/scene"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

func TestRenderEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	img := Render(scene.NewGraph(), scene.NewCamera(10, 10), 32, 16)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	assert.Equal(t, Background, img.RGBAAt(5, 5))
}

func TestRenderPrimitives(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := scene.NewGraph()
	g.Draw(scene.Line{Points: []casteljau.Point{casteljau.P(-4, 0), casteljau.P(4, 0)}, Color: white, Width: 2})
	g.Draw(scene.Sphere{Center: casteljau.P(0, 3), Radius: 0.5, Color: colorful.Color{R: 1}})
	cam := scene.NewCamera(100, 100)
	cam.Zoom = 10
	img := Render(g, cam, 100, 100)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, img.RGBAAt(50, 50), "line through the center")
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, img.RGBAAt(50, 20), "marker above the line")
	assert.Equal(t, Background, img.RGBAAt(10, 90))
}

func TestWritePNG(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := scene.NewGraph()
	g.Draw(scene.Label{At: casteljau.Origin, Text: "P₀", Color: white})
	img := Render(g, scene.NewCamera(64, 32), 64, 32)
	DrawFormulas(img, []scene.Placed{{Text: "v = P₂ − P₀", X: 2, Y: 20}}, white)
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, img))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestASCII(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, "v = P2 - P0", ascii("v = P₂ − P₀"))
}
