package main

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/config"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts, err := parsePoints(" 0,0  1.5,-2 ")
	require.NoError(t, err)
	assert.Equal(t, []casteljau.Point{casteljau.P(0, 0), casteljau.P(1.5, -2)}, pts)
	pts, err = parsePoints("")
	assert.NoError(t, err)
	assert.Empty(t, pts)
	_, err = parsePoints("1,2,3")
	assert.Error(t, err)
	_, err = parsePoints("a,2")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	w, h, err := parseSize("640X480")
	require.NoError(t, err)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	_, _, err = parseSize("0x10")
	assert.Error(t, err)
}

func TestLoadOptionsMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts, err := loadOptions("", "catmull-rom")
	require.NoError(t, err)
	assert.Equal(t, config.CatmullRom, opts.Mode)
	_, err = loadOptions("", "nurbs")
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, mode := range []config.Mode{config.Bezier, config.CatmullRom} {
		opts := config.Default()
		opts.Mode = mode
		pts, err := parsePoints("0,0 1,2 3,2 4,0")
		require.NoError(t, err)
		out := filepath.Join(t.TempDir(), "snapshot.png")
		require.NoError(t, runSnapshot(opts, pts, out, 120, 80, 0), "mode %s", mode)
		f, err := os.Open(out)
		require.NoError(t, err)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, 120, img.Bounds().Dx())
	}
}

func TestSnapshotShowsFormulas(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts := config.Default()
	opts.Mode = config.CatmullRom
	pts, err := parsePoints("0,0 1,2 3,2 4,0")
	require.NoError(t, err)
	img, formulas, err := snapshot(opts, pts, 160, 120, 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 160, img.Bounds().Dx())
	require.Len(t, formulas, 1, "first vector is being drawn")
	assert.True(t, strings.HasPrefix(formulas[0].Text, "v = "), "got %q", formulas[0].Text)
	_, formulas, err = snapshot(opts, pts, 160, 120, 0)
	require.NoError(t, err)
	assert.Empty(t, formulas, "formulas have expired after completion")
}
