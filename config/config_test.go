package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.NoError(t, Default().Validate())
}

func TestLoadEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	opts, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), opts)
}

func TestLoadOverrides(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	src := `
frame_rate: 30
sweep_duration: 2500ms
mode: catmull-rom
closed: true
palette: ["#ff0000", "#00ff00"]
colors:
  t: "#0000ff"
`
	opts, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 30, opts.FrameRate)
	assert.Equal(t, 2500*time.Millisecond, opts.SweepDuration)
	assert.Equal(t, CatmullRom, opts.Mode)
	assert.True(t, opts.Closed)
	require.Len(t, opts.Palette, 2)
	assert.Equal(t, "#00ff00", opts.Palette[1].Hex())
	assert.Equal(t, "#0000ff", opts.Colors.T.Hex())
	assert.Equal(t, Default().Colors.Rest, opts.Colors.Rest, "unset colours keep defaults")
	assert.Equal(t, Default().BezierSteps, opts.BezierSteps)
}

func TestLoadModeAlias(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, alias := range []string{"cr", "catmullrom"} {
		opts, err := Load(strings.NewReader("mode: " + alias))
		require.NoError(t, err)
		assert.Equal(t, CatmullRom, opts.Mode, "alias %q", alias)
	}
}

func TestLoadRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, src := range []string{
		"frame_rate: 0",
		"sweep_duration: -1s",
		"bezier_steps: 0",
		"palette: []",
		"mode: hermite",
		`colors: {t: "orange"}`,
	} {
		_, err := Load(strings.NewReader(src))
		assert.True(t, errors.Is(err, ErrInvalidOption), "%q: %v", src, err)
	}
	_, err := Load(strings.NewReader("no_such_option: 1"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	name := filepath.Join(t.TempDir(), "casteljau.yaml")
	require.NoError(t, os.WriteFile(name, []byte("catmull_rom_steps: 8\n"), 0o644))
	opts, err := LoadFile(name)
	require.NoError(t, err)
	assert.Equal(t, 8, opts.CatmullRomSteps)
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m, err := ParseMode("cr")
	require.NoError(t, err)
	assert.Equal(t, CatmullRom, m)
	_, err = ParseMode("")
	assert.Error(t, err)
}
