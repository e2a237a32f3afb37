/*
Package config holds the options of the visualizer: durations, step
counts, the construction mode and the colours of every kind of graphics.

Options are read from YAML on top of the defaults:

	frame_rate: 60
	sweep_duration: 4s
	mode: catmull-rom
	palette: ["#e6194b", "#3cb44b", "#4363d8"]
	colors:
	  t: "#ff8800"
	  rest: "#888888"

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'config'
func tracer() tracing.Trace {
	return tracing.Select("config")
}

// ErrInvalidOption is returned for options out of range.
var ErrInvalidOption = errors.New("invalid option")

// Mode selects the curve construction shown on the canvas.
type Mode string

// Construction modes
const (
	Bezier     Mode = "bezier"
	CatmullRom Mode = "catmull-rom"
)

// Color is a colour given as a hex string "#rrggbb" in YAML.
type Color struct {
	colorful.Color
}

// Hex parses a colour literal, panicking on malformed input. It is meant
// for literals in code.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("malformed colour literal %q", s))
	}
	return Color{c}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	col, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("%w: colour %q in line %d", ErrInvalidOption, s, value.Line)
	}
	c.Color = col
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// Colors are the colours of the graphics kinds.
type Colors struct {
	T       Color `yaml:"t"`       // interpolation lines, fraction t
	Rest    Color `yaml:"rest"`    // interpolation lines, fraction 1-t
	Curve   Color `yaml:"curve"`   // curves
	Polygon Color `yaml:"polygon"` // control polygon
	Control Color `yaml:"control"` // control points
	Derived Color `yaml:"derived"` // derived Bézier control points
	Vector  Color `yaml:"vector"`  // tangent vectors
}

// Options are the settings of the visualizer.
type Options struct {
	FrameRate       int           `yaml:"frame_rate"`
	SweepDuration   time.Duration `yaml:"sweep_duration"`
	TangentDuration time.Duration `yaml:"tangent_duration"` // per phase
	CleanupDelay    time.Duration `yaml:"cleanup_delay"`
	FormulaDuration time.Duration `yaml:"formula_duration"`
	BezierSteps     int           `yaml:"bezier_steps"`
	CatmullRomSteps int           `yaml:"catmull_rom_steps"` // per segment
	Mode            Mode          `yaml:"mode"`
	Closed          bool          `yaml:"closed"` // Catmull-Rom splines are closed loops
	Palette         []Color       `yaml:"palette"` // marker colours, cycled by recursion depth
	Colors          Colors        `yaml:"colors"`
}

// Default returns the default options.
func Default() *Options {
	return &Options{
		FrameRate:       60,
		SweepDuration:   4 * time.Second,
		TangentDuration: 1500 * time.Millisecond,
		CleanupDelay:    2 * time.Second,
		FormulaDuration: 1500 * time.Millisecond,
		BezierSteps:     100,
		CatmullRomSteps: 20,
		Mode:            Bezier,
		Palette: []Color{
			Hex("#e6194b"), Hex("#3cb44b"), Hex("#4363d8"),
			Hex("#f58231"), Hex("#911eb4"), Hex("#42d4f4"),
		},
		Colors: Colors{
			T:       Hex("#ff8800"),
			Rest:    Hex("#7f7f7f"),
			Curve:   Hex("#1e90ff"),
			Polygon: Hex("#a0a0a0"),
			Control: Hex("#ffffff"),
			Derived: Hex("#ffd700"),
			Vector:  Hex("#ff00ff"),
		},
	}
}

// Load decodes YAML options from r on top of the defaults and validates
// the result. Empty input yields the defaults.
func Load(r io.Reader) (*Options, error) {
	opts := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(opts); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadFile reads options from a YAML file.
func LoadFile(name string) (*Options, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	tracer().Infof("options loaded from %s", name)
	return opts, nil
}

// Validate checks the options for values out of range. Mode aliases are
// replaced by the canonical mode name.
func (o *Options) Validate() error {
	switch {
	case o.FrameRate < 1:
		return fmt.Errorf("%w: frame_rate must be positive, is %d", ErrInvalidOption, o.FrameRate)
	case o.SweepDuration <= 0, o.TangentDuration <= 0, o.FormulaDuration <= 0:
		return fmt.Errorf("%w: animation durations must be positive", ErrInvalidOption)
	case o.CleanupDelay < 0:
		return fmt.Errorf("%w: cleanup_delay must not be negative", ErrInvalidOption)
	case o.BezierSteps < 1 || o.CatmullRomSteps < 1:
		return fmt.Errorf("%w: step counts must be positive", ErrInvalidOption)
	case len(o.Palette) == 0:
		return fmt.Errorf("%w: palette is empty", ErrInvalidOption)
	}
	mode, err := ParseMode(string(o.Mode))
	if err != nil {
		return err
	}
	o.Mode = mode
	return nil
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Bezier, CatmullRom:
		return Mode(s), nil
	case "catmullrom", "cr":
		return CatmullRom, nil
	}
	return Bezier, fmt.Errorf("%w: unknown mode %q", ErrInvalidOption, s)
}
