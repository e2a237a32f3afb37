/*
Package scene holds the presentation-side collaborators of the animators:
a scene graph of drawing primitives with stable handles, a camera mapping
world coordinates to screen coordinates, and an overlay showing formulas
and notices for a limited time.

Presenters (terminal, raster images) read a Graph and a Camera and draw
them; animators and the canvas only ever mutate the graph.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package scene

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'scene'
func tracer() tracing.Trace {
	return tracing.Select("scene")
}

// Kind enumerates the kinds of primitives.
type Kind int8

// Primitive kinds
const (
	KindLine Kind = iota
	KindSphere
	KindLabel
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindSphere:
		return "sphere"
	case KindLabel:
		return "label"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Primitive is an element of a scene graph.
type Primitive interface {
	Kind() Kind
}

// Line is a polyline through Points.
type Line struct {
	Points []casteljau.Point
	Color  colorful.Color
	Width  float64 // in screen units; 0 is the thinnest line a presenter can draw
}

// Kind is KindLine.
func (l Line) Kind() Kind { return KindLine }

// Segment creates a straight line from a to b.
func Segment(a, b casteljau.Point, color colorful.Color) Line {
	return Line{Points: []casteljau.Point{a, b}, Color: color}
}

// Sphere is a point marker. Radius is in world units.
type Sphere struct {
	Center casteljau.Point
	Radius float64
	Color  colorful.Color
}

// Kind is KindSphere.
func (s Sphere) Kind() Kind { return KindSphere }

// Label is a text anchored at a point.
type Label struct {
	At    casteljau.Point
	Text  string
	Color colorful.Color
}

// Kind is KindLabel.
func (l Label) Kind() Kind { return KindLabel }

// Group bundles primitives which are drawn, replaced and removed together.
type Group struct {
	Items []Primitive
}

// Kind is KindGroup.
func (g Group) Kind() Kind { return KindGroup }

// Add appends primitives to the group.
func (g *Group) Add(p ...Primitive) {
	g.Items = append(g.Items, p...)
}

// Walk calls fn for every non-group primitive of p, descending into groups.
func Walk(p Primitive, fn func(Primitive)) {
	if g, ok := p.(Group); ok {
		for _, item := range g.Items {
			Walk(item, fn)
		}
		return
	}
	if g, ok := p.(*Group); ok {
		for _, item := range g.Items {
			Walk(item, fn)
		}
		return
	}
	fn(p)
}

// Subscript appends i as subscript digits to name, e.g. P₁₂.
func Subscript(name string, i int) string {
	var b strings.Builder
	b.WriteString(name)
	if i < 0 {
		b.WriteRune('₋')
		i = -i
	}
	for _, r := range strconv.Itoa(i) {
		b.WriteRune('₀' + (r - '0'))
	}
	return b.String()
}
