package term

import (
	"image"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/casteljau"
	"github.com/npillmayer/casteljau/scene"
)

// Glyphs for the primitives.
const (
	glyphLine   = '·'
	glyphCurve  = '•'
	glyphSphere = '●'
)

// painter draws scene primitives into the cells of a screen.
type painter struct {
	screen tcell.Screen
	camera *scene.Camera
	bg     tcell.Color
	w, h   int
}

func colorOf(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (p *painter) style(c colorful.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(colorOf(c)).Background(p.bg)
}

func (p *painter) cell(q casteljau.Point) image.Point {
	x, y := p.camera.ProjectToScreen(q)
	return image.Pt(int(math.Floor(x)), int(math.Floor(y)))
}

func (p *painter) set(at image.Point, r rune, st tcell.Style) {
	if at.X < 0 || at.Y < 0 || at.X >= p.w || at.Y >= p.h {
		return
	}
	p.screen.SetContent(at.X, at.Y, r, nil, st)
}

func (p *painter) paint(prim scene.Primitive) {
	scene.Walk(prim, func(prim scene.Primitive) {
		switch x := prim.(type) {
		case scene.Line:
			glyph := rune(glyphLine)
			if x.Width >= 2 {
				glyph = glyphCurve
			}
			st := p.style(x.Color)
			for i := 0; i+1 < len(x.Points); i++ {
				p.line(p.cell(x.Points[i]), p.cell(x.Points[i+1]), glyph, st)
			}
			if len(x.Points) == 1 {
				p.set(p.cell(x.Points[0]), glyph, st)
			}
		case scene.Sphere:
			p.set(p.cell(x.Center), glyphSphere, p.style(x.Color))
		case scene.Label:
			at := p.cell(x.At)
			p.text(at.X+1, at.Y, x.Text, p.style(x.Color))
		}
	})
}

// line steps from a to b with the Bresenham algorithm, setting every cell
// on the way.
func (p *painter) line(a, b image.Point, glyph rune, st tcell.Style) {
	d := b.Sub(a)
	sx, sy := 1, 1
	if d.X < 0 {
		sx, d.X = -1, -d.X
	}
	if d.Y < 0 {
		sy, d.Y = -1, -d.Y
	}
	swap := d.Y > d.X
	major, minor := d.X, d.Y
	if swap {
		major, minor = minor, major
	}
	if major > 4*(p.w+p.h) { // far outside the viewport
		return
	}
	e := 2*minor - major
	at := a
	for i := 0; i <= major; i++ {
		p.set(at, glyph, st)
		if e > 0 {
			if swap {
				at.X += sx
			} else {
				at.Y += sy
			}
			e -= 2 * major
		}
		e += 2 * minor
		if swap {
			at.Y += sy
		} else {
			at.X += sx
		}
	}
}

// text writes s starting at cell (x,y) and returns the column after it.
func (p *painter) text(x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.set(image.Pt(x, y), r, st)
		x += w
	}
	return x
}
