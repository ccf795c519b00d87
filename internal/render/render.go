// Package render paints a board scene into an RGBA image.
//
// Drawing happens in board space under the display quarter turn, so the output
// matches layout.Mapper pixel for pixel. Paint order is fixed: background,
// template, grid holes, parts, screws, hover preview.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"screwboard/internal/geometry"
	"screwboard/internal/layout"
	"screwboard/internal/parts"
	"screwboard/internal/placement"
)

const (
	partAlpha      = 0.85
	previewAlpha   = 0.3
	gridHoleRadius = 4.0
	screwRadius    = 13.0
	boardMargin    = 10.0
)

var (
	DefaultBackground = color.RGBA{R: 0xF7, G: 0xF7, B: 0xF7, A: 0xff}
	DefaultPartColor  = color.RGBA{R: 0x4E, G: 0xCD, B: 0xC4, A: 0xff}

	blockedColor = color.RGBA{R: 0xFF, A: 0xff}
	slotColor    = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	black        = color.RGBA{A: 0xff}
	white        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Hover is the candidate part under the pointer.
type Hover struct {
	Cell     layout.Cell
	Type     parts.Type
	Rotation int
	Color    string
	// CanPlace selects the active colour; false paints the warning colour.
	CanPlace bool
}

// Scene is everything one frame depends on. Rendering never modifies it.
type Scene struct {
	Mapper           layout.Mapper
	Background       string
	Template         image.Image
	TemplateRotation int
	Parts            []placement.Part
	Screws           []placement.Screw
	Hover            *Hover
	// Legend adds a footer strip with counts below the canvas.
	Legend bool
}

type renderer struct {
	dc      *gg.Context
	img     *image.RGBA
	scene   Scene
	origin  geometry.Point
	metrics geometry.Metrics
	bg      color.RGBA
}

// Render draws s onto a fresh canvas-sized image.
func Render(s Scene) *image.RGBA {
	w := int(math.Ceil(s.Mapper.CanvasWidth))
	h := int(math.Ceil(s.Mapper.CanvasHeight))
	if s.Legend {
		h += legendHeight
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := &renderer{
		dc:      gg.NewContextForRGBA(img),
		img:     img,
		scene:   s,
		origin:  s.Mapper.Origin(),
		metrics: s.Mapper.Board.Metrics,
		bg:      colorOr(s.Background, DefaultBackground),
	}

	r.dc.Push()
	// Board space to display space, the same turn as Mapper.BoardToDisplay
	r.dc.Translate(s.Mapper.CanvasWidth, 0)
	r.dc.Rotate(math.Pi / 2)

	r.background()
	if s.Template != nil {
		r.template()
	}
	r.gridHoles()
	for _, p := range s.Parts {
		r.part(p)
	}
	for _, sc := range s.Screws {
		r.screw(sc)
	}
	if s.Hover != nil {
		r.hover(*s.Hover)
	}
	r.dc.Pop()

	if s.Legend {
		r.legend()
	}
	return img
}

// EncodePNG renders s and writes it to w as PNG.
func EncodePNG(w io.Writer, s Scene) error {
	return gg.NewContextForRGBA(Render(s)).EncodePNG(w)
}

// SavePNG renders s into a PNG file at path.
func SavePNG(path string, s Scene) error {
	return gg.SavePNG(path, Render(s))
}

// shadowOffset is the board-space step that lands d pixels right and d pixels
// down on the display.
func shadowOffset(d float64) geometry.Point {
	return geometry.Pt(d, -d)
}

func (r *renderer) background() {
	tw, th := r.scene.Mapper.Board.TotalSize()
	x, y := r.origin.X-boardMargin, r.origin.Y-boardMargin
	w, h := tw+2*boardMargin, th+2*boardMargin

	sh := shadowOffset(3)
	r.dc.DrawRectangle(x+sh.X, y+sh.Y, w, h)
	r.dc.SetColor(withAlpha(black, 0.2))
	r.dc.Fill()

	r.dc.DrawRectangle(x, y, w, h)
	r.dc.SetColor(r.bg)
	r.dc.Fill()
}

func (r *renderer) gridHoles() {
	r.dc.SetColor(AdjustBrightness(r.bg, -15))
	b := r.scene.Mapper.Board
	for row := 0; row < b.GridHeight; row++ {
		for col := 0; col < b.GridWidth; col++ {
			c := r.metrics.CellCenter(r.origin, col, row)
			r.dc.DrawCircle(c.X, c.Y, gridHoleRadius)
			r.dc.Fill()
		}
	}
}

func (r *renderer) part(p placement.Part) {
	base := colorOr(p.Color, DefaultPartColor)
	o := geometry.Shape(p.Type, p.GridX, p.GridY, p.Rotation, r.origin, r.metrics)

	sh := shadowOffset(2)
	r.dc.Push()
	r.dc.Translate(sh.X, sh.Y)
	r.fill(o.Path, withAlpha(black, 0.3*partAlpha))
	r.dc.Pop()

	r.fill(o.Path, withAlpha(base, partAlpha))

	// Triangles get their outline before the holes, everything else after.
	if p.Type == parts.Triangle {
		r.stroke(o.Path, Darken(base, 20), 3.5)
		r.holes(o.Holes, base)
		return
	}
	r.holes(o.Holes, base)
	r.stroke(o.Path, Darken(base, 20), 3)
}

func (r *renderer) holes(holes []geometry.Hole, base color.RGBA) {
	edge := AdjustBrightness(base, -40)
	r.dc.SetLineWidth(2)
	for _, h := range holes {
		r.dc.DrawCircle(h.Center.X, h.Center.Y, h.Radius)
		r.dc.SetColor(white)
		r.dc.FillPreserve()
		r.dc.SetColor(edge)
		r.dc.Stroke()
	}
}

func (r *renderer) screw(s placement.Screw) {
	dc := r.dc
	base := colorOr(s.Color, DefaultPartColor)
	c := r.metrics.CellCenter(r.origin, s.GridX, s.GridY)

	sh := c.Add(shadowOffset(2))
	dc.DrawCircle(sh.X, sh.Y, screwRadius)
	dc.SetColor(withAlpha(black, 0.5))
	dc.Fill()

	// Gradients are evaluated in device pixels.
	hx, hy := dc.TransformPoint(c.X-3, c.Y-3)
	cx, cy := dc.TransformPoint(c.X, c.Y)
	g := gg.NewRadialGradient(hx, hy, 0, cx, cy, screwRadius)
	g.AddColorStop(0, Lighten(base, 20))
	g.AddColorStop(0.3, base)
	g.AddColorStop(0.7, Darken(base, 30))
	g.AddColorStop(1, Darken(base, 50))

	dc.DrawCircle(c.X, c.Y, screwRadius)
	dc.SetFillStyle(g)
	dc.FillPreserve()
	dc.SetColor(Darken(base, 60))
	dc.SetLineWidth(1.5)
	dc.Stroke()

	// Cross slot
	dc.SetColor(slotColor)
	dc.SetLineWidth(2.5)
	dc.SetLineCapRound()
	dc.DrawLine(c.X, c.Y-6, c.X, c.Y+6)
	dc.Stroke()
	dc.DrawLine(c.X-6, c.Y, c.X+6, c.Y)
	dc.Stroke()
	dc.SetLineCapButt()

	dc.DrawCircle(c.X, c.Y, screwRadius-1)
	dc.SetColor(withAlpha(black, 0.4))
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.DrawCircle(c.X-3, c.Y-3, 3)
	dc.SetColor(withAlpha(white, 0.6))
	dc.Fill()
	dc.DrawCircle(c.X-2, c.Y-2, 1.5)
	dc.SetColor(withAlpha(white, 0.9))
	dc.Fill()
}

func (r *renderer) hover(h Hover) {
	fill := blockedColor
	if h.CanPlace {
		fill = colorOr(h.Color, DefaultPartColor)
	}
	o := geometry.Shape(h.Type, h.Cell.Col, h.Cell.Row, h.Rotation, r.origin, r.metrics)
	r.fill(o.Path, withAlpha(fill, previewAlpha))
	r.dc.SetColor(withAlpha(white, 0.8))
	for _, hole := range o.Holes {
		r.dc.DrawCircle(hole.Center.X, hole.Center.Y, hole.Radius)
		r.dc.Fill()
	}
}

func (r *renderer) fill(p geometry.Path, c color.Color) {
	r.trace(p)
	r.dc.SetColor(c)
	r.dc.Fill()
}

func (r *renderer) stroke(p geometry.Path, c color.Color, width float64) {
	r.trace(p)
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.dc.Stroke()
}

// trace replays p onto the context's current path.
func (r *renderer) trace(p geometry.Path) {
	dc := r.dc
	for _, s := range p {
		switch s.Kind {
		case geometry.MoveTo:
			dc.MoveTo(s.To.X, s.To.Y)
		case geometry.LineTo:
			dc.LineTo(s.To.X, s.To.Y)
		case geometry.QuadTo:
			dc.QuadraticTo(s.Ctrl.X, s.Ctrl.Y, s.To.X, s.To.Y)
		case geometry.ArcTo:
			dc.DrawArc(s.Center.X, s.Center.Y, s.Radius, s.Start, s.End)
		case geometry.Close:
			dc.ClosePath()
		}
	}
}
