package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"screwboard/internal/layout"
)

// templateAlpha is 30% opacity.
const templateAlpha = 77

// template stretches the template bitmap over the board, turns it about the board
// centre and blends it onto the canvas.
func (r *renderer) template() {
	src := r.scene.Template
	if src.Bounds().Empty() {
		return
	}
	m := r.scene.Mapper
	canvas := image.Rect(0, 0, int(math.Ceil(m.CanvasWidth)), int(math.Ceil(m.CanvasHeight)))

	layer := image.NewRGBA(canvas)
	draw.CatmullRom.Transform(layer, TemplateTransform(m, src.Bounds(), r.scene.TemplateRotation), src, src.Bounds(), draw.Src, nil)
	draw.DrawMask(r.img, canvas, layer, image.Point{}, image.NewUniform(color.Alpha{A: templateAlpha}), image.Point{}, draw.Over)
}

// TemplateTransform maps template pixels in src to display pixels: scale to the
// board's size, turn by deg about the board centre, then apply the display turn.
func TemplateTransform(m layout.Mapper, src image.Rectangle, deg int) f64.Aff3 {
	o := m.Origin()
	tw, th := m.Board.TotalSize()
	sx := tw / float64(src.Dx())
	sy := th / float64(src.Dy())
	fit := f64.Aff3{
		sx, 0, o.X - float64(src.Min.X)*sx,
		0, sy, o.Y - float64(src.Min.Y)*sy,
	}

	cx, cy := o.X+tw/2, o.Y+th/2
	sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
	turn := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}

	display := f64.Aff3{
		0, -1, m.CanvasWidth,
		1, 0, 0,
	}
	return compose(display, compose(turn, fit))
}

// compose returns the transform applying inner first, then outer.
func compose(outer, inner f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		outer[0]*inner[0] + outer[1]*inner[3],
		outer[0]*inner[1] + outer[1]*inner[4],
		outer[0]*inner[2] + outer[1]*inner[5] + outer[2],
		outer[3]*inner[0] + outer[4]*inner[3],
		outer[3]*inner[1] + outer[4]*inner[4],
		outer[3]*inner[2] + outer[4]*inner[5] + outer[5],
	}
}
