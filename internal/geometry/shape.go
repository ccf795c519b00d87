package geometry

import (
	"math"

	"screwboard/internal/parts"
)

const (
	HoleRadius         = 6.0
	TriangleHoleRadius = 8.0
)

// Hole is a circular cut-out in a part.
type Hole struct {
	Center Point
	Radius float64
}

// Outline is the full geometry of one part at one position and rotation.
type Outline struct {
	Type parts.Type
	// Bounds is the unrotated footprint rectangle in pixels.
	Bounds Rect
	// Vertices holds the corner points of polygonal types (triangle), after scaling.
	Vertices []Point
	Path     Path
	Holes    []Hole
}

// FootprintRect returns the pixel rectangle covered by a part of type t anchored at
// (col,row), relative to the board origin.
func FootprintRect(t parts.Type, col, row int, origin Point, m Metrics) Rect {
	w, h := t.Footprint()
	o := m.CellOrigin(origin, col, row)
	return Rect{X: o.X, Y: o.Y, W: m.Span(w), H: m.Span(h)}
}

// Shape computes the outline and holes of a part of type t anchored at (col,row)
// with the given part-local rotation. origin is the board's top-left pixel.
func Shape(t parts.Type, col, row, rotation int, origin Point, m Metrics) Outline {
	spec := t.Spec()
	bounds := FootprintRect(t, col, row, origin, m)
	out := Outline{Type: t, Bounds: bounds}

	switch t {
	case parts.Circle:
		radius := bounds.W / 2 * spec.Scale
		out.Path = CirclePath(bounds.Center(), radius)
		out.Holes = fractionalHoles(spec.Holes, bounds, m, 0)
	case parts.Square:
		out.Path = RoundedRect(bounds, spec.CornerRadius)
		out.Holes = fractionalHoles(spec.Holes, bounds, m, 0)
	case parts.Strip:
		deg := float64(rotation)
		out.Path = Capsule(bounds).Transform(bounds.Center(), deg)
		out.Holes = fractionalHoles(spec.Holes, bounds, m, deg)
	case parts.Triangle:
		table, ok := Triangle(rotation)
		if !ok {
			table, _ = Triangle(0)
		}
		out.Vertices = triangleVertices(table, col, row, origin, m, spec.Scale)
		out.Path = RoundedPolygon(out.Vertices, spec.CornerRadius)
		for _, h := range table.Holes {
			out.Holes = append(out.Holes, Hole{
				Center: m.CellCenter(origin, col+h.X, row+h.Y),
				Radius: TriangleHoleRadius,
			})
		}
	}
	return out
}

func triangleVertices(table TriangleTable, col, row int, origin Point, m Metrics, scale float64) []Point {
	center := m.CellCenter(origin, col+1, row+1)
	vertices := make([]Point, 0, len(table.Vertices))
	for _, v := range table.Vertices {
		base := m.CellCenter(origin, col+v.X, row+v.Y)
		vertices = append(vertices, center.Add(base.Sub(center).Mul(scale)))
	}
	return vertices
}

// fractionalHoles maps fractional cell positions into pixels. A point at fraction f
// sits f pitches from the footprint origin, pulled back by half a gap so that .5
// lands on the cell centre.
func fractionalHoles(holes []parts.Hole, bounds Rect, m Metrics, deg float64) []Hole {
	center := bounds.Center()
	out := make([]Hole, 0, len(holes))
	for _, h := range holes {
		p := Point{
			X: bounds.X + h.X*m.Pitch() - m.Gap/2,
			Y: bounds.Y + h.Y*m.Pitch() - m.Gap/2,
		}
		out = append(out, Hole{Center: p.RotateAbout(center, deg), Radius: HoleRadius})
	}
	return out
}

// HoleCells lists the footprint-relative cells that carry a hole for a part of type t
// at rotation. Strips report their unrotated cells.
func HoleCells(t parts.Type, rotation int) []Offset {
	if t == parts.Triangle {
		table, ok := Triangle(rotation)
		if !ok {
			return nil
		}
		return append([]Offset(nil), table.Holes[:]...)
	}
	holes := t.Spec().Holes
	out := make([]Offset, 0, len(holes))
	for _, h := range holes {
		out = append(out, Offset{X: int(math.Floor(h.X)), Y: int(math.Floor(h.Y))})
	}
	return out
}
