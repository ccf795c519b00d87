// Package geometry computes outlines and hole positions for placed parts.
//
// Everything here is a pure function of its arguments. Coordinates are pixels in
// board space (before the display rotation applied by the layout package), with
// y growing downwards and positive angles turning clockwise on screen.
package geometry

import "math"

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Mul(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// RotateAbout turns p by deg degrees around c.
func (p Point) RotateAbout(c Point, deg float64) Point {
	if deg == 0 {
		return p
	}
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	d := p.Sub(c)
	return Point{
		X: c.X + d.X*cos - d.Y*sin,
		Y: c.Y + d.X*sin + d.Y*cos,
	}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Contains reports whether p lies in the half-open rectangle [X,X+W)×[Y,Y+H).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Metrics describes the board's cell spacing.
type Metrics struct {
	CellSize float64
	Gap      float64
}

// Pitch is the distance between the origins of adjacent cells.
func (m Metrics) Pitch() float64 {
	return m.CellSize + m.Gap
}

// Span is the pixel length covered by n consecutive cells, gaps between them included.
func (m Metrics) Span(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*m.CellSize + float64(n-1)*m.Gap
}

// CellOrigin returns the top-left pixel of cell (col,row) relative to origin.
func (m Metrics) CellOrigin(origin Point, col, row int) Point {
	return Point{
		X: origin.X + float64(col)*m.Pitch(),
		Y: origin.Y + float64(row)*m.Pitch(),
	}
}

// CellCenter returns the centre pixel of cell (col,row) relative to origin.
func (m Metrics) CellCenter(origin Point, col, row int) Point {
	return m.CellOrigin(origin, col, row).Add(Point{m.CellSize / 2, m.CellSize / 2})
}
