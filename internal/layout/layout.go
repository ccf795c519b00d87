// Package layout maps between display pixels and board grid cells.
//
// The board is always shown turned a quarter turn clockwise about the canvas
// centre. Board space is the unrotated frame the geometry package works in; display
// space is what the user sees and points at.
package layout

import "screwboard/internal/geometry"

// Cell is a grid position.
type Cell struct {
	Col, Row int
}

// Canvas size of the exported image.
const (
	CanvasWidth  = 700
	CanvasHeight = 450
)

// Board holds the fixed grid dimensions and cell metrics.
type Board struct {
	GridWidth  int
	GridHeight int
	Metrics    geometry.Metrics
}

// DefaultBoard is the 12×19 board with 35px cells and 2px gaps.
func DefaultBoard() Board {
	return Board{
		GridWidth:  12,
		GridHeight: 19,
		Metrics:    geometry.Metrics{CellSize: 35, Gap: 2},
	}
}

// InGrid reports whether c is a cell of the board.
func (b Board) InGrid(c Cell) bool {
	return c.Col >= 0 && c.Col < b.GridWidth && c.Row >= 0 && c.Row < b.GridHeight
}

// TotalSize is the pixel size of the whole grid, gaps included.
func (b Board) TotalSize() (w, h float64) {
	return b.Metrics.Span(b.GridWidth), b.Metrics.Span(b.GridHeight)
}

// Mapper converts coordinates for a board drawn on a canvas of fixed size.
type Mapper struct {
	Board        Board
	CanvasWidth  float64
	CanvasHeight float64
}

// NewMapper returns a mapper for b on a canvasW×canvasH display.
func NewMapper(b Board, canvasW, canvasH float64) Mapper {
	return Mapper{Board: b, CanvasWidth: canvasW, CanvasHeight: canvasH}
}

// DefaultMapper maps the default board on the exported canvas.
func DefaultMapper() Mapper {
	return NewMapper(DefaultBoard(), CanvasWidth, CanvasHeight)
}

// Origin is the board-space pixel of the top-left cell. The rotated frame has the
// canvas width and height swapped, so the board is centred in H×W.
func (m Mapper) Origin() geometry.Point {
	tw, th := m.Board.TotalSize()
	return geometry.Point{
		X: (m.CanvasHeight - tw) / 2,
		Y: (m.CanvasWidth - th) / 2,
	}
}

// BoardToDisplay applies the fixed quarter turn. It is computed by coordinate swap,
// not trigonometry, so it and DisplayToBoard are exact inverses.
func (m Mapper) BoardToDisplay(p geometry.Point) geometry.Point {
	return geometry.Point{X: m.CanvasWidth - p.Y, Y: p.X}
}

// DisplayToBoard undoes BoardToDisplay.
func (m Mapper) DisplayToBoard(p geometry.Point) geometry.Point {
	return geometry.Point{X: p.Y, Y: m.CanvasWidth - p.X}
}

// CellToPixelOrigin returns the board-space top-left pixel of a cell.
func (m Mapper) CellToPixelOrigin(col, row int) geometry.Point {
	return m.Board.Metrics.CellOrigin(m.Origin(), col, row)
}

// CellRect returns the board-space pixel rectangle of a cell.
func (m Mapper) CellRect(col, row int) geometry.Rect {
	o := m.CellToPixelOrigin(col, row)
	return geometry.Rect{X: o.X, Y: o.Y, W: m.Board.Metrics.CellSize, H: m.Board.Metrics.CellSize}
}

// CellCenterDisplay returns where the centre of a cell appears on the display.
func (m Mapper) CellCenterDisplay(col, row int) geometry.Point {
	half := m.Board.Metrics.CellSize / 2
	return m.BoardToDisplay(m.CellToPixelOrigin(col, row).Add(geometry.Pt(half, half)))
}

// PointerToCell maps a display position to the grid cell under it. ok is false when
// the point is off the board. A point in the gap after a cell belongs to that cell.
func (m Mapper) PointerToCell(x, y float64) (Cell, bool) {
	p := m.DisplayToBoard(geometry.Pt(x, y)).Sub(m.Origin())
	tw, th := m.Board.TotalSize()
	if p.X < 0 || p.Y < 0 || p.X >= tw || p.Y >= th {
		return Cell{}, false
	}
	pitch := m.Board.Metrics.Pitch()
	c := Cell{Col: int(p.X / pitch), Row: int(p.Y / pitch)}
	if !m.Board.InGrid(c) {
		return Cell{}, false
	}
	return c, true
}
