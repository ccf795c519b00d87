package layout

import (
	"testing"

	"screwboard/internal/geometry"
)

func TestOriginCentresBoard(t *testing.T) {
	m := NewMapper(DefaultBoard(), 700, 450)
	o := m.Origin()
	if o.X != 4 || o.Y != -0.5 {
		t.Errorf("Origin() = %v, expected (4,-0.5)", o)
	}
}

func TestDisplayTransformsAreInverse(t *testing.T) {
	m := NewMapper(DefaultBoard(), 700, 450)
	points := []geometry.Point{{0, 0}, {13.25, 400}, {699.5, 0.125}, {222, 351}}
	for _, p := range points {
		if got := m.DisplayToBoard(m.BoardToDisplay(p)); got != p {
			t.Errorf("DisplayToBoard(BoardToDisplay(%v)) = %v", p, got)
		}
		if got := m.BoardToDisplay(m.DisplayToBoard(p)); got != p {
			t.Errorf("BoardToDisplay(DisplayToBoard(%v)) = %v", p, got)
		}
	}
}

func TestPointerToCellRoundTripsEveryCell(t *testing.T) {
	mappers := []struct {
		name string
		m    Mapper
	}{
		{"canvas", NewMapper(DefaultBoard(), 700, 450)},
		{"terminal", NewMapper(Board{GridWidth: 12, GridHeight: 19, Metrics: geometry.Metrics{CellSize: 1}}, 19, 12)},
		{"odd", NewMapper(Board{GridWidth: 5, GridHeight: 7, Metrics: geometry.Metrics{CellSize: 9, Gap: 3}}, 101, 77)},
	}
	for _, tc := range mappers {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.m.Board
			for row := 0; row < b.GridHeight; row++ {
				for col := 0; col < b.GridWidth; col++ {
					p := tc.m.CellCenterDisplay(col, row)
					got, ok := tc.m.PointerToCell(p.X, p.Y)
					if !ok || got != (Cell{col, row}) {
						t.Fatalf("PointerToCell(%v) = %v,%v expected (%d,%d)", p, got, ok, col, row)
					}
				}
			}
		})
	}
}

func TestPointerToCellOffBoard(t *testing.T) {
	m := NewMapper(DefaultBoard(), 700, 450)
	tests := []struct {
		name string
		x, y float64
	}{
		{"far left", -5, 200},
		{"far right", 900, 200},
		{"above", 350, -10},
		{"below", 350, 449},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if c, ok := m.PointerToCell(tc.x, tc.y); ok {
				t.Errorf("PointerToCell(%v,%v) = %v, expected off board", tc.x, tc.y, c)
			}
		})
	}
}

func TestPointerToCellRotation(t *testing.T) {
	m := NewMapper(DefaultBoard(), 700, 450)
	// Columns run down the display and rows run right to left.
	first := m.CellCenterDisplay(0, 0)
	lastRow := m.CellCenterDisplay(0, 18)
	lastCol := m.CellCenterDisplay(11, 0)
	if !(lastRow.X < first.X) {
		t.Errorf("row 18 should be left of row 0: %v vs %v", lastRow, first)
	}
	if !(lastCol.Y > first.Y) {
		t.Errorf("col 11 should be below col 0: %v vs %v", lastCol, first)
	}
}

func TestPointerInGapBelongsToPrecedingCell(t *testing.T) {
	m := NewMapper(DefaultBoard(), 700, 450)
	o := m.CellToPixelOrigin(3, 4)
	gap := o.Add(geometry.Pt(35.5, 10))
	d := m.BoardToDisplay(gap)
	c, ok := m.PointerToCell(d.X, d.Y)
	if !ok || c != (Cell{3, 4}) {
		t.Errorf("gap pointer mapped to %v,%v expected (3,4)", c, ok)
	}
}
