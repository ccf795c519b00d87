// Package placement owns the parts and screws placed on a board.
package placement

import (
	"time"

	"screwboard/internal/layout"
	"screwboard/internal/parts"
)

// Part is a placed part. Its footprint is the axis-aligned cell rectangle
// [GridX, GridX+w) × [GridY, GridY+h) whatever its rotation.
type Part struct {
	Type     parts.Type `json:"type"`
	Color    string     `json:"color"`
	GridX    int        `json:"gridX"`
	GridY    int        `json:"gridY"`
	Rotation int        `json:"rotation"`
	ID       int64      `json:"id"`
}

// Covers reports whether the part's footprint contains cell (col,row).
func (p Part) Covers(col, row int) bool {
	w, h := p.Type.Footprint()
	return col >= p.GridX && col < p.GridX+w && row >= p.GridY && row < p.GridY+h
}

// Screw is a single-cell marker. PartID points at the part under it when it was
// placed and is only used to delete the screw together with that part.
type Screw struct {
	GridX  int    `json:"gridX"`
	GridY  int    `json:"gridY"`
	Color  string `json:"color"`
	PartID *int64 `json:"partId"`
}

// IDSource hands out part ids. Ids follow the millisecond clock but never repeat
// within one source.
type IDSource struct {
	last int64
	now  func() time.Time
}

// Next returns a fresh id.
func (s *IDSource) Next() int64 {
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	id := now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe makes sure later ids are greater than id.
func (s *IDSource) Observe(id int64) {
	if id > s.last {
		s.last = id
	}
}

// Model is the ordered collection of parts and screws on one board.
type Model struct {
	board  layout.Board
	parts  []Part
	screws []Screw
	ids    IDSource
}

// New returns an empty model for b.
func New(b layout.Board) *Model {
	return &Model{board: b}
}

// Board returns the grid the model validates against.
func (m *Model) Board() layout.Board {
	return m.board
}

// Parts returns the placed parts in insertion order. The slice must not be modified.
func (m *Model) Parts() []Part {
	return m.parts
}

// Screws returns the placed screws in insertion order. The slice must not be modified.
func (m *Model) Screws() []Screw {
	return m.screws
}

// Counts returns the number of parts and screws.
func (m *Model) Counts() (parts, screws int) {
	return len(m.parts), len(m.screws)
}

// CanPlace reports whether a part of type t anchored at (col,row) fits on the grid.
// Other parts never block a placement.
func (m *Model) CanPlace(col, row int, t parts.Type) bool {
	if !t.Valid() {
		return false
	}
	w, h := t.Footprint()
	return col >= 0 && row >= 0 && col <= m.board.GridWidth-w && row <= m.board.GridHeight-h
}

// AddPart appends a new part. A footprint off the grid or a rotation outside the
// type's domain leaves the model unchanged and returns ok=false.
func (m *Model) AddPart(t parts.Type, color string, col, row, rotation int) (Part, bool) {
	if !m.CanPlace(col, row, t) || !t.ValidRotation(rotation) {
		return Part{}, false
	}
	p := Part{
		Type:     t,
		Color:    color,
		GridX:    col,
		GridY:    row,
		Rotation: rotation,
		ID:       m.ids.Next(),
	}
	m.parts = append(m.parts, p)
	return p, true
}

// FindPartAt returns the first part, in insertion order, covering (col,row).
func (m *Model) FindPartAt(col, row int) (Part, bool) {
	if i := m.partIndex(col, row); i >= 0 {
		return m.parts[i], true
	}
	return Part{}, false
}

// TopPartAt returns the last placed part covering (col,row), the one drawn on top.
func (m *Model) TopPartAt(col, row int) (Part, bool) {
	for i := len(m.parts) - 1; i >= 0; i-- {
		if m.parts[i].Covers(col, row) {
			return m.parts[i], true
		}
	}
	return Part{}, false
}

// FindScrewAt returns the screw on (col,row).
func (m *Model) FindScrewAt(col, row int) (Screw, bool) {
	if i := m.screwIndex(col, row); i >= 0 {
		return m.screws[i], true
	}
	return Screw{}, false
}

// RemovePartAt removes the first part covering (col,row) and every screw whose
// PartID is that part's id.
func (m *Model) RemovePartAt(col, row int) (Part, bool) {
	i := m.partIndex(col, row)
	if i < 0 {
		return Part{}, false
	}
	removed := m.parts[i]
	m.parts = append(m.parts[:i:i], m.parts[i+1:]...)

	kept := m.screws[:0:0]
	for _, s := range m.screws {
		if s.PartID != nil && *s.PartID == removed.ID {
			continue
		}
		kept = append(kept, s)
	}
	m.screws = kept
	return removed, true
}

// RemoveScrewAt removes the screw on (col,row).
func (m *Model) RemoveScrewAt(col, row int) (Screw, bool) {
	i := m.screwIndex(col, row)
	if i < 0 {
		return Screw{}, false
	}
	removed := m.screws[i]
	m.screws = append(m.screws[:i:i], m.screws[i+1:]...)
	return removed, true
}

// ToggleResult says what ToggleScrewAt did.
type ToggleResult int

const (
	ScrewAdded ToggleResult = iota
	ScrewRemoved
	ScrewIgnored
)

func (r ToggleResult) String() string {
	switch r {
	case ScrewAdded:
		return "added"
	case ScrewRemoved:
		return "removed"
	default:
		return "ignored"
	}
}

// ToggleScrewAt removes the screw on (col,row) if there is one, otherwise adds one
// linked to the topmost (last placed) part covering the cell. Cells off the grid
// are ignored.
func (m *Model) ToggleScrewAt(col, row int, color string) ToggleResult {
	if _, ok := m.RemoveScrewAt(col, row); ok {
		return ScrewRemoved
	}
	if !m.board.InGrid(layout.Cell{Col: col, Row: row}) {
		return ScrewIgnored
	}
	s := Screw{GridX: col, GridY: row, Color: color}
	if p, ok := m.TopPartAt(col, row); ok {
		id := p.ID
		s.PartID = &id
	}
	m.screws = append(m.screws, s)
	return ScrewAdded
}

// Clear removes every part and screw.
func (m *Model) Clear() {
	m.parts = nil
	m.screws = nil
}

func (m *Model) partIndex(col, row int) int {
	for i, p := range m.parts {
		if p.Covers(col, row) {
			return i
		}
	}
	return -1
}

func (m *Model) screwIndex(col, row int) int {
	for i, s := range m.screws {
		if s.GridX == col && s.GridY == row {
			return i
		}
	}
	return -1
}
