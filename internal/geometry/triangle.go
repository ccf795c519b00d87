package geometry

import "sort"

// Offset is an integer cell offset relative to a part's anchor cell.
type Offset struct {
	X, Y int
}

// TriangleTable is the authored geometry of one triangle rotation.
type TriangleTable struct {
	Vertices [3]Offset
	Holes    [6]Offset
}

// Each angle is authored separately so the pixels for an angle never depend on
// floating point rotation.
var triangleTables = map[int]TriangleTable{
	0: {
		Vertices: [3]Offset{{0, 0}, {2, 0}, {0, 2}},
		Holes:    [6]Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}, {1, 1}},
	},
	90: {
		Vertices: [3]Offset{{2, 0}, {2, 2}, {0, 0}},
		Holes:    [6]Offset{{2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {1, 1}},
	},
	180: {
		Vertices: [3]Offset{{2, 2}, {0, 2}, {2, 0}},
		Holes:    [6]Offset{{2, 2}, {1, 2}, {0, 2}, {2, 1}, {0, 1}, {1, 1}},
	},
	270: {
		Vertices: [3]Offset{{0, 2}, {0, 0}, {2, 2}},
		Holes:    [6]Offset{{0, 2}, {0, 1}, {0, 0}, {1, 0}, {2, 0}, {1, 1}},
	},
}

// Triangle returns the authored table for angle, one of 0, 90, 180 or 270.
func Triangle(angle int) (TriangleTable, bool) {
	t, ok := triangleTables[angle]
	return t, ok
}

// RotateTriangleTable turns a table clockwise by the given number of quarter turns
// about the centre cell (1,1) of the 3×3 footprint.
func RotateTriangleTable(t TriangleTable, quarter int) TriangleTable {
	quarter = ((quarter % 4) + 4) % 4
	for i := 0; i < quarter; i++ {
		for v := range t.Vertices {
			t.Vertices[v] = turnOffset(t.Vertices[v])
		}
		for h := range t.Holes {
			t.Holes[h] = turnOffset(t.Holes[h])
		}
	}
	return t
}

func turnOffset(o Offset) Offset {
	return Offset{X: 2 - o.Y, Y: o.X}
}

// TableMismatch records an angle whose authored table differs from the 0° table
// rotated into place.
type TableMismatch struct {
	Angle    int
	Field    string
	Authored []Offset
	Derived  []Offset
}

// VerifyTriangleTables compares every authored table against the rotated 0° table.
// Vertices are compared in order; holes as sets.
func VerifyTriangleTables() []TableMismatch {
	base := triangleTables[0]
	var out []TableMismatch
	for _, angle := range []int{90, 180, 270} {
		authored := triangleTables[angle]
		derived := RotateTriangleTable(base, angle/90)
		if authored.Vertices != derived.Vertices {
			out = append(out, TableMismatch{
				Angle:    angle,
				Field:    "vertices",
				Authored: authored.Vertices[:],
				Derived:  derived.Vertices[:],
			})
		}
		a, d := sortedOffsets(authored.Holes[:]), sortedOffsets(derived.Holes[:])
		if !equalOffsets(a, d) {
			out = append(out, TableMismatch{Angle: angle, Field: "holes", Authored: a, Derived: d})
		}
	}
	return out
}

func sortedOffsets(in []Offset) []Offset {
	out := append([]Offset(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func equalOffsets(a, b []Offset) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
