// Package parts holds the static catalog of placeable parts.
package parts

import (
	"encoding/json"
	"fmt"
)

// Type identifies a part in the catalog.
type Type int

const (
	Circle Type = iota
	Triangle
	Square
	Strip
)

// All lists the catalog in display order.
var All = []Type{Circle, Triangle, Square, Strip}

var typeNames = map[Type]string{
	Circle:   "circle",
	Triangle: "triangle",
	Square:   "square",
	Strip:    "strip",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Parse looks up a type by its wire name.
func Parse(name string) (Type, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

func (t Type) MarshalJSON() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown part type %d", int(t))
	}
	return json.Marshal(name)
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, ok := Parse(name)
	if !ok {
		return fmt.Errorf("unknown part type %q", name)
	}
	*t = parsed
	return nil
}

// Hole is a fractional cell coordinate relative to the part's top-left cell.
type Hole struct {
	X, Y float64
}

// Spec describes one catalog entry.
type Spec struct {
	Name         string
	GridWidth    int
	GridHeight   int
	Holes        []Hole
	Rotatable    bool
	Rotations    []int
	Scale        float64
	CornerRadius float64
}

var stripRotations = []int{0, 45, 90, 135, 180, 225, 270, 315}
var triangleRotations = []int{0, 90, 180, 270}

var catalog = map[Type]Spec{
	Circle: {
		Name:       "Circle",
		GridWidth:  3,
		GridHeight: 3,
		Holes:      []Hole{{1.5, 0.5}, {0.5, 1.5}, {1.5, 1.5}, {2.5, 1.5}, {1.5, 2.5}},
		Rotations:  []int{0},
		Scale:      0.85,
	},
	Triangle: {
		Name:         "Triangle",
		GridWidth:    3,
		GridHeight:   3,
		Rotatable:    true,
		Rotations:    triangleRotations,
		Scale:        1.15,
		CornerRadius: 10,
	},
	Square: {
		Name:       "Square",
		GridWidth:  3,
		GridHeight: 3,
		Holes: []Hole{
			{0.5, 0.5}, {1.5, 0.5}, {2.5, 0.5},
			{0.5, 1.5}, {1.5, 1.5}, {2.5, 1.5},
			{0.5, 2.5}, {1.5, 2.5}, {2.5, 2.5},
		},
		Rotations:    []int{0},
		Scale:        1,
		CornerRadius: 25,
	},
	Strip: {
		Name:       "Strip",
		GridWidth:  1,
		GridHeight: 3,
		Holes:      []Hole{{0.5, 0.5}, {0.5, 1.5}, {0.5, 2.5}},
		Rotatable:  true,
		Rotations:  stripRotations,
		Scale:      1,
	},
}

// Spec returns the catalog entry for t. Unknown types yield a zero Spec.
func (t Type) Spec() Spec {
	return catalog[t]
}

// Valid reports whether t is a catalog type.
func (t Type) Valid() bool {
	_, ok := catalog[t]
	return ok
}

// Rotatable reports whether placing t needs an angle choice.
func (t Type) Rotatable() bool {
	return catalog[t].Rotatable
}

// ValidRotation reports whether deg is in t's rotation domain.
func (t Type) ValidRotation(deg int) bool {
	for _, r := range catalog[t].Rotations {
		if r == deg {
			return true
		}
	}
	return false
}

// Footprint returns the axis-aligned cell size of t. Rotation never changes it.
func (t Type) Footprint() (w, h int) {
	s := catalog[t]
	return s.GridWidth, s.GridHeight
}
