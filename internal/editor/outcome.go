package editor

import (
	"fmt"

	"screwboard/internal/layout"
	"screwboard/internal/placement"
)

// Action says what a gesture did.
type Action int

const (
	Ignored Action = iota
	// Blocked means the selected part does not fit at the cell.
	Blocked
	AwaitingAngle
	PlacedPart
	AddedScrew
	RemovedScrew
	RemovedPart
)

// Outcome reports the result of a click or angle confirmation.
type Outcome struct {
	Action Action
	Cell   layout.Cell
	Part   placement.Part
	Screw  placement.Screw
}

// Changed reports whether the board was modified.
func (o Outcome) Changed() bool {
	switch o.Action {
	case PlacedPart, AddedScrew, RemovedScrew, RemovedPart:
		return true
	}
	return false
}

// String is the status line text for o.
func (o Outcome) String() string {
	at := fmt.Sprintf("(%d,%d)", o.Cell.Col, o.Cell.Row)
	switch o.Action {
	case Blocked:
		return fmt.Sprintf("%s does not fit at %s", o.Part.Type, at)
	case AwaitingAngle:
		return fmt.Sprintf("Choose an angle for the %s at %s", o.Part.Type, at)
	case PlacedPart:
		if o.Part.Rotation != 0 {
			return fmt.Sprintf("Placed %s at %s, %d°", o.Part.Type, at, o.Part.Rotation)
		}
		return fmt.Sprintf("Placed %s at %s", o.Part.Type, at)
	case AddedScrew:
		if o.Screw.PartID != nil {
			return fmt.Sprintf("Screw added at %s", at)
		}
		return fmt.Sprintf("Loose screw added at %s", at)
	case RemovedScrew:
		return fmt.Sprintf("Screw removed at %s", at)
	case RemovedPart:
		return fmt.Sprintf("Deleted %s at %s", o.Part.Type, at)
	default:
		return ""
	}
}
