// Package editor turns board gestures into placement changes.
//
// An Editor is either idle or holding a pending placement: a rotatable part whose
// cell has been chosen but whose angle has not. Only confirming the angle commits
// the part; cancelling drops the pending cell and nothing else.
package editor

import (
	"errors"
	"fmt"
	"image"

	"github.com/charmbracelet/log"

	"screwboard/internal/layout"
	"screwboard/internal/parts"
	"screwboard/internal/placement"
	"screwboard/internal/render"
)

const (
	DefaultColor            = "#4ECDC4"
	DefaultBackground       = "#F7F7F7"
	DefaultTemplateRotation = 90
)

var (
	ErrNoPending    = errors.New("no placement is waiting for an angle")
	ErrInvalidAngle = errors.New("angle not allowed for this part")
)

// Tool is what a board click does.
type Tool int

const (
	ToolPart Tool = iota
	ToolScrew
	ToolDelete
)

func (t Tool) String() string {
	switch t {
	case ToolPart:
		return "part"
	case ToolScrew:
		return "screw"
	case ToolDelete:
		return "delete"
	default:
		return fmt.Sprintf("Tool(%d)", int(t))
	}
}

// Pending is a rotatable part waiting for its angle. Angle is the choice being
// previewed and starts at the first valid rotation.
type Pending struct {
	Type  parts.Type
	Cell  layout.Cell
	Angle int
}

// Editor owns the placement model, its undo history and the selection state.
type Editor struct {
	model   *placement.Model
	history *placement.History
	logger  *log.Logger

	tool             Tool
	part             parts.Type
	color            string
	background       string
	templateRotation int

	pending *Pending
	hover   *layout.Cell
}

// New returns an idle editor on an empty board with the part tool and the circle
// selected.
func New(b layout.Board, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.Default()
	}
	return &Editor{
		model:            placement.New(b),
		history:          placement.NewHistory(placement.DefaultHistoryDepth),
		logger:           logger,
		tool:             ToolPart,
		part:             parts.Circle,
		color:            DefaultColor,
		background:       DefaultBackground,
		templateRotation: DefaultTemplateRotation,
	}
}

// Board returns the grid being edited.
func (e *Editor) Board() layout.Board {
	return e.model.Board()
}

// Parts returns the placed parts in insertion order.
func (e *Editor) Parts() []placement.Part {
	return e.model.Parts()
}

// Screws returns the placed screws in insertion order.
func (e *Editor) Screws() []placement.Screw {
	return e.model.Screws()
}

func (e *Editor) Counts() (parts, screws int) {
	return e.model.Counts()
}

func (e *Editor) Tool() Tool {
	return e.tool
}

func (e *Editor) Part() parts.Type {
	return e.part
}

func (e *Editor) Color() string {
	return e.color
}

func (e *Editor) Background() string {
	return e.background
}

func (e *Editor) TemplateRotation() int {
	return e.templateRotation
}

// HistoryLen is the number of changes Undo can revert.
func (e *Editor) HistoryLen() int {
	return e.history.Len()
}

// CanPlace reports whether the selected part fits at c.
func (e *Editor) CanPlace(c layout.Cell) bool {
	return e.model.CanPlace(c.Col, c.Row, e.part)
}

// PartAt returns the first part covering c.
func (e *Editor) PartAt(c layout.Cell) (placement.Part, bool) {
	return e.model.FindPartAt(c.Col, c.Row)
}

// ScrewAt returns the screw on c.
func (e *Editor) ScrewAt(c layout.Cell) (placement.Screw, bool) {
	return e.model.FindScrewAt(c.Col, c.Row)
}

// Pending returns the placement waiting for an angle.
func (e *Editor) Pending() (Pending, bool) {
	if e.pending == nil {
		return Pending{}, false
	}
	return *e.pending, true
}

// SelectPart arms the part tool with t. Any pending placement is dropped.
func (e *Editor) SelectPart(t parts.Type) {
	if !t.Valid() {
		return
	}
	e.CancelPending()
	e.tool = ToolPart
	e.part = t
}

// SelectTool switches between the part, screw and delete tools. The selected part
// type is kept for when the part tool comes back.
func (e *Editor) SelectTool(t Tool) {
	e.CancelPending()
	e.tool = t
}

// SetColor sets the colour used for new parts and screws.
func (e *Editor) SetColor(hex string) error {
	c, err := render.ParseHex(hex)
	if err != nil {
		return err
	}
	e.color = render.Hex(c)
	return nil
}

// SetBackground sets the board colour.
func (e *Editor) SetBackground(hex string) error {
	c, err := render.ParseHex(hex)
	if err != nil {
		return err
	}
	e.background = render.Hex(c)
	return nil
}

// Click applies the active tool to cell c. Clicks off the grid, and clicks while an
// angle is pending, do nothing.
func (e *Editor) Click(c layout.Cell) Outcome {
	if e.pending != nil || !e.model.Board().InGrid(c) {
		return Outcome{Action: Ignored, Cell: c}
	}
	switch e.tool {
	case ToolPart:
		return e.clickPart(c)
	case ToolScrew:
		return e.clickScrew(c)
	case ToolDelete:
		return e.clickDelete(c)
	}
	return Outcome{Action: Ignored, Cell: c}
}

func (e *Editor) clickPart(c layout.Cell) Outcome {
	if !e.model.CanPlace(c.Col, c.Row, e.part) {
		return Outcome{Action: Blocked, Cell: c, Part: placement.Part{Type: e.part}}
	}
	if e.part.Rotatable() {
		e.pending = &Pending{Type: e.part, Cell: c, Angle: e.part.Spec().Rotations[0]}
		return Outcome{Action: AwaitingAngle, Cell: c, Part: placement.Part{Type: e.part}}
	}
	return e.commitPart(e.part, c, 0)
}

func (e *Editor) commitPart(t parts.Type, c layout.Cell, rotation int) Outcome {
	before := e.model.Snapshot()
	p, ok := e.model.AddPart(t, e.color, c.Col, c.Row, rotation)
	if !ok {
		return Outcome{Action: Blocked, Cell: c, Part: placement.Part{Type: t}}
	}
	e.history.Push(before)
	e.logger.Debug("part placed", "type", p.Type, "col", p.GridX, "row", p.GridY, "rotation", p.Rotation, "id", p.ID)
	return Outcome{Action: PlacedPart, Cell: c, Part: p}
}

func (e *Editor) clickScrew(c layout.Cell) Outcome {
	before := e.model.Snapshot()
	existing, _ := e.model.FindScrewAt(c.Col, c.Row)
	switch e.model.ToggleScrewAt(c.Col, c.Row, e.color) {
	case placement.ScrewRemoved:
		e.history.Push(before)
		e.logger.Debug("screw removed", "col", c.Col, "row", c.Row)
		return Outcome{Action: RemovedScrew, Cell: c, Screw: existing}
	case placement.ScrewAdded:
		e.history.Push(before)
		screws := e.model.Screws()
		added := screws[len(screws)-1]
		e.logger.Debug("screw placed", "col", c.Col, "row", c.Row, "linked", added.PartID != nil)
		return Outcome{Action: AddedScrew, Cell: c, Screw: added}
	}
	return Outcome{Action: Ignored, Cell: c}
}

// clickDelete removes the screw in c if there is one, otherwise the first part
// covering c together with its screws.
func (e *Editor) clickDelete(c layout.Cell) Outcome {
	if _, ok := e.model.FindScrewAt(c.Col, c.Row); ok {
		e.history.Push(e.model.Snapshot())
		s, _ := e.model.RemoveScrewAt(c.Col, c.Row)
		e.logger.Debug("screw deleted", "col", c.Col, "row", c.Row)
		return Outcome{Action: RemovedScrew, Cell: c, Screw: s}
	}
	if _, ok := e.model.FindPartAt(c.Col, c.Row); ok {
		e.history.Push(e.model.Snapshot())
		p, _ := e.model.RemovePartAt(c.Col, c.Row)
		e.logger.Debug("part deleted", "type", p.Type, "id", p.ID)
		return Outcome{Action: RemovedPart, Cell: c, Part: p}
	}
	return Outcome{Action: Ignored, Cell: c}
}

// AngleChoices lists the rotations the pending part accepts, or nil when idle.
func (e *Editor) AngleChoices() []int {
	if e.pending == nil {
		return nil
	}
	return append([]int(nil), e.pending.Type.Spec().Rotations...)
}

// PreviewAngle changes the angle shown for the pending part without committing.
func (e *Editor) PreviewAngle(deg int) error {
	if e.pending == nil {
		return ErrNoPending
	}
	if !e.pending.Type.ValidRotation(deg) {
		return fmt.Errorf("%w: %s at %d°", ErrInvalidAngle, e.pending.Type, deg)
	}
	e.pending.Angle = deg
	return nil
}

// ConfirmAngle commits the pending part at deg and returns to idle. An angle outside
// the part's rotation set is rejected and the placement stays pending.
func (e *Editor) ConfirmAngle(deg int) (Outcome, error) {
	if e.pending == nil {
		return Outcome{Action: Ignored}, ErrNoPending
	}
	p := *e.pending
	if !p.Type.ValidRotation(deg) {
		return Outcome{Action: Ignored, Cell: p.Cell}, fmt.Errorf("%w: %s at %d°", ErrInvalidAngle, p.Type, deg)
	}
	e.pending = nil
	return e.commitPart(p.Type, p.Cell, deg), nil
}

// CancelPending drops a pending placement. It reports whether there was one.
func (e *Editor) CancelPending() bool {
	if e.pending == nil {
		return false
	}
	e.pending = nil
	return true
}

// RotateTemplate turns the template a quarter turn and returns the new angle.
// Part rotations are not touched.
func (e *Editor) RotateTemplate() int {
	e.templateRotation = (e.templateRotation + 90) % 360
	e.logger.Debug("template rotated", "rotation", e.templateRotation)
	return e.templateRotation
}

// SetTemplateRotation sets the template angle to one of 0, 90, 180 or 270.
func (e *Editor) SetTemplateRotation(deg int) error {
	if !ValidTemplateRotation(deg) {
		return fmt.Errorf("invalid template rotation %d", deg)
	}
	e.templateRotation = deg
	return nil
}

// ValidTemplateRotation reports whether deg is a quarter turn in [0,360).
func ValidTemplateRotation(deg int) bool {
	return deg == 0 || deg == 90 || deg == 180 || deg == 270
}

// Undo restores the parts and screws from before the last change.
func (e *Editor) Undo() bool {
	s, ok := e.history.Pop()
	if !ok {
		return false
	}
	e.pending = nil
	e.model.Restore(s)
	return true
}

// Clear removes every part and screw. It can be undone.
func (e *Editor) Clear() {
	e.pending = nil
	e.history.Push(e.model.Snapshot())
	e.model.Clear()
	e.logger.Debug("board cleared")
}

// SetHover records the cell under the pointer; nil clears it.
func (e *Editor) SetHover(c *layout.Cell) {
	if c == nil {
		e.hover = nil
		return
	}
	cell := *c
	e.hover = &cell
}

// Hover returns the cell under the pointer.
func (e *Editor) Hover() (layout.Cell, bool) {
	if e.hover == nil {
		return layout.Cell{}, false
	}
	return *e.hover, true
}

// Scene builds the renderer input for the current state. A pending placement is
// previewed at its cell and angle; otherwise the part tool previews the selected
// part at the hovered cell.
func (e *Editor) Scene(m layout.Mapper, template image.Image) render.Scene {
	s := render.Scene{
		Mapper:           m,
		Background:       e.background,
		Template:         template,
		TemplateRotation: e.templateRotation,
		Parts:            e.model.Parts(),
		Screws:           e.model.Screws(),
	}
	switch {
	case e.pending != nil:
		s.Hover = &render.Hover{
			Cell:     e.pending.Cell,
			Type:     e.pending.Type,
			Rotation: e.pending.Angle,
			Color:    e.color,
			CanPlace: true,
		}
	case e.tool == ToolPart && e.hover != nil:
		s.Hover = &render.Hover{
			Cell:     *e.hover,
			Type:     e.part,
			Color:    e.color,
			CanPlace: e.model.CanPlace(e.hover.Col, e.hover.Row, e.part),
		}
	}
	return s
}
