package editor

import "screwboard/internal/placement"

// State is the part of an editor that is saved and shared. The template bitmap is
// not part of it.
type State struct {
	Parts            []placement.Part
	Screws           []placement.Screw
	Color            string
	Background       string
	TemplateRotation int
}

// State returns a deep copy of the saved fields.
func (e *Editor) State() State {
	snap := e.model.Snapshot()
	return State{
		Parts:            snap.Parts,
		Screws:           snap.Screws,
		Color:            e.color,
		Background:       e.background,
		TemplateRotation: e.templateRotation,
	}
}

// Load replaces the board and settings with s. Parts and screws are taken as given;
// callers validate them first. The previous board can be restored with Undo.
// Invalid colours or rotations leave the current value in place.
func (e *Editor) Load(s State) {
	e.pending = nil
	e.history.Push(e.model.Snapshot())
	e.model.Restore(placement.Snapshot{Parts: s.Parts, Screws: s.Screws})
	if err := e.SetColor(s.Color); err != nil && s.Color != "" {
		e.logger.Warn("ignoring colour", "value", s.Color, "error", err)
	}
	if err := e.SetBackground(s.Background); err != nil && s.Background != "" {
		e.logger.Warn("ignoring background colour", "value", s.Background, "error", err)
	}
	if ValidTemplateRotation(s.TemplateRotation) {
		e.templateRotation = s.TemplateRotation
	}
	n, m := e.model.Counts()
	e.logger.Info("board loaded", "parts", n, "screws", m)
}
