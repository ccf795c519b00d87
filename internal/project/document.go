// Package project reads and writes boards: save files, share links, QR codes and
// print pages.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"screwboard/internal/editor"
	"screwboard/internal/layout"
	"screwboard/internal/placement"
	"screwboard/internal/render"
)

// ErrMalformed means a payload could not be read at all.
var ErrMalformed = errors.New("malformed project data")

// Document is the save-file layout. Field names are shared with share links.
type Document struct {
	Parts            []placement.Part  `json:"parts"`
	Screws           []placement.Screw `json:"screws"`
	CurrentColor     string            `json:"currentColor"`
	BackgroundColor  string            `json:"backgroundColor"`
	TemplateRotation int               `json:"templateRotation"`
}

// shareDocument is Document without the template rotation.
type shareDocument struct {
	Parts           []placement.Part  `json:"parts"`
	Screws          []placement.Screw `json:"screws"`
	CurrentColor    string            `json:"currentColor"`
	BackgroundColor string            `json:"backgroundColor"`
}

// NewDocument captures s.
func NewDocument(s editor.State) Document {
	d := Document{
		Parts:            s.Parts,
		Screws:           s.Screws,
		CurrentColor:     s.Color,
		BackgroundColor:  s.Background,
		TemplateRotation: s.TemplateRotation,
	}
	if d.Parts == nil {
		d.Parts = []placement.Part{}
	}
	if d.Screws == nil {
		d.Screws = []placement.Screw{}
	}
	return d
}

// Marshal encodes s as an indented save file.
func Marshal(s editor.State) ([]byte, error) {
	data, err := json.MarshalIndent(NewDocument(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return data, nil
}

// WriteFile saves s to path.
func WriteFile(path string, s editor.State) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project: %w", err)
	}
	return nil
}

// ProjectFileName is the default save-file name at now.
func ProjectFileName(now time.Time) string {
	return fmt.Sprintf("screwdriver_project_%d.json", now.UnixMilli())
}

// ImageFileName is the default PNG name at now.
func ImageFileName(now time.Time) string {
	return fmt.Sprintf("screwdriver_image_%d.png", now.UnixMilli())
}

// Loader applies saved payloads to an editor state, field by field. Fields that are
// missing or unusable keep their current value; individual parts and screws that
// fail validation are dropped.
type Loader struct {
	Board  layout.Board
	Logger *log.Logger
}

func (l Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// ReadFile loads a save file on top of base.
func (l Loader) ReadFile(path string, base editor.State) (editor.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read project: %w", err)
	}
	return l.Parse(data, base)
}

// Parse applies the JSON payload data on top of base. base is returned unchanged
// with ErrMalformed when data is not a JSON object.
func (l Loader) Parse(data []byte, base editor.State) (editor.State, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return base, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return base, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	out := base
	if raw, ok := present(fields, "parts"); ok {
		if list, ok := l.parts(raw); ok {
			out.Parts = list
		}
	}
	if raw, ok := present(fields, "screws"); ok {
		if list, ok := l.screws(raw); ok {
			out.Screws = list
		}
	}
	if raw, ok := present(fields, "currentColor"); ok {
		if c, ok := l.color("currentColor", raw); ok {
			out.Color = c
		}
	}
	if raw, ok := present(fields, "backgroundColor"); ok {
		if c, ok := l.color("backgroundColor", raw); ok {
			out.Background = c
		}
	}
	if raw, ok := present(fields, "templateRotation"); ok {
		var deg int
		if err := json.Unmarshal(raw, &deg); err != nil || !editor.ValidTemplateRotation(deg) {
			l.logger().Warn("ignoring template rotation", "value", string(raw))
		} else {
			out.TemplateRotation = deg
		}
	}
	return out, nil
}

// present returns a field unless it is missing or null.
func present(fields map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, false
	}
	return raw, true
}

func (l Loader) parts(raw json.RawMessage) ([]placement.Part, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger().Warn("ignoring parts", "error", err)
		return nil, false
	}
	check := placement.New(l.Board)
	list := make([]placement.Part, 0, len(items))
	for i, item := range items {
		var p placement.Part
		if err := json.Unmarshal(item, &p); err != nil {
			l.logger().Warn("dropping part", "index", i, "error", err)
			continue
		}
		switch {
		case !check.CanPlace(p.GridX, p.GridY, p.Type):
			l.logger().Warn("dropping part off the board", "index", i, "type", p.Type, "col", p.GridX, "row", p.GridY)
		case !p.Type.ValidRotation(p.Rotation):
			l.logger().Warn("dropping part with invalid rotation", "index", i, "type", p.Type, "rotation", p.Rotation)
		case !render.ValidHex(p.Color):
			l.logger().Warn("dropping part with invalid colour", "index", i, "color", p.Color)
		default:
			list = append(list, p)
		}
	}
	return list, true
}

func (l Loader) screws(raw json.RawMessage) ([]placement.Screw, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger().Warn("ignoring screws", "error", err)
		return nil, false
	}
	list := make([]placement.Screw, 0, len(items))
	for i, item := range items {
		var s placement.Screw
		if err := json.Unmarshal(item, &s); err != nil {
			l.logger().Warn("dropping screw", "index", i, "error", err)
			continue
		}
		switch {
		case !l.Board.InGrid(layout.Cell{Col: s.GridX, Row: s.GridY}):
			l.logger().Warn("dropping screw off the board", "index", i, "col", s.GridX, "row", s.GridY)
		case !render.ValidHex(s.Color):
			l.logger().Warn("dropping screw with invalid colour", "index", i, "color", s.Color)
		default:
			list = append(list, s)
		}
	}
	return list, true
}

func (l Loader) color(field string, raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || !render.ValidHex(s) {
		l.logger().Warn("ignoring colour", "field", field, "value", string(raw))
		return "", false
	}
	return s, true
}
