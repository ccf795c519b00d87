package main

import (
	"image"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"screwboard/internal/editor"
	"screwboard/internal/layout"
	"screwboard/internal/parts"
	"screwboard/internal/placement"
	"screwboard/internal/project"
)

func testModel(t *testing.T, confirmations bool) model {
	t.Helper()
	config, err := parseConfig(defaultConfigYAML, nil)
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	config.normalize()
	config.Confirmations = confirmations
	config.SaveDirectory = t.TempDir()
	return initialModel(config, log.New(io.Discard), 1)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds msgs through Update, running any command it returns.
func press(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, cmd := m.Update(msg)
		m = next.(model)
		if cmd == nil {
			continue
		}
		switch out := cmd().(type) {
		case templateLoadedMsg, projectLoadedMsg:
			next, _ = m.Update(out)
			m = next.(model)
		}
	}
	return m
}

func TestPlaceCircle(t *testing.T) {
	m := testModel(t, false)
	m.setCursor(layout.Cell{Col: 2, Row: 3})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	got := m.editor.Parts()
	if len(got) != 1 {
		t.Fatalf("Parts() = %d, expected 1", len(got))
	}
	if got[0].Type != parts.Circle || got[0].GridX != 2 || got[0].GridY != 3 {
		t.Errorf("placed %+v, expected a circle at (2,3)", got[0])
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %s, expected NORMAL", m.modeString())
	}
	if m.frame == nil {
		t.Error("frame was not rendered")
	}
}

func TestBlockedPlacementReportsError(t *testing.T) {
	m := testModel(t, false)
	m.setCursor(layout.Cell{Col: 11, Row: 18})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if n, _ := m.editor.Counts(); n != 0 {
		t.Errorf("Counts() parts = %d, expected 0", n)
	}
	if m.errorMessage == "" {
		t.Error("expected an error message for a part that does not fit")
	}
}

func TestAngleChoice(t *testing.T) {
	tests := []struct {
		name     string
		part     string
		keys     []tea.Msg
		placed   bool
		rotation int
	}{
		{
			name:     "triangle next angle",
			part:     "2",
			keys:     []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter}},
			placed:   true,
			rotation: 90,
		},
		{
			name:     "triangle wraps backwards",
			part:     "2",
			keys:     []tea.Msg{tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyEnter}},
			placed:   true,
			rotation: 270,
		},
		{
			name:     "strip by number",
			part:     "4",
			keys:     []tea.Msg{runes("3"), tea.KeyMsg{Type: tea.KeyEnter}},
			placed:   true,
			rotation: 90,
		},
		{
			name: "escape places nothing",
			part: "4",
			keys: []tea.Msg{tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEscape}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, false)
			m.setCursor(layout.Cell{Col: 4, Row: 6})
			m = press(t, m, runes(tt.part), tea.KeyMsg{Type: tea.KeyEnter})
			if m.mode != ModeAngle {
				t.Fatalf("mode = %s, expected ANGLE", m.modeString())
			}
			m = press(t, m, tt.keys...)

			if m.mode != ModeNormal {
				t.Errorf("mode = %s, expected NORMAL", m.modeString())
			}
			got := m.editor.Parts()
			if !tt.placed {
				if len(got) != 0 || m.editor.HistoryLen() != 0 {
					t.Errorf("parts = %d, history = %d, expected nothing", len(got), m.editor.HistoryLen())
				}
				return
			}
			if len(got) != 1 || got[0].Rotation != tt.rotation {
				t.Fatalf("parts = %+v, expected one at %d°", got, tt.rotation)
			}
		})
	}
}

func TestToolKeysAndUndo(t *testing.T) {
	m := testModel(t, false)
	m.setCursor(layout.Cell{Col: 0, Row: 0})
	m = press(t, m, runes("3"), tea.KeyMsg{Type: tea.KeyEnter}, runes("b"), tea.KeyMsg{Type: tea.KeyEnter})

	n, s := m.editor.Counts()
	if n != 1 || s != 1 {
		t.Fatalf("Counts() = %d, %d, expected 1, 1", n, s)
	}
	if screw := m.editor.Screws()[0]; screw.PartID == nil {
		t.Error("screw over a part should be linked to it")
	}

	m = press(t, m, runes("d"), tea.KeyMsg{Type: tea.KeyEnter})
	if n, s = m.editor.Counts(); n != 1 || s != 0 {
		t.Errorf("after delete Counts() = %d, %d, expected the screw gone first", n, s)
	}

	m = press(t, m, runes("u"), runes("u"))
	if n, s = m.editor.Counts(); n != 1 || s != 0 {
		t.Errorf("after two undos Counts() = %d, %d, expected 1, 0", n, s)
	}
}

func TestPaletteCycles(t *testing.T) {
	m := testModel(t, false)
	first := m.editor.Color()
	m = press(t, m, runes("c"))
	if m.editor.Color() == first {
		t.Errorf("Color() = %s, expected the next palette colour", m.editor.Color())
	}
	for range m.config.Palette[1:] {
		m = press(t, m, runes("c"))
	}
	if m.editor.Color() != first {
		t.Errorf("Color() = %s, expected to wrap back to %s", m.editor.Color(), first)
	}
}

func TestCustomColorInput(t *testing.T) {
	m := testModel(t, false)
	m = press(t, m, runes("C"))
	if m.mode != ModeTextInput {
		t.Fatalf("mode = %s, expected TEXT", m.modeString())
	}

	m.input.SetValue("nope")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeTextInput || m.errorMessage == "" {
		t.Errorf("invalid colour should keep the prompt open with an error")
	}

	m.input.SetValue("#112233")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || m.editor.Color() != "#112233" {
		t.Errorf("mode = %s, Color() = %s, expected NORMAL and #112233", m.modeString(), m.editor.Color())
	}
}

func TestConfirmations(t *testing.T) {
	m := testModel(t, true)
	m.setCursor(layout.Cell{Col: 1, Row: 1})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("X"))
	if m.mode != ModeConfirm || m.confirmAction != ConfirmClear {
		t.Fatalf("mode = %s, expected a clear confirmation", m.modeString())
	}
	m = press(t, m, runes("n"))
	if n, _ := m.editor.Counts(); n != 1 {
		t.Errorf("declined clear removed parts")
	}
	m = press(t, m, runes("X"), runes("y"))
	if n, _ := m.editor.Counts(); n != 0 {
		t.Errorf("confirmed clear left %d parts", n)
	}

	next, cmd := m.Update(runes("q"))
	m = next.(model)
	if cmd != nil || m.mode != ModeConfirm {
		t.Errorf("q should ask before quitting")
	}
	if _, cmd = m.Update(runes("y")); cmd == nil {
		t.Error("confirmed quit returned no command")
	}
}

func TestSaveAndOpen(t *testing.T) {
	m := testModel(t, true)
	m.setCursor(layout.Cell{Col: 3, Row: 3})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.startFileInput(FileOpSave, "board")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	path := filepath.Join(m.config.SaveDirectory, "board.json")
	if !fileExists(path) {
		t.Fatalf("%s was not written", path)
	}

	m.startFileInput(FileOpSave, "board")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeConfirm || m.confirmAction != ConfirmOverwriteFile || m.confirmPath != path {
		t.Fatalf("saving over %s should ask first", path)
	}
	m = press(t, m, runes("y"))
	if m.mode != ModeNormal || m.errorMessage != "" {
		t.Errorf("overwrite: mode = %s, error = %q", m.modeString(), m.errorMessage)
	}

	m = press(t, m, runes("X"), runes("y"))
	m.startFileInput(FileOpOpen, "board.json")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if n, _ := m.editor.Counts(); n != 1 {
		t.Errorf("opened board has %d parts, expected 1", n)
	}
}

func TestOpenRejectsNonProject(t *testing.T) {
	m := testModel(t, false)
	path := filepath.Join(m.config.SaveDirectory, "notes.json")
	if err := writeTestFile(path, "not json"); err != nil {
		t.Fatal(err)
	}
	m.setCursor(layout.Cell{Col: 3, Row: 3})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.startFileInput(FileOpOpen, path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.errorMessage == "" {
		t.Error("expected an error for a malformed project")
	}
	if n, _ := m.editor.Counts(); n != 1 {
		t.Errorf("failed load changed the board: %d parts", n)
	}
}

func TestOpenLink(t *testing.T) {
	m := testModel(t, false)
	state := editor.State{
		Parts:      []placement.Part{{Type: parts.Strip, Color: "#FF6B6B", GridX: 5, GridY: 5, Rotation: 45, ID: 7}},
		Color:      "#2ECC71",
		Background: "#FFFFFF",
	}
	link, err := project.ShareLink(m.config.ShareBaseURL, state)
	if err != nil {
		t.Fatal(err)
	}
	m.openLink(link)
	if got := m.editor.Parts(); len(got) != 1 || got[0].Rotation != 45 {
		t.Errorf("Parts() = %+v, expected the shared strip", got)
	}
	if m.editor.Background() != "#ffffff" {
		t.Errorf("Background() = %s, expected #ffffff", m.editor.Background())
	}

	m.openLink("https://screwboard.app/?other=1")
	if m.errorMessage == "" {
		t.Error("expected an error for a link without a board")
	}
}

func TestImageEditor(t *testing.T) {
	m := testModel(t, false)
	m = press(t, m, templateLoadedMsg{name: "photo.png", img: image.NewRGBA(image.Rect(0, 0, 10, 10))})
	if m.mode != ModeImageEditor || m.preview == nil {
		t.Fatalf("mode = %s, expected IMAGE with a preview", m.modeString())
	}

	m = press(t, m,
		runes("+"), runes("+"),
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeyDown},
		runes("r"),
	)
	o := m.imageOpts
	if o.Scale != 120 || o.OffsetY != 5 || o.OffsetX != 5 || o.Rotation != 90 {
		t.Errorf("imageOpts = %+v", o)
	}

	for range 20 {
		m = press(t, m, runes("+"))
	}
	if m.imageOpts.Scale != 200 {
		t.Errorf("Scale = %d, expected clamp at 200", m.imageOpts.Scale)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || m.template == nil || m.templateName != "photo.png" {
		t.Errorf("apply: mode = %s, template name = %q", m.modeString(), m.templateName)
	}
	if m.editor.TemplateRotation() != 0 {
		t.Errorf("TemplateRotation() = %d, expected 0 after applying", m.editor.TemplateRotation())
	}
}

func TestImportErrors(t *testing.T) {
	m := testModel(t, false)
	path := filepath.Join(m.config.SaveDirectory, "readme.png")
	if err := writeTestFile(path, "plain text"); err != nil {
		t.Fatal(err)
	}
	m.startFileInput(FileOpTemplate, path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || m.errorMessage == "" || m.source != nil {
		t.Errorf("mode = %s, error = %q, expected a rejected import", m.modeString(), m.errorMessage)
	}
}

func TestPresetPicker(t *testing.T) {
	m := testModel(t, false)
	m = press(t, m, runes("p"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeNormal || m.templateName != "preset: diagonal" {
		t.Errorf("templateName = %q, expected the second preset", m.templateName)
	}
	m = press(t, m, runes("T"))
	if m.template != nil {
		t.Error("T should remove the template")
	}
}

func TestTemplateRotationKey(t *testing.T) {
	m := testModel(t, false)
	m.setCursor(layout.Cell{Col: 0, Row: 0})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter}, runes("r"))
	if m.editor.TemplateRotation() != 180 {
		t.Errorf("TemplateRotation() = %d, expected 180", m.editor.TemplateRotation())
	}
	if got := m.editor.Parts()[0].Rotation; got != 0 {
		t.Errorf("part rotation = %d, expected it untouched", got)
	}
}

func TestMouseCellMatchesDrawnBoard(t *testing.T) {
	m := testModel(t, false)
	w, h := int(m.screen.CanvasWidth), int(m.screen.CanvasHeight)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			drawn, ok := m.screen.PointerToCell(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				t.Fatalf("unit (%d,%d) is off the board", x, y)
			}
			for col := 0; col < cellColumns; col++ {
				got, ok := m.mouseCell(boardLeft+x*cellColumns+col, boardTop+y)
				if !ok || got != drawn {
					t.Errorf("mouseCell(%d,%d) = %v, expected %v", boardLeft+x*cellColumns+col, boardTop+y, got, drawn)
				}
			}
		}
	}
	if _, ok := m.mouseCell(0, 0); ok {
		t.Error("the header should not map to a cell")
	}
}

func TestCursorFollowsScreen(t *testing.T) {
	tests := []struct {
		name   string
		key    tea.KeyMsg
		dx, dy float64
	}{
		{"right", tea.KeyMsg{Type: tea.KeyRight}, 1, 0},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, -1, 0},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, 0, -1},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, 0, 1},
		{"fast right", runes("L"), 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(t, false)
			start := layout.Cell{Col: 6, Row: 9}
			m.setCursor(start)
			m = press(t, m, tt.key)

			before := m.screen.CellCenterDisplay(start.Col, start.Row)
			after := m.screen.CellCenterDisplay(m.cursor.Col, m.cursor.Row)
			if after.X-before.X != tt.dx || after.Y-before.Y != tt.dy {
				t.Errorf("cursor moved by (%v,%v), expected (%v,%v)", after.X-before.X, after.Y-before.Y, tt.dx, tt.dy)
			}
			if hover, ok := m.editor.Hover(); !ok || hover != m.cursor {
				t.Errorf("Hover() = %v, %v, expected the cursor cell", hover, ok)
			}
		})
	}
}

func TestCursorStopsAtEdge(t *testing.T) {
	m := testModel(t, false)
	// Cell (0,0) is drawn in the top-right corner.
	m.setCursor(layout.Cell{Col: 0, Row: 0})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != (layout.Cell{Col: 0, Row: 0}) {
		t.Errorf("cursor = %v, expected it to stay on the corner", m.cursor)
	}
}

func TestViewModes(t *testing.T) {
	m := testModel(t, false)
	if v := m.View(); v == "" {
		t.Fatal("View() is empty")
	}
	m = press(t, m, runes("?"))
	if !m.help {
		t.Fatal("? should open help")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.help {
		t.Error("esc should close help")
	}
	m = press(t, m, runes("y"))
	if m.mode != ModeShare || m.shareLink == "" {
		t.Errorf("mode = %s, expected SHARE with a link", m.modeString())
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.mode != ModeNormal {
		t.Errorf("mode = %s, expected NORMAL", m.modeString())
	}
}

// terminalCell returns a terminal position that maps to c.
func terminalCell(t *testing.T, m model, c layout.Cell) (int, int) {
	t.Helper()
	w, h := int(m.screen.CanvasWidth), int(m.screen.CanvasHeight)
	for y := boardTop; y < boardTop+h; y++ {
		for x := boardLeft; x < boardLeft+w*cellColumns; x++ {
			if got, ok := m.mouseCell(x, y); ok && got == c {
				return x, y
			}
		}
	}
	t.Fatalf("no terminal position maps to %v", c)
	return 0, 0
}

func TestAngleClickOnPendingCell(t *testing.T) {
	m := testModel(t, false)
	pending := layout.Cell{Col: 4, Row: 6}
	m.setCursor(pending)
	m = press(t, m, runes("4"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeAngle {
		t.Fatalf("mode = %s, expected ANGLE", m.modeString())
	}

	x, y := terminalCell(t, m, layout.Cell{Col: 8, Row: 10})
	m = press(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.mode != ModeAngle {
		t.Errorf("mode = %s after a click elsewhere, expected ANGLE", m.modeString())
	}
	if n, _ := m.editor.Counts(); n != 0 {
		t.Fatalf("Counts() parts = %d after a click elsewhere, expected 0", n)
	}

	x, y = terminalCell(t, m, pending)
	m = press(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.mode != ModeNormal {
		t.Errorf("mode = %s, expected NORMAL", m.modeString())
	}
	got := m.editor.Parts()
	if len(got) != 1 || got[0].Type != parts.Strip || got[0].GridX != pending.Col || got[0].GridY != pending.Row {
		t.Errorf("parts = %+v, expected one strip at %v", got, pending)
	}
}
