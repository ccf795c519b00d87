package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"screwboard/internal/editor"
	"screwboard/internal/parts"
	"screwboard/internal/template"
)

func (m model) Init() tea.Cmd {
	return tea.SetWindowTitle("screwboard")
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.hints.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case templateLoadedMsg:
		m.templateLoaded(msg)

	case projectLoadedMsg:
		m.projectLoaded(msg)

	default:
		if m.mode == ModeFileInput || m.mode == ModeTextInput {
			m.input, cmd = m.input.Update(msg)
		}
	}
	m.refresh()
	return m, cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.help {
		m.handleHelpKey(msg)
		return nil
	}
	if msg.String() == "ctrl+c" && m.mode != ModeNormal {
		return tea.Quit
	}

	switch m.mode {
	case ModeAngle:
		m.handleAngleKey(msg)
	case ModeFileInput, ModeTextInput:
		return m.handleInputKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModePresets:
		m.handlePresetKey(msg)
	case ModeImageEditor:
		m.handleImageEditorKey(msg)
	case ModeShare:
		m.handleShareKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
	return nil
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	if m.handleCursorMove(msg) {
		return nil
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return nil
		}
		return tea.Quit
	case key.Matches(msg, m.keys.Place):
		m.click()
	case key.Matches(msg, m.keys.Circle):
		m.selectPart(parts.Circle)
	case key.Matches(msg, m.keys.Triangle):
		m.selectPart(parts.Triangle)
	case key.Matches(msg, m.keys.Square):
		m.selectPart(parts.Square)
	case key.Matches(msg, m.keys.Strip):
		m.selectPart(parts.Strip)
	case key.Matches(msg, m.keys.Screw):
		m.editor.SelectTool(editor.ToolScrew)
		m.successMessage = "Tool: screw"
	case key.Matches(msg, m.keys.Delete):
		m.editor.SelectTool(editor.ToolDelete)
		m.successMessage = "Tool: delete"
	case key.Matches(msg, m.keys.Palette):
		m.nextColor()
	case key.Matches(msg, m.keys.Color):
		m.startTextInput(TextOpColor, m.editor.Color())
	case key.Matches(msg, m.keys.Background):
		m.startTextInput(TextOpBackground, m.editor.Background())
	case key.Matches(msg, m.keys.Rotate):
		m.successMessage = fmt.Sprintf("Template rotated to %d°", m.editor.RotateTemplate())
	case key.Matches(msg, m.keys.Import):
		m.startFileInput(FileOpTemplate, "")
	case key.Matches(msg, m.keys.Drop):
		if m.template == nil {
			m.errorMessage = "No template to remove"
			return nil
		}
		m.template = nil
		m.templateName = ""
		m.successMessage = "Template removed"
	case key.Matches(msg, m.keys.Presets):
		m.mode = ModePresets
	case key.Matches(msg, m.keys.Pattern):
		m.startTextInput(TextOpPattern, "")
	case key.Matches(msg, m.keys.Save):
		m.startFileInput(FileOpSave, defaultFileName(FileOpSave, time.Now()))
	case key.Matches(msg, m.keys.Export):
		m.startFileInput(FileOpSavePNG, defaultFileName(FileOpSavePNG, time.Now()))
	case key.Matches(msg, m.keys.Print):
		m.startFileInput(FileOpPrint, defaultFileName(FileOpPrint, time.Now()))
	case key.Matches(msg, m.keys.Open):
		m.startFileInput(FileOpOpen, "")
	case key.Matches(msg, m.keys.Link):
		m.startTextInput(TextOpLink, "")
	case key.Matches(msg, m.keys.Share):
		m.share()
	case key.Matches(msg, m.keys.Clear):
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmClear
			return nil
		}
		m.clearBoard()
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	case key.Matches(msg, m.keys.Help):
		m.help = true
		m.helpScroll = 0
	case msg.Type == tea.KeyEscape:
		m.editor.SetHover(nil)
	}
	return nil
}

func (m *model) selectPart(t parts.Type) {
	m.editor.SelectPart(t)
	m.successMessage = fmt.Sprintf("Tool: %s", t)
}

// nextColor steps through the configured palette.
func (m *model) nextColor() {
	if len(m.config.Palette) == 0 {
		return
	}
	m.palette = (m.palette + 1) % len(m.config.Palette)
	c := m.config.Palette[m.palette]
	if err := m.editor.SetColor(c); err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = fmt.Sprintf("Colour: %s", c)
}

// click applies the active tool at the cursor.
func (m *model) click() {
	out := m.editor.Click(m.cursor)
	switch out.Action {
	case editor.Ignored:
		return
	case editor.Blocked:
		m.errorMessage = out.String()
	case editor.AwaitingAngle:
		m.mode = ModeAngle
		m.successMessage = out.String()
	default:
		m.successMessage = out.String()
	}
}

func (m *model) handleAngleKey(msg tea.KeyMsg) {
	switch s := msg.String(); s {
	case "esc", "q":
		m.editor.CancelPending()
		m.mode = ModeNormal
		m.errorMessage = ""
		m.successMessage = "Placement cancelled"
	case "enter", " ":
		m.confirmAngle()
	case "left", "h", "up", "k", "shift+tab":
		m.shiftAngle(-1)
	case "right", "l", "down", "j", "tab":
		m.shiftAngle(1)
	default:
		n, err := strconv.Atoi(s)
		choices := m.editor.AngleChoices()
		if err != nil || n < 1 || n > len(choices) {
			return
		}
		if err := m.editor.PreviewAngle(choices[n-1]); err != nil {
			m.errorMessage = err.Error()
		}
	}
}

// shiftAngle previews the next or previous allowed angle, wrapping around.
func (m *model) shiftAngle(step int) {
	p, ok := m.editor.Pending()
	if !ok {
		m.mode = ModeNormal
		return
	}
	choices := m.editor.AngleChoices()
	i := 0
	for j, deg := range choices {
		if deg == p.Angle {
			i = j
			break
		}
	}
	i = (i + step + len(choices)) % len(choices)
	if err := m.editor.PreviewAngle(choices[i]); err != nil {
		m.errorMessage = err.Error()
	}
}

// confirmAngle places the pending part at the previewed angle.
func (m *model) confirmAngle() {
	p, ok := m.editor.Pending()
	if !ok {
		m.mode = ModeNormal
		return
	}
	out, err := m.editor.ConfirmAngle(p.Angle)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.mode = ModeNormal
	if out.Action == editor.Blocked {
		m.errorMessage = out.String()
		return
	}
	m.errorMessage = ""
	m.successMessage = out.String()
}

func (m *model) startFileInput(op FileOperation, value string) {
	m.fileOp = op
	m.mode = ModeFileInput
	m.input = newInput(value)
	switch op {
	case FileOpOpen:
		m.input.Placeholder = "project.json"
		m.input.SetSuggestions(scanFiles(m.config.SaveDirectory, ".json"))
	case FileOpTemplate:
		m.input.Placeholder = "picture.png"
		m.input.SetSuggestions(scanFiles(m.config.SaveDirectory, ".png", ".jpg", ".jpeg", ".gif", ".webp"))
	}
}

func (m *model) startTextInput(op TextOperation, value string) {
	m.textOp = op
	m.mode = ModeTextInput
	m.input = newInput(value)
	switch op {
	case TextOpLink:
		m.input.Placeholder = m.config.ShareBaseURL + "?config=..."
	case TextOpPattern:
		m.input.Placeholder = "stars, flowers, diagonal..."
	case TextOpColor, TextOpBackground:
		m.input.Placeholder = "#RRGGBB"
		m.input.CharLimit = 7
	}
}

func newInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.ShowSuggestions = true
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.errorMessage = ""
		m.input.Blur()
		return nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.errorMessage = ""
		if m.mode == ModeFileInput {
			return m.submitFile(value)
		}
		m.submitText(value)
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// submitText handles the text typed for the current operation. Invalid input
// keeps the prompt open.
func (m *model) submitText(value string) {
	switch m.textOp {
	case TextOpLink:
		if value == "" {
			m.errorMessage = "Paste a share link"
			return
		}
		m.mode = ModeNormal
		m.openLink(value)
	case TextOpPattern:
		img, err := template.Generate(value, m.rng)
		if err != nil {
			m.errorMessage = "Describe the pattern first"
			return
		}
		m.mode = ModeNormal
		m.setTemplate(img, "pattern: "+value)
	case TextOpColor:
		if err := m.editor.SetColor(value); err != nil {
			m.errorMessage = fmt.Sprintf("%q is not a #RRGGBB colour", value)
			return
		}
		m.mode = ModeNormal
		m.successMessage = fmt.Sprintf("Colour: %s", m.editor.Color())
	case TextOpBackground:
		if err := m.editor.SetBackground(value); err != nil {
			m.errorMessage = fmt.Sprintf("%q is not a #RRGGBB colour", value)
			return
		}
		m.mode = ModeNormal
		m.successMessage = fmt.Sprintf("Background: %s", m.editor.Background())
	}
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmClear:
			m.clearBoard()
		case ConfirmOverwriteFile:
			m.writeFile(m.confirmPath)
			m.confirmPath = ""
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.confirmPath = ""
		m.successMessage = "Cancelled"
	}
	return nil
}

func (m *model) handlePresetKey(msg tea.KeyMsg) {
	presets := template.Presets()
	switch s := msg.String(); s {
	case "esc", "q":
		m.mode = ModeNormal
	case "up", "k":
		m.presetIndex = (m.presetIndex - 1 + len(presets)) % len(presets)
	case "down", "j":
		m.presetIndex = (m.presetIndex + 1) % len(presets)
	case "enter", " ":
		m.applyPreset(presets[m.presetIndex])
	default:
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(presets) {
			m.presetIndex = n - 1
			m.applyPreset(presets[n-1])
		}
	}
}

func (m *model) applyPreset(p template.Preset) {
	m.mode = ModeNormal
	m.setTemplate(p.Image(), "preset: "+string(p))
}

// handleImageEditorKey adjusts the imported picture. Offsets are board
// percentages; the board is shown turned a quarter, so screen left and right
// move it along the board's rows.
func (m *model) handleImageEditorKey(msg tea.KeyMsg) {
	o := &m.imageOpts
	switch msg.String() {
	case "esc", "q":
		m.closeImageEditor()
		m.successMessage = "Image discarded"
		return
	case "enter":
		img, err := template.Apply(m.source, m.imageOpts)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		name := m.sourceName
		m.closeImageEditor()
		m.setTemplate(img, name)
		return
	case "+", "=":
		o.Scale = clamp(o.Scale+scaleStep, template.MinScale, template.MaxScale)
	case "-", "_":
		o.Scale = clamp(o.Scale-scaleStep, template.MinScale, template.MaxScale)
	case "r":
		o.Rotation = (o.Rotation + 90) % 360
	case "left", "h":
		o.OffsetY = clamp(o.OffsetY+offsetStep, -template.MaxOffset, template.MaxOffset)
	case "right", "l":
		o.OffsetY = clamp(o.OffsetY-offsetStep, -template.MaxOffset, template.MaxOffset)
	case "up", "k":
		o.OffsetX = clamp(o.OffsetX-offsetStep, -template.MaxOffset, template.MaxOffset)
	case "down", "j":
		o.OffsetX = clamp(o.OffsetX+offsetStep, -template.MaxOffset, template.MaxOffset)
	case "c":
		o.OffsetX, o.OffsetY = 0, 0
	case "0":
		*o = template.DefaultOptions()
	default:
		return
	}
	m.updatePreview()
}

func (m *model) closeImageEditor() {
	m.mode = ModeNormal
	m.source = nil
	m.sourceName = ""
	m.preview = nil
}

func (m *model) handleShareKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "c":
		m.copyShareLink()
	case "w":
		m.saveShareQR()
	case "esc", "q", "enter":
		m.mode = ModeNormal
	}
}

func (m *model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		visibleHeight := m.height - 1
		if visibleHeight < 1 {
			visibleHeight = 1
		}
		maxScroll := len(m.helpLines()) - visibleHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
