package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"screwboard/internal/editor"
	"screwboard/internal/template"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	panelStyle    = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#95A5A6"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeShare {
		return m.shareView()
	}

	var result strings.Builder
	result.WriteString(m.header())
	result.WriteString("\n")
	result.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), panelStyle.Render(m.sidePanel())))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	if m.mode == ModeNormal && m.errorMessage == "" && m.successMessage == "" {
		result.WriteString("\n")
		result.WriteString(m.hints.View(m.keys))
	}
	return result.String()
}

func (m model) header() string {
	tool := m.editor.Tool().String()
	if m.editor.Tool() == editor.ToolPart {
		tool = m.editor.Part().String()
	}
	n, s := m.editor.Counts()
	return headerStyle.Render(fmt.Sprintf("screwboard | Tool: %s | Colour: %s | Parts: %d | Screws: %d",
		tool, m.editor.Color(), n, s))
}

func (m model) sidePanel() string {
	var lines []string
	switch m.mode {
	case ModeAngle:
		p, _ := m.editor.Pending()
		lines = append(lines, fmt.Sprintf("Angle for %s:", p.Type), "")
		for i, deg := range m.editor.AngleChoices() {
			line := fmt.Sprintf("%d  %3d°", i+1, deg)
			if deg == p.Angle {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", dimStyle.Render("←/→ choose, enter place"), dimStyle.Render("esc cancel"))

	case ModePresets:
		lines = append(lines, "Preset templates:", "")
		for i, p := range template.Presets() {
			line := fmt.Sprintf("%d  %s", i+1, p)
			if i == m.presetIndex {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			lines = append(lines, line)
		}
		lines = append(lines, "", dimStyle.Render("↑/↓ choose, enter apply"), dimStyle.Render("esc cancel"))

	case ModeImageEditor:
		o := m.imageOpts
		lines = append(lines,
			fmt.Sprintf("Image: %s", m.sourceName),
			"",
			fmt.Sprintf("Scale:    %d%%", o.Scale),
			fmt.Sprintf("Rotation: %d°", o.Rotation),
			fmt.Sprintf("Offset:   %+d%% / %+d%%", o.OffsetX, o.OffsetY),
			"",
			dimStyle.Render("+/- scale, r rotate"),
			dimStyle.Render("arrows move, c centre"),
			dimStyle.Render("0 reset, enter apply"),
			dimStyle.Render("esc discard"),
		)

	default:
		lines = append(lines, "Palette:")
		var swatches strings.Builder
		for i, c := range m.config.Palette {
			glyph := "  "
			if i == m.palette && strings.EqualFold(c, m.editor.Color()) {
				glyph = "◆ "
			}
			swatches.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render(glyph))
		}
		lines = append(lines, swatches.String(), "")
		lines = append(lines, fmt.Sprintf("Background: %s", m.editor.Background()))
		if m.template != nil {
			lines = append(lines, fmt.Sprintf("Template: %s", m.templateName))
		} else {
			lines = append(lines, "Template: none")
		}
		lines = append(lines, fmt.Sprintf("Template rotation: %d°", m.editor.TemplateRotation()))
		lines = append(lines, fmt.Sprintf("Undo steps: %d", m.editor.HistoryLen()))
		lines = append(lines, "", fmt.Sprintf("Cursor: (%d,%d)", m.cursor.Col, m.cursor.Row))
		if p, ok := m.editor.PartAt(m.cursor); ok {
			lines = append(lines, fmt.Sprintf("Under cursor: %s %s", p.Type, p.Color))
		}
	}
	return strings.Join(lines, "\n")
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeFileInput:
		var opStr string
		switch m.fileOp {
		case FileOpSave:
			opStr = "Save"
		case FileOpSavePNG:
			opStr = "Export PNG"
		case FileOpPrint:
			opStr = "Print page"
		case FileOpOpen:
			opStr = "Open"
		case FileOpTemplate:
			opStr = "Template image"
		}
		status = fmt.Sprintf("Mode: FILE | %s filename: %s | Tab=complete, Enter=confirm, Esc=cancel", opStr, m.input.View())
	case ModeTextInput:
		var opStr string
		switch m.textOp {
		case TextOpLink:
			opStr = "Share link"
		case TextOpPattern:
			opStr = "Pattern"
		case TextOpColor:
			opStr = "Colour"
		case TextOpBackground:
			opStr = "Background"
		}
		status = fmt.Sprintf("Mode: TEXT | %s: %s | Enter=confirm, Esc=cancel", opStr, m.input.View())
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmClear:
			message = "Clear the board? (y/n)"
		case ConfirmQuit:
			message = "Quit screwboard? (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.confirmPath)
		}
		status = fmt.Sprintf("Mode: CONFIRM | %s", message)
	default:
		status = fmt.Sprintf("Mode: %s", m.modeString())
		if m.successMessage != "" {
			status += fmt.Sprintf(" | %s", m.successMessage)
		}
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.mode == ModeNormal && m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) shareView() string {
	var result strings.Builder
	result.WriteString(headerStyle.Render("Share this board"))
	result.WriteString("\n\n")
	if m.shareQR != "" {
		result.WriteString(m.shareQR)
		result.WriteString("\n")
	}
	result.WriteString(m.shareLink)
	result.WriteString("\n\n")
	status := "Mode: SHARE | c=copy link, w=save QR PNG, Esc=close"
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	}
	result.WriteString(status)
	return result.String()
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeAngle:
		return "ANGLE"
	case ModeFileInput:
		return "FILE"
	case ModeTextInput:
		return "TEXT"
	case ModeConfirm:
		return "CONFIRM"
	case ModePresets:
		return "PRESETS"
	case ModeImageEditor:
		return "IMAGE"
	case ModeShare:
		return "SHARE"
	default:
		return "UNKNOWN"
	}
}

var helpSections = []string{"Navigation:", "Parts and tools:", "Colour:", "Template:", "Files and sharing:", "General:"}

// helpLines lists every key binding under its section, followed by the keys of
// the modal screens.
func (m model) helpLines() []string {
	lines := []string{
		"Screwboard Help",
		"===============",
		"",
	}
	for i, group := range m.keys.FullHelp() {
		title := helpSections[i]
		lines = append(lines, title, strings.Repeat("-", len(title)))
		for _, b := range group {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-16s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines,
		"Angle choice:",
		"-------------",
		"  ←/→ or 1-8       Preview another angle",
		"  Enter            Place the part at the previewed angle",
		"  click            Click the same cell again to place it",
		"  Esc              Cancel, nothing is placed",
		"",
		"Image editor:",
		"-------------",
		"  +/-              Scale 50% to 200%",
		"  r                Rotate the picture a quarter turn",
		"  arrows           Move the picture across the board",
		"  c                Centre the picture",
		"  0                Reset scale, rotation and offset",
		"  Enter            Use the picture as the template",
		"  Esc              Discard the picture",
		"",
		"Share view:",
		"-----------",
		"  c                Copy the link to the clipboard",
		"  w                Save the QR code as PNG",
		"",
		"Shift with a direction moves the cursor two cells.",
		"The template is not part of saved projects or share links.",
	)
	return lines
}

func (m model) helpView() string {
	helpLines := m.helpLines()

	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine >= len(helpLines) {
		startLine = len(helpLines) - visibleHeight
		if startLine < 0 {
			startLine = 0
		}
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
