package main

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"screwboard/internal/layout"
	"screwboard/internal/render"
)

var boardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#95A5A6"))

// renderBoard draws the board as terminal cells. Every display unit of the
// screen mapper is one cell, coloured by sampling the rendered image at the
// centre of the grid cell shown there, so parts, the template and the hover
// preview look as they do in an exported PNG.
func (m model) renderBoard() string {
	w := int(m.screen.CanvasWidth)
	h := int(m.screen.CanvasHeight)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			c, ok := m.screen.PointerToCell(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				b.WriteString(strings.Repeat(" ", cellColumns))
				continue
			}
			b.WriteString(m.renderCell(c))
		}
		lines[y] = b.String()
	}
	return boardStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderCell(c layout.Cell) string {
	bg := m.sample(c)
	glyph := "· "
	if _, ok := m.editor.PartAt(c); ok {
		glyph = "  "
	}
	if s, ok := m.editor.ScrewAt(c); ok {
		if sc, err := render.ParseHex(s.Color); err == nil {
			bg = sc
		}
		glyph = "()"
	}
	if c == m.cursor && (m.mode == ModeNormal || m.mode == ModeAngle) {
		glyph = "[]"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(render.Hex(bg))).
		Foreground(lipgloss.Color(contrast(bg))).
		Render(glyph)
}

// sample returns the frame colour at the centre of c.
func (m model) sample(c layout.Cell) color.RGBA {
	if m.frame == nil {
		bg, err := render.ParseHex(m.editor.Background())
		if err != nil {
			return render.DefaultBackground
		}
		return bg
	}
	p := m.pixels.CellCenterDisplay(c.Col, c.Row)
	return m.frame.RGBAAt(int(p.X), int(p.Y))
}

// contrast picks a readable glyph colour for text on bg.
func contrast(bg color.RGBA) string {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return "#1a1a1a"
	}
	return "#f7f7f7"
}

// refresh renders the scene again. The image editor previews its picture in
// place of the current template, unturned, as applying it will leave it.
func (m *model) refresh() {
	s := m.editor.Scene(m.pixels, m.template)
	if m.mode == ModeImageEditor && m.preview != nil {
		s.Template = m.preview
		s.TemplateRotation = 0
	}
	m.frame = render.Render(s)
}
