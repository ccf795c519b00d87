package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"screwboard/internal/layout"
)

// handleCursorMove steps the cursor across the board as it is shown, so left and
// right follow the screen rather than the grid's columns.
func (m *model) handleCursorMove(msg tea.KeyMsg) bool {
	dx, dy := 0.0, 0.0
	switch {
	case key.Matches(msg, m.keys.Left):
		dx = -1
	case key.Matches(msg, m.keys.Right):
		dx = 1
	case key.Matches(msg, m.keys.Up):
		dy = -1
	case key.Matches(msg, m.keys.Down):
		dy = 1
	default:
		return false
	}
	at := m.screen.CellCenterDisplay(m.cursor.Col, m.cursor.Row)
	for speed := m.getMoveSpeed(msg.String()); speed > 0; speed-- {
		c, ok := m.screen.PointerToCell(at.X+dx*float64(speed), at.Y+dy*float64(speed))
		if ok {
			m.setCursor(c)
			break
		}
	}
	return true
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

// setCursor moves the cursor and the hover preview with it.
func (m *model) setCursor(c layout.Cell) {
	m.cursor = c
	m.editor.SetHover(&c)
}

// mouseCell maps a terminal position to the board cell drawn there.
func (m *model) mouseCell(x, y int) (layout.Cell, bool) {
	if x < boardLeft || y < boardTop {
		return layout.Cell{}, false
	}
	dx := float64(x-boardLeft)/cellColumns + 0.25
	dy := float64(y-boardTop) + 0.5
	return m.screen.PointerToCell(dx, dy)
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	c, ok := m.mouseCell(msg.X, msg.Y)
	if !ok {
		if msg.Action == tea.MouseActionMotion {
			m.editor.SetHover(nil)
		}
		return nil
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mode == ModeNormal {
			m.setCursor(c)
		}
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		switch m.mode {
		case ModeNormal:
			m.setCursor(c)
			m.click()
		case ModeAngle:
			// Only a click on the pending cell confirms the previewed angle.
			if p, ok := m.editor.Pending(); ok && p.Cell == c {
				m.confirmAngle()
			}
		}
	}
	return nil
}
