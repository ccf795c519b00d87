package main

import "fmt"

func (m *model) undo() {
	if !m.editor.Undo() {
		m.errorMessage = "Nothing to undo"
		return
	}
	m.mode = ModeNormal
	left := m.editor.HistoryLen()
	if left == 0 {
		m.successMessage = "Undone, history is empty"
		return
	}
	m.successMessage = fmt.Sprintf("Undone, %d more step(s) available", left)
}

func (m *model) clearBoard() {
	m.editor.Clear()
	m.successMessage = "Board cleared (u to undo)"
}
