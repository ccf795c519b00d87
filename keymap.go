package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Place      key.Binding
	Circle     key.Binding
	Triangle   key.Binding
	Square     key.Binding
	Strip      key.Binding
	Screw      key.Binding
	Delete     key.Binding
	Palette    key.Binding
	Color      key.Binding
	Background key.Binding
	Rotate     key.Binding
	Import     key.Binding
	Drop       key.Binding
	Presets    key.Binding
	Pattern    key.Binding
	Save       key.Binding
	Export     key.Binding
	Open       key.Binding
	Link       key.Binding
	Share      key.Binding
	Print      key.Binding
	Clear      key.Binding
	Undo       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns the bindings shown under the board.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Place, k.Circle, k.Screw, k.Delete, k.Rotate, k.Undo, k.Help, k.Quit}
}

// FullHelp returns every binding, grouped.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Place},
		{k.Circle, k.Triangle, k.Square, k.Strip, k.Screw, k.Delete},
		{k.Palette, k.Color, k.Background},
		{k.Rotate, k.Import, k.Drop, k.Presets, k.Pattern},
		{k.Save, k.Export, k.Open, k.Link, k.Share, k.Print},
		{k.Clear, k.Undo, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("k", "up", "K", "shift+up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down", "J", "shift+down"), key.WithHelp("↓/j", "down")),
		Left:       key.NewBinding(key.WithKeys("h", "left", "H", "shift+left"), key.WithHelp("←/h", "left")),
		Right:      key.NewBinding(key.WithKeys("l", "right", "L", "shift+right"), key.WithHelp("→/l", "right")),
		Place:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "use tool")),
		Circle:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "circle")),
		Triangle:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "triangle")),
		Square:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "square")),
		Strip:      key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "strip")),
		Screw:      key.NewBinding(key.WithKeys("5", "b"), key.WithHelp("5/b", "screw")),
		Delete:     key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Palette:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next colour")),
		Color:      key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "custom colour")),
		Background: key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "background")),
		Rotate:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "turn template")),
		Import:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "import template")),
		Drop:       key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "remove template")),
		Presets:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preset template")),
		Pattern:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate pattern")),
		Save:       key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save project")),
		Export:     key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export PNG")),
		Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open project")),
		Link:       key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "open share link")),
		Share:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "share")),
		Print:      key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "print page")),
		Clear:      key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear board")),
		Undo:       key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
