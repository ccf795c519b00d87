package main

import (
	"image"
	"math/rand/v2"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"

	"screwboard/internal/editor"
	"screwboard/internal/layout"
	"screwboard/internal/project"
	"screwboard/internal/template"
)

type model struct {
	width      int
	height     int
	cursor     layout.Cell
	mode       Mode
	help       bool
	helpScroll int

	editor *editor.Editor
	loader project.Loader
	config *Config
	logger *log.Logger
	keys   keyMap
	hints  help.Model
	rng    *rand.Rand

	// screen maps terminal cells, pixels maps the exported image. frame is the
	// last render of the board, sampled for the terminal view.
	screen layout.Mapper
	pixels layout.Mapper
	frame  *image.RGBA

	template     image.Image
	templateName string

	// Image editor state for a picture that is not yet the template.
	source     image.Image
	sourceName string
	imageOpts  template.Options
	preview    image.Image

	input         textinput.Model
	fileOp        FileOperation
	textOp        TextOperation
	confirmAction ConfirmAction
	confirmPath   string
	presetIndex   int
	palette       int

	shareLink string
	shareQR   string

	errorMessage   string
	successMessage string
}

// templateLoadedMsg carries a decoded picture for the image editor.
type templateLoadedMsg struct {
	name string
	img  image.Image
	err  error
}

// projectLoadedMsg carries a parsed save file or share link.
type projectLoadedMsg struct {
	source string
	state  editor.State
	err    error
}
