package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeAngle
	ModeFileInput
	ModeTextInput
	ModeConfirm
	ModePresets
	ModeImageEditor
	ModeShare
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
	FileOpTemplate
	FileOpPrint
)

type TextOperation int

const (
	TextOpLink TextOperation = iota
	TextOpPattern
	TextOpColor
	TextOpBackground
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
	ConfirmOverwriteFile
)

// Terminal board layout: one display unit is two columns wide, and the board sits
// below the header line inside a one-cell border.
const (
	cellColumns = 2
	boardTop    = 2
	boardLeft   = 1
)

const (
	scaleStep  = 10
	offsetStep = 5
)
