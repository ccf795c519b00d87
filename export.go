package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"screwboard/internal/editor"
	"screwboard/internal/project"
	"screwboard/internal/render"
	"screwboard/internal/template"
)

// exportScene is the board as saved: no hover preview, legend as configured.
func (m *model) exportScene() render.Scene {
	s := m.editor.Scene(m.pixels, m.template)
	s.Hover = nil
	s.Legend = m.config.Legend
	return s
}

// writeFile performs the current file operation on path.
func (m *model) writeFile(path string) {
	var err error
	switch m.fileOp {
	case FileOpSave:
		err = project.WriteFile(path, m.editor.State())
	case FileOpSavePNG:
		err = render.SavePNG(path, m.exportScene())
	case FileOpPrint:
		err = m.writePrintPage(path)
	default:
		return
	}
	m.mode = ModeNormal
	if err != nil {
		m.logger.Error("export failed", "path", path, "error", err)
		m.errorMessage = err.Error()
		return
	}
	m.logger.Info("exported", "path", path)
	m.successMessage = fmt.Sprintf("Saved %s", path)
}

func (m *model) writePrintPage(path string) error {
	var png bytes.Buffer
	if err := render.EncodePNG(&png, m.exportScene()); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	page, err := project.PrintPage(png.Bytes())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write print page: %w", err)
	}
	return nil
}

// submitFile handles the file name typed for the current operation.
func (m *model) submitFile(name string) tea.Cmd {
	if name == "" {
		m.errorMessage = "Enter a file name"
		return nil
	}
	switch m.fileOp {
	case FileOpOpen:
		m.mode = ModeNormal
		return openProjectCmd(m.loader, m.config.resolvePath(name), m.editor.State())
	case FileOpTemplate:
		m.mode = ModeNormal
		return loadTemplateCmd(m.config.resolvePath(name))
	}

	ext := map[FileOperation]string{FileOpSave: ".json", FileOpSavePNG: ".png", FileOpPrint: ".html"}[m.fileOp]
	path := m.config.GetSavePath(withExt(name, ext))
	if m.config.Confirmations && fileExists(path) {
		m.mode = ModeConfirm
		m.confirmAction = ConfirmOverwriteFile
		m.confirmPath = path
		return nil
	}
	m.writeFile(path)
	return nil
}

// defaultFileName is the name offered for a new file.
func defaultFileName(op FileOperation, now time.Time) string {
	switch op {
	case FileOpSave:
		return project.ProjectFileName(now)
	case FileOpSavePNG:
		return project.ImageFileName(now)
	case FileOpPrint:
		return fmt.Sprintf("screwdriver_print_%d.html", now.UnixMilli())
	default:
		return ""
	}
}

func openProjectCmd(loader project.Loader, path string, base editor.State) tea.Cmd {
	return func() tea.Msg {
		state, err := loader.ReadFile(path, base)
		return projectLoadedMsg{source: filepath.Base(path), state: state, err: err}
	}
}

func loadTemplateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		img, err := template.Import(path)
		return templateLoadedMsg{name: filepath.Base(path), img: img, err: err}
	}
}

func (m *model) projectLoaded(msg projectLoadedMsg) {
	if msg.err != nil {
		m.logger.Error("failed to load project", "source", msg.source, "error", msg.err)
		if errors.Is(msg.err, project.ErrMalformed) {
			m.errorMessage = fmt.Sprintf("%s is not a screwboard project", msg.source)
			return
		}
		m.errorMessage = msg.err.Error()
		return
	}
	m.editor.Load(msg.state)
	parts, screws := m.editor.Counts()
	m.successMessage = fmt.Sprintf("Loaded %s: %d part(s), %d screw(s)", msg.source, parts, screws)
}

func (m *model) templateLoaded(msg templateLoadedMsg) {
	if msg.err != nil {
		m.logger.Warn("template import failed", "file", msg.name, "error", msg.err)
		switch {
		case errors.Is(msg.err, template.ErrNotImage):
			m.errorMessage = fmt.Sprintf("%s is not an image file (PNG, JPEG, GIF or WebP)", msg.name)
		case errors.Is(msg.err, template.ErrDecode):
			m.errorMessage = fmt.Sprintf("Could not read image %s", msg.name)
		default:
			m.errorMessage = msg.err.Error()
		}
		return
	}
	m.source = msg.img
	m.sourceName = msg.name
	m.imageOpts = template.DefaultOptions()
	m.mode = ModeImageEditor
	m.updatePreview()
}

// updatePreview applies the image editor settings to the picture being edited.
func (m *model) updatePreview() {
	img, err := template.Apply(m.source, m.imageOpts)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.preview = img
}

// setTemplate installs img as the board template, unturned.
func (m *model) setTemplate(img image.Image, name string) {
	m.template = img
	m.templateName = name
	m.editor.SetTemplateRotation(0)
	m.successMessage = fmt.Sprintf("Template: %s", name)
}

// openLink applies a pasted share link.
func (m *model) openLink(link string) {
	state, err := m.loader.ParseLink(link, m.editor.State())
	if err != nil {
		m.logger.Error("failed to load share link", "error", err)
		if errors.Is(err, project.ErrNoConfig) {
			m.errorMessage = "That link has no board in it"
			return
		}
		m.errorMessage = "Could not read the share link"
		return
	}
	m.editor.Load(state)
	parts, screws := m.editor.Counts()
	m.successMessage = fmt.Sprintf("Loaded shared board: %d part(s), %d screw(s)", parts, screws)
}

// share builds the link and QR code for the share view.
func (m *model) share() {
	link, err := project.ShareLink(m.config.ShareBaseURL, m.editor.State())
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	qr, err := project.QRCodeText(link)
	if err != nil {
		m.logger.Warn("no QR code for share link", "error", err)
		qr = ""
	}
	m.shareLink = link
	m.shareQR = qr
	m.mode = ModeShare
}

func (m *model) copyShareLink() {
	if err := copyToClipboard(m.shareLink); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.errorMessage = "Could not copy, select the link above"
		return
	}
	m.successMessage = "Link copied to the clipboard"
}

func (m *model) saveShareQR() {
	png, err := project.QRCodePNG(m.shareLink)
	if err == nil {
		path := m.config.GetSavePath(fmt.Sprintf("screwdriver_qr_%d.png", time.Now().UnixMilli()))
		if err = os.WriteFile(path, png, 0o644); err == nil {
			m.successMessage = fmt.Sprintf("Saved %s", path)
			return
		}
	}
	m.errorMessage = err.Error()
}
