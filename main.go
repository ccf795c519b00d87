// screwboard is a terminal editor for screwdriver constructor boards: circles,
// triangles, squares and strips screwed onto a 12×19 grid.
//
// Usage:
//
//	screwboard [project.json | share link]  - Edit a board
//	screwboard render <board> -o board.png   - Render a board to PNG
//	screwboard share <board>                 - Print a share link and QR code
//	screwboard decode <link>                 - Turn a share link into a project file
//	screwboard print <board> -o page.html    - Write a printable page
//	screwboard presets [name]                - List or draw template patterns
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.screwboard/config.yaml)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"screwboard/internal/editor"
	"screwboard/internal/geometry"
	"screwboard/internal/layout"
	"screwboard/internal/project"
	"screwboard/internal/template"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string

	flagTemplate string
	flagSeed     uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "screwboard [project.json | share link]",
	Short: "Screwboard - build screwdriver constructor boards in your terminal",
	Long: `Screwboard lays out constructor parts and screws on a 12×19 board,
optionally over a template picture, and exports PNG images, project files,
print pages and share links.

Examples:
  screwboard
  screwboard my_board.json
  screwboard --template photo.png
  screwboard render my_board.json -o board.png --legend
  screwboard share my_board.json --qr`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEdit,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "Template picture or preset name")
	rootCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed for generated patterns (0 = time based)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(presetsCmd)
}

// setup loads the config and builds a logger on w at the configured level.
func setup(w io.Writer) (*Config, *log.Logger, error) {
	config, err := loadConfig(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagLogLevel != "" {
		config.LogLevel = flagLogLevel
	}
	logger := newLogger(w, config.Level())
	for _, mm := range geometry.VerifyTriangleTables() {
		logger.Debug("triangle table differs from the turned 0° table", "angle", mm.Angle, "field", mm.Field)
	}
	return config, logger, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "screwboard",
		Level:           level,
	})
}

// openLogFile opens ~/.screwboard/screwboard.log for appending. Logs are dropped
// when it cannot be opened, so the editor screen stays clean.
func openLogFile() (io.Writer, func()) {
	path := userConfigPath("screwboard.log")
	if path == "" {
		return io.Discard, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newEditor returns an empty board in the configured colours.
func newEditor(config *Config, logger *log.Logger) *editor.Editor {
	e := editor.New(layout.DefaultBoard(), logger)
	if err := e.SetColor(config.Palette[0]); err != nil {
		logger.Warn("ignoring palette colour", "value", config.Palette[0], "error", err)
	}
	if err := e.SetBackground(config.BackgroundColor); err != nil {
		logger.Warn("ignoring background colour", "value", config.BackgroundColor, "error", err)
	}
	return e
}

func initialModel(config *Config, logger *log.Logger, seed uint64) model {
	board := layout.DefaultBoard()
	// One display unit per grid cell: the terminal board is GridHeight units wide
	// and GridWidth tall once turned.
	cells := layout.Board{
		GridWidth:  board.GridWidth,
		GridHeight: board.GridHeight,
		Metrics:    geometry.Metrics{CellSize: 1, Gap: 0},
	}
	m := model{
		mode:      ModeNormal,
		editor:    newEditor(config, logger),
		loader:    project.Loader{Board: board, Logger: logger},
		config:    config,
		logger:    logger,
		keys:      defaultKeyMap(),
		hints:     help.New(),
		rng:       newRand(seed),
		screen:    layout.NewMapper(cells, float64(board.GridHeight), float64(board.GridWidth)),
		pixels:    layout.DefaultMapper(),
		imageOpts: template.DefaultOptions(),
	}
	m.input = newInput("")
	return m
}

func runEdit(cmd *cobra.Command, args []string) error {
	logFile, closeLog := openLogFile()
	defer closeLog()

	config, logger, err := setup(logFile)
	if err != nil {
		return err
	}
	m := initialModel(config, logger, flagSeed)

	if len(args) == 1 {
		state, err := loadBoard(m.loader, args[0], m.editor.State())
		if err != nil {
			return err
		}
		m.editor.Load(state)
	}
	if flagTemplate != "" {
		img, name, err := loadTemplate(flagTemplate)
		if err != nil {
			return err
		}
		m.setTemplate(img, name)
	}
	m.setCursor(layout.Cell{})
	m.refresh()

	logger.Info("editor started", "save_directory", config.SaveDirectory)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
