package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"screwboard/internal/editor"
	"screwboard/internal/layout"
	"screwboard/internal/project"
	"screwboard/internal/render"
	"screwboard/internal/template"
)

var (
	flagOutput  string
	flagLegend  bool
	flagBaseURL string
	flagQR      bool
	flagQRFile  string
	flagPattern string
)

var renderCmd = &cobra.Command{
	Use:   "render <project.json | share link>",
	Short: "Render a board to PNG",
	Long: `Draws the board as the editor exports it: 700×450 pixels, turned a
quarter, optionally over a template and with a legend strip.

Examples:
  screwboard render my_board.json -o board.png
  screwboard render my_board.json --template stars --legend`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var shareCmd = &cobra.Command{
	Use:   "share <project.json>",
	Short: "Print the share link for a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runShare,
}

var decodeCmd = &cobra.Command{
	Use:   "decode <share link>",
	Short: "Turn a share link into a project file",
	Long: `Reads the board out of a share link, or a bare config value, and
writes it as a project file. Without -o the JSON is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

var printCmd = &cobra.Command{
	Use:   "print <project.json | share link>",
	Short: "Write a printable HTML page for a board",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrint,
}

var presetsCmd = &cobra.Command{
	Use:   "presets [name]",
	Short: "List template presets or draw one",
	Long: `Without a name, lists the preset templates. With a name, or with
--pattern, writes the pattern image to PNG.

Examples:
  screwboard presets
  screwboard presets stars -o stars.png
  screwboard presets --pattern "flowers and stars" --seed 7`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPresets,
}

func init() {
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "PNG file (default: screwdriver_image_<ms>.png)")
	renderCmd.Flags().BoolVar(&flagLegend, "legend", false, "Add a legend strip with part and screw counts")
	renderCmd.Flags().StringVarP(&flagTemplate, "template", "t", "", "Template picture or preset name")

	shareCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Share page URL (default from config)")
	shareCmd.Flags().BoolVar(&flagQR, "qr", false, "Also print the link as a QR code")
	shareCmd.Flags().StringVar(&flagQRFile, "qr-png", "", "Write the QR code to a PNG file")

	decodeCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Project file to write")

	printCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "HTML file (default: screwdriver_print_<ms>.html)")

	presetsCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "PNG file (default: <name>.png)")
	presetsCmd.Flags().StringVar(&flagPattern, "pattern", "", "Generate a pattern from a description instead")
	presetsCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed for generated patterns (0 = time based)")
}

// loadBoard reads arg as a project file if one exists there, otherwise as a share
// link, applied on top of base.
func loadBoard(loader project.Loader, arg string, base editor.State) (editor.State, error) {
	if fileExists(expandHome(arg)) {
		return loader.ReadFile(expandHome(arg), base)
	}
	state, err := loader.ParseLink(arg, base)
	if err != nil {
		return base, fmt.Errorf("%s is neither a project file nor a share link: %w", arg, err)
	}
	return state, nil
}

// loadTemplate returns the preset called name, or the picture at name.
func loadTemplate(name string) (image.Image, string, error) {
	if p, err := template.ParsePreset(name); err == nil {
		return p.Image(), "preset: " + string(p), nil
	}
	img, err := template.Import(expandHome(name))
	if err != nil {
		return nil, "", fmt.Errorf("failed to load template %s: %w", name, err)
	}
	return img, filepath.Base(name), nil
}

// boardFrom builds an editor holding the board named by arg.
func boardFrom(arg string) (*Config, *editor.Editor, error) {
	config, logger, err := setup(os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	e := newEditor(config, logger)
	loader := project.Loader{Board: e.Board(), Logger: logger}
	state, err := loadBoard(loader, arg, e.State())
	if err != nil {
		return nil, nil, err
	}
	e.Load(state)
	return config, e, nil
}

func boardScene(config *Config, e *editor.Editor, tmpl image.Image) render.Scene {
	s := e.Scene(layout.DefaultMapper(), tmpl)
	s.Legend = config.Legend
	return s
}

func runRender(cmd *cobra.Command, args []string) error {
	config, e, err := boardFrom(args[0])
	if err != nil {
		return err
	}
	var tmpl image.Image
	if flagTemplate != "" {
		if tmpl, _, err = loadTemplate(flagTemplate); err != nil {
			return err
		}
	}
	s := boardScene(config, e, tmpl)
	s.Legend = s.Legend || flagLegend

	path := flagOutput
	if path == "" {
		path = config.GetSavePath(defaultFileName(FileOpSavePNG, time.Now()))
	}
	if err := render.SavePNG(path, s); err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runShare(cmd *cobra.Command, args []string) error {
	config, e, err := boardFrom(args[0])
	if err != nil {
		return err
	}
	base := flagBaseURL
	if base == "" {
		base = config.ShareBaseURL
	}
	link, err := project.ShareLink(base, e.State())
	if err != nil {
		return err
	}
	fmt.Println(link)

	if flagQR {
		qr, err := project.QRCodeText(link)
		if err != nil {
			return err
		}
		width := utf8.RuneCountInString(strings.SplitN(qr, "\n", 2)[0])
		if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && width > w {
			fmt.Fprintf(os.Stderr, "QR code is %d columns wide, the terminal has %d; use --qr-png\n", width, w)
		} else {
			fmt.Println(qr)
		}
	}
	if flagQRFile != "" {
		png, err := project.QRCodePNG(link)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flagQRFile, png, 0o644); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
	}
	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	config, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	e := newEditor(config, logger)
	loader := project.Loader{Board: e.Board(), Logger: logger}
	state, err := loader.ParseLink(args[0], e.State())
	if err != nil {
		return fmt.Errorf("failed to read share link: %w", err)
	}
	if flagOutput == "" {
		data, err := project.Marshal(state)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	if err := project.WriteFile(flagOutput, state); err != nil {
		return err
	}
	logger.Info("project written", "path", flagOutput, "parts", len(state.Parts), "screws", len(state.Screws))
	return nil
}

func runPrint(cmd *cobra.Command, args []string) error {
	config, e, err := boardFrom(args[0])
	if err != nil {
		return err
	}
	var png bytes.Buffer
	if err := render.EncodePNG(&png, boardScene(config, e, nil)); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}
	page, err := project.PrintPage(png.Bytes())
	if err != nil {
		return err
	}
	path := flagOutput
	if path == "" {
		path = config.GetSavePath(defaultFileName(FileOpPrint, time.Now()))
	}
	if err := os.WriteFile(path, page, 0o644); err != nil {
		return fmt.Errorf("failed to write print page: %w", err)
	}
	fmt.Println(path)
	return nil
}

func runPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && flagPattern == "" {
		fmt.Println("Preset templates:")
		fmt.Println()
		for i, p := range template.Presets() {
			fmt.Printf("  %d  %s\n", i+1, p)
		}
		fmt.Println()
		fmt.Println("Run 'screwboard presets <name> -o file.png' to draw one.")
		return nil
	}

	var (
		img  image.Image
		name string
	)
	if flagPattern != "" {
		generated, err := template.Generate(flagPattern, newRand(flagSeed))
		if err != nil {
			return err
		}
		img, name = generated, "pattern"
	} else {
		p, err := template.ParsePreset(args[0])
		if err != nil {
			return err
		}
		img, name = p.Image(), string(p)
	}

	path := flagOutput
	if path == "" {
		path = name + ".png"
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Println(path)
	return nil
}
