package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := parseConfig(defaultConfigYAML, nil)
	if err != nil {
		t.Fatalf("parseConfig() error = %v", err)
	}
	config.normalize()

	if !config.Confirmations {
		t.Error("Confirmations should default to true")
	}
	if len(config.Palette) != 8 {
		t.Errorf("len(Palette) = %d, expected 8", len(config.Palette))
	}
	if config.BackgroundColor != "#F7F7F7" {
		t.Errorf("BackgroundColor = %s, expected #F7F7F7", config.BackgroundColor)
	}
	if config.Level() != log.InfoLevel {
		t.Errorf("Level() = %v, expected info", config.Level())
	}
}

func TestLoadConfigCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `confirmations: false
log_level: debug
palette: ["#123456", "red", "#abc"]
background_color: nope
save_directory: ` + dir + "\n"
	if err := writeTestFile(path, content); err != nil {
		t.Fatal(err)
	}

	config, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if config.Confirmations {
		t.Error("Confirmations = true, expected the file's false")
	}
	if config.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, expected debug", config.Level())
	}
	if len(config.Palette) != 2 || config.Palette[0] != "#123456" || config.Palette[1] != "#abc" {
		t.Errorf("Palette = %v, expected the two valid entries", config.Palette)
	}
	if config.BackgroundColor != "#f7f7f7" {
		t.Errorf("BackgroundColor = %s, expected the default for an invalid value", config.BackgroundColor)
	}
	if config.ShareBaseURL != "https://screwboard.app/" {
		t.Errorf("ShareBaseURL = %s, expected the default kept", config.ShareBaseURL)
	}
	if got := config.GetSavePath("a.png"); got != filepath.Join(dir, "a.png") {
		t.Errorf("GetSavePath() = %s", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := writeTestFile(path, "palette: [unclosed"); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("expected an error for invalid YAML")
	}
}

func TestWithExt(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"board", ".json", "board.json"},
		{"board.json", ".json", "board.json"},
		{"BOARD.PNG", ".png", "BOARD.PNG"},
		{"board.json", ".png", "board.json.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name+tt.ext, func(t *testing.T) {
			if got := withExt(tt.name, tt.ext); got != tt.want {
				t.Errorf("withExt(%q, %q) = %q, expected %q", tt.name, tt.ext, got, tt.want)
			}
		})
	}
}

func TestScanFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.JSON", "c.png", "notes.txt"} {
		if err := writeTestFile(filepath.Join(dir, name), "x"); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := scanFiles(dir, ".json")
	if len(got) != 2 || got[0] != "a.JSON" || got[1] != "b.json" {
		t.Errorf("scanFiles() = %v, expected [a.JSON b.json]", got)
	}
	if got := scanFiles(filepath.Join(dir, "missing"), ".json"); got != nil {
		t.Errorf("scanFiles() on a missing dir = %v, expected nil", got)
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	c := &Config{SaveDirectory: dir}
	if got := c.resolvePath("board.json"); got != filepath.Join(dir, "board.json") {
		t.Errorf("resolvePath() = %s, expected it under the save directory", got)
	}
	abs := filepath.Join(t.TempDir(), "x.json")
	if got := c.resolvePath(abs); got != abs {
		t.Errorf("resolvePath(%s) = %s, expected it unchanged", abs, got)
	}
	if got := (&Config{}).resolvePath("board.json"); got != "board.json" {
		t.Errorf("resolvePath() without a save directory = %s", got)
	}
}
