package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"screwboard/internal/render"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

type Config struct {
	SaveDirectory   string   `yaml:"save_directory"`
	Confirmations   bool     `yaml:"confirmations"`
	ShareBaseURL    string   `yaml:"share_base_url"`
	LogLevel        string   `yaml:"log_level"`
	Legend          bool     `yaml:"legend"`
	Palette         []string `yaml:"palette"`
	BackgroundColor string   `yaml:"background_color"`
}

// loadConfig reads the configuration. Search order: customPath ->
// ~/.screwboard/config.yaml -> ./screwboard.yaml -> embedded default. Only a
// custom path that cannot be read is an error.
func loadConfig(customPath string) (*Config, error) {
	config, err := parseConfig(defaultConfigYAML, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default config: %w", err)
	}

	if customPath != "" {
		data, err := os.ReadFile(expandHome(customPath))
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if config, err = parseConfig(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return config.normalize(), nil
	}

	for _, path := range []string{userConfigPath("config.yaml"), "screwboard.yaml"} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if parsed, err := parseConfig(data, config); err == nil {
			return parsed.normalize(), nil
		}
	}
	return config.normalize(), nil
}

// parseConfig decodes data over a copy of base, so keys missing from data keep
// their base value.
func parseConfig(data []byte, base *Config) (*Config, error) {
	config := &Config{}
	if base != nil {
		*config = *base
		config.Palette = append([]string(nil), base.Palette...)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

// normalize drops unusable palette entries and fills empty fields.
func (c *Config) normalize() *Config {
	palette := c.Palette[:0]
	for _, hex := range c.Palette {
		if render.ValidHex(hex) {
			palette = append(palette, hex)
		}
	}
	if len(palette) == 0 {
		palette = append(palette, render.Hex(render.DefaultPartColor))
	}
	c.Palette = palette

	if !render.ValidHex(c.BackgroundColor) {
		c.BackgroundColor = render.Hex(render.DefaultBackground)
	}
	if c.SaveDirectory != "" {
		c.SaveDirectory = expandHome(c.SaveDirectory)
		if abs, err := filepath.Abs(c.SaveDirectory); err == nil {
			c.SaveDirectory = abs
		}
	}
	return c
}

// Level is the configured log level, info when unset or unknown.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// userConfigPath returns a path under ~/.screwboard, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".screwboard", filename)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
