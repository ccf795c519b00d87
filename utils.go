package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

func copyToClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// scanFiles lists files in dir whose extension is one of exts, sorted by name.
func scanFiles(dir string, exts ...string) []string {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, e := range exts {
			if ext == e {
				files = append(files, entry.Name())
				break
			}
		}
	}
	sort.Strings(files)
	return files
}

// withExt appends ext unless name already ends in it.
func withExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

// resolvePath finds name as given, then under the save directory.
func (c *Config) resolvePath(name string) string {
	name = expandHome(name)
	if _, err := os.Stat(name); err == nil || filepath.IsAbs(name) || c.SaveDirectory == "" {
		return name
	}
	return filepath.Join(c.SaveDirectory, name)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
