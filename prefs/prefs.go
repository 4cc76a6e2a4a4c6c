// Package prefs keeps per machine preferences of the catalog CLI, the
// terminal counterpart of the browser's local storage.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/irsalhamdi/realty-training/core/settings"
	"gopkg.in/yaml.v3"
)

type Prefs struct {
	Theme string `yaml:"theme"`
	API   string `yaml:"api,omitempty"`
	Email string `yaml:"email,omitempty"`
}

func Defaults() Prefs {
	return Prefs{Theme: settings.ThemeDark}
}

// DefaultPath is the prefs file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "realty-training", "prefs.yaml"), nil
}

// Load reads the prefs file. A missing file yields the defaults.
func Load(path string) (Prefs, error) {
	p := Defaults()

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("failed to open prefs file %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Defaults(), fmt.Errorf("failed to decode prefs file %s: %w", path, err)
	}

	if p.Theme != settings.ThemeDark && p.Theme != settings.ThemeLight {
		p.Theme = settings.ThemeDark
	}
	return p, nil
}

func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating prefs dir: %w", err)
	}

	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing prefs file %s: %w", path, err)
	}
	return nil
}

// Toggle flips between the dark and light themes.
func (p Prefs) Toggle() Prefs {
	if p.Theme == settings.ThemeLight {
		p.Theme = settings.ThemeDark
	} else {
		p.Theme = settings.ThemeLight
	}
	return p
}
