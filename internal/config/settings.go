package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xmazu/denv/internal/envfile"
	"github.com/xmazu/denv/internal/storage"
	"github.com/xmazu/denv/internal/watch"
)

const SettingsFileName = "config.yaml"

type WatchSettings struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Settings holds user defaults that apply when no flag overrides them.
type Settings struct {
	Files []string      `yaml:"files"`
	Watch WatchSettings `yaml:"watch"`
}

func DefaultSettings() Settings {
	return Settings{
		Files: []string{envfile.DefaultFile},
		Watch: WatchSettings{Debounce: watch.DefaultDebounce},
	}
}

func SettingsPath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LoadSettings reads the settings file, filling anything it leaves unset with
// the defaults. A missing file yields the defaults.
func LoadSettings() (Settings, error) {
	var s Settings
	file := storage.NewYAMLFile(SettingsPath())
	if err := file.Load(&s); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", file.Path(), err)
	}

	def := DefaultSettings()
	if len(s.Files) == 0 {
		s.Files = def.Files
	}
	if s.Watch.Debounce <= 0 {
		s.Watch.Debounce = def.Watch.Debounce
	}
	return s, nil
}

// InitSettings writes the default settings file unless one already exists.
// It reports whether a file was written.
func InitSettings() (bool, error) {
	file := storage.NewYAMLFile(SettingsPath())
	if file.Exists() {
		return false, nil
	}
	if err := file.Save(DefaultSettings()); err != nil {
		return false, fmt.Errorf("save settings %s: %w", file.Path(), err)
	}
	return true, nil
}
