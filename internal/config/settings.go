package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable parts of a session.
type Settings struct {
	AssetDir       string
	DefaultSeconds int
	Volume         float64
	FadeDuration   time.Duration
	FadeSteps      int
	Locale         string
	ShowArtwork    bool
}

type yamlSettings struct {
	AssetDir       string  `yaml:"asset_dir"`
	DefaultSeconds int     `yaml:"default_seconds"`
	Volume         float64 `yaml:"volume"`
	FadeMillis     int     `yaml:"fade_millis"`
	FadeSteps      int     `yaml:"fade_steps"`
	Locale         string  `yaml:"locale"`
	ShowArtwork    bool    `yaml:"show_artwork"`
}

// DefaultSettings plays from ./assets at half volume with one second fades.
func DefaultSettings() Settings {
	return Settings{
		AssetDir:       "assets",
		DefaultSeconds: 30,
		Volume:         0.5,
		FadeDuration:   time.Second,
		FadeSteps:      50,
	}
}

// LoadSettings reads settings from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// ApplyEnv lets the environment override the asset directory and fill in
// the locale when the settings file names none.
func (s *Settings) ApplyEnv(e Env) {
	if e.AssetDir != "" {
		s.AssetDir = e.AssetDir
	}
	if s.Locale == "" {
		s.Locale = e.Language()
	}
}

func applyYamlSettings(settings *Settings, fileData yamlSettings) {
	if fileData.AssetDir != "" {
		settings.AssetDir = fileData.AssetDir
	}
	if fileData.DefaultSeconds > 0 {
		settings.DefaultSeconds = fileData.DefaultSeconds
	}
	if fileData.Volume > 0 && fileData.Volume <= 1 {
		settings.Volume = fileData.Volume
	}
	if fileData.FadeMillis > 0 {
		settings.FadeDuration = time.Duration(fileData.FadeMillis) * time.Millisecond
	}
	if fileData.FadeSteps > 0 {
		settings.FadeSteps = fileData.FadeSteps
	}

	settings.Locale = fileData.Locale
	settings.ShowArtwork = fileData.ShowArtwork
}
