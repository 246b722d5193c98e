// Package config reads quiztimer's environment and settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// AppName names the settings directory under the user config dir.
const AppName = "quiztimer"

const settingsFileName = "settings.yaml"

// Env holds the environment variables quiztimer reads.
type Env struct {
	Debug       bool   `env:"QUIZTIMER_DEBUG"`
	LegacyDebug string `env:"DEBUG"`
	LogFile     string `env:"QUIZTIMER_LOG_FILE" envDefault:"debug.log"`
	ConfigPath  string `env:"QUIZTIMER_CONFIG"`
	AssetDir    string `env:"QUIZTIMER_ASSETS"`
	Locale      string `env:"QUIZTIMER_LANG"`
	SystemLang  string `env:"LANG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses Env from the process environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// DebugEnabled reports whether logs should go to LogFile. Any non-empty
// DEBUG value counts, matching the old behaviour.
func (e Env) DebugEnabled() bool {
	return e.Debug || e.LegacyDebug != ""
}

// SettingsPath is QUIZTIMER_CONFIG or the default settings location.
func (e Env) SettingsPath() (string, error) {
	if e.ConfigPath != "" {
		return e.ConfigPath, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, AppName, settingsFileName), nil
}

// Language picks the UI language: QUIZTIMER_LANG, then LANG.
func (e Env) Language() string {
	if e.Locale != "" {
		return e.Locale
	}
	return e.SystemLang
}
