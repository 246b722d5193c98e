package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pes18fan/quiztimer/internal/audio"
	"github.com/pes18fan/quiztimer/internal/config"
	"github.com/pes18fan/quiztimer/internal/i18n"
	"github.com/pes18fan/quiztimer/internal/playback"
	"github.com/pes18fan/quiztimer/internal/session"
)

var _ playback.Player = (*audio.Engine)(nil)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		fmt.Println("fatal:", err)
		os.Exit(1)
	}

	if env.DebugEnabled() {
		f, err := tea.LogToFile(env.LogFile, "debug")
		if err != nil {
			fmt.Println("fatal:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	settings := loadSettings(env)
	log.Printf("settings: %+v", settings)

	statusChan := make(chan audio.Status, 16)
	engine := audio.NewEngine(statusChan, audio.Options{Artwork: settings.ShowArtwork})

	coordinator := playback.New(engine, playback.DefaultPlaylist(settings.AssetDir), playback.Fade{
		Target:   settings.Volume,
		Duration: settings.FadeDuration,
		Steps:    settings.FadeSteps,
	})
	defer coordinator.Close()

	model := session.New(session.Config{
		Coordinator: coordinator,
		Status:      statusChan,
		Printer:     i18n.NewPrinter(settings.Locale),
		Selected:    settings.DefaultSeconds,
		ShowArtwork: settings.ShowArtwork,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	log.Println("set up tea program")

	if _, err := p.Run(); err != nil {
		log.Printf("tea program got error: %v", err)
		fmt.Println("fatal:", err)
		os.Exit(1)
	}
}

// loadSettings never fails the program: a broken settings file is logged
// and the defaults are used.
func loadSettings(env config.Env) config.Settings {
	settings := config.DefaultSettings()
	path, err := env.SettingsPath()
	if err != nil {
		log.Println("no settings path:", err)
	} else if settings, err = config.LoadSettings(path); err != nil {
		log.Println("failed to load settings from", path, ":", err)
	}
	settings.ApplyEnv(env)
	return settings
}
