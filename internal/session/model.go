// Package session is the quiz timer screen: it owns the countdown and the
// playback coordinator and keeps both in step with one armed flag.
package session

import (
	"log"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/message"

	"github.com/pes18fan/quiztimer/internal/audio"
	"github.com/pes18fan/quiztimer/internal/countdown"
	"github.com/pes18fan/quiztimer/internal/i18n"
	"github.com/pes18fan/quiztimer/internal/playback"
)

// Config wires a session together.
type Config struct {
	Coordinator *playback.Coordinator
	// Status is the audio engine's status channel; nil disables listening.
	Status      <-chan audio.Status
	Printer     *message.Printer
	Selected    int
	ShowArtwork bool
	Tick        countdown.TickFunc
}

// Model is the bubbletea model of the timer screen.
type Model struct {
	countdown   countdown.Countdown
	coordinator *playback.Coordinator
	status      <-chan audio.Status
	printer     *message.Printer

	keys     keyMap
	help     help.Model
	progress progress.Model
	styles   styles

	termWidth  int
	termHeight int

	info        audio.TrackInfo
	showArtwork bool
	closed      bool
}

// tea message type for status updates
type statusMsg audio.Status

func listenForStatus(statusChan <-chan audio.Status) tea.Cmd {
	if statusChan == nil {
		return nil
	}
	return func() tea.Msg {
		status, ok := <-statusChan
		if !ok {
			return nil
		}
		return statusMsg(status)
	}
}

// New creates the session. The coordinator must already hold its player.
func New(config Config) Model {
	if config.Printer == nil {
		config.Printer = i18n.NewPrinter("")
	}
	return Model{
		countdown: countdown.New(countdown.Config{
			Selected: config.Selected,
			Tick:     config.Tick,
		}),
		coordinator: config.Coordinator,
		status:      config.Status,
		printer:     config.Printer,
		keys:        newKeyMap(config.Printer),
		help:        help.New(),
		progress: progress.New(
			progress.WithGradient("#34D399", "#22D3EE"),
			progress.WithoutPercentage(),
			progress.WithWidth(40),
		),
		styles:      defaultStyles(),
		showArtwork: config.ShowArtwork,
	}
}

func (m Model) Countdown() countdown.Countdown     { return m.countdown }
func (m Model) Coordinator() *playback.Coordinator { return m.coordinator }

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle(m.printer.Sprintf(i18n.Title)),
		listenForStatus(m.status),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(min(msg.Width-8, 60), 10)
	case countdown.TickMsg:
		armed := m.countdown.Armed()
		cmd := m.countdown.Update(msg)
		if armed && !m.countdown.Armed() {
			m.keys.setArmed(false)
			return m, tea.Batch(cmd, m.coordinator.Deactivate())
		}
		return m, cmd
	case countdown.ExpiredMsg:
		log.Println("time is up")
	case playback.FadeStepMsg:
		return m, m.coordinator.Step(msg)
	case playback.FadeOutDoneMsg:
		log.Println("music faded out")
	case statusMsg:
		cmd := m.handleStatus(msg)
		return m, tea.Batch(cmd, listenForStatus(m.status))
	}

	return m, nil
}

// Toggle arms or disarms the countdown and brings the music along.
func (m *Model) Toggle() tea.Cmd {
	if m.closed {
		return nil
	}
	if m.countdown.Armed() {
		m.countdown.Stop()
		m.keys.setArmed(false)
		return m.coordinator.Deactivate()
	}
	m.keys.setArmed(true)
	return tea.Batch(m.countdown.Start(), m.coordinator.Activate())
}

// Select picks a duration; it is ignored while the countdown runs.
func (m *Model) Select(seconds int) bool {
	return m.countdown.Select(seconds)
}

// Close cancels the countdown and releases audio. Safe to call twice.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.countdown.Stop()
	if err := m.coordinator.Close(); err != nil {
		log.Println("failed to close audio:", err)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m, m.Toggle()
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Direct):
		n, err := strconv.Atoi(msg.String())
		if err == nil && n >= 1 && n <= len(countdown.Catalog) {
			m.Select(countdown.Catalog[n-1].Seconds)
		}
	case key.Matches(msg, m.keys.Next):
		return m, m.coordinator.Skip()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		if m.help.ShowAll {
			m.keys.Help.SetHelp("?", m.printer.Sprintf(i18n.KeyCloseHelp))
		} else {
			m.keys.Help.SetHelp("?", m.printer.Sprintf(i18n.KeyHelp))
		}
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	index := countdown.IndexOf(m.countdown.Selected())
	if index < 0 {
		index = 0
	} else {
		index = min(max(index+delta, 0), len(countdown.Catalog)-1)
	}
	m.Select(countdown.Catalog[index].Seconds)
}

func (m *Model) handleStatus(status audio.Status) tea.Cmd {
	switch status := status.(type) {
	case audio.TrackEnded:
		return m.coordinator.TrackEnded(status.Track)
	case audio.TrackInfo:
		hadArt := !m.info.Art.Empty()
		m.info = status
		log.Println("track info updated:", status.Title)
		if m.showArtwork && (hadArt || !status.Art.Empty()) {
			// kitty images survive a normal redraw
			return tea.ClearScreen
		}
	case audio.ErrorUpdate:
		log.Println("audio error:", status.Err)
	}
	return nil
}
