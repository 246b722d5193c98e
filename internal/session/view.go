package session

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pes18fan/quiztimer/internal/countdown"
	"github.com/pes18fan/quiztimer/internal/i18n"
	"github.com/pes18fan/quiztimer/internal/playback"
)

type styles struct {
	heading   lipgloss.Style
	option    lipgloss.Style
	selected  lipgloss.Style
	disabled  lipgloss.Style
	unit      lipgloss.Style
	idleDial  lipgloss.Style
	armedDial lipgloss.Style
	dialTime  lipgloss.Style
	dialLabel lipgloss.Style
	indicator lipgloss.Style
	info      lipgloss.Style
}

func defaultStyles() styles {
	dial := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 6).
		Align(lipgloss.Center)

	return styles{
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")),
		option: lipgloss.NewStyle().
			Padding(0, 2).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("250")),
		selected: lipgloss.NewStyle().
			Padding(0, 2).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("43")),
		disabled: lipgloss.NewStyle().
			Padding(0, 2).
			Align(lipgloss.Center).
			Faint(true).
			Foreground(lipgloss.Color("240")),
		unit: lipgloss.NewStyle().
			Faint(true),
		idleDial: dial.
			BorderForeground(lipgloss.Color("43")),
		armedDial: dial.
			BorderForeground(lipgloss.Color("204")),
		dialTime: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")),
		dialLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		indicator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("48")),
		info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("87")),
	}
}

func (m Model) View() string {
	if m.closed {
		return ""
	}

	armed := m.countdown.Armed()
	sections := []string{
		m.styles.heading.Render(m.printer.Sprintf(i18n.Title)),
		m.catalogView(armed),
		m.dialView(armed),
	}

	if armed {
		sections = append(sections,
			m.progress.ViewAs(m.countdown.Progress()),
			m.styles.indicator.Render("● "+m.printer.Sprintf(i18n.MusicPlaying)),
		)
	}

	sections = append(sections, m.nowPlayingView())
	if m.showArtwork && !m.info.Art.Empty() && m.info.Track == m.coordinator.Track() {
		sections = append(sections, m.info.Art.Data)
	}
	sections = append(sections, m.help.View(m.keys))

	body := lipgloss.JoinVertical(lipgloss.Center, withGaps(sections)...)
	if m.termWidth <= 0 || m.termHeight <= 0 {
		return body
	}
	return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) catalogView(armed bool) string {
	cells := make([]string, 0, len(countdown.Catalog))
	for _, option := range countdown.Catalog {
		style := m.styles.option
		switch {
		case option.Seconds == m.countdown.Selected():
			style = m.styles.selected
		case armed:
			style = m.styles.disabled
		}
		label := option.Label + "\n" + m.styles.unit.Render(m.printer.Sprintf(string(option.Unit)))
		cells = append(cells, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) dialView(armed bool) string {
	label := m.printer.Sprintf(i18n.Start)
	dial := m.styles.idleDial
	if armed {
		label = m.printer.Sprintf(i18n.Stop)
		dial = m.styles.armedDial
	}

	return dial.Render(lipgloss.JoinVertical(lipgloss.Center,
		m.styles.dialTime.Render(countdown.Format(m.countdown.Display())),
		"",
		m.styles.dialLabel.Render(strings.ToUpper(label)),
	))
}

func (m Model) nowPlayingView() string {
	track := m.coordinator.Track()
	if track == "" {
		return ""
	}

	title := playback.Name(track)
	if m.info.Track == track && m.info.Title != "" {
		title = m.info.Title
		if m.info.Artist != "" {
			title += " — " + m.info.Artist
		}
	}

	position := m.printer.Sprintf(i18n.TrackOf, m.coordinator.Index()+1, m.coordinator.Playlist().Len())
	return m.styles.info.Render(m.printer.Sprintf(i18n.NowPlaying) + ": " + title + "\n" + position)
}

func withGaps(sections []string) []string {
	out := make([]string, 0, len(sections)*2)
	for i, section := range sections {
		if section == "" {
			continue
		}
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, section)
	}
	return out
}
