package session

import (
	"github.com/charmbracelet/bubbles/key"
	"golang.org/x/text/message"

	"github.com/pes18fan/quiztimer/internal/i18n"
)

type keyMap struct {
	Toggle key.Binding
	Left   key.Binding
	Right  key.Binding
	Direct key.Binding
	Next   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap(p *message.Printer) keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", p.Sprintf(i18n.KeyToggle)),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", p.Sprintf(i18n.KeyChoose)),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", p.Sprintf(i18n.KeyChoose)),
		),
		Direct: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", p.Sprintf(i18n.KeyDirect)),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", p.Sprintf(i18n.KeyNext)),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", p.Sprintf(i18n.KeyHelp)),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", p.Sprintf(i18n.KeyQuit)),
		),
	}
}

// setArmed disables the duration keys while the countdown runs.
func (k *keyMap) setArmed(armed bool) {
	k.Left.SetEnabled(!armed)
	k.Right.SetEnabled(!armed)
	k.Direct.SetEnabled(!armed)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Left, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Next},
		{k.Left, k.Right, k.Direct},
		{k.Help, k.Quit},
	}
}
