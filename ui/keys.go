package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Refresh          key.Binding
	SpeakSource      key.Binding
	SpeakTranslation key.Binding
	Copy             key.Binding
	Dismiss          key.Binding
	Help             key.Binding
	Close            key.Binding
	Quit             key.Binding
	ForceQuit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new proverb"),
		),
		SpeakSource: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speak proverb"),
		),
		SpeakTranslation: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "speak translation"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "dismiss warning"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "voice help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "enter"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.SpeakSource, k.SpeakTranslation, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.Copy},
		{k.SpeakSource, k.SpeakTranslation},
		{k.Dismiss, k.Help, k.Quit},
	}
}
