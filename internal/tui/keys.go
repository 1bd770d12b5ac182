package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings active while a progress bar is shown.
type KeyMap struct {
	Quit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "cancel"),
		),
	}
}

// HelpText returns the footer shown under the progress bar.
func (k KeyMap) HelpText() string {
	h := k.Quit.Help()
	return h.Key + " " + h.Desc
}
