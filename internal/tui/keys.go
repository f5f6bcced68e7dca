package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	Start   key.Binding
	Prev    key.Binding
	Next    key.Binding
	Edit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Abort   key.Binding
	Again   key.Binding
	Restart key.Binding
	History key.Binding
	Close   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Start:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "start")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "shorter")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "longer")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "custom length")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Abort:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "abandon round")),
		Again:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play again")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		History: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "history")),
		Close:   key.NewBinding(key.WithKeys("esc", "t", "q"), key.WithHelp("esc", "close")),
	}
}
