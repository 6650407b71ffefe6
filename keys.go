package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Left           key.Binding
	Right          key.Binding
	Flip           key.Binding
	Hint           key.Binding
	Next           key.Binding
	RestartLevel   key.Binding
	RestartSession key.Binding
	Theme          key.Binding
	Sound          key.Binding
	Animations     key.Binding
	Help           key.Binding
	Quit           key.Binding
}

var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Flip: key.NewBinding(
		key.WithKeys(" ", "space", "enter"),
		key.WithHelp("space", "flip"),
	),
	Hint: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "hint"),
	),
	Next: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next level"),
	),
	RestartLevel: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "restart level"),
	),
	RestartSession: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "new game"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Sound: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sound"),
	),
	Animations: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "animations"),
	),
	Help: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Flip, k.Hint, k.RestartLevel, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Flip, k.Hint, k.Next},
		{k.RestartLevel, k.RestartSession, k.Theme},
		{k.Sound, k.Animations, k.Help, k.Quit},
	}
}
