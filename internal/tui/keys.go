package tui

import (
	"todo-cli/internal/row"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
	Add  key.Binding
	Help key.Binding
	Quit key.Binding

	// Adding.
	Submit key.Binding
	Back   key.Binding

	// Row bindings, shown in help for the selected row's mode.
	row  row.KeyMap
	mode row.Mode
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "/"),
			key.WithHelp("a", "add task"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		row: row.DefaultKeyMap(),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.mode == row.Editing {
		return k.row.ShortHelp(row.Editing)
	}
	// Yank stays in the full help so the footer fits a 60 column terminal.
	return []key.Binding{k.row.Toggle, k.row.Edit, k.row.Remove, k.Add, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.mode == row.Editing {
		return [][]key.Binding{k.row.ShortHelp(row.Editing)}
	}
	return [][]key.Binding{
		{k.Up, k.Down},
		k.row.ShortHelp(row.Viewing),
		{k.Add, k.Help, k.Quit},
	}
}
