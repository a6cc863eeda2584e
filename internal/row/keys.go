package row

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Toggle key.Binding
	Edit   key.Binding
	Remove key.Binding
	Yank   key.Binding

	Commit        key.Binding
	Cancel        key.Binding
	ToggleEditing key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("x", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy title"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		ToggleEditing: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle done"),
		),
	}
}

// ShortHelp lists the bindings that apply in the given mode.
func (k KeyMap) ShortHelp(m Mode) []key.Binding {
	if m == Editing {
		return []key.Binding{k.Commit, k.Cancel, k.ToggleEditing}
	}
	return []key.Binding{k.Toggle, k.Edit, k.Remove, k.Yank}
}
