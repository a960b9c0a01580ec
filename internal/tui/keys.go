package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/menuboard/menuboard/internal/tui/exp/list"
)

type KeyMap struct {
	Quit,
	Filter,
	AcceptFilter,
	ClearFilter,
	Copy key.Binding

	List list.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		AcceptFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		List: list.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.List.Down,
		k.List.Up,
		k.List.PageDown,
		k.Filter,
		k.ClearFilter,
		k.Copy,
		k.Quit,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.List.KeyBindings(),
		{k.Filter, k.AcceptFilter, k.ClearFilter, k.Copy, k.Quit},
	}
}
