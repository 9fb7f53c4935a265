package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the navigator.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Parent    key.Binding
	Descend   key.Binding
	Confirm   key.Binding
	Search    key.Binding
	History   key.Binding
	ToggleHid key.Binding
	Cancel    key.Binding
	Quit      key.Binding
	Help      key.Binding
}

// DefaultKeyMap returns the standard navigator keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Parent: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "parent directory"),
		),
		Descend: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "enter directory"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "enter dir / select"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		History: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle history"),
		),
		ToggleHid: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "toggle hidden"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Parent, k.Descend, k.Confirm, k.Search, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Parent, k.Descend},
		{k.Confirm, k.Search, k.History, k.ToggleHid},
		{k.Cancel, k.Quit, k.Help},
	}
}
