package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global bindings; each page adds its own on top.
type KeyMap struct {
	NextPage key.Binding
	PrevPage key.Binding
	Language key.Binding
	ThemeKey key.Binding
	Quit     key.Binding

	Send      key.Binding
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Translate key.Binding
	Read      key.Binding
	Mic       key.Binding
	Camera    key.Binding
	SwitchCam key.Binding
	Clear     key.Binding
	Escape    key.Binding

	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Delete  key.Binding
	MarkAll key.Binding
	Refresh key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev page")),
		Language: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("C-l", "language")),
		ThemeKey: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("C-t", "theme")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("C-q", "quit")),

		Send:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Search:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("C-f", "search")),
		NextMatch: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("C-n", "next match")),
		PrevMatch: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("C-p", "prev match")),
		Translate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("C-g", "translate last")),
		Read:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "read aloud")),
		Mic:       key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("C-v", "voice input")),
		Camera:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("C-o", "photo")),
		SwitchCam: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("C-w", "switch camera")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("C-x", "clear chat")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		MarkAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}
