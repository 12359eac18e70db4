package notes

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	toggleHelpMenu key.Binding
	openNote       key.Binding
	toggleFolder   key.Binding
	quit           key.Binding
	updatePreview  key.Binding
}

func newListKeyMap() *listKeyMap {
	return &listKeyMap{
		toggleHelpMenu: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle help"),
		),
		openNote: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "preview"),
		),
		toggleFolder: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "cycle folder filter"),
		),
		updatePreview: key.NewBinding(
			key.WithKeys("f9"),
			key.WithHelp("f9", "update preview"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
