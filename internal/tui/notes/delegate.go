package notes

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/knobase/kb/internal/repository"
)

func newItemDelegate(keys *delegateKeyMap, repo *repository.Repo) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.Styles.SelectedTitle = selectedItemStyle
	d.Styles.SelectedDesc = selectedItemStyle

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(ListItem)
		if !ok {
			return nil
		}
		note := item.note

		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, keys.delete):
				if err := repo.DeleteNote(note.ID); err != nil {
					return m.NewStatusMessage(statusStyle("Failed to delete " + note.Title))
				}
				removeItemByID(m, note.ID)
				return m.NewStatusMessage(statusStyle("Deleted " + note.Title))

			case key.Matches(msg, keys.togglePermission):
				next := repository.PermissionPrivate
				if note.Permission == repository.PermissionPrivate {
					next = repository.PermissionPublic
				}
				if _, err := repo.SetNotesPermission([]int64{note.ID}, next); err != nil {
					return m.NewStatusMessage(statusStyle("Failed to update " + note.Title))
				}
				return m.NewStatusMessage(statusStyle(note.Title + " is now " + string(next)))
			}
		}

		return nil
	}

	help := []key.Binding{keys.delete, keys.togglePermission}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}
	return d
}

func removeItemByID(m *list.Model, id int64) {
	for idx, item := range m.Items() {
		li, ok := item.(ListItem)
		if !ok {
			continue
		}
		if li.ID() == id {
			m.RemoveItem(idx)
			return
		}
	}
}

type delegateKeyMap struct {
	delete           key.Binding
	togglePermission key.Binding
}

func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),
		togglePermission: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "toggle permission"),
		),
	}
}
