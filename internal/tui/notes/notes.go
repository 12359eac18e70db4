// Package notes is the interactive browser for the knowledge base: a
// filterable note list on the left, a rendered markdown preview on the right.
package notes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/knobase/kb/internal/markdown"
	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

type NoteListModel struct {
	list         list.Model
	keys         *listKeyMap
	delegateKeys *delegateKeyMap
	state        *state.State
	folders      []string
	folderIdx    int
	width        int
	height       int
}

func NewNoteListModel(s *state.State) NoteListModel {
	listKeys := newListKeyMap()
	delegateKeys := newDelegateKeyMap()

	delegate := newItemDelegate(delegateKeys, s.Repo)
	l := list.New(nil, delegate, 0, 0)
	l.Title = "Knowledge Base"
	l.Styles.Title = titleStyle
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{
			listKeys.toggleHelpMenu,
			listKeys.toggleFolder,
			listKeys.openNote,
			listKeys.quit,
		}
	}

	// "" means no folder filter, the unclassified group comes last.
	folders := append([]string{""}, s.Repo.Folders()...)
	folders = append(folders, repository.Unclassified)

	m := NoteListModel{
		list:         l,
		keys:         listKeys,
		delegateKeys: delegateKeys,
		state:        s,
		folders:      folders,
	}
	m.refreshItems()
	return m
}

func Run(s *state.State) error {
	m := NewNoteListModel(s)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m NoteListModel) Init() tea.Cmd {
	return nil
}

func (m NoteListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width/2-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.toggleHelpMenu):
			m.list.SetShowHelp(!m.list.ShowHelp())
			return m, nil

		case key.Matches(msg, m.keys.toggleFolder):
			m.folderIdx = (m.folderIdx + 1) % len(m.folders)
			m.refreshItems()
			return m, m.list.NewStatusMessage(statusStyle(m.folderLabel()))
		}
	}

	newList, cmd := m.list.Update(msg)
	m.list = newList
	return m, cmd
}

func (m NoteListModel) View() string {
	listView := listStyle.Render(m.list.View())
	previewView := previewStyle.Render(m.renderPreview())
	return appStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, listView, previewView))
}

func (m *NoteListModel) refreshItems() {
	notes := m.state.Repo.FilterNotes("", m.folders[m.folderIdx], "")
	items := make([]list.Item, len(notes))
	for i, note := range notes {
		items[i] = ListItem{note: note}
	}
	m.list.SetItems(items)
}

func (m NoteListModel) renderPreview() string {
	item, ok := m.list.SelectedItem().(ListItem)
	if !ok {
		return "No note selected"
	}

	width := m.width / 2
	if width <= 0 {
		width = 80
	}
	return markdown.RenderPreview(item.note.Content, width)
}

func (m NoteListModel) folderLabel() string {
	folder := m.folders[m.folderIdx]
	if folder == "" {
		return "Showing all folders"
	}
	return fmt.Sprintf("Folder: %s", folder)
}
