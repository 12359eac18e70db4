package notes

import (
	"fmt"
	"strings"

	"github.com/knobase/kb/internal/repository"
)

type ListItem struct {
	note *repository.Note
}

func (i ListItem) Title() string {
	return i.note.Title
}

func (i ListItem) Description() string {
	return fmt.Sprintf("[%s] %s · %s", i.note.FolderName(), i.note.Permission, i.note.Date)
}

func (i ListItem) FilterValue() string {
	return strings.Join([]string{
		i.note.Title,
		"[" + i.note.FolderName() + "]",
		i.note.Content,
	}, " ")
}

func (i ListItem) ID() int64 {
	return i.note.ID
}
