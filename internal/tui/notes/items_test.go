package notes

import (
	"strings"
	"testing"

	"github.com/knobase/kb/internal/repository"
)

func TestListItemRendersMetadata(t *testing.T) {
	t.Parallel()

	folder := "Work"
	item := ListItem{note: &repository.Note{
		ID:         1,
		Title:      "standup notes",
		Content:    "discussed roadmap",
		Date:       "2024/3/5",
		Permission: repository.PermissionPrivate,
		Folder:     &folder,
	}}

	if got := item.Title(); got != "standup notes" {
		t.Fatalf("unexpected title %q", got)
	}

	desc := item.Description()
	for _, want := range []string{"[Work]", "private", "2024/3/5"} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description missing %q: %q", want, desc)
		}
	}
}

func TestListItemFilterValueIncludesContent(t *testing.T) {
	t.Parallel()

	item := ListItem{note: &repository.Note{
		Title:   "grocery list",
		Content: "milk and eggs",
	}}

	filter := item.FilterValue()
	for _, want := range []string{"grocery list", "milk and eggs", "[" + repository.Unclassified + "]"} {
		if !strings.Contains(filter, want) {
			t.Fatalf("filter value missing %q: %q", want, filter)
		}
	}
}
