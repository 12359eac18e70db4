package list

import (
	"fmt"
	"sort"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List folders and their notes as a tree.",
		Long: heredoc.Doc(`
			List prints every folder with the notes it contains. Collapsed
			folders show only their note count; pass --all to expand everything.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().BoolP("all", "a", false, "Expand collapsed folders too.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	expandAll, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	grouped := s.Repo.NotesByFolder()

	names := make([]string, 0, len(grouped))
	for _, folder := range s.Repo.Folders() {
		names = append(names, folder)
	}
	// Folders that only exist through note references come after the
	// registered ones, the unclassified group last.
	var orphaned []string
	for name := range grouped {
		if name == repository.Unclassified || s.Repo.HasFolder(name) {
			continue
		}
		orphaned = append(orphaned, name)
	}
	sort.Strings(orphaned)
	names = append(names, orphaned...)
	names = append(names, repository.Unclassified)

	for _, name := range names {
		notes := grouped[name]
		marker := "▾"
		expanded := expandAll || s.Repo.Expanded(name)
		if !expanded {
			marker = "▸"
		}
		fmt.Printf("%s %s (%d)\n", marker, name, len(notes))
		if !expanded {
			continue
		}
		for _, note := range notes {
			fmt.Printf("  %d  %s [%s]\n", note.ID, note.Title, note.Permission)
		}
	}

	return nil
}
