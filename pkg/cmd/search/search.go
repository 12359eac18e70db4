package search

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "find"},
		Short:   "Search notes by title and content.",
		Long: heredoc.Doc(`
			Search matches the query case-insensitively against note titles and
			content. Successful queries are remembered; recall them with
			--history and forget them with --clear-history.
		`),
		Example: heredoc.Doc(`
			kb search docker
			kb search "error handling" --folder Work
			kb search --history
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().StringP("folder", "f", "", "Limit matches to one folder.")
	cmd.Flags().StringP("permission", "p", "", "Limit matches to public or private notes.")
	cmd.Flags().Bool("history", false, "Show recent searches instead of searching.")
	cmd.Flags().Bool("clear-history", false, "Forget all recorded searches.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	if show, _ := cmd.Flags().GetBool("history"); show {
		entries := s.History.List()
		if len(entries) == 0 {
			fmt.Println("No recent searches.")
			return nil
		}
		for i, entry := range entries {
			fmt.Printf("%2d. %s\n", i+1, entry)
		}
		return nil
	}

	if clear, _ := cmd.Flags().GetBool("clear-history"); clear {
		if err := s.History.Clear(); err != nil {
			return err
		}
		fmt.Println("Search history cleared.")
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("error: no query given, try again with 'kb search [query]'")
	}
	query := strings.Join(args, " ")

	folder, err := cmd.Flags().GetString("folder")
	if err != nil {
		return err
	}
	permText, err := cmd.Flags().GetString("permission")
	if err != nil {
		return err
	}
	permission := repository.Permission(permText)
	if permText != "" && !permission.Valid() {
		return fmt.Errorf("invalid permission %q: must be public or private", permText)
	}

	matches := s.Repo.FilterNotes(query, folder, permission)
	if err := s.History.Record(query); err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, note := range matches {
		fmt.Printf("%d  %s [%s · %s]\n", note.ID, note.Title, note.FolderName(), note.Permission)
	}
	fmt.Printf("\n%d match(es)\n", len(matches))

	return nil
}
