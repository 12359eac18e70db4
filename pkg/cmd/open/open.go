package open

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/fzf"
	"github.com/knobase/kb/internal/markdown"
	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

func NewCmdOpen(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open [id]",
		Aliases: []string{"o", "view"},
		Short:   "Open a note, picking one interactively when no id is given.",
		Long: heredoc.Doc(`
			Open renders a note's markdown in the terminal. With an id argument
			it opens that note directly; without one it launches a fuzzy finder
			over all notes with a live preview.
		`),
		Example: heredoc.Doc(`
			kb open
			kb open 1700000000001
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().Bool("raw", false, "Print the raw markdown instead of rendering it.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	note, err := pick(args, s)
	if err != nil {
		return err
	}

	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return err
	}

	fmt.Printf("%s  [%s · %s · %s]\n\n", note.Title, note.FolderName(), note.Permission, note.Date)
	if raw {
		fmt.Println(note.Content)
		return nil
	}

	fmt.Println(markdown.RenderPreview(note.Content, 100))
	return nil
}

func pick(args []string, s *state.State) (*repository.Note, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id %q", args[0])
		}
		return s.Repo.Note(id)
	}

	finder := fzf.NewFuzzyFinder("Open note...")
	return finder.Run(s.Repo.Notes())
}
