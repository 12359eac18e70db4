package move

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
)

func NewCmdMove(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "move [id] [folder]",
		Aliases: []string{"m"},
		Short:   "Move a note into a folder.",
		Long: heredoc.Doc(`
			Move reassigns a note to a folder. Use "unclassified" or an empty
			folder name to clear the assignment.
		`),
		Example: heredoc.Doc(`
			kb move 1700000000001 Work
			kb move 1700000000001 unclassified
		`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note id %q", args[0])
			}

			var target *string
			if args[1] != "" && args[1] != repository.Unclassified {
				target = &args[1]
			}

			moved, err := s.Repo.MoveNoteToFolder(id, target)
			if err != nil {
				return err
			}
			if !moved {
				fmt.Println("Note is already there.")
				return nil
			}

			note, err := s.Repo.Note(id)
			if err != nil {
				return err
			}
			fmt.Printf("Moved %q to %s\n", note.Title, note.FolderName())
			return nil
		},
	}
}
