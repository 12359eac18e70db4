package delete

import (
	"fmt"
	"strconv"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/state"
)

func NewCmdDelete(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"d", "rm"},
		Short:   "Delete a note.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid note id %q", args[0])
			}

			note, err := s.Repo.Note(id)
			if err != nil {
				return err
			}

			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			if !force {
				prompt := confirmation.New(
					fmt.Sprintf("Delete note %q?", note.Title),
					confirmation.No,
				)
				confirmed, err := prompt.RunPrompt()
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := s.Repo.DeleteNote(id); err != nil {
				return err
			}
			fmt.Printf("Deleted note %q\n", note.Title)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt.")

	return cmd
}
