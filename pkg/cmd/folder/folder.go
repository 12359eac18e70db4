package folder

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/state"
)

func NewCmdFolder(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folder",
		Aliases: []string{"f"},
		Short:   "Manage folders.",
		Long: heredoc.Doc(`
			Folders group notes. Deleting a folder keeps its notes and moves
			them to the unclassified group.
		`),
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdRename(s),
		newCmdDelete(s),
		newCmdToggle(s),
		newCmdSelect(s),
	)

	return cmd
}

func newCmdAdd(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "add [name]",
		Aliases: []string{"a", "create"},
		Short:   "Create a new folder.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Repo.CreateFolder(args[0]); err != nil {
				return err
			}
			fmt.Printf("Created folder %q\n", args[0])
			return nil
		},
	}
}

func newCmdRename(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "rename [old] [new]",
		Aliases: []string{"r", "mv"},
		Short:   "Rename a folder, updating every note in it.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Repo.RenameFolder(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed folder %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newCmdDelete(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete [name]",
		Aliases: []string{"d", "rm"},
		Short:   "Delete a folder, moving its notes to unclassified.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}

			if !force {
				prompt := confirmation.New(
					fmt.Sprintf("Delete folder %q? Its notes move to unclassified.", args[0]),
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

			moved, err := s.Repo.DeleteFolder(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted folder %q, moved %d note(s) to unclassified\n", args[0], moved)
			return nil
		},
	}

	cmd.Flags().Bool("force", false, "Skip the confirmation prompt.")

	return cmd
}

func newCmdToggle(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [name]",
		Short: "Collapse or expand a folder in tree listings.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expanded, err := s.Repo.ToggleFolderExpansion(args[0])
			if err != nil {
				return err
			}
			if expanded {
				fmt.Printf("Folder %q expanded\n", args[0])
			} else {
				fmt.Printf("Folder %q collapsed\n", args[0])
			}
			return nil
		},
	}
}

func newCmdSelect(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "select [name]",
		Short: "Toggle the current folder selection.",
		Long: heredoc.Doc(`
			Select marks a folder as the current one; selecting it again clears
			the selection. The selection is transient and not persisted.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s.Repo.SelectFolder(args[0])
			if current := s.Repo.SelectedFolder(); current != "" {
				fmt.Printf("Selected folder %q\n", current)
			} else {
				fmt.Println("Selection cleared")
			}
			return nil
		},
	}
}
