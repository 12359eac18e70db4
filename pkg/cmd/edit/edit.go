package edit

import (
	"fmt"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
	"github.com/knobase/kb/pkg/shared/flags"
)

func NewCmdEdit(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit [id]",
		Aliases: []string{"e", "update"},
		Short:   "Update a note's fields.",
		Long: heredoc.Doc(`
			Edit replaces the given fields of a note and refreshes its date
			stamp. Fields not passed as flags keep their current value.
		`),
		Example: heredoc.Doc(`
			kb edit 1700000000001 --title "New title"
			kb edit 1700000000001 --content "Rewritten" --permission private
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().StringP("title", "t", "", "New title.")
	cmd.Flags().StringP("content", "c", "", "New content.")
	cmd.Flags().StringP("permission", "p", "", "New visibility: public or private.")
	flags.AddFolder(cmd)
	flags.AddPaste(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid note id %q", args[0])
	}

	note, err := s.Repo.Note(id)
	if err != nil {
		return err
	}

	title := note.Title
	if cmd.Flags().Changed("title") {
		title, _ = cmd.Flags().GetString("title")
	}

	content := note.Content
	if cmd.Flags().Changed("content") {
		content, _ = cmd.Flags().GetString("content")
	}
	if pasted, err := flags.HandlePaste(cmd); err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	} else if pasted != "" {
		content = pasted
	}

	permission := note.Permission
	if cmd.Flags().Changed("permission") {
		permText, _ := cmd.Flags().GetString("permission")
		permission = repository.Permission(permText)
		if !permission.Valid() {
			return fmt.Errorf("invalid permission %q: must be public or private", permText)
		}
	}

	folder := note.Folder
	if cmd.Flags().Changed("folder") {
		folder, err = flags.HandleFolder(cmd)
		if err != nil {
			return err
		}
	}

	updated, err := s.Repo.UpdateNote(id, title, content, permission, folder)
	if err != nil {
		return err
	}

	fmt.Printf("Updated note %d: %s [%s]\n", updated.ID, updated.Title, updated.FolderName())
	return nil
}
