package new

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
	"github.com/knobase/kb/internal/state"
	"github.com/knobase/kb/pkg/shared/flags"
)

func NewCmdNew(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "new [title] [content]",
		Aliases: []string{"n"},
		Short:   "Create a new note.",
		Long: heredoc.Doc(`
			Create a new note with a title and content. Content can be given as
			the second argument, read from the clipboard with --paste, or piped
			through later edits.
		`),
		Example: heredoc.Doc(`
			kb new "Docker cheatsheet" "docker ps lists containers"
			kb new "Meeting notes" --paste --folder Work --permission private
		`),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("error: no title given, try again with 'kb new [title]'")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	flags.AddPaste(cmd)
	flags.AddFolder(cmd)
	cmd.Flags().
		StringP("permission", "p", "", "Note visibility: public or private (defaults to the site setting).")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	title := args[0]

	content := strings.Join(args[1:], " ")
	pasted, err := flags.HandlePaste(cmd)
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	if pasted != "" {
		content = pasted
	}

	folder, err := flags.HandleFolder(cmd)
	if err != nil {
		return err
	}

	permText, err := cmd.Flags().GetString("permission")
	if err != nil {
		return err
	}
	permission := repository.Permission(permText)
	if permText == "" {
		siteCfg, err := s.Admin.SiteConfig()
		if err != nil {
			return err
		}
		permission = siteCfg.DefaultPermission
	}
	if !permission.Valid() {
		return fmt.Errorf("invalid permission %q: must be public or private", permText)
	}

	note, err := s.Repo.CreateNote(title, content, permission, folder)
	if err != nil {
		return err
	}

	fmt.Printf("Created note %d: %s [%s]\n", note.ID, note.Title, note.FolderName())
	return nil
}
