package importer

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/admin"
	"github.com/knobase/kb/internal/state"
)

func NewCmdImport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "import [file]",
		Aliases: []string{"restore"},
		Short:   "Import notes and folders from a JSON backup.",
		Long: heredoc.Doc(`
			Import reads a backup produced by 'kb export' and loads it into
			the knowledge base. Merge mode keeps existing data and only adds
			documents with new ids; replace mode discards everything first.
		`),
		Example: heredoc.Doc(`
			kb import backup.json
			kb import backup.json --mode replace
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, s)
		},
	}

	cmd.Flags().String("mode", "merge", "Import mode: merge or replace.")
	cmd.Flags().Bool("force", false, "Skip the replace confirmation prompt.")

	return cmd
}

func run(cmd *cobra.Command, args []string, s *state.State) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	modeText, _ := cmd.Flags().GetString("mode")
	mode := admin.ImportMode(modeText)

	if mode == admin.ImportReplace {
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			prompt := confirmation.New(
				"Replace mode deletes all existing notes and folders. Continue?",
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
	}

	result, err := s.Admin.ImportJSON(string(raw), mode)
	if err != nil {
		return err
	}
	if err := s.ReloadRepo(); err != nil {
		return err
	}

	if result.Replaced {
		fmt.Printf("Replaced data: %d note(s), %d folder(s)\n", result.Notes, result.Folders)
	} else {
		fmt.Printf("Imported %d note(s) and %d folder(s)\n", result.Notes, result.Folders)
	}
	return nil
}
