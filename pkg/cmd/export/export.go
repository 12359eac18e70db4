package export

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/admin"
	"github.com/knobase/kb/internal/state"
)

var writeClipboard = clipboard.WriteAll

func NewCmdExport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Aliases: []string{"backup"},
		Short:   "Export notes and folders as JSON or Markdown.",
		Long: heredoc.Doc(`
			Export writes a backup document to stdout, a file, or the
			clipboard. JSON exports can be fed back into 'kb import'; the
			Markdown format is meant for reading, not restoring.
		`),
		Example: heredoc.Doc(`
			kb export --output backup.json
			kb export --format markdown --folder Work
			kb export --scope notes --clipboard
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s)
		},
	}

	cmd.Flags().String("format", "json", "Output format: json or markdown.")
	cmd.Flags().String("scope", "all", "What to include: all, notes, or folders.")
	cmd.Flags().StringP("folder", "f", "", "Only export notes from this folder.")
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout.")
	cmd.Flags().Bool("clipboard", false, "Copy the export to the clipboard.")

	return cmd
}

func run(cmd *cobra.Command, s *state.State) error {
	format, _ := cmd.Flags().GetString("format")
	folder, _ := cmd.Flags().GetString("folder")

	var (
		doc string
		err error
	)
	switch format {
	case "json":
		scopeText, _ := cmd.Flags().GetString("scope")
		doc, err = s.Admin.ExportJSON(admin.ExportScope(scopeText), folder)
	case "markdown", "md":
		doc, err = s.Admin.ExportMarkdown(folder)
	default:
		return fmt.Errorf("unsupported format %q: must be json or markdown", format)
	}
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	toClipboard, _ := cmd.Flags().GetBool("clipboard")

	switch {
	case output != "":
		if err := os.WriteFile(output, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Printf("Exported to %s\n", output)
	case toClipboard:
		if err := writeClipboard(doc); err != nil {
			return fmt.Errorf("copy export: %w", err)
		}
		fmt.Println("Export copied to clipboard.")
	default:
		fmt.Println(doc)
	}

	return s.Admin.MarkBackup()
}
