package flags

import (
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/repository"
)

func AddFolder(cmd *cobra.Command) {
	cmd.Flags().
		StringP("folder", "f", "", "Folder to place the note in (empty means unclassified).")
}

// HandleFolder resolves the --folder flag to a folder reference, nil when the
// note should stay unclassified.
func HandleFolder(cmd *cobra.Command) (*string, error) {
	folder, err := cmd.Flags().GetString("folder")
	if err != nil {
		return nil, err
	}
	if folder == "" || folder == repository.Unclassified {
		return nil, nil
	}
	return &folder, nil
}
