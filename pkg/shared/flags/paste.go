package flags

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var readClipboard = clipboard.ReadAll

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().
		Bool("paste", false, "Use clipboard contents as the note content.")
}

// HandlePaste returns the clipboard contents when --paste was given, or the
// empty string when it was not.
func HandlePaste(cmd *cobra.Command) (string, error) {
	paste, err := cmd.Flags().GetBool("paste")
	if err != nil {
		return "", err
	}
	if !paste {
		return "", nil
	}
	return readClipboard()
}
