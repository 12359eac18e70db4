package image

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/knobase/kb/internal/state"
	"github.com/knobase/kb/internal/uploader"
)

var writeClipboard = clipboard.WriteAll

func NewCmdImage(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Work with hosted images.",
	}

	cmd.AddCommand(newCmdUpload(s))

	return cmd
}

func newCmdUpload(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload an image and print its hosted URL.",
		Long: heredoc.Doc(`
			Upload posts an image to an sm.ms compatible host and prints the
			resulting URL as a Markdown image tag, ready to paste into a
			note. Re-uploading a known image reuses its existing URL.
		`),
		Example: heredoc.Doc(`
			kb image upload shot.png
			kb image upload shot.png --clipboard
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint, _ := cmd.Flags().GetString("endpoint")

			url, err := uploader.New(endpoint).Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			tag := fmt.Sprintf("![图片](%s)", url)
			fmt.Println(tag)

			if toClipboard, _ := cmd.Flags().GetBool("clipboard"); toClipboard {
				if err := writeClipboard(tag); err != nil {
					return fmt.Errorf("copy image tag: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("endpoint", "", "Override the upload endpoint.")
	cmd.Flags().Bool("clipboard", false, "Copy the Markdown image tag to the clipboard.")

	return cmd
}
