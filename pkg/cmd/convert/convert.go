package convert

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/knobase/kb/internal/state"
)

var converter = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

func NewCmdConvert(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a Markdown file to a standalone HTML file.",
		Long: heredoc.Doc(`
			Convert renders a Markdown file with a CommonMark engine and
			writes the HTML next to the input, or wherever --output points.
			This is for sharing single documents outside the knowledge base;
			notes served over HTTP use the built-in renderer instead.
		`),
		Example: heredoc.Doc(`
			kb convert notes.md
			kb convert notes.md --output /tmp/notes.html
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Destination path for the HTML file.")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := converter.Convert(source, &buf); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".html"
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	fmt.Printf("Converted %s -> %s\n", args[0], output)
	return nil
}
