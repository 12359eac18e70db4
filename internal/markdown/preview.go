package markdown

import (
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// RenderPreview renders note content as styled terminal output for preview
// panes. Rendering failures degrade to a message rather than an error; a
// broken preview should never block browsing.
func RenderPreview(content string, width int) string {
	if width <= 0 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "Error rendering markdown"
	}

	out, err := r.Render(content)
	if err != nil {
		return "Error rendering markdown"
	}

	return out
}
