// Package markdown renders the deliberately minimal markdown subset the
// knowledge base uses for note content. It is an ordered text transform, not
// a conformant markdown implementation: no nested lists, no tables, and raw
// HTML in the source passes through untouched, so the output is only as
// trusted as the input.
package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fenceRe      = regexp.MustCompile("(?s)```(.*?)```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	h3Re         = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Re         = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Re         = regexp.MustCompile(`(?m)^# (.*)$`)
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	listItemRe   = regexp.MustCompile(`(?m)^- (.+)$`)
	listRunRe    = regexp.MustCompile(`(?m)^<li>.*</li>$(\n^<li>.*</li>$)*`)
	hrRe         = regexp.MustCompile(`(?m)^---$`)
)

// Code spans are swapped for tokens before the other rules run so their
// contents are never re-matched, and swapped back at the end.
const tokenMark = "\x00"

// Render converts text to HTML. The rule order is fixed: longer delimiters
// run before their prefixes (***, **, *; ###, ##, #) and code is carved out
// first so nothing rewrites its contents.
func Render(text string) string {
	if text == "" {
		return ""
	}

	var protected []string
	protect := func(emitted string) string {
		token := fmt.Sprintf("%skb%d%s", tokenMark, len(protected), tokenMark)
		protected = append(protected, emitted)
		return token
	}

	html := fenceRe.ReplaceAllStringFunc(text, func(match string) string {
		content := fenceRe.FindStringSubmatch(match)[1]
		return protect("<pre><code>" + content + "</code></pre>")
	})

	html = inlineCodeRe.ReplaceAllStringFunc(html, func(match string) string {
		content := inlineCodeRe.FindStringSubmatch(match)[1]
		return protect("<code>" + content + "</code>")
	})

	html = h3Re.ReplaceAllString(html, "<h3>$1</h3>")
	html = h2Re.ReplaceAllString(html, "<h2>$1</h2>")
	html = h1Re.ReplaceAllString(html, "<h1>$1</h1>")

	html = boldItalicRe.ReplaceAllString(html, "<strong><em>$1</em></strong>")
	html = boldRe.ReplaceAllString(html, "<strong>$1</strong>")
	html = italicRe.ReplaceAllString(html, "<em>$1</em>")

	html = linkRe.ReplaceAllString(html, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)

	html = listItemRe.ReplaceAllString(html, "<li>$1</li>")
	html = listRunRe.ReplaceAllStringFunc(html, func(run string) string {
		return "<ul>" + run + "</ul>"
	})

	html = hrRe.ReplaceAllString(html, "<hr>")

	html = wrapParagraphs(html)

	for i, emitted := range protected {
		token := fmt.Sprintf("%skb%d%s", tokenMark, i, tokenMark)
		html = strings.Replace(html, token, emitted, 1)
	}

	return html
}

// wrapParagraphs wraps blank-line-separated blocks that do not already start
// with a block-level tag (or a protected code block) in paragraph tags.
func wrapParagraphs(html string) string {
	blocks := strings.Split(html, "\n\n")
	for i, block := range blocks {
		if isBlockLevel(block) {
			continue
		}
		blocks[i] = "<p>" + block + "</p>"
	}
	return strings.Join(blocks, "\n")
}

func isBlockLevel(block string) bool {
	if strings.HasPrefix(block, tokenMark) {
		return true
	}
	for _, prefix := range []string{"<h", "<u", "<p", "<l"} {
		if strings.HasPrefix(block, prefix) {
			return true
		}
	}
	return false
}
