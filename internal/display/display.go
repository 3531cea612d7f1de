// Package display renders fetched content for the terminal. It is a
// presentation collaborator: the content pipeline hands it finished
// documents and submit verdicts, nothing flows back.
package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/jaytaylor/html2text"
	"golang.org/x/term"

	"github.com/ectools/eccli/internal/client"
)

const fallbackWidth = 80

// TerminalWidth returns the current width of stdout, or 80 when stdout
// is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// RenderHTML converts a description document to plain text wrapped for
// the given width. The part banners pass through untouched since they
// are plain text already.
func RenderHTML(html string, width int) string {
	if width <= 0 {
		width = fallbackWidth
	}
	text, err := html2text.FromString(html, html2text.Options{
		PrettyTables: true,
	})
	if err != nil {
		return "Error converting HTML to text"
	}
	return wrap(text, width)
}

// wrap re-flows long lines to the target width, preserving blank lines
// and never breaking inside a word.
func wrap(text string, width int) string {
	var out strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		out.WriteString(wrapLine(line, width))
	}
	return out.String()
}

func wrapLine(line string, width int) string {
	if len(line) <= width {
		return line
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return line
	}

	var out strings.Builder
	lineLen := 0
	for _, word := range words {
		switch {
		case lineLen == 0:
			out.WriteString(word)
			lineLen = len(word)
		case lineLen+1+len(word) <= width:
			out.WriteByte(' ')
			out.WriteString(word)
			lineLen += 1 + len(word)
		default:
			out.WriteByte('\n')
			out.WriteString(word)
			lineLen = len(word)
		}
	}
	return out.String()
}

// FormatSubmitResponse renders the service's verdict on a submission.
func FormatSubmitResponse(resp *client.SubmitResponse) string {
	var out strings.Builder

	if resp.Correct {
		out.WriteString("✓ Correct!\n")
		if resp.FirstCorrect {
			out.WriteString("  🎉 First to solve!\n")
		}
		fmt.Fprintf(&out, "  Global place: %d\n", resp.GlobalPlace)
		fmt.Fprintf(&out, "  Global score: %d\n", resp.GlobalScore)
		fmt.Fprintf(&out, "  Time: %dms\n", resp.Time)
	} else {
		out.WriteString("✗ Incorrect\n")
		if resp.LengthCorrect {
			out.WriteString("  (Answer length is correct)\n")
		}
	}

	if resp.Message != "" {
		fmt.Fprintf(&out, "  Message: %s\n", resp.Message)
	}
	return out.String()
}
