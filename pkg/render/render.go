// Package render formats configuration files, track colors and diffs for
// terminal output.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/aymanbagabas/go-udiff"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/track"
)

// DefaultStyle is the chroma style used by [Highlighter].
const DefaultStyle = "dracula"

// Highlighter renders source with chroma, choosing a formatter from the
// terminal's color profile.
type Highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter creates a [Highlighter] for the given color profile.
func NewHighlighter(profile termenv.Profile) *Highlighter {
	formatterName := "noop"
	switch profile {
	case termenv.TrueColor:
		formatterName = "terminal16m"

	case termenv.ANSI256:
		formatterName = "terminal256"

	case termenv.ANSI:
		formatterName = "terminal8"

	case termenv.Ascii:
	}

	return &Highlighter{
		formatter: formatters.Get(formatterName),
		style:     styles.Get(DefaultStyle),
	}
}

// Highlight renders content using the named chroma lexer. Unknown lexers fall
// back to plain text.
func (h *Highlighter) Highlight(content, lexerName string) (string, error) {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}

	b := &bytes.Buffer{}

	err = h.formatter.Format(b, h.style, it)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return b.String(), nil
}

// Swatch renders a two-cell block in color c. Invalid colors render as "??".
func Swatch(c color.Color) string {
	if !c.Valid() {
		return "??"
	}

	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// Gradient renders the start and end swatches of a rule.
func Gradient(start, end color.Color) string {
	return Swatch(start) + "→" + Swatch(end)
}

// Tracks renders one line per track with its custom color, indented by
// folder depth.
func Tracks(tracks []track.Track) string {
	sb := &strings.Builder{}
	depth := 0

	for _, t := range tracks {
		c := "-"
		if t.HasColor {
			c = t.Color.Hex()
		}

		fmt.Fprintf(sb, "%s%s\t%s\n", strings.Repeat("  ", max(depth, 0)), t.Name, c)

		depth += t.Depth
	}

	return sb.String()
}

// Diff returns a unified diff between two renderings. It is empty when they
// are equal.
func Diff(oldLabel, newLabel, before, after string) string {
	return udiff.Unified(oldLabel, newLabel, before, after)
}
