package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/render"
	"github.com/macropower/trackhue/pkg/store"
)

var (
	appliedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle  = lipgloss.NewStyle().Bold(true)
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// isTerminal reports whether w is a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// writeReport prints a summary of an engine pass.
func writeReport(w io.Writer, r *engine.Report) {
	if r.Reason != engine.ReasonNone {
		mustN(fmt.Fprintln(w, skippedStyle.Render("nothing applied: "+string(r.Reason))))

		return
	}

	for _, o := range r.Outcomes {
		line := fmt.Sprintf("%d. %s %s", o.Index+1, render.Gradient(o.Rule.StartColor, o.Rule.EndColor), o.Rule.Keyword)
		if o.Status == engine.StatusApplied {
			mustN(fmt.Fprintln(w, appliedStyle.Render("✓"), line,
				fmt.Sprintf("(%d tracks)", len(o.Assignments))))
		} else {
			mustN(fmt.Fprintln(w, skippedStyle.Render("-"), line,
				skippedStyle.Render("("+string(o.Reason)+")")))
		}
	}

	summary := fmt.Sprintf("%d of %d rules applied, %d colors written", len(r.Applied()), len(r.Outcomes), r.Writes)
	if r.Failures > 0 {
		summary += fmt.Sprintf(", %d failed", r.Failures)
	}

	mustN(fmt.Fprintln(w, summary))
}

// notFound describes a missing configuration, suggesting close matches from
// the store.
func notFound(st *store.Store, name string) error {
	matches := suggest(name, st.Names())
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", store.ErrNotFound, name)
	}

	return fmt.Errorf("%w: %q, did you mean %s?", store.ErrNotFound, name, strings.Join(matches, ", "))
}

// suggest returns up to [maxSuggestions] names that fuzzy-match name, best
// first.
func suggest(name string, names []string) []string {
	ranks := fuzzy.Find(name, names)

	var out []string
	for _, r := range ranks {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, fmt.Sprintf("%q", r.Str))
	}

	return out
}
