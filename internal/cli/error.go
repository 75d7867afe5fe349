package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/trackhue/pkg/literal"
	"github.com/macropower/trackhue/pkg/project"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/session"
	"github.com/macropower/trackhue/pkg/store"
)

var indentStyle = lipgloss.NewStyle().MarginLeft(2)

// errorHints maps error classes to the next step a user can take.
var errorHints = []struct {
	err  error
	hint string
}{
	{session.ErrNoActive, "Create one with `" + cmdName + " config new NAME`, or activate one with `" + cmdName + " config load NAME`."},
	{store.ErrNotFound, "Run `" + cmdName + " config list` to see the stored configurations."},
	{store.ErrMalformed, "Fix or delete the file; it is ignored until it can be read."},
	{rule.ErrIndexOutOfRange, "Run `" + cmdName + " rule list` to see the rule numbers."},
	{ErrNoProject, "Pass a project path, or run from a directory containing " + project.FileNames[0] + "."},
	{ErrNotInteractive, "Pass KEYWORDS START END as arguments to add a rule without a prompt."},
	{project.ErrNothingToUndo, "Only applies made by `" + cmdName + " apply` can be undone."},
}

// ErrorHandler prints err in fang's style, followed by a hint when the error
// is one trackhue knows how to recover from.
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, indentStyle.Render(err.Error())))
	mustN(fmt.Fprintln(w))

	if hint := errorHint(err); hint != "" {
		mustN(fmt.Fprintln(w, indentStyle.Render(hint)))
		mustN(fmt.Fprintln(w))

		return
	}

	if isUsageError(err) {
		mustN(fmt.Fprintln(w, lipgloss.JoinHorizontal(
			lipgloss.Left,
			styles.ErrorText.UnsetWidth().Render("Try"),
			styles.Program.Flag.Render("--help"),
			styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render("for usage."),
		)))
		mustN(fmt.Fprintln(w))
	}
}

// errorHint returns the recovery hint for err, or "".
func errorHint(err error) string {
	var synErr *literal.SyntaxError
	if errors.As(err, &synErr) {
		return fmt.Sprintf("Fix the syntax at line %d, column %d; the file is ignored until it can be read.",
			synErr.Line, synErr.Col)
	}

	for _, h := range errorHints {
		if errors.Is(err, h.err) {
			return h.hint
		}
	}

	return ""
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
