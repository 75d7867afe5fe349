package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/rule"
)

// ErrNotInteractive indicates that a prompt was needed but stdin is not a
// terminal.
var ErrNotInteractive = errors.New("not running interactively")

// promptRule asks for the fields of a new rule on the terminal.
func promptRule(ctx context.Context) (rule.Rule, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return rule.Rule{}, ErrNotInteractive
	}

	var (
		keyword    string
		start, end string
		exact      bool
	)

	validateHex := func(s string) error {
		_, err := color.ParseHex(s)

		return err //nolint:wrapcheck // Shown inline by the form.
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Keywords").
				Description("Comma-separated; a group whose root track name contains one is colored.").
				Placeholder("kick, snare").
				Value(&keyword).
				Validate(func(s string) error {
					if strings.Trim(s, ", ") == "" {
						return rule.ErrNoKeywords
					}

					return nil
				}),

			huh.NewInput().
				Title("Start color").
				Placeholder("#ff0000").
				Value(&start).
				Validate(validateHex),

			huh.NewInput().
				Title("End color").
				Placeholder("#0000ff").
				Value(&end).
				Validate(validateHex),

			huh.NewConfirm().
				Title("Exact match?").
				Affirmative("Yes").
				Negative("No").
				Value(&exact),
		),
	).
		WithShowHelp(false).
		WithTheme(huh.ThemeCharm())

	err := form.RunWithContext(ctx)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("run rule prompt: %w", err)
	}

	return parseRule(keyword, start, end, exact)
}

// parseRule builds a rule from user input.
func parseRule(keyword, start, end string, exact bool) (rule.Rule, error) {
	sc, err := color.ParseHex(start)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("start color: %w", err)
	}

	ec, err := color.ParseHex(end)
	if err != nil {
		return rule.Rule{}, fmt.Errorf("end color: %w", err)
	}

	r := rule.New(keyword, sc, ec, exact)

	err = r.Validate()
	if err != nil {
		return rule.Rule{}, err //nolint:wrapcheck // Already names the rule.
	}

	return r, nil
}
