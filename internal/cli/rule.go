package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/macropower/trackhue/pkg/color"
	"github.com/macropower/trackhue/pkg/render"
	"github.com/macropower/trackhue/pkg/rule"
	"github.com/macropower/trackhue/pkg/session"
)

func NewRuleCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rule",
		Aliases: []string{"rules"},
		Short:   "Edit the rules of the active configuration",
	}

	cmd.AddCommand(
		newRuleListCmd(ra),
		newRuleAddCmd(ra),
		newRuleRemoveCmd(ra),
		newRuleMoveCmd(ra),
		newRuleEditCmd(ra),
	)

	return cmd
}

// activeSession opens a session that has an active configuration.
func activeSession(ra *RootArgs) (*session.Session, error) {
	sess, err := ra.Session()
	if err != nil {
		return nil, err
	}

	if !sess.Active() {
		return nil, session.ErrNoActive
	}

	return sess, nil
}

// parseIndex converts a 1-based rule number to a list index.
func parseIndex(s string, rules rule.List) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid argument %q: rule number must be an integer", s)
	}

	if n < 1 || n > len(rules) {
		return 0, fmt.Errorf("%w: rule %d of %d", rule.ErrIndexOutOfRange, n, len(rules))
	}

	return n - 1, nil
}

func newRuleListCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List rules in application order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := activeSession(ra)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			rules := sess.Rules()

			if len(rules) == 0 {
				mustN(fmt.Fprintf(w, "%q has no rules\n", sess.Name()))

				return nil
			}

			for i, r := range rules {
				match := ""
				if r.ExactMatch {
					match = " (exact)"
				}

				mustN(fmt.Fprintf(w, "%d. %s %s → %s %s%s\n",
					i+1, render.Gradient(r.StartColor, r.EndColor),
					r.StartColor, r.EndColor, r.Keyword, match))
			}

			return nil
		},
	}
}

func newRuleAddCmd(ra *RootArgs) *cobra.Command {
	var exact bool

	cmd := &cobra.Command{
		Use:   "add [KEYWORDS START END]",
		Short: "Append a rule, prompting for it when no arguments are given",
		Example: `  trackhue rule add "kick, snare" '#ff0000' '#0000ff'
  trackhue rule add vox '#00ff00' '#00ffff' --exact`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("accepts 0 or 3 args, received %d", len(args))
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(ra)
			if err != nil {
				return err
			}

			var r rule.Rule
			if len(args) == 0 {
				r, err = promptRule(cmd.Context())
			} else {
				r, err = parseRule(args[0], args[1], args[2], exact)
			}
			if err != nil {
				return err
			}

			err = sess.AddRule(r)
			if err != nil {
				return fmt.Errorf("add rule: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "added rule %d to %q\n", len(sess.Rules()), sess.Name()))

			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "Match whole track names only")

	return cmd
}

func newRuleRemoveCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "rm N",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove rule number N",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(ra)
			if err != nil {
				return err
			}

			i, err := parseIndex(args[0], sess.Rules())
			if err != nil {
				return err
			}

			err = sess.DeleteRule(i)
			if err != nil {
				return fmt.Errorf("remove rule: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "removed rule %d from %q\n", i+1, sess.Name()))

			return nil
		},
	}
}

func newRuleMoveCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:       "move N up|down",
		Short:     "Move rule number N one position up or down",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []cobra.Completion{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var delta int

			switch args[1] {
			case "up":
				delta = -1

			case "down":
				delta = 1

			default:
				return fmt.Errorf("invalid argument %q: direction must be up or down", args[1])
			}

			sess, err := activeSession(ra)
			if err != nil {
				return err
			}

			i, err := parseIndex(args[0], sess.Rules())
			if err != nil {
				return err
			}

			j, err := sess.MoveRule(i, delta)
			if err != nil {
				return fmt.Errorf("move rule: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "rule %d is now rule %d\n", i+1, j+1))

			return nil
		},
	}
}

func newRuleEditCmd(ra *RootArgs) *cobra.Command {
	var (
		keyword    string
		start, end string
		exact      bool
	)

	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Change fields of rule number N",
		Example: `  trackhue rule edit 2 --start '#ffaa00'
  trackhue rule edit 1 --keyword "bass, sub" --exact=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := activeSession(ra)
			if err != nil {
				return err
			}

			rules := sess.Rules()

			i, err := parseIndex(args[0], rules)
			if err != nil {
				return err
			}

			r, err := editRule(rules[i], cmd.Flags(), keyword, start, end, exact)
			if err != nil {
				return err
			}

			err = sess.UpdateRule(i, r)
			if err != nil {
				return fmt.Errorf("edit rule: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "updated rule %d: %s\n", i+1, r))

			return nil
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "Comma-separated keywords")
	cmd.Flags().StringVar(&start, "start", "", "Start color, as #rrggbb")
	cmd.Flags().StringVar(&end, "end", "", "End color, as #rrggbb")
	cmd.Flags().BoolVar(&exact, "exact", false, "Match whole track names only")

	return cmd
}

// editRule applies the changed flags to r. Fields without a changed flag are
// kept as stored, even if they would not validate.
func editRule(r rule.Rule, flags *pflag.FlagSet, keyword, start, end string, exact bool) (rule.Rule, error) {
	if flags.Changed("keyword") {
		r.Keyword = keyword
		if len(r.Keywords()) == 0 {
			return rule.Rule{}, fmt.Errorf("rule %q: %w", keyword, rule.ErrNoKeywords)
		}
	}

	if flags.Changed("start") {
		c, err := color.ParseHex(start)
		if err != nil {
			return rule.Rule{}, fmt.Errorf("start color: %w", err)
		}

		r.StartColor = c
	}

	if flags.Changed("end") {
		c, err := color.ParseHex(end)
		if err != nil {
			return rule.Rule{}, fmt.Errorf("end color: %w", err)
		}

		r.EndColor = c
	}

	if flags.Changed("exact") {
		r.ExactMatch = exact
	}

	return r, nil
}
