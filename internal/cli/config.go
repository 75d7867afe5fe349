package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/macropower/trackhue/pkg/render"
	"github.com/macropower/trackhue/pkg/session"
	"github.com/macropower/trackhue/pkg/store"
)

// lexerForExt maps configuration file extensions to chroma lexers.
var lexerForExt = map[string]string{
	"txt":  "lua",
	"yaml": "yaml",
	"toml": "toml",
}

func NewConfigCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"configs"},
		Short:   "Manage named rule configurations",
	}

	cmd.AddCommand(
		newConfigListCmd(ra),
		newConfigNewCmd(ra),
		newConfigLoadCmd(ra),
		newConfigDeleteCmd(ra),
		newConfigShowCmd(ra),
	)

	return cmd
}

func newConfigListCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List configurations",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, st, err := ra.Store()
			if err != nil {
				return err
			}

			infos, err := st.List()
			if err != nil {
				return fmt.Errorf("list configurations: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(infos) == 0 {
				mustN(fmt.Fprintf(w, "no configurations in %s\n", st.Dir()))

				return nil
			}

			active, _ := st.LoadLastActive()

			for _, info := range infos {
				marker := " "
				name := info.Name
				if name == active {
					marker = "*"
					name = activeStyle.Render(name)
				}

				count := "?"
				if rules, ok := st.Load(info.Name); ok {
					count = fmt.Sprint(len(rules))
				}

				mustN(fmt.Fprintf(w, "%s %s\t%s rules\t%s\n", marker, name, count, humanize.Time(info.ModTime)))
			}

			return nil
		},
	}
}

func newConfigNewCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "new NAME",
		Short: "Create an empty configuration and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ra.Session()
			if err != nil {
				return err
			}

			err = sess.New(args[0])
			if err != nil {
				return fmt.Errorf("new configuration: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "created %q\n", sess.Name()))

			return nil
		},
	}
}

func newConfigLoadCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "load NAME",
		Aliases:           []string{"use"},
		Short:             "Make a configuration active",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: configArgCompletion(ra),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ra.Session()
			if err != nil {
				return err
			}

			err = sess.Load(args[0])
			if errors.Is(err, store.ErrNotFound) {
				if cerr := sess.Store().Check(args[0]); cerr != nil && !errors.Is(cerr, store.ErrNotFound) {
					return fmt.Errorf("load configuration: %w", cerr)
				}

				return notFound(sess.Store(), args[0])
			}
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "loaded %q, %d rules\n", sess.Name(), len(sess.Rules())))

			return nil
		},
	}
}

func newConfigDeleteCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "delete NAME",
		Aliases:           []string{"rm"},
		Short:             "Delete a configuration",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: configArgCompletion(ra),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ra.Session()
			if err != nil {
				return err
			}

			err = sess.Delete(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return notFound(sess.Store(), args[0])
			}
			if err != nil {
				return fmt.Errorf("delete configuration: %w", err)
			}

			w := cmd.OutOrStdout()
			mustN(fmt.Fprintf(w, "deleted %q\n", args[0]))

			if sess.Active() {
				mustN(fmt.Fprintf(w, "active configuration is %q\n", sess.Name()))
			} else {
				mustN(fmt.Fprintln(w, "no active configuration"))
			}

			return nil
		},
	}
}

func newConfigShowCmd(ra *RootArgs) *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:               "show [NAME]",
		Short:             "Print a configuration file, the active one by default",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: configArgCompletion(ra),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := ra.Store()
			if err != nil {
				return err
			}

			name, ok := st.LoadLastActive()
			if len(args) > 0 {
				name, ok = args[0], true
			}

			if !ok {
				return session.ErrNoActive
			}

			data, err := os.ReadFile(st.Path(name))
			if errors.Is(err, os.ErrNotExist) {
				return notFound(st, name)
			}
			if err != nil {
				return fmt.Errorf("read configuration: %w", err)
			}

			if copyOut {
				err := clipboard.WriteAll(string(data))
				if err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
			}

			return writeSource(cmd, string(data), lexerForExt[st.Codec().Ext()])
		},
	}

	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the file contents to the clipboard")

	return cmd
}

// writeSource prints content, highlighted when stdout is a terminal.
func writeSource(cmd *cobra.Command, content, lexer string) error {
	w := cmd.OutOrStdout()
	if !isTerminal(w) {
		mustN(fmt.Fprint(w, content))

		return nil
	}

	pretty, err := render.NewHighlighter(termenv.ColorProfile()).Highlight(content, lexer)
	if err != nil {
		mustN(fmt.Fprint(w, content))

		return fmt.Errorf("highlight: %w", err)
	}

	mustN(fmt.Fprint(w, pretty))

	return nil
}

func configCompletion(ra *RootArgs) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		_, st, err := ra.Store()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var completions []cobra.Completion
		for _, name := range st.Names() {
			if strings.HasPrefix(name, toComplete) {
				completions = append(completions, name)
			}
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

func configArgCompletion(ra *RootArgs) cobra.CompletionFunc {
	complete := configCompletion(ra)

	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return complete(cmd, args, toComplete)
	}
}
