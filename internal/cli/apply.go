package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/trackhue/api"
	"github.com/macropower/trackhue/pkg/config"
	"github.com/macropower/trackhue/pkg/engine"
	"github.com/macropower/trackhue/pkg/log"
	"github.com/macropower/trackhue/pkg/project"
	"github.com/macropower/trackhue/pkg/render"
	"github.com/macropower/trackhue/pkg/session"
	"github.com/macropower/trackhue/pkg/store"
	"github.com/macropower/trackhue/pkg/watch"
)

const (
	cmdExamples = `  # Apply the active configuration to the project in the current directory:
  trackhue apply

  # Preview the changes without saving:
  trackhue apply ./song/trackhue.project.yaml --dry-run

  # Apply a specific configuration:
  trackhue apply --config drums

  # Re-apply whenever a configuration changes:
  trackhue apply --watch

  # Revert the last apply:
  trackhue undo

  # Manage configurations and rules:
  trackhue config new drums
  trackhue rule add "kick, snare" '#ff0000' '#0000ff'`
)

// ErrNoProject indicates that no project file was given or found.
var ErrNoProject = errors.New("no project file found")

type ApplyArgs struct {
	*RootArgs

	Project string
	Config  string
	DryRun  bool
	Watch   bool
}

func NewApplyArgs(rootArgs *RootArgs) *ApplyArgs {
	return &ApplyArgs{
		RootArgs: rootArgs,
	}
}

func (aa *ApplyArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&aa.Config, "config", "c", "", "Apply the named configuration instead of the active one")
	cmd.Flags().BoolVar(&aa.DryRun, "dry-run", false, "Print the color changes without saving the project")
	cmd.Flags().BoolVarP(&aa.Watch, "watch", "w", false, "Re-apply whenever a configuration changes")

	err := cmd.RegisterFlagCompletionFunc("config", configCompletion(aa.RootArgs))
	if err != nil {
		panic(fmt.Errorf("register config completion: %w", err))
	}
}

func NewApplyCmd(aa *ApplyArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [project]",
		Short: "Apply the active configuration to a project",
		Long: `Color every track group whose root track name matches a rule keyword,
using the active configuration (or --config). Without a project path, the
nearest trackhue.project.yaml in the current directory or its parents is used.`,
		Example:           cmdExamples,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: projectCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				aa.Project = args[0]
			}

			return runApply(cmd, aa)
		},
	}
	aa.AddFlags(cmd)

	return cmd
}

func runApply(cmd *cobra.Command, aa *ApplyArgs) error {
	projectPath, err := findProject(aa.Project)
	if err != nil {
		return err
	}

	app, st, err := aa.Store()
	if err != nil {
		return err
	}

	if aa.Config != "" && !st.Exists(aa.Config) {
		return notFound(st, aa.Config)
	}

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	err = applyOnce(ctx, w, app, st, projectPath, aa)
	if err != nil || !aa.Watch {
		return err
	}

	ext := "." + st.Codec().Ext()

	err = os.MkdirAll(st.Dir(), 0o700)
	if err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	watcher, err := watch.New([]string{st.Dir()}, watch.WithFilter(func(path string) bool {
		return strings.HasSuffix(path, ext)
	}))
	if err != nil {
		return fmt.Errorf("watch %q: %w", st.Dir(), err)
	}
	defer watcher.Close()

	slog.Info("watching for configuration changes", slog.String("dir", st.Dir()))

	watcher.Run(ctx, func(ctx context.Context) {
		err := applyOnce(ctx, w, app, st, projectPath, aa)
		if err != nil {
			log.WithContext(ctx).ErrorContext(ctx, "apply", slog.Any("err", err))
		}
	})

	return nil
}

func applyOnce(
	ctx context.Context,
	w io.Writer,
	app *config.App,
	st *store.Store,
	projectPath string,
	aa *ApplyArgs,
) error {
	p, err := loadProject(app, projectPath)
	if err != nil {
		return err
	}

	before := render.Tracks(p.Tracks())

	var report *engine.Report
	if aa.Config != "" {
		rules, ok := st.Load(aa.Config)
		if !ok {
			return notFound(st, aa.Config)
		}

		report = app.Engine().ApplyAll(ctx, rules, p)
	} else {
		report = session.DirectApply(ctx, st, app.Engine(), p)
	}

	writeReport(w, report)

	if aa.DryRun {
		name := filepath.Base(projectPath)
		mustN(fmt.Fprint(w, render.Diff(name, name+" (applied)", before, render.Tracks(p.Tracks()))))

		return nil
	}

	if report.Writes == 0 {
		return nil
	}

	err = p.Save()
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}

	return nil
}

func loadProject(app *config.App, path string) (*project.Project, error) {
	order, err := app.Settings.Order()
	if err != nil {
		return nil, fmt.Errorf("channel order: %w", err)
	}

	p, err := project.Load(path, project.WithChannelOrder(order))
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}

	return p, nil
}

// findProject returns path, or searches for a project file from the working
// directory upwards when path is empty.
func findProject(path string) (string, error) {
	if path != "" {
		return path, nil
	}

	found, err := api.FindFile(".", project.FileNames)
	if err != nil {
		return "", fmt.Errorf("find project: %w", err)
	}

	if found == "" {
		return "", fmt.Errorf("%w: looked for %s", ErrNoProject, strings.Join(project.FileNames, ", "))
	}

	slog.Debug("found project file", slog.String("path", found))

	return found, nil
}

func projectCompletion(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return []cobra.Completion{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}
