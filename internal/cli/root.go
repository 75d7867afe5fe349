package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/trackhue/api/v1beta1/settings"
	"github.com/macropower/trackhue/pkg/config"
	"github.com/macropower/trackhue/pkg/log"
	"github.com/macropower/trackhue/pkg/session"
	"github.com/macropower/trackhue/pkg/store"
	"github.com/macropower/trackhue/pkg/version"
)

const (
	cmdName = "trackhue"
	cmdDesc = `Keyword-driven color gradients for DAW tracks.`
)

type RootArgs struct {
	LogLevel     string
	LogFormat    string
	SettingsPath string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		StringVar(&ra.SettingsPath, "settings", "", "Path to the trackhue settings file")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("settings", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark settings flag: %w", err))
	}
}

// App loads the settings file, writing defaults on first run.
func (ra *RootArgs) App() (*config.App, error) {
	path := ra.SettingsPath
	if path == "" {
		path = settings.GetPath()
	}

	app, err := config.LoadSettings(path)
	if err != nil {
		return nil, fmt.Errorf("settings %q: %w", path, err)
	}

	return app, nil
}

// Store opens the configuration store named by the settings file.
func (ra *RootArgs) Store() (*config.App, *store.Store, error) {
	app, err := ra.App()
	if err != nil {
		return nil, nil, err
	}

	st, err := app.Store()
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	return app, st, nil
}

// Session opens an editing session on the configuration store.
func (ra *RootArgs) Session() (*session.Session, error) {
	app, st, err := ra.Store()
	if err != nil {
		return nil, err
	}

	return session.Open(st, app.Engine()), nil
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		SilenceUsage:      true,
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewApplyCmd(NewApplyArgs(args)),
		NewUndoCmd(args),
		NewConfigCmd(args),
		NewRuleCmd(args),
		NewSettingsCmd(args),
		NewVersionCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))
		slog.Debug("starting", slog.String("version", version.GetVersion()))

		return nil
	}
}
