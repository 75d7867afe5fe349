package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/trackhue/api/v1beta1/settings"
)

func NewSettingsCmd(ra *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect or reset the trackhue settings file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the active settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app, err := ra.App()
				if err != nil {
					return err
				}

				b, err := app.Settings.MarshalYAML()
				if err != nil {
					return err //nolint:wrapcheck // Already describes the marshal.
				}

				mustN(fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", app.Path))

				return writeSource(cmd, string(b), "yaml")
			},
		},
		newSettingsInitCmd(ra),
	)

	return cmd
}

func newSettingsInitCmd(ra *RootArgs) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file and its JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := ra.SettingsPath
			if path == "" {
				path = settings.GetPath()
			}

			err := settings.WriteDefault(path, force)
			if err != nil {
				return err //nolint:wrapcheck // Already describes the write.
			}

			mustN(fmt.Fprintln(cmd.OutOrStdout(), path))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Back up and replace an existing settings file")

	return cmd
}
