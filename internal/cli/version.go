package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/trackhue/api"
	"github.com/macropower/trackhue/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			if !asYAML {
				mustN(fmt.Fprintln(cmd.OutOrStdout(), info))

				return nil
			}

			b, err := api.MarshalYAML(info)
			if err != nil {
				return fmt.Errorf("marshal version: %w", err)
			}

			mustN(cmd.OutOrStdout().Write(b))

			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print as YAML")

	return cmd
}
