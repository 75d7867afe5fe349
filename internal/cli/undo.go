package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewUndoCmd(ra *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:               "undo [project]",
		Short:             "Revert the most recent apply",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: projectCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) > 0 {
				path = args[0]
			}

			path, err := findProject(path)
			if err != nil {
				return err
			}

			app, err := ra.App()
			if err != nil {
				return err
			}

			p, err := loadProject(app, path)
			if err != nil {
				return err
			}

			desc, err := p.Undo()
			if err != nil {
				return fmt.Errorf("undo: %w", err)
			}

			err = p.Save()
			if err != nil {
				return fmt.Errorf("save project: %w", err)
			}

			mustN(fmt.Fprintf(cmd.OutOrStdout(), "undid %q, %d steps left\n", desc, len(p.History())))

			return nil
		},
	}
}
