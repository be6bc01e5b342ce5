package cmd

import (
	"fmt"

	"ezcode/pkg/project"

	"github.com/spf13/cobra"
)

func newTreeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show the editable files as a directory tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.codeView(cmd)
			if err != nil {
				return err
			}
			files := view.Files()
			if len(files) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No editable files found")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), project.RenderTree(files))
			return nil
		},
	}
}
