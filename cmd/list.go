package cmd

import (
	"encoding/json"
	"fmt"

	"ezcode/pkg/editable"

	"github.com/spf13/cobra"
)

func newListCmd(opts *options) *cobra.Command {
	var asJSON, all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the editable files of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister, err := opts.lister(!all)
			if err != nil {
				return err
			}
			files, err := lister.List(cmd.Context())
			if err != nil {
				return err
			}
			if !all {
				files = editable.Filter(files)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(files)
			}
			for _, f := range files {
				fmt.Fprintln(out, f)
			}
			if isTerminal(out) {
				label := "editable files"
				if all {
					label = "project files"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%d %s\n", len(files), label)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the list as a JSON array")
	cmd.Flags().BoolVar(&all, "all", false, "List every project file, not only editable ones")
	return cmd
}
