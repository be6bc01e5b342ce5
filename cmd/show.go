package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Print an editable file",
		Long:  `Print the contents of one editable file. Paths are relative to the project root.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.codeView(cmd)
			if err != nil {
				return err
			}
			path := filepath.ToSlash(filepath.Clean(args[0]))
			f, err := view.Open(cmd.Context(), path)
			if err != nil {
				opts.logger.Debug("Failed to open file", zap.String("file", path), zap.Error(err))
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), f.Content)
			return err
		},
	}
}
