package cmd

import (
	"fmt"
	"path/filepath"

	"ezcode/pkg/editable"

	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <path>...",
		Short: "Explain why paths are or are not editable",
		Long: `Classify each path and print the rule that decided it. Nothing is read from
disk; the paths do not have to exist.`,
		PersistentPreRunE: skipSetup,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				d := editable.Explain(filepath.ToSlash(arg))
				if d.Rule == nil {
					fmt.Fprintf(out, "%s\t%s\tno rule matched\n", d.Path, d.Verdict)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\t%s (%s)\n", d.Path, d.Verdict, d.Rule.Name, d.Rule.Pattern)
			}
			return nil
		},
	}
}
