package cmd

import (
	"encoding/json"
	"fmt"

	"ezcode/pkg/version"

	"github.com/spf13/cobra"
)

// newVersionCmd displays the current version of ezcode.
// The --short flag prints the version number only.
func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of ezcode",
		Args:  cobra.NoArgs,
		// No project or config is needed to report the version.
		PersistentPreRunE: skipSetup,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			out := cmd.OutOrStdout()
			switch {
			case short:
				fmt.Fprintln(out, v.Version)
			case asJSON:
				return json.NewEncoder(out).Encode(v)
			default:
				fmt.Fprintln(out, v.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	cmd.Flags().Bool("json", false, "Print version information as JSON")
	return cmd
}
