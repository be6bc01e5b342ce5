package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ezcode/pkg/project"

	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the editable files whenever they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, _, err := opts.codeView(cmd)
			if err != nil {
				return err
			}
			gi, err := opts.ignoreMatcher()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printList := func(files []string) {
				fmt.Fprintf(out, "# %d editable files\n", len(files))
				for _, f := range files {
					fmt.Fprintln(out, f)
				}
			}
			printList(view.Files())

			w := project.NewWatcher(view, opts.root, printList,
				project.WithDebounce(opts.cfg.WatchDebounce),
				project.WithWatchLogger(opts.logger),
				project.WithWatchIgnore(gi, opts.cfg.Prune))
			if err := w.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return w.Stop()
		},
	}
}
