package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"ezcode/pkg/project"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newDumpCmd(opts *options) *cobra.Command {
	var output, treeOutput string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Bundle every editable file into a single text file",
		Long: `Write the editable-file tree followed by the contents of every editable file
into one output file. Binary, oversized and unreadable files are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, reader, err := opts.codeView(cmd)
			if err != nil {
				return err
			}
			paths := view.Files()
			if len(paths) == 0 {
				opts.logger.Warn("No editable files to bundle")
				return nil
			}

			files, err := project.LoadAll(cmd.Context(), reader, paths, opts.cfg.MaxWorkers, opts.logger)
			if err != nil {
				return fmt.Errorf("failed to load files: %w", err)
			}
			tree := project.RenderTree(paths)

			if treeOutput != "" {
				if err := writeFile(treeOutput, []byte(tree)); err != nil {
					return fmt.Errorf("failed to write tree structure: %w", err)
				}
			}

			if err := ensureDirectory(filepath.Dir(output)); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer func() {
				if err := out.Close(); err != nil {
					opts.logger.Error("Failed to close output file", zap.String("file", output), zap.Error(err))
				}
			}()
			if err := project.WriteBundle(out, tree, files); err != nil {
				return fmt.Errorf("failed to write bundle: %w", err)
			}

			opts.logger.Info("Bundled editable files",
				zap.String("outputFile", output),
				zap.Int("editableFiles", len(paths)),
				zap.Int("bundledFiles", len(files)))
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d of %d editable files to %s\n", len(files), len(paths), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "ezcode-bundle.txt", "Bundle output file")
	cmd.Flags().StringVar(&treeOutput, "tree", "", "Also write the tree to this file")
	return cmd
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}

func writeFile(path string, data []byte) error {
	if err := ensureDirectory(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
