package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ezcode/pkg/config"
	"ezcode/pkg/ignore"
	"ezcode/pkg/logging"
	"ezcode/pkg/project"
	"ezcode/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// options carries the persistent flags and everything derived from them.
type options struct {
	dir        string
	configPath string
	debug      bool

	root   string
	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the ezcode command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   version.AppName,
		Short: "ezcode lists the files of a generated web app that a user may edit",
		Long: `ezcode inspects a generated web application and exposes only its user-editable
files (components, pages, layouts, entry points) for a simplified code view.
UI library internals, configuration, build output and lock files are hidden.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", ".", "Project root directory")
	flags.StringVar(&opts.configPath, "config", "", "Configuration file (default <dir>/"+config.FileName+")")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		newListCmd(opts),
		newTreeCmd(opts),
		newShowCmd(opts),
		newDumpCmd(opts),
		newExplainCmd(),
		newRulesCmd(),
		newWatchCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// skipSetup replaces the root pre-run for commands that touch neither the
// project nor its configuration.
func skipSetup(*cobra.Command, []string) error {
	return nil
}

// setup sets up logging and loads configuration for the selected project.
func (o *options) setup() error {
	logger, err := logging.Setup(o.debug, version.AppName, version.Version)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger

	root, err := filepath.Abs(o.dir)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	o.root = root

	cfg, err := config.Load(root, o.configPath)
	if err != nil {
		o.logger.Error("Failed to load configuration", zap.Error(err))
		return err
	}
	o.cfg = cfg
	o.logger.Debug("Loaded configuration",
		zap.String("root", root),
		zap.Int("maxFileSizeKB", cfg.MaxFileSizeKB),
		zap.Int("maxWorkers", cfg.MaxWorkers),
		zap.String("ignoreFile", cfg.IgnorePath(root)),
		zap.Bool("prune", cfg.Prune))
	return nil
}

func (o *options) ignoreMatcher() (*ignore.Matcher, error) {
	gi, err := ignore.Load(o.logger, o.cfg.IgnorePath(o.root))
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	if len(o.cfg.Ignore) > 0 {
		gi.CompileLines(o.cfg.Ignore...)
		o.logger.Debug("Added configured ignore patterns", zap.Int("count", len(o.cfg.Ignore)))
	}
	return gi, nil
}

// lister returns the project file lister. prune is forced off when the full
// listing is wanted.
func (o *options) lister(prune bool) (*project.Lister, error) {
	gi, err := o.ignoreMatcher()
	if err != nil {
		return nil, err
	}
	return project.NewLister(o.root, gi, prune && o.cfg.Prune, o.logger), nil
}

// codeView returns a refreshed code view for the project.
func (o *options) codeView(cmd *cobra.Command) (*project.CodeView, *project.Reader, error) {
	lister, err := o.lister(true)
	if err != nil {
		return nil, nil, err
	}
	reader, err := project.NewReader(o.root, o.cfg.MaxFileSizeKB, o.cfg.CacheSize, o.logger)
	if err != nil {
		return nil, nil, err
	}
	view := project.NewCodeView(lister, reader, o.logger)
	if _, err := view.Refresh(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return view, reader, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
