// File: pkg/project/lister.go
package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"ezcode/pkg/editable"
	"ezcode/pkg/ignore"

	"go.uber.org/zap"
)

// FileLister yields a project's full file list as slash-separated,
// project-relative paths.
type FileLister interface {
	List(ctx context.Context) ([]string, error)
}

// Lister walks a project directory on disk.
type Lister struct {
	Root   string          // Project root directory.
	Ignore *ignore.Matcher // Project ignore patterns; nil ignores nothing.
	Prune  bool            // Skip directories that can never hold editable files.
	logger *zap.Logger
}

// NewLister creates a Lister for root. A nil logger is replaced with a no-op one.
func NewLister(root string, gi *ignore.Matcher, prune bool, logger *zap.Logger) *Lister {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lister{Root: root, Ignore: gi, Prune: prune, logger: logger}
}

// List walks the root and returns every regular file that is not ignored,
// in walk order (lexical within each directory).
func (l *Lister) List(ctx context.Context) ([]string, error) {
	root, err := filepath.Abs(l.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	logger := l.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("root", root))
	logger.Debug("Starting file listing", zap.Bool("prune", l.Prune))

	files := []string{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Warn("Error accessing path during listing", zap.String("path", path), zap.Error(err))
			return nil // Skip paths that cause errors
		}
		if path == root {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			logger.Warn("Unable to determine relative path", zap.String("path", path), zap.Error(relErr))
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if l.Ignore.MatchesPath(relPath + "/") {
				logger.Debug("Skipping ignored directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			if l.Prune && editable.PrunesDir(relPath) {
				logger.Debug("Pruning non-editable directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if l.Ignore.MatchesPath(relPath) {
			logger.Debug("Skipping ignored file", zap.String("file", relPath))
			return nil
		}
		files = append(files, relPath)
		return nil
	})
	if err != nil {
		logger.Error("Error during file listing", zap.Error(err))
		return nil, fmt.Errorf("failed to list %s: %w", root, err)
	}

	logger.Debug("Completed file listing", zap.Int("files", len(files)))
	return files, nil
}
