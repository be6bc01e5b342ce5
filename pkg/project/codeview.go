// File: pkg/project/codeview.go
package project

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"ezcode/pkg/editable"

	"go.uber.org/zap"
)

// CodeView is the simplified code view: the editable subset of a project's
// files, plus guarded access to their contents.
type CodeView struct {
	lister FileLister
	reader *Reader
	logger *zap.Logger

	mu    sync.RWMutex
	files []string
}

// NewCodeView creates an empty CodeView. Call Refresh to populate it.
func NewCodeView(lister FileLister, reader *Reader, logger *zap.Logger) *CodeView {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CodeView{
		lister: lister,
		reader: reader,
		logger: logger,
		files:  []string{},
	}
}

// Refresh re-lists the project and re-filters the result. The previous list
// is kept if listing fails.
func (v *CodeView) Refresh(ctx context.Context) ([]string, error) {
	all, err := v.lister.List(ctx)
	if err != nil {
		v.logger.Error("Failed to list project files", zap.Error(err))
		return nil, fmt.Errorf("failed to list project files: %w", err)
	}
	filtered := editable.Filter(all)

	v.mu.Lock()
	v.files = filtered
	v.mu.Unlock()

	if v.reader != nil {
		v.reader.Purge()
	}
	v.logger.Debug("Refreshed code view",
		zap.Int("projectFiles", len(all)),
		zap.Int("editableFiles", len(filtered)))
	return slices.Clone(filtered), nil
}

// Files returns a copy of the current editable list.
func (v *CodeView) Files() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.files)
}

// Contains reports whether path is in the current editable list.
func (v *CodeView) Contains(path string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Contains(v.files, path)
}

// Open loads a file the user selected. The selection must be in the current
// editable list; nothing is read from disk otherwise.
func (v *CodeView) Open(ctx context.Context, path string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	if !v.Contains(path) {
		v.logger.Debug("Rejected non-editable selection", zap.String("file", path))
		return File{}, fmt.Errorf("%w: %s", ErrNotEditable, path)
	}
	if v.reader == nil {
		return File{}, errors.New("code view has no reader")
	}
	return v.reader.Read(path)
}
