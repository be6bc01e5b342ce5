// File: pkg/project/reader.go
package project

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of file contents a Reader keeps in memory.
const DefaultCacheSize = 128

// File is the loaded content of a single project file.
type File struct {
	Path    string    // Project-relative, slash-separated path.
	Content string    // File contents.
	Size    int64     // Size in bytes.
	ModTime time.Time // Last modification time.
}

// Reader loads project files from disk, caching recent contents.
type Reader struct {
	root          string
	maxFileSizeKB int
	cache         *lru.Cache[string, File]
	logger        *zap.Logger
}

// NewReader creates a Reader rooted at root. maxFileSizeKB <= 0 disables the
// size limit and cacheSize <= 0 selects DefaultCacheSize.
func NewReader(root string, maxFileSizeKB, cacheSize int, logger *zap.Logger) (*Reader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, File](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	return &Reader{
		root:          absRoot,
		maxFileSizeKB: maxFileSizeKB,
		cache:         cache,
		logger:        logger,
	}, nil
}

// Root returns the absolute project root.
func (r *Reader) Root() string {
	return r.root
}

// Read loads the file at the project-relative path rel.
func (r *Reader) Read(rel string) (File, error) {
	clean, err := cleanRelative(rel)
	if err != nil {
		return File{}, err
	}
	full := filepath.Join(r.root, filepath.FromSlash(clean))

	info, err := os.Stat(full)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", clean, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", clean)
	}
	if r.maxFileSizeKB > 0 && info.Size() > int64(r.maxFileSizeKB)*1024 {
		r.logger.Debug("File exceeds size limit",
			zap.String("file", clean),
			zap.Int64("sizeBytes", info.Size()),
			zap.Int("maxSizeKB", r.maxFileSizeKB))
		return File{}, fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, clean, info.Size())
	}

	if cached, ok := r.cache.Get(clean); ok && cached.Size == info.Size() && cached.ModTime.Equal(info.ModTime()) {
		r.logger.Debug("Serving file from cache", zap.String("file", clean))
		return cached, nil
	}

	data, err := os.ReadFile(full)
	if err != nil {
		r.logger.Error("Failed to read file", zap.String("file", clean), zap.Error(err))
		return File{}, fmt.Errorf("error reading file %s: %w", clean, err)
	}
	if looksBinary(data) {
		return File{}, fmt.Errorf("%w: %s", ErrBinary, clean)
	}

	f := File{
		Path:    clean,
		Content: string(data),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	r.cache.Add(clean, f)
	r.logger.Debug("Read file content", zap.String("file", clean), zap.Int("contentSizeBytes", len(data)))
	return f, nil
}

// Purge drops every cached file.
func (r *Reader) Purge() {
	r.cache.Purge()
}

// cleanRelative normalizes a project-relative path and rejects anything that
// would resolve outside the project root.
func cleanRelative(rel string) (string, error) {
	slashed := filepath.ToSlash(rel)
	if slashed == "" || strings.HasPrefix(slashed, "/") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}
	clean := path.Clean(slashed)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}
	return clean, nil
}
