// File: pkg/project/worker.go
package project

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// LoadAll reads paths through a pool of workers and returns the loaded files
// sorted by path. Files that fail to load are logged and skipped.
// workers <= 0 uses one worker per CPU.
func LoadAll(ctx context.Context, reader *Reader, paths []string, workers int, logger *zap.Logger) ([]File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
		logger.Debug("Adjusted worker count", zap.Int("workers", workers))
	}

	jobs := make(chan string, len(paths))
	results := make(chan File, len(paths))
	var wg sync.WaitGroup

	logger.Debug("Initializing worker pool", zap.Int("workers", workers))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(ctx, w, reader, jobs, results, &wg, logger.With(zap.Int("workerID", w)))
	}

	for _, p := range paths {
		jobs <- p
	}
	close(jobs)

	// Collect results concurrently
	go func() {
		wg.Wait()
		close(results)
	}()

	loaded := make([]File, 0, len(paths))
	for f := range results {
		loaded = append(loaded, f)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].Path < loaded[j].Path
	})
	logger.Debug("All files loaded", zap.Int("requested", len(paths)), zap.Int("loaded", len(loaded)))
	return loaded, nil
}

// worker loads files from the jobs channel until it is drained or ctx is done.
func worker(ctx context.Context, id int, reader *Reader, jobs <-chan string, results chan<- File, wg *sync.WaitGroup, logger *zap.Logger) {
	defer wg.Done()
	logger.Debug("Worker started")

	for p := range jobs {
		if ctx.Err() != nil {
			continue // Drain remaining jobs without reading
		}
		f, err := reader.Read(p)
		if err != nil {
			logger.Warn("Worker failed to load file", zap.String("filePath", p), zap.Error(err))
			continue
		}
		results <- f
	}

	logger.Debug("Worker finished processing", zap.Int("workerID", id))
}
