// Package ignore matches project-relative paths against gitignore-style
// patterns. The project lister uses it to hide files the project itself
// ignores before they ever reach the editable-file classifier.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Pattern encapsulates a compiled ignore pattern and metadata about its origin.
type Pattern struct {
	Regexp string // Compiled expression, kept for display.
	Negate bool   // Indicates if the pattern is a negation (starts with '!').
	Line   string // Original pattern line.
	LineNo int    // Line number in the source (1-based).
	Source string // File the pattern came from, or "inline".

	match func(string) bool
}

// Matcher represents an ordered collection of ignore patterns.
// The last matching pattern decides.
type Matcher struct {
	patterns []*Pattern
	logger   *zap.Logger
}

// New initializes an empty Matcher. A nil logger is replaced with a no-op one.
func New(logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{logger: logger}
}

// Load builds a Matcher from the given ignore files, in order.
// Missing files are skipped.
func Load(logger *zap.Logger, files ...string) (*Matcher, error) {
	m := New(logger)
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := m.CompileFile(f); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// CompileLines compiles pattern lines supplied directly, e.g. from configuration.
func (m *Matcher) CompileLines(lines ...string) {
	m.compile("inline", lines)
}

// CompileFile reads an ignore file and compiles its lines.
// A file that does not exist is not an error.
func (m *Matcher) CompileFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("Ignore file does not exist and will be skipped", zap.String("filePath", path))
			return nil
		}
		m.logger.Error("Failed to read ignore file", zap.String("filePath", path), zap.Error(err))
		return fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	lines := strings.Split(string(content), "\n")
	before := len(m.patterns)
	m.compile(path, lines)
	m.logger.Debug("Compiled ignore patterns",
		zap.String("filePath", path),
		zap.Int("lineCount", len(lines)),
		zap.Int("patternCount", len(m.patterns)-before))
	return nil
}

func (m *Matcher) compile(source string, lines []string) {
	for i, line := range lines {
		parsed, ok := parseLine(line)
		if !ok {
			continue
		}
		re, err := compileLine(parsed)
		if err != nil {
			m.logger.Warn("Invalid ignore pattern",
				zap.String("source", source),
				zap.Int("lineNo", i+1),
				zap.String("pattern", line),
				zap.Error(err))
			continue
		}
		m.patterns = append(m.patterns, &Pattern{
			Regexp: re.String(),
			Negate: parsed.negate,
			Line:   strings.TrimSpace(line),
			LineNo: i + 1,
			Source: source,
			match:  re.MatchString,
		})
	}
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchesPath checks if the given path is ignored.
// Directories should be passed with a trailing slash.
func (m *Matcher) MatchesPath(path string) bool {
	matches, _ := m.MatchesPathWithPattern(path)
	return matches
}

// MatchesPathWithPattern checks if the given path is ignored and returns the
// last pattern that matched it, if any.
func (m *Matcher) MatchesPathWithPattern(path string) (bool, *Pattern) {
	if m == nil {
		return false, nil
	}
	normalized := normalizePath(path)

	var matched *Pattern
	ignored := false
	for _, p := range m.patterns {
		if p.match(normalized) {
			matched = p
			ignored = !p.Negate
		}
	}
	return ignored, matched
}

// normalizePath converts OS-specific separators to forward slashes and
// strips a leading "./".
func normalizePath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}
