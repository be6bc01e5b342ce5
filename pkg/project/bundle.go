// File: pkg/project/bundle.go
package project

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var separatorLine = "# " + strings.Repeat("-", 78)

// WriteBundle writes tree followed by every file, each under a
// "# Source: <path>" header.
func WriteBundle(w io.Writer, tree string, files []File) error {
	writer := bufio.NewWriter(w)

	// Write tree content first
	if _, err := writer.WriteString(tree); err != nil {
		return fmt.Errorf("failed to write tree content: %w", err)
	}

	for _, f := range files {
		header := fmt.Sprintf("\n\n%s\n# Source: %s #\n\n", separatorLine, f.Path)
		if _, err := writer.WriteString(header + f.Content); err != nil {
			return fmt.Errorf("failed to write content of %s: %w", f.Path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
