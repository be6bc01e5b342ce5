package main

import (
	"log"
	"os"
	"strings"

	"ezcode/cmd"
	"ezcode/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	syncLogger()
	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the global logger. Syncing a pipe or /dev/null fails
// with EINVAL on some platforms, so only terminals and regular files are synced.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false // Assume not a regular file if we can't get the file info
	}
	return fileInfo.Mode().IsRegular()
}
