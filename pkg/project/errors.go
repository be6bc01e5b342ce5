// File: pkg/project/errors.go
package project

import "errors"

var (
	// ErrNotDirectory is returned when the project root is missing or is not a directory.
	ErrNotDirectory = errors.New("project root is not a directory")
	// ErrNotEditable is returned when a selection is not in the current editable list.
	ErrNotEditable = errors.New("file is not editable")
	// ErrOutsideRoot is returned for paths that escape the project root.
	ErrOutsideRoot = errors.New("path escapes project root")
	// ErrTooLarge is returned for files above the configured size limit.
	ErrTooLarge = errors.New("file exceeds size limit")
	// ErrBinary is returned for files that look binary.
	ErrBinary = errors.New("file is binary")
)
