// File: pkg/project/binary.go
package project

import "bytes"

// sniffLen is how much of a file is inspected to decide whether it is binary.
const sniffLen = 512

// looksBinary checks the leading bytes of a file for NUL bytes or a high
// ratio of non-printable characters.
func looksBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if len(data) == 0 {
		return false // Empty files are considered text
	}

	// Check for null bytes (common in binary files)
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range data {
		if !isPrintable(b) {
			nonPrintable++
		}
	}

	// If more than 30% non-printable characters, consider it binary
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// isPrintable checks if a byte is printable ASCII, common whitespace, or part
// of a multi-byte UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
