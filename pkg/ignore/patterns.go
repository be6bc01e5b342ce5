// File: pkg/ignore/patterns.go
package ignore

import (
	"regexp"
	"strings"
)

// parsedLine is a single ignore line reduced to its glob and flags.
type parsedLine struct {
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// parseLine strips comments, negation, escapes and slashes from a line.
// It returns false for blank lines and comments.
func parseLine(line string) (parsedLine, bool) {
	trimmed := strings.TrimSpace(line)

	// Ignore empty lines and comments.
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return parsedLine{}, false
	}

	var p parsedLine
	if strings.HasPrefix(trimmed, "!") {
		p.negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Handle escaped characters for `#` and `!`.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	if strings.HasSuffix(trimmed, "/") {
		p.dirOnly = true
		trimmed = strings.TrimRight(trimmed, "/")
	}

	// A slash at the start or in the middle pins the pattern to the root.
	if strings.Contains(trimmed, "/") {
		p.anchored = true
		trimmed = strings.TrimPrefix(trimmed, "/")
	}

	if trimmed == "" {
		return parsedLine{}, false
	}
	p.glob = trimmed
	return p, true
}

// compileLine converts a parsed line into an anchored regular expression.
func compileLine(p parsedLine) (*regexp.Regexp, error) {
	var b strings.Builder
	if p.anchored {
		b.WriteString("^")
	} else {
		b.WriteString("^(?:.*/)?")
	}
	b.WriteString(globToRegex(p.glob))
	if p.dirOnly {
		// Directory patterns only match paths beneath the directory,
		// including the directory itself when given with a trailing slash.
		b.WriteString("/.*$")
	} else {
		b.WriteString("(?:/.*)?$")
	}
	return regexp.Compile(b.String())
}

// globToRegex translates `*`, `?`, `**` and `[...]` into regex equivalents
// and quotes everything else.
func globToRegex(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); {
		switch {
		case strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 3
		case strings.HasPrefix(glob[i:], "/**/"):
			b.WriteString("/(?:.*/)?")
			i += 4
		case glob[i:] == "/**":
			b.WriteString("/.*")
			i += 3
		case strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i += 2
		case glob[i] == '*':
			b.WriteString("[^/]*")
			i++
		case glob[i] == '?':
			b.WriteString("[^/]")
			i++
		case glob[i] == '[':
			class, n := characterClass(glob[i:])
			b.WriteString(class)
			i += n
		default:
			b.WriteString(regexp.QuoteMeta(glob[i : i+1]))
			i++
		}
	}
	return b.String()
}

// characterClass translates a bracket expression at the start of s.
// An unterminated bracket is treated as a literal '['.
func characterClass(s string) (string, int) {
	end := strings.IndexByte(s[1:], ']')
	if end <= 0 {
		return `\[`, 1
	}
	body := s[1 : end+1]
	if strings.HasPrefix(body, "!") {
		body = "^" + body[1:]
	}
	body = strings.ReplaceAll(body, `\`, `\\`)
	return "[" + body + "]", end + 2
}
