// Package editable decides which project files a user may open and edit in
// the simplified code view. Classification is a pure function of the path and
// two fixed rule sets, so every function here is safe for concurrent use.
package editable

import "strings"

// Verdict is the outcome of classifying a single path.
type Verdict int

const (
	// Unmatched paths hit no rule at all and are not editable.
	Unmatched Verdict = iota
	// Excluded paths matched an exclude rule. Exclusion beats inclusion.
	Excluded
	// Included paths matched an include rule and no exclude rule.
	Included
)

func (v Verdict) String() string {
	switch v {
	case Excluded:
		return "excluded"
	case Included:
		return "included"
	default:
		return "unmatched"
	}
}

// Decision records why a path was or was not classified as editable.
type Decision struct {
	Path    string
	Verdict Verdict
	Rule    *Rule // Deciding rule; nil when Verdict is Unmatched.
}

// Editable reports whether the decision allows editing.
func (d Decision) Editable() bool {
	return d.Verdict == Included
}

// IsEditable reports whether path is a user-editable file.
func IsEditable(path string) bool {
	for _, r := range excludeRules {
		if r.Matches(path) {
			return false
		}
	}
	for _, r := range includeRules {
		if r.Matches(path) {
			return true
		}
	}
	return false
}

// Filter returns the editable subset of paths, preserving input order.
// The result is never nil.
func Filter(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if IsEditable(p) {
			out = append(out, p)
		}
	}
	return out
}

// Explain classifies path and reports the first rule that decided it.
func Explain(path string) Decision {
	for i := range excludeRules {
		if excludeRules[i].Matches(path) {
			r := excludeRules[i]
			return Decision{Path: path, Verdict: Excluded, Rule: &r}
		}
	}
	for i := range includeRules {
		if includeRules[i].Matches(path) {
			r := includeRules[i]
			return Decision{Path: path, Verdict: Included, Rule: &r}
		}
	}
	return Decision{Path: path, Verdict: Unmatched}
}

// PrunesDir reports whether every path beneath dir is guaranteed to be
// excluded, which lets a directory walker skip the whole subtree.
// dir is slash-separated and relative to the project root.
func PrunesDir(dir string) bool {
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" || dir == "." {
		return false
	}
	dir += "/"
	for _, r := range excludeRules {
		if r.Subtree && r.Matches(dir) {
			return true
		}
	}
	return false
}
