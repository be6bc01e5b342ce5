// File: pkg/editable/rules.go
package editable

import "regexp"

// Rule is a named path predicate. A path satisfies the rule when Pattern
// matches it and Except (if set) does not.
type Rule struct {
	Name    string         // Short human-readable label.
	Pattern *regexp.Regexp // Match condition, tested against the slash-separated path.
	Except  *regexp.Regexp // Optional carve-out; a match here disqualifies the path.
	Subtree bool           // Matching "dir/" implies every path beneath dir matches too.
}

// Matches reports whether path satisfies the rule.
func (r Rule) Matches(path string) bool {
	if !r.Pattern.MatchString(path) {
		return false
	}
	return r.Except == nil || !r.Except.MatchString(path)
}

// String returns the rule's name and pattern.
func (r Rule) String() string {
	s := r.Name + " " + r.Pattern.String()
	if r.Except != nil {
		s += " except " + r.Except.String()
	}
	return s
}

func rule(name, pattern string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern)}
}

func subtree(name, pattern string) Rule {
	r := rule(name, pattern)
	r.Subtree = true
	return r
}

// includeRules lists what a user may edit: app source, pages and layouts.
var includeRules = []Rule{
	{
		Name:    "component source",
		Pattern: regexp.MustCompile(`^src/components/.*\.(tsx|jsx|ts|js)$`),
		Except:  regexp.MustCompile(`^src/components/ui/`),
	},
	rule("pages", `^src/pages/`),
	rule("app stylesheet", `^src/App\.css$`),
	rule("app entry", `^src/App\.(tsx|jsx|ts|js)$`),
	rule("main entry", `^src/main\.(tsx|jsx|ts|js)$`),
	rule("index entry", `^src/index\.(tsx|jsx|ts|js)$`),
	rule("layout", `^src/layout\.(tsx|jsx|ts|js)$`),
	rule("layouts", `^src/layouts/`),
	rule("root html", `^index\.html$`),
}

// excludeRules is checked before includeRules; any match disqualifies.
var excludeRules = []Rule{
	subtree("ui library", `^src/components/ui/`),
	subtree("lib", `^src/lib/`),
	subtree("utils", `^src/utils/`),
	subtree("public assets", `^public/`),
	rule("postcss config", `^postcss\.config\.(js|cjs|mjs|ts)$`),
	rule("tailwind config", `^tailwind\.config\.(ts|js|cjs|mjs)$`),
	rule("test file", `\.(test|spec)\.(tsx?|jsx?)$`),
	subtree("test directory", `__tests__/`),
	rule("type declarations", `\.d\.ts$`),
	subtree("dist output", `^dist/`),
	subtree("build output", `^build/`),
	subtree("vite cache", `\.vite/`),
	subtree("node modules", `node_modules/`),
	rule("npm lockfile", `package-lock\.json$`),
	rule("yarn lockfile", `yarn\.lock$`),
	rule("pnpm lockfile", `pnpm-lock\.yaml$`),
	subtree("hidden", `^\.`),
}

// Rules returns copies of the include and exclude rule sets, in evaluation order.
func Rules() (include, exclude []Rule) {
	include = append([]Rule(nil), includeRules...)
	exclude = append([]Rule(nil), excludeRules...)
	return include, exclude
}
