package editable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "components, ui and lockfile",
			in:   []string{"src/components/Header.tsx", "src/components/ui/button.tsx", "src/pages/Home.tsx", "package-lock.json"},
			want: []string{"src/components/Header.tsx", "src/pages/Home.tsx"},
		},
		{
			name: "root html and public asset",
			in:   []string{"index.html", "public/favicon.ico"},
			want: []string{"index.html"},
		},
		{
			name: "app files and node modules",
			in:   []string{"src/App.css", "src/App.tsx", "node_modules/react/index.js"},
			want: []string{"src/App.css", "src/App.tsx"},
		},
		{
			name: "empty",
			in:   []string{},
			want: []string{},
		},
		{
			name: "layouts and tests",
			in:   []string{"src/layouts/Main.tsx", "src/layout.tsx", "src/components/__tests__/Foo.test.tsx"},
			want: []string{"src/layouts/Main.tsx", "src/layout.tsx"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Filter(tt.in))
		})
	}
}

func TestFilterNilInput(t *testing.T) {
	t.Parallel()

	got := Filter(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIsEditable(t *testing.T) {
	t.Parallel()

	editable := []string{
		"src/components/Nav.jsx",
		"src/components/forms/Login.ts",
		"src/components/widgets/chart.js",
		"src/pages/about/index.md",
		"src/pages/Settings.tsx",
		"src/App.css",
		"src/App.jsx",
		"src/main.tsx",
		"src/main.js",
		"src/index.ts",
		"src/layout.jsx",
		"src/layouts/deep/nested/Shell.vue",
		"index.html",
	}
	for _, p := range editable {
		assert.True(t, IsEditable(p), "expected %q to be editable", p)
	}

	notEditable := []string{
		"",
		"src/components/ui/button.tsx",
		"src/components/Header.css",
		"src/components/Header.tsx.bak",
		"src/lib/utils.ts",
		"src/utils/format.ts",
		"public/index.html",
		"postcss.config.cjs",
		"tailwind.config.ts",
		"src/pages/Home.test.tsx",
		"src/pages/Home.spec.js",
		"src/pages/__tests__/Home.tsx",
		"src/pages/env.d.ts",
		"dist/index.html",
		"build/main.js",
		"src/pages/.vite/deps.js",
		"node_modules/react/index.js",
		"src/pages/node_modules/x.js",
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		".env",
		".github/workflows/ci.yml",
		"src/App.TSX",
		"src/App.Css",
		"src/index.css",
		"src/globals.css",
		"/index.html",
		"./index.html",
		"src/../index.html",
		"../src/App.tsx",
		"vite.config.ts",
		"package.json",
		"README.md",
		"src\\App.tsx",
		"src/App.tsx\n",
		"src/pages/\xff\xfe.tsx.d.ts",
	}
	for _, p := range notEditable {
		assert.False(t, IsEditable(p), "expected %q not to be editable", p)
	}
}

func TestExclusionWinsOverInclusion(t *testing.T) {
	t.Parallel()

	// Both match an include rule on their own.
	for _, p := range []string{
		"src/pages/Home.test.tsx",
		"src/layouts/types.d.ts",
		"src/pages/__tests__/a.tsx",
		"src/pages/yarn.lock",
	} {
		d := Explain(p)
		assert.Equal(t, Excluded, d.Verdict, p)
		require.NotNil(t, d.Rule, p)
		assert.False(t, d.Editable(), p)
	}

	d := Explain("src/components/ui/button.tsx")
	assert.Equal(t, Excluded, d.Verdict)
	require.NotNil(t, d.Rule)
	assert.Equal(t, "ui library", d.Rule.Name)
}

func TestExplain(t *testing.T) {
	t.Parallel()

	d := Explain("src/App.tsx")
	assert.Equal(t, Included, d.Verdict)
	assert.True(t, d.Editable())
	require.NotNil(t, d.Rule)
	assert.Equal(t, "app entry", d.Rule.Name)

	d = Explain("README.md")
	assert.Equal(t, Unmatched, d.Verdict)
	assert.Nil(t, d.Rule)
	assert.False(t, d.Editable())

	d = Explain("node_modules/a/b.js")
	assert.Equal(t, Excluded, d.Verdict)
	assert.Equal(t, "node modules", d.Rule.Name)

	assert.Equal(t, "included", Included.String())
	assert.Equal(t, "excluded", Excluded.String())
	assert.Equal(t, "unmatched", Unmatched.String())
}

func TestExplainAgreesWithIsEditable(t *testing.T) {
	t.Parallel()

	for _, p := range sampleTree() {
		assert.Equal(t, IsEditable(p), Explain(p).Editable(), p)
	}
}

func TestFilterPreservesOrderAndIsIdempotent(t *testing.T) {
	t.Parallel()

	in := sampleTree()
	out := Filter(in)
	require.LessOrEqual(t, len(out), len(in))

	// out must be a sub-sequence of in.
	j := 0
	for _, p := range in {
		if j < len(out) && out[j] == p {
			j++
		}
	}
	assert.Equal(t, len(out), j, "output is not an order-preserving sub-sequence")

	assert.Equal(t, out, Filter(out))

	reversed := make([]string, len(in))
	for i, p := range in {
		reversed[len(in)-1-i] = p
	}
	gotRev := Filter(reversed)
	require.Len(t, gotRev, len(out))
	for i := range out {
		assert.Equal(t, out[i], gotRev[len(gotRev)-1-i])
	}
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	in := []string{"package-lock.json", "src/App.tsx"}
	_ = Filter(in)
	assert.Equal(t, []string{"package-lock.json", "src/App.tsx"}, in)
}

func TestFilterConcurrent(t *testing.T) {
	t.Parallel()

	in := sampleTree()
	want := Filter(in)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, Filter(in))
		}()
	}
	wg.Wait()
}

func TestPrunesDir(t *testing.T) {
	t.Parallel()

	for _, dir := range []string{
		"node_modules",
		"node_modules/",
		"packages/app/node_modules",
		".git",
		".vite",
		"src/.vite",
		"dist",
		"build",
		"public",
		"src/lib",
		"src/utils",
		"src/components/ui",
		"src/components/ui/forms",
		"src/pages/__tests__",
	} {
		assert.True(t, PrunesDir(dir), dir)
	}

	for _, dir := range []string{
		"",
		".",
		"src",
		"src/components",
		"src/pages",
		"src/layouts",
		"src/components/uix",
		"distribution",
		"src/pages/.hidden",
	} {
		assert.False(t, PrunesDir(dir), dir)
	}
}

// Every path beneath a pruned directory must be non-editable.
func TestPrunedSubtreesHaveNoEditableFiles(t *testing.T) {
	t.Parallel()

	leaves := []string{"index.html", "App.tsx", "src/pages/Home.tsx", "src/App.css", "x/y/z.js"}
	for _, dir := range []string{"node_modules", ".git", "dist", "build", "public", "src/lib", "src/components/ui", "src/pages/__tests__", "src/.vite"} {
		require.True(t, PrunesDir(dir))
		for _, leaf := range leaves {
			p := dir + "/" + leaf
			assert.False(t, IsEditable(p), p)
		}
	}
}

func TestRulesReturnsCopies(t *testing.T) {
	t.Parallel()

	include, exclude := Rules()
	require.NotEmpty(t, include)
	require.NotEmpty(t, exclude)

	include[0].Name = "mutated"
	exclude[0].Name = "mutated"

	again, excludeAgain := Rules()
	assert.Equal(t, "component source", again[0].Name)
	assert.Equal(t, "ui library", excludeAgain[0].Name)
	assert.Contains(t, again[0].String(), "except")
}

func sampleTree() []string {
	var paths []string
	for _, dir := range []string{"", "src/", "src/components/", "src/components/ui/", "src/pages/", "src/layouts/", "public/", "node_modules/x/", ".git/", "dist/"} {
		for _, name := range []string{"index.html", "App.tsx", "App.css", "main.js", "layout.ts", "Button.test.tsx", "types.d.ts", "yarn.lock", "README.md"} {
			paths = append(paths, dir+name)
		}
	}
	for i := 0; i < 5; i++ {
		paths = append(paths, fmt.Sprintf("src/pages/Page%d.tsx", i))
	}
	return paths
}
