package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
	return root
}

func TestScannerScan(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"intro.md":                 "# Вступ\n\nSee [variables](block-1/variables.md).\n",
		"block-1/variables.md":     "---\ntitle: Variables\nsidebar_label: Vars\n---\n# Ignored H1\n",
		"block-1/02-functions.mdx": "---\nid: functions\n---\n# Functions\n",
		"block-1/_draft.md":        "# draft\n",
		"_partials/snippet.md":     "# partial\n",
		"block-1/notes.txt":        "not markdown",
	})

	catalog, err := NewScanner(root).WithWorkers(2).Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"block-1/functions", "block-1/variables", "intro"}, catalog.IDs())

	intro := catalog["intro"]
	require.NotNil(t, intro)
	assert.Equal(t, "Вступ", intro.Title)
	assert.Equal(t, []string{"block-1/variables.md"}, intro.Links)

	vars := catalog["block-1/variables"]
	require.NotNil(t, vars)
	assert.Equal(t, "Variables", vars.Title, "front matter title wins over H1")
	assert.Equal(t, "Vars", vars.SidebarLabel)

	fn := catalog["block-1/functions"]
	require.NotNil(t, fn)
	assert.Equal(t, "block-1/02-functions.mdx", fn.Source)
	assert.Equal(t, "Functions", fn.Title)
}

func TestScannerDuplicateID(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"a.md":    "---\nid: same\n---\n",
		"same.md": "# same\n",
	})

	_, err := NewScanner(root).Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate doc id "same"`)
}

func TestScannerMissingDir(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "nope")).Scan(context.Background())
	assert.Error(t, err)
}

func TestParseDocTitleFallback(t *testing.T) {
	doc, err := ParseDoc("block-2/oop_theory.md", []byte("no heading here\n"))
	require.NoError(t, err)
	assert.Equal(t, "block-2/oop_theory", doc.Title)
}

func TestParseDocUnclosedFrontMatter(t *testing.T) {
	_, err := ParseDoc("bad.md", []byte("---\ntitle: x\n# body\n"))
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantHeader string
		wantBody   string
	}{
		{name: "no header", in: "# Title\n", wantHeader: "", wantBody: "# Title\n"},
		{name: "header", in: "---\ntitle: x\n---\nbody\n", wantHeader: "title: x", wantBody: "body\n"},
		{name: "empty header", in: "---\n---\nbody\n", wantHeader: "", wantBody: "body\n"},
		{name: "crlf", in: "---\r\ntitle: x\r\n---\r\nbody\r\n", wantHeader: "title: x", wantBody: "body\r\n"},
		{name: "header at eof", in: "---\ntitle: x\n---", wantHeader: "title: x", wantBody: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, err := splitFrontMatter([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeader, string(header))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestDocID(t *testing.T) {
	assert.Equal(t, "intro", docID("intro.md", ""))
	assert.Equal(t, "welcome", docID("intro.md", "welcome"))
	assert.Equal(t, "block-1/variables", docID("block-1/01-vars.mdx", "variables"))
}

func TestResolveMarkdownLink(t *testing.T) {
	tests := []struct {
		from, dest string
		want       string
		ok         bool
	}{
		{"intro.md", "block-1/variables.md", "block-1/variables.md", true},
		{"block-1/variables.md", "../block-2/oop_theory.md#classes", "block-2/oop_theory.md", true},
		{"block-1/variables.md", "./functions.mdx", "block-1/functions.mdx", true},
		{"intro.md", "https://kotlinlang.org/docs/home.md", "", false},
		{"intro.md", "#section", "", false},
		{"intro.md", "/docs/intro", "", false},
		{"intro.md", "block-1/variables", "", false},
		{"intro.md", "mailto:me@example.com", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveMarkdownLink(tt.from, tt.dest)
		assert.Equal(t, tt.ok, ok, "ResolveMarkdownLink(%q, %q)", tt.from, tt.dest)
		assert.Equal(t, tt.want, got, "ResolveMarkdownLink(%q, %q)", tt.from, tt.dest)
	}
}
