package sitedef

import (
	"os"
	"path/filepath"
	"testing"
)

const testSiteYAML = `title: Course
tagline: Kotlin is the best
url: https://course.example.com/
onBrokenLinks: throw
i18n:
  defaultLocale: uk
  locales: [uk, en]
docs:
  editUrl: {{COURSESITE_VAR_REPO}}/tree/master/
sitemap:
  changefreq: weekly
  priority: 0.5
  ignorePatterns: ['/tags/**']
themeConfig:
  navbar:
    title: Courses
    items:
      - type: doc
        docId: intro
        label: Kotlin
        position: left
  prism:
    additionalLanguages: [kotlin, java]
    magicComments:
      - className: theme-code-block-highlighted-line
        line: highlight-next-line
        block: {start: highlight-start, end: highlight-end}
`

const testSidebarsYAML = `block:
  - type: doc
    id: intro
  - type: category
    label: Block 1
    items: ['block-1/variables', 'block-1/functions']
`

const testCoursesYAML = `hero:
  avatar: img/avatar.png
  title: {translate: course-author}
courses:
  - title: Kotlin
    icon: img/kotlin.svg
    description: {translate: kotlin-course-desc}
  - title: {translate: blog}
    icon: img/blog.svg
    description: {translate: blog-desc}
`

func writeSiteDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoaderLoad(t *testing.T) {
	t.Setenv("COURSESITE_VAR_REPO", "https://github.com/y9vad9/kotlin-course")

	dir := writeSiteDir(t, map[string]string{
		SiteFile:       testSiteYAML,
		SidebarsFile:   testSidebarsYAML,
		CoursesFile:    testCoursesYAML,
		"i18n/en.yaml": "blog: Blog\n",
		"i18n/uk.yaml": "blog: Блог\n",
	})

	def, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if def.Site.Title != "Course" {
		t.Errorf("Site.Title = %q", def.Site.Title)
	}
	if def.Site.Docs.EditURL != "https://github.com/y9vad9/kotlin-course/tree/master/" {
		t.Errorf("template variable not expanded: %q", def.Site.Docs.EditURL)
	}

	items := def.Sidebars["block"]
	if len(items) != 2 {
		t.Fatalf("block sidebar has %d items, want 2", len(items))
	}
	if items[1].Type != "category" || len(items[1].Items) != 2 {
		t.Errorf("category = %+v", items[1])
	}
	if items[1].Items[0].Type != "doc" || items[1].Items[0].ID != "block-1/variables" {
		t.Errorf("shorthand item = %+v, want doc block-1/variables", items[1].Items[0])
	}

	if len(def.Landing.Courses) != 2 {
		t.Fatalf("courses = %d, want 2", len(def.Landing.Courses))
	}
	if def.Landing.Courses[0].Title.Literal != "Kotlin" {
		t.Errorf("literal title = %+v", def.Landing.Courses[0].Title)
	}
	if def.Landing.Courses[1].Title.Translate != "blog" {
		t.Errorf("translated title = %+v", def.Landing.Courses[1].Title)
	}

	if def.Translations["uk"]["blog"] != "Блог" || def.Translations["en"]["blog"] != "Blog" {
		t.Errorf("translations = %v", def.Translations)
	}
}

func TestLoaderMissingCatalogIsEmpty(t *testing.T) {
	dir := writeSiteDir(t, map[string]string{
		SiteFile:     testSiteYAML,
		SidebarsFile: testSidebarsYAML,
		CoursesFile:  testCoursesYAML,
	})

	def, err := NewLoader(dir).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cat, ok := def.Translations["en"]; !ok || len(cat) != 0 {
		t.Errorf("missing catalog should be empty, got %v (present=%v)", cat, ok)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/site").Load()
	if err == nil {
		t.Error("Load() with non-existent dir should return error")
	}
}

func TestLoaderRejectsBadText(t *testing.T) {
	dir := writeSiteDir(t, map[string]string{
		SiteFile:     testSiteYAML,
		SidebarsFile: testSidebarsYAML,
		CoursesFile:  "courses:\n  - title: {label: nope}\n",
	})
	if _, err := NewLoader(dir).Load(); err == nil {
		t.Error("Load() should reject a text mapping without translate")
	}
}

func TestExpandTemplateVariables(t *testing.T) {
	t.Setenv("COURSESITE_VAR_URL", "https://x.example")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "set variable", input: "url: {{COURSESITE_VAR_URL}}", expected: "url: https://x.example"},
		{name: "spaces inside braces", input: "url: {{ COURSESITE_VAR_URL }}", expected: "url: https://x.example"},
		{name: "unset variable", input: "url: {{COURSESITE_VAR_NOPE}}", expected: "url: "},
		{name: "foreign template left alone", input: "a: {{OTHER}}", expected: "a: {{OTHER}}"},
		{name: "no template variables", input: "plain text", expected: "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandTemplateVariables([]byte(tt.input))); got != tt.expected {
				t.Errorf("expandTemplateVariables() = %q, want %q", got, tt.expected)
			}
		})
	}
}
