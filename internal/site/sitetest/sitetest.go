// Package sitetest writes small site definition directories for tests.
package sitetest

import (
	"os"
	"path/filepath"
	"testing"
)

// SiteYAML is a valid two-locale site config.
const SiteYAML = `title: Kotlin Course
url: https://course.example.com/
baseUrl: /
favicon: img/favicon.ico
onBrokenLinks: throw
onBrokenMarkdownLinks: warn
i18n:
  defaultLocale: uk
  locales: [uk, en]
docs:
  editUrl: https://github.com/y9vad9/kotlin-course/tree/master/
sitemap:
  changefreq: weekly
  priority: 0.5
themeConfig:
  navbar:
    title: Course
    items:
      - type: doc
        docId: intro
        label: Kotlin
        position: left
  footer:
    copyright: "Copyright © {year} y9vad9"
`

// SidebarsYAML has one tree with a nested category.
const SidebarsYAML = `block:
  - intro
  - type: category
    label: Block 1
    items:
      - block-1/variables
      - block-1/functions
`

// CoursesYAML has three courses, one with a translated title.
const CoursesYAML = `hero:
  avatar: img/y9vad9.png
  title: {translate: course-author}
courses:
  - title: Kotlin
    icon: img/kotlin.svg
    description: {translate: kotlin-course-desc}
  - title: Gradle
    icon: img/gradle.svg
    description: {translate: gradle-course-desc}
  - title: {translate: blog}
    icon: img/blog.svg
    description: {translate: blog-desc}
`

// Files returns the full valid fixture, keyed by path relative to the
// site directory.
func Files() map[string]string {
	return map[string]string{
		"site.yaml":     SiteYAML,
		"sidebars.yaml": SidebarsYAML,
		"courses.yaml":  CoursesYAML,
		"i18n/uk.yaml":  "blog: Блог\ncourse-author: Вадим\nkotlin-course-desc: Курс з Kotlin\n",
		"i18n/en.yaml":  "blog: Blog\ncourse-author: Vadym\nkotlin-course-desc: Kotlin course\n",

		"docs/intro.md":              "---\ntitle: Introduction\n---\n\nStart with [variables](block-1/variables.md).\n",
		"docs/block-1/variables.md":  "# Variables\n\nNext: [functions](functions.md)\n",
		"docs/block-1/functions.md":  "# Functions\n",
		"docs/_drafts/unfinished.md": "# Draft\n",
		"static/img/favicon.ico":     "ico",
		"static/img/y9vad9.png":      "png",
		"static/img/kotlin.svg":      "<svg/>",
		"static/img/gradle.svg":      "<svg/>",
		"static/img/blog.svg":        "<svg/>",
	}
}

// Write creates a site directory from Files with overrides applied.
// An empty override value deletes the file from the fixture.
func Write(t testing.TB, overrides map[string]string) string {
	t.Helper()

	files := Files()
	for name, body := range overrides {
		if body == "" {
			delete(files, name)
			continue
		}
		files[name] = body
	}

	dir := t.TempDir()
	for name, body := range files {
		WriteFile(t, dir, name, body)
	}
	return dir
}

// WriteFile writes one file below dir, creating parents.
func WriteFile(t testing.TB, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", name, err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
