package sitedef

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

func TestMapperMapSidebars(t *testing.T) {
	config := SidebarsConfig{
		"block": {
			{Type: "doc", ID: "intro"},
			{Type: "category", Label: "Block 1", Items: []NodeSpec{
				{Type: "doc", ID: "block-1/variables"},
			}},
		},
	}

	sidebars, err := NewMapper().MapSidebars(config)
	if err != nil {
		t.Fatalf("MapSidebars() error = %v", err)
	}

	sb, err := sidebars.Get("block")
	if err != nil {
		t.Fatalf("Get(block) error = %v", err)
	}
	if len(sb.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(sb.Items))
	}
	if sb.Items[1].Kind != domain.KindCategory || sb.Items[1].Label != "Block 1" {
		t.Errorf("category = %+v", sb.Items[1])
	}
	if got := sb.DocIDs(); len(got) != 2 || got[1] != "block-1/variables" {
		t.Errorf("DocIDs() = %v", got)
	}
}

func TestMapperMapSidebarsKeepsEmptyCategory(t *testing.T) {
	// empty categories are a validation finding, not a load failure
	config := SidebarsConfig{
		"block": {{Type: "category", Label: "Empty"}},
	}
	sidebars, err := NewMapper().MapSidebars(config)
	if err != nil {
		t.Fatalf("MapSidebars() error = %v", err)
	}
	if len(sidebars["block"].Items[0].Items) != 0 {
		t.Error("expected empty category to survive mapping")
	}
}

func TestMapperMapSidebarsStructuralErrors(t *testing.T) {
	tests := []struct {
		name   string
		config SidebarsConfig
	}{
		{name: "doc without id", config: SidebarsConfig{"b": {{Type: "doc"}}}},
		{name: "category without label", config: SidebarsConfig{"b": {{Type: "category"}}}},
		{name: "unknown type", config: SidebarsConfig{"b": {{Type: "autogenerated"}}}},
		{name: "nested error", config: SidebarsConfig{"b": {{Type: "category", Label: "x", Items: []NodeSpec{{Type: "link"}}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMapper().MapSidebars(tt.config); err == nil {
				t.Error("MapSidebars() should return error")
			}
		})
	}
}

func TestMapperMapSite(t *testing.T) {
	config := SiteConfig{
		Title:         "Course",
		OnBrokenLinks: "THROW",
		I18n:          I18nConfig{Locales: []string{"uk", "en"}},
		ThemeConfig: ThemeSettings{
			Navbar: NavbarConfig{Items: []NavbarItem{{Type: "doc", DocID: "intro", Label: "Kotlin"}}},
			Footer: FooterConfig{Links: []FooterColumn{{Title: "options", Items: []FooterLink{{Label: "gh", To: "https://github.com"}}}}},
		},
	}

	site := NewMapper().MapSite(config)

	if site.OnBrokenLinks != domain.ReportThrow {
		t.Errorf("OnBrokenLinks = %q, want throw", site.OnBrokenLinks)
	}
	if site.I18n.DefaultLocale != "uk" {
		t.Errorf("DefaultLocale = %q, want uk", site.I18n.DefaultLocale)
	}
	if site.Docs.Path != "docs" {
		t.Errorf("Docs.Path = %q, want default docs", site.Docs.Path)
	}
	if len(site.Theme.Navbar.Items) != 1 || site.Theme.Navbar.Items[0].DocID != "intro" {
		t.Errorf("navbar = %+v", site.Theme.Navbar.Items)
	}
	if len(site.Theme.Footer.Links) != 1 || site.Theme.Footer.Links[0].Items[0].Label != "gh" {
		t.Errorf("footer = %+v", site.Theme.Footer.Links)
	}
}

func TestMapperMapLandingPreservesOrder(t *testing.T) {
	config := LandingConfig{
		Courses: []CourseConfig{
			{Title: TextSpec{Literal: "Kotlin"}},
			{Title: TextSpec{Literal: "Gradle"}},
			{Title: TextSpec{Translate: "blog"}},
		},
	}

	landing := NewMapper().MapLanding(config)

	if len(landing.Courses) != 3 {
		t.Fatalf("courses = %d, want 3", len(landing.Courses))
	}
	want := []domain.Text{domain.Lit("Kotlin"), domain.Lit("Gradle"), domain.Translated("blog")}
	for i, c := range landing.Courses {
		if c.Title != want[i] {
			t.Errorf("course[%d].Title = %+v, want %+v", i, c.Title, want[i])
		}
	}
}

func TestMapperMapSiteSitemapPriority(t *testing.T) {
	var unset SiteConfig
	if err := yaml.Unmarshal([]byte("sitemap:\n  changefreq: weekly\n"), &unset); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := NewMapper().MapSite(unset).Sitemap.PriorityValue(); got != domain.DefaultSitemapPriority {
		t.Errorf("unset priority = %v, want default", got)
	}

	var zero SiteConfig
	if err := yaml.Unmarshal([]byte("sitemap:\n  priority: 0\n"), &zero); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got := NewMapper().MapSite(zero).Sitemap.PriorityValue(); got != 0 {
		t.Errorf("explicit priority 0 mapped to %v", got)
	}
}
