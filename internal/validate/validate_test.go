package validate

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

func validInput() Input {
	site := domain.Site{
		Title: "Course",
		URL:   "https://course.example.com/",
		I18n:  domain.I18n{DefaultLocale: "uk", Locales: []string{"uk", "en"}},
		Theme: domain.Theme{Navbar: domain.Navbar{Items: []domain.NavbarItem{
			{Type: "doc", DocID: "intro", Label: "Kotlin"},
			{To: "blog", Label: "Blog"},
		}}},
	}
	site.ApplyDefaults()

	return Input{
		Site: site,
		Sidebars: domain.Sidebars{
			"block": {Name: "block", Items: []domain.SidebarNode{
				domain.DocRef("intro"),
				domain.Category("Block 1", domain.DocRef("block-1/variables")),
			}},
		},
		Landing: domain.Landing{Courses: []domain.Course{
			{Title: domain.Lit("Kotlin"), Icon: "img/kotlin.svg"},
		}},
		Docs: domain.Catalog{
			"intro":             {ID: "intro", Source: "intro.md", Links: []string{"block-1/variables.md"}},
			"block-1/variables": {ID: "block-1/variables", Source: "block-1/variables.md"},
		},
	}
}

func TestRunValidInputHasNoIssues(t *testing.T) {
	r := Run(validInput())
	if len(r.Issues) != 0 {
		t.Errorf("expected no issues, got %+v", r.Issues)
	}
}

func TestRunFindings(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(in *Input)
		wantCode string
		wantSev  domain.Severity
	}{
		{
			name: "missing doc",
			mutate: func(in *Input) {
				in.Sidebars["block"] = domain.Sidebar{Name: "block", Items: []domain.SidebarNode{domain.DocRef("ghost")}}
			},
			wantCode: CodeDocMissing,
			wantSev:  domain.SeverityError,
		},
		{
			name: "missing doc downgraded by policy",
			mutate: func(in *Input) {
				in.Site.OnBrokenLinks = domain.ReportWarn
				in.Sidebars["block"] = domain.Sidebar{Name: "block", Items: []domain.SidebarNode{domain.DocRef("ghost")}}
			},
			wantCode: CodeDocMissing,
			wantSev:  domain.SeverityWarning,
		},
		{
			name: "empty category",
			mutate: func(in *Input) {
				in.Sidebars["block"] = domain.Sidebar{Name: "block", Items: []domain.SidebarNode{
					domain.DocRef("intro"), domain.Category("Empty"),
				}}
			},
			wantCode: CodeCategoryEmpty,
			wantSev:  domain.SeverityError,
		},
		{
			name: "duplicate id in one tree",
			mutate: func(in *Input) {
				in.Sidebars["block"] = domain.Sidebar{Name: "block", Items: []domain.SidebarNode{
					domain.DocRef("intro"), domain.Category("Again", domain.DocRef("intro")),
				}}
			},
			wantCode: CodeDocDuplicate,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "empty locale list",
			mutate:   func(in *Input) { in.Site.I18n.Locales = nil },
			wantCode: CodeLocaleEmpty,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "default locale not listed",
			mutate:   func(in *Input) { in.Site.I18n.DefaultLocale = "de" },
			wantCode: CodeLocaleDefault,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "invalid locale tag",
			mutate:   func(in *Input) { in.Site.I18n.Locales = append(in.Site.I18n.Locales, "not a tag") },
			wantCode: CodeLocaleInvalid,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "navbar points at missing doc",
			mutate:   func(in *Input) { in.Site.Theme.Navbar.Items[0].DocID = "gradle/intro" },
			wantCode: CodeNavbarDocMissing,
			wantSev:  domain.SeverityError,
		},
		{
			name: "broken markdown link warns by default",
			mutate: func(in *Input) {
				in.Docs["intro"].Links = []string{"block-9/nope.md"}
			},
			wantCode: CodeMarkdownLinkBroken,
			wantSev:  domain.SeverityWarning,
		},
		{
			name:     "relative site url",
			mutate:   func(in *Input) { in.Site.URL = "course.example.com" },
			wantCode: CodeSiteURL,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "base url without trailing slash",
			mutate:   func(in *Input) { in.Site.BaseURL = "/course" },
			wantCode: CodeSiteBaseURL,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "sitemap priority out of range",
			mutate:   func(in *Input) { p := 1.5; in.Site.Sitemap.Priority = &p },
			wantCode: CodeSitemapPriority,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "unknown changefreq",
			mutate:   func(in *Input) { in.Site.Sitemap.ChangeFreq = "fortnightly" },
			wantCode: CodeSitemapChangeFreq,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "unknown reporting policy",
			mutate:   func(in *Input) { in.Site.OnBrokenMarkdownLinks = "explode" },
			wantCode: CodeReportingPolicy,
			wantSev:  domain.SeverityError,
		},
		{
			name:     "course without title",
			mutate:   func(in *Input) { in.Landing.Courses = append(in.Landing.Courses, domain.Course{}) },
			wantCode: CodeCourseTitleEmpty,
			wantSev:  domain.SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			r := Run(in)
			if len(r.Issues) != 1 {
				t.Fatalf("expected exactly one issue, got %+v", r.Issues)
			}
			if r.Issues[0].Code != tt.wantCode {
				t.Errorf("code = %q, want %q", r.Issues[0].Code, tt.wantCode)
			}
			if r.Issues[0].Severity != tt.wantSev {
				t.Errorf("severity = %q, want %q", r.Issues[0].Severity, tt.wantSev)
			}
		})
	}
}

func TestRunIgnorePolicyDropsIssue(t *testing.T) {
	in := validInput()
	in.Site.OnBrokenLinks = domain.ReportIgnore
	in.Sidebars["block"] = domain.Sidebar{Name: "block", Items: []domain.SidebarNode{domain.DocRef("ghost")}}

	if r := Run(in); len(r.Issues) != 0 {
		t.Errorf("ignore policy should drop issue, got %+v", r.Issues)
	}
}

func TestRunSameIDAcrossTreesIsAllowed(t *testing.T) {
	in := validInput()
	in.Sidebars["other"] = domain.Sidebar{Name: "other", Items: []domain.SidebarNode{domain.DocRef("intro")}}

	if r := Run(in); len(r.Issues) != 0 {
		t.Errorf("ids are unique per tree only, got %+v", r.Issues)
	}
}

func TestRunAssets(t *testing.T) {
	static := t.TempDir()
	if err := os.MkdirAll(filepath.Join(static, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "img", "kotlin.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	in := validInput()
	in.StaticDir = static
	in.Landing.Courses = append(in.Landing.Courses,
		domain.Course{Title: domain.Lit("Gradle"), Icon: "img/gradle.svg"},
		domain.Course{Title: domain.Lit("Remote"), Icon: "https://cdn.example.com/x.svg"},
	)

	r := Run(in)
	if got := r.Codes(); !slices.Equal(got, []string{CodeAssetMissing}) {
		t.Fatalf("codes = %v, want [%s]", got, CodeAssetMissing)
	}
	if r.Issues[0].Location != "courses.yaml#courses[1].icon" {
		t.Errorf("location = %q", r.Issues[0].Location)
	}
	if r.HasErrors() {
		t.Error("missing asset is a warning, not an error")
	}
}
