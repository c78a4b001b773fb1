// Package validate runs the data-integrity checks over a loaded site
// definition. Findings are returned as a domain.Report, never as errors.
package validate

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/coursesite/internal/content"
	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/i18n"
)

// Issue codes.
const (
	CodeDocMissing         = "doc-missing"
	CodeDocDuplicate       = "doc-duplicate"
	CodeCategoryEmpty      = "category-empty"
	CodeLocaleEmpty        = "locale-empty"
	CodeLocaleDefault      = "locale-default-missing"
	CodeLocaleInvalid      = "locale-invalid"
	CodeNavbarDocMissing   = "navbar-doc-missing"
	CodeMarkdownLinkBroken = "markdown-link-broken"
	CodeAssetMissing       = "asset-missing"
	CodeSiteURL            = "site-url"
	CodeSiteBaseURL        = "site-base-url"
	CodeSitemapPriority    = "sitemap-priority"
	CodeSitemapChangeFreq  = "sitemap-changefreq"
	CodeCourseTitleEmpty   = "course-title-empty"
	CodeReportingPolicy    = "reporting-policy"
)

var changeFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

// Input is everything a validation pass looks at.
type Input struct {
	Site     domain.Site
	Sidebars domain.Sidebars
	Landing  domain.Landing
	Docs     domain.Catalog

	// StaticDir resolves asset references. Empty skips asset checks.
	StaticDir string
}

// Run executes every check and returns the combined report.
func Run(in Input) domain.Report {
	var r domain.Report

	checkSite(&r, in.Site)
	checkLocales(&r, in.Site.I18n)
	checkSidebars(&r, in)
	checkNavbar(&r, in)
	checkMarkdownLinks(&r, in)
	checkLanding(&r, in.Landing)
	if in.StaticDir != "" {
		checkAssets(&r, in)
	}

	return r
}

// add appends an issue according to a reporting policy.
func add(r *domain.Report, policy domain.ReportingSeverity, code, loc, msg string) {
	if sev, ok := domain.SeverityFor(policy); ok {
		r.Add(sev, code, loc, msg)
	}
}

func checkSite(r *domain.Report, s domain.Site) {
	u, err := url.Parse(s.URL)
	if s.URL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		r.Add(domain.SeverityError, CodeSiteURL, "site.yaml#url",
			fmt.Sprintf("url must be an absolute URL, got %q", s.URL))
	}
	if !strings.HasPrefix(s.BaseURL, "/") || !strings.HasSuffix(s.BaseURL, "/") {
		r.Add(domain.SeverityError, CodeSiteBaseURL, "site.yaml#baseUrl",
			fmt.Sprintf("baseUrl must start and end with /, got %q", s.BaseURL))
	}

	policies := []struct {
		field  string
		policy domain.ReportingSeverity
	}{
		{"onBrokenLinks", s.OnBrokenLinks},
		{"onBrokenMarkdownLinks", s.OnBrokenMarkdownLinks},
	}
	for _, p := range policies {
		switch p.policy {
		case domain.ReportThrow, domain.ReportWarn, domain.ReportLog, domain.ReportIgnore:
		default:
			r.Add(domain.SeverityError, CodeReportingPolicy, "site.yaml#"+p.field,
				fmt.Sprintf("%s must be one of throw, warn, log, ignore; got %q", p.field, p.policy))
		}
	}

	if p := s.Sitemap.PriorityValue(); p < 0 || p > 1 {
		r.Add(domain.SeverityError, CodeSitemapPriority, "site.yaml#sitemap",
			fmt.Sprintf("sitemap priority must be within [0, 1], got %v", s.Sitemap.PriorityValue()))
	}
	if !changeFreqs[s.Sitemap.ChangeFreq] {
		r.Add(domain.SeverityError, CodeSitemapChangeFreq, "site.yaml#sitemap",
			fmt.Sprintf("unknown sitemap changefreq %q", s.Sitemap.ChangeFreq))
	}
}

func checkLocales(r *domain.Report, cfg domain.I18n) {
	const loc = "site.yaml#i18n"
	if len(cfg.Locales) == 0 {
		r.Add(domain.SeverityError, CodeLocaleEmpty, loc, "locale list is empty")
		return
	}
	if !cfg.HasLocale(cfg.DefaultLocale) {
		r.Add(domain.SeverityError, CodeLocaleDefault, loc,
			fmt.Sprintf("default locale %q is not in locales %v", cfg.DefaultLocale, cfg.Locales))
	}
	for _, l := range cfg.Locales {
		if _, err := i18n.ParseLocale(l); err != nil {
			r.Add(domain.SeverityError, CodeLocaleInvalid, loc, err.Error())
		}
	}
}

func checkSidebars(r *domain.Report, in Input) {
	for _, name := range in.Sidebars.Names() {
		sb := in.Sidebars[name]
		loc := "sidebars.yaml#" + name
		seen := make(map[string]bool)

		sb.Walk(func(n domain.SidebarNode, parents []string) {
			where := loc
			if len(parents) > 0 {
				where += "/" + strings.Join(parents, "/")
			}

			switch n.Kind {
			case domain.KindCategory:
				if len(n.Items) == 0 {
					r.Add(domain.SeverityError, CodeCategoryEmpty, where,
						fmt.Sprintf("category %q has no items", n.Label))
				}
			case domain.KindDoc:
				if seen[n.ID] {
					r.Add(domain.SeverityError, CodeDocDuplicate, where,
						fmt.Sprintf("doc %q appears more than once in sidebar %q", n.ID, name))
				}
				seen[n.ID] = true
				if !in.Docs.Has(n.ID) {
					add(r, in.Site.OnBrokenLinks, CodeDocMissing, where,
						fmt.Sprintf("doc %q does not exist", n.ID))
				}
			}
		})
	}
}

func checkNavbar(r *domain.Report, in Input) {
	for i, it := range in.Site.Theme.Navbar.Items {
		if it.Type != "doc" {
			continue
		}
		if !in.Docs.Has(it.DocID) {
			add(r, in.Site.OnBrokenLinks, CodeNavbarDocMissing,
				fmt.Sprintf("site.yaml#themeConfig.navbar.items[%d]", i),
				fmt.Sprintf("navbar doc %q does not exist", it.DocID))
		}
	}
}

func checkMarkdownLinks(r *domain.Report, in Input) {
	sources := make(map[string]bool, len(in.Docs))
	for _, d := range in.Docs {
		sources[d.Source] = true
	}
	for _, id := range in.Docs.IDs() {
		doc := in.Docs[id]
		for _, dest := range doc.Links {
			target, ok := content.ResolveMarkdownLink(doc.Source, dest)
			if !ok || sources[target] {
				continue
			}
			add(r, in.Site.OnBrokenMarkdownLinks, CodeMarkdownLinkBroken,
				docLocation(in.Site.Docs.Path, doc.Source),
				fmt.Sprintf("link %q does not resolve to a doc", dest))
		}
	}
}

func checkLanding(r *domain.Report, l domain.Landing) {
	for i, c := range l.Courses {
		if c.Title.IsZero() {
			r.Add(domain.SeverityError, CodeCourseTitleEmpty,
				fmt.Sprintf("courses.yaml#courses[%d]", i), "course has no title")
		}
	}
}

func checkAssets(r *domain.Report, in Input) {
	check := func(asset, loc string) {
		if asset == "" || isRemote(asset) {
			return
		}
		p := filepath.Join(in.StaticDir, filepath.FromSlash(strings.TrimPrefix(asset, "/")))
		if _, err := os.Stat(p); err != nil {
			r.Add(domain.SeverityWarning, CodeAssetMissing, loc,
				fmt.Sprintf("static asset %q not found", asset))
		}
	}

	check(in.Site.Favicon, "site.yaml#favicon")
	check(in.Landing.Hero.Avatar, "courses.yaml#hero.avatar")
	for i, c := range in.Landing.Courses {
		check(c.Icon, fmt.Sprintf("courses.yaml#courses[%d].icon", i))
	}
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "//")
}

func docLocation(dir, source string) string {
	return strings.TrimSuffix(dir, "/") + "/" + source
}
