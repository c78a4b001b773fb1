package domain

import (
	"strconv"
	"strings"
	"time"
)

// ReportingSeverity is the generator's policy for a class of problem.
type ReportingSeverity string

const (
	ReportThrow  ReportingSeverity = "throw"
	ReportWarn   ReportingSeverity = "warn"
	ReportLog    ReportingSeverity = "log"
	ReportIgnore ReportingSeverity = "ignore"
)

// Site is the configuration record consumed by the generator at build time.
//
// It is NOT tied to YAML or to the generator's JSON shape.
// Loaders map into it and exporters map out of it.
type Site struct {
	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	Title   string
	Tagline string

	// URL is the absolute production origin.
	// Example: https://course.y9vad9.com/
	URL string

	// BaseURL is the path the site is served under. Starts and ends with "/".
	BaseURL string

	Favicon          string
	OrganizationName string
	ProjectName      string

	// ─────────────────────────────
	// Build policy
	// ─────────────────────────────

	OnBrokenLinks         ReportingSeverity
	OnBrokenMarkdownLinks ReportingSeverity

	// ─────────────────────────────
	// Plugins & theme
	// ─────────────────────────────

	I18n        I18n
	Docs        DocsOptions
	Blog        BlogOptions
	Sitemap     SitemapOptions
	Theme       Theme
	Stylesheets []Stylesheet
}

type I18n struct {
	DefaultLocale string
	Locales       []string
}

// HasLocale reports whether loc is configured.
func (i I18n) HasLocale(loc string) bool {
	for _, l := range i.Locales {
		if l == loc {
			return true
		}
	}
	return false
}

type DocsOptions struct {
	// Path is the docs directory, relative to the site directory.
	Path          string
	RouteBasePath string
	// EditURL prefixes the source path to build "edit this page" links.
	EditURL       string
	RemarkPlugins []string
	RehypePlugins []string
}

type BlogOptions struct {
	ShowReadingTime bool
	EditURL         string
}

// DefaultSitemapPriority applies when site.yaml sets no priority.
const DefaultSitemapPriority = 0.5

type SitemapOptions struct {
	ChangeFreq     string
	Priority       *float64 // nil when unset; an explicit 0 is kept
	IgnorePatterns []string
	Filename       string
}

// PriorityValue returns the configured priority or the default.
func (o SitemapOptions) PriorityValue() float64 {
	if o.Priority == nil {
		return DefaultSitemapPriority
	}
	return *o.Priority
}

type Theme struct {
	CustomCSS string
	Navbar    Navbar
	Footer    Footer
	Prism     Prism
}

type Navbar struct {
	Title string
	Items []NavbarItem
}

// NavbarItem mirrors the generator's navbar item union.
// Type "doc" uses DocID; plain links use To or Href.
type NavbarItem struct {
	Type     string
	DocID    string
	To       string
	Href     string
	Label    string
	Position string
}

type Footer struct {
	Style     string
	Links     []FooterColumn
	Copyright string
}

type FooterColumn struct {
	Title string
	Items []FooterLink
}

type FooterLink struct {
	Label string
	To    string
	Href  string
}

// CopyrightFor substitutes the {year} placeholder.
func (f Footer) CopyrightFor(now time.Time) string {
	return strings.ReplaceAll(f.Copyright, "{year}", strconv.Itoa(now.Year()))
}

type Prism struct {
	Theme               string
	DarkTheme           string
	AdditionalLanguages []string
	MagicComments       []MagicComment
}

type MagicComment struct {
	ClassName  string
	Line       string
	BlockStart string
	BlockEnd   string
}

type Stylesheet struct {
	Href        string
	Type        string
	Integrity   string
	CrossOrigin string
}

// ApplyDefaults fills the generator's defaults for unset fields.
func (s *Site) ApplyDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = "/"
	}
	if s.OnBrokenLinks == "" {
		s.OnBrokenLinks = ReportThrow
	}
	if s.OnBrokenMarkdownLinks == "" {
		s.OnBrokenMarkdownLinks = ReportWarn
	}
	if s.Docs.Path == "" {
		s.Docs.Path = "docs"
	}
	if s.Docs.RouteBasePath == "" {
		s.Docs.RouteBasePath = "docs"
	}
	if s.Sitemap.ChangeFreq == "" {
		s.Sitemap.ChangeFreq = "weekly"
	}
	if s.Sitemap.Priority == nil {
		p := DefaultSitemapPriority
		s.Sitemap.Priority = &p
	}
	if s.Sitemap.Filename == "" {
		s.Sitemap.Filename = "sitemap.xml"
	}
	if s.I18n.DefaultLocale == "" && len(s.I18n.Locales) > 0 {
		s.I18n.DefaultLocale = s.I18n.Locales[0]
	}
}

// LocalePrefix returns the URL segment for a locale: empty for the default.
func (s *Site) LocalePrefix(locale string) string {
	if locale == "" || locale == s.I18n.DefaultLocale {
		return ""
	}
	return locale + "/"
}

// DocPath returns the site-relative route of a doc in a locale.
// Example: /en/docs/block-1/variables
func (s *Site) DocPath(locale, docID string) string {
	base := strings.TrimSuffix(s.BaseURL, "/") + "/"
	route := strings.Trim(s.Docs.RouteBasePath, "/")
	if route != "" {
		route += "/"
	}
	return base + s.LocalePrefix(locale) + route + docID
}

// HomePath returns the landing page route in a locale.
func (s *Site) HomePath(locale string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + s.LocalePrefix(locale)
}
