package export

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// Output file names.
const (
	SidebarsFile = "sidebars.json"
	ConfigFile   = "docusaurus.config.json"
)

// SiteConfig mirrors the generator's top-level config object.
type SiteConfig struct {
	Title                 string       `json:"title"`
	Tagline               string       `json:"tagline,omitempty"`
	URL                   string       `json:"url"`
	BaseURL               string       `json:"baseUrl"`
	OnBrokenLinks         string       `json:"onBrokenLinks"`
	OnBrokenMarkdownLinks string       `json:"onBrokenMarkdownLinks"`
	Favicon               string       `json:"favicon,omitempty"`
	OrganizationName      string       `json:"organizationName,omitempty"`
	ProjectName           string       `json:"projectName,omitempty"`
	I18n                  i18nConfig   `json:"i18n"`
	Presets               []preset     `json:"presets"`
	ThemeConfig           themeConfig  `json:"themeConfig"`
	Stylesheets           []stylesheet `json:"stylesheets,omitempty"`
}

type i18nConfig struct {
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales"`
}

// preset is encoded as the generator's ["name", options] tuple.
type preset struct {
	Name    string
	Options presetOptions
}

func (p preset) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{p.Name, p.Options})
}

type presetOptions struct {
	Docs    docsOptions    `json:"docs"`
	Blog    blogOptions    `json:"blog"`
	Theme   themeOptions   `json:"theme"`
	Sitemap sitemapOptions `json:"sitemap"`
}

type docsOptions struct {
	Path          string   `json:"path"`
	RouteBasePath string   `json:"routeBasePath"`
	SidebarPath   string   `json:"sidebarPath"`
	EditURL       string   `json:"editUrl,omitempty"`
	RemarkPlugins []string `json:"remarkPlugins,omitempty"`
	RehypePlugins []string `json:"rehypePlugins,omitempty"`
}

type blogOptions struct {
	ShowReadingTime bool   `json:"showReadingTime"`
	EditURL         string `json:"editUrl,omitempty"`
}

type themeOptions struct {
	CustomCSS string `json:"customCss,omitempty"`
}

type sitemapOptions struct {
	ChangeFreq     string   `json:"changefreq"`
	Priority       float64  `json:"priority"`
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`
	Filename       string   `json:"filename"`
}

type themeConfig struct {
	Navbar navbar `json:"navbar"`
	Footer footer `json:"footer"`
	Prism  prism  `json:"prism"`
}

type navbar struct {
	Title string       `json:"title,omitempty"`
	Items []navbarItem `json:"items"`
}

type navbarItem struct {
	Type     string `json:"type,omitempty"`
	DocID    string `json:"docId,omitempty"`
	To       string `json:"to,omitempty"`
	Href     string `json:"href,omitempty"`
	Label    string `json:"label,omitempty"`
	Position string `json:"position,omitempty"`
}

type footer struct {
	Style     string         `json:"style,omitempty"`
	Links     []footerColumn `json:"links"`
	Copyright string         `json:"copyright,omitempty"`
}

type footerColumn struct {
	Title string       `json:"title"`
	Items []footerLink `json:"items"`
}

type footerLink struct {
	Label string `json:"label"`
	To    string `json:"to,omitempty"`
	Href  string `json:"href,omitempty"`
}

type prism struct {
	Theme               string         `json:"theme,omitempty"`
	DarkTheme           string         `json:"darkTheme,omitempty"`
	AdditionalLanguages []string       `json:"additionalLanguages,omitempty"`
	MagicComments       []magicComment `json:"magicComments,omitempty"`
}

type magicComment struct {
	ClassName string      `json:"className"`
	Line      string      `json:"line,omitempty"`
	Block     *blockMarks `json:"block,omitempty"`
}

type blockMarks struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type stylesheet struct {
	Href        string `json:"href"`
	Type        string `json:"type,omitempty"`
	Integrity   string `json:"integrity,omitempty"`
	CrossOrigin string `json:"crossorigin,omitempty"`
}

// Config maps a domain.Site onto the generator's config schema.
// now resolves the {year} placeholder in the footer copyright.
func Config(s domain.Site, now time.Time) SiteConfig {
	cfg := SiteConfig{
		Title:                 s.Title,
		Tagline:               s.Tagline,
		URL:                   s.URL,
		BaseURL:               s.BaseURL,
		OnBrokenLinks:         string(s.OnBrokenLinks),
		OnBrokenMarkdownLinks: string(s.OnBrokenMarkdownLinks),
		Favicon:               s.Favicon,
		OrganizationName:      s.OrganizationName,
		ProjectName:           s.ProjectName,
		I18n: i18nConfig{
			DefaultLocale: s.I18n.DefaultLocale,
			Locales:       nonNil(s.I18n.Locales),
		},
		Presets: []preset{{
			Name: "classic",
			Options: presetOptions{
				Docs: docsOptions{
					Path:          s.Docs.Path,
					RouteBasePath: s.Docs.RouteBasePath,
					SidebarPath:   "./" + SidebarsFile,
					EditURL:       s.Docs.EditURL,
					RemarkPlugins: s.Docs.RemarkPlugins,
					RehypePlugins: s.Docs.RehypePlugins,
				},
				Blog: blogOptions{
					ShowReadingTime: s.Blog.ShowReadingTime,
					EditURL:         s.Blog.EditURL,
				},
				Theme: themeOptions{CustomCSS: s.Theme.CustomCSS},
				Sitemap: sitemapOptions{
					ChangeFreq:     s.Sitemap.ChangeFreq,
					Priority:       s.Sitemap.PriorityValue(),
					IgnorePatterns: s.Sitemap.IgnorePatterns,
					Filename:       s.Sitemap.Filename,
				},
			},
		}},
		ThemeConfig: themeConfig{
			Navbar: navbar{Title: s.Theme.Navbar.Title, Items: []navbarItem{}},
			Footer: footer{
				Style:     s.Theme.Footer.Style,
				Links:     []footerColumn{},
				Copyright: s.Theme.Footer.CopyrightFor(now),
			},
			Prism: prism{
				Theme:               s.Theme.Prism.Theme,
				DarkTheme:           s.Theme.Prism.DarkTheme,
				AdditionalLanguages: s.Theme.Prism.AdditionalLanguages,
			},
		},
	}

	for _, it := range s.Theme.Navbar.Items {
		cfg.ThemeConfig.Navbar.Items = append(cfg.ThemeConfig.Navbar.Items, navbarItem(it))
	}
	for _, col := range s.Theme.Footer.Links {
		fc := footerColumn{Title: col.Title, Items: []footerLink{}}
		for _, l := range col.Items {
			fc.Items = append(fc.Items, footerLink(l))
		}
		cfg.ThemeConfig.Footer.Links = append(cfg.ThemeConfig.Footer.Links, fc)
	}
	for _, mc := range s.Theme.Prism.MagicComments {
		out := magicComment{ClassName: mc.ClassName, Line: mc.Line}
		if mc.BlockStart != "" || mc.BlockEnd != "" {
			out.Block = &blockMarks{Start: mc.BlockStart, End: mc.BlockEnd}
		}
		cfg.ThemeConfig.Prism.MagicComments = append(cfg.ThemeConfig.Prism.MagicComments, out)
	}
	for _, ss := range s.Stylesheets {
		cfg.Stylesheets = append(cfg.Stylesheets, stylesheet(ss))
	}

	return cfg
}

// ConfigJSON renders the config file content.
func ConfigJSON(s domain.Site, now time.Time) ([]byte, error) {
	return json.MarshalIndent(Config(s, now), "", "  ")
}

// EditURL builds the "edit this page" link of a doc, or "" when the docs
// plugin has no editUrl.
// Example: https://github.com/y9vad9/kotlin-course/tree/master/docs/intro.md
func EditURL(s domain.Site, doc *domain.Doc) string {
	if s.Docs.EditURL == "" || doc == nil {
		return ""
	}
	return strings.TrimSuffix(s.Docs.EditURL, "/") + "/" +
		strings.Trim(s.Docs.Path, "/") + "/" + doc.Source
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
