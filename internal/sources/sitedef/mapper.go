package sitedef

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

// Mapper converts a parsed Definition into domain entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapSite converts SiteConfig to domain.Site with generator defaults applied
func (m *Mapper) MapSite(c SiteConfig) domain.Site {
	site := domain.Site{
		Title:                 c.Title,
		Tagline:               c.Tagline,
		URL:                   c.URL,
		BaseURL:               c.BaseURL,
		Favicon:               c.Favicon,
		OrganizationName:      c.OrganizationName,
		ProjectName:           c.ProjectName,
		OnBrokenLinks:         domain.ReportingSeverity(strings.ToLower(c.OnBrokenLinks)),
		OnBrokenMarkdownLinks: domain.ReportingSeverity(strings.ToLower(c.OnBrokenMarkdownLinks)),
		I18n: domain.I18n{
			DefaultLocale: c.I18n.DefaultLocale,
			Locales:       append([]string(nil), c.I18n.Locales...),
		},
		Docs: domain.DocsOptions{
			Path:          c.Docs.Path,
			RouteBasePath: c.Docs.RouteBasePath,
			EditURL:       c.Docs.EditURL,
			RemarkPlugins: c.Docs.RemarkPlugins,
			RehypePlugins: c.Docs.RehypePlugins,
		},
		Blog: domain.BlogOptions{
			ShowReadingTime: c.Blog.ShowReadingTime,
			EditURL:         c.Blog.EditURL,
		},
		Sitemap: domain.SitemapOptions{
			ChangeFreq:     c.Sitemap.ChangeFreq,
			Priority:       c.Sitemap.Priority,
			IgnorePatterns: c.Sitemap.IgnorePatterns,
			Filename:       c.Sitemap.Filename,
		},
		Theme: domain.Theme{
			CustomCSS: c.Theme.CustomCSS,
			Navbar:    domain.Navbar{Title: c.ThemeConfig.Navbar.Title},
			Footer: domain.Footer{
				Style:     c.ThemeConfig.Footer.Style,
				Copyright: c.ThemeConfig.Footer.Copyright,
			},
			Prism: domain.Prism{
				Theme:               c.ThemeConfig.Prism.Theme,
				DarkTheme:           c.ThemeConfig.Prism.DarkTheme,
				AdditionalLanguages: c.ThemeConfig.Prism.AdditionalLanguages,
			},
		},
	}

	for _, it := range c.ThemeConfig.Navbar.Items {
		site.Theme.Navbar.Items = append(site.Theme.Navbar.Items, domain.NavbarItem(it))
	}
	for _, col := range c.ThemeConfig.Footer.Links {
		fc := domain.FooterColumn{Title: col.Title}
		for _, l := range col.Items {
			fc.Items = append(fc.Items, domain.FooterLink(l))
		}
		site.Theme.Footer.Links = append(site.Theme.Footer.Links, fc)
	}
	for _, mc := range c.ThemeConfig.Prism.MagicComments {
		out := domain.MagicComment{ClassName: mc.ClassName, Line: mc.Line}
		if mc.Block != nil {
			out.BlockStart = mc.Block.Start
			out.BlockEnd = mc.Block.End
		}
		site.Theme.Prism.MagicComments = append(site.Theme.Prism.MagicComments, out)
	}
	for _, ss := range c.Stylesheets {
		site.Stylesheets = append(site.Stylesheets, domain.Stylesheet(ss))
	}

	site.ApplyDefaults()
	return site
}

// MapSidebars converts SidebarsConfig to domain.Sidebars.
// Structural problems (unknown node type, category without label) are
// errors; data-integrity problems are left to validation.
func (m *Mapper) MapSidebars(c SidebarsConfig) (domain.Sidebars, error) {
	sidebars := make(domain.Sidebars, len(c))
	for name, items := range c {
		nodes, err := mapNodes(items, name)
		if err != nil {
			return nil, err
		}
		sidebars[name] = domain.Sidebar{Name: name, Items: nodes}
	}
	return sidebars, nil
}

func mapNodes(specs []NodeSpec, where string) ([]domain.SidebarNode, error) {
	nodes := make([]domain.SidebarNode, 0, len(specs))
	for i, spec := range specs {
		switch domain.NodeKind(spec.Type) {
		case domain.KindDoc:
			if spec.ID == "" {
				return nil, fmt.Errorf("%s[%d]: doc item without id", where, i)
			}
			nodes = append(nodes, domain.DocRef(spec.ID))
		case domain.KindCategory:
			if spec.Label == "" {
				return nil, fmt.Errorf("%s[%d]: category without label", where, i)
			}
			children, err := mapNodes(spec.Items, where+"/"+spec.Label)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, domain.Category(spec.Label, children...))
		default:
			return nil, fmt.Errorf("%s[%d]: unsupported sidebar item type %q", where, i, spec.Type)
		}
	}
	return nodes, nil
}

// MapLanding converts LandingConfig to domain.Landing, preserving order
func (m *Mapper) MapLanding(c LandingConfig) domain.Landing {
	landing := domain.Landing{
		Hero: domain.Hero{
			Avatar:   c.Hero.Avatar,
			Title:    mapText(c.Hero.Title),
			Subtitle: mapText(c.Hero.Subtitle),
			Bio:      mapText(c.Hero.Bio),
		},
		Courses: make([]domain.Course, 0, len(c.Courses)),
	}
	for _, cc := range c.Courses {
		landing.Courses = append(landing.Courses, domain.Course{
			Title:       mapText(cc.Title),
			Icon:        cc.Icon,
			Description: mapText(cc.Description),
		})
	}
	return landing
}

// MapTranslations copies the per-locale catalogs.
func (m *Mapper) MapTranslations(c map[string]Translations) domain.Translations {
	out := make(domain.Translations, len(c))
	for loc, catalog := range c {
		msgs := make(map[string]string, len(catalog))
		for k, v := range catalog {
			msgs[k] = v
		}
		out[loc] = msgs
	}
	return out
}

func mapText(t TextSpec) domain.Text {
	if t.Translate != "" {
		return domain.Translated(t.Translate)
	}
	return domain.Lit(t.Literal)
}
