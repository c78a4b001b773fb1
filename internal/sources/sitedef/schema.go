package sitedef

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// SiteConfig is the root structure of site.yaml.
// Keys follow the generator's own config names.
type SiteConfig struct {
	Title                 string        `yaml:"title"`
	Tagline               string        `yaml:"tagline,omitempty"`
	URL                   string        `yaml:"url"`
	BaseURL               string        `yaml:"baseUrl,omitempty"`
	Favicon               string        `yaml:"favicon,omitempty"`
	OrganizationName      string        `yaml:"organizationName,omitempty"`
	ProjectName           string        `yaml:"projectName,omitempty"`
	OnBrokenLinks         string        `yaml:"onBrokenLinks,omitempty"`
	OnBrokenMarkdownLinks string        `yaml:"onBrokenMarkdownLinks,omitempty"`
	I18n                  I18nConfig    `yaml:"i18n"`
	Docs                  DocsConfig    `yaml:"docs"`
	Blog                  BlogConfig    `yaml:"blog"`
	Sitemap               SitemapConfig `yaml:"sitemap"`
	Theme                 ThemeConfig   `yaml:"theme"`
	ThemeConfig           ThemeSettings `yaml:"themeConfig"`
	Stylesheets           []Stylesheet  `yaml:"stylesheets,omitempty"`
}

type I18nConfig struct {
	DefaultLocale string   `yaml:"defaultLocale"`
	Locales       []string `yaml:"locales"`
}

type DocsConfig struct {
	Path          string   `yaml:"path,omitempty"`
	RouteBasePath string   `yaml:"routeBasePath,omitempty"`
	EditURL       string   `yaml:"editUrl,omitempty"`
	RemarkPlugins []string `yaml:"remarkPlugins,omitempty"`
	RehypePlugins []string `yaml:"rehypePlugins,omitempty"`
}

type BlogConfig struct {
	ShowReadingTime bool   `yaml:"showReadingTime"`
	EditURL         string `yaml:"editUrl,omitempty"`
}

type SitemapConfig struct {
	ChangeFreq     string   `yaml:"changefreq,omitempty"`
	Priority       *float64 `yaml:"priority,omitempty"`
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`
	Filename       string   `yaml:"filename,omitempty"`
}

type ThemeConfig struct {
	CustomCSS string `yaml:"customCss,omitempty"`
}

type ThemeSettings struct {
	Navbar NavbarConfig `yaml:"navbar"`
	Footer FooterConfig `yaml:"footer"`
	Prism  PrismConfig  `yaml:"prism"`
}

type NavbarConfig struct {
	Title string       `yaml:"title"`
	Items []NavbarItem `yaml:"items"`
}

type NavbarItem struct {
	Type     string `yaml:"type,omitempty"`
	DocID    string `yaml:"docId,omitempty"`
	To       string `yaml:"to,omitempty"`
	Href     string `yaml:"href,omitempty"`
	Label    string `yaml:"label,omitempty"`
	Position string `yaml:"position,omitempty"`
}

type FooterConfig struct {
	Style     string         `yaml:"style,omitempty"`
	Links     []FooterColumn `yaml:"links,omitempty"`
	Copyright string         `yaml:"copyright,omitempty"`
}

type FooterColumn struct {
	Title string       `yaml:"title"`
	Items []FooterLink `yaml:"items"`
}

type FooterLink struct {
	Label string `yaml:"label"`
	To    string `yaml:"to,omitempty"`
	Href  string `yaml:"href,omitempty"`
}

type PrismConfig struct {
	Theme               string         `yaml:"theme,omitempty"`
	DarkTheme           string         `yaml:"darkTheme,omitempty"`
	AdditionalLanguages []string       `yaml:"additionalLanguages,omitempty"`
	MagicComments       []MagicComment `yaml:"magicComments,omitempty"`
}

type MagicComment struct {
	ClassName string `yaml:"className"`
	Line      string `yaml:"line,omitempty"`
	Block     *struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"block,omitempty"`
}

type Stylesheet struct {
	Href        string `yaml:"href"`
	Type        string `yaml:"type,omitempty"`
	Integrity   string `yaml:"integrity,omitempty"`
	CrossOrigin string `yaml:"crossorigin,omitempty"`
}

// SidebarsConfig is the root structure of sidebars.yaml: name -> items.
type SidebarsConfig map[string][]NodeSpec

// NodeSpec is one sidebar item. In YAML it is either a bare string
// (shorthand doc reference) or a mapping with a type.
type NodeSpec struct {
	Type  string     `yaml:"type"`
	ID    string     `yaml:"id,omitempty"`
	Label string     `yaml:"label,omitempty"`
	Items []NodeSpec `yaml:"items,omitempty"`
}

func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Type = "doc"
		n.ID = value.Value
		return nil
	case yaml.MappingNode:
		type plain NodeSpec
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*n = NodeSpec(p)
		if n.Type == "" {
			n.Type = "doc"
		}
		return nil
	default:
		return fmt.Errorf("line %d: unexpected sidebar item", value.Line)
	}
}

// LandingConfig is the root structure of courses.yaml.
type LandingConfig struct {
	Hero    HeroConfig     `yaml:"hero"`
	Courses []CourseConfig `yaml:"courses"`
}

type HeroConfig struct {
	Avatar   string   `yaml:"avatar,omitempty"`
	Title    TextSpec `yaml:"title,omitempty"`
	Subtitle TextSpec `yaml:"subtitle,omitempty"`
	Bio      TextSpec `yaml:"bio,omitempty"`
}

type CourseConfig struct {
	Title       TextSpec `yaml:"title"`
	Icon        string   `yaml:"icon"`
	Description TextSpec `yaml:"description"`
}

// TextSpec is a literal string or {translate: key}.
type TextSpec struct {
	Literal   string
	Translate string
}

func (t *TextSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.Literal = value.Value
		return nil
	case yaml.MappingNode:
		var m struct {
			Translate string `yaml:"translate"`
		}
		if err := value.Decode(&m); err != nil {
			return err
		}
		if m.Translate == "" {
			return fmt.Errorf("line %d: text mapping needs a translate key", value.Line)
		}
		t.Translate = m.Translate
		return nil
	default:
		return fmt.Errorf("line %d: text must be a string or {translate: key}", value.Line)
	}
}

// Translations is the content of i18n/<locale>.yaml.
type Translations map[string]string
