package export

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// SitemapEntries lists every absolute URL of the site: for each locale
// (default first) the landing page and then every doc in ID order.
// Routes matching an ignore pattern are skipped.
func SitemapEntries(s domain.Site, docs domain.Catalog) ([]string, error) {
	ignore, err := compilePatterns(s.Sitemap.IgnorePatterns)
	if err != nil {
		return nil, err
	}

	origin := strings.TrimSuffix(s.URL, "/")
	var out []string
	for _, loc := range orderedLocales(s.I18n) {
		routes := []string{s.HomePath(loc)}
		for _, id := range docs.IDs() {
			routes = append(routes, s.DocPath(loc, id))
		}
		for _, r := range routes {
			if matchesAny(ignore, r) {
				continue
			}
			out = append(out, origin+r)
		}
	}
	return out, nil
}

// Sitemap renders the sitemap XML document.
func Sitemap(s domain.Site, docs domain.Catalog) ([]byte, error) {
	entries, err := SitemapEntries(s, docs)
	if err != nil {
		return nil, err
	}

	set := urlSet{XMLNS: sitemapNS, URLs: make([]sitemapURL, 0, len(entries))}
	priority := strconv.FormatFloat(s.Sitemap.PriorityValue(), 'f', -1, 64)
	for _, loc := range entries {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        loc,
			ChangeFreq: s.Sitemap.ChangeFreq,
			Priority:   priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

func orderedLocales(cfg domain.I18n) []string {
	out := make([]string, 0, len(cfg.Locales))
	if cfg.DefaultLocale != "" {
		out = append(out, cfg.DefaultLocale)
	}
	for _, l := range cfg.Locales {
		if l != cfg.DefaultLocale {
			out = append(out, l)
		}
	}
	return out
}

// compilePatterns turns glob patterns into anchored regexps.
// "**" crosses path separators, "*" and "?" do not.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		var b strings.Builder
		b.WriteString("^")
		for i := 0; i < len(p); i++ {
			switch {
			case strings.HasPrefix(p[i:], "**"):
				b.WriteString(".*")
				i++
			case p[i] == '*':
				b.WriteString("[^/]*")
			case p[i] == '?':
				b.WriteString("[^/]")
			default:
				b.WriteString(regexp.QuoteMeta(p[i : i+1]))
			}
		}
		b.WriteString("$")

		re, err := regexp.Compile(b.String())
		if err != nil {
			return nil, fmt.Errorf("invalid sitemap ignore pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func matchesAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
