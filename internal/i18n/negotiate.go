// Package i18n picks the locale a landing page is rendered in.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
)

// Negotiator matches Accept-Language headers against configured locales.
type Negotiator struct {
	locales []string // default locale first
	matcher language.Matcher
}

// ParseLocale checks that loc is a well-formed BCP 47 tag.
func ParseLocale(loc string) (language.Tag, error) {
	tag, err := language.Parse(loc)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", loc, err)
	}
	return tag, nil
}

// NewNegotiator builds a negotiator. The default locale wins when nothing
// in a request matches.
func NewNegotiator(defaultLocale string, locales []string) (*Negotiator, error) {
	ordered := make([]string, 0, len(locales)+1)
	ordered = append(ordered, defaultLocale)
	for _, l := range locales {
		if l != defaultLocale {
			ordered = append(ordered, l)
		}
	}

	tags := make([]language.Tag, 0, len(ordered))
	for _, l := range ordered {
		tag, err := ParseLocale(l)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	return &Negotiator{
		locales: ordered,
		matcher: language.NewMatcher(tags),
	}, nil
}

// Default returns the default locale.
func (n *Negotiator) Default() string {
	return n.locales[0]
}

// Match returns the configured locale best matching an Accept-Language
// header value.
func (n *Negotiator) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return n.Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return n.Default()
	}
	_, idx, conf := n.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(n.locales) {
		return n.Default()
	}
	return n.locales[idx]
}
