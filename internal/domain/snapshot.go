package domain

import "time"

// Translations maps locale -> key -> message.
type Translations map[string]map[string]string

// Snapshot is one loaded, validated state of the site definition.
//
// A Snapshot is immutable once published: reloads build a new one.
type Snapshot struct {
	// Revision identifies this load.
	Revision string
	LoadedAt time.Time

	Site         Site
	Sidebars     Sidebars
	Landing      Landing
	Translations Translations
	Docs         Catalog

	Report Report
}

// Translate resolves a message key: requested locale, then default
// locale, then the key itself.
func (s *Snapshot) Translate(locale, key string) string {
	if msg, ok := s.Translations[locale][key]; ok && msg != "" {
		return msg
	}
	if msg, ok := s.Translations[s.Site.I18n.DefaultLocale][key]; ok && msg != "" {
		return msg
	}
	return key
}

// Text resolves a Text in a locale.
func (s *Snapshot) Text(locale string, t Text) string {
	if t.Key != "" {
		return s.Translate(locale, t.Key)
	}
	return t.Literal
}
