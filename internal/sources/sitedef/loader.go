package sitedef

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

const (
	SiteFile     = "site.yaml"
	SidebarsFile = "sidebars.yaml"
	CoursesFile  = "courses.yaml"
	I18nDir      = "i18n"
	StaticDir    = "static"
)

// Definition is the raw, parsed content of a site definition directory.
type Definition struct {
	Site         SiteConfig
	Sidebars     SidebarsConfig
	Landing      LandingConfig
	Translations map[string]Translations // locale -> catalog
}

// Loader handles loading and parsing of a site definition directory
type Loader struct {
	dir string
}

// NewLoader creates a new loader rooted at dir
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Dir returns the site definition directory
func (l *Loader) Dir() string {
	return l.dir
}

// Load reads site.yaml, sidebars.yaml, courses.yaml and one translation
// catalog per configured locale. A missing catalog is an empty catalog.
func (l *Loader) Load() (Definition, error) {
	var def Definition

	if err := l.readYAML(SiteFile, &def.Site); err != nil {
		return def, err
	}
	if err := l.readYAML(SidebarsFile, &def.Sidebars); err != nil {
		return def, err
	}
	if err := l.readYAML(CoursesFile, &def.Landing); err != nil {
		return def, err
	}

	def.Translations = make(map[string]Translations, len(def.Site.I18n.Locales))
	for _, loc := range def.Site.I18n.Locales {
		var catalog Translations
		err := l.readYAML(filepath.Join(I18nDir, loc+".yaml"), &catalog)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			catalog = Translations{}
		case err != nil:
			return def, err
		}
		if catalog == nil {
			catalog = Translations{}
		}
		def.Translations[loc] = catalog
	}

	return def, nil
}

func (l *Loader) readYAML(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	data = expandTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

var templateVar = regexp.MustCompile(`\{\{\s*(COURSESITE_VAR_[A-Z0-9_]+)\s*\}\}`)

// expandTemplateVariables substitutes {{COURSESITE_VAR_...}} with the
// environment value of that name (empty when unset).
// Example: editUrl: {{COURSESITE_VAR_REPO}}/tree/master/
func expandTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAllFunc(data, func(m []byte) []byte {
		name := templateVar.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
