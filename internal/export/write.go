package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
)

type translationMessage struct {
	Message string `json:"message"`
}

// TranslationsJSON renders one locale's catalog in the generator's
// code.json format: {"key": {"message": "..."}}.
func TranslationsJSON(catalog map[string]string) ([]byte, error) {
	out := make(map[string]translationMessage, len(catalog))
	for k, v := range catalog {
		out[k] = translationMessage{Message: v}
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteAll writes every generator artifact of snap under dir and returns
// the written paths, relative to dir.
func WriteAll(dir string, snap *domain.Snapshot, now time.Time) ([]string, error) {
	if snap == nil {
		return nil, fmt.Errorf("export: nil snapshot")
	}

	type artifact struct {
		name   string
		render func() ([]byte, error)
	}
	artifacts := []artifact{
		{SidebarsFile, func() ([]byte, error) { return SidebarsJSON(snap.Sidebars) }},
		{ConfigFile, func() ([]byte, error) { return ConfigJSON(snap.Site, now) }},
		{snap.Site.Sitemap.Filename, func() ([]byte, error) { return Sitemap(snap.Site, snap.Docs) }},
	}
	for _, loc := range snap.Site.I18n.Locales {
		catalog := snap.Translations[loc]
		artifacts = append(artifacts, artifact{
			filepath.Join("i18n", loc, "code.json"),
			func() ([]byte, error) { return TranslationsJSON(catalog) },
		})
	}

	written := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		data, err := a.render()
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", a.name, err)
		}
		p := filepath.Join(dir, a.name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return written, fmt.Errorf("failed to create %s: %w", filepath.Dir(p), err)
		}
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", p, err)
		}
		written = append(written, a.name)
	}
	return written, nil
}
