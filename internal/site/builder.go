// Package site turns a site definition directory into a validated snapshot.
package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/coursesite/internal/content"
	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/sources/sitedef"
	"github.com/MrSnakeDoc/coursesite/internal/validate"
)

// Builder loads, scans and validates one site definition directory.
type Builder struct {
	loader  *sitedef.Loader
	mapper  *sitedef.Mapper
	workers int
	now     func() time.Time
}

// NewBuilder creates a builder rooted at dir. workers <= 0 uses the
// scanner default.
func NewBuilder(dir string, workers int) *Builder {
	return &Builder{
		loader:  sitedef.NewLoader(dir),
		mapper:  sitedef.NewMapper(),
		workers: workers,
		now:     time.Now,
	}
}

// Dir returns the site definition directory.
func (b *Builder) Dir() string { return b.loader.Dir() }

// Build produces a new snapshot with a fresh revision. Validation
// findings land in the snapshot report; only unreadable or malformed
// input is an error.
func (b *Builder) Build(ctx context.Context) (*domain.Snapshot, error) {
	def, err := b.loader.Load()
	if err != nil {
		return nil, err
	}

	siteCfg := b.mapper.MapSite(def.Site)
	sidebars, err := b.mapper.MapSidebars(def.Sidebars)
	if err != nil {
		return nil, fmt.Errorf("failed to map sidebars: %w", err)
	}

	docsDir := filepath.Join(b.Dir(), filepath.FromSlash(siteCfg.Docs.Path))
	docs, err := content.NewScanner(docsDir).WithWorkers(b.workers).Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan docs: %w", err)
	}

	snap := &domain.Snapshot{
		Revision:     uuid.NewString(),
		LoadedAt:     b.now(),
		Site:         siteCfg,
		Sidebars:     sidebars,
		Landing:      b.mapper.MapLanding(def.Landing),
		Translations: b.mapper.MapTranslations(def.Translations),
		Docs:         docs,
	}
	snap.Report = validate.Run(validate.Input{
		Site:      snap.Site,
		Sidebars:  snap.Sidebars,
		Landing:   snap.Landing,
		Docs:      snap.Docs,
		StaticDir: filepath.Join(b.Dir(), sitedef.StaticDir),
	})

	return snap, nil
}
