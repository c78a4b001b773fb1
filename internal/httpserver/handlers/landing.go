package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/export"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/i18n"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/render"
)

// SegmentParam is the URL parameter of top-level path segments.
const SegmentParam = "segment"

// Landing renders the landing page in the locale negotiated from
// Accept-Language, falling back to the default locale.
func Landing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}

		locale := snap.Site.I18n.DefaultLocale
		if n, err := i18n.NewNegotiator(locale, snap.Site.I18n.Locales); err == nil {
			locale = n.Match(r.Header.Get("Accept-Language"))
		}
		w.Header().Set("Vary", "Accept-Language")
		renderLanding(w, d, snap, locale)
	}
}

// LandingLocale renders the landing page in the locale named by the path.
func LandingLocale(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}

		locale := chi.URLParam(r, SegmentParam)
		if !snap.Site.I18n.HasLocale(locale) {
			http.NotFound(w, r)
			return
		}
		renderLanding(w, d, snap, locale)
	}
}

// TopLevel serves single-segment paths: the sitemap file, a redirect
// from /{locale} to /{locale}/, or a top-level static file.
func TopLevel(d deps.Deps) http.HandlerFunc {
	static := Static(d)
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}

		seg := chi.URLParam(r, SegmentParam)
		switch {
		case seg == snap.Site.Sitemap.Filename:
			body, err := export.Sitemap(snap.Site, snap.Docs)
			if err != nil {
				d.Logger.Error("failed to build sitemap", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to build sitemap")
				return
			}
			writeRaw(w, d, "application/xml; charset=utf-8", body)
		case snap.Site.I18n.HasLocale(seg):
			http.Redirect(w, r, "/"+seg+"/", http.StatusMovedPermanently)
		default:
			static.ServeHTTP(w, r)
		}
	}
}

func renderLanding(w http.ResponseWriter, d deps.Deps, snap *domain.Snapshot, locale string) {
	var buf bytes.Buffer
	if err := render.Render(&buf, snap, locale, d.Now()); err != nil {
		d.Logger.Error("failed to render landing page", logger.String("locale", locale), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render landing page")
		return
	}
	w.Header().Set("Content-Language", locale)
	writeRaw(w, d, "text/html; charset=utf-8", buf.Bytes())
}
