package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/export"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	redisstore "github.com/MrSnakeDoc/coursesite/internal/store/redis"
)

const (
	// RevisionParam is the URL parameter naming a snapshot revision.
	RevisionParam = "rev"
	// ArtifactParam is the URL parameter naming an exported file.
	ArtifactParam = "file"

	historyTimeout = 2 * time.Second
)

type revisionsResponse struct {
	Current   string   `json:"current"`
	Persisted bool     `json:"persisted"`
	Revisions []string `json:"revisions"`
}

// Revisions lists the stored revisions, newest first. Without a store only
// the published revision is known.
func Revisions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := revisionsResponse{
			Current:   d.MemoryIndex.Revision(),
			Persisted: d.Store != nil,
			Revisions: []string{},
		}

		if d.Store == nil {
			if resp.Current != "" {
				resp.Revisions = append(resp.Revisions, resp.Current)
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), historyTimeout)
		defer cancel()
		revs, err := d.Store.Revisions(ctx)
		if err != nil {
			d.Logger.Warn("failed to list revisions", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "revision history unavailable")
			return
		}
		if revs != nil {
			resp.Revisions = revs
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// RevisionReport returns the validation report of a stored revision.
func RevisionReport(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rev := chi.URLParam(r, RevisionParam)

		if snap, err := d.MemoryIndex.Current(); err == nil && snap.Revision == rev {
			writeJSON(w, http.StatusOK, reportOf(snap))
			return
		}
		if d.Store == nil {
			writeError(w, http.StatusNotFound, "unknown revision")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), historyTimeout)
		defer cancel()
		snap, err := d.Store.LoadRevision(ctx, rev)
		switch {
		case errors.Is(err, redisstore.ErrNotFound):
			writeError(w, http.StatusNotFound, "unknown revision")
		case err != nil:
			d.Logger.Warn("failed to load revision", logger.String("revision", rev), logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "revision history unavailable")
		default:
			writeJSON(w, http.StatusOK, reportOf(snap))
		}
	}
}

// Artifact serves a generator file as last published: from the store when
// enabled, else exported from the current snapshot.
func Artifact(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, ArtifactParam)
		if name != export.SidebarsFile && name != export.ConfigFile {
			http.NotFound(w, r)
			return
		}

		if d.Store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), historyTimeout)
			body, err := d.Store.ExportedArtifact(ctx, name)
			cancel()
			if err == nil {
				writeRaw(w, d, "application/json", body)
				return
			}
			if !errors.Is(err, redisstore.ErrNotFound) {
				d.Logger.Warn("failed to read stored artifact, exporting current snapshot",
					logger.String("file", name), logger.Error(err))
			}
		}

		snap, ok := snapshot(w, d)
		if !ok {
			return
		}
		body, err := exportArtifact(snap, name)
		if err != nil {
			d.Logger.Error("failed to export artifact", logger.String("file", name), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to export "+name)
			return
		}
		writeRaw(w, d, "application/json", body)
	}
}

func exportArtifact(snap *domain.Snapshot, name string) ([]byte, error) {
	if name == export.ConfigFile {
		return export.ConfigJSON(snap.Site, snap.LoadedAt)
	}
	return export.SidebarsJSON(snap.Sidebars)
}
