package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeRaw writes pre-encoded bytes with a content type.
func writeRaw(w http.ResponseWriter, d deps.Deps, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

// snapshot returns the published snapshot or answers 503.
func snapshot(w http.ResponseWriter, d deps.Deps) (*domain.Snapshot, bool) {
	snap, err := d.MemoryIndex.Current()
	if err != nil {
		w.Header().Set("Retry-After", "5")
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	return snap, true
}
