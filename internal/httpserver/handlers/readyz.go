package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready    bool   `json:"ready"`
	Revision string `json:"revision,omitempty"`
}

// Readyz reports ready once a snapshot has been published.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.MemoryIndex.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{
			Ready:    true,
			Revision: d.MemoryIndex.Revision(),
		})
	}
}
