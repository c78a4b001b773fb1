package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
)

// Metrics exposes the Prometheus registry, or 404 when metrics are off.
func Metrics(d deps.Deps) http.Handler {
	if d.Metrics == nil {
		return http.NotFoundHandler()
	}
	return d.Metrics.Handler()
}
