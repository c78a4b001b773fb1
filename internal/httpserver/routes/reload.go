package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/mw"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			PerSecond:  d.ReloadRate,
			Burst:      d.ReloadBurst,
			MaxEntries: 1024,
			TrustProxy: d.TrustProxy,
		}),
	).Post("/reload", handlers.Reload(d))
}
