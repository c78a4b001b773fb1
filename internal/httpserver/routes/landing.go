package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/handlers"
)

func init() { Register(registerLanding) }

func registerLanding(r chi.Router, d deps.Deps) {
	seg := "/{" + handlers.SegmentParam + "}"

	r.Get("/", handlers.Landing(d))
	r.Get(seg, handlers.TopLevel(d))
	r.Get(seg+"/", handlers.LandingLocale(d))
	r.Method("GET", "/*", handlers.Static(d))
}
