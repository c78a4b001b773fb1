package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/handlers"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Get("/site", handlers.SiteConfig(d))
		api.Get("/sidebars", handlers.Sidebars(d))
		api.Get("/sidebars/{"+handlers.SidebarParam+"}", handlers.Sidebar(d))
		api.Get("/nav/*", handlers.Nav(d))
		api.Get("/report", handlers.Report(d))
		api.Get("/revisions", handlers.Revisions(d))
		api.Get("/revisions/{"+handlers.RevisionParam+"}/report", handlers.RevisionReport(d))
		api.Get("/export/{"+handlers.ArtifactParam+"}", handlers.Artifact(d))
	})
}
