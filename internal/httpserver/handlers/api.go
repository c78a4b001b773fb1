package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/export"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
)

// SidebarParam is the URL parameter naming a sidebar.
const SidebarParam = "name"

type docLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type navResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Sidebar    string   `json:"sidebar"`
	Breadcrumb []string `json:"breadcrumb"`
	Prev       *docLink `json:"prev,omitempty"`
	Next       *docLink `json:"next,omitempty"`
	EditURL    string   `json:"edit_url,omitempty"`
}

type reportResponse struct {
	Revision  string         `json:"revision"`
	LoadedAt  time.Time      `json:"loaded_at"`
	HasErrors bool           `json:"has_errors"`
	Errors    int            `json:"errors"`
	Warnings  int            `json:"warnings"`
	Issues    []domain.Issue `json:"issues"`
}

// SiteConfig returns the generator config of the current snapshot.
func SiteConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}
		body, err := export.ConfigJSON(snap.Site, d.Now())
		if err != nil {
			d.Logger.Error("failed to encode site config", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to encode site config")
			return
		}
		writeRaw(w, d, "application/json", body)
	}
}

// Sidebars returns every sidebar tree.
func Sidebars(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, export.Sidebars(snap.Sidebars))
	}
}

// Sidebar returns one sidebar tree by name.
func Sidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}
		sb, err := snap.Sidebars.Get(chi.URLParam(r, SidebarParam))
		if err != nil {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, export.SidebarTree(sb))
	}
}

// Nav returns where a doc sits in the navigation.
func Nav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}

		id := strings.Trim(chi.URLParam(r, "*"), "/")
		doc, found := snap.Docs[id]
		if !found {
			writeError(w, http.StatusNotFound, domain.ErrUnknownDoc.Error())
			return
		}

		resp := navResponse{
			ID:         doc.ID,
			Title:      doc.Title,
			Breadcrumb: []string{},
			EditURL:    export.EditURL(snap.Site, doc),
		}
		loc, err := snap.Sidebars.Locate(id)
		if err == nil {
			resp.Sidebar = loc.Sidebar
			resp.Breadcrumb = loc.Breadcrumb
			resp.Prev = linkTo(snap.Docs, loc.Prev)
			resp.Next = linkTo(snap.Docs, loc.Next)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func linkTo(docs domain.Catalog, id string) *docLink {
	if id == "" {
		return nil
	}
	l := &docLink{ID: id}
	if doc, ok := docs[id]; ok {
		l.Title = doc.Title
	}
	return l
}

// Report returns the validation report of the current snapshot.
func Report(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := snapshot(w, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, reportOf(snap))
	}
}

func reportOf(snap *domain.Snapshot) reportResponse {
	issues := snap.Report.Issues
	if issues == nil {
		issues = []domain.Issue{}
	}
	return reportResponse{
		Revision:  snap.Revision,
		LoadedAt:  snap.LoadedAt,
		HasErrors: snap.Report.HasErrors(),
		Errors:    snap.Report.Count(domain.SeverityError),
		Warnings:  snap.Report.Count(domain.SeverityWarning),
		Issues:    issues,
	}
}
