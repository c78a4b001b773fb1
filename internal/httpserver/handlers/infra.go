package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/coursesite/internal/domain"
	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Revision   string `json:"revision,omitempty"`
	DocsLoaded *int   `json:"docs_loaded,omitempty"`
	Errors     *int   `json:"errors,omitempty"`
	Warnings   *int   `json:"warnings,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"site":  checkSite(d),
			"redis": checkRedis(r.Context(), d),
		}
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if s, ok := components["site"]; ok && !s.OK {
		return "critical"
	}
	if rs, ok := components["redis"]; ok && !rs.OK && rs.Mode != "disabled" {
		return "degraded"
	}
	return "operational"
}

func checkSite(d deps.Deps) componentStatus {
	st := componentStatus{LastReload: "never"}
	if last := d.MemoryIndex.GetLastReload(); !last.IsZero() {
		st.LastReload = last.Format("2006-01-02 15:04:05")
	}
	if err := d.MemoryIndex.LastError(); err != nil {
		st.Error = err.Error()
	}

	snap, err := d.MemoryIndex.Current()
	if err != nil {
		if st.Error == "" {
			st.Error = err.Error()
		}
		return st
	}

	docs := len(snap.Docs)
	errs := snap.Report.Count(domain.SeverityError)
	warns := snap.Report.Count(domain.SeverityWarning)
	st.OK = true
	st.Revision = snap.Revision
	st.DocsLoaded = &docs
	st.Errors = &errs
	st.Warnings = &warns
	return st
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "snapshot-persistence-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-persistence-disabled",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshot-persistence-enabled",
	}
}
