package handlers

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/MrSnakeDoc/coursesite/internal/httpserver/deps"
	"github.com/MrSnakeDoc/coursesite/internal/sources/sitedef"
)

// Static serves files from the site's static directory, the way the
// generator publishes them. Paths under the current base URL have it
// stripped. Directory listings are not served.
func Static(d deps.Deps) http.Handler {
	if d.SiteDir == "" {
		return http.NotFoundHandler()
	}
	fs := http.FileServer(http.Dir(filepath.Join(d.SiteDir, sitedef.StaticDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, withoutBase(r, d))
	})
}

func withoutBase(r *http.Request, d deps.Deps) *http.Request {
	snap, err := d.MemoryIndex.Current()
	if err != nil {
		return r
	}
	base := strings.TrimSuffix(snap.Site.BaseURL, "/")
	rest, ok := strings.CutPrefix(r.URL.Path, base+"/")
	if base == "" || !ok {
		return r
	}

	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = "/" + rest
	r2.URL.RawPath = ""
	return r2
}
