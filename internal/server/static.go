package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// staticHandler serves the site directory for the browser front end. The
// root path falls back to index.html, unknown paths to a 404 page when the
// site ships one.
func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		name := path.Clean("/" + r.URL.Path)
		if name == "/" {
			name = "/index.html"
		}

		full := filepath.Join(s.siteDir, filepath.FromSlash(strings.TrimPrefix(name, "/")))
		rel, err := filepath.Rel(s.siteDir, full)
		if err != nil || strings.HasPrefix(rel, "..") {
			http.NotFound(w, r)
			return
		}

		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			s.serveNotFound(w, r)
			return
		}

		http.ServeFile(w, r, full)
	})
}

func (s *Server) serveNotFound(w http.ResponseWriter, r *http.Request) {
	page := filepath.Join(s.siteDir, "public", "404.html")
	data, err := os.ReadFile(page)
	if err != nil {
		http.Error(w, "404 Not Found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write(data)
}
