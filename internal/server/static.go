package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// serveStatic serves /frontend/{filename} and /frontend/{subdir}/{filename}
// from the configured frontend directory.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	subdir := chi.URLParam(r, "subdir")
	filename := chi.URLParam(r, "filename")

	if !validSegment(filename) || (subdir != "" && !validSegment(subdir)) {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.opts.FrontendDir, subdir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, path)
}
