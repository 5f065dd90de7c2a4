package ui

import (
	"io/fs"
	"net/http"

	"github.com/johnwards/onboard/internal/store"
	"github.com/johnwards/onboard/web"
)

// RegisterRoutes registers the server-rendered UI under /ui/.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	staticFS, err := fs.Sub(web.FS, "static")
	if err != nil {
		panic("failed to create sub filesystem: " + err.Error())
	}
	h := &Handler{store: s, pages: mustParsePages()}

	mux.Handle("GET /ui/static/", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("GET /ui/{$}", h.Index)
	mux.HandleFunc("GET /ui/companies", h.Companies)
	mux.HandleFunc("GET /ui/onboardings", h.Onboardings)
	mux.HandleFunc("GET /ui/onboardings/{id}", h.Board)
}
