package admin

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes registers GET /healthz on the mux, plus the admin endpoints
// when enabled. seedFile overrides the embedded sample dataset when non-empty.
func RegisterRoutes(mux *http.ServeMux, s *store.Store, seedFile string, enabled bool) {
	h := &Handler{store: s, seedFile: seedFile}

	mux.HandleFunc("GET /healthz", h.Health)
	if !enabled {
		return
	}
	mux.HandleFunc("POST /_admin/reset", h.Reset)
	mux.HandleFunc("POST /_admin/seed", h.SeedData)
}
