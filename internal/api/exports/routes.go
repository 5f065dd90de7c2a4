package exports

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds the export endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("GET /onboardings/{id}/export", h.Export)
}
