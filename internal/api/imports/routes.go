package imports

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds the import endpoint to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("POST /onboardings/{id}/import", h.Import)
}
