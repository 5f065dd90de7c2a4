package tasks

import (
	"net/http"

	"github.com/johnwards/onboard/internal/store"
)

// RegisterRoutes adds all task endpoints to the given mux.
func RegisterRoutes(mux *http.ServeMux, s *store.Store) {
	h := &Handler{store: s}

	mux.HandleFunc("POST /tasks", h.Create)
	mux.HandleFunc("PATCH /tasks/bulk", h.BulkUpdate)
	mux.HandleFunc("POST /tasks/reorder", h.Reorder)
	mux.HandleFunc("GET /tasks/{id}", h.Get)
	mux.HandleFunc("PATCH /tasks/{id}", h.Update)
	mux.HandleFunc("DELETE /tasks/{id}", h.Delete)
	mux.HandleFunc("POST /tasks/{id}/toggle-done", h.ToggleDone)
}
