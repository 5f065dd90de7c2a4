package owners

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles owner HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /owners.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owners, err := h.store.Owners.List(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, owners)
}

// Tasks handles GET /owners/{name}/tasks.
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.Owners.OpenTasks(r.Context(), r.PathValue("name"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, tasks)
}
