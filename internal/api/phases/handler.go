package phases

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles phase HTTP requests.
type Handler struct {
	store *store.Store
}

// Create handles POST /phases.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.PhaseInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	p, err := h.store.Phases.Create(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, p)
}

// Get handles GET /phases/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.store.Phases.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// Update handles PATCH /phases/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.PhasePatch
	if err := api.DecodeJSON(w, r, &patch); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	p, err := h.store.Phases.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, p)
}

// Delete handles DELETE /phases/{id}. A phase that still holds tasks answers
// 409.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Phases.Delete(r.Context(), r.PathValue("id")); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteSuccess(w)
}
