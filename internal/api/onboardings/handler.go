package onboardings

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles onboarding HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /onboardings. The status query parameter defaults to
// Active; "All" disables the filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.store.Onboardings.List(r.Context(), store.OnboardingFilter{
		Status:    q.Get("status"),
		CompanyID: q.Get("companyId"),
	})
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, list)
}

// Create handles POST /onboardings.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.OnboardingInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	o, err := h.store.Onboardings.Create(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, o)
}

// Get handles GET /onboardings/{id} and returns the full board.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.store.Onboardings.Detail(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, d)
}

// Update handles PATCH /onboardings/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var patch domain.OnboardingPatch
	if err := api.DecodeJSON(w, r, &patch); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	o, err := h.store.Onboardings.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, o)
}

// Delete handles DELETE /onboardings/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Onboardings.Delete(r.Context(), r.PathValue("id")); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteSuccess(w)
}

// Duplicate handles POST /onboardings/{id}/duplicate.
func (h *Handler) Duplicate(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.Onboardings.Duplicate(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, o)
}

// Phases handles GET /onboardings/{id}/phases.
func (h *Handler) Phases(w http.ResponseWriter, r *http.Request) {
	phases, err := h.store.Phases.List(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, phases)
}

// Tasks handles GET /onboardings/{id}/tasks.
func (h *Handler) Tasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.store.Tasks.List(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, tasks)
}
