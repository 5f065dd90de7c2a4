package companies

import (
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// Handler handles company HTTP requests.
type Handler struct {
	store *store.Store
}

// List handles GET /companies.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.Companies.List(r.Context())
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, companies)
}

// Create handles POST /companies.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CompanyInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	c, err := h.store.Companies.Create(r.Context(), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusCreated, c)
}

// Get handles GET /companies/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.Companies.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}

// Update handles PATCH /companies/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in domain.CompanyInput
	if err := api.DecodeJSON(w, r, &in); err != nil {
		api.WriteStoreError(w, r, err)
		return
	}

	c, err := h.store.Companies.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, c)
}
