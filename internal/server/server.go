// Package server assembles the HTTP handler: every route plus the
// middleware chain.
package server

import (
	"fmt"
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/api/admin"
	"github.com/johnwards/onboard/internal/api/comments"
	"github.com/johnwards/onboard/internal/api/companies"
	"github.com/johnwards/onboard/internal/api/contacts"
	"github.com/johnwards/onboard/internal/api/exports"
	"github.com/johnwards/onboard/internal/api/imports"
	"github.com/johnwards/onboard/internal/api/onboardings"
	"github.com/johnwards/onboard/internal/api/owners"
	"github.com/johnwards/onboard/internal/api/phases"
	"github.com/johnwards/onboard/internal/api/tasks"
	"github.com/johnwards/onboard/internal/api/ui"
	"github.com/johnwards/onboard/internal/config"
	"github.com/johnwards/onboard/internal/store"
)

// New returns the application handler for cfg over s.
func New(cfg config.Config, s *store.Store) http.Handler {
	mux := http.NewServeMux()

	companies.RegisterRoutes(mux, s)
	onboardings.RegisterRoutes(mux, s)
	phases.RegisterRoutes(mux, s)
	tasks.RegisterRoutes(mux, s)
	contacts.RegisterRoutes(mux, s)
	comments.RegisterRoutes(mux, s)
	owners.RegisterRoutes(mux, s)
	exports.RegisterRoutes(mux, s)
	imports.RegisterRoutes(mux, s)

	admin.RegisterRoutes(mux, s, cfg.SeedFile, cfg.AdminEnabled)
	ui.RegisterRoutes(mux, s)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
			api.CorrelationID(r.Context()),
		))
	})

	return api.Chain(mux,
		api.Recovery(),
		api.RequestID(),
		api.Logging(),
		api.Auth(api.ResolverFromConfig(cfg), "/healthz"),
		api.JSONContentType(),
	)
}
