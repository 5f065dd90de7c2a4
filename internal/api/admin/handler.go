package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/seed"
	"github.com/johnwards/onboard/internal/store"
)

// Handler serves the admin API at /_admin/ and the liveness probe.
type Handler struct {
	store    *store.Store
	seedFile string
}

// dataTableNames lists all data tables in foreign-key-safe deletion order.
var dataTableNames = []string{
	"comments",
	"tasks",
	"contacts",
	"phases",
	"onboardings",
	"companies",
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DB.PingContext(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "health check failed", "error", err)
		api.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reset drops all data from all tables and re-runs seeds.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	res, err := ResetData(r.Context(), h.store, h.seedFile)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "data reset", "created", res.Created)
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedData runs seed data without dropping existing data first.
func (h *Handler) SeedData(w http.ResponseWriter, r *http.Request) {
	ds, err := seed.LoadFile(h.seedFile)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	res, err := seed.Seed(r.Context(), h.store, ds)
	if err != nil {
		api.WriteStoreError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "seeded", "created", res.Created, "skipped", res.Skipped)
	api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResetData clears all data tables within a transaction and re-seeds from
// seedFile, or the sample dataset when it is empty.
func ResetData(ctx context.Context, s *store.Store, seedFile string) (seed.Result, error) {
	ds, err := seed.LoadFile(seedFile)
	if err != nil {
		return seed.Result{}, err
	}

	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, table := range dataTableNames {
			if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil { //nolint:gosec // table names are hardcoded constants
				return fmt.Errorf("clear table %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return seed.Result{}, err
	}
	return seed.Seed(ctx, s, ds)
}
