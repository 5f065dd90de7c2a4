package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnwards/onboard/internal/printer"
	"github.com/johnwards/onboard/internal/seed"
	"github.com/johnwards/onboard/internal/server"
)

var serveSeed bool

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and web UI",
	Long: `Open and migrate the database, then serve the JSON API and the web UI
on ONBOARD_ADDR until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "load seed data before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, closeDB, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if serveSeed {
		ds, err := seed.LoadFile(cfg.SeedFile)
		if err != nil {
			return printer.Error("Cannot read seed data", err.Error())
		}
		res, err := seed.Seed(ctx, s, ds)
		if err != nil {
			return printer.Error("Seeding failed", err.Error())
		}
		slog.Info("seeded", "created", res.Created, "skipped", res.Skipped)
	}

	if len(cfg.AuthTokens) == 0 && cfg.IdentityHeader == "" {
		slog.Warn("no identity source configured; every request except /healthz will be rejected")
	}
	if cfg.AdminEnabled {
		slog.Warn("admin endpoints enabled; any authenticated caller can reset the database")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting onboard server", "addr", cfg.Addr, "db", cfg.DBPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return printer.Error("Server stopped", err.Error())
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		return err
	}
	return nil
}
