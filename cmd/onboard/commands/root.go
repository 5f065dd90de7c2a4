package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnwards/onboard/internal/config"
	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/printer"
	"github.com/johnwards/onboard/internal/store"
)

// cfg is loaded before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard - customer onboarding tracker",
	Long: `Onboard tracks the onboarding of customer companies: phases, tasks,
blockers, contacts and comments, served over a JSON API and a web UI.

Configuration is read from ONBOARD_* environment variables and an optional
.env file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		slog.SetDefault(newLogger(cfg, os.Stderr))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func newLogger(c config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens and migrates the configured database. The returned close
// function releases it.
func openStore(ctx context.Context) (*store.Store, func(), error) {
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, printer.Error("Cannot open database", fmt.Sprintf("%s: %v", cfg.DBPath, err))
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, printer.Error("Migration failed", err.Error())
	}
	return store.New(db), func() { _ = db.Close() }, nil
}
