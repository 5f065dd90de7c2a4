package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr           string      // ONBOARD_ADDR, default ":8080"
	DBPath         string      // ONBOARD_DB, default "onboard.db"
	AuthTokens     []AuthToken // ONBOARD_AUTH_TOKENS, optional
	IdentityHeader string      // ONBOARD_IDENTITY_HEADER, optional; proxy headers are ignored when unset
	NameHeader     string      // ONBOARD_NAME_HEADER, default "X-Forwarded-User"
	LogLevel       slog.Level  // ONBOARD_LOG_LEVEL, default "info"
	LogFormat      string      // ONBOARD_LOG_FORMAT, "text" or "json"
	SeedFile       string      // ONBOARD_SEED_FILE, optional
	AdminEnabled   bool        // ONBOARD_ENABLE_ADMIN, default false
}

// AuthToken maps a static bearer token to the caller it authenticates.
type AuthToken struct {
	Token       string
	Email       string
	DisplayName string
}

// Load reads configuration from environment variables with sensible defaults.
// Variables from the dotenv file named by ONBOARD_ENV_FILE (default ".env") are
// applied first; values already present in the environment take precedence.
func Load() Config {
	loadDotEnv(envOr("ONBOARD_ENV_FILE", ".env"))

	return Config{
		Addr:           envOr("ONBOARD_ADDR", ":8080"),
		DBPath:         envOr("ONBOARD_DB", "onboard.db"),
		AuthTokens:     parseTokens(os.Getenv("ONBOARD_AUTH_TOKENS")),
		IdentityHeader: strings.TrimSpace(os.Getenv("ONBOARD_IDENTITY_HEADER")),
		NameHeader:     envOr("ONBOARD_NAME_HEADER", "X-Forwarded-User"),
		LogLevel:       parseLevel(os.Getenv("ONBOARD_LOG_LEVEL")),
		LogFormat:      envOr("ONBOARD_LOG_FORMAT", "text"),
		SeedFile:       os.Getenv("ONBOARD_SEED_FILE"),
		AdminEnabled:   parseBool("ONBOARD_ENABLE_ADMIN"),
	}
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("ignoring unreadable env file", "path", path, "error", err)
	}
}

// parseTokens parses "token=email|Display Name" entries separated by commas.
// The display name is optional. Malformed entries are skipped.
func parseTokens(raw string) []AuthToken {
	var tokens []AuthToken
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		token, who, ok := strings.Cut(entry, "=")
		if !ok || strings.TrimSpace(token) == "" {
			slog.Warn("skipping malformed auth token entry")
			continue
		}
		email, name, _ := strings.Cut(who, "|")
		tokens = append(tokens, AuthToken{
			Token:       strings.TrimSpace(token),
			Email:       strings.TrimSpace(email),
			DisplayName: strings.TrimSpace(name),
		})
	}
	return tokens
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseBool(key string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("ignoring invalid boolean", "key", key, "value", raw)
		return false
	}
	return v
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
