package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// now returns the current UTC time with millisecond precision.
func now() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

func newID() string {
	return uuid.NewString()
}

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// notFound maps sql.ErrNoRows to ErrNotFound with context.
func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

// nextSortOrder returns max(sort_order)+1 over the rows matching column=id,
// or 0 when there are none. table and column are compile-time constants.
func nextSortOrder(ctx context.Context, q database.DBTX, table, column, id string) (int, error) {
	var next int
	err := q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM %s WHERE %s = ?`, table, column), //nolint:gosec // identifiers are constants
		id,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sort order: %w", err)
	}
	return next, nil
}

func encodeMembers(members []string) (string, error) {
	if members == nil {
		members = []string{}
	}
	b, err := json.Marshal(members)
	if err != nil {
		return "", fmt.Errorf("marshal members: %w", err)
	}
	return string(b), nil
}

func decodeMembers(raw string) ([]string, error) {
	members := []string{}
	if raw == "" {
		return members, nil
	}
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return nil, fmt.Errorf("unmarshal members: %w", err)
	}
	return members, nil
}

// requireOnboarding fails with a ValidationError on field when the
// onboarding does not exist.
func requireOnboarding(ctx context.Context, q database.DBTX, field, id string) error {
	if _, err := getOnboarding(ctx, q, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.Invalid(field, "onboarding %q does not exist", id)
		}
		return err
	}
	return nil
}
