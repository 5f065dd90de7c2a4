package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/testhelpers"
)

func TestMigrationsCreateAllTables(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.Migrate(ctx, db))

	tables := []string{
		"schema_migrations",
		"companies",
		"onboardings",
		"phases",
		"tasks",
		"contacts",
		"comments",
	}

	for _, table := range tables {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s should exist", table)
	}
}

func TestMigrationsEnforceForeignKeys(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ctx := context.Background()
	require.NoError(t, database.Migrate(ctx, db))

	_, err := db.ExecContext(ctx,
		`INSERT INTO onboardings (id, company_id, status, created_at, updated_at)
		 VALUES ('o1', 'no-such-company', 'Active', 'now', 'now')`)
	assert.Error(t, err, "onboarding with unknown company must be rejected")
}
