package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/johnwards/onboard/internal/domain"
)

// OwnerStore derives owners from the owner fields of onboardings and tasks.
type OwnerStore interface {
	List(ctx context.Context) ([]domain.Owner, error)
	OpenTasks(ctx context.Context, name string) ([]domain.Task, error)
}

// SQLiteOwnerStore implements OwnerStore backed by SQLite.
type SQLiteOwnerStore struct {
	db *sql.DB
}

// NewSQLiteOwnerStore creates a new SQLiteOwnerStore.
func NewSQLiteOwnerStore(db *sql.DB) *SQLiteOwnerStore {
	return &SQLiteOwnerStore{db: db}
}

// List returns every owner name in use, sorted case-insensitively. Archived
// onboardings and their tasks are not counted.
func (s *SQLiteOwnerStore) List(ctx context.Context) ([]domain.Owner, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, SUM(n_onboardings), SUM(n_open) FROM (
			SELECT TRIM(owner) AS name, 1 AS n_onboardings, 0 AS n_open
			  FROM onboardings
			 WHERE owner IS NOT NULL AND TRIM(owner) <> '' AND status <> ?
			UNION ALL
			SELECT TRIM(t.owner), 0, CASE WHEN t.status <> ? THEN 1 ELSE 0 END
			  FROM tasks t JOIN onboardings o ON o.id = t.onboarding_id
			 WHERE TRIM(t.owner) <> '' AND o.status <> ?
		 )
		 GROUP BY name
		 ORDER BY name COLLATE NOCASE`,
		domain.OnboardingArchived, domain.TaskDone, domain.OnboardingArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("list owners: %w", err)
	}
	defer func() { _ = rows.Close() }()

	owners := []domain.Owner{}
	for rows.Next() {
		var o domain.Owner
		if err := rows.Scan(&o.Name, &o.Onboardings, &o.OpenTasks); err != nil {
			return nil, fmt.Errorf("scan owner: %w", err)
		}
		owners = append(owners, o)
	}
	return owners, rows.Err()
}

// OpenTasks returns the tasks owned by name that are not Done, soonest due
// first. Tasks without a due date come last.
func (s *SQLiteOwnerStore) OpenTasks(ctx context.Context, name string) ([]domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Required("name")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks t JOIN onboardings o ON o.id = t.onboarding_id
		 WHERE TRIM(t.owner) = ? AND t.status <> ? AND o.status <> ?
		 ORDER BY t.due IS NULL, t.due, t.rowid`,
		name, domain.TaskDone, domain.OnboardingArchived,
	)
	if err != nil {
		return nil, fmt.Errorf("list owner tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}
