package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	List(ctx context.Context, onboardingID string) ([]domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, ids []string, patch domain.TaskPatch) (int, error)
	Reorder(ctx context.Context, in domain.ReorderInput) (*domain.Task, error)
	ToggleDone(ctx context.Context, id string) (*domain.Task, error)
}

// SQLiteTaskStore implements TaskStore backed by SQLite.
type SQLiteTaskStore struct {
	db *sql.DB
}

// NewSQLiteTaskStore creates a new SQLiteTaskStore.
func NewSQLiteTaskStore(db *sql.DB) *SQLiteTaskStore {
	return &SQLiteTaskStore{db: db}
}

const taskColumns = `t.id, t.onboarding_id, t.phase_id, t.title, t.description, t.status, t.priority, t.due,
	t.owner, t.members, t.notes, t.blocked_by_task_id, t.previous_status, t.sort_order, t.created_at, t.updated_at`

func scanTask(row scanner) (*domain.Task, error) {
	var t domain.Task
	var priority, due, blockedBy, previous sql.NullString
	var members string
	if err := row.Scan(&t.ID, &t.OnboardingID, &t.PhaseID, &t.Title, &t.Description, &t.Status, &priority, &due,
		&t.Owner, &members, &t.Notes, &blockedBy, &previous, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if priority.Valid {
		p := domain.Priority(priority.String)
		t.Priority = &p
	}
	if previous.Valid {
		ps := domain.TaskStatus(previous.String)
		t.PreviousStatus = &ps
	}
	t.Due = stringPtr(due)
	t.BlockedByTaskID = stringPtr(blockedBy)

	var err error
	if t.Members, err = decodeMembers(members); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns the tasks of an onboarding in board order.
func (s *SQLiteTaskStore) List(ctx context.Context, onboardingID string) ([]domain.Task, error) {
	if _, err := getOnboarding(ctx, s.db, onboardingID); err != nil {
		return nil, err
	}
	return listTasks(ctx, s.db, onboardingID)
}

// Get retrieves a single task by ID.
func (s *SQLiteTaskStore) Get(ctx context.Context, id string) (*domain.Task, error) {
	return getTask(ctx, s.db, id)
}

// Create inserts a new task at the end of its phase unless a sort order is
// given.
func (s *SQLiteTaskStore) Create(ctx context.Context, in domain.TaskInput) (*domain.Task, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var created *domain.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := requireOnboarding(ctx, tx, "onboardingId", in.OnboardingID); err != nil {
			return err
		}

		ts := now()
		t := &domain.Task{
			ID:              newID(),
			OnboardingID:    in.OnboardingID,
			PhaseID:         in.PhaseID,
			Title:           in.Title,
			Description:     in.Description,
			Status:          in.Status,
			Priority:        in.Priority,
			Due:             in.Due,
			Owner:           in.Owner,
			Members:         in.Members,
			Notes:           in.Notes,
			BlockedByTaskID: in.BlockedByTaskID,
			CreatedAt:       ts,
			UpdatedAt:       ts,
		}
		if err := checkTaskRefs(ctx, tx, t, domain.Task{}); err != nil {
			return err
		}

		if in.SortOrder != nil {
			t.SortOrder = *in.SortOrder
		} else {
			next, err := nextSortOrder(ctx, tx, "tasks", "phase_id", t.PhaseID)
			if err != nil {
				return err
			}
			t.SortOrder = next
		}

		if err := insertTask(ctx, tx, t); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update partially updates a task (PATCH semantics).
func (s *SQLiteTaskStore) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var updated *domain.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := patchTask(ctx, tx, t, patch); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a task and its comments. Tasks that named it as their
// blocker keep the now dangling reference.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getTask(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE task_id = ?`, id); err != nil {
			return fmt.Errorf("delete task comments: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}

// BulkUpdate applies the same patch to every listed task in one transaction
// and returns how many tasks were modified. Unknown IDs are skipped; any
// other failure rolls the whole batch back.
func (s *SQLiteTaskStore) BulkUpdate(ctx context.Context, ids []string, patch domain.TaskPatch) (int, error) {
	if len(ids) == 0 {
		return 0, domain.Required("taskIds")
	}
	if patch.IsEmpty() {
		return 0, domain.Required("data")
	}

	count := 0
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true

			t, err := getTask(ctx, tx, id)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := patchTask(ctx, tx, t, patch); err != nil {
				return fmt.Errorf("task %s: %w", id, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Reorder moves a task to targetPhaseID at sortOrder with a single UPDATE,
// so phase and position always change together. The target phase must
// belong to the task's onboarding. Sibling positions are left alone.
func (s *SQLiteTaskStore) Reorder(ctx context.Context, in domain.ReorderInput) (*domain.Task, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var moved *domain.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := getTask(ctx, tx, in.TaskID)
		if err != nil {
			return err
		}
		if err := requirePhaseIn(ctx, tx, "targetPhaseId", in.TargetPhaseID, t.OnboardingID); err != nil {
			return err
		}

		t.PhaseID = in.TargetPhaseID
		t.SortOrder = *in.SortOrder
		t.UpdatedAt = now()
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET phase_id = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
			t.PhaseID, t.SortOrder, t.UpdatedAt, t.ID,
		); err != nil {
			return fmt.Errorf("reorder task: %w", err)
		}
		moved = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return moved, nil
}

// ToggleDone marks a task Done or reopens it in its previous status.
func (s *SQLiteTaskStore) ToggleDone(ctx context.Context, id string) (*domain.Task, error) {
	var toggled *domain.Task
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		t, err := getTask(ctx, tx, id)
		if err != nil {
			return err
		}
		t.ToggleDone()
		t.UpdatedAt = now()
		if err := writeTask(ctx, tx, t); err != nil {
			return err
		}
		toggled = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

// patchTask applies patch to t, validates references that changed and
// persists the result.
func patchTask(ctx context.Context, q database.DBTX, t *domain.Task, patch domain.TaskPatch) error {
	before := *t
	if err := patch.Apply(t); err != nil {
		return err
	}
	if err := checkTaskRefs(ctx, q, t, before); err != nil {
		return err
	}
	t.UpdatedAt = now()
	return writeTask(ctx, q, t)
}

// checkTaskRefs verifies the phase and blocking task of t when they differ
// from before. Existing dangling blockers are tolerated; new ones are not.
func checkTaskRefs(ctx context.Context, q database.DBTX, t *domain.Task, before domain.Task) error {
	if t.PhaseID != before.PhaseID {
		if err := requirePhaseIn(ctx, q, "phaseId", t.PhaseID, t.OnboardingID); err != nil {
			return err
		}
	}

	if t.BlockedByTaskID == nil {
		return nil
	}
	if before.BlockedByTaskID != nil && *before.BlockedByTaskID == *t.BlockedByTaskID {
		return nil
	}
	blocker, err := getTask(ctx, q, *t.BlockedByTaskID)
	if errors.Is(err, ErrNotFound) {
		return domain.Invalid("blockedByTaskId", "task %q does not exist", *t.BlockedByTaskID)
	}
	if err != nil {
		return err
	}
	if blocker.OnboardingID != t.OnboardingID {
		return domain.Invalid("blockedByTaskId", "task %q belongs to a different onboarding", blocker.ID)
	}
	return nil
}

// requirePhaseIn fails with a ValidationError on field unless phaseID names a
// phase of onboardingID.
func requirePhaseIn(ctx context.Context, q database.DBTX, field, phaseID, onboardingID string) error {
	p, err := getPhase(ctx, q, phaseID)
	if errors.Is(err, ErrNotFound) {
		return domain.Invalid(field, "phase %q does not exist", phaseID)
	}
	if err != nil {
		return err
	}
	if p.OnboardingID != onboardingID {
		return domain.Invalid(field, "phase %q belongs to a different onboarding", phaseID)
	}
	return nil
}

func getTask(ctx context.Context, q database.DBTX, id string) (*domain.Task, error) {
	t, err := scanTask(q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks t WHERE t.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "task", id)
	}
	return t, nil
}

// listTasks returns an onboarding's tasks in board order: by phase column,
// then position, then insertion.
func listTasks(ctx context.Context, q database.DBTX, onboardingID string) ([]domain.Task, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks t JOIN phases p ON p.id = t.phase_id
		 WHERE t.onboarding_id = ?
		 ORDER BY p.sort_order, p.rowid, t.sort_order, t.rowid`,
		onboardingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
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

func insertTask(ctx context.Context, q database.DBTX, t *domain.Task) error {
	members, err := encodeMembers(t.Members)
	if err != nil {
		return err
	}
	if t.Members == nil {
		t.Members = []string{}
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO tasks (id, onboarding_id, phase_id, title, description, status, priority, due, owner, members,
			notes, blocked_by_task_id, previous_status, sort_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OnboardingID, t.PhaseID, t.Title, t.Description, t.Status, nullPriority(t.Priority), nullString(t.Due),
		t.Owner, members, t.Notes, nullString(t.BlockedByTaskID), nullStatus(t.PreviousStatus), t.SortOrder,
		t.CreatedAt, t.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func writeTask(ctx context.Context, q database.DBTX, t *domain.Task) error {
	members, err := encodeMembers(t.Members)
	if err != nil {
		return err
	}
	if _, err := q.ExecContext(ctx,
		`UPDATE tasks SET phase_id = ?, title = ?, description = ?, status = ?, priority = ?, due = ?, owner = ?,
			members = ?, notes = ?, blocked_by_task_id = ?, previous_status = ?, sort_order = ?, updated_at = ?
		 WHERE id = ?`,
		t.PhaseID, t.Title, t.Description, t.Status, nullPriority(t.Priority), nullString(t.Due), t.Owner,
		members, t.Notes, nullString(t.BlockedByTaskID), nullStatus(t.PreviousStatus), t.SortOrder, t.UpdatedAt,
		t.ID,
	); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func nullPriority(p *domain.Priority) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*p), Valid: true}
}

func nullStatus(s *domain.TaskStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
