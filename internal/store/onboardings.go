package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// OnboardingFilter narrows List. An empty Status means Active; "All" matches
// every status.
type OnboardingFilter struct {
	Status    string
	CompanyID string
}

// OnboardingStore defines the interface for onboarding persistence.
type OnboardingStore interface {
	List(ctx context.Context, filter OnboardingFilter) ([]domain.OnboardingSummary, error)
	Get(ctx context.Context, id string) (*domain.Onboarding, error)
	Detail(ctx context.Context, id string) (*domain.OnboardingDetail, error)
	Create(ctx context.Context, in domain.OnboardingInput) (*domain.Onboarding, error)
	Update(ctx context.Context, id string, patch domain.OnboardingPatch) (*domain.Onboarding, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (*domain.Onboarding, error)
}

// SQLiteOnboardingStore implements OnboardingStore backed by SQLite.
type SQLiteOnboardingStore struct {
	db *sql.DB
}

// NewSQLiteOnboardingStore creates a new SQLiteOnboardingStore.
func NewSQLiteOnboardingStore(db *sql.DB) *SQLiteOnboardingStore {
	return &SQLiteOnboardingStore{db: db}
}

const onboardingSelect = `SELECT o.id, o.company_id, c.name, o.owner, o.status, o.target_go_live, o.created_at, o.updated_at
	FROM onboardings o JOIN companies c ON c.id = o.company_id`

func scanOnboarding(row scanner) (*domain.Onboarding, error) {
	var o domain.Onboarding
	var owner, target sql.NullString
	if err := row.Scan(&o.ID, &o.CompanyID, &o.CompanyName, &owner, &o.Status, &target, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Owner = stringPtr(owner)
	o.TargetGoLive = stringPtr(target)
	return &o, nil
}

// List returns onboardings matching filter with their derived summaries.
func (s *SQLiteOnboardingStore) List(ctx context.Context, filter OnboardingFilter) ([]domain.OnboardingSummary, error) {
	query := onboardingSelect + ` WHERE 1 = 1`
	var args []any

	switch filter.Status {
	case domain.StatusFilterAll:
	case "":
		query += ` AND o.status = ?`
		args = append(args, domain.OnboardingActive)
	default:
		if !domain.OnboardingStatus(filter.Status).Valid() {
			return nil, domain.Invalid("status", "unknown status filter %q", filter.Status)
		}
		query += ` AND o.status = ?`
		args = append(args, filter.Status)
	}
	if filter.CompanyID != "" {
		query += ` AND o.company_id = ?`
		args = append(args, filter.CompanyID)
	}
	query += ` ORDER BY c.name COLLATE NOCASE, o.rowid`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list onboardings: %w", err)
	}
	var onboardings []*domain.Onboarding
	for rows.Next() {
		o, err := scanOnboarding(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan onboarding: %w", err)
		}
		onboardings = append(onboardings, o)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	_ = rows.Close()

	// Tasks are loaded in a second pass so the cursor above is not held open
	// on the single SQLite connection.
	out := make([]domain.OnboardingSummary, 0, len(onboardings))
	for _, o := range onboardings {
		tasks, err := listTasks(ctx, s.db, o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.OnboardingSummary{Onboarding: *o, Summary: summarize(o, tasks)})
	}
	return out, nil
}

// Get retrieves a single onboarding by ID.
func (s *SQLiteOnboardingStore) Get(ctx context.Context, id string) (*domain.Onboarding, error) {
	return getOnboarding(ctx, s.db, id)
}

// Detail returns the onboarding with its company, phases, tasks, contacts
// and summary.
func (s *SQLiteOnboardingStore) Detail(ctx context.Context, id string) (*domain.OnboardingDetail, error) {
	o, err := getOnboarding(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	company, err := getCompany(ctx, s.db, o.CompanyID)
	if err != nil {
		return nil, err
	}
	phases, err := listPhases(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	tasks, err := listTasks(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	contacts, err := listContacts(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return &domain.OnboardingDetail{
		Onboarding: *o,
		Company:    *company,
		Phases:     phases,
		Tasks:      tasks,
		Contacts:   contacts,
		Summary:    summarize(o, tasks),
	}, nil
}

// Create inserts a new onboarding. When only a company name is given the
// company is created in the same transaction.
func (s *SQLiteOnboardingStore) Create(ctx context.Context, in domain.OnboardingInput) (*domain.Onboarding, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var created *domain.Onboarding
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var company *domain.Company
		var err error
		if in.CompanyID != "" {
			company, err = getCompany(ctx, tx, in.CompanyID)
			if errors.Is(err, ErrNotFound) {
				return domain.Invalid("companyId", "company %q does not exist", in.CompanyID)
			}
		} else {
			company, err = insertCompany(ctx, tx, in.CompanyName)
		}
		if err != nil {
			return err
		}

		ts := now()
		o := &domain.Onboarding{
			ID:           newID(),
			CompanyID:    company.ID,
			CompanyName:  company.Name,
			Owner:        in.Owner,
			Status:       in.Status,
			TargetGoLive: in.TargetGoLive,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		if err := insertOnboarding(ctx, tx, o); err != nil {
			return err
		}
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update partially updates an onboarding (PATCH semantics).
func (s *SQLiteOnboardingStore) Update(ctx context.Context, id string, patch domain.OnboardingPatch) (*domain.Onboarding, error) {
	var updated *domain.Onboarding
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		o, err := getOnboarding(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(o); err != nil {
			return err
		}
		if patch.CompanyID.Present {
			company, err := getCompany(ctx, tx, o.CompanyID)
			if errors.Is(err, ErrNotFound) {
				return domain.Invalid("companyId", "company %q does not exist", o.CompanyID)
			}
			if err != nil {
				return err
			}
			o.CompanyName = company.Name
		}
		o.UpdatedAt = now()

		if _, err := tx.ExecContext(ctx,
			`UPDATE onboardings SET company_id = ?, owner = ?, status = ?, target_go_live = ?, updated_at = ? WHERE id = ?`,
			o.CompanyID, nullString(o.Owner), o.Status, nullString(o.TargetGoLive), o.UpdatedAt, id,
		); err != nil {
			return fmt.Errorf("update onboarding: %w", err)
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an onboarding together with its phases, tasks, task
// comments and contacts.
func (s *SQLiteOnboardingStore) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getOnboarding(ctx, tx, id); err != nil {
			return err
		}

		stmts := []struct{ what, query string }{
			{"comments", `DELETE FROM comments WHERE task_id IN (SELECT id FROM tasks WHERE onboarding_id = ?)`},
			{"tasks", `DELETE FROM tasks WHERE onboarding_id = ?`},
			{"phases", `DELETE FROM phases WHERE onboarding_id = ?`},
			{"contacts", `DELETE FROM contacts WHERE onboarding_id = ?`},
			{"onboarding", `DELETE FROM onboardings WHERE id = ?`},
		}
		for _, st := range stmts {
			if _, err := tx.ExecContext(ctx, st.query, id); err != nil {
				return fmt.Errorf("delete %s: %w", st.what, err)
			}
		}
		return nil
	})
}

// Duplicate copies an onboarding with its phases and tasks under the same
// company. The copy starts Active with no owner or target go-live date;
// copied tasks restart at Not started. Dependency links are remapped to the
// copied tasks, and links to tasks that were not copied are dropped.
// Contacts and comments are not copied.
func (s *SQLiteOnboardingStore) Duplicate(ctx context.Context, id string) (*domain.Onboarding, error) {
	var dup *domain.Onboarding
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		src, err := getOnboarding(ctx, tx, id)
		if err != nil {
			return err
		}
		phases, err := listPhases(ctx, tx, id)
		if err != nil {
			return err
		}
		tasks, err := listTasks(ctx, tx, id)
		if err != nil {
			return err
		}

		ts := now()
		o := &domain.Onboarding{
			ID:          newID(),
			CompanyID:   src.CompanyID,
			CompanyName: src.CompanyName,
			Status:      domain.OnboardingActive,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		}
		if err := insertOnboarding(ctx, tx, o); err != nil {
			return err
		}

		phaseIDs := make(map[string]string, len(phases))
		for _, p := range phases {
			cp := domain.Phase{
				ID:           newID(),
				OnboardingID: o.ID,
				Name:         p.Name,
				SortOrder:    p.SortOrder,
				CreatedAt:    ts,
				UpdatedAt:    ts,
			}
			if err := insertPhase(ctx, tx, &cp); err != nil {
				return err
			}
			phaseIDs[p.ID] = cp.ID
		}

		// First pass: copy every task without dependency links.
		taskIDs := make(map[string]string, len(tasks))
		for _, t := range tasks {
			phaseID, ok := phaseIDs[t.PhaseID]
			if !ok {
				return fmt.Errorf("task %s references phase %s outside onboarding %s", t.ID, t.PhaseID, id)
			}
			cp := t
			cp.ID = newID()
			cp.OnboardingID = o.ID
			cp.PhaseID = phaseID
			cp.Status = domain.TaskNotStarted
			cp.PreviousStatus = nil
			cp.BlockedByTaskID = nil
			cp.Members = slices.Clone(t.Members)
			cp.CreatedAt = ts
			cp.UpdatedAt = ts
			if err := insertTask(ctx, tx, &cp); err != nil {
				return err
			}
			taskIDs[t.ID] = cp.ID
		}

		// Second pass: point dependency links at the copies.
		for _, t := range tasks {
			if t.BlockedByTaskID == nil {
				continue
			}
			blocker, ok := taskIDs[*t.BlockedByTaskID]
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE tasks SET blocked_by_task_id = ? WHERE id = ?`, blocker, taskIDs[t.ID],
			); err != nil {
				return fmt.Errorf("remap dependency: %w", err)
			}
		}

		dup = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

func getOnboarding(ctx context.Context, q database.DBTX, id string) (*domain.Onboarding, error) {
	o, err := scanOnboarding(q.QueryRowContext(ctx, onboardingSelect+` WHERE o.id = ?`, id))
	if err != nil {
		return nil, notFound(err, "onboarding", id)
	}
	return o, nil
}

func insertOnboarding(ctx context.Context, q database.DBTX, o *domain.Onboarding) error {
	if _, err := q.ExecContext(ctx,
		`INSERT INTO onboardings (id, company_id, owner, status, target_go_live, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CompanyID, nullString(o.Owner), o.Status, nullString(o.TargetGoLive), o.CreatedAt, o.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert onboarding: %w", err)
	}
	return nil
}

// summarize derives the list fields, falling back to the onboarding's own
// update time when it has no tasks.
func summarize(o *domain.Onboarding, tasks []domain.Task) domain.Summary {
	sum := domain.Summarize(tasks)
	if sum.LastActivity == "" {
		sum.LastActivity = o.UpdatedAt
	}
	return sum
}
