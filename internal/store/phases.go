package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// PhaseStore defines the interface for phase persistence.
type PhaseStore interface {
	List(ctx context.Context, onboardingID string) ([]domain.Phase, error)
	Get(ctx context.Context, id string) (*domain.Phase, error)
	Create(ctx context.Context, in domain.PhaseInput) (*domain.Phase, error)
	Update(ctx context.Context, id string, patch domain.PhasePatch) (*domain.Phase, error)
	Delete(ctx context.Context, id string) error
}

// SQLitePhaseStore implements PhaseStore backed by SQLite.
type SQLitePhaseStore struct {
	db *sql.DB
}

// NewSQLitePhaseStore creates a new SQLitePhaseStore.
func NewSQLitePhaseStore(db *sql.DB) *SQLitePhaseStore {
	return &SQLitePhaseStore{db: db}
}

const phaseColumns = `id, onboarding_id, name, sort_order, created_at, updated_at`

func scanPhase(row scanner) (*domain.Phase, error) {
	var p domain.Phase
	if err := row.Scan(&p.ID, &p.OnboardingID, &p.Name, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the phases of an onboarding in column order.
func (s *SQLitePhaseStore) List(ctx context.Context, onboardingID string) ([]domain.Phase, error) {
	if _, err := getOnboarding(ctx, s.db, onboardingID); err != nil {
		return nil, err
	}
	return listPhases(ctx, s.db, onboardingID)
}

// Get retrieves a single phase by ID.
func (s *SQLitePhaseStore) Get(ctx context.Context, id string) (*domain.Phase, error) {
	return getPhase(ctx, s.db, id)
}

// Create inserts a new phase. Without an explicit sort order the phase is
// placed after the existing ones.
func (s *SQLitePhaseStore) Create(ctx context.Context, in domain.PhaseInput) (*domain.Phase, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var created *domain.Phase
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := requireOnboarding(ctx, tx, "onboardingId", in.OnboardingID); err != nil {
			return err
		}

		order := 0
		if in.SortOrder != nil {
			order = *in.SortOrder
		} else {
			next, err := nextSortOrder(ctx, tx, "phases", "onboarding_id", in.OnboardingID)
			if err != nil {
				return err
			}
			order = next
		}

		ts := now()
		p := &domain.Phase{
			ID:           newID(),
			OnboardingID: in.OnboardingID,
			Name:         in.Name,
			SortOrder:    order,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		if err := insertPhase(ctx, tx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update renames or moves a phase (PATCH semantics).
func (s *SQLitePhaseStore) Update(ctx context.Context, id string, patch domain.PhasePatch) (*domain.Phase, error) {
	var updated *domain.Phase
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		p, err := getPhase(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(p); err != nil {
			return err
		}
		p.UpdatedAt = now()

		if _, err := tx.ExecContext(ctx,
			`UPDATE phases SET name = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
			p.Name, p.SortOrder, p.UpdatedAt, id,
		); err != nil {
			return fmt.Errorf("update phase: %w", err)
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a phase. Phases that still hold tasks cannot be deleted.
func (s *SQLitePhaseStore) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getPhase(ctx, tx, id); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE phase_id = ?`, id).Scan(&count); err != nil {
			return fmt.Errorf("count phase tasks: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("phase %s still has %d task(s); move or delete them first: %w", id, count, ErrConflict)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete phase: %w", err)
		}
		return nil
	})
}

func getPhase(ctx context.Context, q database.DBTX, id string) (*domain.Phase, error) {
	p, err := scanPhase(q.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "phase", id)
	}
	return p, nil
}

func listPhases(ctx context.Context, q database.DBTX, onboardingID string) ([]domain.Phase, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases WHERE onboarding_id = ? ORDER BY sort_order, rowid`,
		onboardingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	phases := []domain.Phase{}
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan phase: %w", err)
		}
		phases = append(phases, *p)
	}
	return phases, rows.Err()
}

func insertPhase(ctx context.Context, q database.DBTX, p *domain.Phase) error {
	if _, err := q.ExecContext(ctx,
		`INSERT INTO phases (id, onboarding_id, name, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.OnboardingID, p.Name, p.SortOrder, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert phase: %w", err)
	}
	return nil
}
