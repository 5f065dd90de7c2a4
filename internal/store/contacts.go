package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// ContactStore defines the interface for contact persistence.
type ContactStore interface {
	List(ctx context.Context, onboardingID string) ([]domain.Contact, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, in domain.ContactInput) (*domain.Contact, error)
	Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

// SQLiteContactStore implements ContactStore backed by SQLite.
type SQLiteContactStore struct {
	db *sql.DB
}

// NewSQLiteContactStore creates a new SQLiteContactStore.
func NewSQLiteContactStore(db *sql.DB) *SQLiteContactStore {
	return &SQLiteContactStore{db: db}
}

const contactColumns = `id, onboarding_id, name, email, role, created_at, updated_at`

func scanContact(row scanner) (*domain.Contact, error) {
	var c domain.Contact
	if err := row.Scan(&c.ID, &c.OnboardingID, &c.Name, &c.Email, &c.Role, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns the contacts of an onboarding in the order they were added.
func (s *SQLiteContactStore) List(ctx context.Context, onboardingID string) ([]domain.Contact, error) {
	if _, err := getOnboarding(ctx, s.db, onboardingID); err != nil {
		return nil, err
	}
	return listContacts(ctx, s.db, onboardingID)
}

// Get returns a contact by ID.
func (s *SQLiteContactStore) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return getContact(ctx, s.db, id)
}

// Create adds a contact to an existing onboarding.
func (s *SQLiteContactStore) Create(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var created *domain.Contact
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getOnboarding(ctx, tx, in.OnboardingID); err != nil {
			return err
		}

		ts := now()
		c := &domain.Contact{
			ID:           newID(),
			OnboardingID: in.OnboardingID,
			Name:         in.Name,
			Email:        in.Email,
			Role:         in.Role,
			CreatedAt:    ts,
			UpdatedAt:    ts,
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (`+contactColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.OnboardingID, c.Name, c.Email, c.Role, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update partially updates a contact (PATCH semantics).
func (s *SQLiteContactStore) Update(ctx context.Context, id string, patch domain.ContactPatch) (*domain.Contact, error) {
	var updated *domain.Contact
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		c, err := getContact(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := patch.Apply(c); err != nil {
			return err
		}
		c.UpdatedAt = now()

		if _, err := tx.ExecContext(ctx,
			`UPDATE contacts SET name = ?, email = ?, role = ?, updated_at = ? WHERE id = ?`,
			c.Name, c.Email, c.Role, c.UpdatedAt, c.ID,
		); err != nil {
			return fmt.Errorf("update contact: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a contact.
func (s *SQLiteContactStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return nil
}

func getContact(ctx context.Context, q database.DBTX, id string) (*domain.Contact, error) {
	c, err := scanContact(q.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err, "contact", id)
	}
	return c, nil
}

func listContacts(ctx context.Context, q database.DBTX, onboardingID string) ([]domain.Contact, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE onboarding_id = ? ORDER BY created_at, rowid`,
		onboardingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	contacts := []domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}
