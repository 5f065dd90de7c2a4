package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// CompanyStore defines the interface for company persistence. Companies are
// never deleted.
type CompanyStore interface {
	List(ctx context.Context) ([]domain.Company, error)
	Get(ctx context.Context, id string) (*domain.Company, error)
	Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error)
	Update(ctx context.Context, id string, in domain.CompanyInput) (*domain.Company, error)
}

// SQLiteCompanyStore implements CompanyStore backed by SQLite.
type SQLiteCompanyStore struct {
	db *sql.DB
}

// NewSQLiteCompanyStore creates a new SQLiteCompanyStore.
func NewSQLiteCompanyStore(db *sql.DB) *SQLiteCompanyStore {
	return &SQLiteCompanyStore{db: db}
}

// List returns every company ordered by name.
func (s *SQLiteCompanyStore) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at, updated_at FROM companies ORDER BY name COLLATE NOCASE, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	companies := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return companies, nil
}

// Get retrieves a single company by ID.
func (s *SQLiteCompanyStore) Get(ctx context.Context, id string) (*domain.Company, error) {
	return getCompany(ctx, s.db, id)
}

// Create inserts a new company.
func (s *SQLiteCompanyStore) Create(ctx context.Context, in domain.CompanyInput) (*domain.Company, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	return insertCompany(ctx, s.db, in.Name)
}

// Update renames a company.
func (s *SQLiteCompanyStore) Update(ctx context.Context, id string, in domain.CompanyInput) (*domain.Company, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	ts := now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, updated_at = ? WHERE id = ?`, in.Name, ts, id)
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update company: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("company %s: %w", id, ErrNotFound)
	}
	return getCompany(ctx, s.db, id)
}

func getCompany(ctx context.Context, q database.DBTX, id string) (*domain.Company, error) {
	var c domain.Company
	err := q.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM companies WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, notFound(err, "company", id)
	}
	return &c, nil
}

func insertCompany(ctx context.Context, q database.DBTX, name string) (*domain.Company, error) {
	c := domain.Company{ID: newID(), Name: name, CreatedAt: now()}
	c.UpdatedAt = c.CreatedAt

	if _, err := q.ExecContext(ctx,
		`INSERT INTO companies (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.CreatedAt, c.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert company: %w", err)
	}
	return &c, nil
}
