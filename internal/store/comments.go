package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
)

// CommentStore defines the interface for task comment persistence.
type CommentStore interface {
	List(ctx context.Context, taskID string) ([]domain.Comment, error)
	Create(ctx context.Context, taskID, author string, in domain.CommentInput) (*domain.Comment, error)
}

// SQLiteCommentStore implements CommentStore backed by SQLite.
type SQLiteCommentStore struct {
	db *sql.DB
}

// NewSQLiteCommentStore creates a new SQLiteCommentStore.
func NewSQLiteCommentStore(db *sql.DB) *SQLiteCommentStore {
	return &SQLiteCommentStore{db: db}
}

// List returns a task's comments, oldest first.
func (s *SQLiteCommentStore) List(ctx context.Context, taskID string) ([]domain.Comment, error) {
	if _, err := getTask(ctx, s.db, taskID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, task_id, author, body, created_at FROM comments WHERE task_id = ? ORDER BY created_at, rowid`,
		taskID,
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.Author, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Create appends a comment to a task. author is the caller's display name
// and is never taken from the request body.
func (s *SQLiteCommentStore) Create(ctx context.Context, taskID, author string, in domain.CommentInput) (*domain.Comment, error) {
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	var created *domain.Comment
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := getTask(ctx, tx, taskID); err != nil {
			return err
		}
		c := &domain.Comment{
			ID:        newID(),
			TaskID:    taskID,
			Author:    author,
			Body:      in.Body,
			CreatedAt: now(),
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (id, task_id, author, body, created_at) VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.TaskID, c.Author, c.Body, c.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
