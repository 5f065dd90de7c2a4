package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/johnwards/onboard/internal/database"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewTestStore returns a Store over a migrated in-memory database.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return store.New(db)
}

// Board is a small onboarding fixture: one company, one onboarding and two
// phases ("Kickoff" then "Build").
type Board struct {
	Onboarding *domain.Onboarding
	Kickoff    *domain.Phase
	Build      *domain.Phase
}

// NewBoard creates a Board for companyName in s.
func NewBoard(t *testing.T, s *store.Store, companyName string) Board {
	t.Helper()
	ctx := context.Background()

	o, err := s.Onboardings.Create(ctx, domain.OnboardingInput{CompanyName: companyName})
	if err != nil {
		t.Fatalf("create onboarding: %v", err)
	}
	kickoff, err := s.Phases.Create(ctx, domain.PhaseInput{OnboardingID: o.ID, Name: "Kickoff"})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	build, err := s.Phases.Create(ctx, domain.PhaseInput{OnboardingID: o.ID, Name: "Build"})
	if err != nil {
		t.Fatalf("create phase: %v", err)
	}
	return Board{Onboarding: o, Kickoff: kickoff, Build: build}
}

// NewTask creates a task titled title in phase.
func NewTask(t *testing.T, s *store.Store, phase *domain.Phase, title string) *domain.Task {
	t.Helper()

	task, err := s.Tasks.Create(context.Background(), domain.TaskInput{
		OnboardingID: phase.OnboardingID,
		PhaseID:      phase.ID,
		Title:        title,
	})
	if err != nil {
		t.Fatalf("create task %q: %v", title, err)
	}
	return task
}
