package store

import "database/sql"

// Store holds all sub-stores used by the application.
type Store struct {
	DB          *sql.DB
	Companies   CompanyStore
	Onboardings OnboardingStore
	Phases      PhaseStore
	Tasks       TaskStore
	Contacts    ContactStore
	Comments    CommentStore
	Owners      OwnerStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:          db,
		Companies:   NewSQLiteCompanyStore(db),
		Onboardings: NewSQLiteOnboardingStore(db),
		Phases:      NewSQLitePhaseStore(db),
		Tasks:       NewSQLiteTaskStore(db),
		Contacts:    NewSQLiteContactStore(db),
		Comments:    NewSQLiteCommentStore(db),
		Owners:      NewSQLiteOwnerStore(db),
	}
}
