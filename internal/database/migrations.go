package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: core onboarding tables
	{
		`CREATE TABLE companies (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE onboardings (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			owner TEXT,
			status TEXT NOT NULL DEFAULT 'Active',
			target_go_live TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (company_id) REFERENCES companies(id)
		)`,
		`CREATE INDEX idx_onboardings_company ON onboardings(company_id)`,
		`CREATE INDEX idx_onboardings_status ON onboardings(status)`,

		`CREATE TABLE phases (
			id TEXT PRIMARY KEY,
			onboarding_id TEXT NOT NULL,
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (onboarding_id) REFERENCES onboardings(id)
		)`,
		`CREATE INDEX idx_phases_onboarding ON phases(onboarding_id, sort_order)`,

		// blocked_by_task_id is not a foreign key: deleting the
		// blocking task leaves the reference dangling.
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			onboarding_id TEXT NOT NULL,
			phase_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Not started',
			priority TEXT,
			due TEXT,
			owner TEXT NOT NULL DEFAULT '',
			members TEXT NOT NULL DEFAULT '[]',
			notes TEXT NOT NULL DEFAULT '',
			blocked_by_task_id TEXT,
			previous_status TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (onboarding_id) REFERENCES onboardings(id),
			FOREIGN KEY (phase_id) REFERENCES phases(id)
		)`,
		`CREATE INDEX idx_tasks_onboarding ON tasks(onboarding_id)`,
		`CREATE INDEX idx_tasks_phase ON tasks(phase_id, sort_order)`,

		`CREATE TABLE contacts (
			id TEXT PRIMARY KEY,
			onboarding_id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (onboarding_id) REFERENCES onboardings(id)
		)`,
		`CREATE INDEX idx_contacts_onboarding ON contacts(onboarding_id)`,

		`CREATE TABLE comments (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			author TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (task_id) REFERENCES tasks(id)
		)`,
		`CREATE INDEX idx_comments_task ON comments(task_id, created_at)`,
	},
}
