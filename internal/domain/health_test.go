package domain_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/johnwards/onboard/internal/domain"
)

func tasksWith(statuses ...domain.TaskStatus) []domain.Task {
	tasks := make([]domain.Task, len(statuses))
	for i, s := range statuses {
		tasks[i] = domain.Task{Title: string(s), Status: s}
	}
	return tasks
}

func TestComputeHealth(t *testing.T) {
	tests := []struct {
		name  string
		tasks []domain.Task
		want  domain.Health
	}{
		{"empty", nil, domain.HealthOnTrack},
		{"all open", tasksWith(domain.TaskNotStarted, domain.TaskInProgress, domain.TaskDone), domain.HealthOnTrack},
		{"investigating", tasksWith(domain.TaskInProgress, domain.TaskUnderInvestigation), domain.HealthAtRisk},
		{"one blocked", tasksWith(domain.TaskDone, domain.TaskBlocked), domain.HealthBlocked},
		{"blocked and investigating", tasksWith(domain.TaskUnderInvestigation, domain.TaskBlocked), domain.HealthBlocked},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ComputeHealth(tt.tasks))
		})
	}
}

func TestComputeHealthBlockedNeverOnTrack(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		n := r.IntN(8)
		statuses := make([]domain.TaskStatus, 0, n+1)
		for j := 0; j < n; j++ {
			statuses = append(statuses, domain.TaskStatuses[r.IntN(len(domain.TaskStatuses))])
		}
		before := domain.ComputeHealth(tasksWith(statuses...))

		statuses = append(statuses, domain.TaskBlocked)
		r.Shuffle(len(statuses), func(a, b int) { statuses[a], statuses[b] = statuses[b], statuses[a] })
		after := domain.ComputeHealth(tasksWith(statuses...))

		assert.NotEqual(t, domain.HealthOnTrack, after)
		assert.GreaterOrEqual(t, after.Severity(), before.Severity(), "adding a blocked task must not improve health")
	}
}

func TestComputeHealthRemovingBlockedNeverWorsens(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		n := r.IntN(8)
		statuses := make([]domain.TaskStatus, 0, n)
		for j := 0; j < n; j++ {
			statuses = append(statuses, domain.TaskStatuses[r.IntN(len(domain.TaskStatuses))])
		}
		before := domain.ComputeHealth(tasksWith(statuses...))

		var unblocked []domain.TaskStatus
		for _, s := range statuses {
			if s != domain.TaskBlocked {
				unblocked = append(unblocked, s)
			}
		}
		after := domain.ComputeHealth(tasksWith(unblocked...))

		assert.LessOrEqual(t, after.Severity(), before.Severity())
	}
}

func TestSummarize(t *testing.T) {
	due := func(s string) *string { return &s }
	tasks := []domain.Task{
		{Title: "Kickoff call", Status: domain.TaskDone, UpdatedAt: "2024-03-05T10:00:00.000Z"},
		{Title: "Collect SSO metadata", Status: domain.TaskBlocked, UpdatedAt: "2024-03-02T10:00:00.000Z"},
		{Title: "Import users", Status: domain.TaskNotStarted, Due: due("2024-04-10"), UpdatedAt: "2024-03-01T10:00:00.000Z"},
		{Title: "Configure billing", Status: domain.TaskInProgress, Due: due("2024-04-01"), UpdatedAt: "2024-03-03T10:00:00.000Z"},
	}

	s := domain.Summarize(tasks)

	assert.Equal(t, domain.HealthBlocked, s.Health)
	assert.Equal(t, 4, s.TaskCount)
	assert.Equal(t, 1, s.DoneCount)
	assert.Equal(t, 1, s.BlockedCount)
	assert.Equal(t, "Configure billing", s.NextAction)
	assert.Equal(t, "2024-03-05T10:00:00.000Z", s.LastActivity)
}

func TestSummarizeNextActionWithoutDueDates(t *testing.T) {
	tasks := tasksWith(domain.TaskDone, domain.TaskNotStarted, domain.TaskInProgress)

	s := domain.Summarize(tasks)

	assert.Equal(t, string(domain.TaskNotStarted), s.NextAction)
}

func TestSummarizeEmpty(t *testing.T) {
	s := domain.Summarize(nil)

	assert.Equal(t, domain.Summary{Health: domain.HealthOnTrack}, s)
}

func TestSummarizeAllDone(t *testing.T) {
	s := domain.Summarize(tasksWith(domain.TaskDone, domain.TaskDone))

	assert.Empty(t, s.NextAction)
	assert.Equal(t, 2, s.DoneCount)
}
