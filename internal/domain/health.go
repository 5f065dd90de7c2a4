package domain

// Health is the derived risk label of an onboarding.
type Health string

// Health labels, from best to worst.
const (
	HealthOnTrack Health = "On track"
	HealthAtRisk  Health = "At risk"
	HealthBlocked Health = "Blocked"
)

// Severity orders labels: higher is worse.
func (h Health) Severity() int {
	switch h {
	case HealthBlocked:
		return 2
	case HealthAtRisk:
		return 1
	default:
		return 0
	}
}

// ComputeHealth derives an onboarding's health from its tasks:
//
//   - any Blocked task: Blocked
//   - otherwise any task Under investigation: At risk
//   - otherwise (including no tasks): On track
//
// The result does not depend on task order.
func ComputeHealth(tasks []Task) Health {
	health := HealthOnTrack
	for i := range tasks {
		switch tasks[i].Status {
		case TaskBlocked:
			return HealthBlocked
		case TaskUnderInvestigation:
			health = HealthAtRisk
		}
	}
	return health
}

// Summary holds the per-onboarding aggregates shown in list views.
type Summary struct {
	Health       Health `json:"health"`
	TaskCount    int    `json:"taskCount"`
	DoneCount    int    `json:"doneCount"`
	BlockedCount int    `json:"blockedCount"`
	NextAction   string `json:"nextAction"`
	LastActivity string `json:"lastActivity"`
}

// Summarize aggregates tasks given in board order. NextAction is the open
// task with the earliest due date, or the first open task when none has a
// due date. LastActivity is the latest task update time.
func Summarize(tasks []Task) Summary {
	s := Summary{Health: ComputeHealth(tasks), TaskCount: len(tasks)}

	var firstOpen, earliestDue *Task
	for i := range tasks {
		t := &tasks[i]
		if t.UpdatedAt > s.LastActivity {
			s.LastActivity = t.UpdatedAt
		}
		switch t.Status {
		case TaskDone:
			s.DoneCount++
			continue
		case TaskBlocked:
			s.BlockedCount++
		}
		if firstOpen == nil {
			firstOpen = t
		}
		// Dates are YYYY-MM-DD so string order is date order.
		if t.Due != nil && (earliestDue == nil || *t.Due < *earliestDue.Due) {
			earliestDue = t
		}
	}

	switch {
	case earliestDue != nil:
		s.NextAction = earliestDue.Title
	case firstOpen != nil:
		s.NextAction = firstOpen.Title
	}
	return s
}
