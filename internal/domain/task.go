package domain

import "strings"

// TaskStatus is the workflow state of a task.
type TaskStatus string

// Task statuses. Transitions between them are unrestricted apart from the
// Done bookkeeping in SetStatus and ToggleDone.
const (
	TaskNotStarted         TaskStatus = "Not started"
	TaskInProgress         TaskStatus = "In progress"
	TaskUnderInvestigation TaskStatus = "Under investigation"
	TaskBlocked            TaskStatus = "Blocked"
	TaskDone               TaskStatus = "Done"
)

// TaskStatuses lists every status in display order.
var TaskStatuses = []TaskStatus{
	TaskNotStarted, TaskInProgress, TaskUnderInvestigation, TaskBlocked, TaskDone,
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority ranks a task. A task may have no priority.
type Priority string

// Priorities.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a unit of work inside a phase.
type Task struct {
	ID              string      `json:"id"`
	OnboardingID    string      `json:"onboardingId"`
	PhaseID         string      `json:"phaseId"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Status          TaskStatus  `json:"status"`
	Priority        *Priority   `json:"priority"`
	Due             *string     `json:"due"`
	Owner           string      `json:"owner"`
	Members         []string    `json:"members"`
	Notes           string      `json:"notes"`
	BlockedByTaskID *string     `json:"blockedByTaskId"`
	PreviousStatus  *TaskStatus `json:"previousStatus"`
	SortOrder       int         `json:"sortOrder"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// SetStatus moves the task to next. Entering Done remembers the status it
// came from; leaving Done explicitly forgets it. Setting Done on a task that
// is already Done changes nothing.
func (t *Task) SetStatus(next TaskStatus) {
	switch {
	case next == t.Status:
		return
	case next == TaskDone:
		prev := t.Status
		t.PreviousStatus = &prev
	case t.Status == TaskDone:
		t.PreviousStatus = nil
	}
	t.Status = next
}

// ToggleDone marks an open task Done, or reopens a Done task in the status
// it had before (Not started when unknown).
func (t *Task) ToggleDone() {
	if t.Status != TaskDone {
		t.SetStatus(TaskDone)
		return
	}
	restored := TaskNotStarted
	if t.PreviousStatus != nil && t.PreviousStatus.Valid() && *t.PreviousStatus != TaskDone {
		restored = *t.PreviousStatus
	}
	t.Status = restored
	t.PreviousStatus = nil
}

// TaskInput is the body of a create request.
type TaskInput struct {
	OnboardingID    string     `json:"onboardingId"`
	PhaseID         string     `json:"phaseId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Status          TaskStatus `json:"status"`
	Priority        *Priority  `json:"priority"`
	Due             *string    `json:"due"`
	Owner           string     `json:"owner"`
	Members         []string   `json:"members"`
	Notes           string     `json:"notes"`
	BlockedByTaskID *string    `json:"blockedByTaskId"`
	SortOrder       *int       `json:"sortOrder"`
}

// Normalize trims fields, applies defaults and validates the input.
func (in *TaskInput) Normalize() error {
	in.OnboardingID = strings.TrimSpace(in.OnboardingID)
	if in.OnboardingID == "" {
		return Required("onboardingId")
	}
	in.PhaseID = strings.TrimSpace(in.PhaseID)
	if in.PhaseID == "" {
		return Required("phaseId")
	}
	title, err := RequireText("title", in.Title)
	if err != nil {
		return err
	}
	in.Title = title
	if in.Status == "" {
		in.Status = TaskNotStarted
	}
	if !in.Status.Valid() {
		return Invalid("status", "unknown status %q", in.Status)
	}
	if in.Priority != nil && !in.Priority.Valid() {
		return Invalid("priority", "must be low, medium or high")
	}
	due, err := optionalDate("due", in.Due)
	if err != nil {
		return err
	}
	in.Due = due
	in.Owner = strings.TrimSpace(in.Owner)
	in.Members = NormalizeMembers(in.Members)
	in.BlockedByTaskID = optionalText(in.BlockedByTaskID)
	return nil
}

// TaskPatch is a partial update of a task.
type TaskPatch struct {
	Title           Optional[string]     `json:"title,omitzero"`
	Description     Optional[string]     `json:"description,omitzero"`
	Status          Optional[TaskStatus] `json:"status,omitzero"`
	Priority        Optional[Priority]   `json:"priority,omitzero"`
	Due             Optional[string]     `json:"due,omitzero"`
	Owner           Optional[string]     `json:"owner,omitzero"`
	Members         Optional[[]string]   `json:"members,omitzero"`
	Notes           Optional[string]     `json:"notes,omitzero"`
	BlockedByTaskID Optional[string]     `json:"blockedByTaskId,omitzero"`
	PhaseID         Optional[string]     `json:"phaseId,omitzero"`
	SortOrder       Optional[int]        `json:"sortOrder,omitzero"`
}

// IsEmpty reports whether the patch names no field at all.
func (p TaskPatch) IsEmpty() bool {
	return p == TaskPatch{}
}

// Apply validates the patch and writes the present fields onto t. References
// to other rows (phase, blocking task) are checked by the caller.
func (p TaskPatch) Apply(t *Task) error {
	if p.Title.Present {
		if p.Title.IsNull() {
			return Required("title")
		}
		title, err := RequireText("title", *p.Title.Value)
		if err != nil {
			return err
		}
		t.Title = title
	}
	if p.Description.Present {
		t.Description = textOrEmpty(p.Description.Value)
	}
	if p.Status.Present {
		if p.Status.IsNull() || !p.Status.Value.Valid() {
			return Invalid("status", "must be one of Not started, In progress, Under investigation, Blocked, Done")
		}
		t.SetStatus(*p.Status.Value)
	}
	if p.Priority.Present {
		if p.Priority.Value != nil && !p.Priority.Value.Valid() {
			return Invalid("priority", "must be low, medium or high")
		}
		t.Priority = p.Priority.Value
	}
	if p.Due.Present {
		due, err := optionalDate("due", p.Due.Value)
		if err != nil {
			return err
		}
		t.Due = due
	}
	if p.Owner.Present {
		t.Owner = strings.TrimSpace(textOrEmpty(p.Owner.Value))
	}
	if p.Members.Present {
		if p.Members.IsNull() {
			t.Members = []string{}
		} else {
			t.Members = NormalizeMembers(*p.Members.Value)
		}
	}
	if p.Notes.Present {
		t.Notes = textOrEmpty(p.Notes.Value)
	}
	if p.BlockedByTaskID.Present {
		t.BlockedByTaskID = optionalText(p.BlockedByTaskID.Value)
		if t.BlockedByTaskID != nil && *t.BlockedByTaskID == t.ID {
			return Invalid("blockedByTaskId", "a task cannot block itself")
		}
	}
	if p.PhaseID.Present {
		if p.PhaseID.IsNull() {
			return Required("phaseId")
		}
		id, err := RequireText("phaseId", *p.PhaseID.Value)
		if err != nil {
			return err
		}
		t.PhaseID = id
	}
	if p.SortOrder.Present {
		if p.SortOrder.IsNull() {
			return Required("sortOrder")
		}
		t.SortOrder = *p.SortOrder.Value
	}
	return nil
}

// NormalizeMembers trims names and drops blanks and duplicates, keeping the
// first occurrence order.
func NormalizeMembers(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, m := range in {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

func textOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BulkTaskUpdate is the body of a bulk update request.
type BulkTaskUpdate struct {
	TaskIDs []string  `json:"taskIds"`
	Data    TaskPatch `json:"data"`
}

// ReorderInput moves a task to a position in a (possibly different) phase.
type ReorderInput struct {
	TaskID        string `json:"taskId"`
	TargetPhaseID string `json:"targetPhaseId"`
	SortOrder     *int   `json:"sortOrder"`
}

// Normalize checks that every field is present.
func (in *ReorderInput) Normalize() error {
	in.TaskID = strings.TrimSpace(in.TaskID)
	if in.TaskID == "" {
		return Required("taskId")
	}
	in.TargetPhaseID = strings.TrimSpace(in.TargetPhaseID)
	if in.TargetPhaseID == "" {
		return Required("targetPhaseId")
	}
	if in.SortOrder == nil {
		return Required("sortOrder")
	}
	return nil
}
