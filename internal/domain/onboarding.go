package domain

import "strings"

// OnboardingStatus is the lifecycle state of an onboarding.
type OnboardingStatus string

// Onboarding statuses.
const (
	OnboardingActive    OnboardingStatus = "Active"
	OnboardingCompleted OnboardingStatus = "Completed"
	OnboardingPaused    OnboardingStatus = "Paused"
	OnboardingArchived  OnboardingStatus = "Archived"
)

// StatusFilterAll is the list filter that matches every onboarding status.
const StatusFilterAll = "All"

// OnboardingStatuses lists every status in display order.
var OnboardingStatuses = []OnboardingStatus{
	OnboardingActive, OnboardingCompleted, OnboardingPaused, OnboardingArchived,
}

// Valid reports whether s is a known status.
func (s OnboardingStatus) Valid() bool {
	for _, v := range OnboardingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Onboarding tracks one company's setup process.
type Onboarding struct {
	ID           string           `json:"id"`
	CompanyID    string           `json:"companyId"`
	CompanyName  string           `json:"companyName"`
	Owner        *string          `json:"owner"`
	Status       OnboardingStatus `json:"status"`
	TargetGoLive *string          `json:"targetGoLive"`
	CreatedAt    string           `json:"createdAt"`
	UpdatedAt    string           `json:"updatedAt"`
}

// OnboardingInput is the body of a create request. Either CompanyID or
// CompanyName must be given; a name creates the company alongside.
type OnboardingInput struct {
	CompanyID    string           `json:"companyId"`
	CompanyName  string           `json:"companyName"`
	Owner        *string          `json:"owner"`
	Status       OnboardingStatus `json:"status"`
	TargetGoLive *string          `json:"targetGoLive"`
}

// Normalize trims fields, applies defaults and validates the input.
func (in *OnboardingInput) Normalize() error {
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.CompanyID == "" && in.CompanyName == "" {
		return Required("companyId")
	}
	if in.Status == "" {
		in.Status = OnboardingActive
	}
	if !in.Status.Valid() {
		return Invalid("status", "unknown status %q", in.Status)
	}
	in.Owner = optionalText(in.Owner)
	date, err := optionalDate("targetGoLive", in.TargetGoLive)
	if err != nil {
		return err
	}
	in.TargetGoLive = date
	return nil
}

// OnboardingPatch is a partial update of an onboarding.
type OnboardingPatch struct {
	CompanyID    Optional[string]           `json:"companyId,omitzero"`
	Owner        Optional[string]           `json:"owner,omitzero"`
	Status       Optional[OnboardingStatus] `json:"status,omitzero"`
	TargetGoLive Optional[string]           `json:"targetGoLive,omitzero"`
}

// Apply validates the patch and writes the present fields onto o. Whether a
// new company id exists is checked by the caller.
func (p OnboardingPatch) Apply(o *Onboarding) error {
	if p.CompanyID.Present {
		if p.CompanyID.IsNull() {
			return Required("companyId")
		}
		id, err := RequireText("companyId", *p.CompanyID.Value)
		if err != nil {
			return err
		}
		o.CompanyID = id
	}
	if p.Owner.Present {
		o.Owner = optionalText(p.Owner.Value)
	}
	if p.Status.Present {
		if p.Status.IsNull() || !p.Status.Value.Valid() {
			return Invalid("status", "must be one of Active, Completed, Paused, Archived")
		}
		o.Status = *p.Status.Value
	}
	if p.TargetGoLive.Present {
		date, err := optionalDate("targetGoLive", p.TargetGoLive.Value)
		if err != nil {
			return err
		}
		o.TargetGoLive = date
	}
	return nil
}

// OnboardingSummary is a list row: the onboarding plus derived fields.
type OnboardingSummary struct {
	Onboarding
	Summary
}

// OnboardingDetail is the board view of one onboarding.
type OnboardingDetail struct {
	Onboarding
	Company  Company   `json:"company"`
	Phases   []Phase   `json:"phases"`
	Tasks    []Task    `json:"tasks"`
	Contacts []Contact `json:"contacts"`
	Summary  Summary   `json:"summary"`
}

// TasksInPhase returns the detail's tasks that belong to phaseID, in board
// order.
func (d *OnboardingDetail) TasksInPhase(phaseID string) []Task {
	var out []Task
	for _, t := range d.Tasks {
		if t.PhaseID == phaseID {
			out = append(out, t)
		}
	}
	return out
}
