package domain

import "strings"

// Phase is a named, ordered column of tasks within an onboarding.
type Phase struct {
	ID           string `json:"id"`
	OnboardingID string `json:"onboardingId"`
	Name         string `json:"name"`
	SortOrder    int    `json:"sortOrder"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// PhaseInput is the body of a create request. A nil SortOrder places the
// phase after the existing ones.
type PhaseInput struct {
	OnboardingID string `json:"onboardingId"`
	Name         string `json:"name"`
	SortOrder    *int   `json:"sortOrder"`
}

// Normalize trims fields and checks required ones.
func (in *PhaseInput) Normalize() error {
	in.OnboardingID = strings.TrimSpace(in.OnboardingID)
	if in.OnboardingID == "" {
		return Required("onboardingId")
	}
	name, err := RequireText("name", in.Name)
	if err != nil {
		return err
	}
	in.Name = name
	return nil
}

// PhasePatch is a partial update of a phase.
type PhasePatch struct {
	Name      Optional[string] `json:"name,omitzero"`
	SortOrder Optional[int]    `json:"sortOrder,omitzero"`
}

// Apply validates the patch and writes the present fields onto ph.
func (p PhasePatch) Apply(ph *Phase) error {
	if p.Name.Present {
		if p.Name.IsNull() {
			return Required("name")
		}
		name, err := RequireText("name", *p.Name.Value)
		if err != nil {
			return err
		}
		ph.Name = name
	}
	if p.SortOrder.Present {
		if p.SortOrder.IsNull() {
			return Required("sortOrder")
		}
		ph.SortOrder = *p.SortOrder.Value
	}
	return nil
}
