package domain

import "strings"

// SuggestedContactRoles are offered by the UI. Any free-text role is accepted.
var SuggestedContactRoles = []string{
	"Champion",
	"Decision maker",
	"Technical lead",
	"Billing",
	"Executive sponsor",
	"End user",
}

// Contact is a person at the customer involved in an onboarding.
type Contact struct {
	ID           string `json:"id"`
	OnboardingID string `json:"onboardingId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// ContactInput is the body of a create request. OnboardingID comes from the
// request path.
type ContactInput struct {
	OnboardingID string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

// Normalize trims fields and validates them.
func (in *ContactInput) Normalize() error {
	name, err := RequireText("name", in.Name)
	if err != nil {
		return err
	}
	in.Name = name
	in.Email = strings.TrimSpace(in.Email)
	if in.Email != "" {
		if err := ValidateEmail("email", in.Email); err != nil {
			return err
		}
	}
	in.Role = strings.TrimSpace(in.Role)
	return nil
}

// ContactPatch is a partial update of a contact.
type ContactPatch struct {
	Name  Optional[string] `json:"name,omitzero"`
	Email Optional[string] `json:"email,omitzero"`
	Role  Optional[string] `json:"role,omitzero"`
}

// Apply validates the patch and writes the present fields onto c.
func (p ContactPatch) Apply(c *Contact) error {
	if p.Name.Present {
		if p.Name.IsNull() {
			return Required("name")
		}
		name, err := RequireText("name", *p.Name.Value)
		if err != nil {
			return err
		}
		c.Name = name
	}
	if p.Email.Present {
		email := strings.TrimSpace(textOrEmpty(p.Email.Value))
		if email != "" {
			if err := ValidateEmail("email", email); err != nil {
				return err
			}
		}
		c.Email = email
	}
	if p.Role.Present {
		c.Role = strings.TrimSpace(textOrEmpty(p.Role.Value))
	}
	return nil
}
