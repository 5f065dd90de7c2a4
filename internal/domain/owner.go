package domain

// Owner is a person named as an onboarding or task owner, with their
// current load. Owners are free text, so the name is the identity.
type Owner struct {
	Name        string `json:"name"`
	Onboardings int    `json:"onboardings"`
	OpenTasks   int    `json:"openTasks"`
}
