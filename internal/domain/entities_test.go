package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/onboard/internal/domain"
)

func TestCompanyInputNormalize(t *testing.T) {
	in := domain.CompanyInput{Name: "  "}
	assert.Error(t, in.Normalize())

	in = domain.CompanyInput{Name: " Acme "}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "Acme", in.Name)
}

func TestOnboardingInputNormalize(t *testing.T) {
	owner := "  "
	date := "2024-09-01"
	in := domain.OnboardingInput{CompanyID: "c1", Owner: &owner, TargetGoLive: &date}

	require.NoError(t, in.Normalize())

	assert.Equal(t, domain.OnboardingActive, in.Status)
	assert.Nil(t, in.Owner, "blank owner is stored as null")
	assert.Equal(t, "2024-09-01", *in.TargetGoLive)
}

func TestOnboardingInputNormalizeErrors(t *testing.T) {
	bad := "01/09/2024"
	cases := map[string]domain.OnboardingInput{
		"companyId":    {},
		"status":       {CompanyID: "c1", Status: "Done"},
		"targetGoLive": {CompanyID: "c1", TargetGoLive: &bad},
	}
	for field, in := range cases {
		var verr *domain.ValidationError
		require.ErrorAs(t, in.Normalize(), &verr)
		assert.Equal(t, field, verr.Field)
	}
}

func TestOnboardingPatchApply(t *testing.T) {
	owner := "ana"
	date := "2024-09-01"
	o := domain.Onboarding{CompanyID: "c1", Owner: &owner, Status: domain.OnboardingActive, TargetGoLive: &date}

	var p domain.OnboardingPatch
	require.NoError(t, json.Unmarshal([]byte(`{"owner":null,"status":"Paused"}`), &p))
	require.NoError(t, p.Apply(&o))

	assert.Nil(t, o.Owner)
	assert.Equal(t, domain.OnboardingPaused, o.Status)
	assert.Equal(t, &date, o.TargetGoLive)
	assert.Equal(t, "c1", o.CompanyID)
}

func TestPhasePatchApply(t *testing.T) {
	ph := domain.Phase{Name: "Setup", SortOrder: 1}

	require.NoError(t, domain.PhasePatch{SortOrder: domain.Set(4)}.Apply(&ph))
	assert.Equal(t, "Setup", ph.Name)
	assert.Equal(t, 4, ph.SortOrder)

	assert.Error(t, domain.PhasePatch{Name: domain.Set(" ")}.Apply(&ph))
	assert.Error(t, domain.PhasePatch{Name: domain.Null[string]()}.Apply(&ph))
}

func TestContactValidation(t *testing.T) {
	in := domain.ContactInput{Name: "Dana", Email: "not-an-email"}
	var verr *domain.ValidationError
	require.ErrorAs(t, in.Normalize(), &verr)
	assert.Equal(t, "email", verr.Field)

	in = domain.ContactInput{Name: " Dana ", Email: " dana@example.com ", Role: " Champion "}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "Dana", in.Name)
	assert.Equal(t, "dana@example.com", in.Email)
	assert.Equal(t, "Champion", in.Role)

	c := domain.Contact{Name: "Dana", Email: "dana@example.com", Role: "Billing"}
	require.NoError(t, domain.ContactPatch{Email: domain.Null[string]()}.Apply(&c))
	assert.Empty(t, c.Email)
	assert.Equal(t, "Billing", c.Role)
}

func TestCommentInputNormalize(t *testing.T) {
	in := domain.CommentInput{Body: "\n\t"}
	assert.Error(t, in.Normalize())

	in = domain.CommentInput{Body: " Waiting on IT "}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "Waiting on IT", in.Body)
}
