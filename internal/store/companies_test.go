package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/store"
	"github.com/johnwards/onboard/internal/testhelpers"
)

func TestCompanyCreateAndList(t *testing.T) {
	s := testhelpers.NewTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "Acme", "  beta  "} {
		_, err := s.Companies.Create(ctx, domain.CompanyInput{Name: name})
		require.NoError(t, err)
	}

	companies, err := s.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, companies, 3)
	assert.Equal(t, "Acme", companies[0].Name)
	assert.Equal(t, "beta", companies[1].Name, "names are trimmed")
	assert.Equal(t, "zeta", companies[2].Name)
}

func TestCompanyCreateRejectsBlankName(t *testing.T) {
	s := testhelpers.NewTestStore(t)

	_, err := s.Companies.Create(context.Background(), domain.CompanyInput{Name: "   "})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	companies, err := s.Companies.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, companies)
}

func TestCompanyUpdate(t *testing.T) {
	s := testhelpers.NewTestStore(t)
	ctx := context.Background()

	c, err := s.Companies.Create(ctx, domain.CompanyInput{Name: "Acme"})
	require.NoError(t, err)

	renamed, err := s.Companies.Update(ctx, c.ID, domain.CompanyInput{Name: "Acme Ltd"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", renamed.Name)
	assert.Equal(t, c.CreatedAt, renamed.CreatedAt)

	_, err = s.Companies.Update(ctx, "missing", domain.CompanyInput{Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompanyGetNotFound(t *testing.T) {
	s := testhelpers.NewTestStore(t)

	_, err := s.Companies.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
