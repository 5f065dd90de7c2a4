package companies_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/api/companies"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/testhelpers"
)

func TestCreateAndListCompanies(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, companies.RegisterRoutes)

	status, body := testhelpers.Do(t, srv, http.MethodPost, "/companies", map[string]string{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status, string(body))
	created := testhelpers.Decode[domain.Company](t, body)
	assert.Equal(t, "Acme", created.Name)
	assert.NotEmpty(t, created.ID)

	status, body = testhelpers.Do(t, srv, http.MethodGet, "/companies", nil)
	require.Equal(t, http.StatusOK, status)
	list := testhelpers.Decode[[]domain.Company](t, body)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateCompanyBlankName(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, companies.RegisterRoutes)

	status, body := testhelpers.Do(t, srv, http.MethodPost, "/companies", map[string]string{"name": "  "})
	require.Equal(t, http.StatusBadRequest, status)
	apiErr := testhelpers.Decode[api.Error](t, body)
	assert.Equal(t, api.CategoryValidationError, apiErr.Category)
	assert.Equal(t, "name", apiErr.Field)
	assert.NotEmpty(t, apiErr.CorrelationID)

	status, body = testhelpers.Do(t, srv, http.MethodGet, "/companies", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestCreateCompanyInvalidJSON(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, companies.RegisterRoutes)

	status, body := testhelpers.Do(t, srv, http.MethodPost, "/companies", "{not json")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid JSON body", testhelpers.Decode[api.Error](t, body).Message)
}

func TestGetAndRenameCompany(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, companies.RegisterRoutes)

	_, body := testhelpers.Do(t, srv, http.MethodPost, "/companies", map[string]string{"name": "Acme"})
	created := testhelpers.Decode[domain.Company](t, body)

	status, body := testhelpers.Do(t, srv, http.MethodPatch, "/companies/"+created.ID, map[string]string{"name": "Acme Ltd"})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "Acme Ltd", testhelpers.Decode[domain.Company](t, body).Name)

	status, body = testhelpers.Do(t, srv, http.MethodGet, "/companies/"+created.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Acme Ltd", testhelpers.Decode[domain.Company](t, body).Name)

	status, _ = testhelpers.Do(t, srv, http.MethodGet, "/companies/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCompaniesRequireAuth(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, companies.RegisterRoutes)

	// Auth is checked before the body is validated.
	status, body := testhelpers.DoAnonymous(t, srv, http.MethodPost, "/companies", map[string]string{"name": " "})
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, api.CategoryUnauthorized, testhelpers.Decode[api.Error](t, body).Category)
}
