package owners_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/onboard/internal/api/owners"
	"github.com/johnwards/onboard/internal/domain"
	"github.com/johnwards/onboard/internal/testhelpers"
)

func TestOwnersEndpoints(t *testing.T) {
	srv, s := testhelpers.NewAPIServer(t, owners.RegisterRoutes)
	b := testhelpers.NewBoard(t, s, "Acme")

	_, err := s.Tasks.Create(context.Background(), domain.TaskInput{
		OnboardingID: b.Onboarding.ID,
		PhaseID:      b.Kickoff.ID,
		Title:        "Kickoff call",
		Owner:        "Ana Lima",
	})
	require.NoError(t, err)

	status, body := testhelpers.Do(t, srv, http.MethodGet, "/owners", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []domain.Owner{{Name: "Ana Lima", OpenTasks: 1}}, testhelpers.Decode[[]domain.Owner](t, body))

	status, body = testhelpers.Do(t, srv, http.MethodGet, "/owners/"+url.PathEscape("Ana Lima")+"/tasks", nil)
	require.Equal(t, http.StatusOK, status)
	tasks := testhelpers.Decode[[]domain.Task](t, body)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Kickoff call", tasks[0].Title)

	status, body = testhelpers.Do(t, srv, http.MethodGet, "/owners/nobody/tasks", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, testhelpers.Decode[[]domain.Task](t, body))
}

func TestOwnersEmpty(t *testing.T) {
	srv, _ := testhelpers.NewAPIServer(t, owners.RegisterRoutes)

	status, body := testhelpers.Do(t, srv, http.MethodGet, "/owners", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}
