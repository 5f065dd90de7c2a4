package api_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/config"
)

func TestHeaderResolver(t *testing.T) {
	res := api.HeaderResolver{EmailHeader: "X-Forwarded-Email", NameHeader: "X-Forwarded-User"}

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if _, err := res.Resolve(req); !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	req.Header.Set("X-Forwarded-Email", "ana@example.com")
	c, err := res.Resolve(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Name() != "ana@example.com" {
		t.Errorf("Name() = %q, want email fallback", c.Name())
	}

	req.Header.Set("X-Forwarded-User", "Ana")
	c, err = res.Resolve(req)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Name() != "Ana" {
		t.Errorf("Name() = %q, want %q", c.Name(), "Ana")
	}
}

func TestResolverFromConfig(t *testing.T) {
	res := api.ResolverFromConfig(config.Config{
		AuthTokens:     []config.AuthToken{{Token: "t1", Email: "bot@example.com"}},
		IdentityHeader: "X-Forwarded-Email",
	})

	byToken := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	byToken.Header.Set("Authorization", "Bearer t1")
	if c, err := res.Resolve(byToken); err != nil || c.Email != "bot@example.com" {
		t.Errorf("token: caller = %+v, err = %v", c, err)
	}

	byHeader := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	byHeader.Header.Set("X-Forwarded-Email", "ana@example.com")
	if c, err := res.Resolve(byHeader); err != nil || c.Email != "ana@example.com" {
		t.Errorf("header: caller = %+v, err = %v", c, err)
	}

	none := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if _, err := res.Resolve(none); !errors.Is(err, api.ErrUnauthenticated) {
		t.Errorf("anonymous: err = %v, want ErrUnauthenticated", err)
	}

	// Nothing configured means nobody gets in.
	empty := api.ResolverFromConfig(config.Config{})
	if _, err := empty.Resolve(byToken); !errors.Is(err, api.ErrUnauthenticated) {
		t.Errorf("empty config: err = %v, want ErrUnauthenticated", err)
	}
}
