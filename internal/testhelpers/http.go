package testhelpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwards/onboard/internal/api"
	"github.com/johnwards/onboard/internal/store"
)

// Identity sent by Do on every request.
const (
	TestEmail = "tester@example.com"
	TestName  = "Test User"
)

// NewAPIServer starts an httptest server over a fresh store with the routes
// added by register, behind the request ID, auth and content type
// middleware. Callers authenticate with the X-Forwarded-Email and
// X-Forwarded-User headers.
func NewAPIServer(t *testing.T, register ...func(*http.ServeMux, *store.Store)) (*httptest.Server, *store.Store) {
	t.Helper()

	s := NewTestStore(t)
	mux := http.NewServeMux()
	for _, r := range register {
		r(mux, s)
	}

	resolver := api.HeaderResolver{EmailHeader: "X-Forwarded-Email", NameHeader: "X-Forwarded-User"}
	handler := api.Chain(mux, api.RequestID(), api.Auth(resolver, "/healthz"), api.JSONContentType())
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, s
}

// Do sends an authenticated request and returns the status code and body.
// A string body is sent as is; anything else non-nil is encoded as JSON.
func Do(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	return send(t, srv, method, path, body, true)
}

// DoAnonymous sends a request without identity headers.
func DoAnonymous(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	return send(t, srv, method, path, body, false)
}

func send(t *testing.T, srv *httptest.Server, method, path string, body any, authenticated bool) (int, []byte) {
	t.Helper()

	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("X-Forwarded-Email", TestEmail)
		req.Header.Set("X-Forwarded-User", TestName)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, data
}

// Decode unmarshals a JSON response body into T.
func Decode[T any](t *testing.T, data []byte) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}
