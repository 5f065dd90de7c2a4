package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/johnwards/onboard/internal/api"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	data := map[string]string{"key": "value"}

	api.WriteJSON(rec, http.StatusOK, data)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var result map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result["key"] != "value" {
		t.Errorf("key = %q, want %q", result["key"], "value")
	}
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	api.WriteSuccess(rec)

	if got := strings.TrimSpace(rec.Body.String()); got != `{"success":true}` {
		t.Errorf("body = %s", got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Acme"}`))
	if err := api.DecodeJSON(rec, req, &v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Name != "Acme" {
		t.Errorf("name = %q, want %q", v.Name, "Acme")
	}

	for _, body := range []string{"", "{", `{"name": 3}`} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := api.DecodeJSON(rec, req, &v); !errors.Is(err, api.ErrInvalidJSON) {
			t.Errorf("body %q: err = %v, want ErrInvalidJSON", body, err)
		}
	}
}
