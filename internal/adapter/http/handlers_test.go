package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halvardlabs/aegis/internal/domain"
	"github.com/halvardlabs/aegis/internal/tenancy"
)

func TestWriteDomainErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("get conversation: %w", domain.ErrNotFound), http.StatusNotFound},
		{"conflict", domain.ErrConflict, http.StatusConflict},
		{"validation", fmt.Errorf("%w: title is required", domain.ErrValidation), http.StatusBadRequest},
		{"missing tenant", &tenancy.ContextValidationError{Op: "find_many", Target: "conversations"}, http.StatusBadRequest},
		{"bad uuid", errors.New(`invalid input syntax for type uuid: "nope"`), http.StatusBadRequest},
		{"duplicate", errors.New("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)"), http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tc.err, "fallback")
			if rec.Code != tc.status {
				t.Errorf("got %d, want %d", rec.Code, tc.status)
			}
			var body errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body must carry a message")
			}
		})
	}
}

func TestWriteDomainErrorTrimsValidationPrefix(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, fmt.Errorf("%w: slug is malformed", domain.ErrValidation), "fallback")

	var body errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error != "slug is malformed" {
		t.Errorf("validation message must be user-facing, got %q", body.Error)
	}
}

func TestHealthzAllChecksPass(t *testing.T) {
	h := &Handlers{HealthChecks: []HealthCheck{
		{Name: "postgres", Probe: func(context.Context) error { return nil }},
		{Name: "nats", Probe: func(context.Context) error { return nil }},
	}}

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	if rec.Code != http.StatusOK {
		t.Errorf("got %d, want 200", rec.Code)
	}
}

func TestHealthzReportsDegraded(t *testing.T) {
	h := &Handlers{HealthChecks: []HealthCheck{
		{Name: "postgres", Probe: func(context.Context) error { return nil }},
		{Name: "nats", Probe: func(context.Context) error { return errors.New("disconnected") }},
	}}

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("got %d, want 503", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "degraded" || body["reason"] == "" {
		t.Errorf("degraded response must name the failing dependency: %v", body)
	}
}

func TestReadJSONRejectsMalformedBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", errReader{})
	type payload struct {
		Title string `json:"title"`
	}
	if _, ok := readJSON[payload](rec, req); ok {
		t.Error("malformed body must be rejected")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("broken body") }
