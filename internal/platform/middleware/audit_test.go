package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medresus/medresus/internal/platform/auth"
)

// mockRecorder collects audit entries for assertions.
type mockRecorder struct {
	mu      sync.Mutex
	entries []AuditEntry
	err     error // if set, RecordAccess returns this error
}

func (m *mockRecorder) RecordAccess(entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.err
}

func (m *mockRecorder) last() AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries[len(m.entries)-1]
}

func (m *mockRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// newAuditContext creates an echo context with optional request mutations.
func newAuditContext(method, path string, opts ...func(*http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func withAuthContext(userID string, roles []string) func(*http.Request) {
	return func(req *http.Request) {
		ctx := req.Context()
		ctx = context.WithValue(ctx, auth.UserIDKey, userID)
		ctx = context.WithValue(ctx, auth.UserRolesKey, roles)
		*req = *req.WithContext(ctx)
	}
}

func okAuditHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestAuditRecordsAPIAccess(t *testing.T) {
	rec := &mockRecorder{}
	mw := Audit(zerolog.Nop(), rec)

	c, _ := newAuditContext(http.MethodGet, "/api/v1/cases/active", withAuthContext("user-1", []string{"physician"}))
	if err := mw(okAuditHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("expected 1 audit entry, got %d", rec.count())
	}
	entry := rec.last()
	if entry.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", entry.UserID)
	}
	if len(entry.UserRoles) != 1 || entry.UserRoles[0] != "physician" {
		t.Errorf("unexpected roles: %v", entry.UserRoles)
	}
	if entry.Resource != "cases" {
		t.Errorf("expected resource cases, got %q", entry.Resource)
	}
	if entry.Action != "read" {
		t.Errorf("expected action read, got %q", entry.Action)
	}
	if entry.Method != http.MethodGet {
		t.Errorf("expected GET, got %q", entry.Method)
	}
	if entry.Path != "/api/v1/cases/active" {
		t.Errorf("unexpected path %q", entry.Path)
	}
	if entry.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", entry.StatusCode)
	}
	if entry.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestAuditSkipsNonAPIPaths(t *testing.T) {
	rec := &mockRecorder{}
	mw := Audit(zerolog.Nop(), rec)

	for _, path := range []string{"/health", "/health/db", "/metrics", "/"} {
		c, _ := newAuditContext(http.MethodGet, path)
		if err := mw(okAuditHandler)(c); err != nil {
			t.Fatalf("unexpected error for %s: %v", path, err)
		}
	}

	if rec.count() != 0 {
		t.Errorf("expected no audit entries for non-API paths, got %d", rec.count())
	}
}

func TestAuditActionMapping(t *testing.T) {
	tests := []struct {
		method string
		action string
	}{
		{http.MethodGet, "read"},
		{http.MethodHead, "read"},
		{http.MethodPost, "create"},
		{http.MethodPut, "update"},
		{http.MethodPatch, "update"},
		{http.MethodDelete, "delete"},
	}
	for _, tt := range tests {
		rec := &mockRecorder{}
		mw := Audit(zerolog.Nop(), rec)
		c, _ := newAuditContext(tt.method, "/api/v1/archive/arch-1")
		if err := mw(okAuditHandler)(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.method, err)
		}
		if got := rec.last().Action; got != tt.action {
			t.Errorf("%s: expected action %q, got %q", tt.method, tt.action, got)
		}
	}
}

func TestAuditResourceExtraction(t *testing.T) {
	tests := []struct {
		path     string
		resource string
	}{
		{"/api/v1/cases/active/events", "cases"},
		{"/api/v1/archive/arch-1", "archive"},
		{"/api/v1/reference/drugs", "reference"},
		{"/api/v1/", "unknown"},
	}
	for _, tt := range tests {
		rec := &mockRecorder{}
		mw := Audit(zerolog.Nop(), rec)
		c, _ := newAuditContext(http.MethodGet, tt.path)
		if err := mw(okAuditHandler)(c); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.path, err)
		}
		if got := rec.last().Resource; got != tt.resource {
			t.Errorf("%s: expected resource %q, got %q", tt.path, tt.resource, got)
		}
	}
}

func TestAuditRequestIDPropagation(t *testing.T) {
	rec := &mockRecorder{}
	mw := Audit(zerolog.Nop(), rec)

	c, _ := newAuditContext(http.MethodGet, "/api/v1/cases/active")
	c.Set("request_id", "req-abc")
	if err := mw(okAuditHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := rec.last().RequestID; got != "req-abc" {
		t.Errorf("expected request id req-abc, got %q", got)
	}
}

func TestAuditRecorderErrorDoesNotFailRequest(t *testing.T) {
	rec := &mockRecorder{err: errors.New("audit store down")}
	mw := Audit(zerolog.Nop(), rec)

	c, httpRec := newAuditContext(http.MethodGet, "/api/v1/cases/active")
	if err := mw(okAuditHandler)(c); err != nil {
		t.Fatalf("recorder failure must not fail the request: %v", err)
	}
	if httpRec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", httpRec.Code)
	}
	if rec.count() != 1 {
		t.Errorf("expected recorder to be invoked once, got %d", rec.count())
	}
}

func TestAuditWithoutRecorder(t *testing.T) {
	mw := Audit(zerolog.Nop())

	c, httpRec := newAuditContext(http.MethodGet, "/api/v1/cases/active")
	if err := mw(okAuditHandler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if httpRec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", httpRec.Code)
	}
}

func TestAuditPropagatesHandlerError(t *testing.T) {
	rec := &mockRecorder{}
	mw := Audit(zerolog.Nop(), rec)

	boom := echo.NewHTTPError(http.StatusConflict, "case already closed")
	handler := func(c echo.Context) error { return boom }

	c, _ := newAuditContext(http.MethodPost, "/api/v1/cases/active/close", withAuthContext("user-2", []string{"nurse"}))
	err := mw(handler)(c)
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error to propagate, got %v", err)
	}
	if rec.count() != 1 {
		t.Errorf("expected audit entry even on handler error, got %d", rec.count())
	}
}
