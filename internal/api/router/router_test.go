package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/luminasmiles/lead-relay/internal/leads"
)

func newTestRouter() http.Handler {
	handler := leads.NewSubmitHandler(leads.SubmitHandlerConfig{
		Repo: leads.NewInMemoryRepository(),
	})
	return New(&Config{
		SubmitHandler:      handler,
		CORSAllowedOrigins: []string{"https://luminasmiles.example"},
	})
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("unexpected health body %q", rec.Body.String())
	}
}

func TestRouter_SubmitForm(t *testing.T) {
	r := newTestRouter()

	body := `{"name":"Jane Doe","email":"jane@example.com","phone":"5551234567","service":"consultation"}`
	req := httptest.NewRequest(http.MethodPost, "/api/submit-form", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_SubmitFormWrongMethod(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/submit-form", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestRouter_ListLeads(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/submit-form", nil)
	req.Header.Set("Origin", "https://luminasmiles.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://luminasmiles.example" {
		t.Errorf("unexpected allow-origin %q", got)
	}
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin must not be echoed, got %q", got)
	}
}
