package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pickem-league/pickem-api/internal/domain/user"
)

func TestRequireUser_MissingHeader(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler should not run without identity")
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/weeks/1/response", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireUser_SetsPrincipal(t *testing.T) {
	var got user.Principal
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatal("expected principal in context")
		}
		got = principal
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/v1/weeks/1/response", nil)
	req.Header.Set("X-User-ID", "u-alice")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got.UserID != "u-alice" {
		t.Fatalf("unexpected principal user id: %q", got.UserID)
	}
	if got.Admin {
		t.Fatal("expected non-admin principal without X-Admin header")
	}
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("next handler should not run for non-admin caller")
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/weeks", nil)
	req.Header.Set("X-User-ID", "u-bob")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireAdmin_AllowsAdminHeader(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok || !principal.Admin {
			t.Fatal("expected admin principal in context")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/weeks", nil)
	req.Header.Set("X-User-ID", "u-admin")
	req.Header.Set("X-Admin", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
