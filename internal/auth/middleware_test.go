package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bookmarkd/bookmarkd/internal/config"
)

// echoUserID writes the user id the guard resolved, so tests can assert both
// that the request passed and that the right identity came through.
func echoUserID(t *testing.T, want int64) http.Handler {
	t.Helper()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("no user id in context")
		}
		if id != want {
			t.Errorf("user id = %d, want %d", id, want)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddleware_HeaderToken(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInHeaders)

	tok, err := ts.IssueAccess(42)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	mw.RequireAccess(echoUserID(t, 42)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMiddleware_CookieToken(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInCookies)

	tok, err := ts.IssueAccess(9)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: tok})
	rec := httptest.NewRecorder()

	mw.RequireAccess(echoUserID(t, 9)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMiddleware_HeaderIgnoredWhenCookiesOnly(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInCookies)

	tok, err := ts.IssueAccess(9)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	mw.RequireAccess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestMiddleware_RefreshCookie(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInBoth)

	tok, err := ts.IssueRefresh(3)
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: tok})
	rec := httptest.NewRecorder()

	mw.RequireRefresh(echoUserID(t, 3)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMiddleware_MissingToken(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInBoth)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	mw.RequireAccess(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestMiddleware_AccessTokenRejectedAsRefresh(t *testing.T) {
	ts := newTestTokenService(t)
	mw := NewMiddleware(ts, config.TokenInHeaders)

	tok, err := ts.IssueAccess(1)
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	mw.RequireRefresh(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestUserIDFromContext_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if id, ok := UserIDFromContext(req.Context()); ok {
		t.Errorf("expected no user id, got %d", id)
	}
}
