package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bookmarkd/bookmarkd/internal/api"
	"github.com/bookmarkd/bookmarkd/internal/auth"
	"github.com/bookmarkd/bookmarkd/internal/config"
	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/store"
	"github.com/bookmarkd/bookmarkd/internal/testutil"
)

const testSecret = "test-secret-at-least-16-chars"

// env wires the full router over an in-memory database for black-box tests.
type env struct {
	t      *testing.T
	srv    *httptest.Server
	tokens *auth.TokenService
}

// newEnv builds the default wiring; opts may swap out individual
// dependencies, for fault injection.
func newEnv(t *testing.T, opts ...func(*api.Deps)) *env {
	t.Helper()

	db := testutil.NewTestDB(t)
	users := store.NewUserStore(db, "sqlite3")
	bookmarks := store.NewBookmarkStore(db, "sqlite3")

	tokens, err := auth.NewTokenService(testSecret, 15*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	deps := api.Deps{
		Users:     users,
		Bookmarks: bookmarks,
		Tokens:    tokens,
		Passwords: auth.NewPasswordServiceWithCost(bcrypt.MinCost),
		Guard:     auth.NewMiddleware(tokens, config.TokenInHeaders),
		Logger:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	srv := httptest.NewServer(api.NewRouter(deps))
	t.Cleanup(srv.Close)

	return &env{t: t, srv: srv, tokens: tokens}
}

// do issues a request against the test server. A non-empty token is sent as
// a bearer Authorization header; a non-nil body is JSON-encoded.
func (e *env) do(method, path, token string, body any) *http.Response {
	e.t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal request body: %v", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, e.srv.URL+path, buf)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.srv.Client().Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	e.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// doNoRedirect is do without following redirects, for the resolver routes.
func (e *env) doNoRedirect(method, path string) *http.Response {
	e.t.Helper()

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequest(method, e.srv.URL+path, nil)
	if err != nil {
		e.t.Fatalf("new request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	e.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return out
}

// errorBody mirrors the service's JSON error shape.
type errorBody struct {
	Error string `json:"error"`
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()

	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want %d (body: %s)", resp.StatusCode, want, body)
	}
}

func wantError(t *testing.T, resp *http.Response, status int, msg string) {
	t.Helper()

	wantStatus(t, resp, status)
	got := decodeBody[errorBody](t, resp)
	if got.Error != msg {
		t.Errorf("error = %q, want %q", got.Error, msg)
	}
}

// register creates an account through the API.
func (e *env) register(username, email, password string) {
	e.t.Helper()

	resp := e.do(http.MethodPost, "/api/v1/auth/register", "", api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	wantStatus(e.t, resp, http.StatusCreated)
}

// login returns the access and refresh tokens for an existing account.
func (e *env) login(email, password string) (access, refresh string) {
	e.t.Helper()

	resp := e.do(http.MethodPost, "/api/v1/auth/login", "", api.LoginRequest{
		Email:    email,
		Password: password,
	})
	wantStatus(e.t, resp, http.StatusOK)

	body := decodeBody[api.LoginResponse](e.t, resp)
	if body.User.AccessToken == "" || body.User.RefreshToken == "" {
		e.t.Fatal("login response missing tokens")
	}
	return body.User.AccessToken, body.User.RefreshToken
}

// signup registers a fresh account and returns its access token.
func (e *env) signup(username, email, password string) string {
	e.t.Helper()

	e.register(username, email, password)
	access, _ := e.login(email, password)
	return access
}

// createBookmark creates a bookmark and returns the response payload.
func (e *env) createBookmark(token, url, content string) api.BookmarkResponse {
	e.t.Helper()

	resp := e.do(http.MethodPost, "/api/v1/bookmarks/", token, api.BookmarkRequest{
		URL:     url,
		Content: content,
	})
	wantStatus(e.t, resp, http.StatusCreated)
	return decodeBody[api.BookmarkResponse](e.t, resp)
}
