package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bookmarkd/bookmarkd/internal/auth"
	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/metrics"
	"github.com/bookmarkd/bookmarkd/internal/store"
)

// authHandler provides registration, login, profile, and token refresh.
type authHandler struct {
	users     store.UserStoreIface
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	log       logger.Logger
}

func newAuthHandler(users store.UserStoreIface, tokens *auth.TokenService, passwords *auth.PasswordService, log logger.Logger) *authHandler {
	return &authHandler{users: users, tokens: tokens, passwords: passwords, log: log}
}

// Register creates a new user account. No tokens are issued; the client
// logs in afterwards.
// POST /api/v1/auth/register
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := store.ValidateUsername(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := store.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Pre-insert existence checks. The unique indexes still backstop
	// concurrent registrations; the store maps those races to the same
	// conflict errors.
	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, store.ErrEmailTaken.Error())
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Error("register: lookup email", logger.Error(err))
		serverError(w)
		return
	}
	if _, err := h.users.GetByUsername(r.Context(), req.Username); err == nil {
		writeError(w, http.StatusConflict, store.ErrUsernameTaken.Error())
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Error("register: lookup username", logger.Error(err))
		serverError(w)
		return
	}

	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		// Only an over-long password is the client's fault; anything else
		// is an internal bcrypt failure.
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("register: hash password", logger.Error(err))
		serverError(w)
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) || errors.Is(err, store.ErrUsernameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error("register: create user", logger.Error(err))
		serverError(w)
		return
	}

	metrics.RegistrationsTotal.Inc()
	h.log.Info("user registered", logger.Int64("user_id", user.ID))
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

// Login verifies credentials and issues the access/refresh token pair.
// Unknown email and wrong password are deliberately indistinguishable.
// POST /api/v1/auth/login
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			writeError(w, http.StatusUnauthorized, "Wrong credentials")
			return
		}
		h.log.Error("login: lookup email", logger.Error(err))
		serverError(w)
		return
	}

	if err := h.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		writeError(w, http.StatusUnauthorized, "Wrong credentials")
		return
	}

	accessToken, err := h.tokens.IssueAccess(user.ID)
	if err != nil {
		h.log.Error("login: issue access token", logger.Error(err))
		serverError(w)
		return
	}
	refreshToken, err := h.tokens.IssueRefresh(user.ID)
	if err != nil {
		h.log.Error("login: issue refresh token", logger.Error(err))
		serverError(w)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, LoginResponse{User: LoginUser{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Username:     user.Username,
		Email:        user.Email,
	}})
}

// Profile returns the authenticated user's username and email.
// GET /api/v1/auth/profile
func (h *authHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived the account.
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.log.Error("profile: lookup user", logger.Error(err))
		serverError(w)
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Username: user.Username, Email: user.Email})
}

// Refresh mints a new access token for the identity bound to a valid
// refresh token.
// GET /api/v1/auth/token/refresh
func (h *authHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	accessToken, err := h.tokens.IssueAccess(userID)
	if err != nil {
		h.log.Error("refresh: issue access token", logger.Error(err))
		serverError(w)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{AccessToken: accessToken})
}
