package api

import (
	"time"

	"github.com/bookmarkd/bookmarkd/internal/store"
)

// --- Auth types ---

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the payload nested under "user" in a login response.
type LoginUser struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// LoginResponse is the JSON shape for a successful login.
type LoginResponse struct {
	User LoginUser `json:"user"`
}

// ProfileResponse is the JSON shape for GET /api/v1/auth/profile.
type ProfileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RefreshResponse is the JSON shape for GET /api/v1/auth/token/refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

// MessageResponse is a bare success message.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Bookmark types ---

// BookmarkRequest is the request body for creating or updating a bookmark.
type BookmarkRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// BookmarkResponse is the JSON representation of a single bookmark.
// ShortURL exposes the stored short code.
type BookmarkResponse struct {
	ID        int64     `json:"id"`
	URL       string    `json:"url"`
	ShortURL  string    `json:"short_url"`
	Visits    int64     `json:"visits"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookmarkListResponse is the paginated response for the bookmark listing.
type BookmarkListResponse struct {
	Data []BookmarkResponse `json:"data"`
	Meta *store.PageMeta    `json:"meta"`
}

// BookmarkStats is one entry in the stats listing.
type BookmarkStats struct {
	ID       int64  `json:"id"`
	URL      string `json:"url"`
	ShortURL string `json:"short_url"`
	Visits   int64  `json:"visits"`
}

// BookmarkStatsResponse is the JSON shape for GET /api/v1/bookmarks/stats.
type BookmarkStatsResponse struct {
	Data []BookmarkStats `json:"data"`
}

func toBookmarkResponse(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:        b.ID,
		URL:       b.URL,
		ShortURL:  b.ShortCode,
		Visits:    b.Visits,
		Content:   b.Content,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
