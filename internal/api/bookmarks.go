package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bookmarkd/bookmarkd/internal/auth"
	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/shortcode"
	"github.com/bookmarkd/bookmarkd/internal/store"
)

// bookmarksHandler provides CRUD, listing, and stats over the caller's
// bookmarks. Every route requires a valid access token; ownership is
// enforced by scoping all store reads and writes to the caller's user id.
type bookmarksHandler struct {
	bookmarks store.BookmarkStoreIface
	log       logger.Logger
}

func newBookmarksHandler(bookmarks store.BookmarkStoreIface, log logger.Logger) *bookmarksHandler {
	return &bookmarksHandler{bookmarks: bookmarks, log: log}
}

// Create validates the url, generates a short code, and persists a bookmark
// owned by the caller.
// POST /api/v1/bookmarks/
func (h *bookmarksHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Urls are unique across all users. The unique index backstops
	// concurrent creates racing past this check.
	if _, err := h.bookmarks.GetByURL(r.Context(), req.URL); err == nil {
		writeError(w, http.StatusConflict, store.ErrURLTaken.Error())
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.log.Error("create bookmark: lookup url", logger.Error(err))
		serverError(w)
		return
	}

	// Generate a code and insert; a collision on the short_code index means
	// we drew an existing code, so draw again.
	var bookmark *store.Bookmark
	for attempt := 0; attempt < shortcode.MaxAttempts; attempt++ {
		code, err := shortcode.Generate()
		if err != nil {
			h.log.Error("create bookmark: generate code", logger.Error(err))
			serverError(w)
			return
		}

		bookmark, err = h.bookmarks.Create(r.Context(), userID, req.URL, req.Content, code)
		if err == nil {
			break
		}
		if errors.Is(err, store.ErrShortCodeTaken) {
			continue
		}
		if errors.Is(err, store.ErrURLTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Error("create bookmark", logger.Error(err))
		serverError(w)
		return
	}
	if bookmark == nil {
		h.log.Error("create bookmark: exhausted short code attempts")
		serverError(w)
		return
	}

	writeJSON(w, http.StatusCreated, toBookmarkResponse(bookmark))
}

// List returns one page of the caller's bookmarks plus pagination metadata.
// GET /api/v1/bookmarks/?page&per_page
func (h *bookmarksHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, perPage := parsePagination(r)
	bookmarks, meta, err := h.bookmarks.ListByUser(r.Context(), userID, page, perPage)
	if err != nil {
		h.log.Error("list bookmarks", logger.Error(err))
		serverError(w)
		return
	}

	resp := BookmarkListResponse{Data: make([]BookmarkResponse, 0, len(bookmarks)), Meta: meta}
	for _, b := range bookmarks {
		resp.Data = append(resp.Data, toBookmarkResponse(b))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single bookmark owned by the caller. Another user's
// bookmark id yields the same 404 as a missing one.
// GET /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	bookmark, err := h.bookmarks.GetByID(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.log.Error("get bookmark", logger.Error(err))
		serverError(w)
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(bookmark))
}

// Update overwrites url and content. The short code, visit count, and
// created_at never change here; updated_at is refreshed.
// PUT/PATCH /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	if _, err := h.bookmarks.GetByID(r.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.log.Error("update bookmark: lookup", logger.Error(err))
		serverError(w)
		return
	}

	var req BookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.ValidateURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Re-using the bookmark's own url is fine; claiming another's is not.
	if existing, err := h.bookmarks.GetByURL(r.Context(), req.URL); err == nil && existing.ID != id {
		writeError(w, http.StatusConflict, store.ErrURLTaken.Error())
		return
	} else if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.log.Error("update bookmark: lookup url", logger.Error(err))
		serverError(w)
		return
	}

	bookmark, err := h.bookmarks.Update(r.Context(), userID, id, req.URL, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "Item not found")
		case errors.Is(err, store.ErrURLTaken):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.log.Error("update bookmark", logger.Error(err))
			serverError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, toBookmarkResponse(bookmark))
}

// Delete removes a bookmark owned by the caller. The request body is
// ignored entirely.
// DELETE /api/v1/bookmarks/{id}
func (h *bookmarksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}

	if err := h.bookmarks.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.log.Error("delete bookmark", logger.Error(err))
		serverError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats returns visit counts for every bookmark owned by the caller.
// GET /api/v1/bookmarks/stats
func (h *bookmarksHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookmarks, err := h.bookmarks.ListAllByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("bookmark stats", logger.Error(err))
		serverError(w)
		return
	}

	resp := BookmarkStatsResponse{Data: make([]BookmarkStats, 0, len(bookmarks))}
	for _, b := range bookmarks {
		resp.Data = append(resp.Data, BookmarkStats{
			ID:       b.ID,
			URL:      b.URL,
			ShortURL: b.ShortCode,
			Visits:   b.Visits,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
