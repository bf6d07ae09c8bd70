package api

import (
	"net/http"
	"strconv"

	"github.com/bookmarkd/bookmarkd/internal/store"
)

// parsePagination extracts page and per_page from query parameters.
// Missing, non-numeric, or non-positive values fall back to the defaults
// (page 1, 3 items per page).
func parsePagination(r *http.Request) (page, perPage int) {
	page = store.DefaultPage
	perPage = store.DefaultPerPage

	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if pp := r.URL.Query().Get("per_page"); pp != "" {
		if parsed, err := strconv.Atoi(pp); err == nil && parsed > 0 {
			perPage = parsed
		}
	}

	return page, perPage
}
