package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/metrics"
	"github.com/bookmarkd/bookmarkd/internal/store"
)

// resolveHandler handles short code resolution and redirection. This is the
// only path that mutates a bookmark's visit counter.
type resolveHandler struct {
	bookmarks store.BookmarkStoreIface
	log       logger.Logger
}

func newResolveHandler(bookmarks store.BookmarkStoreIface, log logger.Logger) *resolveHandler {
	return &resolveHandler{bookmarks: bookmarks, log: log}
}

// Resolve looks up a short code, counts the visit, and redirects to the
// target url. A failed counter write still redirects; losing a visit is
// better than losing the redirect.
// GET /{code}
func (h *resolveHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := chi.URLParam(r, "code")

	bookmark, err := h.bookmarks.GetByShortCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			metrics.RedirectsTotal.WithLabelValues("not_found").Inc()
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		metrics.RedirectsTotal.WithLabelValues("error").Inc()
		h.log.Error("resolve: lookup code", logger.Error(err))
		serverError(w)
		return
	}

	if err := h.bookmarks.IncrementVisits(r.Context(), bookmark.ID); err != nil {
		metrics.VisitWriteErrorsTotal.Inc()
		h.log.Error("resolve: increment visits",
			logger.Int64("bookmark_id", bookmark.ID),
			logger.Error(err),
		)
	}

	metrics.RedirectsTotal.WithLabelValues("ok").Inc()
	metrics.RedirectDuration.Observe(time.Since(start).Seconds())
	http.Redirect(w, r, bookmark.URL, http.StatusFound)
}
