package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookmarkd/bookmarkd/internal/auth"
	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/store"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Users     store.UserStoreIface
	Bookmarks store.BookmarkStoreIface
	Tokens    *auth.TokenService
	Passwords *auth.PasswordService
	Guard     *auth.Middleware
	Logger    logger.Logger
}

// NewRouter assembles the full chi router. Named routes are registered
// before the catch-all short code resolver so /api/v1 and /metrics always
// take precedence.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(recoverer(deps.Logger))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	authHandler := newAuthHandler(deps.Users, deps.Tokens, deps.Passwords, deps.Logger)
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.With(deps.Guard.RequireAccess).Get("/profile", authHandler.Profile)
		r.With(deps.Guard.RequireRefresh).Get("/token/refresh", authHandler.Refresh)
	})

	bookmarksHandler := newBookmarksHandler(deps.Bookmarks, deps.Logger)
	r.Route("/api/v1/bookmarks", func(r chi.Router) {
		r.Use(deps.Guard.RequireAccess)
		r.Post("/", bookmarksHandler.Create)
		r.Get("/", bookmarksHandler.List)
		r.Get("/stats", bookmarksHandler.Stats)
		r.Get("/{id}", bookmarksHandler.Get)
		r.Put("/{id}", bookmarksHandler.Update)
		r.Patch("/{id}", bookmarksHandler.Update)
		r.Delete("/{id}", bookmarksHandler.Delete)
	})

	r.Handle("/metrics", promhttp.Handler())

	resolveHandler := newResolveHandler(deps.Bookmarks, deps.Logger)
	r.Get("/{code}", resolveHandler.Resolve)

	return r
}
