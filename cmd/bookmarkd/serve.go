package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/bookmarkd/bookmarkd/internal/api"
	"github.com/bookmarkd/bookmarkd/internal/auth"
	"github.com/bookmarkd/bookmarkd/internal/config"
	"github.com/bookmarkd/bookmarkd/internal/db"
	"github.com/bookmarkd/bookmarkd/internal/logger"
	"github.com/bookmarkd/bookmarkd/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
			defer func() { _ = log.Sync() }()

			database, err := db.New(cfg.DB.Driver, cfg.DB.DSN)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			if err := db.Migrate(database, cfg.DB.Driver); err != nil {
				return err
			}

			userStore := store.NewUserStore(database, cfg.DB.Driver)
			bookmarkStore := store.NewBookmarkStore(database, cfg.DB.Driver)

			tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
			if err != nil {
				return err
			}
			passwords := auth.NewPasswordService()
			guard := auth.NewMiddleware(tokens, cfg.JWT.TokenLocation)

			router := api.NewRouter(api.Deps{
				Users:     userStore,
				Bookmarks: bookmarkStore,
				Tokens:    tokens,
				Passwords: passwords,
				Guard:     guard,
				Logger:    log,
			})

			log.Info("listening", logger.String("addr", cfg.HTTP.Addr))
			return http.ListenAndServe(cfg.HTTP.Addr, router)
		},
	}
}
