package store

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when a user's email is already registered.
	ErrEmailTaken = errors.New("Email already exists")

	// ErrUsernameTaken is returned when a user's username is already registered.
	ErrUsernameTaken = errors.New("Username already exists")

	// ErrURLTaken is returned when a bookmark url already exists in the database.
	ErrURLTaken = errors.New("URL already exists")

	// ErrShortCodeTaken is returned when a generated short code collides with
	// an existing bookmark. Callers retry with a fresh code.
	ErrShortCodeTaken = errors.New("short code is already taken")
)

// UserStoreIface exposes all user data operations.
// No handler may query the DB directly; all access goes through this interface.
type UserStoreIface interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
}

// BookmarkStoreIface exposes all bookmark data operations.
type BookmarkStoreIface interface {
	Create(ctx context.Context, userID int64, url, content, shortCode string) (*Bookmark, error)
	GetByID(ctx context.Context, userID, id int64) (*Bookmark, error)
	GetByURL(ctx context.Context, url string) (*Bookmark, error)
	GetByShortCode(ctx context.Context, code string) (*Bookmark, error)
	ListByUser(ctx context.Context, userID int64, page, perPage int) ([]*Bookmark, *PageMeta, error)
	ListAllByUser(ctx context.Context, userID int64) ([]*Bookmark, error)
	Update(ctx context.Context, userID, id int64, url, content string) (*Bookmark, error)
	Delete(ctx context.Context, userID, id int64) error
	IncrementVisits(ctx context.Context, id int64) error
}

// insertReturningID runs an INSERT and returns the generated integer id.
// PostgreSQL does not support LastInsertId, so it gets a RETURNING clause.
// The query is written with ? placeholders and rebound per driver.
func insertReturningID(ctx context.Context, db *sqlx.DB, driver, query string, args ...any) (int64, error) {
	if driver == "postgres" {
		var id int64
		err := db.QueryRowxContext(ctx, db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// isUniqueConstraintError reports whether err is a uniqueness violation.
// Concurrent writers racing past the pre-insert existence checks land here.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // SQLite & PostgreSQL
		strings.Contains(msg, "duplicate key") || // PostgreSQL
		strings.Contains(msg, "duplicate entry") // MySQL
}
