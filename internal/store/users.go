package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// User represents a row in the users table. The password is stored only as
// a bcrypt hash; it never leaves this struct except for verification.
type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// UserStore is the sqlx-backed implementation of UserStoreIface.
type UserStore struct {
	db     *sqlx.DB
	driver string
}

func NewUserStore(db *sqlx.DB, driver string) *UserStore {
	return &UserStore{db: db, driver: driver}
}

// q rebinds ? placeholders to the driver's native format.
func (s *UserStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new user. A uniqueness race on email or username is
// mapped to ErrEmailTaken / ErrUsernameTaken so callers can surface a
// conflict instead of a server error.
func (s *UserStore) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.db, s.driver, `
		INSERT INTO users (username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, username, email, passwordHash, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByEmail returns the user matching email, or ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE email = ?`), email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername returns the user matching username, or ErrNotFound.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE username = ?`), username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns the user matching id, or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	err := s.db.GetContext(ctx, &u, s.q(`SELECT * FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
