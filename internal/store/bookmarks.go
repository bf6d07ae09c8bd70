package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table. ShortCode is assigned
// once at creation and never changes; Visits only moves upward, via
// IncrementVisits.
type Bookmark struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	URL       string    `db:"url"`
	Content   string    `db:"content"`
	ShortCode string    `db:"short_code"`
	Visits    int64     `db:"visits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db     *sqlx.DB
	driver string
}

func NewBookmarkStore(db *sqlx.DB, driver string) *BookmarkStore {
	return &BookmarkStore{db: db, driver: driver}
}

// q rebinds ? placeholders to the driver's native format.
func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new bookmark owned by userID. Uniqueness races are mapped
// to ErrURLTaken or ErrShortCodeTaken; a short-code collision means the
// caller should regenerate and retry.
func (s *BookmarkStore) Create(ctx context.Context, userID int64, url, content, shortCode string) (*Bookmark, error) {
	now := time.Now().UTC()
	id, err := insertReturningID(ctx, s.db, s.driver, `
		INSERT INTO bookmarks (user_id, url, content, short_code, visits, created_at, updated_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, userID, url, content, shortCode, now, now)
	if err != nil {
		if isUniqueConstraintError(err) {
			if strings.Contains(strings.ToLower(err.Error()), "short_code") {
				return nil, ErrShortCodeTaken
			}
			return nil, ErrURLTaken
		}
		return nil, err
	}
	return s.GetByID(ctx, userID, id)
}

// GetByID returns the bookmark matching id owned by userID, or ErrNotFound.
// Scoping by owner means another user's bookmark is indistinguishable from
// a missing one.
func (s *BookmarkStore) GetByID(ctx context.Context, userID, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE id = ? AND user_id = ?`), id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByURL returns the bookmark matching url regardless of owner, or
// ErrNotFound. Used for the global url uniqueness pre-check.
func (s *BookmarkStore) GetByURL(ctx context.Context, url string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE url = ?`), url)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByShortCode returns the bookmark matching the short code, or ErrNotFound.
func (s *BookmarkStore) GetByShortCode(ctx context.Context, code string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE short_code = ?`), code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByUser returns one page of userID's bookmarks (newest first) plus
// pagination metadata computed over the full count.
func (s *BookmarkStore) ListByUser(ctx context.Context, userID int64, page, perPage int) ([]*Bookmark, *PageMeta, error) {
	var total int
	err := s.db.GetContext(ctx, &total, s.q(`SELECT COUNT(*) FROM bookmarks WHERE user_id = ?`), userID)
	if err != nil {
		return nil, nil, err
	}

	meta := NewPageMeta(page, perPage, total)

	bookmarks := []*Bookmark{}
	err = s.db.SelectContext(ctx, &bookmarks, s.q(`
		SELECT * FROM bookmarks
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ? OFFSET ?
	`), userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	return bookmarks, meta, nil
}

// ListAllByUser returns every bookmark owned by userID, newest first.
func (s *BookmarkStore) ListAllByUser(ctx context.Context, userID int64) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, s.q(`
		SELECT * FROM bookmarks WHERE user_id = ? ORDER BY id DESC
	`), userID)
	if err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// Update overwrites url and content of the bookmark matching id and userID,
// refreshing updated_at. Short code, visits, and created_at are untouched.
func (s *BookmarkStore) Update(ctx context.Context, userID, id int64, url, content string) (*Bookmark, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE bookmarks SET url = ?, content = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`), url, content, time.Now().UTC(), id, userID)
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrURLTaken
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, userID, id)
}

// Delete removes the bookmark matching id and userID, or returns ErrNotFound.
func (s *BookmarkStore) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementVisits bumps the visit counter by one in a single atomic UPDATE.
// This is the only write path for visits.
func (s *BookmarkStore) IncrementVisits(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, s.q(`UPDATE bookmarks SET visits = visits + 1 WHERE id = ?`), id)
	return err
}
