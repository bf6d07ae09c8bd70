package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateBookmarks, downCreateBookmarks)
}

func upCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id         BIGSERIAL PRIMARY KEY,
    user_id    BIGINT NOT NULL REFERENCES users (id),
    url        TEXT NOT NULL,
    content    TEXT NOT NULL DEFAULT '',
    short_code TEXT NOT NULL,
    visits     BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id         BIGINT AUTO_INCREMENT PRIMARY KEY,
    user_id    BIGINT NOT NULL,
    url        VARCHAR(2048) NOT NULL,
    content    TEXT NOT NULL,
    short_code VARCHAR(10) NOT NULL,
    visits     BIGINT NOT NULL DEFAULT 0,
    created_at TIMESTAMP(6) NOT NULL,
    updated_at TIMESTAMP(6) NOT NULL,
    CONSTRAINT fk_bookmarks_user FOREIGN KEY (user_id) REFERENCES users (id)
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS bookmarks (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL REFERENCES users (id),
    url        TEXT NOT NULL,
    content    TEXT NOT NULL DEFAULT '',
    short_code TEXT NOT NULL,
    visits     INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create bookmarks table: %w", err)
	}

	// MySQL cannot index an unbounded VARCHAR(2048) url column without a prefix.
	var urlIdx string
	switch dialect {
	case "mysql":
		urlIdx = `CREATE UNIQUE INDEX idx_bookmarks_url ON bookmarks (url(768))`
	default:
		urlIdx = `CREATE UNIQUE INDEX idx_bookmarks_url ON bookmarks (url)`
	}
	if _, err := tx.ExecContext(ctx, urlIdx); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `CREATE UNIQUE INDEX idx_bookmarks_short_code ON bookmarks (short_code)`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_bookmarks_user_id ON bookmarks (user_id)`)
	return err
}

func downCreateBookmarks(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS bookmarks`)
	return err
}
