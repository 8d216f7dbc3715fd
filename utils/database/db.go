package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var schema = `
CREATE TABLE IF NOT EXISTS bot_states (
    id           TEXT NOT NULL,
    type         TEXT NOT NULL,
    json_state   TEXT NOT NULL DEFAULT '',
    is_permanent INTEGER NOT NULL DEFAULT 0,
    updated_at   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (id, type)
);

CREATE TABLE IF NOT EXISTS reminders (
    type          TEXT NOT NULL,
    user_id       TEXT NOT NULL,
    guild_id      TEXT NOT NULL DEFAULT '',
    channel_id    TEXT NOT NULL DEFAULT '',
    information   TEXT NOT NULL DEFAULT '',
    due_at        INTEGER NOT NULL,
    deliver_as_dm INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (type, user_id)
);
CREATE INDEX IF NOT EXISTS idx_reminders_due_at ON reminders (due_at);

CREATE TABLE IF NOT EXISTS dank_multipliers (
    user_id TEXT NOT NULL,
    name    TEXT NOT NULL,
    percent INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, name)
);

CREATE TABLE IF NOT EXISTS dank_stats (
    user_id TEXT NOT NULL,
    metric  TEXT NOT NULL,
    value   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, metric)
);

CREATE TABLE IF NOT EXISTS wishlists (
    user_id   TEXT NOT NULL,
    series    TEXT NOT NULL,
    character TEXT NOT NULL,
    added_at  INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (user_id, series, character)
);

CREATE TABLE IF NOT EXISTS nuke_sessions (
    channel_id  TEXT NOT NULL PRIMARY KEY,
    guild_id    TEXT NOT NULL DEFAULT '',
    starter_id  TEXT NOT NULL DEFAULT '',
    started_at  INTEGER NOT NULL DEFAULT 0,
    claim_count INTEGER NOT NULL DEFAULT 0,
    ended_at    INTEGER NOT NULL DEFAULT 0
);
`

// InitDB opens the bot database in WAL mode and ensures all tables exist.
func InitDB(dbPath string) (*sqlx.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// InitTestDB opens an in-memory database with the full schema. Test helper.
func InitTestDB() (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
