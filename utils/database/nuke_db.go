package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gacha-helper/model"

	"github.com/jmoiron/sqlx"
)

// StartNukeSession opens (or restarts) the nuke session for a channel,
// resetting its claim counter.
func StartNukeSession(db *sqlx.DB, channelID, guildID, starterID string) error {
	query := `INSERT OR REPLACE INTO nuke_sessions (channel_id, guild_id, starter_id, started_at, claim_count, ended_at)
              VALUES (?, ?, ?, ?, 0, 0)`
	_, err := db.Exec(query, channelID, guildID, starterID, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to start nuke session in channel %s: %w", channelID, err)
	}
	return nil
}

// GetNukeSession returns the session for a channel, if one exists.
func GetNukeSession(db *sqlx.DB, channelID string) (*model.NukeSession, error) {
	var session model.NukeSession
	err := db.Get(&session, `SELECT * FROM nuke_sessions WHERE channel_id = ?`, channelID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get nuke session for channel %s: %w", channelID, err)
	}
	return &session, nil
}

// IncrementNukeClaims bumps the claim counter of an active session. The
// atomic UPDATE is the only guard against two rapid claim scrapes.
func IncrementNukeClaims(db *sqlx.DB, channelID string) error {
	query := `UPDATE nuke_sessions SET claim_count = claim_count + 1
              WHERE channel_id = ? AND ended_at = 0`
	_, err := db.Exec(query, channelID)
	if err != nil {
		return fmt.Errorf("failed to increment nuke claims in channel %s: %w", channelID, err)
	}
	return nil
}

// EndNukeSession stamps the session closed. Further claims are ignored.
func EndNukeSession(db *sqlx.DB, channelID string) error {
	query := `UPDATE nuke_sessions SET ended_at = ? WHERE channel_id = ? AND ended_at = 0`
	_, err := db.Exec(query, time.Now().UnixMilli(), channelID)
	if err != nil {
		return fmt.Errorf("failed to end nuke session in channel %s: %w", channelID, err)
	}
	return nil
}
