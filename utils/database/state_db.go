package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SaveState writes a KV state row, overwriting any previous value for the
// same (id, type) pair. There is no history.
func SaveState(db *sqlx.DB, id, stateType, jsonState string, permanent bool) error {
	query := `INSERT OR REPLACE INTO bot_states (id, type, json_state, is_permanent, updated_at)
              VALUES (?, ?, ?, ?, ?)`
	_, err := db.Exec(query, id, stateType, jsonState, permanent, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save state %s/%s: %w", id, stateType, err)
	}
	return nil
}

// GetState reads a KV state row. A missing row is not an error: it is
// reported through the boolean.
func GetState(db *sqlx.DB, id, stateType string) (string, bool, error) {
	var jsonState string
	err := db.Get(&jsonState, `SELECT json_state FROM bot_states WHERE id = ? AND type = ?`, id, stateType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get state %s/%s: %w", id, stateType, err)
	}
	return jsonState, true, nil
}

// DeleteState removes a KV state row. Deleting a missing row is a no-op.
func DeleteState(db *sqlx.DB, id, stateType string) error {
	_, err := db.Exec(`DELETE FROM bot_states WHERE id = ? AND type = ?`, id, stateType)
	if err != nil {
		return fmt.Errorf("failed to delete state %s/%s: %w", id, stateType, err)
	}
	return nil
}

// CleanupEphemeralStates deletes non-permanent state rows that have not
// been touched within maxAge. Consumed snooze payloads and abandoned
// panel states are reclaimed here instead of accumulating forever.
func CleanupEphemeralStates(db *sqlx.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixMilli()
	res, err := db.Exec(`DELETE FROM bot_states WHERE is_permanent = 0 AND updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up ephemeral states: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
