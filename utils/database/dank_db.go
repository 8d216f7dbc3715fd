package database

import (
	"fmt"

	"gacha-helper/model"

	"github.com/jmoiron/sqlx"
)

// IncrementDankStat adds delta to a user's counter, creating the row if
// needed. The single UPDATE is the only guard against rapid duplicate
// scrapes; SQLite applies it atomically.
func IncrementDankStat(db *sqlx.DB, userID, metric string, delta int64) error {
	query := `INSERT INTO dank_stats (user_id, metric, value) VALUES (?, ?, ?)
              ON CONFLICT(user_id, metric) DO UPDATE SET value = value + excluded.value`
	_, err := db.Exec(query, userID, metric, delta)
	if err != nil {
		return fmt.Errorf("failed to increment dank stat %s/%s: %w", userID, metric, err)
	}
	return nil
}

// ListDankStats returns a user's scraped counters ordered by metric name.
func ListDankStats(db *sqlx.DB, userID string) ([]model.DankStat, error) {
	var stats []model.DankStat
	query := `SELECT * FROM dank_stats WHERE user_id = ? ORDER BY metric ASC`
	if err := db.Select(&stats, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list dank stats for user %s: %w", userID, err)
	}
	return stats, nil
}
