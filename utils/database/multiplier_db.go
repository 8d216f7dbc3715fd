package database

import (
	"fmt"

	"gacha-helper/model"

	"github.com/jmoiron/sqlx"
)

// UpsertMultiplier inserts or overwrites one named multiplier for a user.
func UpsertMultiplier(db *sqlx.DB, m model.Multiplier) error {
	query := `INSERT OR REPLACE INTO dank_multipliers (user_id, name, percent)
              VALUES (:user_id, :name, :percent)`
	_, err := db.NamedExec(query, m)
	if err != nil {
		return fmt.Errorf("failed to upsert multiplier %s/%s: %w", m.UserID, m.Name, err)
	}
	return nil
}

// ListMultipliers returns a user's multipliers ordered by name. Renders
// and mutations must both go through this ordering.
func ListMultipliers(db *sqlx.DB, userID string) ([]model.Multiplier, error) {
	var multipliers []model.Multiplier
	query := `SELECT * FROM dank_multipliers WHERE user_id = ? ORDER BY name ASC`
	if err := db.Select(&multipliers, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list multipliers for user %s: %w", userID, err)
	}
	return multipliers, nil
}

// DeleteMultiplier removes one multiplier by its natural key.
func DeleteMultiplier(db *sqlx.DB, userID, name string) error {
	_, err := db.Exec(`DELETE FROM dank_multipliers WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete multiplier %s/%s: %w", userID, name, err)
	}
	return nil
}

// TotalMultiplier sums a user's multiplier percentages.
func TotalMultiplier(db *sqlx.DB, userID string) (int, error) {
	var total int
	query := `SELECT COALESCE(SUM(percent), 0) FROM dank_multipliers WHERE user_id = ?`
	if err := db.Get(&total, query, userID); err != nil {
		return 0, fmt.Errorf("failed to total multipliers for user %s: %w", userID, err)
	}
	return total, nil
}
