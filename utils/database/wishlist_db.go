package database

import (
	"fmt"
	"time"

	"gacha-helper/model"

	"github.com/jmoiron/sqlx"
)

// AddWishlistEntry records a wished character. Re-adding the same
// series/character pair overwrites silently.
func AddWishlistEntry(db *sqlx.DB, userID, series, character string) error {
	query := `INSERT OR REPLACE INTO wishlists (user_id, series, character, added_at)
              VALUES (?, ?, ?, ?)`
	_, err := db.Exec(query, userID, series, character, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to add wishlist entry %s/%s/%s: %w", userID, series, character, err)
	}
	return nil
}

// ListWishlist returns a user's entries ordered by series then character.
// Panel renders and remove actions must share this ordering.
func ListWishlist(db *sqlx.DB, userID string) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	query := `SELECT * FROM wishlists WHERE user_id = ? ORDER BY series ASC, character ASC`
	if err := db.Select(&entries, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list wishlist for user %s: %w", userID, err)
	}
	return entries, nil
}

// DeleteWishlistEntry removes one entry by its natural key.
func DeleteWishlistEntry(db *sqlx.DB, userID, series, character string) error {
	_, err := db.Exec(`DELETE FROM wishlists WHERE user_id = ? AND series = ? AND character = ?`,
		userID, series, character)
	if err != nil {
		return fmt.Errorf("failed to delete wishlist entry %s/%s/%s: %w", userID, series, character, err)
	}
	return nil
}

// FindWishers returns the ids of users who wished the given character.
// Matching is case-insensitive on both series and character name.
func FindWishers(db *sqlx.DB, series, character string) ([]string, error) {
	var userIDs []string
	query := `SELECT user_id FROM wishlists
              WHERE series = ? COLLATE NOCASE AND character = ? COLLATE NOCASE`
	if err := db.Select(&userIDs, query, series, character); err != nil {
		return nil, fmt.Errorf("failed to find wishers for %s/%s: %w", series, character, err)
	}
	return userIDs, nil
}
