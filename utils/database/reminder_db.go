package database

import (
	"database/sql"
	"errors"
	"fmt"

	"gacha-helper/model"

	"github.com/jmoiron/sqlx"
)

// UpsertReminder inserts a reminder, replacing any existing row for the
// same (type, user_id) pair. At most one pending reminder exists per pair.
func UpsertReminder(db *sqlx.DB, r model.Reminder) error {
	query := `INSERT OR REPLACE INTO reminders (type, user_id, guild_id, channel_id, information, due_at, deliver_as_dm)
              VALUES (:type, :user_id, :guild_id, :channel_id, :information, :due_at, :deliver_as_dm)`
	_, err := db.NamedExec(query, r)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder %s/%s: %w", r.Type, r.UserID, err)
	}
	return nil
}

// GetDueReminders returns up to limit reminders due at or before now
// (epoch ms), earliest first.
func GetDueReminders(db *sqlx.DB, now int64, limit int) ([]model.Reminder, error) {
	var reminders []model.Reminder
	query := `SELECT * FROM reminders WHERE due_at <= ? ORDER BY due_at ASC LIMIT ?`
	if err := db.Select(&reminders, query, now, limit); err != nil {
		return nil, fmt.Errorf("failed to get due reminders: %w", err)
	}
	return reminders, nil
}

// NextDueTime returns the earliest due time across all reminders. The
// boolean is false when no reminders exist.
func NextDueTime(db *sqlx.DB) (int64, bool, error) {
	var due sql.NullInt64
	err := db.Get(&due, `SELECT MIN(due_at) FROM reminders`)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get next due time: %w", err)
	}
	if !due.Valid {
		return 0, false, nil
	}
	return due.Int64, true, nil
}

// PushBackReminder moves a reminder's due time. Used for retry-later on
// delivery failure and must always move the due time forward.
func PushBackReminder(db *sqlx.DB, rtype, userID string, newDueAt int64) error {
	_, err := db.Exec(`UPDATE reminders SET due_at = ? WHERE type = ? AND user_id = ?`, newDueAt, rtype, userID)
	if err != nil {
		return fmt.Errorf("failed to push back reminder %s/%s: %w", rtype, userID, err)
	}
	return nil
}

// DeleteReminder removes a delivered or cleared reminder.
func DeleteReminder(db *sqlx.DB, rtype, userID string) error {
	_, err := db.Exec(`DELETE FROM reminders WHERE type = ? AND user_id = ?`, rtype, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder %s/%s: %w", rtype, userID, err)
	}
	return nil
}

// ListRemindersByUser returns a user's pending reminders, earliest first.
func ListRemindersByUser(db *sqlx.DB, userID string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	query := `SELECT * FROM reminders WHERE user_id = ? ORDER BY due_at ASC`
	if err := db.Select(&reminders, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list reminders for user %s: %w", userID, err)
	}
	return reminders, nil
}
