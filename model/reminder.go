package model

import "encoding/json"

// Reminder is one pending notification. The (Type, UserID) pair is the
// primary key: creating a second reminder of the same type for the same
// user overwrites the first.
type Reminder struct {
	Type        string `db:"type"`
	UserID      string `db:"user_id"`
	GuildID     string `db:"guild_id"`
	ChannelID   string `db:"channel_id"`
	Information string `db:"information"`
	DueAt       int64  `db:"due_at"` // epoch milliseconds
	DeliverAsDM bool   `db:"deliver_as_dm"`
}

// ReminderInfo is the display-only payload carried inside a reminder's
// Information column. The scheduler never interprets it beyond rendering.
type ReminderInfo struct {
	Command     string `json:"command,omitempty"`
	Information string `json:"information,omitempty"`
}

// Info decodes the Information column, defaulting on malformed JSON.
func (r *Reminder) Info() ReminderInfo {
	var info ReminderInfo
	if r.Information == "" {
		return info
	}
	if err := json.Unmarshal([]byte(r.Information), &info); err != nil {
		return ReminderInfo{}
	}
	return info
}

// SnoozePayload is the ephemeral KV record written at delivery time so a
// later snooze press can resurrect the reminder after its row is deleted.
type SnoozePayload struct {
	Version     int          `json:"v"`
	Type        string       `json:"type"`
	UserID      string       `json:"user_id"`
	GuildID     string       `json:"guild_id"`
	ChannelID   string       `json:"channel_id"`
	Info        ReminderInfo `json:"info"`
	DeliverAsDM bool         `json:"deliver_as_dm"`
}
