package model

// StateRecord is one row of the generic key-value state table. The id is
// a Discord user id, a panel token, or the literal "global".
type StateRecord struct {
	ID          string `db:"id"`
	Type        string `db:"type"`
	JSONState   string `db:"json_state"`
	IsPermanent bool   `db:"is_permanent"`
	UpdatedAt   int64  `db:"updated_at"`
}

// StateTypePanel is the KV type under which panel view-state is stored.
const StateTypePanel = "panel_state"

// StateTypeSnooze is the KV type for one-shot snooze payloads.
const StateTypeSnooze = "reminder_snooze"

// MultiplierState is the UI-only state of the /multi editor panel.
// Domain data (the multiplier rows) is re-read from the database on every
// render; only pagination lives here.
type MultiplierState struct {
	Version int    `json:"v"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Page    int    `json:"page"`
}

// WishlistState is the UI-only state of the /wishlist panel.
type WishlistState struct {
	Version int    `json:"v"`
	Token   string `json:"token"`
	UserID  string `json:"user_id"`
	Page    int    `json:"page"`
}

// NukeState is the UI-only state of the /nuke tracker panel.
type NukeState struct {
	Version   int    `json:"v"`
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ChannelID string `json:"channel_id"`
}

// PanelStateVersion is the current schema tag for panel states. A stored
// blob with a different version is treated the same as corrupt JSON.
const PanelStateVersion = 1
