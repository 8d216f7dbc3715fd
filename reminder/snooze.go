package reminder

import (
	"encoding/json"
	"fmt"
	"time"

	"gacha-helper/model"
	"gacha-helper/utils/database"

	"github.com/jmoiron/sqlx"
)

// SnoozeDuration is how far a snoozed reminder is pushed out, regardless
// of its original due time.
const SnoozeDuration = 5 * time.Minute

// ConsumeSnooze re-inserts the reminder captured under a one-shot snooze
// token, due SnoozeDuration from now, and deletes the token so it cannot
// be replayed.
func ConsumeSnooze(db *sqlx.DB, token string, now time.Time) (*model.SnoozePayload, error) {
	jsonState, ok, err := database.GetState(db, token, model.StateTypeSnooze)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("snooze token %s not found", token)
	}

	var payload model.SnoozePayload
	if err := json.Unmarshal([]byte(jsonState), &payload); err != nil {
		return nil, fmt.Errorf("corrupt snooze payload under token %s: %w", token, err)
	}

	info, err := json.Marshal(payload.Info)
	if err != nil {
		info = []byte("{}")
	}

	r := model.Reminder{
		Type:        payload.Type,
		UserID:      payload.UserID,
		GuildID:     payload.GuildID,
		ChannelID:   payload.ChannelID,
		Information: string(info),
		DueAt:       now.Add(SnoozeDuration).UnixMilli(),
		DeliverAsDM: payload.DeliverAsDM,
	}
	if err := database.UpsertReminder(db, r); err != nil {
		return nil, err
	}

	// One-shot: reclaim the token immediately instead of waiting for the
	// ephemeral-state sweep.
	if err := database.DeleteState(db, token, model.StateTypeSnooze); err != nil {
		return &payload, err
	}
	return &payload, nil
}
