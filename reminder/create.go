package reminder

import (
	"encoding/json"
	"log"
	"time"

	"gacha-helper/model"
	"gacha-helper/utils/database"

	"github.com/jmoiron/sqlx"
)

// CreateReminder schedules a reminder due in the given number of minutes.
// One pending reminder exists per (type, user): a second create for the
// same pair overwrites the first. This is a best-effort facility, so
// storage errors are logged and swallowed.
func CreateReminder(db *sqlx.DB, userID, guildID, channelID string, minutes int, rtype string, info model.ReminderInfo, deliverAsDM bool) {
	data, err := json.Marshal(info)
	if err != nil {
		log.Printf("Failed to marshal reminder info for %s/%s: %v", rtype, userID, err)
		data = []byte("{}")
	}

	r := model.Reminder{
		Type:        rtype,
		UserID:      userID,
		GuildID:     guildID,
		ChannelID:   channelID,
		Information: string(data),
		DueAt:       time.Now().UnixMilli() + int64(minutes)*60_000,
		DeliverAsDM: deliverAsDM,
	}
	if err := database.UpsertReminder(db, r); err != nil {
		log.Printf("Failed to create reminder %s for user %s: %v", rtype, userID, err)
	}
}
