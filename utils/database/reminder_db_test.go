package database

import (
	"testing"

	"gacha-helper/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReminder(rtype, userID string, dueAt int64) model.Reminder {
	return model.Reminder{
		Type:        rtype,
		UserID:      userID,
		GuildID:     "g1",
		ChannelID:   "c1",
		Information: `{"command":"/daily"}`,
		DueAt:       dueAt,
	}
}

func TestUpsertReminderOverwrites(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, UpsertReminder(db, testReminder("Dank Daily", "u1", 1000)))
	require.NoError(t, UpsertReminder(db, testReminder("Dank Daily", "u1", 2000)))

	reminders, err := ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, int64(2000), reminders[0].DueAt)
}

func TestGetDueRemindersOrderAndLimit(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, UpsertReminder(db, testReminder("A", "u1", 300)))
	require.NoError(t, UpsertReminder(db, testReminder("B", "u1", 100)))
	require.NoError(t, UpsertReminder(db, testReminder("C", "u1", 200)))
	require.NoError(t, UpsertReminder(db, testReminder("D", "u1", 999_999)))

	due, err := GetDueReminders(db, 500, 10)
	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, "B", due[0].Type)
	assert.Equal(t, "C", due[1].Type)
	assert.Equal(t, "A", due[2].Type)

	due, err = GetDueReminders(db, 500, 2)
	require.NoError(t, err)
	assert.Len(t, due, 2)
}

func TestNextDueTime(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	_, ok, err := NextDueTime(db)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, UpsertReminder(db, testReminder("A", "u1", 700)))
	require.NoError(t, UpsertReminder(db, testReminder("B", "u2", 400)))

	next, ok, err := NextDueTime(db)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(400), next)
}

func TestPushBackAndDelete(t *testing.T) {
	db, err := InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, UpsertReminder(db, testReminder("A", "u1", 100)))
	require.NoError(t, PushBackReminder(db, "A", "u1", 5000))

	reminders, err := ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, int64(5000), reminders[0].DueAt)

	require.NoError(t, DeleteReminder(db, "A", "u1"))
	reminders, err = ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	assert.Empty(t, reminders)
}
