package reminder

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"gacha-helper/model"
	"gacha-helper/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	channelID string
	data      *discordgo.MessageSend
}

type fakeMessenger struct {
	sent    []sentMessage
	sendErr error
	dmErr   error
}

func (f *fakeMessenger) UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	if f.dmErr != nil {
		return nil, f.dmErr
	}
	return &discordgo.Channel{ID: "dm-" + recipientID}, nil
}

func (f *fakeMessenger) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, sentMessage{channelID: channelID, data: data})
	return &discordgo.Message{ID: "m1"}, nil
}

func newTestScheduler(t *testing.T, fake *fakeMessenger, now time.Time) (*Scheduler, *sqlx.DB) {
	t.Helper()
	db, err := database.InitTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewScheduler(db, fake, model.ReminderConfig{}, "")
	s.now = func() time.Time { return now }
	return s, db
}

func insertReminder(t *testing.T, db *sqlx.DB, rtype, userID string, dueAt time.Time, asDM bool) {
	t.Helper()
	info, err := json.Marshal(model.ReminderInfo{Command: "kvi", Information: "test"})
	require.NoError(t, err)
	require.NoError(t, database.UpsertReminder(db, model.Reminder{
		Type:        rtype,
		UserID:      userID,
		GuildID:     "g1",
		ChannelID:   "c1",
		Information: string(info),
		DueAt:       dueAt.UnixMilli(),
		DeliverAsDM: asDM,
	}))
}

func TestPollDeliversDueReminderOnce(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeMessenger{}
	s, db := newTestScheduler(t, fake, base.Add(601*time.Minute))

	insertReminder(t, db, "Karuta Visit", "u1", base.Add(600*time.Minute), false)

	s.poll()

	require.Len(t, fake.sent, 1)
	assert.Equal(t, "c1", fake.sent[0].channelID)
	assert.Contains(t, fake.sent[0].data.Content, "<@u1>")
	assert.Contains(t, fake.sent[0].data.Content, "Karuta Visit")

	reminders, err := database.ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	assert.Empty(t, reminders, "delivered reminder row must be gone")

	// A second cycle has nothing left to deliver.
	s.poll()
	assert.Len(t, fake.sent, 1)
}

func TestPollLeavesFutureRemindersAlone(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeMessenger{}
	s, db := newTestScheduler(t, fake, base)

	insertReminder(t, db, "Dank Daily", "u1", base.Add(10*time.Minute), false)

	next := s.poll()

	assert.Empty(t, fake.sent)
	reminders, err := database.ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	// The armed delay is clamped to the configured maximum.
	assert.Equal(t, 300*time.Second, next)
}

func TestPollPushesBackOnSendFailure(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeMessenger{sendErr: errors.New("boom")}
	s, db := newTestScheduler(t, fake, base)

	insertReminder(t, db, "Dank Daily", "u1", base.Add(-time.Minute), false)

	next := s.poll()

	reminders, err := database.ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Greater(t, reminders[0].DueAt, base.UnixMilli(), "failed delivery must move due_at forward")
	assert.Equal(t, 5000*time.Millisecond, next, "failures arm the retry delay")
}

func TestPollDMClosedIsNotAFailure(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeMessenger{sendErr: &discordgo.RESTError{
		Message: &discordgo.APIErrorMessage{Code: discordgo.ErrCodeCannotSendMessagesToThisUser},
	}}
	s, db := newTestScheduler(t, fake, base)

	insertReminder(t, db, "Izzi Vote", "u1", base.Add(-time.Minute), true)

	next := s.poll()

	reminders, err := database.ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Greater(t, reminders[0].DueAt, base.UnixMilli())
	assert.Equal(t, 1500*time.Millisecond, next, "closed DMs must not arm the retry delay")
}

func TestConsumeSnooze(t *testing.T) {
	db, err := database.InitTestDB()
	require.NoError(t, err)
	defer db.Close()

	payload := model.SnoozePayload{
		Version:   1,
		Type:      "Dank Work",
		UserID:    "u1",
		GuildID:   "g1",
		ChannelID: "c1",
		Info:      model.ReminderInfo{Command: "/work shift"},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, database.SaveState(db, "snooze-tok", model.StateTypeSnooze, string(data), false))

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	got, err := ConsumeSnooze(db, "snooze-tok", now)
	require.NoError(t, err)
	assert.Equal(t, "Dank Work", got.Type)

	reminders, err := database.ListRemindersByUser(db, "u1")
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, now.Add(SnoozeDuration).UnixMilli(), reminders[0].DueAt)

	// One-shot: the token is gone and a replay fails.
	_, err = ConsumeSnooze(db, "snooze-tok", now)
	assert.Error(t, err)
}

func TestDeliveryPersistsSnoozePayload(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeMessenger{}
	s, db := newTestScheduler(t, fake, base)

	insertReminder(t, db, "Karuta Visit", "u1", base.Add(-time.Minute), false)
	s.poll()
	require.Len(t, fake.sent, 1)

	var count int
	require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM bot_states WHERE type = ?`, model.StateTypeSnooze))
	assert.Equal(t, 1, count, "delivery must leave exactly one snooze payload behind")
}
